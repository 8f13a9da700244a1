package health

import (
	"context"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	"github.com/aaravmahajanofficial/furniture-storefront/internal/images"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

// ImageProbe is implemented by image stores that can report reachability.
type ImageProbe interface {
	Ping(ctx context.Context) error
}

func NewHealthHandler(cfg *config.Config, store images.Store) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		},
	}

	// a broken image store degrades uploads but not browsing
	if probe, ok := store.(ImageProbe); ok {
		checks = append(checks, health.Config{
			Name:      "images",
			Timeout:   5 * time.Second,
			SkipOnErr: true,
			Check:     probe.Ping,
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    "furniture-storefront",
			Version: "1.0.0",
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}
