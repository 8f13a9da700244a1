// Package kv is the client's durable key/value storage. It holds the bearer
// token, the serialized identity and the session clock across restarts.
package kv

import (
	"context"
	"errors"

	"github.com/aaravmahajanofficial/furniture-storefront/internal/config"
	repository "github.com/aaravmahajanofficial/furniture-storefront/internal/repositories"
)

const (
	KeyToken     = "token"
	KeyUser      = "user"
	KeyLoginTime = "loginTime"
)

const (
	DriverFile   = "file"
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Store is string key/value storage. Get reports whether the key exists.
// Delete ignores missing keys.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, keys ...string) error
}

// New opens the store named by cfg.State.Driver.
func New(cfg *config.Client) (Store, error) {
	switch cfg.State.Driver {
	case "", DriverFile:
		return NewFileStore(cfg.State.Path)
	case DriverMemory:
		return NewMemoryStore(), nil
	case DriverRedis:
		client, err := repository.NewRedisClient(cfg.RedisConnect)
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client, cfg.State.KeyPrefix), nil
	default:
		return nil, errors.New("unknown state driver: " + cfg.State.Driver)
	}
}
