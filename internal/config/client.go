package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Client configures the terminal storefront.
type Client struct {
	Env            string        `yaml:"env" env:"ENV" env-default:"local"`
	APIBaseURL     string        `yaml:"api_base_url" env:"STOREFRONT_API_URL" env-default:"http://localhost:8080/api"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"STOREFRONT_REQUEST_TIMEOUT" env-default:"10s"`
	Language       string        `yaml:"language" env:"STOREFRONT_LANGUAGE" env-default:"en"`
	DeliveryFee    float64       `yaml:"delivery_fee" env:"STOREFRONT_DELIVERY_FEE" env-default:"500"`
	State          State         `yaml:"state"`
	RedisConnect   RedisConnect  `yaml:"redis"`
	Session        Session       `yaml:"session"`
}

// State selects where the client keeps its durable key/value data.
type State struct {
	Driver    string `yaml:"driver" env:"STOREFRONT_STATE_DRIVER" env-default:"file"`
	Path      string `yaml:"path" env:"STOREFRONT_STATE_PATH"`
	KeyPrefix string `yaml:"key_prefix" env:"STOREFRONT_STATE_PREFIX" env-default:"storefront"`
}

// LoadClient reads the client config from path, or from the environment alone
// when path is empty.
func LoadClient(path string) (*Client, error) {
	var cfg Client

	if path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("reading client config %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("reading client config from env: %w", err)
	}

	if cfg.State.Driver == "file" && cfg.State.Path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			dir = os.TempDir()
		}
		cfg.State.Path = filepath.Join(dir, "furniture-storefront", "state.json")
	}

	if err := cfg.Session.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}
