package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type HTTPServer struct {
	Addr string `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
}

type Database struct {
	Host            string        `yaml:"PG_HOST" env:"PG_HOST" env-default:"localhost"`
	Port            string        `yaml:"PG_PORT" env:"PG_PORT" env-default:"5432"`
	User            string        `yaml:"PG_USER" env:"PG_USER" env-required:"true"`
	Password        string        `yaml:"PG_PASSWORD" env:"PG_PASSWORD" env-required:"true"`
	Name            string        `yaml:"PG_DBNAME" env:"PG_DBNAME" env-required:"true"`
	SSLMode         string        `yaml:"PG_SSLMODE" env:"PG_SSLMODE" env-default:"require"`
	MaxOpenConns    int           `yaml:"MAX_OPEN_CONNS" env:"PG_MAX_OPEN_CONNS" env-default:"25"`
	MaxIdleConns    int           `yaml:"MAX_IDLE_CONNS" env:"PG_MAX_IDLE_CONNS" env-default:"25"`
	ConnMaxLifetime time.Duration `yaml:"CONN_MAX_LIFETIME" env:"PG_CONN_MAX_LIFETIME" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"CONN_MAX_IDLE_TIME" env:"PG_CONN_MAX_IDLE_TIME" env-default:"1m"`
}

type RedisConnect struct {
	Host     string `yaml:"REDIS_HOST" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"REDIS_PORT" env:"REDIS_PORT" env-default:"6379"`
	Username string `yaml:"REDIS_USER" env:"REDIS_USER"`
	Password string `yaml:"REDIS_PASSWORD" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"REDIS_DB" env:"REDIS_DB" env-default:"0"`
}

type RateConfig struct {
	MaxAttempts int64         `yaml:"MAX_ATTEMPTS" env:"MAX_ATTEMPTS" env-default:"5"`
	WindowSize  time.Duration `yaml:"WINDOW_SIZE" env:"WINDOW_SIZE" env-default:"15s"`
}

type CacheConfig struct {
	DefaultTTL time.Duration `yaml:"default_ttl" env:"CACHE_DEFAULT_TTL" env-default:"5m"`
}

type Security struct {
	JWTKey         string `yaml:"JWT_KEY" env:"JWT_KEY" env-required:"true"`
	JWTExpiryHours int    `yaml:"JWT_EXPIRY_HOURS" env:"JWT_EXPIRY_HOURS" env-default:"24"`
}

// Admin is the account seeded at startup when no user with that name exists.
type Admin struct {
	Username string `yaml:"ADMIN_USERNAME" env:"ADMIN_USERNAME" env-default:"admin"`
	Password string `yaml:"ADMIN_PASSWORD" env:"ADMIN_PASSWORD" env-default:""`
}

type Uploads struct {
	Driver    string `yaml:"driver" env:"UPLOADS_DRIVER" env-default:"local"`
	Dir       string `yaml:"dir" env:"UPLOADS_DIR" env-default:"static/uploads"`
	URLPrefix string `yaml:"url_prefix" env:"UPLOADS_URL_PREFIX" env-default:"/static/uploads"`
	MaxSizeMB int64  `yaml:"max_size_mb" env:"UPLOADS_MAX_SIZE_MB" env-default:"10"`
}

type S3 struct {
	Bucket    string `yaml:"S3_BUCKET" env:"S3_BUCKET"`
	Region    string `yaml:"S3_REGION" env:"S3_REGION" env-default:"us-east-1"`
	Endpoint  string `yaml:"S3_ENDPOINT" env:"S3_ENDPOINT"`
	AccessKey string `yaml:"S3_KEY" env:"S3_KEY"`
	SecretKey string `yaml:"S3_SECRET" env:"S3_SECRET"`
	BaseURL   string `yaml:"S3_URL" env:"S3_URL"`
}

type SendGrid struct {
	APIKey    string `yaml:"API_KEY" env:"SENDGRID_API_KEY"`
	FromEmail string `yaml:"FROM_EMAIL" env:"SENDGRID_FROM_EMAIL"`
	FromName  string `yaml:"FROM_NAME" env:"SENDGRID_FROM_NAME" env-default:"Furniture Storefront"`
	ShopEmail string `yaml:"SHOP_EMAIL" env:"SENDGRID_SHOP_EMAIL"`
}

type OTel struct {
	ServiceName      string  `yaml:"SERVICE_NAME" env:"OTEL_SERVICE_NAME" env-default:"furniture-storefront"`
	ExporterEndpoint string  `yaml:"EXPORTER_ENDPOINT" env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	SamplerRatio     float64 `yaml:"SAMPLER_RATIO" env:"OTEL_SAMPLER_RATIO" env-default:"1.0"`
}

// Session holds the client session timing. Duration and Warning feed both the
// deadline math and the countdown shown to the user.
type Session struct {
	Duration time.Duration `yaml:"duration" env:"SESSION_DURATION" env-default:"35m"`
	Warning  time.Duration `yaml:"warning" env:"SESSION_WARNING" env-default:"5m"`
	Tick     time.Duration `yaml:"tick" env:"SESSION_TICK" env-default:"1s"`
}

func (s Session) Validate() error {
	if s.Duration <= 0 {
		return errors.New("session duration must be positive")
	}

	if s.Warning <= 0 || s.Warning >= s.Duration {
		return fmt.Errorf("session warning %s must be within (0, %s)", s.Warning, s.Duration)
	}

	if s.Tick <= 0 {
		return errors.New("session tick must be positive")
	}

	return nil
}

// DefaultSession returns the stock 35 minute session with a 5 minute warning.
func DefaultSession() Session {
	return Session{Duration: 35 * time.Minute, Warning: 5 * time.Minute, Tick: time.Second}
}

type Config struct {
	Env          string `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   `yaml:"http_server"`
	Database     Database     `yaml:"database"`
	RedisConnect RedisConnect `yaml:"redis"`
	RateConfig   RateConfig   `yaml:"rateConfig"`
	Cache        CacheConfig  `yaml:"cache"`
	Security     Security     `yaml:"security"`
	Admin        Admin        `yaml:"admin"`
	Uploads      Uploads      `yaml:"uploads"`
	S3           S3           `yaml:"s3"`
	SendGrid     SendGrid     `yaml:"sendgrid"`
	OTel         OTel         `yaml:"otel"`
}

func MustLoad() *Config {

	configPath := os.Getenv("CONFIG_PATH")

	if configPath == "" {

		flags := flag.String("config", "", "path to the config file")

		flag.Parse()

		configPath = *flags

		if configPath == "" {
			configPath = "config/local.yaml"
		}

	}

	cfg, err := LoadConfigFromPath(configPath)
	if err != nil {
		log.Fatalf("can not read config file: %s", err.Error())
	}

	return cfg

}

func LoadConfigFromPath(configPath string) (*Config, error) {

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", configPath, err)
	}

	return &cfg, nil
}

func (d *Database) GetDSN() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

func (r *RedisConnect) GetDSN() string {
	return fmt.Sprintf("redis://%s:%s@%s:%s", r.Username, r.Password, r.Host, r.Port)
}

func (s *Security) TokenTTL() time.Duration {
	return time.Duration(s.JWTExpiryHours) * time.Hour
}
