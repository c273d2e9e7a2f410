package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPPort        string        `env:"HTTP_PORT" envDefault:"8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`

	PostgresDSN    string `env:"POSTGRES_DSN" envDefault:"host=localhost port=5432 user=postgres password=postgres dbname=storefront sslmode=disable"`
	MigrationsPath string `env:"MIGRATIONS_PATH" envDefault:"./internal/store/migrations"`

	// Empty RedisAddr selects the in-process change feed and no
	// catalog cache (single-node mode).
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`

	JWTSecret string        `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	TokenTTL  time.Duration `env:"TOKEN_TTL" envDefault:"24h"`

	// Empty StorageBaseURL selects the in-memory avatar bucket.
	StorageBaseURL string `env:"STORAGE_BASE_URL"`
	StorageBucket  string `env:"STORAGE_BUCKET" envDefault:"avatars"`
	StorageToken   string `env:"STORAGE_TOKEN"`

	// Empty OTLPEndpoint disables tracing.
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
