package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret        string        `env:"JWT_SECRET"`
	JWTRefreshSecret string        `env:"JWT_REFRESH_SECRET"`
	AccessTokenTTL   time.Duration `env:"ACCESS_TOKEN_TTL,  default=30m"`
	RefreshTokenTTL  time.Duration `env:"REFRESH_TOKEN_TTL, default=168h"`

	Store StoreConfig
	Mongo MongoConfig
	Redis RedisConfig
}

type StoreConfig struct {
	// Driver selects the user store backend: "csv" or "mongo".
	Driver  string `env:"STORE_DRIVER, default=csv"`
	CSVPath string `env:"USERS_CSV,    default=users.csv"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=user_system"`
}

type RedisConfig struct {
	// Addr left empty disables the Redis-backed login limiter.
	Addr             string        `env:"REDIS_ADDR"`
	DB               int           `env:"REDIS_DB, default=0"`
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS, default=10"`
	LoginWindow      time.Duration `env:"LOGIN_WINDOW, default=1m"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if cfg.JWTSecret == "" || cfg.JWTRefreshSecret == "" {
		return nil, fmt.Errorf("config: JWT_SECRET and JWT_REFRESH_SECRET are required")
	}
	if cfg.JWTSecret == cfg.JWTRefreshSecret {
		return nil, fmt.Errorf("config: JWT_SECRET and JWT_REFRESH_SECRET must differ")
	}
	return &cfg, nil
}
