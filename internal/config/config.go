package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"golang.org/x/crypto/bcrypt"
)

// Config holds the application configuration.
type Config struct {
	ServerPort   int    `env:"PORT" envDefault:"8080"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"./postbox.db"`

	// Symmetric signing key for bearer tokens. Required: there is no safe
	// default for a signing key.
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	TokenTTL   time.Duration `env:"TOKEN_TTL" envDefault:"30m"`
	BcryptCost int           `env:"BCRYPT_COST" envDefault:"10"`

	CacheTTL           time.Duration `env:"CACHE_TTL" envDefault:"5m"`
	CacheMaxEntries    int           `env:"CACHE_MAX_ENTRIES" envDefault:"1000"`
	CacheSweepSchedule string        `env:"CACHE_SWEEP_SCHEDULE" envDefault:"@every 1m"`

	CORSOrigin string `env:"CORS_ORIGIN" envDefault:"http://localhost:3000"`
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.BcryptCost < bcrypt.MinCost || cfg.BcryptCost > bcrypt.MaxCost {
		return nil, fmt.Errorf("BCRYPT_COST %d outside supported range [%d, %d]",
			cfg.BcryptCost, bcrypt.MinCost, bcrypt.MaxCost)
	}
	return &cfg, nil
}
