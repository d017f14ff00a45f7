// Package config loads emulator settings from the environment.
package config

import (
	"context"
	"time"

	"github.com/sethvargo/go-envconfig"
)

// Config selects the persistence adapter and tunes the auth subsystem.
type Config struct {
	// Backend picks the persistence adapter: "memory" or "sqlite".
	Backend string `env:"SUNUCARGO_BACKEND, default=memory"`
	// DBPath is the database file used by the sqlite backend.
	DBPath string `env:"SUNUCARGO_DB_PATH, default=sunucargo.db"`

	JWTSecret string        `env:"SUNUCARGO_JWT_SECRET, default=sunucargo-dev-secret"`
	TokenTTL  time.Duration `env:"SUNUCARGO_TOKEN_TTL, default=24h"`

	LogLevel  string `env:"SUNUCARGO_LOG_LEVEL, default=info"`
	LogPretty bool   `env:"SUNUCARGO_LOG_PRETTY, default=false"`
}

// Load reads configuration from process environment variables.
func Load(ctx context.Context) (*Config, error) {
	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFrom reads configuration from an explicit lookuper. Used by tests.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper})
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
