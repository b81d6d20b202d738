package config

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	// LogFormat selects the slog handler: "text" for development, "json"
	// for production.
	LogFormat string `validate:"oneof=text json"`

	// GracePeriod is how long upstream subscriptions stay warm after the
	// last state observer detaches.
	GracePeriod time.Duration `validate:"min=0"`
}

// New loads configuration from environment variables, with a .env file as
// fallback for development.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{
		LogFormat:   "text",
		GracePeriod: 5 * time.Second,
	}

	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("STATE_GRACE_PERIOD"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("parse STATE_GRACE_PERIOD: %w", err)
		}
		cfg.GracePeriod = d
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
