// Package config loads application configuration from environment
// variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/dmitrymomot/campsite/pkg/db"
	"github.com/dmitrymomot/campsite/pkg/geocode"
	"github.com/dmitrymomot/campsite/pkg/logger"
	"github.com/dmitrymomot/campsite/pkg/storage"
)

// Config aggregates every component's configuration.
type Config struct {
	Addr        string        `env:"SERVER_ADDR" envDefault:":8080"`
	Environment string        `env:"APP_ENV" envDefault:"development"`
	RedisURL    string        `env:"REDIS_URL,required"`
	SessionTTL  time.Duration `env:"SESSION_TTL" envDefault:"4h"`

	// ImagePrefix is the storage key prefix for campground images; the
	// janitor sweeps the same prefix.
	ImagePrefix string `env:"STORAGE_IMAGE_PREFIX" envDefault:"campgrounds"`

	// Janitor is off by default: baseline behavior leaves deleted
	// campgrounds' blobs in the bucket.
	JanitorEnabled  bool   `env:"JANITOR_ENABLED" envDefault:"false"`
	JanitorSchedule string `env:"JANITOR_SCHEDULE" envDefault:"@hourly"`

	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"15s"`

	DB      db.Config
	Storage storage.Config
	Geocode geocode.Config
	Sentry  logger.SentryConfig
}

// Load parses the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: failed to parse environment: %w", err)
	}
	return cfg, nil
}
