// Package config loads host settings from LIVEHEART_* environment variables, then command-line flags
package config

import (
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/lixenwraith/liveheart/engine"
)

// Config holds settings shared by every host; each host reads the fields it needs
type Config struct {
	Threshold        float64       `env:"LIVEHEART_THRESHOLD"         envDefault:"3000"`
	CrystallizeDelay time.Duration `env:"LIVEHEART_CRYSTALLIZE_DELAY" envDefault:"1s"`
	Seed             uint64        `env:"LIVEHEART_SEED"`
	SaveURL          string        `env:"LIVEHEART_SAVE_URL"`
	StorePath        string        `env:"LIVEHEART_STORE_PATH"        envDefault:"liveheart.db"`
	Audio            bool          `env:"LIVEHEART_AUDIO"             envDefault:"true"`
	Debug            bool          `env:"LIVEHEART_DEBUG"`
	FrameInterval    time.Duration `env:"LIVEHEART_FRAME_INTERVAL"    envDefault:"16ms"`
	Showcase         time.Duration `env:"LIVEHEART_SHOWCASE"`
	Share            string        `env:"LIVEHEART_SHARE"`
	Addr             string        `env:"LIVEHEART_ADDR"              envDefault:":8095"`
	OTelEndpoint     string        `env:"LIVEHEART_OTEL_ENDPOINT"`
}

// ParseConfig reads the environment, then lets flags in args override it
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.Float64Var(&cfg.Threshold, "threshold", cfg.Threshold, "stroke distance that completes collection")
	fs.DurationVar(&cfg.CrystallizeDelay, "crystallize-delay", cfg.CrystallizeDelay, "time between crystallizing and the artifact")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "random seed, 0 for time based")
	fs.StringVar(&cfg.SaveURL, "save-url", cfg.SaveURL, "remote save endpoint, empty for the local store")
	fs.StringVar(&cfg.StorePath, "store", cfg.StorePath, "sqlite share database path")
	fs.BoolVar(&cfg.Audio, "audio", cfg.Audio, "play audio cues")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "write logs and show diagnostics")
	fs.DurationVar(&cfg.FrameInterval, "frame", cfg.FrameInterval, "frame interval")
	fs.DurationVar(&cfg.Showcase, "showcase", cfg.Showcase, "auto-cycle artifacts at this interval, 0 to disable")
	fs.StringVar(&cfg.Share, "share", cfg.Share, "slug of a saved artifact to replay at startup")
	fs.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address for the save server")
	fs.StringVar(&cfg.OTelEndpoint, "otel-endpoint", cfg.OTelEndpoint, "OTLP/HTTP trace endpoint, empty to disable")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the engine cannot run with
func (c Config) Validate() error {
	var errs []error
	if c.Threshold <= 0 {
		errs = append(errs, fmt.Errorf("threshold must be positive, got %v", c.Threshold))
	}
	if c.CrystallizeDelay <= 0 {
		errs = append(errs, fmt.Errorf("crystallize delay must be positive, got %v", c.CrystallizeDelay))
	}
	if c.FrameInterval <= 0 {
		errs = append(errs, fmt.Errorf("frame interval must be positive, got %v", c.FrameInterval))
	}
	if c.Showcase < 0 {
		errs = append(errs, fmt.Errorf("showcase interval must not be negative, got %v", c.Showcase))
	}
	return errors.Join(errs...)
}

// Engine returns the session settings
func (c Config) Engine() engine.Config {
	return engine.Config{Threshold: c.Threshold, CrystallizeDelay: c.CrystallizeDelay}
}

// SeedOr returns the configured seed, or fallback when unset
func (c Config) SeedOr(fallback uint64) uint64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return fallback
}
