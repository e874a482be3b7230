// Package config defines the analysis driver configuration and its
// loading hooks.
//
// Conventions:
//   - New() builds a Config with defaults; Load(ctx) layers an optional
//     YAML file and SIDM_-prefixed environment variables on top.
//   - External errors are wrapped via this package's sentinel kinds.
package config

import (
	"fmt"
	"runtime"
)

// Config contains process configuration for one fill run.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the metrics/health HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// MetricsEnabled starts the /metrics and /healthz listener when true.
	MetricsEnabled bool `koanf:"metrics_enabled"`

	// EventCount is the total number of synthetic events to process.
	EventCount int `koanf:"event_count"`

	// BatchSize is the number of events per partition handed to workers.
	BatchSize int `koanf:"batch_size"`

	// WorkerCount sets the number of fill workers.
	WorkerCount int `koanf:"worker_count"`

	// FeedCapacity bounds the in-memory partition feed.
	FeedCapacity int `koanf:"feed_capacity"`

	// Seed drives the deterministic synthetic event source.
	Seed int64 `koanf:"seed"`

	// Histograms selects the registry entries to fill; empty means all.
	Histograms []string `koanf:"histograms"`

	// WeightScale is the per-sample event weight applied to every event.
	WeightScale float64 `koanf:"weight_scale"`

	// OutputDir receives the exported histogram documents.
	OutputDir string `koanf:"output_dir"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:     "info",
		Addr:         ":9080",
		EventCount:   100_000,
		BatchSize:    10_000,
		WorkerCount:  runtime.NumCPU(),
		FeedCapacity: 256,
		Seed:         1,
		WeightScale:  1.0,
		OutputDir:    "out",
	}
}

// Validate rejects values no fill run can work with.
func (c *Config) Validate() error {
	if c.EventCount < 0 {
		return fmt.Errorf("%w: event_count %d", ErrInvalidConfig, c.EventCount)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size %d", ErrInvalidConfig, c.BatchSize)
	}
	if c.WorkerCount <= 0 {
		return fmt.Errorf("%w: worker_count %d", ErrInvalidConfig, c.WorkerCount)
	}
	if c.FeedCapacity <= 0 {
		return fmt.Errorf("%w: feed_capacity %d", ErrInvalidConfig, c.FeedCapacity)
	}
	if c.WeightScale <= 0 {
		return fmt.Errorf("%w: weight_scale %v", ErrInvalidConfig, c.WeightScale)
	}
	if c.MetricsEnabled && c.Addr == "" {
		return fmt.Errorf("%w: metrics enabled with empty addr", ErrInvalidConfig)
	}
	return nil
}
