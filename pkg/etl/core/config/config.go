package config

// Package config provides structures and utilities for managing application
// configuration loaded from embedded YAML and environment variables.

import (
	"time"

	"github.com/tigerroll/fantasyload/pkg/etl/core/engine"
	"github.com/tigerroll/fantasyload/pkg/etl/support/configbinder"
)

// EmbeddedConfig holds the raw content of the configuration file, typically
// compiled into the binary and passed from main.go.
type EmbeddedConfig []byte

// BatchConfig is the YAML shape of the engine tuning knobs. Durations are
// expressed as plain integers (milliseconds and seconds) so they read
// naturally in configuration files.
type BatchConfig struct {
	BatchSize        int     `yaml:"batch_size"`
	MaxRetries       int     `yaml:"max_retries"`
	RetryDelayMs     int     `yaml:"retry_delay_ms"`
	ParallelEnabled  bool    `yaml:"parallel_enabled"`
	MaxWorkers       int     `yaml:"max_workers"`
	TimeoutSeconds   int     `yaml:"timeout_seconds"`
	AdaptiveEnabled  bool    `yaml:"adaptive_enabled"`
	MinBatchSize     int     `yaml:"min_batch_size"`
	MaxBatchSize     int     `yaml:"max_batch_size"`
	ThroughputTarget float64 `yaml:"throughput_target"`
}

// EngineConfig converts the YAML shape into the engine's native Config.
func (b BatchConfig) EngineConfig() engine.Config {
	return engine.Config{
		BatchSize:        b.BatchSize,
		MaxRetries:       b.MaxRetries,
		RetryDelayBase:   time.Duration(b.RetryDelayMs) * time.Millisecond,
		ParallelEnabled:  b.ParallelEnabled,
		MaxWorkers:       b.MaxWorkers,
		Timeout:          time.Duration(b.TimeoutSeconds) * time.Second,
		AdaptiveEnabled:  b.AdaptiveEnabled,
		MinBatchSize:     b.MinBatchSize,
		MaxBatchSize:     b.MaxBatchSize,
		ThroughputTarget: b.ThroughputTarget,
	}
}

// DatabaseConfig holds the connection settings for one named database.
type DatabaseConfig struct {
	Type     string `yaml:"type"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"sslmode"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	// Level is the logging level (e.g., "INFO", "DEBUG").
	Level string `yaml:"level"`
}

// SystemConfig holds system-wide settings.
type SystemConfig struct {
	Timezone string        `yaml:"timezone"`
	Logging  LoggingConfig `yaml:"logging"`
	// AutoMigrate creates missing tables at startup.
	AutoMigrate bool `yaml:"auto_migrate"`
}

// InputConfig locates the datasets fed into the orchestrator.
type InputConfig struct {
	// DatasetPath is the JSON file holding the extracted datasets, keyed by
	// entity type.
	DatasetPath string `yaml:"dataset_path"`
}

// FantasyloadConfig holds all configuration under the "fantasyload"
// top-level key.
type FantasyloadConfig struct {
	// Batch is the engine tuning applied to every entity type.
	Batch BatchConfig `yaml:"batch"`
	// Entities carries per-entity-type overrides of the Batch settings,
	// keyed by dataset name. Only the keys present override.
	Entities map[string]map[string]interface{} `yaml:"entities"`
	// System contains system-wide configurations.
	System SystemConfig `yaml:"system"`
	// Input locates the extracted datasets.
	Input InputConfig `yaml:"input"`
	// Databases holds the named database connections, keyed by logical name.
	// The load path uses the "default" connection.
	Databases map[string]DatabaseConfig `yaml:"database"`
}

// Config is the root structure for the entire application configuration.
type Config struct {
	Fantasyload FantasyloadConfig `yaml:"fantasyload"`
}

// NewConfig returns a Config populated with production defaults. YAML and
// environment overrides are layered on top of it.
func NewConfig() *Config {
	return &Config{
		Fantasyload: FantasyloadConfig{
			Batch: BatchConfig{
				BatchSize:        engine.DefaultBatchSize,
				MaxRetries:       engine.DefaultMaxRetries,
				RetryDelayMs:     int(engine.DefaultRetryDelayBase / time.Millisecond),
				ParallelEnabled:  false,
				MaxWorkers:       engine.DefaultMaxWorkers,
				TimeoutSeconds:   int(engine.DefaultTimeout / time.Second),
				AdaptiveEnabled:  true,
				MinBatchSize:     engine.DefaultMinBatchSize,
				MaxBatchSize:     engine.DefaultMaxBatchSize,
				ThroughputTarget: engine.DefaultThroughputTarget,
			},
			Entities: map[string]map[string]interface{}{},
			System: SystemConfig{
				Timezone:    "UTC",
				Logging:     LoggingConfig{Level: "INFO"},
				AutoMigrate: true,
			},
			Input: InputConfig{
				DatasetPath: "dataset.json",
			},
			Databases: map[string]DatabaseConfig{},
		},
	}
}

// EngineConfigFor returns the engine configuration for one entity type:
// the shared Batch settings with that entity's overrides bound on top.
func (c *Config) EngineConfigFor(entity string) (engine.Config, error) {
	batch := c.Fantasyload.Batch
	if overrides, ok := c.Fantasyload.Entities[entity]; ok {
		if err := configbinder.BindProperties(overrides, &batch); err != nil {
			return engine.Config{}, err
		}
	}
	return batch.EngineConfig(), nil
}

// DefaultDatabase returns the "default" connection settings.
func (c *Config) DefaultDatabase() (DatabaseConfig, bool) {
	db, ok := c.Fantasyload.Databases["default"]
	return db, ok
}
