package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tigerroll/fantasyload/pkg/etl/core/config"
)

var testYAML = []byte(`
fantasyload:
  batch:
    batch_size: 200
    max_retries: 5
    retry_delay_ms: 50
    parallel_enabled: true
    max_workers: 8
  entities:
    player_stats_daily:
      batch_size: 500
      max_retries: 1
  system:
    timezone: "America/New_York"
    logging:
      level: "DEBUG"
  input:
    dataset_path: "/data/snapshot.json"
  database:
    default:
      type: "postgres"
      host: "localhost"
      port: 5432
      user: "etl"
      database: "fantasy"
      sslmode: "disable"
`)

func TestLoadConfigAppliesYAMLOverDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("", config.EmbeddedConfig(testYAML))
	require.NoError(t, err)

	batch := cfg.Fantasyload.Batch
	assert.Equal(t, 200, batch.BatchSize)
	assert.Equal(t, 5, batch.MaxRetries)
	assert.True(t, batch.ParallelEnabled)
	// Keys absent from the document keep their defaults.
	assert.Equal(t, 100, batch.MinBatchSize)
	assert.True(t, batch.AdaptiveEnabled)

	assert.Equal(t, "DEBUG", cfg.Fantasyload.System.Logging.Level)
	assert.Equal(t, "/data/snapshot.json", cfg.Fantasyload.Input.DatasetPath)

	db, ok := cfg.DefaultDatabase()
	require.True(t, ok)
	assert.Equal(t, "postgres", db.Type)
	assert.Equal(t, 5432, db.Port)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("FANTASYLOAD_BATCH_BATCH_SIZE", "64")
	t.Setenv("FANTASYLOAD_BATCH_PARALLEL_ENABLED", "false")
	t.Setenv("FANTASYLOAD_SYSTEM_LOGGING_LEVEL", "WARN")
	t.Setenv("FANTASYLOAD_DATABASE_DEFAULT_HOST", "db.internal")
	t.Setenv("FANTASYLOAD_DATABASE_DEFAULT_PASSWORD", "secret")

	cfg, err := config.LoadConfig("", config.EmbeddedConfig(testYAML))
	require.NoError(t, err)

	assert.Equal(t, 64, cfg.Fantasyload.Batch.BatchSize)
	assert.False(t, cfg.Fantasyload.Batch.ParallelEnabled)
	assert.Equal(t, "WARN", cfg.Fantasyload.System.Logging.Level)

	db, ok := cfg.DefaultDatabase()
	require.True(t, ok)
	assert.Equal(t, "db.internal", db.Host)
	assert.Equal(t, "secret", db.Password)
	// YAML-sourced fields of the same entry survive the override.
	assert.Equal(t, "postgres", db.Type)
}

func TestEngineConfigForAppliesEntityOverrides(t *testing.T) {
	cfg, err := config.LoadConfig("", config.EmbeddedConfig(testYAML))
	require.NoError(t, err)

	ec, err := cfg.EngineConfigFor("player_stats_daily")
	require.NoError(t, err)
	assert.Equal(t, 500, ec.BatchSize)
	assert.Equal(t, 1, ec.MaxRetries)
	// Non-overridden keys come from the shared batch section.
	assert.True(t, ec.ParallelEnabled)
	assert.Equal(t, 8, ec.MaxWorkers)
	assert.Equal(t, 50*time.Millisecond, ec.RetryDelayBase)
}

func TestEngineConfigForWithoutOverrides(t *testing.T) {
	cfg, err := config.LoadConfig("", config.EmbeddedConfig(testYAML))
	require.NoError(t, err)

	ec, err := cfg.EngineConfigFor("games")
	require.NoError(t, err)
	assert.Equal(t, 200, ec.BatchSize)
	assert.Equal(t, 5, ec.MaxRetries)
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	_, err := config.LoadConfig("", config.EmbeddedConfig([]byte("fantasyload: [")))
	assert.Error(t, err)
}
