package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/tigerroll/stride/pkg/run/core/config"
)

const sampleYAML = `
stride:
  batch:
    chunk_size: 250
  system:
    logging:
      level: DEBUG
  report:
    type: local
    dir: /tmp/stride-reports
  database:
    primary:
      type: sqlite
      database: ./stride.db
    warehouse:
      type: postgres
      host: ${STRIDE_TEST_DB_HOST}
      port: 5432
      database: warehouse
      user: stride
      sslmode: disable
`

func TestLoadConfig(t *testing.T) {
	t.Setenv("STRIDE_TEST_DB_HOST", "db.internal")

	cfg, err := config.LoadConfig("", config.EmbeddedConfig(sampleYAML))
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Stride.Batch.ChunkSize)
	assert.Equal(t, "DEBUG", cfg.Stride.System.Logging.Level)
	assert.Equal(t, "local", cfg.Stride.Report.Type)

	primary, err := cfg.DatabaseConfigFor("primary")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", primary.Type)
	assert.Equal(t, "./stride.db", primary.Database)

	warehouse, err := cfg.DatabaseConfigFor("warehouse")
	require.NoError(t, err)
	assert.Equal(t, "db.internal", warehouse.Host)
	assert.Equal(t, 5432, warehouse.Port)
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, 100, cfg.Stride.Batch.ChunkSize)
	assert.Equal(t, "INFO", cfg.Stride.System.Logging.Level)
}

func TestDatabaseConfigForMissing(t *testing.T) {
	cfg, err := config.LoadConfig("", nil)
	require.NoError(t, err)

	_, err = cfg.DatabaseConfigFor("absent")
	assert.Error(t, err)
}
