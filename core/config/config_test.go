package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sounds", cfg.Storage.Bucket)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "catalog/manifest.json", cfg.Catalog.ManifestObject)
	assert.Equal(t, 128, cfg.Sync.Bitrate)
	assert.Equal(t, 10, cfg.Scheduler.RetryBaseSeconds)
	assert.Equal(t, 0, cfg.Scheduler.RetryMaxAttempts)
	assert.Equal(t, "static", cfg.Entitlement.Mode)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SYNC_BITRATE", "320")
	t.Setenv("SCHEDULER_RETRY_MAX_ATTEMPTS", "5")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 320, cfg.Sync.Bitrate)
	assert.Equal(t, 5, cfg.Scheduler.RetryMaxAttempts)
}
