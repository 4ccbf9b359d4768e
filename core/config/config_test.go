package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "X-Actor", cfg.Server.ActorHeader)
	assert.True(t, cfg.Server.WorldAPI)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 100, cfg.Reconcile.TickMillis)
	assert.Equal(t, 1000, cfg.Reconcile.DefaultLimit)
	assert.True(t, cfg.Reconcile.BatchEnabled)
	assert.Equal(t, 20, cfg.Reconcile.BatchSize)
	assert.Equal(t, 60.0, cfg.Reconcile.CleanupIntervalSeconds)
	assert.False(t, cfg.Storage.Enabled)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("RECONCILE_BATCH_SIZE", "50")
	t.Setenv("RECONCILE_CLEANUP_INTERVAL_SECONDS", "0")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 50, cfg.Reconcile.BatchSize)
	assert.Equal(t, 0.0, cfg.Reconcile.CleanupIntervalSeconds)
}

func TestLoadConfig_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "reconcile:\n  default_limit: 250\nlog:\n  format: console\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Reconcile.DefaultLimit)
	assert.Equal(t, "console", cfg.Log.Format)
}
