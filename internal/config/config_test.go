package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 50*time.Millisecond, cfg.PlaybackInterval())
}

func TestLoadWithoutFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadLayersFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "river.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr = ":9000"
log_level = "debug"
strategy = "dfs"
rate_burst = 5
`), 0o600))

	t.Setenv("RIVER_ADDR", ":9100")
	t.Setenv("RIVER_METRICS_ENABLED", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", cfg.Addr, "env wins over file")
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "dfs", cfg.Strategy)
	assert.Equal(t, 5, cfg.RateBurst)
	assert.False(t, cfg.Metrics)
	assert.Equal(t, "classic", cfg.Variant, "untouched fields keep defaults")
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.toml")
	require.NoError(t, os.WriteFile(path, []byte("addr = "), 0o600))
	_, err = Load(path)
	assert.Error(t, err)

	t.Setenv("RIVER_STRATEGY", "astar")
	_, err = Load("")
	assert.ErrorContains(t, err, "invalid config")
}

func TestLoadRejectsBadEnvValue(t *testing.T) {
	t.Setenv("RIVER_RATE_BURST", "many")
	_, err := Load("")
	assert.ErrorContains(t, err, "parse env")
}

func TestValidateBounds(t *testing.T) {
	cfg := Default()
	cfg.PlaybackSpeed = 5
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.PlaybackIntervalMS = 1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.TraceExporter = "jaeger"
	assert.Error(t, cfg.Validate())
}
