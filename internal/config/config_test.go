package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "aetheryte.json", cfg.Dataset.Path)
	assert.Equal(t, "wiki_cache.db", cfg.Cache.Path)
	assert.Equal(t, 24, cfg.Cache.TTLHours)
	assert.Equal(t, "https://ffxiv.consolegameswiki.com", cfg.Wiki.BaseURL)
	assert.Equal(t, 10, cfg.Wiki.TimeoutSecs)
	assert.Equal(t, 1000, cfg.Wiki.FetchDelayMS)
	assert.Equal(t, "silent", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
}

func TestLoadFromYAML(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })

	yaml := `
dataset:
  path: /data/aetheryte.json
cache:
  ttl_hours: 48
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/data/aetheryte.json", cfg.Dataset.Path)
	assert.Equal(t, 48, cfg.Cache.TTLHours)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Defaults still apply for unset values
	assert.Equal(t, 10, cfg.Wiki.TimeoutSecs)
}

func TestInitLogger_Silent(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "silent"}))
	assert.NotNil(t, zap.L())
	assert.False(t, zap.L().Core().Enabled(zap.ErrorLevel))
}

func TestInitLogger_Levels(t *testing.T) {
	require.NoError(t, InitLogger(LogConfig{Level: "debug", Format: "console"}))
	assert.True(t, zap.L().Core().Enabled(zap.DebugLevel))

	require.NoError(t, InitLogger(LogConfig{Level: "error", Format: "json"}))
	assert.False(t, zap.L().Core().Enabled(zap.InfoLevel))

	assert.Error(t, InitLogger(LogConfig{Level: "nonsense"}))
}
