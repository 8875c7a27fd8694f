package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stackctl/internal/reconciler"
)

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, reconciler.DefaultPollInterval, cfg.PollInterval())
	assert.Equal(t, reconciler.DefaultCapabilities, cfg.Capabilities)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.Region)
}

func TestLoadConfigMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `
region: eu-west-1
pollIntervalSeconds: 10
tags:
  team: platform
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, 10*time.Second, cfg.PollInterval())
	assert.Equal(t, map[string]string{"team": "platform"}, cfg.Tags)
	// Unset fields keep their defaults.
	assert.Equal(t, reconciler.DefaultCapabilities, cfg.Capabilities)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("region: [broken"), 0o644))

	_, err := LoadConfig(dir)
	require.Error(t, err)
}

func TestPollIntervalFallback(t *testing.T) {
	assert.Equal(t, reconciler.DefaultPollInterval, Config{}.PollInterval())
	assert.Equal(t, 30*time.Second, Config{PollIntervalSeconds: 30}.PollInterval())
}
