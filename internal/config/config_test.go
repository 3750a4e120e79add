package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "triage-assistant", cfg.App.Name)
	assert.True(t, cfg.App.SeedDemoData)
	assert.Equal(t, "stdio", cfg.MCP.Transport)
	assert.Equal(t, "127.0.0.1:8487", cfg.MCP.Listen)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, 50, cfg.Activity.Capacity)
	assert.Equal(t, 5, cfg.Activity.Recent)
}

func TestLoad_overrides(t *testing.T) {
	t.Setenv("APP_NAME", "triage-staging")
	t.Setenv("MCP_TRANSPORT", "http")
	t.Setenv("MCP_LISTEN", "0.0.0.0:9000")
	t.Setenv("SEED_DEMO_DATA", "false")
	t.Setenv("ACTIVITY_LOG_CAPACITY", "200")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "triage-staging", cfg.App.Name)
	assert.Equal(t, "http", cfg.MCP.Transport)
	assert.Equal(t, "0.0.0.0:9000", cfg.MCP.Listen)
	assert.False(t, cfg.App.SeedDemoData)
	assert.Equal(t, 200, cfg.Activity.Capacity)
}

func TestLoad_invalidValuesFallBack(t *testing.T) {
	t.Setenv("ACTIVITY_LOG_CAPACITY", "a lot")
	t.Setenv("SEED_DEMO_DATA", "maybe")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.Activity.Capacity)
	assert.True(t, cfg.App.SeedDemoData)
}
