package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "desktop-mcp", cfg.Logger.ServiceName)
	assert.Equal(t, 10*time.Second, cfg.Automation.WindowTimeout)
	assert.Equal(t, 5*time.Second, cfg.Automation.ElementTimeout)
	assert.Equal(t, 30*time.Second, cfg.Automation.WaitTimeout)
	assert.Equal(t, 30*time.Second, cfg.Automation.LaunchTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.Automation.PollInterval)
	assert.Equal(t, 4, cfg.Automation.SnapshotDepth)
	assert.Equal(t, TransportStdio, cfg.Server.Transport)
}

func TestLoad_FileOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "desktop-mcp.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
logger:
  level: debug
automation:
  element_timeout: 2s
  snapshot_depth: 6
server:
  transport: streamable-http
  port: 9090
`), 0o644))

	cfg, err := Load(New(), path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 2*time.Second, cfg.Automation.ElementTimeout)
	assert.Equal(t, 6, cfg.Automation.SnapshotDepth)
	assert.Equal(t, 10*time.Second, cfg.Automation.WindowTimeout)
	assert.Equal(t, TransportHTTP, cfg.Server.Transport)
	assert.Equal(t, 9090, cfg.Server.Port)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DESKTOP_MCP_AUTOMATION_WAIT_TIMEOUT", "45s")
	t.Setenv("DESKTOP_MCP_LOGGER_LEVEL", "warn")

	cfg, err := Load(New(), "")
	require.NoError(t, err)
	assert.Equal(t, 45*time.Second, cfg.Automation.WaitTimeout)
	assert.Equal(t, "warn", cfg.Logger.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base, err := Load(New(), "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero element timeout", func(c *Config) { c.Automation.ElementTimeout = 0 }},
		{"negative window timeout", func(c *Config) { c.Automation.WindowTimeout = -time.Second }},
		{"zero depth", func(c *Config) { c.Automation.SnapshotDepth = 0 }},
		{"negative settle", func(c *Config) { c.Automation.SelectSettle = -time.Millisecond }},
		{"negative keystroke rate", func(c *Config) { c.Input.KeystrokesPerSecond = -1 }},
		{"unknown transport", func(c *Config) { c.Server.Transport = "sse" }},
		{"bad port", func(c *Config) { c.Server.Transport = TransportHTTP; c.Server.Port = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *base
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
	assert.NoError(t, base.Validate())
}
