package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "http://localhost:5000/api", cfg.Backend.BaseURL)
	require.Equal(t, 3*time.Second, cfg.UI.NoticeTTL)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "noteboard.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend:
  base_url: http://notes.internal:9000/api
  timeout: 5s
server:
  port: 9090
web:
  page_ttl: 10m
log:
  level: debug
`), 0o644))

	t.Setenv("NOTEBOARD_CONFIG_PATH", path)
	t.Setenv("NOTEBOARD_SERVER_PORT", "7070")
	t.Setenv("NOTEBOARD_NOTICE_TTL", "1500ms")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://notes.internal:9000/api", cfg.Backend.BaseURL)
	require.Equal(t, 5*time.Second, cfg.Backend.Timeout)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 10*time.Minute, cfg.Web.PageTTL)
	require.Equal(t, 1500*time.Millisecond, cfg.UI.NoticeTTL)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("NOTEBOARD_LOG_PATH=tmp/noteboard.log\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("NOTEBOARD_LOG_PATH") })

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "tmp/noteboard.log", cfg.Log.Path)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NOTEBOARD_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("NOTEBOARD_SERVER_PORT", "eighty")

	_, err := Load()
	require.ErrorContains(t, err, "read env")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"non-http base url", func(c *Config) { c.Backend.BaseURL = "ftp://example.com" }},
		{"empty base url", func(c *Config) { c.Backend.BaseURL = "" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"unknown level", func(c *Config) { c.Log.Level = "verbose" }},
		{"zero notice ttl", func(c *Config) { c.UI.NoticeTTL = 0 }},
		{"negative timeout", func(c *Config) { c.Backend.Timeout = -time.Second }},
	}

	require.NoError(t, Validate(Default()))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorContains(t, Validate(cfg), "invalid config")
		})
	}
}
