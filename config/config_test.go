package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempConfig(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "orderbookd.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.Equal(t, ":8080", cfg.ListenAddr)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeTempConfig(t, `
listen_addr: ":9090"
log_level: debug
log_format: console
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.ListenAddr)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "console", cfg.LogFormat)
	require.Equal(t, ":8081", cfg.WSListenAddr, "fields absent from the file keep their default")
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("ORDERBOOKD_LISTEN_ADDR", ":7000")
	t.Setenv("ORDERBOOKD_LOG_LEVEL", "warn")

	cfg := Default().ApplyEnvOverrides()
	require.Equal(t, ":7000", cfg.ListenAddr)
	require.Equal(t, "warn", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat, "unset env vars leave the field untouched")
}
