package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
data:
  path: /tmp/tq/data.json
log:
  level: debug
  format: json
server:
  addr: 127.0.0.1:9000
clock:
  timezone: UTC
`)
	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/tq/data.json", cfg.Data.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "stderr", cfg.Log.Output)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, loc)
}

func TestLoadEnvAndFlagsOverride(t *testing.T) {
	path := writeConfig(t, "log:\n  level: info\n")
	t.Setenv("TASKQUEST_LOG_LEVEL", "error")
	t.Setenv("TASKQUEST_DATA_PATH", "/from/env.json")

	flags := pflag.NewFlagSet("tq", pflag.ContinueOnError)
	flags.String("data", "", "")
	flags.String("log-level", "", "")
	require.NoError(t, flags.Parse([]string{"--data", "/from/flag.json"}))

	cfg, err := Load(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.Log.Level)
	assert.Equal(t, "/from/flag.json", cfg.Data.Path)
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"), nil)
	assert.Error(t, err)
}

func TestLoadBadTimezone(t *testing.T) {
	path := writeConfig(t, "clock:\n  timezone: Mars/Olympus\n")
	_, err := Load(path, nil)
	assert.Error(t, err)
}

func TestWriteDefaultRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	require.NoError(t, WriteDefault(path))
	assert.Error(t, WriteDefault(path))

	cfg, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
