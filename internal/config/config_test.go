package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every PWDB_ env var that Load() reads.
var allConfigKeys = []string{
	"PWDB_DB_PATH",
	"PWDB_LOG_LEVEL",
	"PWDB_SHOW_SECRETS",
}

// isolateConfigEnv saves and unsets all PWDB_ env vars so tests don't
// inherit values from the host environment.
// t.Cleanup restores original values after the test.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PWDB_DB_PATH", "/tmp/test.pwdb")
	t.Setenv("PWDB_LOG_LEVEL", "debug")
	t.Setenv("PWDB_SHOW_SECRETS", "true")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/test.pwdb", cfg.DBPath)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.True(t, cfg.ShowSecrets)
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "passwords.pwdb", cfg.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.False(t, cfg.ShowSecrets)
}

// TestLoad_EmptyValues verifies that set-but-empty variables fall back to defaults.
func TestLoad_EmptyValues(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PWDB_DB_PATH", "")
	t.Setenv("PWDB_LOG_LEVEL", "")
	t.Setenv("PWDB_SHOW_SECRETS", "")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "passwords.pwdb", cfg.DBPath)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
}

func TestLoad_LogLevelCaseInsensitive(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PWDB_LOG_LEVEL", "ERROR")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, slog.LevelError, cfg.LogLevel)
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PWDB_LOG_LEVEL", "chatty")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PWDB_LOG_LEVEL")
}

func TestLoad_InvalidShowSecrets(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("PWDB_SHOW_SECRETS", "sometimes")

	cfg, err := Load()

	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PWDB_SHOW_SECRETS")
}
