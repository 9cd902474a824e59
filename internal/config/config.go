// Package config loads application configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath      string
	LogLevel    slog.Level
	ShowSecrets bool
}

// Load reads configuration from environment variables and returns a validated Config.
// All variables are optional: PWDB_DB_PATH (passwords.pwdb), PWDB_LOG_LEVEL (warn),
// PWDB_SHOW_SECRETS (false).
func Load() (*Config, error) {
	dbPath := "passwords.pwdb"
	if v, ok := os.LookupEnv("PWDB_DB_PATH"); ok && v != "" {
		dbPath = v
	}

	logLevel := slog.LevelWarn
	if v, ok := os.LookupEnv("PWDB_LOG_LEVEL"); ok && v != "" {
		if err := logLevel.UnmarshalText([]byte(strings.TrimSpace(v))); err != nil {
			return nil, fmt.Errorf("PWDB_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	var showSecrets bool
	if v, ok := os.LookupEnv("PWDB_SHOW_SECRETS"); ok && v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("PWDB_SHOW_SECRETS has invalid boolean %q: %w", v, err)
		}
		showSecrets = parsed
	}

	return &Config{
		DBPath:      dbPath,
		LogLevel:    logLevel,
		ShowSecrets: showSecrets,
	}, nil
}
