// Package config resolves runtime options from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/lo3003/studyplanner/internal/constants"
	"github.com/lo3003/studyplanner/internal/keyring"
)

const (
	EnvDB       = "STUDYPLAN_DB"
	EnvDebug    = "STUDYPLAN_DEBUG"
	EnvLogLevel = "STUDYPLAN_LOG_LEVEL"
	EnvUser     = "STUDYPLAN_USER"
	EnvTimezone = "STUDYPLAN_TIMEZONE"
)

// Config holds options that are not stored in the database.
type Config struct {
	// DB is a sqlite path or a PostgreSQL connection string. Empty means "decide later".
	DB       string
	Debug    bool
	LogLevel string
	UserID   string
	// Timezone overrides the persisted setting when set.
	Timezone string
}

// Load reads files (default .env) if present, then the environment. Values already
// set in the environment win over the file.
func Load(files ...string) *Config {
	_ = godotenv.Load(files...)

	return &Config{
		DB:       getEnv(EnvDB, ""),
		Debug:    getBoolEnv(EnvDebug, false),
		LogLevel: getEnv(EnvLogLevel, ""),
		UserID:   getEnv(EnvUser, constants.DefaultUserID),
		Timezone: getEnv(EnvTimezone, ""),
	}
}

// ResolveDB picks the database target: an explicit value, then a connection string
// stored in the OS keyring, then the default sqlite file. lookup may be nil.
func (c *Config) ResolveDB(lookup func() (string, error)) (string, error) {
	if c.DB != "" {
		return ExpandPath(c.DB)
	}
	if lookup != nil {
		connStr, err := lookup()
		switch {
		case err == nil && connStr != "":
			return connStr, nil
		case err != nil && !errors.Is(err, keyring.ErrNotFound) && !errors.Is(err, keyring.ErrKeyringUnavailable):
			return "", fmt.Errorf("reading keyring: %w", err)
		}
	}
	return ExpandPath(constants.DefaultConfigPath)
}

// ExpandPath resolves a leading ~ to the home directory. Connection strings pass through.
func ExpandPath(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}

// Dir is where logs and backups live: next to a sqlite file, or the default config
// directory when the database is remote.
func Dir(dbTarget string, remote bool) (string, error) {
	if !remote {
		return filepath.Dir(dbTarget), nil
	}
	path, err := ExpandPath(constants.DefaultConfigPath)
	if err != nil {
		return "", err
	}
	return filepath.Dir(path), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}
