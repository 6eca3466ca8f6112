// Package config handles configuration loading and defaults.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"

	"tudu-cli/internal/store"
)

const configFileName = "config.toml"

// DefaultQuotaBytes is the default storage budget the usage estimator
// measures against (50 MiB, generous for a local task list).
const DefaultQuotaBytes int64 = 50 << 20

// Config holds the full configuration for tudu.
//
// Precedence per field: environment > config file > default.
type Config struct {
	// Dir is the data directory holding the database, app state and cache.
	Dir string `toml:"dir"`

	// QuotaBytes is the storage budget for the usage warning. Zero
	// disables the warning entirely.
	QuotaBytes int64 `toml:"quota_bytes"`

	// LogLevel is one of debug|info|warn|error.
	LogLevel string `toml:"log_level"`
}

func defaults() (Config, error) {
	dir, err := store.DefaultDir()
	if err != nil {
		return Config{}, err
	}
	return Config{
		Dir:        dir,
		QuotaBytes: DefaultQuotaBytes,
		LogLevel:   "info",
	}, nil
}

// Load reads config.toml from the data dir (if present) and applies
// environment overrides. A missing file is not an error; a malformed file
// is.
func Load() (Config, error) {
	cfg, err := defaults()
	if err != nil {
		return Config{}, err
	}

	path := filepath.Join(cfg.Dir, configFileName)
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, err
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TUDU_DIR"); v != "" {
		cfg.Dir = v
	}
	if v := os.Getenv("TUDU_QUOTA_BYTES"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n >= 0 {
			cfg.QuotaBytes = n
		}
	}
	if v := os.Getenv("TUDU_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
}
