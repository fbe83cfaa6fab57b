// Package config centralizes tunable game parameters, the spawn-pacing rules
// file and environment lookups shared by the commands.
package config

import (
	"os"
	"strconv"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// GetEnvInt64 is GetEnv for integer values. Unparsable values yield fallback.
func GetEnvInt64(key string, fallback int64) int64 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

// FromEnv builds the configuration the commands run with: the file named by
// SPACEPIRATE_CONFIG (or the defaults), then SPACEPIRATE_SEED and the
// LOG_LEVEL, LOG_FORMAT and LOG_FILE overrides.
func FromEnv() (*Config, error) {
	cfg := Default()
	if path := GetEnv("SPACEPIRATE_CONFIG", ""); path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}

	cfg.Rules.Seed = GetEnvInt64("SPACEPIRATE_SEED", cfg.Rules.Seed)
	cfg.Logging.Level = GetEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = GetEnv("LOG_FORMAT", cfg.Logging.Format)
	cfg.Logging.File = GetEnv("LOG_FILE", cfg.Logging.File)
	return cfg, nil
}
