package config

import (
	"os"
	"strconv"
	"strings"
)

// loadFromEnv overrides config from TADA_* environment variables.
func loadFromEnv(cfg *Config) {
	setString := func(name string, dst *string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	setString("TADA_STORE", &cfg.Store)
	setString("TADA_DATA", &cfg.DataDir)
	setString("TADA_DB", &cfg.DBPath)
	setString("TADA_THEME", &cfg.Theme)
	setString("TADA_LOG_LEVEL", &cfg.LogLevel)
	setString("TADA_LOG_FILE", &cfg.LogFile)

	if v := os.Getenv("TADA_GROUP"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Group = b
		}
	}
}
