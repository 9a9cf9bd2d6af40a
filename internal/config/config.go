// Package config loads tada settings from defaults, TOML files, the
// environment and command-line flags, in that order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	StoreJSON   = "json"
	StoreSQLite = "sqlite"
	StoreMemory = "memory"

	DefaultStore    = StoreJSON
	DefaultDBPath   = "todos.db"
	DefaultTheme    = "classic"
	DefaultLogLevel = "info"

	userConfigDir   = ".tada"
	configFileName  = "config.toml"
	projectFileName = "tada.toml"
)

// Config holds every tunable. Field names double as TOML keys.
type Config struct {
	Store    string `toml:"store"`
	DataDir  string `toml:"data_dir"` // json store: directory holding tasks.json
	DBPath   string `toml:"db_path"`  // sqlite store: database file
	Theme    string `toml:"theme"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	Group    bool   `toml:"group"`

	// Path of the explicit -config file, if any. Not read from TOML.
	ConfigFile string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.Store = DefaultStore
	cfg.DataDir = ""
	cfg.DBPath = DefaultDBPath
	cfg.Theme = DefaultTheme
	cfg.LogLevel = DefaultLogLevel
}

// Load builds the config:
// 1. Defaults
// 2. User config file (~/.tada/config.toml)
// 3. Project config file (tada.toml in the working directory)
// 4. File named by -config
// 5. Environment variables (TADA_*)
// 6. CLI flags
//
// It returns the arguments left after flag parsing.
func Load(fs *flag.FlagSet, args []string) (*Config, []string, error) {
	cfg := &Config{}
	setDefaults(cfg)

	if p := userConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, nil, fmt.Errorf("loading user config file %s: %w", p, err)
		}
	}
	if p := projectConfigFile(); p != "" {
		if err := loadConfigFile(cfg, p); err != nil {
			return nil, nil, fmt.Errorf("loading project config file %s: %w", p, err)
		}
	}

	// flags are parsed into a scratch config first so -config can be honoured
	// before env and flag values are layered on top
	flagged := &Config{}
	set, err := parseFlags(flagged, fs, args)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}
	if flagged.ConfigFile != "" {
		if err := loadConfigFile(cfg, flagged.ConfigFile); err != nil {
			return nil, nil, fmt.Errorf("loading config file %s: %w", flagged.ConfigFile, err)
		}
		cfg.ConfigFile = flagged.ConfigFile
	}

	loadFromEnv(cfg)
	applyFlags(cfg, flagged, set)

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func userConfigFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return existing(filepath.Join(home, userConfigDir, configFileName))
}

func projectConfigFile() string {
	return existing(projectFileName)
}

func existing(p string) string {
	if st, err := os.Stat(p); err == nil && !st.IsDir() {
		return p
	}
	return ""
}

// Validate rejects values nothing downstream knows how to handle.
func (c *Config) Validate() error {
	var errs []error
	switch c.Store {
	case StoreJSON, StoreSQLite, StoreMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store %q (want json, sqlite or memory)", c.Store))
	}
	switch strings.ToLower(c.Theme) {
	case "classic", "neon", "mono":
	default:
		errs = append(errs, fmt.Errorf("unknown theme %q (want classic, neon or mono)", c.Theme))
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.LogLevel))
	}
	if c.Store == StoreSQLite && c.DBPath == "" {
		errs = append(errs, errors.New("sqlite store needs a db path"))
	}
	return errors.Join(errs...)
}
