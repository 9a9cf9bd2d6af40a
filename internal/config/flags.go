package config

import (
	"flag"
)

// parseFlags registers the root flags on fs and parses args into dst.
// The returned set holds the names of flags given explicitly.
func parseFlags(dst *Config, fs *flag.FlagSet, args []string) (map[string]bool, error) {
	fs.StringVar(&dst.ConfigFile, "config", "", "path to a TOML config file")
	fs.StringVar(&dst.Store, "store", "", "storage backend: json, sqlite or memory")
	fs.StringVar(&dst.DataDir, "data", "", "directory holding tasks.json (json store)")
	fs.StringVar(&dst.DBPath, "db", "", "database file (sqlite store)")
	fs.StringVar(&dst.Theme, "theme", "", "color theme: classic, neon or mono")
	fs.StringVar(&dst.LogLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.StringVar(&dst.LogFile, "log-file", "", "append logs to this file")
	fs.BoolVar(&dst.Group, "group", false, "group output by pending/done")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	return set, nil
}

// applyFlags copies explicitly set flag values over cfg.
func applyFlags(cfg, flagged *Config, set map[string]bool) {
	if set["store"] {
		cfg.Store = flagged.Store
	}
	if set["data"] {
		cfg.DataDir = flagged.DataDir
	}
	if set["db"] {
		cfg.DBPath = flagged.DBPath
	}
	if set["theme"] {
		cfg.Theme = flagged.Theme
	}
	if set["log-level"] {
		cfg.LogLevel = flagged.LogLevel
	}
	if set["log-file"] {
		cfg.LogFile = flagged.LogFile
	}
	if set["group"] {
		cfg.Group = flagged.Group
	}
}
