package config

import (
	"flag"
	"os"
	"path/filepath"
	"testing"
)

// isolate points HOME and the working directory at fresh temp dirs and
// clears TADA_* variables.
func isolate(t *testing.T) (home, wd string) {
	t.Helper()
	home, wd = t.TempDir(), t.TempDir()
	t.Setenv("HOME", home)
	for _, k := range []string{"TADA_STORE", "TADA_DATA", "TADA_DB", "TADA_THEME", "TADA_LOG_LEVEL", "TADA_LOG_FILE", "TADA_GROUP"} {
		t.Setenv(k, "")
	}
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(wd); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
	return home, wd
}

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func load(t *testing.T, args ...string) (*Config, []string) {
	t.Helper()
	cfg, rest, err := Load(flag.NewFlagSet("todo", flag.ContinueOnError), args)
	if err != nil {
		t.Fatalf("Load(%v): %v", args, err)
	}
	return cfg, rest
}

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, rest := load(t, "ls")

	if cfg.Store != DefaultStore {
		t.Errorf("Store: got %q, want %q", cfg.Store, DefaultStore)
	}
	if cfg.DBPath != DefaultDBPath {
		t.Errorf("DBPath: got %q, want %q", cfg.DBPath, DefaultDBPath)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme: got %q, want %q", cfg.Theme, DefaultTheme)
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel: got %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if len(rest) != 1 || rest[0] != "ls" {
		t.Errorf("rest: got %v, want [ls]", rest)
	}
}

func TestPrecedence(t *testing.T) {
	home, wd := isolate(t)
	writeFile(t, filepath.Join(home, ".tada", "config.toml"), "store = \"sqlite\"\ntheme = \"neon\"\nlog_level = \"debug\"\n")
	writeFile(t, filepath.Join(wd, "tada.toml"), "theme = \"mono\"\ndb_path = \"project.db\"\n")

	cfg, _ := load(t)
	if cfg.Store != StoreSQLite {
		t.Errorf("Store from user file: got %q", cfg.Store)
	}
	if cfg.Theme != "mono" {
		t.Errorf("Theme: project file should win, got %q", cfg.Theme)
	}
	if cfg.DBPath != "project.db" {
		t.Errorf("DBPath: got %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel: got %q", cfg.LogLevel)
	}

	t.Setenv("TADA_THEME", "classic")
	t.Setenv("TADA_DB", "env.db")
	cfg, _ = load(t)
	if cfg.Theme != "classic" {
		t.Errorf("Theme: env should win, got %q", cfg.Theme)
	}

	cfg, _ = load(t, "-theme", "neon", "-db", "flag.db", "add", "x")
	if cfg.Theme != "neon" {
		t.Errorf("Theme: flag should win, got %q", cfg.Theme)
	}
	if cfg.DBPath != "flag.db" {
		t.Errorf("DBPath: flag should win, got %q", cfg.DBPath)
	}
}

func TestExplicitConfigFile(t *testing.T) {
	_, wd := isolate(t)
	p := filepath.Join(wd, "custom.toml")
	writeFile(t, p, "store = \"memory\"\ngroup = true\n")

	cfg, _ := load(t, "-config", p)
	if cfg.Store != StoreMemory {
		t.Errorf("Store: got %q, want memory", cfg.Store)
	}
	if !cfg.Group {
		t.Errorf("Group: got false, want true")
	}
	if cfg.ConfigFile != p {
		t.Errorf("ConfigFile: got %q, want %q", cfg.ConfigFile, p)
	}

	cfg, _ = load(t, "-config", p, "-store", "json")
	if cfg.Store != StoreJSON {
		t.Errorf("Store: flag should beat -config file, got %q", cfg.Store)
	}
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"store", []string{"-store", "redis"}},
		{"theme", []string{"-theme", "sepia"}},
		{"log level", []string{"-log-level", "loud"}},
		{"sqlite without db", []string{"-store", "sqlite", "-db", ""}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			fs := flag.NewFlagSet("todo", flag.ContinueOnError)
			fs.SetOutput(devNull{})
			if _, _, err := Load(fs, tt.args); err == nil {
				t.Errorf("Load(%v): expected error", tt.args)
			}
		})
	}
}

func TestBadTOML(t *testing.T) {
	_, wd := isolate(t)
	writeFile(t, filepath.Join(wd, "tada.toml"), "store = \n")
	if _, _, err := Load(flag.NewFlagSet("todo", flag.ContinueOnError), nil); err == nil {
		t.Error("expected error for broken project file")
	}
}

type devNull struct{}

func (devNull) Write(p []byte) (int, error) { return len(p), nil }
