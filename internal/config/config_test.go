package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{EnvDataFile, EnvDebug, EnvAddr, EnvLegacyResponses, EnvTheme} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load = %+v, want defaults", cfg)
	}
	if cfg.General.Debug {
		t.Error("debug must default to off")
	}
	if Exists() {
		t.Error("Exists = true with no config file")
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DataFile = "/data/results.db"
	cfg.General.Debug = true
	cfg.Server.Addr = ":9000"
	cfg.Server.LegacyResponses = true
	cfg.Appearance.Theme = "tokyo-night"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := LoadFile(ConfigPath())
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if got != cfg {
		t.Errorf("LoadFile = %+v, want %+v", got, cfg)
	}
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := "[server]\nlegacy_responses = true\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if !cfg.Server.LegacyResponses {
		t.Error("legacy_responses not read")
	}
	if cfg.General.DataFile != "test_database.json" || cfg.Server.Addr != "127.0.0.1:8000" {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general\ndata_file = "), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvDataFile, "other.json")
	t.Setenv(EnvDebug, "true")
	t.Setenv(EnvAddr, ":7000")
	t.Setenv(EnvLegacyResponses, "1")
	t.Setenv(EnvTheme, "")

	cfg := DefaultConfig()
	if err := ApplyEnv(&cfg); err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.General.DataFile != "other.json" || !cfg.General.Debug {
		t.Errorf("general = %+v", cfg.General)
	}
	if cfg.Server.Addr != ":7000" || !cfg.Server.LegacyResponses {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Errorf("empty env var should keep theme, got %q", cfg.Appearance.Theme)
	}

	t.Setenv(EnvDebug, "sometimes")
	if err := ApplyEnv(&cfg); err == nil {
		t.Error("expected error for non-boolean BENCHAVG_DEBUG")
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Chdir(t.TempDir())

	envFile := filepath.Join(dir, "benchavg", ".env")
	if err := os.MkdirAll(filepath.Dir(envFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(envFile, []byte(EnvAddr+"=:6000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvAddr, "")
	os.Unsetenv(EnvAddr)

	LoadDotEnv()
	if got := os.Getenv(EnvAddr); got != ":6000" {
		t.Errorf("%s = %q, want :6000", EnvAddr, got)
	}
}
