package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables that override the config file.
const (
	EnvDataFile        = "BENCHAVG_DATA_FILE"
	EnvDebug           = "BENCHAVG_DEBUG"
	EnvAddr            = "BENCHAVG_ADDR"
	EnvLegacyResponses = "BENCHAVG_LEGACY_RESPONSES"
	EnvTheme           = "BENCHAVG_THEME"
)

// LoadDotEnv loads the first .env file found. Variables already set in the
// process environment win.
func LoadDotEnv() {
	for _, path := range envPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func envPaths() []string {
	var paths []string
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}
	paths = append(paths, filepath.Join(ConfigDir(), ".env"))
	return paths
}

// ApplyEnv overrides cfg with any BENCHAVG_* variables that are set.
func ApplyEnv(cfg *Config) error {
	cfg.General.DataFile = getEnvString(EnvDataFile, cfg.General.DataFile)
	cfg.Server.Addr = getEnvString(EnvAddr, cfg.Server.Addr)
	cfg.Appearance.Theme = getEnvString(EnvTheme, cfg.Appearance.Theme)

	var err error
	if cfg.General.Debug, err = getEnvBool(EnvDebug, cfg.General.Debug); err != nil {
		return err
	}
	if cfg.Server.LegacyResponses, err = getEnvBool(EnvLegacyResponses, cfg.Server.LegacyResponses); err != nil {
		return err
	}
	return nil
}

func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}
