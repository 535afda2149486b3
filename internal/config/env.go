package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// SettingsFileEnv names the variable that overrides the settings file path.
const SettingsFileEnv = "USERDESK_SETTINGS"

// DefaultSettingsFile is read when SettingsFileEnv is unset.
const DefaultSettingsFile = ".env"

// Load reads the settings file (if any) into the process environment and parses
// the environment into a Config. Variables already set in the environment win
// over the file. An empty path falls back to SettingsFileEnv, then DefaultSettingsFile.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(SettingsFileEnv)
	}
	if path == "" {
		path = DefaultSettingsFile
	}

	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load settings file %s: %w", path, err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}
