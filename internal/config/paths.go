package config

import (
	"os"
	"path/filepath"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// rotaHome is the name of the per-user rota directory.
const rotaHome = ".rota"

// GlobalConfigDir returns the path to the rota configuration directory,
// typically ~/.rota on Unix systems.
func GlobalConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", rotaerrors.Wrap(err, "failed to get home directory")
	}
	return filepath.Join(home, rotaHome), nil
}

// GlobalConfigPath returns the full path to the configuration file,
// typically ~/.rota/config.yaml.
func GlobalConfigPath() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultDataDir returns the default data directory, ~/.rota/data.
func DefaultDataDir() (string, error) {
	dir, err := GlobalConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// ResolveDataDir returns the effective data directory for the config,
// falling back to the default when none is set.
func (c *Config) ResolveDataDir() (string, error) {
	if c.DataDir != "" {
		return c.DataDir, nil
	}
	return DefaultDataDir()
}
