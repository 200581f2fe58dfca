package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// WriteDefault writes a config file populated with the built-in defaults
// to the given path, creating parent directories as needed. An existing
// file is left untouched and reported via the returned bool.
func WriteDefault(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, rotaerrors.Wrap(err, "failed to create config directory")
	}

	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return false, rotaerrors.Wrap(err, "failed to encode default config")
	}
	header := "# rota configuration.\n" +
		"# data_dir: where routine and instance documents live (empty = ~/.rota/data)\n" +
		"# grid: pixels per hour for each breakpoint\n" +
		"# log.file: optional log file path (empty = console only)\n"
	data = append([]byte(header), data...)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return false, rotaerrors.Wrapf(err, "failed to write %s", path)
	}
	return true, nil
}
