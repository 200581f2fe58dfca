// Package config loads and validates rota configuration.
//
// Configuration comes from three layers, highest precedence first:
// environment variables (ROTA_ prefix), the config file (~/.rota/config.yaml),
// and built-in defaults.
package config

import (
	"github.com/mrz1836/rota/internal/grid"
)

// Config is the complete rota configuration.
type Config struct {
	// DataDir is the directory holding routine and instance documents.
	// Empty means the default location under the user's home directory.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// Grid configures the time-grid pixel scales per breakpoint.
	Grid GridConfig `mapstructure:"grid" yaml:"grid"`

	// Log configures logging output.
	Log LogConfig `mapstructure:"log" yaml:"log"`
}

// GridConfig holds the pixels-per-hour scale for each breakpoint.
type GridConfig struct {
	Desktop int `mapstructure:"desktop" yaml:"desktop"`
	Tablet  int `mapstructure:"tablet" yaml:"tablet"`
	Mobile  int `mapstructure:"mobile" yaml:"mobile"`
}

// Scale returns the configured scale for the named breakpoint, falling
// back to the desktop scale for unknown names.
func (g GridConfig) Scale(breakpoint string) grid.Scale {
	switch breakpoint {
	case "tablet":
		return grid.Scale(g.Tablet)
	case "mobile":
		return grid.Scale(g.Mobile)
	default:
		return grid.Scale(g.Desktop)
	}
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Level is a zerolog level name: trace, debug, info, warn, error.
	Level string `mapstructure:"level" yaml:"level"`

	// File is an optional log file path. Empty disables file logging.
	File string `mapstructure:"file" yaml:"file"`
}

// DefaultConfig returns a Config with built-in defaults. These match the
// defaults registered on the viper instance in Load.
func DefaultConfig() *Config {
	return &Config{
		DataDir: "",
		Grid: GridConfig{
			Desktop: int(grid.ScaleDesktop),
			Tablet:  int(grid.ScaleTablet),
			Mobile:  int(grid.ScaleMobile),
		},
		Log: LogConfig{
			Level: "info",
			File:  "",
		},
	}
}
