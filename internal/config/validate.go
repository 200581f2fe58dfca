package config

import (
	"github.com/rs/zerolog"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// Validate checks the configuration for invalid values and returns an
// error describing the first failure found.
//
// Validation rules:
//   - every grid scale must be positive
//   - log.level must be a recognized zerolog level name
func Validate(cfg *Config) error {
	if cfg == nil {
		return rotaerrors.ErrConfigNil
	}
	if err := validateGridConfig(&cfg.Grid); err != nil {
		return err
	}
	return validateLogConfig(&cfg.Log)
}

// validateGridConfig checks the per-breakpoint scales.
func validateGridConfig(cfg *GridConfig) error {
	for _, s := range []struct {
		name  string
		value int
	}{
		{"grid.desktop", cfg.Desktop},
		{"grid.tablet", cfg.Tablet},
		{"grid.mobile", cfg.Mobile},
	} {
		if s.value <= 0 {
			return rotaerrors.Wrapf(rotaerrors.ErrConfigInvalidGrid,
				"%s must be positive, got %d", s.name, s.value)
		}
	}
	return nil
}

// validateLogConfig checks the logging settings.
func validateLogConfig(cfg *LogConfig) error {
	if cfg.Level == "" {
		return nil
	}
	if _, err := zerolog.ParseLevel(cfg.Level); err != nil {
		return rotaerrors.Wrapf(rotaerrors.ErrConfigInvalidLog,
			"log.level %q is not a valid level", cfg.Level)
	}
	return nil
}
