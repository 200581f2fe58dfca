package config

import (
	stderrors "errors"
	"os"
	"strings"

	"github.com/spf13/viper"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/grid"
)

// newViperInstance creates a Viper instance with rota's defaults and the
// ROTA_ environment prefix. Nested keys map to underscored env vars, so
// grid.desktop is ROTA_GRID_DESKTOP.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("ROTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// setDefaults registers built-in defaults on the viper instance. Keys must
// match the struct tags in Config exactly.
func setDefaults(v *viper.Viper) {
	v.SetDefault("data_dir", "")
	v.SetDefault("grid.desktop", int(grid.ScaleDesktop))
	v.SetDefault("grid.tablet", int(grid.ScaleTablet))
	v.SetDefault("grid.mobile", int(grid.ScaleMobile))
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
}

// isConfigNotFoundError reports whether err is viper's missing-file error.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// Load reads configuration with the standard precedence: environment
// variables over the global config file over built-in defaults. A missing
// config file is not an error.
func Load() (*Config, error) {
	path, err := GlobalConfigPath()
	if err != nil {
		// No home directory; run on defaults and environment alone.
		path = ""
	}
	return LoadFromPath(path)
}

// LoadFromPath loads configuration from a specific file path. An empty
// path or a missing file skips the file layer.
func LoadFromPath(path string) (*Config, error) {
	v := newViperInstance()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
				return nil, rotaerrors.Wrapf(err, "failed to read config file %s", path)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, rotaerrors.Wrap(err, "failed to unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, rotaerrors.Wrap(err, "invalid configuration")
	}
	return &cfg, nil
}
