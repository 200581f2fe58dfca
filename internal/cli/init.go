package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rota/internal/config"
	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// AddInitCommand adds the init command to the root command.
func AddInitCommand(root *cobra.Command, app *appContext) {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize rota configuration and data directory",
		Long: `Create the rota configuration file and data directory.

An existing configuration file is left untouched.

Examples:
  rota init`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.OutOrStdout(), app)
		},
	}
	root.AddCommand(cmd)
}

// runInit writes the default config file and creates the data directory.
func runInit(w io.Writer, app *appContext) error {
	configPath, err := config.GlobalConfigPath()
	if err != nil {
		return err
	}

	created, err := config.WriteDefault(configPath)
	if err != nil {
		return err
	}
	if created {
		_, _ = fmt.Fprintf(w, "Created config file: %s\n", configPath)
	} else {
		_, _ = fmt.Fprintf(w, "Config file already exists: %s\n", configPath)
	}

	dataDir, err := app.cfg.ResolveDataDir()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return rotaerrors.Wrap(err, "failed to create data directory")
	}
	_, _ = fmt.Fprintf(w, "Data directory: %s\n", dataDir)

	return nil
}
