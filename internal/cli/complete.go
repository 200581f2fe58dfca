package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// AddCompleteCommand adds the complete command to the root command.
func AddCompleteCommand(root *cobra.Command, app *appContext) {
	cmd := &cobra.Command{
		Use:   "complete <occurrence-id> [value]",
		Short: "Record progress on an occurrence",
		Long: `Record progress on a scheduled occurrence. Yes/no occurrences
complete on any positive value; numeric occurrences complete when the
recorded value reaches their target. The value defaults to 1.

Examples:
  rota complete occ-123
  rota complete occ-456 20`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			value := 1.0
			if len(args) == 2 {
				v, err := strconv.ParseFloat(args[1], 64)
				if err != nil {
					return fmt.Errorf("%w: value %q is not a number", rotaerrors.ErrInvalidArgument, args[1])
				}
				value = v
			}
			return runComplete(cmd.Context(), cmd.OutOrStdout(), app, args[0], value)
		},
	}
	root.AddCommand(cmd)
}

// runComplete executes the complete command.
func runComplete(ctx context.Context, w io.Writer, app *appContext, occurrenceID string, value float64) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}

	if err := s.RecordProgress(ctx, occurrenceID, value); err != nil {
		return err
	}

	logger := GetLogger()
	logger.Info().
		Str("occurrence_id", occurrenceID).
		Float64("value", value).
		Msg("progress recorded")

	_, _ = fmt.Fprintf(w, "Recorded progress %g on %s\n", value, occurrenceID)
	return nil
}
