package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mrz1836/rota/internal/tui"
)

// AddDayCommand adds the day command to the root command.
func AddDayCommand(root *cobra.Command, app *appContext) {
	var breakpoint string

	cmd := &cobra.Command{
		Use:   "day [date]",
		Short: "Open the interactive day timeline",
		Long: `Open the day's timeline in an interactive view. Timed events are
laid out on a 24-hour grid with a marker tracking the current time; the
view opens scrolled so the marker sits near the top of the window.

The date defaults to today and accepts YYYY-MM-DD, today, tomorrow, or
yesterday.

Examples:
  rota day
  rota day 2026-09-01
  rota day --grid mobile`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runDay(cmd, app, arg, breakpoint)
		},
	}
	cmd.Flags().StringVar(&breakpoint, "grid", "desktop", "grid scale breakpoint (desktop|tablet|mobile)")
	root.AddCommand(cmd)
}

// runDay loads the day's events and runs the timeline program.
func runDay(cmd *cobra.Command, app *appContext, dateArg, breakpoint string) error {
	day, err := app.parseDate(dateArg)
	if err != nil {
		return err
	}

	events, err := loadDayEvents(cmd.Context(), app, day)
	if err != nil {
		return err
	}

	logger := GetLogger()
	logger.Debug().
		Str("date", day.Format("2006-01-02")).
		Int("events", len(events)).
		Msg("opening day view")

	model := tui.NewDayModel(day, events, app.cfg.Grid.Scale(breakpoint), app.clock())
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = program.Run()
	return err
}
