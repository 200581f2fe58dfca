package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rota/internal/schedule"
)

// AddEventsCommand adds the events command to the root command.
func AddEventsCommand(root *cobra.Command, app *appContext) {
	cmd := &cobra.Command{
		Use:   "events [date]",
		Short: "List the timed events of a day",
		Long: `Project the day's scheduled occurrences onto the timeline and list
them in start order. Untimed occurrences are not shown.

The date defaults to today and accepts YYYY-MM-DD, today, tomorrow, or
yesterday.

Examples:
  rota events
  rota events 2026-09-01
  rota events tomorrow --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			arg := ""
			if len(args) > 0 {
				arg = args[0]
			}
			return runEvents(cmd.Context(), cmd.OutOrStdout(), app, arg)
		},
	}
	root.AddCommand(cmd)
}

// runEvents executes the events command.
func runEvents(ctx context.Context, w io.Writer, app *appContext, dateArg string) error {
	day, err := app.parseDate(dateArg)
	if err != nil {
		return err
	}

	events, err := loadDayEvents(ctx, app, day)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		if app.flags.Output == OutputJSON {
			_, _ = fmt.Fprintln(w, "[]")
		} else {
			_, _ = fmt.Fprintf(w, "No timed events on %s.\n", day.Format("January 2, 2006"))
		}
		return nil
	}

	if app.flags.Output == OutputJSON {
		return outputJSON(w, events)
	}
	return outputEventsTable(w, events)
}

// loadDayEvents reads the day's instances and projects them onto the
// timeline, classified against the clock's today.
func loadDayEvents(ctx context.Context, app *appContext, day time.Time) ([]schedule.Event, error) {
	s, err := app.openStore()
	if err != nil {
		return nil, err
	}

	instances, err := s.Instances(ctx, day, day)
	if err != nil {
		return nil, err
	}
	return schedule.Project(instances, app.clock().Now())
}

// outputEventsTable renders events as a styled table.
func outputEventsTable(w io.Writer, events []schedule.Event) error {
	const (
		timeWidth    = 14
		titleWidth   = 28
		routineWidth = 20
	)

	header := fmt.Sprintf("%-*s %-*s %-*s %s",
		timeWidth, "TIME", titleWidth, "TITLE", routineWidth, "ROUTINE", "STATUS")
	_, _ = fmt.Fprintln(w, headerStyle().Render(header))

	for _, ev := range events {
		_, _ = fmt.Fprintf(w, "%-*s %-*s %-*s %s\n",
			timeWidth, ev.TimeRange,
			titleWidth, truncate(ev.Title, titleWidth),
			routineWidth, truncate(ev.RoutineName, routineWidth),
			renderStatus(ev.Status))
	}
	return nil
}
