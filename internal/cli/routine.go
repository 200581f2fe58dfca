package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mrz1836/rota/internal/ident"
	"github.com/mrz1836/rota/internal/routine"
	"github.com/mrz1836/rota/internal/store"
)

// AddRoutineCommand adds the routine command group to the root command.
func AddRoutineCommand(root *cobra.Command, app *appContext) {
	cmd := &cobra.Command{
		Use:   "routine",
		Short: "Manage routines",
		Long:  `Create, list, and inspect routines and their rotation queues.`,
	}

	addRoutineCreateCmd(cmd, app)
	addRoutineListCmd(cmd, app)
	addRoutineShowCmd(cmd, app)

	root.AddCommand(cmd)
}

// addRoutineCreateCmd adds the create subcommand.
func addRoutineCreateCmd(parent *cobra.Command, app *appContext) {
	var description string

	cmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a new routine",
		Long: `Create a routine with an empty rotation queue.

Examples:
  rota routine create "Morning block"
  rota routine create "Deep work" --description "Focus sessions"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutineCreate(cmd.Context(), cmd.OutOrStdout(), app, args[0], description)
		},
	}
	cmd.Flags().StringVar(&description, "description", "", "optional routine description")
	parent.AddCommand(cmd)
}

// runRoutineCreate creates and persists a new empty routine.
func runRoutineCreate(ctx context.Context, w io.Writer, app *appContext, name, description string) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}

	r := store.Routine{
		ID:          ident.New(),
		Name:        name,
		Description: description,
		Queue:       routine.NewQueue(),
	}
	if err := s.SaveRoutine(ctx, r); err != nil {
		return err
	}

	logger := GetLogger()
	logger.Info().Str("routine_id", r.ID).Str("name", r.Name).Msg("routine created")

	if app.flags.Output == OutputJSON {
		return outputJSON(w, r)
	}
	_, _ = fmt.Fprintf(w, "Created routine %q (%s)\n", r.Name, r.ID)
	return nil
}

// addRoutineListCmd adds the list subcommand.
func addRoutineListCmd(parent *cobra.Command, app *appContext) {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all routines",
		Long: `Display all routines with their iteration and item counts.

Examples:
  rota routine list
  rota routine list --output json`,
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRoutineList(cmd.Context(), cmd.OutOrStdout(), app)
		},
	}
	parent.AddCommand(cmd)
}

// runRoutineList executes the routine list command.
func runRoutineList(ctx context.Context, w io.Writer, app *appContext) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}

	routines, err := s.ListRoutines(ctx)
	if err != nil {
		return err
	}

	if len(routines) == 0 {
		if app.flags.Output == OutputJSON {
			_, _ = fmt.Fprintln(w, "[]")
		} else {
			_, _ = fmt.Fprintln(w, "No routines. Run 'rota routine create' to add one.")
		}
		return nil
	}

	if app.flags.Output == OutputJSON {
		return outputJSON(w, routines)
	}
	return outputRoutinesTable(w, routines)
}

// outputRoutinesTable renders routines as a styled table.
func outputRoutinesTable(w io.Writer, routines []store.Routine) error {
	const (
		nameWidth = 24
		idWidth   = 36
	)

	header := fmt.Sprintf("%-*s %-*s %10s %6s",
		nameWidth, "NAME", idWidth, "ID", "ITERATIONS", "ITEMS")
	_, _ = fmt.Fprintln(w, headerStyle().Render(header))

	for _, r := range routines {
		items := 0
		for _, it := range r.Queue.Iterations {
			items += len(it.Items)
		}
		_, _ = fmt.Fprintf(w, "%-*s %-*s %10d %6d\n",
			nameWidth, truncate(r.Name, nameWidth),
			idWidth, r.ID,
			len(r.Queue.Iterations), items)
	}
	return nil
}

// addRoutineShowCmd adds the show subcommand.
func addRoutineShowCmd(parent *cobra.Command, app *appContext) {
	cmd := &cobra.Command{
		Use:   "show <routine-id>",
		Short: "Show a routine and its rotation queue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRoutineShow(cmd.Context(), cmd.OutOrStdout(), app, args[0])
		},
	}
	parent.AddCommand(cmd)
}

// runRoutineShow prints one routine with its full queue.
func runRoutineShow(ctx context.Context, w io.Writer, app *appContext, routineID string) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}

	r, err := s.LoadRoutine(ctx, routineID)
	if err != nil {
		return err
	}

	if app.flags.Output == OutputJSON {
		return outputJSON(w, r)
	}

	_, _ = fmt.Fprintln(w, headerStyle().Render(r.Name))
	if r.Description != "" {
		_, _ = fmt.Fprintln(w, dimStyle().Render(r.Description))
	}
	_, _ = fmt.Fprintf(w, "Rotation: %s\n", r.Queue.RotationType)

	for _, it := range r.Queue.Iterations {
		_, _ = fmt.Fprintf(w, "\nIteration %d (%s)\n", it.Position+1, it.ID)
		if len(it.Items) == 0 {
			_, _ = fmt.Fprintln(w, dimStyle().Render("  (empty)"))
			continue
		}
		for _, item := range it.Items {
			_, _ = fmt.Fprintln(w, "  "+describeItem(item))
		}
	}
	return nil
}

// describeItem renders a one-line summary of a queue item.
func describeItem(item routine.Item) string {
	if item.Kind == routine.KindCooldown {
		return fmt.Sprintf("cooldown %-20s wait %s  (%s)",
			truncate(item.Name, 20), item.CooldownDuration, item.ID)
	}

	timing := "untimed"
	if item.HasSpecificTime {
		timing = fmt.Sprintf("%s for %dm", item.ExecutionTime, item.DurationMinutes)
	}
	return fmt.Sprintf("task     %-20s %-16s %s/%s  (%s)",
		truncate(item.Name, 20), timing, item.EvaluationMethod, item.Difficulty, item.ID)
}
