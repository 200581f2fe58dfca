package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/routine"
)

// AddQueueCommand adds the queue command group to the root command. Every
// subcommand operates on one routine's rotation queue, named by the
// required --routine flag.
func AddQueueCommand(root *cobra.Command, app *appContext) {
	var routineID string

	cmd := &cobra.Command{
		Use:   "queue",
		Short: "Edit a routine's rotation queue",
		Long: `Edit the iterations and items of a routine's rotation queue.

Edits are read-modify-write: the queue is loaded whole, changed, validated,
and written back. Removals of vanished targets succeed quietly; edits of
vanished targets fail.`,
	}
	cmd.PersistentFlags().StringVarP(&routineID, "routine", "r", "", "routine id (required)")
	_ = cmd.MarkPersistentFlagRequired("routine")

	addQueueAddIterationCmd(cmd, app, &routineID)
	addQueueRemoveIterationCmd(cmd, app, &routineID)
	addQueueReorderCmd(cmd, app, &routineID)
	addQueueDuplicateIterationCmd(cmd, app, &routineID)
	addQueueAddItemCmd(cmd, app, &routineID)
	addQueueRemoveItemCmd(cmd, app, &routineID)
	addQueueDuplicateItemCmd(cmd, app, &routineID)
	addQueueEditItemCmd(cmd, app, &routineID)

	root.AddCommand(cmd)
}

// mutateQueue loads the routine, applies fn to its queue, checks the
// structural invariants, and writes the routine back. Only structure is
// checked here: queues under authoring hold partially filled items, so the
// full submit validation would reject every freshly added item.
func mutateQueue(ctx context.Context, app *appContext, routineID string,
	fn func(e routine.Editor, q routine.Queue) (routine.Queue, error)) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}

	r, err := s.LoadRoutine(ctx, routineID)
	if err != nil {
		return err
	}

	q, err := fn(routine.NewEditor(), r.Queue)
	if err != nil {
		return err
	}
	if err := q.ValidateStructure(); err != nil {
		return rotaerrors.Wrap(err, "edit produced an invalid queue")
	}

	r.Queue = q
	return s.SaveRoutine(ctx, r)
}

// addQueueAddIterationCmd adds the add-iteration subcommand.
func addQueueAddIterationCmd(parent *cobra.Command, app *appContext, routineID *string) {
	cmd := &cobra.Command{
		Use:   "add-iteration",
		Short: "Append an empty iteration to the queue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mutateQueue(cmd.Context(), app, *routineID,
				func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
					return e.AddIteration(q), nil
				})
		},
	}
	parent.AddCommand(cmd)
}

// addQueueRemoveIterationCmd adds the remove-iteration subcommand.
func addQueueRemoveIterationCmd(parent *cobra.Command, app *appContext, routineID *string) {
	cmd := &cobra.Command{
		Use:   "remove-iteration <iteration-id>",
		Short: "Remove an iteration from the queue",
		Long: `Remove an iteration. Remaining iterations are renumbered to stay
dense. Removing an iteration that no longer exists succeeds quietly.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateQueue(cmd.Context(), app, *routineID,
				func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
					return e.RemoveIteration(q, args[0]), nil
				})
		},
	}
	parent.AddCommand(cmd)
}

// addQueueReorderCmd adds the reorder subcommand.
func addQueueReorderCmd(parent *cobra.Command, app *appContext, routineID *string) {
	cmd := &cobra.Command{
		Use:   "reorder <from-index> <to-index>",
		Short: "Move an iteration to a new position",
		Long: `Move the iteration at from-index to to-index. Indexes are zero
based and must both be in range; out-of-range indexes are rejected, not
clamped.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			from, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("%w: from-index %q is not a number", rotaerrors.ErrInvalidArgument, args[0])
			}
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("%w: to-index %q is not a number", rotaerrors.ErrInvalidArgument, args[1])
			}
			return mutateQueue(cmd.Context(), app, *routineID,
				func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
					return e.ReorderIterations(q, from, to)
				})
		},
	}
	parent.AddCommand(cmd)
}

// addQueueDuplicateIterationCmd adds the duplicate-iteration subcommand.
func addQueueDuplicateIterationCmd(parent *cobra.Command, app *appContext, routineID *string) {
	cmd := &cobra.Command{
		Use:   "duplicate-iteration <iteration-id>",
		Short: "Duplicate an iteration at the end of the queue",
		Long: `Duplicate an iteration. The copy and all of its items receive
fresh identifiers and the copy is appended at the end of the queue.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateQueue(cmd.Context(), app, *routineID,
				func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
					return e.DuplicateIteration(q, args[0])
				})
		},
	}
	parent.AddCommand(cmd)
}

// addQueueAddItemCmd adds the add-item subcommand.
func addQueueAddItemCmd(parent *cobra.Command, app *appContext, routineID *string) {
	var kind string

	cmd := &cobra.Command{
		Use:   "add-item <iteration-id>",
		Short: "Append a new item to an iteration",
		Long: `Append a new item with defaults to an iteration. Tasks default to
yes/no evaluation at medium difficulty; cooldowns default to one day.

Examples:
  rota queue add-item it-1 -r rt-1
  rota queue add-item it-1 -r rt-1 --kind cooldown`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemKind, err := parseItemKind(kind)
			if err != nil {
				return err
			}
			return mutateQueue(cmd.Context(), app, *routineID,
				func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
					return e.AddItem(q, args[0], itemKind)
				})
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "task", "item kind (task|cooldown)")
	parent.AddCommand(cmd)
}

// parseItemKind maps the user-facing kind names onto the model's.
func parseItemKind(kind string) (routine.ItemKind, error) {
	switch kind {
	case "task":
		return routine.KindWork, nil
	case "cooldown":
		return routine.KindCooldown, nil
	default:
		return "", fmt.Errorf("%w: kind %q must be task or cooldown", rotaerrors.ErrInvalidArgument, kind)
	}
}

// addQueueRemoveItemCmd adds the remove-item subcommand.
func addQueueRemoveItemCmd(parent *cobra.Command, app *appContext, routineID *string) {
	cmd := &cobra.Command{
		Use:   "remove-item <iteration-id> <item-id>",
		Short: "Remove an item from an iteration",
		Long: `Remove an item. Removing an item that no longer exists succeeds
quietly; the order of the remaining items is preserved.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateQueue(cmd.Context(), app, *routineID,
				func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
					return e.RemoveItem(q, args[0], args[1]), nil
				})
		},
	}
	parent.AddCommand(cmd)
}

// addQueueDuplicateItemCmd adds the duplicate-item subcommand.
func addQueueDuplicateItemCmd(parent *cobra.Command, app *appContext, routineID *string) {
	cmd := &cobra.Command{
		Use:   "duplicate-item <iteration-id> <item-id>",
		Short: "Duplicate an item within its iteration",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return mutateQueue(cmd.Context(), app, *routineID,
				func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
					return e.DuplicateItem(q, args[0], args[1])
				})
		},
	}
	parent.AddCommand(cmd)
}

// editItemFlags holds the flag values for edit-item. Only flags the user
// actually set are folded into the patch.
type editItemFlags struct {
	name        string
	description string
	method      string
	target      float64
	timed       bool
	execTime    string
	duration    int
	areaID      string
	projectID   string
	difficulty  string
	cooldown    string
	interactive bool
}

// addQueueEditItemCmd adds the edit-item subcommand.
func addQueueEditItemCmd(parent *cobra.Command, app *appContext, routineID *string) {
	var f editItemFlags

	cmd := &cobra.Command{
		Use:   "edit-item <iteration-id> <item-id>",
		Short: "Edit an item's fields",
		Long: `Edit an item. Only the fields named by flags change; with
--interactive a form collects the changes instead.

Editing an item that no longer exists fails.

Examples:
  rota queue edit-item it-1 task-1 -r rt-1 --name "Review inbox" --timed --time 09:30 --duration 45
  rota queue edit-item it-1 task-1 -r rt-1 --method NUMERIC --target 20
  rota queue edit-item it-1 cool-1 -r rt-1 --cooldown 2d
  rota queue edit-item it-1 task-1 -r rt-1 --interactive`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQueueEditItem(cmd, app, *routineID, args[0], args[1], &f)
		},
	}

	cmd.Flags().StringVar(&f.name, "name", "", "item name")
	cmd.Flags().StringVar(&f.description, "description", "", "item description")
	cmd.Flags().StringVar(&f.method, "method", "", "evaluation method (YES_NO|NUMERIC)")
	cmd.Flags().Float64Var(&f.target, "target", 0, "numeric target value")
	cmd.Flags().BoolVar(&f.timed, "timed", false, "whether the task runs at a specific time")
	cmd.Flags().StringVar(&f.execTime, "time", "", "execution time (HH:MM)")
	cmd.Flags().IntVar(&f.duration, "duration", 0, "duration in minutes")
	cmd.Flags().StringVar(&f.areaID, "area", "", "area id")
	cmd.Flags().StringVar(&f.projectID, "project", "", "project id")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", "", "difficulty (TRIVIAL|EASY|MEDIUM|HARD)")
	cmd.Flags().StringVar(&f.cooldown, "cooldown", "", "cooldown duration (e.g. 1d, 12h)")
	cmd.Flags().BoolVarP(&f.interactive, "interactive", "i", false, "edit via an interactive form")
	parent.AddCommand(cmd)
}

// runQueueEditItem executes the edit-item command.
func runQueueEditItem(cmd *cobra.Command, app *appContext, routineID, iterationID, itemID string, f *editItemFlags) error {
	if f.interactive {
		return runQueueEditItemInteractive(cmd.Context(), cmd.OutOrStdout(), app, routineID, iterationID, itemID)
	}

	patch, err := patchFromFlags(cmd, f)
	if err != nil {
		return err
	}
	return mutateQueue(cmd.Context(), app, routineID,
		func(e routine.Editor, q routine.Queue) (routine.Queue, error) {
			return e.UpdateItem(q, iterationID, itemID, patch)
		})
}

// patchFromFlags builds an ItemPatch from the flags the user actually set.
func patchFromFlags(cmd *cobra.Command, f *editItemFlags) (routine.ItemPatch, error) {
	var patch routine.ItemPatch

	if cmd.Flags().Changed("name") {
		patch.Name = &f.name
	}
	if cmd.Flags().Changed("description") {
		patch.Description = &f.description
	}
	if cmd.Flags().Changed("method") {
		m := routine.EvaluationMethod(f.method)
		if !m.IsValid() {
			return routine.ItemPatch{}, fmt.Errorf("%w: method %q must be one of %v",
				rotaerrors.ErrInvalidArgument, f.method, routine.ValidEvaluationMethods())
		}
		patch.EvaluationMethod = &m
	}
	if cmd.Flags().Changed("target") {
		patch.TargetValue = &f.target
	}
	if cmd.Flags().Changed("timed") {
		patch.HasSpecificTime = &f.timed
	}
	if cmd.Flags().Changed("time") {
		patch.ExecutionTime = &f.execTime
	}
	if cmd.Flags().Changed("duration") {
		patch.DurationMinutes = &f.duration
	}
	if cmd.Flags().Changed("area") {
		patch.AreaID = &f.areaID
	}
	if cmd.Flags().Changed("project") {
		patch.ProjectID = &f.projectID
	}
	if cmd.Flags().Changed("difficulty") {
		d := routine.Difficulty(f.difficulty)
		if !d.IsValid() {
			return routine.ItemPatch{}, fmt.Errorf("%w: difficulty %q must be one of %v",
				rotaerrors.ErrInvalidArgument, f.difficulty, routine.ValidDifficulties())
		}
		patch.Difficulty = &d
	}
	if cmd.Flags().Changed("cooldown") {
		patch.CooldownDuration = &f.cooldown
	}

	return patch, nil
}

// runQueueEditItemInteractive collects the edit via a form prefilled with
// the item's current values, then applies it as a patch.
func runQueueEditItemInteractive(ctx context.Context, w io.Writer, app *appContext, routineID, iterationID, itemID string) error {
	s, err := app.openStore()
	if err != nil {
		return err
	}
	r, err := s.LoadRoutine(ctx, routineID)
	if err != nil {
		return err
	}

	item, err := findItem(r.Queue, iterationID, itemID)
	if err != nil {
		return err
	}

	patch, err := collectItemForm(item)
	if err != nil {
		return err
	}

	e := routine.NewEditor()
	q, err := e.UpdateItem(r.Queue, iterationID, itemID, patch)
	if err != nil {
		return err
	}
	if err := q.ValidateStructure(); err != nil {
		return rotaerrors.Wrap(err, "edit produced an invalid queue")
	}

	r.Queue = q
	if err := s.SaveRoutine(ctx, r); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(w, "Updated item %s\n", itemID)
	return nil
}

// findItem resolves an item by iteration and item id.
func findItem(q routine.Queue, iterationID, itemID string) (routine.Item, error) {
	for _, it := range q.Iterations {
		if it.ID != iterationID {
			continue
		}
		for _, item := range it.Items {
			if item.ID == itemID {
				return item, nil
			}
		}
		return routine.Item{}, fmt.Errorf("%w: %s in iteration %s", rotaerrors.ErrItemNotFound, itemID, iterationID)
	}
	return routine.Item{}, fmt.Errorf("%w: %s", rotaerrors.ErrIterationNotFound, iterationID)
}
