package routine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// seqEditor returns an Editor with a deterministic id sequence.
func seqEditor() Editor {
	n := 0
	return Editor{NewID: func() string {
		n++
		return fmt.Sprintf("id-%03d", n)
	}}
}

// buildQueue constructs a queue with the given number of iterations, each
// holding one default work item.
func buildQueue(e Editor, iterations int) Queue {
	q := NewQueue()
	for range iterations {
		q = e.AddIteration(q)
		var err error
		q, err = e.AddItem(q, q.Iterations[len(q.Iterations)-1].ID, KindWork)
		if err != nil {
			panic(err)
		}
	}
	return q
}

// positions extracts the iteration positions in array order.
func positions(q Queue) []int {
	out := make([]int, len(q.Iterations))
	for i, it := range q.Iterations {
		out[i] = it.Position
	}
	return out
}

func TestEditor_AddIteration(t *testing.T) {
	t.Parallel()
	e := seqEditor()

	q := e.AddIteration(NewQueue())
	q = e.AddIteration(q)
	q = e.AddIteration(q)

	assert.Equal(t, []int{0, 1, 2}, positions(q))
	assert.Empty(t, q.Iterations[0].Items)
}

func TestEditor_AddIteration_DoesNotMutateInput(t *testing.T) {
	t.Parallel()
	e := seqEditor()
	q := e.AddIteration(NewQueue())

	_ = e.AddIteration(q)
	assert.Len(t, q.Iterations, 1)
}

func TestEditor_RemoveIteration(t *testing.T) {
	t.Parallel()

	t.Run("dense renumber after removing the middle stage", func(t *testing.T) {
		e := seqEditor()
		q := buildQueue(e, 3)
		require.Equal(t, []int{0, 1, 2}, positions(q))

		got := e.RemoveIteration(q, q.Iterations[1].ID)

		require.Len(t, got.Iterations, 2)
		assert.Equal(t, []int{0, 1}, positions(got), "positions must be dense, not [0,2]")
		assert.Equal(t, q.Iterations[0].ID, got.Iterations[0].ID)
		assert.Equal(t, q.Iterations[2].ID, got.Iterations[1].ID)
	})

	t.Run("idempotent on missing id", func(t *testing.T) {
		e := seqEditor()
		q := buildQueue(e, 2)

		got := e.RemoveIteration(q, "no-such-iteration")
		assert.Equal(t, q, got)
	})
}

func TestEditor_ReorderIterations(t *testing.T) {
	t.Parallel()

	t.Run("moves and renumbers", func(t *testing.T) {
		e := seqEditor()
		q := buildQueue(e, 3)
		first := q.Iterations[0].ID

		got, err := e.ReorderIterations(q, 0, 2)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1, 2}, positions(got))
		assert.Equal(t, first, got.Iterations[2].ID)
	})

	t.Run("out-of-range fails instead of clamping", func(t *testing.T) {
		e := seqEditor()
		q := buildQueue(e, 2)

		_, err := e.ReorderIterations(q, 0, 5)
		require.Error(t, err)
		assert.ErrorIs(t, err, rotaerrors.ErrIndexOutOfRange)

		_, err = e.ReorderIterations(q, -1, 0)
		assert.ErrorIs(t, err, rotaerrors.ErrIndexOutOfRange)
	})

	t.Run("position density holds after arbitrary sequences", func(t *testing.T) {
		e := seqEditor()
		q := buildQueue(e, 5)

		var err error
		q, err = e.ReorderIterations(q, 4, 0)
		require.NoError(t, err)
		q = e.RemoveIteration(q, q.Iterations[2].ID)
		q = e.AddIteration(q)
		q, err = e.ReorderIterations(q, 1, 3)
		require.NoError(t, err)

		assert.Equal(t, []int{0, 1, 2, 3, 4}, positions(q))
	})
}

func TestEditor_DuplicateIteration(t *testing.T) {
	t.Parallel()

	t.Run("fresh identifiers throughout the copy", func(t *testing.T) {
		e := seqEditor()
		q := buildQueue(e, 1)
		src := q.Iterations[0]

		got, err := e.DuplicateIteration(q, src.ID)
		require.NoError(t, err)
		require.Len(t, got.Iterations, 2)

		dup := got.Iterations[1]
		assert.NotEqual(t, src.ID, dup.ID)
		assert.Equal(t, 1, dup.Position)
		require.Len(t, dup.Items, len(src.Items))

		// No identifier in the copy appears in the original subtree.
		orig := map[string]bool{src.ID: true}
		for _, item := range src.Items {
			orig[item.ID] = true
		}
		assert.False(t, orig[dup.ID])
		for _, item := range dup.Items {
			assert.False(t, orig[item.ID], "item id %s aliases the source", item.ID)
		}
	})

	t.Run("missing iteration errors", func(t *testing.T) {
		e := seqEditor()
		q := buildQueue(e, 1)

		_, err := e.DuplicateIteration(q, "nope")
		assert.ErrorIs(t, err, rotaerrors.ErrIterationNotFound)
	})
}

func TestEditor_AddItem(t *testing.T) {
	t.Parallel()
	e := seqEditor()
	q := e.AddIteration(NewQueue())
	itID := q.Iterations[0].ID

	t.Run("work item defaults", func(t *testing.T) {
		got, err := e.AddItem(q, itID, KindWork)
		require.NoError(t, err)
		require.Len(t, got.Iterations[0].Items, 1)

		item := got.Iterations[0].Items[0]
		assert.Equal(t, KindWork, item.Kind)
		assert.Equal(t, EvaluationYesNo, item.EvaluationMethod)
		assert.Equal(t, DifficultyMedium, item.Difficulty)
		assert.False(t, item.HasSpecificTime)
	})

	t.Run("cooldown defaults", func(t *testing.T) {
		got, err := e.AddItem(q, itID, KindCooldown)
		require.NoError(t, err)

		item := got.Iterations[0].Items[0]
		assert.Equal(t, KindCooldown, item.Kind)
		assert.Equal(t, "1d", item.CooldownDuration)
	})

	t.Run("missing iteration errors", func(t *testing.T) {
		_, err := e.AddItem(q, "nope", KindWork)
		assert.ErrorIs(t, err, rotaerrors.ErrIterationNotFound)
	})

	t.Run("invalid kind errors", func(t *testing.T) {
		_, err := e.AddItem(q, itID, ItemKind("NAP"))
		assert.ErrorIs(t, err, rotaerrors.ErrInvalidArgument)
	})
}

func TestEditor_RemoveItem(t *testing.T) {
	t.Parallel()
	e := seqEditor()
	q := e.AddIteration(NewQueue())
	itID := q.Iterations[0].ID

	var err error
	for range 3 {
		q, err = e.AddItem(q, itID, KindWork)
		require.NoError(t, err)
	}
	first := q.Iterations[0].Items[0].ID
	second := q.Iterations[0].Items[1].ID
	third := q.Iterations[0].Items[2].ID

	t.Run("preserves sibling order", func(t *testing.T) {
		got := e.RemoveItem(q, itID, second)
		require.Len(t, got.Iterations[0].Items, 2)
		assert.Equal(t, first, got.Iterations[0].Items[0].ID)
		assert.Equal(t, third, got.Iterations[0].Items[1].ID)
	})

	t.Run("idempotent on missing item", func(t *testing.T) {
		got := e.RemoveItem(q, itID, "no-such-item")
		assert.Equal(t, q, got)
	})

	t.Run("idempotent on missing iteration", func(t *testing.T) {
		got := e.RemoveItem(q, "no-such-iteration", first)
		assert.Equal(t, q, got)
	})
}

func TestEditor_DuplicateItem(t *testing.T) {
	t.Parallel()
	e := seqEditor()
	q := e.AddIteration(NewQueue())
	itID := q.Iterations[0].ID

	q, err := e.AddItem(q, itID, KindWork)
	require.NoError(t, err)
	srcID := q.Iterations[0].Items[0].ID

	t.Run("appends a copy with a fresh id", func(t *testing.T) {
		got, err := e.DuplicateItem(q, itID, srcID)
		require.NoError(t, err)
		require.Len(t, got.Iterations[0].Items, 2)

		dup := got.Iterations[0].Items[1]
		assert.NotEqual(t, srcID, dup.ID)
		assert.Equal(t, got.Iterations[0].Items[0].Kind, dup.Kind)
	})

	t.Run("missing item errors", func(t *testing.T) {
		_, err := e.DuplicateItem(q, itID, "nope")
		assert.ErrorIs(t, err, rotaerrors.ErrItemNotFound)
	})
}

func TestEditor_UpdateItem(t *testing.T) {
	t.Parallel()

	setup := func(t *testing.T) (Editor, Queue, string, string) {
		t.Helper()
		e := seqEditor()
		q := e.AddIteration(NewQueue())
		itID := q.Iterations[0].ID
		q, err := e.AddItem(q, itID, KindWork)
		require.NoError(t, err)
		return e, q, itID, q.Iterations[0].Items[0].ID
	}

	strptr := func(s string) *string { return &s }
	boolptr := func(b bool) *bool { return &b }
	intptr := func(n int) *int { return &n }
	f64ptr := func(f float64) *float64 { return &f }
	methodptr := func(m EvaluationMethod) *EvaluationMethod { return &m }

	t.Run("shallow merge", func(t *testing.T) {
		e, q, itID, itemID := setup(t)

		got, err := e.UpdateItem(q, itID, itemID, ItemPatch{
			Name:        strptr("Morning run"),
			Description: strptr("5k easy pace"),
		})
		require.NoError(t, err)

		item := got.Iterations[0].Items[0]
		assert.Equal(t, "Morning run", item.Name)
		assert.Equal(t, "5k easy pace", item.Description)
		assert.Equal(t, EvaluationYesNo, item.EvaluationMethod, "unpatched fields untouched")
	})

	t.Run("switching to YES_NO clears the target value", func(t *testing.T) {
		e, q, itID, itemID := setup(t)

		got, err := e.UpdateItem(q, itID, itemID, ItemPatch{
			EvaluationMethod: methodptr(EvaluationNumeric),
			TargetValue:      f64ptr(20),
		})
		require.NoError(t, err)
		require.NotNil(t, got.Iterations[0].Items[0].TargetValue)

		got, err = e.UpdateItem(got, itID, itemID, ItemPatch{
			EvaluationMethod: methodptr(EvaluationYesNo),
		})
		require.NoError(t, err)
		assert.Nil(t, got.Iterations[0].Items[0].TargetValue)
	})

	t.Run("clearing the time flag clears the time fields", func(t *testing.T) {
		e, q, itID, itemID := setup(t)

		got, err := e.UpdateItem(q, itID, itemID, ItemPatch{
			HasSpecificTime: boolptr(true),
			ExecutionTime:   strptr("09:30"),
			DurationMinutes: intptr(90),
		})
		require.NoError(t, err)
		require.Equal(t, "09:30", got.Iterations[0].Items[0].ExecutionTime)

		got, err = e.UpdateItem(got, itID, itemID, ItemPatch{
			HasSpecificTime: boolptr(false),
		})
		require.NoError(t, err)

		item := got.Iterations[0].Items[0]
		assert.False(t, item.HasSpecificTime)
		assert.Empty(t, item.ExecutionTime)
		assert.Zero(t, item.DurationMinutes)
	})

	t.Run("area change clears a project that no longer belongs", func(t *testing.T) {
		e, q, itID, itemID := setup(t)
		e.Projects = func(projectID string) (string, bool) {
			if projectID == "proj-1" {
				return "area-1", true
			}
			return "", false
		}

		got, err := e.UpdateItem(q, itID, itemID, ItemPatch{
			AreaID:    strptr("area-1"),
			ProjectID: strptr("proj-1"),
		})
		require.NoError(t, err)
		require.Equal(t, "proj-1", got.Iterations[0].Items[0].ProjectID)

		got, err = e.UpdateItem(got, itID, itemID, ItemPatch{AreaID: strptr("area-2")})
		require.NoError(t, err)
		assert.Empty(t, got.Iterations[0].Items[0].ProjectID)
		assert.Equal(t, "area-2", got.Iterations[0].Items[0].AreaID)
	})

	t.Run("area change keeps a project that still belongs", func(t *testing.T) {
		e, q, itID, itemID := setup(t)
		e.Projects = func(string) (string, bool) { return "area-2", true }

		got, err := e.UpdateItem(q, itID, itemID, ItemPatch{
			AreaID:    strptr("area-2"),
			ProjectID: strptr("proj-9"),
		})
		require.NoError(t, err)
		assert.Equal(t, "proj-9", got.Iterations[0].Items[0].ProjectID)
	})

	t.Run("area and project patched together keep the new project", func(t *testing.T) {
		e, q, itID, itemID := setup(t)

		// No resolver, so membership cannot be confirmed; the project the
		// patch itself names must still survive the area change.
		got, err := e.UpdateItem(q, itID, itemID, ItemPatch{
			AreaID:    strptr("area-2"),
			ProjectID: strptr("proj-2"),
		})
		require.NoError(t, err)
		assert.Equal(t, "area-2", got.Iterations[0].Items[0].AreaID)
		assert.Equal(t, "proj-2", got.Iterations[0].Items[0].ProjectID)
	})

	t.Run("missing item surfaces an error, not a silent loss", func(t *testing.T) {
		e, q, itID, _ := setup(t)

		_, err := e.UpdateItem(q, itID, "no-such-item", ItemPatch{Name: strptr("x")})
		assert.ErrorIs(t, err, rotaerrors.ErrItemNotFound)

		_, err = e.UpdateItem(q, "no-such-iteration", "x", ItemPatch{Name: strptr("x")})
		assert.ErrorIs(t, err, rotaerrors.ErrIterationNotFound)
	})

	t.Run("work fields rejected on a cooldown", func(t *testing.T) {
		e, q, itID, _ := setup(t)
		q, err := e.AddItem(q, itID, KindCooldown)
		require.NoError(t, err)
		cooldownID := q.Iterations[0].Items[1].ID

		_, err = e.UpdateItem(q, itID, cooldownID, ItemPatch{Difficulty: difficultyPtr(DifficultyHard)})
		assert.ErrorIs(t, err, rotaerrors.ErrInvalidArgument)

		got, err := e.UpdateItem(q, itID, cooldownID, ItemPatch{CooldownDuration: strptr("2h")})
		require.NoError(t, err)
		assert.Equal(t, "2h", got.Iterations[0].Items[1].CooldownDuration)
	})
}

func difficultyPtr(d Difficulty) *Difficulty { return &d }
