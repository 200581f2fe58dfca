package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rota/internal/clock"
	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/routine"
	"github.com/mrz1836/rota/internal/schedule"
)

// fixedNow is the instant the test clock reports.
var fixedNow = time.Date(2024, time.March, 10, 15, 4, 5, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return Open(t.TempDir(), clock.Fixed{Time: fixedNow})
}

func sampleQueue() routine.Queue {
	e := routine.Editor{NewID: func() string { return "fixed-id" }}
	q := e.AddIteration(routine.NewQueue())
	return q
}

func TestStore_RoutineRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	r := Routine{ID: "rt-1", Name: "Strength block", Description: "3x week", Queue: sampleQueue()}
	require.NoError(t, s.SaveRoutine(ctx, r))

	got, err := s.LoadRoutine(ctx, "rt-1")
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestStore_SaveRoutine_RequiresID(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	err := s.SaveRoutine(context.Background(), Routine{Name: "anonymous"})
	assert.ErrorIs(t, err, rotaerrors.ErrEmptyValue)
}

func TestStore_LoadRoutine_Missing(t *testing.T) {
	t.Parallel()
	s := newTestStore(t)

	_, err := s.LoadRoutine(context.Background(), "ghost")
	assert.ErrorIs(t, err, rotaerrors.ErrRoutineNotFound)
}

func TestStore_LoadRoutine_MigratesLegacyShape(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := t.TempDir()
	s := Open(dir, clock.Fixed{Time: fixedNow})

	// A pre-versioning document written by an older build.
	legacy := []byte(`{
		"id": "rt-legacy",
		"name": "Old routine",
		"queue": {
			"sub_tasks": [
				{"id": "old-1", "name": "Walk", "execution_time": "07:00", "duration": 30}
			]
		}
	}`)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "routine"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "routine", "rt-legacy.json"), legacy, 0o644))

	got, err := s.LoadRoutine(ctx, "rt-legacy")
	require.NoError(t, err)

	require.Len(t, got.Queue.Iterations, 1)
	require.Len(t, got.Queue.Iterations[0].Items, 1)
	item := got.Queue.Iterations[0].Items[0]
	assert.Equal(t, routine.KindWork, item.Kind)
	assert.Equal(t, "Walk", item.Name)
	assert.True(t, item.HasSpecificTime)
}

func TestStore_ListRoutines(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.SaveRoutine(ctx, Routine{ID: "b", Name: "Zeta", Queue: routine.NewQueue()}))
	require.NoError(t, s.SaveRoutine(ctx, Routine{ID: "a", Name: "Alpha", Queue: routine.NewQueue()}))

	got, err := s.ListRoutines(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Alpha", got[0].Name)
	assert.Equal(t, "Zeta", got[1].Name)
}

func seedInstances(t *testing.T, s *Store) {
	t.Helper()
	target := 20.0
	instances := []schedule.RoutineInstance{
		{
			ID:          "inst-1",
			RoutineID:   "rt-1",
			RoutineName: "Morning",
			DueDate:     time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
			Occurrences: []schedule.Occurrence{
				{
					ID:               "occ-yesno",
					RoutineInstanceID: "inst-1",
					Name:             "Stretch",
					Status:           "pending",
					EvaluationMethod: routine.EvaluationYesNo,
					ExecutionTime:    "07:00",
					DurationMinutes:  15,
					DueDate:          time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
				},
				{
					ID:               "occ-numeric",
					RoutineInstanceID: "inst-1",
					Name:             "Pushups",
					Status:           "pending",
					EvaluationMethod: routine.EvaluationNumeric,
					TargetValue:      &target,
					DueDate:          time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC),
				},
			},
		},
		{
			ID:          "inst-2",
			RoutineID:   "rt-2",
			RoutineName: "Evening",
			DueDate:     time.Date(2024, time.March, 12, 0, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, s.SaveInstances(context.Background(), instances))
}

func TestStore_Instances_DateRange(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestStore(t)
	seedInstances(t, s)

	t.Run("full range, ordered by due date", func(t *testing.T) {
		got, err := s.Instances(ctx,
			time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC),
			time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "inst-1", got[0].ID)
		assert.Equal(t, "inst-2", got[1].ID)
	})

	t.Run("single day", func(t *testing.T) {
		d := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		got, err := s.Instances(ctx, d, d)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "inst-1", got[0].ID)
	})

	t.Run("empty range", func(t *testing.T) {
		d := time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)
		got, err := s.Instances(ctx, d, d)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestStore_RecordProgress(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("yes/no completes on a positive value", func(t *testing.T) {
		s := newTestStore(t)
		seedInstances(t, s)

		require.NoError(t, s.RecordProgress(ctx, "occ-yesno", 1))

		d := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)
		got, err := s.Instances(ctx, d, d)
		require.NoError(t, err)
		occ := got[0].Occurrences[0]
		assert.Equal(t, schedule.RawCompleted, occ.Status)
		assert.Equal(t, 100, occ.Progress)
		require.NotNil(t, occ.CompletionTimestamp)
		assert.Equal(t, fixedNow, occ.CompletionTimestamp.UTC())

		// The status change is reflected on read as a done classification.
		assert.Equal(t, schedule.StatusDone, schedule.Classify(occ, d))
	})

	t.Run("numeric completes only at the target", func(t *testing.T) {
		s := newTestStore(t)
		seedInstances(t, s)
		d := time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC)

		require.NoError(t, s.RecordProgress(ctx, "occ-numeric", 10))
		got, err := s.Instances(ctx, d, d)
		require.NoError(t, err)
		occ := got[0].Occurrences[1]
		assert.Equal(t, "pending", occ.Status)
		assert.Equal(t, 50, occ.Progress)
		assert.Nil(t, occ.CompletionTimestamp)

		require.NoError(t, s.RecordProgress(ctx, "occ-numeric", 20))
		got, err = s.Instances(ctx, d, d)
		require.NoError(t, err)
		occ = got[0].Occurrences[1]
		assert.Equal(t, schedule.RawCompleted, occ.Status)
		assert.Equal(t, 100, occ.Progress)
	})

	t.Run("unknown occurrence errors", func(t *testing.T) {
		s := newTestStore(t)
		seedInstances(t, s)

		err := s.RecordProgress(ctx, "ghost", 1)
		assert.ErrorIs(t, err, rotaerrors.ErrOccurrenceNotFound)
	})
}
