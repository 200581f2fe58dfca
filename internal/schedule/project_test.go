package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/routine"
)

func timedOccurrence(id, at string, minutes int) Occurrence {
	return Occurrence{
		ID:               id,
		Name:             "Task " + id,
		Status:           "pending",
		EvaluationMethod: routine.EvaluationYesNo,
		ExecutionTime:    at,
		DurationMinutes:  minutes,
		DueDate:          day(2024, time.March, 10),
	}
}

func TestParseClock(t *testing.T) {
	t.Parallel()

	valid := map[string]int{
		"00:00": 0,
		"09:30": 570,
		"23:59": 1439,
	}
	for in, want := range valid {
		got, err := ParseClock(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, in := range []string{"25:99", "24:00", "9:30", "09:60", "0930", "", "ab:cd"} {
		_, err := ParseClock(in)
		require.Error(t, err, in)
		assert.ErrorIs(t, err, rotaerrors.ErrMalformedOccurrence, in)
	}
}

func TestProject(t *testing.T) {
	t.Parallel()
	today := day(2024, time.March, 10)

	t.Run("projects timed occurrences with range and status", func(t *testing.T) {
		inst := RoutineInstance{
			RoutineName: "Morning block",
			Occurrences: []Occurrence{timedOccurrence("a", "09:30", 90)},
		}

		events, err := Project([]RoutineInstance{inst}, today)
		require.NoError(t, err)
		require.Len(t, events, 1)

		ev := events[0]
		assert.Equal(t, "a", ev.ID)
		assert.Equal(t, "Morning block", ev.RoutineName)
		assert.Equal(t, "09:30 - 11:00", ev.TimeRange)
		assert.Equal(t, "March 10, 2024", ev.DateLabel)
		assert.Equal(t, 9, ev.StartHour())
		assert.Equal(t, 30, ev.StartMinuteOfHour())
		assert.Equal(t, StatusPending, ev.Status)
		assert.False(t, ev.RollsOver())
	})

	t.Run("untimed occurrences are excluded, not errors", func(t *testing.T) {
		inst := RoutineInstance{
			Occurrences: []Occurrence{
				{ID: "untimed", Status: "pending", DueDate: today},
				timedOccurrence("timed", "08:00", 30),
			},
		}

		events, err := Project([]RoutineInstance{inst}, today)
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "timed", events[0].ID)
	})

	t.Run("same-day sort is by start with stable ties", func(t *testing.T) {
		inst := RoutineInstance{
			Occurrences: []Occurrence{
				timedOccurrence("late", "18:00", 30),
				timedOccurrence("early", "07:00", 30),
				timedOccurrence("tie-first", "12:00", 30),
				timedOccurrence("tie-second", "12:00", 45),
			},
		}

		events, err := Project([]RoutineInstance{inst}, today)
		require.NoError(t, err)
		require.Len(t, events, 4)

		var ids []string
		for _, ev := range events {
			ids = append(ids, ev.ID)
		}
		assert.Equal(t, []string{"early", "tie-first", "tie-second", "late"}, ids)
	})

	t.Run("multi-day input sorts by date first", func(t *testing.T) {
		tomorrow := timedOccurrence("tomorrow", "06:00", 30)
		tomorrow.DueDate = day(2024, time.March, 11)

		inst := RoutineInstance{
			Occurrences: []Occurrence{tomorrow, timedOccurrence("today", "22:00", 30)},
		}

		events, err := Project([]RoutineInstance{inst}, today)
		require.NoError(t, err)
		require.Len(t, events, 2)
		assert.Equal(t, "today", events[0].ID)
		assert.Equal(t, "tomorrow", events[1].ID)
	})

	t.Run("midnight rollover wraps the displayed end time", func(t *testing.T) {
		inst := RoutineInstance{
			Occurrences: []Occurrence{timedOccurrence("night", "23:30", 90)},
		}

		events, err := Project([]RoutineInstance{inst}, today)
		require.NoError(t, err)
		require.Len(t, events, 1)

		ev := events[0]
		assert.Equal(t, "23:30 - 01:00", ev.TimeRange)
		assert.True(t, ev.RollsOver())
		// The event stays on its start date.
		assert.Equal(t, day(2024, time.March, 10), ev.Date)
	})

	t.Run("malformed time rejects the projection with the offending id", func(t *testing.T) {
		inst := RoutineInstance{
			Occurrences: []Occurrence{
				timedOccurrence("good", "08:00", 30),
				timedOccurrence("bad", "25:99", 30),
			},
		}

		events, err := Project([]RoutineInstance{inst}, today)
		require.Error(t, err)
		assert.ErrorIs(t, err, rotaerrors.ErrMalformedOccurrence)
		assert.Contains(t, err.Error(), "bad")
		assert.Nil(t, events, "no partial event list is emitted")
	})

	t.Run("non-positive duration is rejected", func(t *testing.T) {
		inst := RoutineInstance{
			Occurrences: []Occurrence{timedOccurrence("zero", "08:00", -15)},
		}

		_, err := Project([]RoutineInstance{inst}, today)
		require.Error(t, err)
		assert.ErrorIs(t, err, rotaerrors.ErrMalformedOccurrence)
		assert.Contains(t, err.Error(), "zero")
	})

	t.Run("numeric occurrence without target is rejected", func(t *testing.T) {
		occ := timedOccurrence("numeric", "08:00", 30)
		occ.EvaluationMethod = routine.EvaluationNumeric

		_, err := Project([]RoutineInstance{{Occurrences: []Occurrence{occ}}}, today)
		require.Error(t, err)
		assert.ErrorIs(t, err, rotaerrors.ErrMalformedOccurrence)
	})

	t.Run("empty input projects to an empty list", func(t *testing.T) {
		events, err := Project(nil, today)
		require.NoError(t, err)
		assert.Empty(t, events)
	})
}
