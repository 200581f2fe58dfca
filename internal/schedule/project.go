package schedule

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/routine"
)

// clockPattern matches a 24-hour HH:MM time of day.
var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// minutesPerDay is the number of minutes in a calendar day.
const minutesPerDay = 24 * 60

// Event is a flat, sortable, renderable record projected from a timed
// occurrence. It is independent of any specific view.
type Event struct {
	// ID is the source occurrence id.
	ID string
	// RoutineName is the parent routine's display name.
	RoutineName string
	// Title is the occurrence name.
	Title string
	// Date is the calendar date the event belongs to (its start date).
	Date time.Time
	// DateLabel is the stable human-readable date, e.g. "March 10, 2024".
	DateLabel string
	// TimeRange is the "HH:MM - HH:MM" display range. When the event
	// crosses midnight the end time wraps, e.g. "23:30 - 01:00"; the event
	// itself stays on its start date.
	TimeRange string
	// StartMinutes is the start as minutes from midnight.
	StartMinutes int
	// DurationMinutes is the scheduled duration.
	DurationMinutes int
	// Status is the derived temporal status.
	Status Status
}

// StartHour returns the hour row the event renders under.
func (e Event) StartHour() int {
	return e.StartMinutes / 60
}

// StartMinuteOfHour returns the minute offset within the starting hour.
func (e Event) StartMinuteOfHour() int {
	return e.StartMinutes % 60
}

// RollsOver reports whether the event's end crosses midnight.
func (e Event) RollsOver() bool {
	return e.StartMinutes+e.DurationMinutes >= minutesPerDay
}

// ParseClock parses an HH:MM string into minutes from midnight.
func ParseClock(s string) (int, error) {
	m := clockPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: time %q is not HH:MM", rotaerrors.ErrMalformedOccurrence, s)
	}
	var hour, minute int
	_, _ = fmt.Sscanf(s, "%d:%d", &hour, &minute)
	return hour*60 + minute, nil
}

// formatClock renders minutes from midnight as HH:MM, wrapping past 24h.
func formatClock(minutes int) string {
	minutes %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Project flattens every timed occurrence across the given instances into
// events, classifying each against today. Occurrences without a specific
// time are excluded (they belong to checklist views, not timed views).
//
// Malformed input fails the whole projection with ErrMalformedOccurrence
// naming the offending occurrence; nothing is silently dropped or clamped,
// so a user's schedule is never mis-rendered without signal. Same-day
// events sort ascending by range start; ties keep stable input order.
func Project(instances []RoutineInstance, today time.Time) ([]Event, error) {
	events := make([]Event, 0)
	for _, inst := range instances {
		for _, occ := range inst.Occurrences {
			if occ.ExecutionTime == "" {
				continue
			}

			ev, err := projectOne(inst, occ, today)
			if err != nil {
				return nil, err
			}
			events = append(events, ev)
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		di, dj := dayOrdinal(events[i].Date), dayOrdinal(events[j].Date)
		if di != dj {
			return di < dj
		}
		return events[i].StartMinutes < events[j].StartMinutes
	})
	return events, nil
}

// projectOne builds the event record for a single timed occurrence.
func projectOne(inst RoutineInstance, occ Occurrence, today time.Time) (Event, error) {
	start, err := ParseClock(occ.ExecutionTime)
	if err != nil {
		return Event{}, rotaerrors.Wrapf(err, "occurrence %s", occ.ID)
	}
	if occ.DurationMinutes <= 0 {
		return Event{}, fmt.Errorf("%w: occurrence %s duration %d must be positive",
			rotaerrors.ErrMalformedOccurrence, occ.ID, occ.DurationMinutes)
	}
	if occ.EvaluationMethod == routine.EvaluationNumeric && occ.TargetValue == nil {
		return Event{}, fmt.Errorf("%w: occurrence %s is NUMERIC without a target value",
			rotaerrors.ErrMalformedOccurrence, occ.ID)
	}

	return Event{
		ID:              occ.ID,
		RoutineName:     inst.RoutineName,
		Title:           occ.Name,
		Date:            occ.DueDate,
		DateLabel:       occ.DueDate.Format("January 2, 2006"),
		TimeRange:       fmt.Sprintf("%s - %s", formatClock(start), formatClock(start+occ.DurationMinutes)),
		StartMinutes:    start,
		DurationMinutes: occ.DurationMinutes,
		Status:          Classify(occ, today),
	}, nil
}
