package schedule

import "time"

// Status is the derived temporal status of a dated occurrence.
type Status string

const (
	// StatusUpcoming marks an occurrence due after today.
	StatusUpcoming Status = "upcoming"
	// StatusDue marks an overdue occurrence: due before today, not completed.
	StatusDue Status = "due"
	// StatusPending marks an occurrence due today, not completed.
	StatusPending Status = "pending"
	// StatusDone marks a completed occurrence, regardless of date.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusUpcoming, StatusDue, StatusPending, StatusDone}
}

// IsValid checks if the status is a valid value.
func (s Status) IsValid() bool {
	switch s {
	case StatusUpcoming, StatusDue, StatusPending, StatusDone:
		return true
	default:
		return false
	}
}

// Classify derives the status of an occurrence relative to today.
// Completion overrides any date comparison; otherwise both dates are
// truncated to their calendar day and compared. "today" is always passed
// in explicitly so classification stays deterministic and testable.
func Classify(occ Occurrence, today time.Time) Status {
	if occ.Status == RawCompleted {
		return StatusDone
	}

	due := dayOrdinal(occ.DueDate)
	now := dayOrdinal(today)
	switch {
	case due > now:
		return StatusUpcoming
	case due < now:
		return StatusDue
	default:
		return StatusPending
	}
}

// dayOrdinal collapses an instant to a comparable calendar day, using the
// instant's own wall-clock date so the comparison matches what a user sees.
func dayOrdinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}
