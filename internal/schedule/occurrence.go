// Package schedule provides the read models for materialized routine
// instances: dated occurrences, their status classification, and the pure
// projection into renderable timed events.
//
// Which calendar date maps to which rotation stage is decided by the
// external instance generator; this package only consumes its output.
// Occurrences are read-only here, their single mutation path (recording
// progress) lives in the store.
package schedule

import (
	"time"

	"github.com/mrz1836/rota/internal/routine"
)

// RawCompleted is the raw source-of-truth status value marking a completed
// occurrence. Any other raw value means "not completed".
const RawCompleted = "completed"

// Occurrence is a concrete, dated materialization of a task definition,
// already resolved to a specific calendar date by the external generator.
type Occurrence struct {
	// ID is the occurrence identifier.
	ID string `json:"id"`
	// RoutineInstanceID references the parent routine instance.
	RoutineInstanceID string `json:"routine_instance_id"`
	// TaskID references the authored work item this occurrence came from.
	TaskID string `json:"task_id,omitempty"`
	// Name is the display name of the occurrence.
	Name string `json:"name"`
	// Status is the raw source-of-truth status string.
	Status string `json:"status"`
	// Progress is the recorded progress percentage, 0-100.
	Progress int `json:"progress"`
	// EvaluationMethod mirrors the work item's evaluation method.
	EvaluationMethod routine.EvaluationMethod `json:"evaluation_method"`
	// TargetValue is present iff EvaluationMethod is NUMERIC.
	TargetValue *float64 `json:"target_value,omitempty"`
	// ExecutionTime is the HH:MM start time; empty for untimed occurrences.
	ExecutionTime string `json:"execution_time,omitempty"`
	// DurationMinutes is the scheduled duration; zero for untimed occurrences.
	DurationMinutes int `json:"duration,omitempty"`
	// CompletionTimestamp is present iff the occurrence is completed.
	CompletionTimestamp *time.Time `json:"completion_date,omitempty"`
	// DueDate is the calendar date the occurrence is due on.
	DueDate time.Time `json:"due_date"`
}

// Timed reports whether the occurrence belongs on a time grid: it needs
// both an execution time and a duration. Untimed occurrences still exist
// for checklist-style views.
func (o Occurrence) Timed() bool {
	return o.ExecutionTime != "" && o.DurationMinutes != 0
}

// RoutineInstance is the set of occurrences due on a particular date for
// one routine.
type RoutineInstance struct {
	// ID is the instance identifier.
	ID string `json:"id"`
	// RoutineID references the parent routine.
	RoutineID string `json:"routine_id"`
	// RoutineName is the routine's display name, denormalized for rendering.
	RoutineName string `json:"routine_name"`
	// IterationPosition is which stage of the rotation this instance
	// represents. Opaque to this package.
	IterationPosition int `json:"iteration_position"`
	// DueDate is the calendar date the instance is due on.
	DueDate time.Time `json:"due_date"`
	// Occurrences is the dated occurrence list.
	Occurrences []Occurrence `json:"task_instances"`
}

// Summary reduces an instance to its occurrence counts.
func (ri RoutineInstance) Summary() (total, completed int) {
	total = len(ri.Occurrences)
	for _, occ := range ri.Occurrences {
		if occ.Status == RawCompleted {
			completed++
		}
	}
	return total, completed
}
