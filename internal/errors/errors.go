// Package errors provides centralized error handling for ROTA.
//
// This package defines sentinel errors used for programmatic error categorization
// throughout the application. All error types can be checked using errors.Is().
//
// IMPORTANT: This package MUST NOT import any other internal packages.
// Only standard library imports are allowed.
package errors

import "errors"

// Sentinel errors for error categorization.
// These allow callers to check error types with errors.Is().
// All errors use lowercase descriptions per Go conventions.
var (
	// ErrIndexOutOfRange indicates that a reorder request referenced a
	// position outside the valid [0, length) range of the iteration list.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrIterationNotFound indicates that an update-class editor operation
	// targeted an iteration id that does not exist in the queue.
	ErrIterationNotFound = errors.New("iteration not found")

	// ErrItemNotFound indicates that an update-class editor operation
	// targeted an (iteration, item) pair that does not resolve.
	ErrItemNotFound = errors.New("item not found")

	// ErrMalformedOccurrence indicates that a dated occurrence carries an
	// unparseable execution time, a non-positive duration, or inconsistent
	// evaluation fields (e.g. NUMERIC method without a target value).
	ErrMalformedOccurrence = errors.New("malformed occurrence")

	// ErrInvalidDuration indicates that a cooldown duration string does not
	// match the <integer><unit> pattern with unit in {d, h}.
	ErrInvalidDuration = errors.New("invalid cooldown duration")

	// ErrInvalidQueue indicates that a queue document failed validation
	// (positional invariants, duplicate ids, or per-item rules).
	ErrInvalidQueue = errors.New("invalid queue")

	// ErrUnknownSchemaVersion indicates that a stored queue document carries
	// a schema version this build does not know how to migrate.
	ErrUnknownSchemaVersion = errors.New("unknown queue schema version")

	// ErrInvalidArgument indicates a value that does not belong to its
	// enumerated set (evaluation method, difficulty, item kind, rotation type).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrEmptyValue indicates that a required value was empty.
	ErrEmptyValue = errors.New("value cannot be empty")

	// ErrRoutineNotFound indicates that no queue document exists for the
	// requested routine id.
	ErrRoutineNotFound = errors.New("routine not found")

	// ErrOccurrenceNotFound indicates that a progress mutation targeted an
	// occurrence id that does not exist in any stored instance.
	ErrOccurrenceNotFound = errors.New("occurrence not found")

	// ErrInvalidDate indicates a date argument that does not parse as
	// YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrConfigNil indicates that a nil config was passed to validation.
	ErrConfigNil = errors.New("config is nil")

	// ErrConfigInvalidGrid indicates an invalid grid scale configuration value.
	ErrConfigInvalidGrid = errors.New("invalid grid configuration")

	// ErrConfigInvalidLog indicates an invalid logging configuration value.
	ErrConfigInvalidLog = errors.New("invalid log configuration")

	// ErrInvalidOutputFormat indicates an invalid output format was specified.
	ErrInvalidOutputFormat = errors.New("invalid output format")
)
