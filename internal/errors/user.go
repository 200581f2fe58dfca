package errors

import "errors"

// ErrorInfo holds user-facing message and suggested action for an error.
type ErrorInfo struct {
	// Message is the user-friendly error description.
	Message string
	// Action is a suggested action to resolve the issue (empty if none).
	Action string
}

// errorEntry pairs a sentinel error with its user-facing info.
type errorEntry struct {
	err  error
	info ErrorInfo
}

// errorInfoEntries is the pre-built mapping of sentinel errors to their user-facing messages.
// This single source of truth ensures UserMessage and Actionable stay in sync.
// Using a slice (not a map) because errors.Is() requires proper error chain traversal.
//
//nolint:gochecknoglobals // Pre-built mapping for efficiency
var errorInfoEntries = []errorEntry{
	{
		err: ErrIndexOutOfRange,
		info: ErrorInfo{
			Message: "The requested position is outside the queue.",
			Action:  "Use 'rota routine show' to see valid iteration positions.",
		},
	},
	{
		err: ErrIterationNotFound,
		info: ErrorInfo{
			Message: "No iteration with that id exists in the queue.",
			Action:  "Use 'rota routine show' to list iteration ids.",
		},
	},
	{
		err: ErrItemNotFound,
		info: ErrorInfo{
			Message: "No item with that id exists in the iteration.",
			Action:  "Use 'rota routine show' to list item ids.",
		},
	},
	{
		err: ErrMalformedOccurrence,
		info: ErrorInfo{
			Message: "A scheduled occurrence carries an invalid time or duration.",
			Action:  "Fix the offending task definition and regenerate the instances.",
		},
	},
	{
		err: ErrInvalidDuration,
		info: ErrorInfo{
			Message: "Cooldown durations must look like '1d' or '2h'.",
		},
	},
	{
		err: ErrInvalidQueue,
		info: ErrorInfo{
			Message: "The queue document failed validation.",
			Action:  "Review the reported field and correct it before submitting.",
		},
	},
	{
		err: ErrRoutineNotFound,
		info: ErrorInfo{
			Message: "No routine with that id exists in the data directory.",
			Action:  "Use 'rota routine list' to see known routines.",
		},
	},
	{
		err: ErrOccurrenceNotFound,
		info: ErrorInfo{
			Message: "No occurrence with that id exists for the requested dates.",
			Action:  "Use 'rota events <date>' to list occurrence ids.",
		},
	},
	{
		err: ErrInvalidDate,
		info: ErrorInfo{
			Message: "Dates must be given as YYYY-MM-DD.",
		},
	},
	{
		err: ErrUnknownSchemaVersion,
		info: ErrorInfo{
			Message: "The stored queue uses a schema this version cannot read.",
			Action:  "Upgrade rota, or restore the document from a backup.",
		},
	},
}

// UserMessage returns a user-friendly message for the given error.
// Unrecognized errors fall back to the raw error text.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Message
		}
	}
	return err.Error()
}

// Actionable returns a suggested action for the given error, or an empty
// string when no specific action applies.
func Actionable(err error) string {
	if err == nil {
		return ""
	}
	for _, entry := range errorInfoEntries {
		if errors.Is(err, entry.err) {
			return entry.info.Action
		}
	}
	return ""
}
