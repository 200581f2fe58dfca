package routine

import (
	"encoding/json"
	"fmt"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/ident"
)

// Document is the stored wire shape of a queue. Version 2 is the current
// iteration-based shape; version 1 is the legacy flat sub-task array, kept
// only long enough to be upgraded at load. Both shapes never coexist past
// the load boundary: every read path goes through Migrate.
type Document struct {
	// SchemaVersion tags the document shape. Zero is resolved by inference
	// for documents written before versioning existed.
	SchemaVersion int `json:"schema_version,omitempty"`
	// RotationType is the rotation policy of the queue.
	RotationType RotationType `json:"rotation_type,omitempty"`
	// Iterations is the current (version 2) payload.
	Iterations []Iteration `json:"iterations,omitempty"`
	// SubTasks is the legacy (version 1) payload: a flat, unstaged task list.
	SubTasks []legacySubTask `json:"sub_tasks,omitempty"`
}

// legacySubTask is one entry of the legacy flat queue shape.
type legacySubTask struct {
	ID            string `json:"id"`
	SubTaskID     string `json:"sub_task_id,omitempty"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	ExecutionTime string `json:"execution_time,omitempty"`
	Duration      int    `json:"duration,omitempty"`
}

// NewDocument wraps a queue in the current document shape for storage.
func NewDocument(q Queue) Document {
	return Document{
		SchemaVersion: SchemaVersion,
		RotationType:  q.RotationType,
		Iterations:    q.Iterations,
	}
}

// DecodeDocument unmarshals and migrates a stored queue document. The
// returned queue is always the current shape.
func DecodeDocument(data []byte) (Queue, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return Queue{}, rotaerrors.Wrap(err, "failed to decode queue document")
	}
	return Migrate(doc)
}

// Migrate upgrades a document to the current queue shape. Version 1 (the
// flat sub-task array) becomes a single iteration of work items with fresh
// identifiers. Unknown versions are rejected rather than guessed at.
func Migrate(doc Document) (Queue, error) {
	version := doc.SchemaVersion
	if version == 0 {
		// Pre-versioning documents: the payload shape tells them apart.
		if len(doc.SubTasks) > 0 && len(doc.Iterations) == 0 {
			version = 1
		} else {
			version = SchemaVersion
		}
	}

	switch version {
	case 1:
		return migrateV1(doc), nil
	case SchemaVersion:
		q := Queue{
			Iterations:   doc.Iterations,
			RotationType: doc.RotationType,
		}
		if q.RotationType == "" {
			q.RotationType = RotationSequential
		}
		if q.Iterations == nil {
			q.Iterations = []Iteration{}
		}
		return q, nil
	default:
		return Queue{}, fmt.Errorf("%w: %d", rotaerrors.ErrUnknownSchemaVersion, doc.SchemaVersion)
	}
}

// migrateV1 folds the legacy flat sub-task array into one iteration of work
// items. Legacy entries never carried queue-unique ids, so every migrated
// item gets a fresh identifier.
func migrateV1(doc Document) Queue {
	items := make([]Item, 0, len(doc.SubTasks))
	for _, st := range doc.SubTasks {
		item := NewWorkItem(ident.New())
		item.Name = st.Name
		item.Description = st.Description
		if st.ExecutionTime != "" && st.Duration > 0 {
			item.HasSpecificTime = true
			item.ExecutionTime = st.ExecutionTime
			item.DurationMinutes = st.Duration
		}
		items = append(items, item)
	}

	return Queue{
		RotationType: RotationSequential,
		Iterations: []Iteration{{
			ID:       ident.New(),
			Position: 0,
			Items:    items,
		}},
	}
}
