// Package routine provides the authoring model for routine rotations.
//
// A routine's queue is an ordered list of iterations; each iteration is an
// ordered list of items. An item is a tagged union: either a work item (an
// evaluatable task definition) or a cooldown (a rest period). All edits go
// through the Editor, which owns the positional invariants; once submitted
// the queue is handed whole to the persistence layer.
package routine

import (
	"encoding/json"
	"fmt"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// SchemaVersion is the current schema version for queue documents.
const SchemaVersion = 2

// EvaluationMethod describes how a work item is evaluated.
type EvaluationMethod string

const (
	// EvaluationYesNo marks a work item completed by a simple yes/no answer.
	EvaluationYesNo EvaluationMethod = "YES_NO"
	// EvaluationNumeric marks a work item completed by reaching a numeric target.
	EvaluationNumeric EvaluationMethod = "NUMERIC"
)

// ValidEvaluationMethods returns all valid evaluation method values.
func ValidEvaluationMethods() []EvaluationMethod {
	return []EvaluationMethod{EvaluationYesNo, EvaluationNumeric}
}

// IsValid checks if the evaluation method is a valid value.
func (m EvaluationMethod) IsValid() bool {
	switch m {
	case EvaluationYesNo, EvaluationNumeric:
		return true
	default:
		return false
	}
}

// Difficulty indicates how demanding a work item is.
type Difficulty string

// Difficulty constants define the valid difficulty levels for work items.
const (
	DifficultyTrivial Difficulty = "TRIVIAL"
	DifficultyEasy    Difficulty = "EASY"
	DifficultyMedium  Difficulty = "MEDIUM"
	DifficultyHard    Difficulty = "HARD"
)

// ValidDifficulties returns all valid difficulty values.
func ValidDifficulties() []Difficulty {
	return []Difficulty{DifficultyTrivial, DifficultyEasy, DifficultyMedium, DifficultyHard}
}

// IsValid checks if the difficulty is a valid value.
func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyTrivial, DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	default:
		return false
	}
}

// ItemKind is the discriminator tag of the item union.
type ItemKind string

const (
	// KindWork tags an evaluatable task definition.
	KindWork ItemKind = "TASK"
	// KindCooldown tags a rest period.
	KindCooldown ItemKind = "COOLDOWN"
)

// IsValid checks if the item kind is a valid value.
func (k ItemKind) IsValid() bool {
	switch k {
	case KindWork, KindCooldown:
		return true
	default:
		return false
	}
}

// RotationType is the policy mapping calendar periods to iterations.
// Only sequential rotation is defined; the mapping computation itself is
// performed by the external instance generator, never by this package.
type RotationType string

// RotationSequential advances one iteration per period, wrapping at the end.
const RotationSequential RotationType = "sequential"

// IsValid checks if the rotation type is a valid value.
func (r RotationType) IsValid() bool {
	return r == RotationSequential
}

// Item is the tagged union of a work item and a cooldown. Kind selects the
// variant; fields outside the active variant are zero. Editor operations
// switch on Kind rather than probing for field presence.
type Item struct {
	// ID is an opaque identifier, unique within the iteration.
	ID string
	// Kind is the union discriminator.
	Kind ItemKind
	// Name is the display name of the item.
	Name string
	// Description is optional free text.
	Description string

	// Work variant fields.

	// EvaluationMethod selects yes/no or numeric evaluation.
	EvaluationMethod EvaluationMethod
	// TargetValue is required iff EvaluationMethod is NUMERIC.
	TargetValue *float64
	// HasSpecificTime marks the item as scheduled at a time of day.
	HasSpecificTime bool
	// ExecutionTime is the HH:MM start time, required iff HasSpecificTime.
	ExecutionTime string
	// DurationMinutes is the positive duration, required iff HasSpecificTime.
	DurationMinutes int
	// AreaID optionally assigns the item to an area.
	AreaID string
	// ProjectID optionally assigns the item to a project; the project must
	// belong to AreaID, an invariant the Editor enforces.
	ProjectID string
	// Difficulty rates the item.
	Difficulty Difficulty

	// Cooldown variant field.

	// CooldownDuration is a compact duration string such as "1d" or "2h".
	CooldownDuration string
}

// NewWorkItem returns a work item with authoring defaults.
func NewWorkItem(id string) Item {
	return Item{
		ID:               id,
		Kind:             KindWork,
		EvaluationMethod: EvaluationYesNo,
		Difficulty:       DifficultyMedium,
	}
}

// NewCooldownItem returns a cooldown item with authoring defaults.
func NewCooldownItem(id string) Item {
	return Item{
		ID:               id,
		Kind:             KindCooldown,
		CooldownDuration: "1d",
	}
}

// Clone returns a deep copy of the item. Identifiers are preserved; use
// Editor.DuplicateItem when a fresh identity is required.
func (i Item) Clone() Item {
	out := i
	if i.TargetValue != nil {
		v := *i.TargetValue
		out.TargetValue = &v
	}
	return out
}

// workItemJSON is the wire shape of the work variant.
type workItemJSON struct {
	ID               string           `json:"id"`
	Type             ItemKind         `json:"type"`
	Name             string           `json:"name"`
	Description      string           `json:"description,omitempty"`
	EvaluationMethod EvaluationMethod `json:"evaluation_method"`
	TargetValue      *float64         `json:"target_value,omitempty"`
	HasSpecificTime  bool             `json:"has_specific_time"`
	ExecutionTime    string           `json:"execution_time,omitempty"`
	Duration         int              `json:"duration,omitempty"`
	AreaID           string           `json:"area_id,omitempty"`
	ProjectID        string           `json:"project_id,omitempty"`
	Difficulty       Difficulty       `json:"difficulty"`
}

// cooldownItemJSON is the wire shape of the cooldown variant.
// Its "duration" field is a compact string, unlike the work variant's minutes.
type cooldownItemJSON struct {
	ID          string   `json:"id"`
	Type        ItemKind `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Duration    string   `json:"duration"`
}

// MarshalJSON encodes the active variant only.
func (i Item) MarshalJSON() ([]byte, error) {
	switch i.Kind {
	case KindWork:
		return json.Marshal(workItemJSON{
			ID:               i.ID,
			Type:             KindWork,
			Name:             i.Name,
			Description:      i.Description,
			EvaluationMethod: i.EvaluationMethod,
			TargetValue:      i.TargetValue,
			HasSpecificTime:  i.HasSpecificTime,
			ExecutionTime:    i.ExecutionTime,
			Duration:         i.DurationMinutes,
			AreaID:           i.AreaID,
			ProjectID:        i.ProjectID,
			Difficulty:       i.Difficulty,
		})
	case KindCooldown:
		return json.Marshal(cooldownItemJSON{
			ID:          i.ID,
			Type:        KindCooldown,
			Name:        i.Name,
			Description: i.Description,
			Duration:    i.CooldownDuration,
		})
	default:
		return nil, fmt.Errorf("%w: unknown item kind %q", rotaerrors.ErrInvalidArgument, i.Kind)
	}
}

// itemTag is used to peek at the discriminator before decoding a variant.
type itemTag struct {
	Type ItemKind `json:"type"`
}

// UnmarshalJSON decodes by discriminator. Unknown kinds are an error rather
// than a best-effort guess.
func (i *Item) UnmarshalJSON(data []byte) error {
	var tag itemTag
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	switch tag.Type {
	case KindWork:
		var w workItemJSON
		if err := json.Unmarshal(data, &w); err != nil {
			return err
		}
		*i = Item{
			ID:               w.ID,
			Kind:             KindWork,
			Name:             w.Name,
			Description:      w.Description,
			EvaluationMethod: w.EvaluationMethod,
			TargetValue:      w.TargetValue,
			HasSpecificTime:  w.HasSpecificTime,
			ExecutionTime:    w.ExecutionTime,
			DurationMinutes:  w.Duration,
			AreaID:           w.AreaID,
			ProjectID:        w.ProjectID,
			Difficulty:       w.Difficulty,
		}
		return nil
	case KindCooldown:
		var c cooldownItemJSON
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*i = Item{
			ID:               c.ID,
			Kind:             KindCooldown,
			Name:             c.Name,
			Description:      c.Description,
			CooldownDuration: c.Duration,
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown item kind %q", rotaerrors.ErrInvalidArgument, tag.Type)
	}
}

// Iteration is one stage of the rotation: an ordered container of items.
type Iteration struct {
	// ID is an opaque identifier for the iteration.
	ID string `json:"id"`
	// Position is zero-based, dense and unique within the queue. It is an
	// invariant maintained by the Editor, never a free-form field.
	Position int `json:"position"`
	// Items is the ordered item list. Item order is purely array order;
	// items carry no position field of their own.
	Items []Item `json:"items"`
}

// Clone returns a deep copy of the iteration, identifiers included.
func (it Iteration) Clone() Iteration {
	out := it
	out.Items = make([]Item, len(it.Items))
	for idx, item := range it.Items {
		out.Items[idx] = item.Clone()
	}
	return out
}

// Queue is the full rotation: an ordered list of iterations.
type Queue struct {
	// Iterations is the ordered stage list.
	Iterations []Iteration `json:"iterations"`
	// RotationType selects the period-to-iteration mapping policy.
	RotationType RotationType `json:"rotation_type"`
}

// NewQueue returns an empty sequential queue.
func NewQueue() Queue {
	return Queue{RotationType: RotationSequential}
}

// Clone returns a deep copy of the queue.
func (q Queue) Clone() Queue {
	out := q
	out.Iterations = make([]Iteration, len(q.Iterations))
	for idx, it := range q.Iterations {
		out.Iterations[idx] = it.Clone()
	}
	return out
}

// iterationIndex returns the index of the iteration with the given id,
// or -1 when absent.
func (q Queue) iterationIndex(iterationID string) int {
	for idx, it := range q.Iterations {
		if it.ID == iterationID {
			return idx
		}
	}
	return -1
}

// renumber rewrites iteration positions to 0..n-1 in array order.
func (q *Queue) renumber() {
	for idx := range q.Iterations {
		q.Iterations[idx].Position = idx
	}
}
