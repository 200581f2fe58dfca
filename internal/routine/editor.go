package routine

import (
	"fmt"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/ident"
)

// Editor performs queue edit operations. Every operation is a pure function
// of (queue, args): the input queue is never mutated and a deep-copied result
// is returned, so a failed operation leaves the caller's state untouched.
//
// Removal-class operations are idempotent no-ops on missing ids; update-class
// operations return explicit errors, so a caller can never silently lose an
// edit. Deletion racing with deletion is harmless; update racing with
// deletion is a bug to surface.
type Editor struct {
	// NewID allocates identifiers for new and duplicated entities.
	// Defaults to ident.New; tests inject a deterministic generator.
	NewID func() string
	// Projects resolves project-to-area membership for the referential
	// invariant on work items. May be nil, in which case any area change
	// clears the item's project.
	Projects ProjectResolver
}

// NewEditor returns an Editor backed by the default identifier generator.
func NewEditor() Editor {
	return Editor{NewID: ident.New}
}

// newID tolerates a zero-value Editor.
func (e Editor) newID() string {
	if e.NewID == nil {
		return ident.New()
	}
	return e.NewID()
}

// AddIteration appends an empty iteration at the next position. Never fails.
func (e Editor) AddIteration(q Queue) Queue {
	out := q.Clone()
	out.Iterations = append(out.Iterations, Iteration{
		ID:       e.newID(),
		Position: len(out.Iterations),
		Items:    []Item{},
	})
	return out
}

// RemoveIteration removes the iteration with the given id and renumbers the
// remaining positions to stay dense from zero. Removing an unknown id is an
// idempotent no-op.
func (e Editor) RemoveIteration(q Queue, iterationID string) Queue {
	out := q.Clone()
	idx := out.iterationIndex(iterationID)
	if idx < 0 {
		return out
	}
	out.Iterations = append(out.Iterations[:idx], out.Iterations[idx+1:]...)
	out.renumber()
	return out
}

// ReorderIterations moves the iteration at fromIndex to toIndex and renumbers
// all positions. Out-of-range indices fail with ErrIndexOutOfRange rather
// than silently clamping, to surface authoring bugs early.
func (e Editor) ReorderIterations(q Queue, fromIndex, toIndex int) (Queue, error) {
	n := len(q.Iterations)
	if fromIndex < 0 || fromIndex >= n {
		return Queue{}, fmt.Errorf("%w: from index %d, queue has %d iterations", rotaerrors.ErrIndexOutOfRange, fromIndex, n)
	}
	if toIndex < 0 || toIndex >= n {
		return Queue{}, fmt.Errorf("%w: to index %d, queue has %d iterations", rotaerrors.ErrIndexOutOfRange, toIndex, n)
	}

	out := q.Clone()
	moved := out.Iterations[fromIndex]
	out.Iterations = append(out.Iterations[:fromIndex], out.Iterations[fromIndex+1:]...)

	rest := make([]Iteration, 0, n)
	rest = append(rest, out.Iterations[:toIndex]...)
	rest = append(rest, moved)
	rest = append(rest, out.Iterations[toIndex:]...)
	out.Iterations = rest

	out.renumber()
	return out, nil
}

// DuplicateIteration deep-copies the iteration and every item it contains
// with fresh identifiers, appending the copy at the end with the next
// position. The copy never aliases the source's identifiers.
func (e Editor) DuplicateIteration(q Queue, iterationID string) (Queue, error) {
	idx := q.iterationIndex(iterationID)
	if idx < 0 {
		return Queue{}, fmt.Errorf("%w: %s", rotaerrors.ErrIterationNotFound, iterationID)
	}

	out := q.Clone()
	dup := out.Iterations[idx].Clone()
	dup.ID = e.newID()
	dup.Position = len(out.Iterations)
	for i := range dup.Items {
		dup.Items[i].ID = e.newID()
	}
	out.Iterations = append(out.Iterations, dup)
	return out, nil
}

// AddItem appends a new item of the given kind, with authoring defaults and
// a fresh identifier, to the iteration's item list.
func (e Editor) AddItem(q Queue, iterationID string, kind ItemKind) (Queue, error) {
	if !kind.IsValid() {
		return Queue{}, fmt.Errorf("%w: item kind %q", rotaerrors.ErrInvalidArgument, kind)
	}
	idx := q.iterationIndex(iterationID)
	if idx < 0 {
		return Queue{}, fmt.Errorf("%w: %s", rotaerrors.ErrIterationNotFound, iterationID)
	}

	out := q.Clone()
	var item Item
	switch kind {
	case KindWork:
		item = NewWorkItem(e.newID())
	case KindCooldown:
		item = NewCooldownItem(e.newID())
	}
	out.Iterations[idx].Items = append(out.Iterations[idx].Items, item)
	return out, nil
}

// RemoveItem removes the item from the iteration, preserving sibling order.
// Missing iteration or item ids are idempotent no-ops.
func (e Editor) RemoveItem(q Queue, iterationID, itemID string) Queue {
	out := q.Clone()
	idx := out.iterationIndex(iterationID)
	if idx < 0 {
		return out
	}
	items := out.Iterations[idx].Items
	for i, item := range items {
		if item.ID == itemID {
			out.Iterations[idx].Items = append(items[:i], items[i+1:]...)
			break
		}
	}
	return out
}

// DuplicateItem deep-copies the item with a fresh identifier, appended to
// the same iteration's item list.
func (e Editor) DuplicateItem(q Queue, iterationID, itemID string) (Queue, error) {
	idx := q.iterationIndex(iterationID)
	if idx < 0 {
		return Queue{}, fmt.Errorf("%w: %s", rotaerrors.ErrIterationNotFound, iterationID)
	}

	out := q.Clone()
	for _, item := range out.Iterations[idx].Items {
		if item.ID == itemID {
			dup := item.Clone()
			dup.ID = e.newID()
			out.Iterations[idx].Items = append(out.Iterations[idx].Items, dup)
			return out, nil
		}
	}
	return Queue{}, fmt.Errorf("%w: %s in iteration %s", rotaerrors.ErrItemNotFound, itemID, iterationID)
}

// ItemPatch is a shallow merge applied by UpdateItem. Nil fields are left
// unchanged. Variant fields may only be patched on their own variant.
type ItemPatch struct {
	Name             *string
	Description      *string
	EvaluationMethod *EvaluationMethod
	TargetValue      *float64
	HasSpecificTime  *bool
	ExecutionTime    *string
	DurationMinutes  *int
	AreaID           *string
	ProjectID        *string
	Difficulty       *Difficulty
	CooldownDuration *string
}

// patchesWork reports whether any work-variant field is set.
func (p ItemPatch) patchesWork() bool {
	return p.EvaluationMethod != nil || p.TargetValue != nil || p.HasSpecificTime != nil ||
		p.ExecutionTime != nil || p.DurationMinutes != nil || p.AreaID != nil ||
		p.ProjectID != nil || p.Difficulty != nil
}

// UpdateItem shallow-merges the patch onto the matching item and then
// restores the model invariants:
//   - switching to YES_NO clears the target value
//   - clearing HasSpecificTime clears ExecutionTime and DurationMinutes
//   - changing AreaID clears a carried-over ProjectID that no longer belongs
//     to the new area; a ProjectID set by the same patch is kept
//
// It fails with ErrIterationNotFound / ErrItemNotFound when the
// (iterationID, itemID) pair does not resolve.
func (e Editor) UpdateItem(q Queue, iterationID, itemID string, patch ItemPatch) (Queue, error) {
	idx := q.iterationIndex(iterationID)
	if idx < 0 {
		return Queue{}, fmt.Errorf("%w: %s", rotaerrors.ErrIterationNotFound, iterationID)
	}

	out := q.Clone()
	items := out.Iterations[idx].Items
	for i := range items {
		if items[i].ID != itemID {
			continue
		}
		merged, err := e.mergeItem(items[i], patch)
		if err != nil {
			return Queue{}, err
		}
		items[i] = merged
		return out, nil
	}
	return Queue{}, fmt.Errorf("%w: %s in iteration %s", rotaerrors.ErrItemNotFound, itemID, iterationID)
}

// mergeItem applies the patch to a single item and re-establishes invariants.
func (e Editor) mergeItem(item Item, patch ItemPatch) (Item, error) {
	if item.Kind != KindWork && patch.patchesWork() {
		return Item{}, fmt.Errorf("%w: work fields patched on %s item %s", rotaerrors.ErrInvalidArgument, item.Kind, item.ID)
	}
	if item.Kind != KindCooldown && patch.CooldownDuration != nil {
		return Item{}, fmt.Errorf("%w: cooldown duration patched on %s item %s", rotaerrors.ErrInvalidArgument, item.Kind, item.ID)
	}

	prevArea := item.AreaID

	if patch.Name != nil {
		item.Name = *patch.Name
	}
	if patch.Description != nil {
		item.Description = *patch.Description
	}
	if patch.EvaluationMethod != nil {
		item.EvaluationMethod = *patch.EvaluationMethod
	}
	if patch.TargetValue != nil {
		v := *patch.TargetValue
		item.TargetValue = &v
	}
	if patch.HasSpecificTime != nil {
		item.HasSpecificTime = *patch.HasSpecificTime
	}
	if patch.ExecutionTime != nil {
		item.ExecutionTime = *patch.ExecutionTime
	}
	if patch.DurationMinutes != nil {
		item.DurationMinutes = *patch.DurationMinutes
	}
	if patch.AreaID != nil {
		item.AreaID = *patch.AreaID
	}
	if patch.ProjectID != nil {
		item.ProjectID = *patch.ProjectID
	}
	if patch.Difficulty != nil {
		item.Difficulty = *patch.Difficulty
	}
	if patch.CooldownDuration != nil {
		item.CooldownDuration = *patch.CooldownDuration
	}

	if item.Kind == KindWork {
		if item.EvaluationMethod == EvaluationYesNo {
			item.TargetValue = nil
		}
		if !item.HasSpecificTime {
			item.ExecutionTime = ""
			item.DurationMinutes = 0
		}
		// A project named by the same patch is the caller's explicit
		// choice for the new area; only carried-over projects are cleared.
		if item.AreaID != prevArea && patch.ProjectID == nil &&
			item.ProjectID != "" && !e.projectBelongsTo(item.ProjectID, item.AreaID) {
			item.ProjectID = ""
		}
	}
	return item, nil
}

// projectBelongsTo reports whether the project belongs to the area. Without
// a resolver membership cannot be confirmed, so it reports false.
func (e Editor) projectBelongsTo(projectID, areaID string) bool {
	if e.Projects == nil {
		return false
	}
	owner, ok := e.Projects(projectID)
	return ok && owner == areaID
}
