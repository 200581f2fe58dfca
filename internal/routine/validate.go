package routine

import (
	"fmt"
	"regexp"
	"strings"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// timeOfDayPattern matches a 24-hour HH:MM time of day.
var timeOfDayPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// ProjectResolver reports which area a project belongs to. The storage layer
// does not enforce the area/project relationship; the editor and queue
// validation do, through this lookup. A nil resolver disables the check.
type ProjectResolver func(projectID string) (areaID string, ok bool)

// Validate checks the per-variant rules of an item. It is the pre-submit
// validation; partially filled items are expected while authoring.
func (i Item) Validate() error {
	if i.ID == "" {
		return fmt.Errorf("%w: item id is required", rotaerrors.ErrEmptyValue)
	}
	if !i.Kind.IsValid() {
		return fmt.Errorf("%w: item %s has unknown kind %q", rotaerrors.ErrInvalidArgument, i.ID, i.Kind)
	}
	if strings.TrimSpace(i.Name) == "" {
		return fmt.Errorf("%w: item %s has no name", rotaerrors.ErrEmptyValue, i.ID)
	}

	switch i.Kind {
	case KindWork:
		return i.validateWork()
	case KindCooldown:
		return i.validateCooldown()
	}
	return nil
}

// validateWork checks the work-variant rules.
func (i Item) validateWork() error {
	if !i.EvaluationMethod.IsValid() {
		return fmt.Errorf("%w: item %s has evaluation method %q", rotaerrors.ErrInvalidArgument, i.ID, i.EvaluationMethod)
	}
	if i.EvaluationMethod == EvaluationNumeric && i.TargetValue == nil {
		return fmt.Errorf("%w: item %s is NUMERIC but has no target value", rotaerrors.ErrInvalidQueue, i.ID)
	}
	if i.EvaluationMethod == EvaluationYesNo && i.TargetValue != nil {
		return fmt.Errorf("%w: item %s is YES_NO but carries a target value", rotaerrors.ErrInvalidQueue, i.ID)
	}
	if !i.Difficulty.IsValid() {
		return fmt.Errorf("%w: item %s has difficulty %q", rotaerrors.ErrInvalidArgument, i.ID, i.Difficulty)
	}

	if i.HasSpecificTime {
		if !timeOfDayPattern.MatchString(i.ExecutionTime) {
			return fmt.Errorf("%w: item %s execution time %q is not HH:MM", rotaerrors.ErrInvalidQueue, i.ID, i.ExecutionTime)
		}
		if i.DurationMinutes <= 0 {
			return fmt.Errorf("%w: item %s needs a positive duration", rotaerrors.ErrInvalidQueue, i.ID)
		}
	} else {
		// Invariant: clearing the flag clears the fields.
		if i.ExecutionTime != "" || i.DurationMinutes != 0 {
			return fmt.Errorf("%w: item %s carries time fields without has_specific_time", rotaerrors.ErrInvalidQueue, i.ID)
		}
	}

	if i.ProjectID != "" && i.AreaID == "" {
		return fmt.Errorf("%w: item %s has a project but no area", rotaerrors.ErrInvalidQueue, i.ID)
	}
	return nil
}

// validateCooldown checks the cooldown-variant rules.
func (i Item) validateCooldown() error {
	if _, err := ParseCooldown(i.CooldownDuration); err != nil {
		return fmt.Errorf("item %s: %w", i.ID, err)
	}
	return nil
}

// ValidateStructure checks the invariants every edit must preserve: a known
// rotation type, non-empty unique iteration ids, dense positions, and
// non-empty unique item ids within each iteration. Per-item submit rules
// are not applied; partially filled items are expected while authoring.
func (q Queue) ValidateStructure() error {
	if !q.RotationType.IsValid() {
		return fmt.Errorf("%w: rotation type %q", rotaerrors.ErrInvalidArgument, q.RotationType)
	}

	for idx, it := range q.Iterations {
		if it.ID == "" {
			return fmt.Errorf("%w: iteration at index %d has no id", rotaerrors.ErrEmptyValue, idx)
		}
		if it.Position != idx {
			return fmt.Errorf("%w: iteration %s has position %d, want %d", rotaerrors.ErrInvalidQueue, it.ID, it.Position, idx)
		}

		seen := make(map[string]bool, len(it.Items))
		for _, item := range it.Items {
			if item.ID == "" {
				return fmt.Errorf("%w: iteration %s has an item without an id", rotaerrors.ErrEmptyValue, it.ID)
			}
			if seen[item.ID] {
				return fmt.Errorf("%w: iteration %s has duplicate item id %s", rotaerrors.ErrInvalidQueue, it.ID, item.ID)
			}
			seen[item.ID] = true
		}
	}
	return nil
}

// Validate checks the whole queue at the submit boundary: structure plus the
// per-item rules and (with a resolver) the project-belongs-to-area
// referential invariant.
func (q Queue) Validate(projects ProjectResolver) error {
	if err := q.ValidateStructure(); err != nil {
		return err
	}

	for _, it := range q.Iterations {
		for _, item := range it.Items {
			if err := item.Validate(); err != nil {
				return err
			}

			if projects != nil && item.Kind == KindWork && item.ProjectID != "" {
				areaID, ok := projects(item.ProjectID)
				if !ok || areaID != item.AreaID {
					return fmt.Errorf("%w: item %s project %s does not belong to area %s",
						rotaerrors.ErrInvalidQueue, item.ID, item.ProjectID, item.AreaID)
				}
			}
		}
	}
	return nil
}
