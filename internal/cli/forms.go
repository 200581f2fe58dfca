package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mrz1836/rota/internal/routine"
)

// collectItemForm runs the interactive edit form for an item, prefilled
// with its current values, and returns the resulting patch.
//
//nolint:gochecknoglobals // Test injection point - standard Go testing pattern
var collectItemForm = defaultCollectItemForm

// defaultCollectItemForm builds and runs the Charm Huh form.
func defaultCollectItemForm(item routine.Item) (routine.ItemPatch, error) {
	if item.Kind == routine.KindCooldown {
		return collectCooldownForm(item)
	}
	return collectWorkForm(item)
}

// collectCooldownForm edits a cooldown item's fields.
func collectCooldownForm(item routine.Item) (routine.ItemPatch, error) {
	name := item.Name
	description := item.Description
	cooldown := item.CooldownDuration

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name),
			huh.NewInput().
				Title("Description").
				Value(&description),
			huh.NewInput().
				Title("Cooldown Duration").
				Description("How long the rotation waits, e.g. 1d or 12h").
				Value(&cooldown).
				Placeholder("1d").
				Validate(validateCooldownInput),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return routine.ItemPatch{}, err
	}

	return routine.ItemPatch{
		Name:             &name,
		Description:      &description,
		CooldownDuration: &cooldown,
	}, nil
}

// collectWorkForm edits a task item's fields.
func collectWorkForm(item routine.Item) (routine.ItemPatch, error) {
	name := item.Name
	description := item.Description
	method := string(item.EvaluationMethod)
	difficulty := string(item.Difficulty)
	timed := item.HasSpecificTime
	execTime := item.ExecutionTime
	duration := ""
	if item.DurationMinutes > 0 {
		duration = strconv.Itoa(item.DurationMinutes)
	}
	target := ""
	if item.TargetValue != nil {
		target = strconv.FormatFloat(*item.TargetValue, 'f', -1, 64)
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&name),
			huh.NewInput().
				Title("Description").
				Value(&description),
			huh.NewSelect[string]().
				Title("Evaluation Method").
				Description("Yes/no completion or progress toward a numeric target").
				Options(
					huh.NewOption("Yes / No", string(routine.EvaluationYesNo)),
					huh.NewOption("Numeric target", string(routine.EvaluationNumeric)),
				).
				Value(&method),
			huh.NewInput().
				Title("Target Value").
				Description("Required for numeric evaluation, ignored otherwise").
				Value(&target).
				Validate(validateOptionalNumber),
			huh.NewSelect[string]().
				Title("Difficulty").
				Options(difficultyOptions()...).
				Value(&difficulty),
		),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Runs at a specific time?").
				Affirmative("Yes").
				Negative("No").
				Value(&timed),
			huh.NewInput().
				Title("Execution Time").
				Description("24-hour clock, HH:MM").
				Value(&execTime).
				Placeholder("09:30").
				Validate(validateOptionalClock),
			huh.NewInput().
				Title("Duration (minutes)").
				Value(&duration).
				Placeholder("30").
				Validate(validateOptionalNumber),
		),
	).WithTheme(huh.ThemeCharm())

	if err := form.Run(); err != nil {
		return routine.ItemPatch{}, err
	}

	patch := routine.ItemPatch{
		Name:            &name,
		Description:     &description,
		HasSpecificTime: &timed,
	}

	m := routine.EvaluationMethod(method)
	patch.EvaluationMethod = &m
	if m == routine.EvaluationNumeric && target != "" {
		if v, err := strconv.ParseFloat(target, 64); err == nil {
			patch.TargetValue = &v
		}
	}

	d := routine.Difficulty(difficulty)
	patch.Difficulty = &d

	if timed {
		patch.ExecutionTime = &execTime
		if v, err := strconv.Atoi(duration); err == nil {
			patch.DurationMinutes = &v
		}
	}

	return patch, nil
}

// difficultyOptions returns the select options for item difficulty.
func difficultyOptions() []huh.Option[string] {
	return []huh.Option[string]{
		huh.NewOption("Trivial", string(routine.DifficultyTrivial)),
		huh.NewOption("Easy", string(routine.DifficultyEasy)),
		huh.NewOption("Medium", string(routine.DifficultyMedium)),
		huh.NewOption("Hard", string(routine.DifficultyHard)),
	}
}

// validateCooldownInput checks a cooldown duration form value.
func validateCooldownInput(s string) error {
	if _, err := routine.ParseCooldown(s); err != nil {
		return fmt.Errorf("use a positive count of days or hours, e.g. 1d or 12h")
	}
	return nil
}

// validateOptionalNumber accepts an empty string or a positive number.
func validateOptionalNumber(s string) error {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return fmt.Errorf("must be a positive number")
	}
	return nil
}

// validateOptionalClock accepts an empty string or an HH:MM time.
func validateOptionalClock(s string) error {
	if s == "" {
		return nil
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return fmt.Errorf("use 24-hour HH:MM")
	}
	h, err1 := strconv.Atoi(parts[0])
	m, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || h < 0 || h > 23 || m < 0 || m > 59 {
		return fmt.Errorf("use 24-hour HH:MM")
	}
	return nil
}
