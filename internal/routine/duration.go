package routine

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// cooldownPattern matches the compact cooldown duration format: a positive
// integer followed by a unit, d (days) or h (hours). Examples: "1d", "2h".
var cooldownPattern = regexp.MustCompile(`^([0-9]+)([dh])$`)

// ParseCooldown parses a compact cooldown duration string into a
// time.Duration. Invalid strings are a validation error, never silently
// coerced.
func ParseCooldown(s string) (time.Duration, error) {
	m := cooldownPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, fmt.Errorf("%w: %q must match <integer><d|h>", rotaerrors.ErrInvalidDuration, s)
	}

	count, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", rotaerrors.ErrInvalidDuration, s, err)
	}
	if count <= 0 {
		return 0, fmt.Errorf("%w: %q must be positive", rotaerrors.ErrInvalidDuration, s)
	}

	switch m[2] {
	case "d":
		return time.Duration(count) * 24 * time.Hour, nil
	default: // "h", guaranteed by the pattern
		return time.Duration(count) * time.Hour, nil
	}
}
