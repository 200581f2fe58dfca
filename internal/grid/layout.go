// Package grid computes pixel geometry for the hour-by-hour day timeline.
//
// One algorithm serves every presentation scale: the engine is parameterized
// by pixels-per-hour, so the desktop, tablet and mobile grids differ only in
// the Scale they pass in. Events are pre-bucketed into their starting hour
// row by the caller; an event taller than its row visually extends into the
// following rows, with no clipping and no collision layout between
// overlapping events.
package grid

import (
	"fmt"
	"time"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
)

// Scale is the vertical resolution of a grid in pixels per hour.
type Scale int

// Default scales per presentation breakpoint.
const (
	// ScaleDesktop is the full-day desktop scale.
	ScaleDesktop Scale = 128
	// ScaleTablet is the intermediate scale.
	ScaleTablet Scale = 112
	// ScaleMobile is the compressed mobile scale.
	ScaleMobile Scale = 80
)

// PixelsPerMinute returns the per-minute resolution of the scale.
func (s Scale) PixelsPerMinute() float64 {
	return float64(s) / 60
}

// Box is the vertical pixel region of one event within its hour row.
type Box struct {
	// Top is the offset from the top of the event's starting hour row.
	Top float64
	// Height is the rendered height of the event.
	Height float64
}

// Layout maps a start minute-of-hour and a duration onto a pixel region.
// Height grows linearly with both duration and scale. Bad input is rejected,
// never clamped: mis-rendering a schedule without signal is worse than
// failing loudly.
func Layout(startMinuteOfHour, durationMinutes int, scale Scale) (Box, error) {
	if scale <= 0 {
		return Box{}, fmt.Errorf("%w: scale %d must be positive", rotaerrors.ErrInvalidArgument, scale)
	}
	if startMinuteOfHour < 0 || startMinuteOfHour > 59 {
		return Box{}, fmt.Errorf("%w: start minute %d outside [0,59]", rotaerrors.ErrInvalidArgument, startMinuteOfHour)
	}
	if durationMinutes <= 0 {
		return Box{}, fmt.Errorf("%w: duration %d must be positive", rotaerrors.ErrInvalidArgument, durationMinutes)
	}

	ppm := scale.PixelsPerMinute()
	return Box{
		Top:    float64(startMinuteOfHour) * ppm,
		Height: float64(durationMinutes) * ppm,
	}, nil
}

// CurrentTimeOffset returns the pixel offset of the "now" marker from the
// top of the grid for the given instant.
func CurrentTimeOffset(now time.Time, scale Scale) float64 {
	minutes := now.Hour()*60 + now.Minute()
	return float64(minutes) * scale.PixelsPerMinute()
}

// AutoScrollTarget positions "now" roughly a quarter of the way down the
// visible viewport rather than at the very top edge. The result is clamped
// to the scrollable range.
func AutoScrollTarget(offset, viewportHeight, scrollableMax float64) float64 {
	target := offset - viewportHeight*0.25
	if target < 0 {
		return 0
	}
	if target > scrollableMax {
		return scrollableMax
	}
	return target
}
