package grid

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/rota/internal/clock"
)

func TestMarker_InitialOffset(t *testing.T) {
	t.Parallel()

	clk := clock.Fixed{Time: time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)}
	m := StartMarker(clk, Scale(120), time.Hour)
	defer m.Stop()

	// 12:00 at 2 px/min.
	assert.InDelta(t, 1440.0, m.Offset(), 1e-9)
}

func TestMarker_PublishesUpdates(t *testing.T) {
	t.Parallel()

	clk := clock.Fixed{Time: time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)}
	m := StartMarker(clk, ScaleMobile, 5*time.Millisecond)
	defer m.Stop()

	select {
	case offset := <-m.Updates():
		assert.InDelta(t, CurrentTimeOffset(clk.Time, ScaleMobile), offset, 1e-9)
	case <-time.After(time.Second):
		t.Fatal("no marker update within a second")
	}
}

func TestMarker_StopClosesUpdates(t *testing.T) {
	t.Parallel()

	clk := clock.Fixed{Time: time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)}
	m := StartMarker(clk, ScaleMobile, 5*time.Millisecond)

	// Wait for at least one tick, then stop.
	select {
	case <-m.Updates():
	case <-time.After(time.Second):
		t.Fatal("no marker update within a second")
	}
	m.Stop()

	// Drain in-flight updates; the channel must close so a blocked
	// consumer unwinds instead of waiting forever.
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-m.Updates():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("updates channel not closed after Stop")
		}
	}
}

func TestMarker_StopIsIdempotent(t *testing.T) {
	t.Parallel()

	clk := clock.Fixed{Time: time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)}
	m := StartMarker(clk, ScaleMobile, time.Hour)

	require.NotPanics(t, func() {
		m.Stop()
		m.Stop()
	})
}

func TestMarker_DefaultInterval(t *testing.T) {
	t.Parallel()

	clk := clock.Fixed{Time: time.Date(2024, 3, 10, 6, 30, 0, 0, time.UTC)}
	m := StartMarker(clk, ScaleDesktop, 0)
	defer m.Stop()

	// Offset is available immediately even before the first tick.
	assert.Positive(t, m.Offset())
}
