package grid

import (
	"sync"
	"time"

	"github.com/mrz1836/rota/internal/clock"
)

// DefaultMarkerInterval is the refresh cadence of the now marker.
// Once per minute is sufficient; sub-minute precision is not required.
const DefaultMarkerInterval = time.Minute

// Marker is the continuously-updating "now" line of a mounted day view.
// Exactly one timer runs per marker; the owning view starts it on mount and
// must call Stop on teardown so no timer is ever orphaned. The published
// offset is last-write-wins: there is exactly one writer.
type Marker struct {
	clk      clock.Clock
	scale    Scale
	interval time.Duration

	mu     sync.RWMutex
	offset float64

	updates  chan float64
	done     chan struct{}
	stopOnce sync.Once
}

// StartMarker starts a marker ticking at the given interval. A non-positive
// interval falls back to DefaultMarkerInterval.
func StartMarker(clk clock.Clock, scale Scale, interval time.Duration) *Marker {
	if interval <= 0 {
		interval = DefaultMarkerInterval
	}
	m := &Marker{
		clk:      clk,
		scale:    scale,
		interval: interval,
		offset:   CurrentTimeOffset(clk.Now(), scale),
		updates:  make(chan float64, 1),
		done:     make(chan struct{}),
	}
	go m.run()
	return m
}

// run drives the ticker until Stop is called, then closes the updates
// channel so blocked consumers unwind instead of leaking.
func (m *Marker) run() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()
	defer close(m.updates)

	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.publish(CurrentTimeOffset(m.clk.Now(), m.scale))
		}
	}
}

// publish stores the offset and pushes it to the updates channel without
// blocking; a slow consumer only ever misses intermediate values.
func (m *Marker) publish(offset float64) {
	m.mu.Lock()
	m.offset = offset
	m.mu.Unlock()

	select {
	case m.updates <- offset:
	default:
		// Replace a pending update with the newer one.
		select {
		case <-m.updates:
		default:
		}
		select {
		case m.updates <- offset:
		default:
		}
	}
}

// Offset returns the most recently computed marker offset in pixels.
func (m *Marker) Offset() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.offset
}

// Updates returns the channel carrying fresh offsets as they are computed.
// The channel is closed once the marker stops.
func (m *Marker) Updates() <-chan float64 {
	return m.updates
}

// Stop cancels the marker's timer. Safe to call more than once.
func (m *Marker) Stop() {
	m.stopOnce.Do(func() {
		close(m.done)
	})
}
