package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/rota/internal/clock"
	"github.com/mrz1836/rota/internal/grid"
	"github.com/mrz1836/rota/internal/schedule"
)

// chromeHeight is the number of rows taken by the header and footer.
const chromeHeight = 3

// MarkerMsg carries a fresh now-marker pixel offset.
type MarkerMsg float64

// DayModel is the Bubble Tea model for the day timeline view.
// It implements the tea.Model interface (Init, Update, View).
type DayModel struct {
	day    time.Time
	events []schedule.Event
	scale  grid.Scale
	clk    clock.Clock
	marker *grid.Marker

	viewport viewport.Model
	ready    bool
	quitting bool
	width    int
}

// NewDayModel creates the day view and starts its now marker. The caller
// owns the model's lifecycle; the marker is stopped when the user quits.
func NewDayModel(day time.Time, events []schedule.Event, scale grid.Scale, clk clock.Clock) *DayModel {
	return &DayModel{
		day:    day,
		events: events,
		scale:  scale,
		clk:    clk,
		marker: grid.StartMarker(clk, scale, grid.DefaultMarkerInterval),
		width:  80,
	}
}

// Init returns the initial command: waiting for the first marker tick.
func (m *DayModel) Init() tea.Cmd {
	return m.waitForMarker()
}

// Update handles messages and returns the updated model and any commands.
func (m *DayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.marker.Stop()
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		height := msg.Height - chromeHeight
		if height < 1 {
			height = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, height)
			m.viewport.SetContent(m.timeline())
			m.scrollToNow()
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = height
		}
		return m, nil

	case MarkerMsg:
		if m.ready {
			m.viewport.SetContent(m.timeline())
		}
		return m, m.waitForMarker()
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the current state to a string.
func (m *DayModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading timeline..."
	}

	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n")
	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// IsQuitting returns true if the model is in quitting state.
func (m *DayModel) IsQuitting() bool {
	return m.quitting
}

// header renders the date line.
func (m *DayModel) header() string {
	title := lipgloss.NewStyle().Bold(true).Render(m.day.Format("Monday, January 2, 2006"))
	count := fmt.Sprintf("%d timed events", len(m.events))
	return title + "  " + lipgloss.NewStyle().Faint(true).Render(count)
}

// footer renders the key hints.
func (m *DayModel) footer() string {
	return lipgloss.NewStyle().Faint(true).Render("↑/↓ scroll · q quit")
}

// timeline renders the full grid content for the viewport.
func (m *DayModel) timeline() string {
	row := markerRow(m.marker.Offset(), m.scale)
	return strings.Join(renderTimeline(m.events, m.scale, row, m.clk.Now().Format("15:04")), "\n")
}

// scrollToNow positions the viewport so the marker sits a quarter of the
// way down the visible window.
func (m *DayModel) scrollToNow() {
	totalRows := 24 * rowsPerHour(m.scale)
	scrollable := totalRows - m.viewport.Height
	if scrollable < 0 {
		scrollable = 0
	}
	target := grid.AutoScrollTarget(
		float64(markerRow(m.marker.Offset(), m.scale)),
		float64(m.viewport.Height),
		float64(scrollable),
	)
	m.viewport.SetYOffset(int(target))
}

// waitForMarker returns a command that delivers the next marker update.
// Once the marker stops its channel closes and the command yields nothing.
func (m *DayModel) waitForMarker() tea.Cmd {
	return func() tea.Msg {
		offset, ok := <-m.marker.Updates()
		if !ok {
			return nil
		}
		return MarkerMsg(offset)
	}
}
