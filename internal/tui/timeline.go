// Package tui renders the interactive day timeline.
package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mrz1836/rota/internal/grid"
	"github.com/mrz1836/rota/internal/schedule"
)

// gutterWidth is the width of the hour-label gutter, including the rule.
const gutterWidth = 7

// statusStyles maps occurrence statuses to their semantic colors.
func statusStyles() map[schedule.Status]lipgloss.Style {
	colors := map[schedule.Status]lipgloss.AdaptiveColor{
		schedule.StatusDue:      {Light: "#D70000", Dark: "#FF5F5F"},
		schedule.StatusPending:  {Light: "#AF8700", Dark: "#FFD700"},
		schedule.StatusDone:     {Light: "#008700", Dark: "#5FD75F"},
		schedule.StatusUpcoming: {Light: "#0087AF", Dark: "#00D7FF"},
	}
	styles := make(map[schedule.Status]lipgloss.Style, len(colors))
	for status, color := range colors {
		styles[status] = lipgloss.NewStyle().Foreground(color)
	}
	return styles
}

// markerStyle is the style of the now marker line.
func markerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#D70000", Dark: "#FF5F5F"}).
		Bold(true)
}

// rowsPerHour derives terminal rows per hour from the pixel scale, so a
// larger scale still means a taller grid. Two rows per hour is the floor.
func rowsPerHour(scale grid.Scale) int {
	rows := int(scale) / 32
	if rows < 2 {
		rows = 2
	}
	return rows
}

// markerRow converts a marker pixel offset into a timeline row index.
func markerRow(offset float64, scale grid.Scale) int {
	row := int(offset / float64(scale) * float64(rowsPerHour(scale)))
	maxRow := 24*rowsPerHour(scale) - 1
	if row > maxRow {
		row = maxRow
	}
	if row < 0 {
		row = 0
	}
	return row
}

// renderTimeline renders the 24-hour grid with events placed at their
// computed rows and the now marker overlaid, returning one string per row.
func renderTimeline(events []schedule.Event, scale grid.Scale, nowRow int, nowLabel string) []string {
	rph := rowsPerHour(scale)
	total := 24 * rph
	styles := statusStyles()

	lines := make([]string, total)
	for row := 0; row < total; row++ {
		if row%rph == 0 {
			lines[row] = fmt.Sprintf("%5s │", fmt.Sprintf("%02d:00", row/rph))
		} else {
			lines[row] = "      │"
		}
	}

	for _, ev := range events {
		box, err := grid.Layout(ev.StartMinuteOfHour(), ev.DurationMinutes, scale)
		if err != nil {
			continue
		}

		start := ev.StartHour()*rph + int(box.Top/float64(scale)*float64(rph))
		height := int(box.Height / float64(scale) * float64(rph))
		if height < 1 {
			height = 1
		}

		style, ok := styles[ev.Status]
		if !ok {
			style = lipgloss.NewStyle()
		}
		label := fmt.Sprintf("▌ %s  %s", ev.Title, ev.TimeRange)

		for i := 0; i < height && start+i < total; i++ {
			cell := "▌"
			if i == 0 {
				cell = label
			}
			lines[start+i] += " " + style.Render(cell)
		}
	}

	if nowRow >= 0 && nowRow < total {
		lines[nowRow] += " " + markerStyle().Render("◀ now "+nowLabel)
	}

	return lines
}
