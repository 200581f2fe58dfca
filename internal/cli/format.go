package cli

import (
	"encoding/json"
	"io"

	"github.com/charmbracelet/lipgloss"

	rotaerrors "github.com/mrz1836/rota/internal/errors"
	"github.com/mrz1836/rota/internal/schedule"
)

// statusColors maps occurrence statuses to semantic colors: overdue work
// is red, today's work yellow, finished work green, future work blue.
func statusColors() map[schedule.Status]lipgloss.AdaptiveColor {
	return map[schedule.Status]lipgloss.AdaptiveColor{
		schedule.StatusDue:      {Light: "#D70000", Dark: "#FF5F5F"},
		schedule.StatusPending:  {Light: "#AF8700", Dark: "#FFD700"},
		schedule.StatusDone:     {Light: "#008700", Dark: "#5FD75F"},
		schedule.StatusUpcoming: {Light: "#0087AF", Dark: "#00D7FF"},
	}
}

// renderStatus renders a status name in its semantic color.
func renderStatus(s schedule.Status) string {
	color, ok := statusColors()[s]
	if !ok {
		return string(s)
	}
	return lipgloss.NewStyle().Foreground(color).Render(string(s))
}

// headerStyle is the style used for table headers.
func headerStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.AdaptiveColor{Light: "#333333", Dark: "#DDDDDD"})
}

// dimStyle is the style used for secondary text.
func dimStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.AdaptiveColor{Light: "#666666", Dark: "#888888"})
}

// outputJSON writes v as indented JSON.
func outputJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return rotaerrors.Wrap(encoder.Encode(v), "failed to encode JSON output")
}

// truncate shortens s to at most width runes, ending with an ellipsis.
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width < 1 {
		return ""
	}
	return string(runes[:width-1]) + "…"
}
