package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styles is the set of panel styles derived from a Theme.
type styles struct {
	header   lipgloss.Style
	label    lipgloss.Style
	value    lipgloss.Style
	graph    lipgloss.Style
	help     lipgloss.Style
	panel    lipgloss.Style
	canvas   lipgloss.Style
	running  lipgloss.Style
	paused   lipgloss.Style
	rec      lipgloss.Style
	selected lipgloss.Style
	muted    lipgloss.Style
}

func newStyles(t Theme) styles {
	return styles{
		header:   lipgloss.NewStyle().Foreground(t.Primary).Bold(true).MarginBottom(1),
		label:    lipgloss.NewStyle().Foreground(t.Muted).Width(12),
		value:    lipgloss.NewStyle().Foreground(t.Text),
		graph:    lipgloss.NewStyle().Foreground(t.Accent).Padding(1, 0),
		help:     lipgloss.NewStyle().Foreground(t.Muted).MarginTop(1),
		panel:    lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(t.Border).Padding(1, 2).Width(44),
		canvas:   lipgloss.NewStyle().Padding(1, 2),
		running:  lipgloss.NewStyle().Foreground(t.Good).Bold(true),
		paused:   lipgloss.NewStyle().Foreground(t.Warn).Bold(true),
		rec:      lipgloss.NewStyle().Foreground(t.Bad).Bold(true).Blink(true),
		selected: lipgloss.NewStyle().Foreground(t.Accent).Bold(true),
		muted:    lipgloss.NewStyle().Foreground(t.Muted),
	}
}

// ProgressBar renders a fixed-width bar for percent in [0, 1].
func ProgressBar(percent float64, width int, style lipgloss.Style) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return style.Render(strings.Repeat("█", filled) + strings.Repeat("░", width-filled))
}

func Separator(width int, style lipgloss.Style) string {
	if width < 8 {
		return style.Render(strings.Repeat("─", width))
	}
	mid := width / 2
	return style.Render(strings.Repeat("─", mid-3) + " ◆ " + strings.Repeat("─", width-mid-3))
}
