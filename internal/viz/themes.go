package viz

import "github.com/charmbracelet/lipgloss"

// Theme is the panel color scheme. Geometry keeps its own colours.
type Theme struct {
	Name    string
	Primary lipgloss.Color
	Accent  lipgloss.Color
	Text    lipgloss.Color
	Muted   lipgloss.Color
	Border  lipgloss.Color
	Good    lipgloss.Color
	Warn    lipgloss.Color
	Bad     lipgloss.Color
}

var Themes = []Theme{
	{Name: "cyberpunk", Primary: "#ff00ff", Accent: "#00ffff", Text: "#ffffff", Muted: "#666688", Border: "#444466", Good: "#00ff88", Warn: "#ffaa00", Bad: "#ff4444"},
	{Name: "retro", Primary: "#00ff00", Accent: "#88ff88", Text: "#00ff00", Muted: "#005500", Border: "#003300", Good: "#88ff88", Warn: "#ffff00", Bad: "#ff0000"},
	{Name: "minimal", Primary: "#ffffff", Accent: "#0088ff", Text: "#ffffff", Muted: "#888888", Border: "#444444", Good: "#00ff00", Warn: "#ffaa00", Bad: "#ff0000"},
	{Name: "ocean", Primary: "#0077be", Accent: "#ffd700", Text: "#e0f0ff", Muted: "#4488aa", Border: "#224466", Good: "#00ff88", Warn: "#ffcc00", Bad: "#ff4444"},
	{Name: "sunset", Primary: "#ff6b6b", Accent: "#feca57", Text: "#fff5f5", Muted: "#8b6b8c", Border: "#5b3b5c", Good: "#5fd068", Warn: "#ffc048", Bad: "#ff4757"},
}

// GetTheme returns a theme by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after name, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range Themes {
		if t.Name == name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
