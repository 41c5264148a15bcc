package viz

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/splitbox/internal/config"
	"github.com/san-kum/splitbox/internal/frame"
	"github.com/san-kum/splitbox/internal/logging"
)

var presetInfo = map[string]string{
	"classic": "the original look",
	"calm":    "long lives, rare splits",
	"dense":   "frequent splits, capped depth",
	"flicker": "short lives, soft fades",
	"slab":    "flat box split along z",
}

const (
	stateMenu = iota
	stateConfig
	stateLive
)

// param is one editable field of the config screen.
type param struct {
	name string
	get  func(*config.Config) float64
	set  func(*config.Config, float64)
}

var params = []param{
	{"seed", func(c *config.Config) float64 { return float64(c.Seed) }, func(c *config.Config, v float64) { c.Seed = int64(v) }},
	{"lifetime", func(c *config.Config) float64 { return c.Tree.Lifetime }, func(c *config.Config, v float64) { c.Tree.Lifetime = v }},
	{"spawn_div", func(c *config.Config) float64 { return c.Tree.SpawnDivisor }, func(c *config.Config, v float64) { c.Tree.SpawnDivisor = v }},
	{"fade_alpha", func(c *config.Config) float64 { return c.Tree.FadeAlpha }, func(c *config.Config, v float64) { c.Tree.FadeAlpha = v }},
	{"fade_window", func(c *config.Config) float64 { return c.Tree.FadeWindow }, func(c *config.Config, v float64) { c.Tree.FadeWindow = v }},
	{"max_depth", func(c *config.Config) float64 { return float64(c.Tree.MaxDepth) }, func(c *config.Config, v float64) { c.Tree.MaxDepth = int(v) }},
	{"dt", func(c *config.Config) float64 { return c.Run.Dt }, func(c *config.Config, v float64) { c.Run.Dt = v }},
}

type menuModel struct {
	state, cursor int
	presets       []string
	cfg           *config.Config
	overrides     func(*config.Config)
	paramCursor   int
	editing       bool
	editBuf       string
	err           error
	logger        *slog.Logger
	live          Model
}

// NewInteractiveApp opens on the preset list. overrides is applied after a
// preset is chosen so explicit flags still win.
func NewInteractiveApp(overrides func(*config.Config), logger *slog.Logger) tea.Model {
	if overrides == nil {
		overrides = func(*config.Config) {}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return menuModel{
		presets:   config.ListPresets(),
		overrides: overrides,
		logger:    logger,
	}
}

func (m menuModel) Init() tea.Cmd { return nil }

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateLive {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			m.state = stateConfig
			return m, nil
		}
		live, cmd := m.live.Update(msg)
		m.live = live.(Model)
		return m, cmd
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch m.state {
		case stateMenu:
			return m.menuKey(k)
		case stateConfig:
			return m.configKey(k)
		}
	}
	return m, nil
}

func (m menuModel) menuKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.overrides(m.cfg)
		m.state, m.paramCursor, m.err = stateConfig, 0, nil
	}
	return m, nil
}

func (m menuModel) configKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := params[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				p.set(m.cfg, v)
			}
			m.editing, m.editBuf = false, ""
		case "esc":
			m.editing, m.editBuf = false, ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if s := msg.String(); len(s) == 1 && strings.ContainsAny(s, "0123456789.-") {
				m.editBuf += s
			}
		}
		return m, nil
	}
	switch msg.String() {
	case "q", "esc":
		m.state = stateMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing, m.editBuf = true, strconv.FormatFloat(p.get(m.cfg), 'f', -1, 64)
	case "left", "h":
		p.set(m.cfg, p.get(m.cfg)*0.9)
	case "right", "l":
		p.set(m.cfg, p.get(m.cfg)*1.1)
	case "s":
		return m.start()
	}
	return m, nil
}

func (m menuModel) start() (tea.Model, tea.Cmd) {
	if err := m.cfg.Validate(); err != nil {
		m.err = err
		return m, nil
	}
	dc, err := m.cfg.DriverConfig()
	if err != nil {
		m.err = err
		return m, nil
	}
	d, err := frame.New(dc, frame.WithClock(frame.NewStepClock(0, m.cfg.Run.Dt)), frame.WithLogger(m.logger))
	if err != nil {
		m.err = err
		return m, nil
	}
	m.live = NewModel(d, LiveOptions{FPS: m.cfg.Render.FPS, Theme: m.cfg.Render.Theme})
	m.state, m.err = stateLive, nil
	return m, m.live.Init()
}

func (m menuModel) View() string {
	switch m.state {
	case stateMenu:
		return m.viewMenu()
	case stateConfig:
		return m.viewConfig()
	case stateLive:
		return m.live.View()
	}
	return ""
}

var (
	menuTitle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#00cccc")).Bold(true)
	menuSub    = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688"))
	menuCursor = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ffff")).Bold(true)
	menuActive = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)
	menuDesc   = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff88ff"))
	menuIdle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))
	menuKey    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	menuErr    = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff4444"))
)

func keyHints(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		b.WriteString(menuKey.Render(pairs[i]) + menuIdle.Render(" "+pairs[i+1]+"  "))
	}
	return b.String()
}

func (m menuModel) viewMenu() string {
	var b strings.Builder
	b.WriteString("\n\n    " + menuTitle.Render("SPLITBOX") + "\n    " + menuSub.Render("recursive split-box geometry") + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, name := range m.presets {
		if i == m.cursor {
			b.WriteString(fmt.Sprintf("    %s %s  %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-10s", name)), menuDesc.Render(presetInfo[name])))
		} else {
			b.WriteString(fmt.Sprintf("      %s  %s\n", menuIdle.Render(fmt.Sprintf("%-10s", name)), menuIdle.Render(presetInfo[name])))
		}
	}
	b.WriteString("\n    " + keyHints("j/k", "navigate", "enter", "select", "q", "quit") + "\n")
	return b.String()
}

func (m menuModel) viewConfig() string {
	var b strings.Builder
	name := m.presets[m.cursor]
	b.WriteString("\n\n    " + menuTitle.Render(strings.ToUpper(name)) + "\n    " + menuSub.Render(presetInfo[name]) + "\n    " + menuSub.Render("─────────────────────────") + "\n\n")
	for i, p := range params {
		val := fmt.Sprintf("%10.3f", p.get(m.cfg))
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%10s", m.editBuf+"_")
		}
		if i == m.paramCursor {
			b.WriteString(fmt.Sprintf("    %s %s %s\n", menuCursor.Render("▸"), menuActive.Render(fmt.Sprintf("%-12s", p.name)), menuDesc.Bold(true).Render(val)))
		} else {
			b.WriteString(fmt.Sprintf("      %s %s\n", menuIdle.Render(fmt.Sprintf("%-12s", p.name)), menuIdle.Render(val)))
		}
	}
	if m.err != nil {
		b.WriteString("\n    " + menuErr.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n    " + keyHints("j/k", "select", "h/l", "adjust", "s", "start", "esc", "back") + "\n")
	return b.String()
}

func RunInteractive(overrides func(*config.Config), logger *slog.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(overrides, logger), tea.WithAltScreen()).Run()
	return err
}
