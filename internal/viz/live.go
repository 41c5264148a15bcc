package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/splitbox/internal/frame"
)

const (
	defaultWidth    = 72
	defaultHeight   = 24
	panelWidth      = 50
	historyCapacity = 600
	rotateStep      = 0.1
	autoRotateStep  = 0.01
)

type LiveOptions struct {
	Width, Height int
	FPS           int
	Theme         string
	GIFPath       string
}

type TickMsg time.Time

// Model is the live terminal view: it advances the driver on every tick and
// presents each frame through a Terminal backend.
type Model struct {
	driver     *frame.Driver
	term       *Terminal
	frame      frame.Frame
	seed       int64
	interval   time.Duration
	running    bool
	autoRotate bool
	vertices   []float64
	theme      Theme
	st         styles
	recording  bool
	gif        *GIFRecorder
	gifPath    string
	showHelp   bool
	message    string
	err        error
}

func NewModel(d *frame.Driver, opts LiveOptions) Model {
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.FPS <= 0 {
		opts.FPS = 30
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "splitbox.gif"
	}
	theme := GetTheme(opts.Theme)
	return Model{
		driver:     d,
		term:       NewTerminal(opts.Width, opts.Height, d.Config().Box),
		seed:       d.Config().Seed,
		interval:   time.Second / time.Duration(opts.FPS),
		running:    true,
		autoRotate: true,
		vertices:   make([]float64, 0, historyCapacity),
		theme:      theme,
		st:         newStyles(theme),
		gif:        NewGIFRecorder(),
		gifPath:    opts.GIFPath,
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.term.Resize(msg.Width-panelWidth-4, msg.Height-2)
		m.redraw()
	case TickMsg:
		if m.running {
			m.step()
		} else if m.autoRotate {
			m.term.Camera.RotateY(autoRotateStep)
			m.redraw()
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	cam := m.term.Camera
	switch msg.String() {
	case "q", "ctrl+c":
		if m.recording {
			m.stopRecording()
		}
		return m, tea.Quit
	case " ":
		m.running = !m.running
	case "r":
		m.restart(m.seed)
	case "n":
		m.restart(m.seed + 1)
	case "g":
		if m.recording {
			m.stopRecording()
		} else {
			m.recording = true
			m.gif.Reset()
			m.message = "recording"
		}
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		m.theme = NextTheme(m.theme.Name)
		m.st = newStyles(m.theme)
	case "a":
		m.autoRotate = !m.autoRotate
	case "b":
		m.term.ShowBox = !m.term.ShowBox
	case "x":
		cam.RotateX(rotateStep)
	case "X":
		cam.RotateX(-rotateStep)
	case "y":
		cam.RotateY(rotateStep)
	case "Y":
		cam.RotateY(-rotateStep)
	case "z":
		cam.RotateZ(rotateStep)
	case "Z":
		cam.RotateZ(-rotateStep)
	case "+", "=":
		cam.ZoomIn()
	case "-", "_":
		cam.ZoomOut()
	case "0":
		cam.ResetView()
	default:
		return m, nil
	}
	m.redraw()
	return m, nil
}

func (m *Model) step() {
	f := m.driver.Advance()
	m.frame = f
	m.vertices = append(m.vertices, float64(f.Vertices))
	if len(m.vertices) > historyCapacity {
		m.vertices = m.vertices[1:]
	}
	if m.autoRotate {
		m.term.Camera.RotateY(autoRotateStep)
	}
	if err := m.driver.Present(m.term, f); err != nil {
		m.err = err
		return
	}
	if m.recording {
		m.gif.Capture(m.term.Canvas)
	}
}

// redraw re-presents the buffers already uploaded, for view changes while paused.
func (m *Model) redraw() {
	if err := m.term.Draw(m.frame.Vertices); err != nil {
		m.err = err
		return
	}
	_ = m.term.Present()
}

func (m *Model) restart(seed int64) {
	m.seed = seed
	m.driver.Reset(seed)
	m.vertices = m.vertices[:0]
	m.frame = frame.Frame{}
	m.err = nil
	m.message = fmt.Sprintf("seed %d", seed)
}

func (m *Model) stopRecording() {
	m.recording = false
	if err := m.gif.Save(m.gifPath); err != nil {
		m.message = "gif: " + err.Error()
		return
	}
	m.message = fmt.Sprintf("saved %d frames to %s", m.gif.Len(), m.gifPath)
}

func (m Model) View() string {
	st := m.st
	var s strings.Builder
	s.WriteString(st.header.Render("SPLITBOX") + "\n")

	status := st.running.Render("RUNNING")
	if !m.running {
		status = st.paused.Render("PAUSED")
	}
	if m.recording {
		status += "  " + st.rec.Render("● REC")
	}
	s.WriteString(status + "\n\n")

	if len(m.vertices) > 1 {
		chart := asciigraph.Plot(m.vertices, asciigraph.Height(5), asciigraph.Width(30), asciigraph.Caption("vertices"))
		s.WriteString(st.graph.Render(chart) + "\n")
	}

	f := m.frame
	c := m.driver.Counters()
	row := func(label, value string) {
		s.WriteString(st.label.Render(label) + st.value.Render(value) + "\n")
	}
	row("Seed", fmt.Sprintf("%d", m.seed))
	row("Time", fmt.Sprintf("%.2fs", f.Time/1000))
	row("Frame", fmt.Sprintf("%d", f.Index))
	row("Vertices", fmt.Sprintf("%d", f.Vertices))
	row("Triangles", fmt.Sprintf("%d", f.Triangles))
	row("Nodes", fmt.Sprintf("%d (%d leaves)", f.Tree.Nodes, f.Tree.Leaves))
	row("Depth", fmt.Sprintf("%d", f.Tree.MaxDepth))
	row("Replaced", fmt.Sprintf("%d", c.Replacements))
	row("Recovered", fmt.Sprintf("%d", c.Recoveries))

	if root := m.driver.Root(); root != nil {
		life := root.Fraction(f.Time)
		s.WriteString(st.label.Render("Root life") + ProgressBar(life, 20, st.selected) + "\n")
		row("Root axis", root.Axis.String())
	}

	if m.err != nil {
		s.WriteString("\n" + st.rec.Render(m.err.Error()) + "\n")
	} else if m.message != "" {
		s.WriteString("\n" + st.muted.Render(m.message) + "\n")
	}

	s.WriteString(st.help.Render(Separator(30, st.muted) + "\nSP:Pause R:Reset N:Next Q:Quit\nT:Theme  G:Record ?:Help"))

	canvasView := st.canvas.Render(m.term.View())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, st.panel.Render(s.String()))
	if m.showHelp {
		return helpText + "\n\n" + mainView
	}
	return mainView
}

const helpText = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart, same seed       ║
║  N        - Restart, next seed       ║
║  x/y/z    - Rotate (shift reverses)  ║
║  +/-      - Zoom in/out              ║
║  0        - Reset view               ║
║  A        - Toggle auto-rotation     ║
║  B        - Toggle bounding box      ║
║  G        - Toggle GIF recording     ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunLive runs the live view until the user quits.
func RunLive(d *frame.Driver, opts LiveOptions) error {
	_, err := tea.NewProgram(NewModel(d, opts), tea.WithAltScreen()).Run()
	return err
}
