package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/gravsim/internal/integrators"
	"github.com/san-kum/gravsim/internal/sim"
	"github.com/san-kum/gravsim/internal/vecmath"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 600
	trailLength     = 200
	maxStepsFrame   = 4096
	frameInterval   = time.Second / 60
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Model is the live view of one simulation. It owns the simulation while
// the program runs.
type Model struct {
	sim           *sim.Simulation
	name          string
	width, height int
	canvas        *Canvas
	view          vecmath.Rect
	initialView   vecmath.Rect
	stepsPerFrame int
	trails        map[int][]vecmath.Vector2
	showTrails    bool
	energyHistory []float64
	initialEnergy float64
	diverged      bool
	showHelp      bool
}

// NewModel builds a live view of s. The view starts at the simulation
// bounds widened to the canvas aspect ratio.
func NewModel(s *sim.Simulation, name string) Model {
	m := Model{
		sim:           s,
		name:          name,
		width:         width,
		height:        height,
		canvas:        NewCanvas(width, height),
		stepsPerFrame: 1,
		trails:        make(map[int][]vecmath.Vector2),
		showTrails:    true,
		energyHistory: make([]float64, 0, historyCapacity),
		initialEnergy: s.Energy(),
	}
	pw, ph := m.canvas.PixelSize()
	m.view = FitAspect(s.Bounds(), float64(pw)/float64(ph))
	m.initialView = m.view
	m.stepsPerFrame = defaultStepsPerFrame(s.Dt())
	return m
}

// defaultStepsPerFrame advances about a hundredth of a time unit per frame.
func defaultStepsPerFrame(dt float64) int {
	n := int(math.Round(0.01 / dt))
	return min(max(n, 1), maxStepsFrame)
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.sim.Pause()
		case "r":
			m.reset()
		case "m":
			m.cycleMethod()
		case "s":
			m.sim.SetSoften(!m.sim.Soften())
		case "o":
			if m.sim.Ordering() == sim.Synchronous {
				m.sim.SetOrdering(sim.Sequential)
			} else {
				m.sim.SetOrdering(sim.Synchronous)
			}
		case "+", "=":
			m.view = Zoom(m.view, 0.8)
		case "-", "_":
			m.view = Zoom(m.view, 1.25)
		case "left", "h":
			m.view = Pan(m.view, -0.1, 0)
		case "right", "l":
			m.view = Pan(m.view, 0.1, 0)
		case "up", "k":
			m.view = Pan(m.view, 0, 0.1)
		case "down", "j":
			m.view = Pan(m.view, 0, -0.1)
		case "c":
			if com, err := m.sim.CenterOfMass(); err == nil {
				m.view = CenterOn(m.view, com)
			}
		case "f":
			m.stepsPerFrame = min(m.stepsPerFrame*2, maxStepsFrame)
		case "d":
			m.stepsPerFrame = max(m.stepsPerFrame/2, 1)
		case "L":
			m.showTrails = !m.showTrails
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case TickMsg:
		m.step()
		return m, tick()
	}
	return m, nil
}

// step advances the simulation by one frame. A diverged state pauses it.
func (m *Model) step() {
	if m.sim.IsPaused() {
		return
	}
	for i := 0; i < m.stepsPerFrame; i++ {
		m.sim.Update()
	}

	for _, b := range m.sim.Bodies() {
		if !b.IsFinite() {
			m.diverged = true
			m.sim.Pause()
			return
		}
		if m.showTrails && !b.Static() {
			trail := append(m.trails[b.ID()], b.Position())
			if len(trail) > trailLength {
				trail = trail[1:]
			}
			m.trails[b.ID()] = trail
		}
	}

	m.energyHistory = append(m.energyHistory, m.sim.Energy())
	if len(m.energyHistory) > historyCapacity {
		m.energyHistory = m.energyHistory[1:]
	}
}

func (m *Model) reset() {
	m.sim.Reset()
	m.trails = make(map[int][]vecmath.Vector2)
	m.energyHistory = m.energyHistory[:0]
	m.initialEnergy = m.sim.Energy()
	m.diverged = false
}

func (m *Model) cycleMethod() {
	methods := integrators.Methods()
	for i, method := range methods {
		if method == m.sim.Method() {
			m.sim.SetMethod(methods[(i+1)%len(methods)])
			return
		}
	}
	m.sim.SetMethod(methods[0])
}

// resize fits the canvas to the terminal, leaving room for the stats panel.
func (m *Model) resize(termW, termH int) {
	w := max(termW-statsStyle.GetWidth()-6, 20)
	h := max(termH-3, 8)
	if w == m.width && h == m.height {
		return
	}
	m.width, m.height = w, h
	m.canvas = NewCanvas(w, h)
	pw, ph := m.canvas.PixelSize()
	m.view = FitAspect(m.view, float64(pw)/float64(ph))
}

// draw renders trails, then bodies on top.
func (m *Model) draw() {
	m.canvas.Clear()
	pw, ph := m.canvas.PixelSize()

	if m.showTrails {
		trailColor := string(CurrentTheme.Trail)
		for _, trail := range m.trails {
			for _, p := range trail {
				if x, y, ok := ToScreen(p, m.view, pw, ph); ok {
					m.canvas.Plot(x, y, trailColor)
				}
			}
		}
	}

	scale := float64(pw) / m.view.Width()
	for _, b := range m.sim.Bodies() {
		x, y, ok := ToScreen(b.Position(), m.view, pw, ph)
		if !ok {
			continue
		}
		r := min(int(b.Radius()*scale), 6)
		m.canvas.Disc(x, y, r, b.Colorful().Hex())
	}
}

func (m Model) status() string {
	switch {
	case m.diverged:
		return "DIVERGED"
	case m.sim.IsPaused():
		return "PAUSED"
	}
	return "RUNNING"
}

// View renders the TUI interface.
func (m Model) View() string {
	m.draw()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(GradientText(strings.ToUpper(m.name), CurrentTheme.Primary, CurrentTheme.Accent) + "\n")
	s.WriteString(statusStyle(m.sim.IsPaused(), m.diverged).Render(m.status()) + "\n\n")

	if len(m.energyHistory) > 1 {
		chart := asciigraph.Plot(m.energyHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Energy"))
		s.WriteString(graphStyle.Foreground(CurrentTheme.Primary).Render(chart) + "\n")
	}

	energy := m.sim.Energy()
	drift := 0.0
	if m.initialEnergy != 0 {
		drift = math.Abs(energy-m.initialEnergy) / math.Abs(m.initialEnergy)
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.3f", m.sim.Time()))
	row("Steps", fmt.Sprintf("%d (x%d/frame)", m.sim.Steps(), m.stepsPerFrame))
	row("Bodies", fmt.Sprintf("%d", m.sim.BodyCount()))
	row("Energy", fmt.Sprintf("%.6g", energy))
	row("Drift", fmt.Sprintf("%.2e", drift))
	row("Ang. mom.", fmt.Sprintf("%.6g", m.sim.AngularMomentum()))
	row("Method", m.sim.Method().String())
	row("Ordering", m.sim.Ordering().String())
	row("Softening", onOff(m.sim.Soften()))
	row("dt", fmt.Sprintf("%g", m.sim.Dt()))

	s.WriteString(helpStyle.Render(Separator(36) + "\n" +
		KeyHints("spc", "pause", "r", "reset", "q", "quit") + "\n" +
		KeyHints("m", "method", "s", "soften", "?", "help")))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return overlay.BorderForeground(CurrentTheme.Muted).Render(helpText) + "\n" + mainView
	}
	return mainView
}

const helpText = `Space   pause / resume
R       reset bodies
M       cycle integration method
S       toggle softening
O       toggle update ordering
+ / -   zoom in / out
arrows  pan
C       center on center of mass
F / D   more / fewer steps per frame
L       toggle trails
T       cycle theme
Q       quit`

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// Run starts a full-screen live view of s.
func Run(s *sim.Simulation, name string) error {
	_, err := tea.NewProgram(NewModel(s, name), tea.WithAltScreen()).Run()
	return err
}
