package viz

import (
	"fmt"
	"math"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/pendsim/internal/control"
	"github.com/san-kum/pendsim/internal/dynamo"
	"github.com/san-kum/pendsim/internal/physics"
	"github.com/san-kum/pendsim/internal/sim"
)

const (
	canvasWidth     = 60
	canvasHeight    = 20
	historyCapacity = 300
	frameRate       = 30
	cartScale       = 12.0
)

type TickMsg time.Time

// Options tune the live view. Zero values pick sensible defaults.
type Options struct {
	Name     string
	Dt       float64
	MaxForce float64
	// Nudge is the force added for one frame by an arrow key.
	Nudge float64
}

// Model animates a cart-pole driven by the configured controller plus
// manual nudges from the keyboard.
type Model struct {
	sim     *sim.Simulator
	nudge   *control.Manual
	energy  dynamo.Hamiltonian
	opts    Options
	initial dynamo.State
	state   dynamo.State
	t       float64
	u       float64
	running bool
	err     error

	perFrame     int
	canvas       *Canvas
	angleHistory []float64
}

func NewModel(sys dynamo.System, stepper dynamo.Stepper, ctrl dynamo.Controller, x0 dynamo.State, opts Options) (Model, error) {
	if sys.StateDim() != 4 {
		return Model{}, fmt.Errorf("live view draws a cart-pole state [x, v, theta, omega], got dimension %d: %w",
			sys.StateDim(), dynamo.ErrDimensionMismatch)
	}
	if len(x0) != 4 {
		return Model{}, fmt.Errorf("initial state has %d entries, want 4: %w", len(x0), dynamo.ErrDimensionMismatch)
	}
	if opts.Dt <= 0 {
		opts.Dt = 0.01
	}
	if opts.Nudge == 0 {
		opts.Nudge = 50
	}
	if opts.Name == "" {
		opts.Name = "cartpole"
	}
	if ctrl == nil {
		ctrl = control.NewNone()
	}

	nudge := control.NewManual()
	s, err := sim.New(sys, stepper, control.Sum(ctrl, nudge))
	if err != nil {
		return Model{}, err
	}

	m := Model{
		sim:          s,
		nudge:        nudge,
		opts:         opts,
		initial:      x0.Clone(),
		state:        x0.Clone(),
		running:      true,
		perFrame:     max(1, int(math.Round(1/(frameRate*opts.Dt)))),
		canvas:       NewCanvas(canvasWidth, canvasHeight),
		angleHistory: make([]float64, 0, historyCapacity),
	}
	if h, ok := sys.(dynamo.Hamiltonian); ok {
		m.energy = h
	}
	return m, nil
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case " ":
			if m.err == nil {
				m.running = !m.running
			}
		case "r":
			m.reset()
		case "left", "h":
			m.nudge.Set(-m.opts.Nudge)
		case "right", "l":
			m.nudge.Set(m.opts.Nudge)
		}
	case TickMsg:
		if m.running {
			m.advance()
		}
		return m, tick()
	}
	return m, nil
}

// advance runs one frame worth of steps. A nudge lasts for one frame.
func (m *Model) advance() {
	defer m.nudge.Set(0)
	for i := 0; i < m.perFrame; i++ {
		u, err := m.sim.Tick(m.state, m.t, m.opts.Dt)
		if err == nil && !m.state.IsValid() {
			err = dynamo.ErrInvalidState
		}
		if err != nil {
			m.err = err
			m.running = false
			return
		}
		m.u = u
		m.t += m.opts.Dt
	}
	m.angleHistory = append(m.angleHistory, m.state[physics.PoleAngle])
	if len(m.angleHistory) > historyCapacity {
		m.angleHistory = m.angleHistory[1:]
	}
}

func (m *Model) reset() {
	copy(m.state, m.initial)
	m.t, m.u, m.err = 0, 0, nil
	m.angleHistory = m.angleHistory[:0]
	m.nudge.Set(0)
	m.running = true
}

// draw renders the cart on a track with the pivot at mid height. Angle 0
// hangs down and pi points straight up.
func (m *Model) draw() {
	m.canvas.Clear()
	w, h := m.canvas.Dots()
	trackY := h / 2
	m.canvas.Line(0, trackY+3, w-1, trackY+3)

	cx := w/2 + int(m.state[physics.CartPos]*cartScale)
	m.canvas.Rect(cx-5, trackY-1, cx+5, trackY+2)

	theta := m.state[physics.PoleAngle]
	length := float64(h) * 0.4
	px := cx + int(math.Round(length*math.Sin(theta)))
	py := trackY + int(math.Round(length*math.Cos(theta)))
	m.canvas.Line(cx, trackY, px, py)
	m.canvas.Rect(px-1, py-1, px+1, py+1)
}

func (m Model) View() string {
	m.draw()

	var s strings.Builder
	s.WriteString(titleStyle.Render(strings.ToUpper(m.opts.Name)) + "\n")
	switch {
	case m.err != nil:
		s.WriteString(errorStyle.Render("FAILED: "+m.err.Error()) + "\n\n")
	case m.running:
		s.WriteString(runningStyle.Render("RUNNING") + "\n\n")
	default:
		s.WriteString(pausedStyle.Render("PAUSED") + "\n\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.t))
	row("Cart", fmt.Sprintf("%+.3f m", m.state[physics.CartPos]))
	row("Angle", fmt.Sprintf("%.3f rad", m.state[physics.PoleAngle]))
	row("Force", fmt.Sprintf("%+.1f N", m.u))
	if m.energy != nil {
		row("Energy", fmt.Sprintf("%.3f J", m.energy.Energy(m.state)))
	}
	if m.opts.MaxForce > 0 {
		s.WriteString(ForceBar(m.u, m.opts.MaxForce, 15) + "\n")
	}

	if len(m.angleHistory) > 1 {
		chart := asciigraph.Plot(m.angleHistory,
			asciigraph.Height(6), asciigraph.Width(34), asciigraph.Caption("pole angle"))
		s.WriteString("\n" + graphStyle.Render(chart) + "\n")
	}
	s.WriteString(helpStyle.Render("space pause  r reset  ←/→ nudge  q quit"))

	return lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.String()),
		panelStyle.Render(s.String()))
}

// Run starts the live view in the terminal and blocks until it exits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
