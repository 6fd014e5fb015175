// Package viz renders the softbody lattice live in the terminal. It is the
// render collaborator: once per frame it reads node positions through the
// grid's snapshot accessor and paints spring segments on a braille canvas.
// It never mutates physics state directly; user keys flow through the input
// policy like any other force source.
package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/softgrid/internal/config"
	"github.com/san-kum/softgrid/internal/input"
	"github.com/san-kum/softgrid/internal/sim"
	"github.com/san-kum/softgrid/internal/softbody"
)

const (
	canvasWidth     = 64
	canvasHeight    = 24
	historyCapacity = 240

	// Terminals deliver key auto-repeat, not release events, so "held" is
	// emulated: each press arms the push for holdTicks frames and repeats
	// keep re-arming it.
	holdTicks = 12
)

type TickMsg time.Time

// Model is the bubbletea state for the live view.
type Model struct {
	cfg    *config.Config
	simul  *sim.Simulator
	policy *input.Policy

	canvas    *Canvas
	positions []softbody.Vec3

	running  bool
	start    time.Time
	paused   time.Duration
	pausedAt time.Time

	holdPos, holdNeg int
	axisY            bool

	energyHistory []float64
	stepsRun      int
	showHelp      bool
}

// NewModel builds the grid, driver and simulator from cfg.
func NewModel(cfg *config.Config) (Model, error) {
	if err := cfg.Validate(); err != nil {
		return Model{}, err
	}

	grid, err := softbody.NewGrid(
		cfg.Sheet.Width, cfg.Sheet.Height,
		cfg.Sheet.Rows, cfg.Sheet.Cols,
		cfg.Sheet.Stiffness, cfg.Sheet.Damping,
	)
	if err != nil {
		return Model{}, err
	}

	driver, err := sim.NewDriver(cfg.Sim.Dt, cfg.Sim.MaxElapsed)
	if err != nil {
		return Model{}, err
	}

	policy := input.NewPolicy(cfg.Force.Magnitude)

	return Model{
		cfg:           cfg,
		simul:         sim.New(grid, driver, policy),
		policy:        policy,
		canvas:        NewCanvas(canvasWidth, canvasHeight),
		running:       true,
		start:         time.Now(),
		energyHistory: make([]float64, 0, historyCapacity),
	}, nil
}

func (m Model) Init() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			if m.running {
				m.pausedAt = time.Now()
			} else {
				m.paused += time.Since(m.pausedAt)
				m.simul.ResetClock(m.now())
			}
			m.running = !m.running
		case "right", "l":
			m.holdPos = holdTicks
		case "left", "h":
			m.holdNeg = holdTicks
		case "y":
			m.axisY = !m.axisY
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.policy.Set(input.Held{
				Positive: m.holdPos > 0,
				Negative: m.holdNeg > 0,
				AxisY:    m.axisY,
			})
			if m.holdPos > 0 {
				m.holdPos--
			}
			if m.holdNeg > 0 {
				m.holdNeg--
			}

			m.stepsRun += m.simul.Tick(m.now())

			m.energyHistory = append(m.energyHistory, m.simul.Grid().Energy())
			if len(m.energyHistory) > historyCapacity {
				m.energyHistory = m.energyHistory[1:]
			}
		}
		m.draw()
		return m, tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// now is wall-clock time with pauses subtracted, in seconds.
func (m Model) now() float64 {
	return (time.Since(m.start) - m.paused).Seconds()
}

// draw repaints the lattice: one segment per spring, one dot per node.
func (m *Model) draw() {
	m.canvas.Clear()

	g := m.simul.Grid()
	m.positions = g.Positions(m.positions)

	for i := 0; i < g.Rows; i++ {
		for j := 0; j < g.Cols; j++ {
			x0, y0 := m.project(m.positions[g.Index(i, j)])
			if j+1 < g.Cols {
				x1, y1 := m.project(m.positions[g.Index(i, j+1)])
				m.canvas.DrawLine(x0, y0, x1, y1)
			}
			if i+1 < g.Rows {
				x1, y1 := m.project(m.positions[g.Index(i+1, j)])
				m.canvas.DrawLine(x0, y0, x1, y1)
			}
			m.canvas.Set(x0, y0)
		}
	}
}

// project maps world coordinates to canvas sub-pixels. The view box is the
// sheet extent with a margin so moderate flapping stays on screen; y is
// flipped because the canvas grows downward.
func (m Model) project(p softbody.Vec3) (int, int) {
	halfW := m.cfg.Sheet.Width * 0.75
	halfH := m.cfg.Sheet.Height * 0.75

	subW := float64(canvasWidth * 2)
	subH := float64(canvasHeight * 4)

	x := (p.X + halfW) / (2 * halfW) * (subW - 1)
	y := (1 - (p.Y+halfH)/(2*halfH)) * (subH - 1)
	return int(x), int(y)
}

func (m Model) View() string {
	header := headerStyle.Render(fmt.Sprintf("softgrid %dx%d  k=%.1f c=%.1f dt=%.3f",
		m.cfg.Sheet.Rows, m.cfg.Sheet.Cols,
		m.cfg.Sheet.Stiffness, m.cfg.Sheet.Damping, m.cfg.Sim.Dt))

	axis := "X"
	if m.axisY {
		axis = "Y"
	}
	push := "-"
	if m.holdPos > 0 {
		push = "+" + axis
	} else if m.holdNeg > 0 {
		push = "-" + axis
	}

	status := "running"
	if !m.running {
		status = "paused"
	}

	var stats strings.Builder
	row := func(label, value string) {
		stats.WriteString(labelStyle.Render(label))
		stats.WriteString(valueStyle.Render(value))
		stats.WriteByte('\n')
	}
	row("status", status)
	row("sim time", fmt.Sprintf("%.2fs", m.simul.Time()))
	row("steps", fmt.Sprintf("%d", m.stepsRun))
	row("energy", fmt.Sprintf("%.5f", m.simul.Grid().Energy()))
	row("axis", activeStyle.Render(axis))
	row("push", push)

	if len(m.energyHistory) > 2 {
		graph := asciigraph.Plot(m.energyHistory,
			asciigraph.Height(6),
			asciigraph.Width(30),
			asciigraph.Caption("energy"),
		)
		stats.WriteString(graphStyle.Render(graph))
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		canvasStyle.Render(m.canvas.Render()),
		statsStyle.Render(stats.String()),
	)

	help := "h/l push -x/+x  y axis  space pause  q quit  ? help"
	if m.showHelp {
		help = "hold h or l (or arrows) to push the bottom row; y switches the push axis to Y;\n" +
			"space pauses without banking wall time; q quits"
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, helpStyle.Render(help))
}

// Run starts the live view and blocks until the user quits.
func Run(cfg *config.Config) error {
	m, err := NewModel(cfg)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
