// Package viz renders a running sandbox in the terminal: a braille
// canvas for the scene graph and a bubbletea program around it.
package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/TheBurgerCoder/verlet/internal/engine"
	"github.com/TheBurgerCoder/verlet/internal/metrics"
	"github.com/TheBurgerCoder/verlet/internal/world"
)

const (
	canvasCols     = 100
	canvasRows     = 30
	strainCapacity = 120
)

var (
	headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	canvasStyle = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	pausedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).MarginTop(1)
)

type TickMsg time.Time

// Model is the live view state: the world being simulated, the engine
// stepping it, and the snapshot stash for the edit/simulate cycle.
type Model struct {
	world   *world.World
	eng     *engine.Engine
	snap    *world.Snapshot
	strain  *metrics.Strain
	canvas  *Canvas
	history []float64

	sceneName string
	dt        float64
	gravity   float64
	gravityOn bool
	fps       int
	running   bool
	tick      int
	t         float64
}

func NewModel(w *world.World, eng *engine.Engine, sceneName string, dt, gravity float64, fps int) Model {
	return Model{
		world:     w,
		eng:       eng,
		snap:      w.Snapshot(),
		strain:    metrics.NewStrain(),
		canvas:    NewCanvas(canvasCols, canvasRows),
		history:   make([]float64, 0, strainCapacity),
		sceneName: sceneName,
		dt:        dt,
		gravity:   gravity,
		gravityOn: true,
		fps:       fps,
		running:   true,
	}
}

func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.tickCmd()

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "n":
			m.step()
		case "g":
			m.gravityOn = !m.gravityOn
		case "k":
			m.kick()
		case "s":
			m.snap = m.world.Snapshot()
		case "r":
			m.world = m.snap.Restore()
			m.running = false
			m.tick = 0
			m.t = 0
			m.history = m.history[:0]
		}
	}
	return m, nil
}

func (m *Model) step() {
	m.eng.Step(m.world, m.dt, m.currentGravity())
	m.tick++
	m.t += m.dt

	m.strain.Reset()
	m.strain.Observe(m.world, m.t)
	m.history = append(m.history, m.strain.Value())
	if len(m.history) > strainCapacity {
		m.history = m.history[1:]
	}
}

func (m *Model) currentGravity() float64 {
	if m.gravityOn {
		return m.gravity
	}
	return 0
}

// kick shoves one random unlocked particle, the live-view stand-in for
// the host's drag interaction.
func (m *Model) kick() {
	particles := m.world.Particles()
	if len(particles) == 0 {
		return
	}
	start := rand.Intn(len(particles))
	for i := 0; i < len(particles); i++ {
		p := particles[(start+i)%len(particles)]
		if !p.Locked {
			_ = m.world.ApplyForce(p.ID, rand.Float64()*20-10, -12)
			return
		}
	}
}

func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawWorld(m.world, m.eng.Width, m.eng.Height)

	status := "running"
	statusStyled := valueStyle.Render(status)
	if !m.running {
		statusStyled = pausedStyle.Render("paused")
	}

	var stats strings.Builder
	stats.WriteString(headerStyle.Render(fmt.Sprintf("verlet sandbox: %s", m.sceneName)))
	stats.WriteByte('\n')
	fmt.Fprintf(&stats, "%s %s   %s %d   %s %d/%d   %s %v\n",
		labelStyle.Render("state:"), statusStyled,
		labelStyle.Render("tick:"), m.tick,
		labelStyle.Render("particles/sticks:"), len(m.world.Particles()), len(m.world.Sticks()),
		labelStyle.Render("gravity:"), m.gravityOn,
	)

	body := canvasStyle.Render(strings.TrimRight(m.canvas.String(), "\n"))

	graph := ""
	if len(m.history) > 1 {
		graph = asciigraph.Plot(m.history,
			asciigraph.Height(6),
			asciigraph.Width(80),
			asciigraph.Caption("mean constraint strain"),
		)
	}

	help := helpStyle.Render("space pause · n step · g gravity · k kick · s snapshot · r restore · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, stats.String(), body, graph, help)
}
