package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/recorder"
)

// ReplayModel plays a journaled session back on a fresh controller.
type ReplayModel struct {
	ctrl      *gocube.Controller
	sessionID string
	steps     []recorder.Step
	interval  time.Duration
	last      time.Time

	index    int
	clock    time.Duration // replay time, scaled by speed
	speed    float64
	paused   bool
	stepMode bool
	turns    []string
	quitting bool
}

// NewReplay creates a replay of steps. In step mode each step waits for
// SPACE or n.
func NewReplay(ctrl *gocube.Controller, sessionID string, steps []recorder.Step, fps int, speed float64, stepMode bool) *ReplayModel {
	if fps <= 0 {
		fps = 60
	}
	if speed <= 0 {
		speed = 1
	}
	m := &ReplayModel{
		ctrl:      ctrl,
		sessionID: sessionID,
		steps:     steps,
		interval:  time.Second / time.Duration(fps),
		speed:     speed,
		stepMode:  stepMode,
		paused:    stepMode,
	}
	ctrl.OnTurnComplete(func(ev gocube.TurnEvent) {
		if !ev.Discarded {
			m.turns = append(m.turns, ev.Turn.Notation())
		}
	})
	ctrl.OnReset(func() {
		m.turns = nil
	})
	return m
}

// Index returns how many steps have been applied.
func (m *ReplayModel) Index() int {
	return m.index
}

// Done reports whether every step has been applied and the last turn has
// settled.
func (m *ReplayModel) Done() bool {
	return m.index >= len(m.steps) && m.ctrl.Idle()
}

func (m *ReplayModel) Init() tea.Cmd {
	return m.tick()
}

func (m *ReplayModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *ReplayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case " ", "n":
			if m.stepMode {
				m.next()
			} else {
				m.paused = !m.paused
			}

		case "p":
			if !m.stepMode {
				m.paused = !m.paused
			}

		case "r":
			m.restart()

		case "+", "=":
			m.speed *= 2
			if m.speed > 16 {
				m.speed = 16
			}

		case "-":
			m.speed /= 2
			if m.speed < 0.25 {
				m.speed = 0.25
			}
		}

	case tickMsg:
		now := time.Time(msg)
		dt := m.interval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		if dt > 4*m.interval {
			dt = 4 * m.interval
		}
		m.last = now
		m.advance(dt)
		return m, m.tick()
	}

	return m, nil
}

// advance moves the replay clock and the animation by dt of wall time.
func (m *ReplayModel) advance(dt time.Duration) {
	scaled := time.Duration(float64(dt) * m.speed)
	m.ctrl.Tick(scaled)

	if m.paused {
		return
	}
	m.clock += scaled
	for m.index < len(m.steps) && m.steps[m.index].At <= m.clock && m.ctrl.Idle() {
		m.apply(m.steps[m.index])
		m.index++
	}
}

// next applies the next step at once, finishing any turn still in flight.
func (m *ReplayModel) next() {
	if m.index >= len(m.steps) {
		return
	}
	m.ctrl.Settle(m.interval)
	step := m.steps[m.index]
	m.apply(step)
	m.index++
	m.clock = step.At
}

func (m *ReplayModel) apply(step recorder.Step) {
	if step.Reset {
		m.ctrl.Reset()
		return
	}
	t := step.Turn
	t.Time = time.Time{}
	if err := m.ctrl.Turn(t); err != nil {
		log.Warn().Err(err).Int("seq", step.Seq).Msg("replay step rejected")
	}
}

func (m *ReplayModel) restart() {
	m.ctrl.Settle(m.interval)
	m.ctrl.Reset()
	m.index = 0
	m.clock = 0
	m.turns = nil
}

func (m *ReplayModel) View() string {
	if m.quitting {
		return "Replay ended.\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("GoCube Lattice Replay"))
	b.WriteString("\n\n")

	progress := fmt.Sprintf("Step %d/%d", m.index, len(m.steps))
	if m.paused && !m.stepMode {
		progress += " [PAUSED]"
	}
	if m.stepMode {
		progress += " [STEP MODE]"
	}
	if m.Done() {
		progress += " [DONE]"
	}
	b.WriteString(statusStyle.Render(progress))
	b.WriteString(fmt.Sprintf(" (%.2gx speed)\n", m.speed))
	if m.sessionID != "" {
		b.WriteString(statusStyle.Render("Session: " + m.sessionID))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("Time: %s\n", formatElapsed(m.clock)))
	b.WriteString(fmt.Sprintf("State: %s", stateStyle.Render(m.ctrl.State().String())))
	if t, ok := m.ctrl.Animator().Current(); ok {
		b.WriteString(fmt.Sprintf("  %s %s", turnStyle.Render(t.Notation()), renderProgress(m.ctrl.Animator().Progress())))
	}
	b.WriteString("\n\n")

	b.WriteString(renderSlabs(m.ctrl, nil))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Turns: %d\n", len(m.turns)))
	if s := recentTurns(m.turns, 20); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}

	if m.index < len(m.steps) {
		next := m.steps[m.index]
		desc := "reset"
		if !next.Reset {
			desc = next.Turn.Notation()
		}
		b.WriteString(statusStyle.Render(fmt.Sprintf("Next: #%d %s at %s", next.Seq, desc, formatElapsed(next.At))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	help := "SPACE/n=pause  p=pause  r=restart  +/-=speed  q=quit"
	if m.stepMode {
		help = "SPACE/n=next step  r=restart  q=quit"
	}
	b.WriteString(helpStyle.Render(help))
	b.WriteString("\n")

	return b.String()
}

func formatElapsed(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}
