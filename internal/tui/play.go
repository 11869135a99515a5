package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog/log"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

type tickMsg time.Time

// PlayModel lets the user walk a cursor through the lattice, select a cube
// and turn its layers from the keyboard.
type PlayModel struct {
	ctrl     *gocube.Controller
	interval time.Duration
	last     time.Time

	cursor [3]int
	turns  []string
	status string
	err    error

	width, height int
	quitting      bool
}

// NewPlay creates the play model. fps sets the animation tick rate.
func NewPlay(ctrl *gocube.Controller, fps int) *PlayModel {
	if fps <= 0 {
		fps = 60
	}
	m := &PlayModel{
		ctrl:     ctrl,
		interval: time.Second / time.Duration(fps),
		cursor:   [3]int{1, 1, 1},
	}
	ctrl.OnTurnComplete(func(ev gocube.TurnEvent) {
		if ev.Discarded {
			return
		}
		m.turns = append(m.turns, ev.Turn.Notation())
	})
	ctrl.OnReset(func() {
		m.turns = nil
		m.status = "reset"
	})
	return m
}

// Controller returns the driven controller.
func (m *PlayModel) Controller() *gocube.Controller {
	return m.ctrl
}

// Cursor returns the grid slot under the cursor.
func (m *PlayModel) Cursor() [3]int {
	return m.cursor
}

// Turns returns the notations of completed turns since the last reset.
func (m *PlayModel) Turns() []string {
	return m.turns
}

func (m *PlayModel) Init() tea.Cmd {
	return m.tick()
}

func (m *PlayModel) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tickMsg:
		now := time.Time(msg)
		dt := m.interval
		if !m.last.IsZero() {
			dt = now.Sub(m.last)
		}
		// A stalled terminal should not skip a whole turn in one frame.
		if dt > 4*m.interval {
			dt = 4 * m.interval
		}
		m.last = now
		m.ctrl.Tick(dt)
		return m, m.tick()
	}

	return m, nil
}

func (m *PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	m.err = nil

	switch key {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "left":
		m.moveCursor(0, -1)
	case "right":
		m.moveCursor(0, 1)
	case "up":
		m.moveCursor(2, -1)
	case "down":
		m.moveCursor(2, 1)
	case "[":
		m.moveCursor(1, 1)
	case "]":
		m.moveCursor(1, -1)

	case "enter":
		if err := m.ctrl.SelectAt(m.cursor); err != nil {
			m.err = err
		} else {
			m.status = fmt.Sprintf("selected %s", m.ctrl.Selected())
		}

	case "esc", "x":
		m.ctrl.ClearSelection()
		m.status = "selection cleared"

	case "r":
		m.ctrl.Reset()

	default:
		m.turnKey(key)
	}

	return m, nil
}

func (m *PlayModel) turnKey(key string) {
	err := m.ctrl.HandleKey(key)
	switch {
	case err == nil:
		if t, ok := m.ctrl.Animator().Current(); ok {
			m.status = fmt.Sprintf("turning %s", t.Notation())
		}
	case errors.Is(err, gocube.ErrUnknownKey):
		// Unbound keys are ignored.
	default:
		log.Debug().Err(err).Str("key", key).Msg("key rejected")
		m.err = err
	}
}

func (m *PlayModel) moveCursor(axis, delta int) {
	v := m.cursor[axis] + delta
	if v < 0 || v >= gocube.GridSize {
		return
	}
	m.cursor[axis] = v
}

func (m *PlayModel) View() string {
	if m.quitting {
		return "Goodbye!\n"
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("GoCube Lattice"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("State: %s", stateStyle.Render(m.ctrl.State().String())))
	if t, ok := m.ctrl.Animator().Current(); ok {
		b.WriteString(fmt.Sprintf("  %s %s", turnStyle.Render(t.Notation()), renderProgress(m.ctrl.Animator().Progress())))
	}
	b.WriteString("\n")

	sel := "none"
	if c := m.ctrl.Selected(); c != nil {
		sel = c.String()
	}
	b.WriteString(statusStyle.Render(fmt.Sprintf("Cursor: (%d,%d,%d)  Selected: %s", m.cursor[0], m.cursor[1], m.cursor[2], sel)))
	b.WriteString("\n\n")

	cursor := m.cursor
	b.WriteString(renderSlabs(m.ctrl, &cursor))
	b.WriteString("\n")

	b.WriteString(fmt.Sprintf("Turns: %d\n", len(m.turns)))
	if s := recentTurns(m.turns, 20); s != "" {
		b.WriteString(s)
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(errorStyle.Render(m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(statusStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")

	return b.String()
}

func (m *PlayModel) help() string {
	var keys []string
	for _, k := range m.ctrl.KeyMap().Keys() {
		bd, _ := m.ctrl.KeyMap().Lookup(k)
		keys = append(keys, fmt.Sprintf("%s=%s%s", k, bd.Axis, dirMark(bd.Direction)))
	}
	return "arrows/[ ]=move  ENTER=select  ESC/x=clear  r=reset  ctrl+c=quit\n" + strings.Join(keys, "  ")
}

func dirMark(d gocube.Direction) string {
	if d == gocube.CounterClockwise {
		return "'"
	}
	return ""
}
