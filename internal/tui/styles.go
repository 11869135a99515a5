// Package tui renders the lattice in a terminal with bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

// Styles
var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	stateStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	turnStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cubeStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	centerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	movingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("16")).Background(lipgloss.Color("214"))
	cursorStyle   = lipgloss.NewStyle().Reverse(true)
)

const progressWidth = 30

// renderSlabs draws the three Y slabs, top first, with X to the right and
// Z downwards. Cubes of the turning layer are highlighted. cursor may be
// nil when no cursor is shown.
func renderSlabs(ctrl *gocube.Controller, cursor *[3]int) string {
	lat := ctrl.Lattice()
	sel := ctrl.Selected()

	moving := map[*gocube.Cube]bool{}
	if t, ok := ctrl.Animator().Current(); ok {
		if layer, err := lat.LayerAt(t.Axis, t.Layer); err == nil {
			for _, c := range layer {
				moving[c] = true
			}
		}
	}

	var b strings.Builder
	for y := gocube.GridSize - 1; y >= 0; y-- {
		b.WriteString(statusStyle.Render(fmt.Sprintf("%-11s", fmt.Sprintf("y=%d", y))))
	}
	b.WriteString("\n")

	for z := 0; z < gocube.GridSize; z++ {
		for y := gocube.GridSize - 1; y >= 0; y-- {
			for x := 0; x < gocube.GridSize; x++ {
				grid := [3]int{x, y, z}
				c := lat.CubeAt(grid)

				label := ".."
				style := cubeStyle
				if c != nil {
					label = c.Label()
					switch {
					case c == sel:
						style = selectedStyle
					case moving[c]:
						style = movingStyle
					case c.IsCenter():
						style = centerStyle
					}
				}
				if cursor != nil && *cursor == grid {
					style = style.Inherit(cursorStyle)
				}
				b.WriteString(style.Render(label))
				if x < gocube.GridSize-1 {
					b.WriteString(" ")
				}
			}
			b.WriteString("   ")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderProgress draws a fixed-width bar for p in [0,1].
func renderProgress(p float64) string {
	filled := int(p * progressWidth)
	if filled < 0 {
		filled = 0
	}
	if filled > progressWidth {
		filled = progressWidth
	}
	return "[" + turnStyle.Render(strings.Repeat("=", filled)) + strings.Repeat(" ", progressWidth-filled) + "]"
}

// recentTurns renders the last n notations.
func recentTurns(turns []string, n int) string {
	if len(turns) == 0 {
		return ""
	}
	prefix := ""
	if len(turns) > n {
		turns = turns[len(turns)-n:]
		prefix = "... "
	}
	return prefix + turnStyle.Render(strings.Join(turns, " "))
}
