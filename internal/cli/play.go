package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_lattice/internal/tui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play with the lattice in the terminal",
	Long: `Show the lattice as three horizontal slabs in the terminal.

Controls:
  arrows, [ ]   Move the cursor (X, Z, and Y between slabs)
  ENTER         Select the cube under the cursor
  ESC / x       Clear the selection
  w/s a/d q/e   Turn the selected cube's layer about X, Y, Z
  r             Reset the lattice
  ctrl+c        Quit

Completed turns are journaled; pass --journal to keep them.`,
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := setupLogging(true); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	endJournal, err := startJournal(cfg, ctrl, "terminal")
	if err != nil {
		return err
	}
	defer endJournal()

	p := tea.NewProgram(tui.NewPlay(ctrl, cfg.Server.FPS), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
