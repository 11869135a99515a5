package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_lattice/internal/recorder"
	"github.com/SeamusWaldron/gocube_lattice/internal/storage"
	"github.com/SeamusWaldron/gocube_lattice/internal/tui"
)

var (
	replaySpeed float64
	replayStep  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay [session-id]",
	Short: "Replay a journaled session in the terminal",
	Long: `Replay the turns and resets of a journaled session on a fresh lattice,
keeping their original timing. Without a session ID the most recent
session is replayed.

Controls:
  SPACE/n  Pause/resume (next step in step mode)
  p        Pause/resume
  r        Restart
  +/-      Change speed
  q        Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReplay,
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().Float64VarP(&replaySpeed, "speed", "s", 1.0, "Playback speed multiplier")
	replayCmd.Flags().BoolVarP(&replayStep, "step", "t", false, "Step through events manually")
}

func runReplay(cmd *cobra.Command, args []string) error {
	if err := setupLogging(true); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	db, err := openHistory(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var sessionID string
	if len(args) == 1 {
		sessionID = args[0]
	} else {
		latest, err := storage.NewSessionRepository(db).Latest()
		if err != nil {
			return err
		}
		if latest == nil {
			return fmt.Errorf("no sessions recorded in %s", db.Path())
		}
		sessionID = latest.SessionID
	}

	steps, err := recorder.LoadSteps(db, sessionID)
	if err != nil {
		return fmt.Errorf("failed to load session %s: %w", sessionID, err)
	}
	if len(steps) == 0 {
		return fmt.Errorf("session %s has no events", sessionID)
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}

	m := tui.NewReplay(ctrl, sessionID, steps, cfg.Server.FPS, replaySpeed, replayStep)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running replay: %w", err)
	}
	return nil
}
