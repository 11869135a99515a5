package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/analysis"
	"github.com/SeamusWaldron/gocube_lattice/internal/recorder"
	"github.com/SeamusWaldron/gocube_lattice/internal/storage"
)

var (
	historyLimit int
	historyLast  bool
)

var historyCmd = &cobra.Command{
	Use:   "history [session-id]",
	Short: "List journaled sessions or show one session's events",
	Long: `Without arguments, list recent sessions from the journal. With a session ID
(or --last), show every turn and reset recorded in that session.

Reads --journal, the config file's journal, or the default journal at
~/.gocube_lattice/journal.db.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of sessions to display")
	historyCmd.Flags().BoolVar(&historyLast, "last", false, "Show the most recent session")
}

func runHistory(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
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

	sessionRepo := storage.NewSessionRepository(db)

	var session *storage.Session
	switch {
	case len(args) == 1:
		session, err = sessionRepo.Get(args[0])
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("session not found: %s", args[0])
		}
	case historyLast:
		session, err = sessionRepo.Latest()
		if err != nil {
			return err
		}
		if session == nil {
			return fmt.Errorf("no sessions recorded in %s", db.Path())
		}
	default:
		return listSessions(sessionRepo, db.Path())
	}

	return showSession(db, session)
}

func listSessions(repo *storage.SessionRepository, path string) error {
	sessions, err := repo.List(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}
	if len(sessions) == 0 {
		fmt.Printf("No sessions recorded in %s\n", path)
		return nil
	}

	fmt.Printf("Recent sessions (showing %d):\n", len(sessions))
	fmt.Println()
	fmt.Printf("%-36s  %-20s  %-10s  %-10s  %s\n", "ID", "Started", "Duration", "Front end", "Turns")
	fmt.Println("------------------------------------  --------------------  ----------  ----------  -----")
	for _, s := range sessions {
		duration := "-"
		if s.EndedAt != nil {
			duration = formatDuration(s.EndedAt.Sub(s.StartedAt))
		}
		fmt.Printf("%-36s  %-20s  %-10s  %-10s  %d\n",
			s.SessionID,
			s.StartedAt.Local().Format("2006-01-02 15:04:05"),
			duration,
			s.Frontend,
			s.TurnCount)
	}
	return nil
}

func showSession(db *storage.DB, s *storage.Session) error {
	events, err := storage.NewEventRepository(db).GetBySession(s.SessionID)
	if err != nil {
		return err
	}

	fmt.Printf("Session:   %s\n", s.SessionID)
	fmt.Printf("Front end: %s\n", s.Frontend)
	fmt.Printf("Started:   %s\n", s.StartedAt.Local().Format(time.RFC3339))
	if s.EndedAt != nil {
		fmt.Printf("Ended:     %s (%s)\n", s.EndedAt.Local().Format(time.RFC3339), formatDuration(s.EndedAt.Sub(s.StartedAt)))
	} else {
		fmt.Println("Ended:     -")
	}
	fmt.Printf("Turns:     %d\n", s.TurnCount)
	fmt.Println()

	if len(events) == 0 {
		fmt.Println("No events recorded")
		return nil
	}

	fmt.Printf("%5s  %9s  %-6s  %s\n", "Seq", "At", "Kind", "Turn")
	for _, e := range events {
		at := formatDuration(time.Duration(e.TsMs) * time.Millisecond)
		desc := ""
		if e.Notation != nil {
			desc = *e.Notation
			if e.Discarded {
				desc += " (discarded)"
			}
		}
		fmt.Printf("%5d  %9s  %-6s  %s\n", e.Seq, at, e.Kind, desc)
	}

	steps, err := recorder.LoadSteps(db, s.SessionID)
	if err != nil {
		return err
	}
	printAnalysis(steps)
	return nil
}

func printAnalysis(steps []recorder.Step) {
	summary := analysis.Summarize(steps, analysis.DefaultPauseThreshold)
	if summary.TurnCount == 0 {
		return
	}
	turns, _ := analysis.Turns(steps)
	layerTurns := analysis.LayerTurns(turns)

	fmt.Println()
	fmt.Println("Since last reset:")
	fmt.Printf("  Turns:         %d (%d after cancelling)\n", summary.TurnCount, summary.OptimizedCount)
	fmt.Printf("  Duration:      %s\n", formatDuration(summary.Duration))
	fmt.Printf("  TPS:           %.2f\n", summary.TPS)
	fmt.Printf("  Longest pause: %s (%d over %s)\n", formatDuration(summary.LongestPause), summary.PauseCount, analysis.DefaultPauseThreshold)
	fmt.Printf("  Axes:          X %d  Y %d  Z %d\n",
		summary.AxisCounts[gocube.AxisX], summary.AxisCounts[gocube.AxisY], summary.AxisCounts[gocube.AxisZ])
	if summary.OptimizedCount < summary.TurnCount {
		fmt.Printf("  Net sequence:  %s\n", gocube.FormatTurns(analysis.OptimizeTurns(layerTurns)))
	}

	report := analysis.AnalyzeRepetitions(layerTurns)
	for _, c := range report.Cancellations {
		fmt.Printf("  Undone:        %s %s at turn %d\n", c.Turn, c.Undo, c.Index+1)
	}

	ngrams := analysis.MineNGrams(layerTurns, 3, 8, 1)
	for n := 8; n >= 3; n-- {
		if top, ok := ngrams.TopNGrams[n]; ok {
			fmt.Printf("  Repeated:      %s (x%d)\n", strings.Join(top[0].Sequence, " "), top[0].Count)
			break
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
	mins := int(d.Minutes())
	secs := d.Seconds() - float64(mins*60)
	return fmt.Sprintf("%d:%05.2f", mins, secs)
}
