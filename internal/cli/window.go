package cli

import (
	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_lattice/internal/desktop"
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Open the lattice in a native window",
	Long: `Render the lattice in a resizable desktop window.

Drag to orbit, scroll to zoom, double-click a cube to select it and
right-click to clear. W/S, A/D and Q/E turn the selected layer; R resets.`,
	RunE: runWindow,
}

func init() {
	rootCmd.AddCommand(windowCmd)
}

func runWindow(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
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
	endJournal, err := startJournal(cfg, ctrl, "window")
	if err != nil {
		return err
	}
	defer endJournal()

	return desktop.Run(ctrl, cfg.Window.Width, cfg.Window.Height, cfg.Server.FPS)
}
