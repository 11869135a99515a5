package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/SeamusWaldron/gocube_lattice/internal/server"
)

var (
	serveAddr string
	serveFPS  int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the lattice to a browser",
	Long: `Serve an interactive three.js view of the lattice over HTTP.

Open the printed address in a browser. Double-click a cube to select it,
right-click to clear the selection and use W/S, A/D and Q/E to turn the
selected cube's layer about X, Y and Z. Frames are pushed over a WebSocket
at /ws; /health reports the animation state.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().IntVar(&serveFPS, "fps", 0, "Frames per second (default from config, 60)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := setupLogging(false); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	if serveFPS > 0 {
		cfg.Server.FPS = serveFPS
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	endJournal, err := startJournal(cfg, ctrl, "browser")
	if err != nil {
		return err
	}
	defer endJournal()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.New(ctrl, cfg.Server.FPS).ListenAndServe(ctx, cfg.Server.Addr)
}
