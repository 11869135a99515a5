// Package cli implements the command-line interface for gocube-lattice.
package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/config"
	"github.com/SeamusWaldron/gocube_lattice/internal/recorder"
	"github.com/SeamusWaldron/gocube_lattice/internal/storage"
)

const version = "0.1.0"

var (
	// Global flags
	configPath  string
	journalPath string
	verbose     bool
	logFile     string

	logCloser io.Closer
)

// rootCmd is the base command.
var rootCmd = &cobra.Command{
	Use:   "gocube-lattice",
	Short: "Interactive 3x3x3 cube lattice",
	Long: `GoCube Lattice - a 3x3x3 lattice of cubes whose layers turn in animated
quarter turns.

Select a cube, then turn the layer through it about X, Y or Z. Play in the
browser (serve), the terminal (play) or a native window (window), apply
turn sequences headlessly (apply), and look back at journaled sessions
(history, replay).`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	err := rootCmd.Execute()
	if logCloser != nil {
		logCloser.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: built-in settings)")
	rootCmd.PersistentFlags().StringVar(&journalPath, "journal", "", "Journal database path (default: in memory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Write JSON logs to this file instead of stderr")
}

// setupLogging configures the global logger. Full-screen front ends pass
// fullScreen so logs go to a file next to the default journal instead of
// the terminal they draw on.
func setupLogging(fullScreen bool) error {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	path := logFile
	if path == "" && fullScreen {
		db, err := storage.DefaultDBPath()
		if err != nil {
			return err
		}
		path = filepath.Join(filepath.Dir(db), "gocube-lattice.log")
	}

	switch {
	case path != "":
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		logCloser = f
		log.Logger = zerolog.New(f).With().Timestamp().Logger()
	default:
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

// loadConfig reads --config over the defaults. A missing file falls back
// to the defaults with a warning; a malformed one is an error.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if errors.Is(err, fs.ErrNotExist) {
		log.Warn().Str("path", configPath).Msg("config file not found; using defaults")
		return config.Default(), nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// newController builds a controller from the config.
func newController(cfg *config.Config) (*gocube.Controller, error) {
	opts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	return gocube.NewController(opts...)
}

// resolveJournal returns the journal path: the flag, then the config file,
// then in memory.
func resolveJournal(cfg *config.Config) string {
	if journalPath != "" {
		return journalPath
	}
	return cfg.Journal
}

// startJournal opens the journal, starts a session for frontend and
// attaches it to ctrl. The returned func ends the session and closes the
// journal.
func startJournal(cfg *config.Config, ctrl *gocube.Controller, frontend string) (func(), error) {
	db, err := storage.Open(resolveJournal(cfg))
	if err != nil {
		return nil, err
	}

	session := recorder.NewSession(db)
	id, err := session.Start(frontend, version)
	if err != nil {
		db.Close()
		return nil, err
	}
	session.Attach(ctrl)
	log.Info().Str("session", id).Str("journal", db.Path()).Msg("journal session started")

	return func() {
		if err := session.End(); err != nil {
			log.Error().Err(err).Msg("failed to end journal session")
		}
		log.Info().Str("session", id).Int("turns", session.TurnCount()).Msg("journal session ended")
		db.Close()
	}, nil
}

// openHistory opens the journal for reading. Without --journal or a
// configured path it reads the default file journal, since an in-memory
// journal has no history.
func openHistory(cfg *config.Config) (*storage.DB, error) {
	path := resolveJournal(cfg)
	if path == "" || path == storage.MemoryPath {
		p, err := storage.DefaultDBPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	return storage.Open(path)
}
