package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/config"
	"github.com/SeamusWaldron/gocube_lattice/internal/storage"
)

// run executes the root command with fresh global flags.
func run(t *testing.T, args ...string) error {
	t.Helper()
	configPath, journalPath, logFile = "", "", ""
	verbose = false
	applyInverse, applyJSON = false, false
	historyLast, historyLimit = false, 20
	configForce = false

	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestApplyCommand(t *testing.T) {
	require.NoError(t, run(t, "apply", "R U R' U'"))
	require.NoError(t, run(t, "apply", "--inverse", "X2", "Y0'", "Z1"))
	require.NoError(t, run(t, "apply", "--json", "M E S"))

	err := run(t, "apply", "R Q")
	assert.ErrorIs(t, err, gocube.ErrInvalidNotation)
}

func TestConfigInitAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lattice.yaml")
	require.NoError(t, run(t, "config", "init", path))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	assert.Error(t, run(t, "config", "init", path), "refuses to overwrite")
	assert.NoError(t, run(t, "config", "init", "--force", path))
	assert.NoError(t, run(t, "--config", path, "config"))
}

func TestMissingConfigFallsBackToDefaults(t *testing.T) {
	configPath = filepath.Join(t.TempDir(), "missing.yaml")
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("animation: [1, 2"), 0644))
	configPath = bad
	_, err = loadConfig()
	assert.Error(t, err)
	configPath = ""
}

func TestJournalAndHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")
	journalPath = dbPath
	cfg := config.Default()

	ctrl, err := newController(cfg)
	require.NoError(t, err)
	end, err := startJournal(cfg, ctrl, "headless")
	require.NoError(t, err)

	turns, err := gocube.ParseTurns("X2 X2' R U")
	require.NoError(t, err)
	require.NoError(t, ctrl.Apply(20*time.Millisecond, turns...))
	end()

	db, err := storage.Open(dbPath)
	require.NoError(t, err)
	latest, err := storage.NewSessionRepository(db).Latest()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, "headless", latest.Frontend)
	assert.Equal(t, 4, latest.TurnCount)
	assert.NotNil(t, latest.EndedAt)
	require.NoError(t, db.Close())

	assert.NoError(t, run(t, "--journal", dbPath, "history"))
	assert.NoError(t, run(t, "--journal", dbPath, "history", "--last"))
	assert.NoError(t, run(t, "--journal", dbPath, "history", latest.SessionID))
	assert.Error(t, run(t, "--journal", dbPath, "history", "no-such-session"))
}

func TestResolveJournal(t *testing.T) {
	cfg := config.Default()
	journalPath = ""
	assert.Equal(t, "", resolveJournal(cfg))

	cfg.Journal = "/tmp/from-config.db"
	assert.Equal(t, "/tmp/from-config.db", resolveJournal(cfg))

	journalPath = "/tmp/from-flag.db"
	assert.Equal(t, "/tmp/from-flag.db", resolveJournal(cfg))
	journalPath = ""
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1.50s", formatDuration(1500*time.Millisecond))
	assert.Equal(t, "2:05.00", formatDuration(125*time.Second))
}
