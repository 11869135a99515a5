package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestOpenMigrates(t *testing.T) {
	db := openTestDB(t)
	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
	assert.False(t, db.InMemory())
}

func TestReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")
	db, err := Open(path)
	require.NoError(t, err)
	id, err := NewSessionRepository(db).Create("test", "v0")
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	defer db.Close()

	s, err := NewSessionRepository(db).Get(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, "test", s.Frontend)

	v, err := db.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, v)
}

func TestInMemory(t *testing.T) {
	db, err := Open("")
	require.NoError(t, err)
	defer db.Close()
	assert.True(t, db.InMemory())

	sessions := NewSessionRepository(db)
	id, err := sessions.Create("tui", "")
	require.NoError(t, err)

	s, err := sessions.Get(id)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Nil(t, s.AppVersion)
}

func TestSessionLifecycle(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)

	first, err := sessions.Create("server", "dev")
	require.NoError(t, err)
	second, err := sessions.Create("window", "dev")
	require.NoError(t, err)

	require.NoError(t, sessions.End(first))
	assert.Error(t, sessions.End("missing"))

	s, err := sessions.Get(first)
	require.NoError(t, err)
	require.NotNil(t, s.EndedAt)
	assert.False(t, s.EndedAt.Before(s.StartedAt))

	list, err := sessions.List(0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second, list[0].SessionID, "newest first")

	latest, err := sessions.Latest()
	require.NoError(t, err)
	assert.Equal(t, second, latest.SessionID)

	missing, err := sessions.Get("missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestEvents(t *testing.T) {
	db := openTestDB(t)
	sessions := NewSessionRepository(db)
	events := NewEventRepository(db)

	id, err := sessions.Create("tui", "dev")
	require.NoError(t, err)

	_, err = events.CreateTurn(id, 1, 120, TurnRecord{Notation: "X2", Axis: "X", Layer: 2, Direction: "cw", DurationMs: 500})
	require.NoError(t, err)
	_, err = events.CreateReset(id, 2, 900)
	require.NoError(t, err)
	_, err = events.CreateTurn(id, 3, 1500, TurnRecord{Notation: "Y0'", Axis: "Y", Layer: 0, Direction: "ccw", DurationMs: 500, Discarded: true})
	require.NoError(t, err)

	all, err := events.GetBySession(id)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, KindTurn, all[0].Kind)
	require.NotNil(t, all[0].Notation)
	assert.Equal(t, "X2", *all[0].Notation)
	require.NotNil(t, all[0].Layer)
	assert.Equal(t, 2, *all[0].Layer)
	assert.Equal(t, KindReset, all[1].Kind)
	assert.Nil(t, all[1].Notation)
	assert.Nil(t, all[1].Layer)
	assert.True(t, all[2].Discarded)

	turns, err := events.GetByKind(id, KindTurn)
	require.NoError(t, err)
	assert.Len(t, turns, 2)

	s, err := sessions.Get(id)
	require.NoError(t, err)
	assert.Equal(t, 2, s.TurnCount)

	// Duplicate sequence numbers are rejected.
	_, err = events.CreateReset(id, 2, 2000)
	assert.Error(t, err)

	require.NoError(t, sessions.Delete(id))
	n, err := events.Count(id)
	require.NoError(t, err)
	assert.Zero(t, n, "events cascade with their session")
}

func TestTransactionRollsBack(t *testing.T) {
	db := openTestDB(t)
	id, err := NewSessionRepository(db).Create("tui", "")
	require.NoError(t, err)

	err = db.Transaction(func(tx *sql.Tx) error {
		if _, err := tx.Exec(`INSERT INTO events (session_id, seq, ts_ms, kind) VALUES (?, 1, 0, 'reset')`, id); err != nil {
			return err
		}
		_, err := tx.Exec(`INSERT INTO events (session_id, seq, ts_ms, kind) VALUES (?, 1, 0, 'reset')`, id)
		return err
	})
	require.Error(t, err)

	n, err := NewEventRepository(db).Count(id)
	require.NoError(t, err)
	assert.Zero(t, n)
}
