package storage

import (
	"database/sql"
	"fmt"
)

// Event kinds.
const (
	KindTurn  = "turn"
	KindReset = "reset"
)

// Event is one journaled turn or reset.
type Event struct {
	EventID    int64
	SessionID  string
	Seq        int
	TsMs       int64 // milliseconds since the session started
	Kind       string
	Notation   *string
	Axis       *string
	Layer      *int
	Direction  *string
	DurationMs *int64
	Discarded  bool
}

// TurnRecord carries the columns of a turn event.
type TurnRecord struct {
	Notation   string
	Axis       string
	Layer      int
	Direction  string
	DurationMs int64
	Discarded  bool
}

// EventRepository provides CRUD operations for events.
type EventRepository struct {
	db *DB
}

// NewEventRepository creates a new event repository.
func NewEventRepository(db *DB) *EventRepository {
	return &EventRepository{db: db}
}

// CreateTurn appends a turn event and returns its ID.
func (r *EventRepository) CreateTurn(sessionID string, seq int, tsMs int64, t TurnRecord) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO events (session_id, seq, ts_ms, kind, notation, axis, layer, direction, duration_ms, discarded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, sessionID, seq, tsMs, KindTurn, t.Notation, t.Axis, t.Layer, t.Direction, t.DurationMs, t.Discarded)

	if err != nil {
		return 0, fmt.Errorf("failed to create turn event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event ID: %w", err)
	}

	return id, nil
}

// CreateReset appends a reset event and returns its ID.
func (r *EventRepository) CreateReset(sessionID string, seq int, tsMs int64) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO events (session_id, seq, ts_ms, kind)
		VALUES (?, ?, ?, ?)
	`, sessionID, seq, tsMs, KindReset)

	if err != nil {
		return 0, fmt.Errorf("failed to create reset event: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get event ID: %w", err)
	}

	return id, nil
}

// GetBySession retrieves all events of a session in sequence order.
func (r *EventRepository) GetBySession(sessionID string) ([]Event, error) {
	return r.query(`
		SELECT event_id, session_id, seq, ts_ms, kind, notation, axis, layer, direction, duration_ms, discarded
		FROM events
		WHERE session_id = ?
		ORDER BY seq
	`, sessionID)
}

// GetByKind retrieves the events of one kind for a session.
func (r *EventRepository) GetByKind(sessionID, kind string) ([]Event, error) {
	return r.query(`
		SELECT event_id, session_id, seq, ts_ms, kind, notation, axis, layer, direction, duration_ms, discarded
		FROM events
		WHERE session_id = ? AND kind = ?
		ORDER BY seq
	`, sessionID, kind)
}

// Count returns the number of events in a session.
func (r *EventRepository) Count(sessionID string) (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM events WHERE session_id = ?", sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

func (r *EventRepository) query(q string, args ...any) ([]Event, error) {
	rows, err := r.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var layer sql.NullInt64
		err := rows.Scan(&e.EventID, &e.SessionID, &e.Seq, &e.TsMs, &e.Kind,
			&e.Notation, &e.Axis, &layer, &e.Direction, &e.DurationMs, &e.Discarded)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		if layer.Valid {
			l := int(layer.Int64)
			e.Layer = &l
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
