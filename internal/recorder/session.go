// Package recorder journals what happens to a lattice during a session.
package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/storage"
)

// SessionState represents the current state of a recording session.
type SessionState int

const (
	StateIdle SessionState = iota
	StateRecording
	StateEnded
)

// String returns the string representation of the session state.
func (s SessionState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRecording:
		return "recording"
	case StateEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// Session records completed turns and resets of one front-end run.
type Session struct {
	db *storage.DB

	mu        sync.RWMutex
	state     SessionState
	sessionID string
	startTime time.Time
	seq       int
	turns     int

	sessionRepo *storage.SessionRepository
	eventRepo   *storage.EventRepository
}

// NewSession creates a new session manager.
func NewSession(db *storage.DB) *Session {
	return &Session{
		db:          db,
		state:       StateIdle,
		sessionRepo: storage.NewSessionRepository(db),
		eventRepo:   storage.NewEventRepository(db),
	}
}

// State returns the current session state.
func (s *Session) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SessionID returns the current session ID.
func (s *Session) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// TurnCount returns how many turns were recorded.
func (s *Session) TurnCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.turns
}

// ElapsedMs returns the elapsed time since session start in milliseconds.
func (s *Session) ElapsedMs() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != StateRecording {
		return 0
	}
	return time.Since(s.startTime).Milliseconds()
}

// Start begins a new session for the named front end.
func (s *Session) Start(frontend, appVersion string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRecording {
		return "", fmt.Errorf("session already in progress")
	}

	id, err := s.sessionRepo.Create(frontend, appVersion)
	if err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	s.sessionID = id
	s.startTime = time.Now()
	s.seq = 0
	s.turns = 0
	s.state = StateRecording

	return id, nil
}

// End finishes the session.
func (s *Session) End() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return fmt.Errorf("no session in progress")
	}

	if err := s.sessionRepo.End(s.sessionID); err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}

	s.state = StateEnded
	return nil
}

// RecordTurn stores a completed turn. Outside a session it is a no-op.
func (s *Session) RecordTurn(ev gocube.TurnEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	s.seq++
	rec := storage.TurnRecord{
		Notation:   ev.Turn.Notation(),
		Axis:       ev.Turn.Axis.String(),
		Layer:      ev.Turn.Layer,
		Direction:  ev.Turn.Direction.String(),
		DurationMs: ev.Elapsed.Milliseconds(),
		Discarded:  ev.Discarded,
	}
	if _, err := s.eventRepo.CreateTurn(s.sessionID, s.seq, time.Since(s.startTime).Milliseconds(), rec); err != nil {
		return fmt.Errorf("failed to store turn: %w", err)
	}
	s.turns++

	return nil
}

// RecordReset stores a reset. Outside a session it is a no-op.
func (s *Session) RecordReset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRecording {
		return nil
	}

	s.seq++
	if _, err := s.eventRepo.CreateReset(s.sessionID, s.seq, time.Since(s.startTime).Milliseconds()); err != nil {
		return fmt.Errorf("failed to store reset: %w", err)
	}

	return nil
}

// Attach subscribes the session to a controller's turns and resets.
// Storage failures are logged; they never interrupt the front end.
func (s *Session) Attach(ctrl *gocube.Controller) {
	ctrl.OnTurnComplete(func(ev gocube.TurnEvent) {
		if err := s.RecordTurn(ev); err != nil {
			log.Error().Err(err).Str("turn", ev.Turn.Notation()).Msg("journal write failed")
		}
	})
	ctrl.OnReset(func() {
		if err := s.RecordReset(); err != nil {
			log.Error().Err(err).Msg("journal write failed")
		}
	})
}
