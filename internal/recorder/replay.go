package recorder

import (
	"fmt"
	"time"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/storage"
)

// Step is one journaled event ready to be replayed.
type Step struct {
	Seq   int
	At    time.Duration // offset from session start
	Reset bool
	Turn  gocube.LayerTurn
}

// LoadSteps reads a session's journal as replay steps. Turns that finished
// on a discarded lattice are skipped.
func LoadSteps(db *storage.DB, sessionID string) ([]Step, error) {
	events, err := storage.NewEventRepository(db).GetBySession(sessionID)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(events))
	for _, e := range events {
		step := Step{Seq: e.Seq, At: time.Duration(e.TsMs) * time.Millisecond}
		switch e.Kind {
		case storage.KindReset:
			step.Reset = true
		case storage.KindTurn:
			if e.Discarded {
				continue
			}
			if e.Notation == nil {
				return nil, fmt.Errorf("turn event %d has no notation", e.EventID)
			}
			t, err := gocube.ParseTurn(*e.Notation)
			if err != nil {
				return nil, fmt.Errorf("turn event %d: %w", e.EventID, err)
			}
			step.Turn = t
		default:
			return nil, fmt.Errorf("event %d has unknown kind %q", e.EventID, e.Kind)
		}
		steps = append(steps, step)
	}

	return steps, nil
}
