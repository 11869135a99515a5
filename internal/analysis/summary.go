// Package analysis computes statistics over journaled sessions.
package analysis

import (
	"time"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/recorder"
)

// DefaultPauseThreshold is the gap after which a session counts as paused.
const DefaultPauseThreshold = 1500 * time.Millisecond

// Turn is a completed turn with its offset from the session start.
type Turn struct {
	gocube.LayerTurn
	At time.Duration
}

// SessionSummary contains statistics for a single session.
type SessionSummary struct {
	TurnCount      int                 `json:"turn_count"`
	ResetCount     int                 `json:"reset_count"`
	Duration       time.Duration       `json:"duration"` // first to last turn
	TPS            float64             `json:"tps"`
	AvgGap         time.Duration       `json:"avg_gap"`
	LongestPause   time.Duration       `json:"longest_pause"`
	PauseCount     int                 `json:"pause_count"`
	OptimizedCount int                 `json:"optimized_count"`
	Efficiency     float64             `json:"efficiency"`
	AxisCounts     map[gocube.Axis]int `json:"axis_counts"`
}

// PauseInfo represents a gap between two turns.
type PauseInfo struct {
	AfterIndex int           `json:"after_index"`
	Duration   time.Duration `json:"duration"`
	At         time.Duration `json:"at"`
}

// Turns extracts the turns after the final reset in steps, along with the
// number of resets.
func Turns(steps []recorder.Step) ([]Turn, int) {
	var (
		turns  []Turn
		resets int
	)
	for _, s := range steps {
		if s.Reset {
			resets++
			turns = turns[:0]
			continue
		}
		turns = append(turns, Turn{LayerTurn: s.Turn, At: s.At})
	}
	return turns, resets
}

// LayerTurns strips the timing from turns.
func LayerTurns(turns []Turn) []gocube.LayerTurn {
	out := make([]gocube.LayerTurn, len(turns))
	for i, t := range turns {
		out[i] = t.LayerTurn
	}
	return out
}

// Summarize computes a session summary from replay steps. Statistics cover
// the turns after the last reset.
func Summarize(steps []recorder.Step, pauseThreshold time.Duration) *SessionSummary {
	turns, resets := Turns(steps)

	s := &SessionSummary{
		TurnCount:  len(turns),
		ResetCount: resets,
		AxisCounts: make(map[gocube.Axis]int),
	}
	for _, t := range turns {
		s.AxisCounts[t.Axis]++
	}
	if len(turns) == 0 {
		s.Efficiency = 1
		return s
	}

	s.Duration = turns[len(turns)-1].At - turns[0].At
	s.TPS = CalculateTPS(len(turns), s.Duration)
	s.AvgGap = AverageGap(turns)
	s.LongestPause = LongestPause(turns)
	s.PauseCount = len(AnalyzePauses(turns, pauseThreshold))
	s.OptimizedCount = len(OptimizeTurns(LayerTurns(turns)))
	s.Efficiency = CalculateEfficiency(len(turns), s.OptimizedCount)
	return s
}

// AnalyzePauses finds every gap of at least threshold.
func AnalyzePauses(turns []Turn, threshold time.Duration) []PauseInfo {
	var pauses []PauseInfo
	for i := 1; i < len(turns); i++ {
		gap := turns[i].At - turns[i-1].At
		if gap >= threshold {
			pauses = append(pauses, PauseInfo{
				AfterIndex: i - 1,
				Duration:   gap,
				At:         turns[i-1].At,
			})
		}
	}
	return pauses
}

// CalculateTPS returns turns per second over d.
func CalculateTPS(n int, d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(n) / d.Seconds()
}

// AverageGap returns the mean time between consecutive turns.
func AverageGap(turns []Turn) time.Duration {
	if len(turns) < 2 {
		return 0
	}
	return (turns[len(turns)-1].At - turns[0].At) / time.Duration(len(turns)-1)
}

// LongestPause returns the longest gap between consecutive turns.
func LongestPause(turns []Turn) time.Duration {
	var longest time.Duration
	for i := 1; i < len(turns); i++ {
		if gap := turns[i].At - turns[i-1].At; gap > longest {
			longest = gap
		}
	}
	return longest
}

// CalculateEfficiency returns optimized/original, 1 for an empty sequence.
func CalculateEfficiency(original, optimized int) float64 {
	if original == 0 {
		return 1
	}
	return float64(optimized) / float64(original)
}
