package analysis

import (
	gocube "github.com/SeamusWaldron/gocube_lattice"
)

// Cancellation is a turn immediately undone by its inverse, e.g. X2 X2'.
type Cancellation struct {
	Index int    `json:"index"` // index of the first turn
	Turn  string `json:"turn"`
	Undo  string `json:"undo"`
}

// AlternatingPattern is a pair of turns repeated back to back, e.g.
// R U R U R U.
type AlternatingPattern struct {
	StartIndex int      `json:"start_index"`
	EndIndex   int      `json:"end_index"`
	Pattern    []string `json:"pattern"`
	Count      int      `json:"count"`
}

// RepetitionReport contains the repetition analysis of a turn sequence.
type RepetitionReport struct {
	Cancellations []Cancellation       `json:"cancellations"`
	Alternating   []AlternatingPattern `json:"alternating"`
	WastedTurns   int                  `json:"wasted_turns"` // original minus optimized length
}

// AnalyzeRepetitions looks for wasted motion in turns.
func AnalyzeRepetitions(turns []gocube.LayerTurn) *RepetitionReport {
	report := &RepetitionReport{
		Cancellations: []Cancellation{},
		Alternating:   []AlternatingPattern{},
	}

	for i := 0; i+1 < len(turns); i++ {
		if sameTurn(turns[i+1], turns[i].Inverse()) {
			report.Cancellations = append(report.Cancellations, Cancellation{
				Index: i,
				Turn:  turns[i].Notation(),
				Undo:  turns[i+1].Notation(),
			})
		}
	}

	report.Alternating = findAlternating(turns)
	report.WastedTurns = len(turns) - len(OptimizeTurns(turns))
	return report
}

// findAlternating finds AB pairs repeated at least three times.
func findAlternating(turns []gocube.LayerTurn) []AlternatingPattern {
	var patterns []AlternatingPattern

	i := 0
	for i+3 < len(turns) {
		a, b := turns[i], turns[i+1]
		if sameTurn(a, b) {
			i++
			continue
		}

		count := 1
		j := i + 2
		for j+1 < len(turns) && sameTurn(turns[j], a) && sameTurn(turns[j+1], b) {
			count++
			j += 2
		}

		if count >= 3 {
			patterns = append(patterns, AlternatingPattern{
				StartIndex: i,
				EndIndex:   i + count*2 - 1,
				Pattern:    []string{a.Notation(), b.Notation()},
				Count:      count,
			})
			i = j
		} else {
			i++
		}
	}

	return patterns
}

// group is a run of turns of one layer, net quarter turns clockwise mod 4.
type group struct {
	axis  gocube.Axis
	layer int
	net   int
}

// OptimizeTurns collapses consecutive turns of the same layer to their net
// effect: inverse pairs and four equal quarter turns vanish, three become
// one the other way. A vanished run can expose a merge with the run before
// it, which is taken too.
func OptimizeTurns(turns []gocube.LayerTurn) []gocube.LayerTurn {
	var stack []group
	for _, t := range turns {
		if n := len(stack); n > 0 && stack[n-1].axis == t.Axis && stack[n-1].layer == t.Layer {
			stack[n-1].net = mod4(stack[n-1].net + int(t.Direction))
			if stack[n-1].net == 0 {
				stack = stack[:n-1]
			}
			continue
		}
		stack = append(stack, group{axis: t.Axis, layer: t.Layer, net: mod4(int(t.Direction))})
	}

	out := make([]gocube.LayerTurn, 0, len(stack))
	for _, g := range stack {
		cw := gocube.LayerTurn{Axis: g.axis, Layer: g.layer, Direction: gocube.Clockwise}
		switch g.net {
		case 1:
			out = append(out, cw)
		case 2:
			out = append(out, cw, cw)
		case 3:
			out = append(out, cw.Inverse())
		}
	}
	return out
}

func mod4(v int) int {
	return ((v % 4) + 4) % 4
}

func sameTurn(a, b gocube.LayerTurn) bool {
	return a.Axis == b.Axis && a.Layer == b.Layer && a.Direction == b.Direction
}
