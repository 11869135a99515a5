package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gocube "github.com/SeamusWaldron/gocube_lattice"
	"github.com/SeamusWaldron/gocube_lattice/internal/recorder"
)

func mustTurns(t *testing.T, s string) []gocube.LayerTurn {
	t.Helper()
	turns, err := gocube.ParseTurns(s)
	require.NoError(t, err)
	return turns
}

func TestOptimizeTurns(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"X2 X2'", ""},
		{"X2 X2 X2 X2", ""},
		{"X2 X2 X2", "X2'"},
		{"X2' X2'", "X2 X2"},
		{"X2 Y0 Y0' X2", "X2 X2"},
		{"X2 Y0 Y0' X2'", ""},
		{"X2 X1 X2'", "X2 X1 X2'"},
		{"R U R' U'", "R U R' U'"},
	}
	for _, tt := range tests {
		got := gocube.FormatTurns(OptimizeTurns(mustTurns(t, tt.in)))
		want := gocube.FormatTurns(mustTurns(t, tt.want))
		assert.Equal(t, want, got, "OptimizeTurns(%q)", tt.in)
	}
}

func TestOptimizedSequenceIsEquivalent(t *testing.T) {
	in := mustTurns(t, "X2 Y0 Y0' X2 Z1 Z1 Z1 R U U' R'")
	out := OptimizeTurns(in)

	a, err := gocube.NewController()
	require.NoError(t, err)
	b, err := gocube.NewController()
	require.NoError(t, err)
	require.NoError(t, a.Apply(20*time.Millisecond, in...))
	require.NoError(t, b.Apply(20*time.Millisecond, out...))

	for _, c := range a.Lattice().Cubes() {
		other := b.Lattice().CubeAt(c.Grid())
		require.NotNil(t, other)
		assert.Equal(t, c.Index, other.Index, "slot %v", c.Grid())
	}
}

func TestAnalyzeRepetitions(t *testing.T) {
	report := AnalyzeRepetitions(mustTurns(t, "X2 X2' R U R U R U Y0"))
	require.Len(t, report.Cancellations, 1)
	assert.Equal(t, Cancellation{Index: 0, Turn: "X2", Undo: "X2'"}, report.Cancellations[0])

	require.Len(t, report.Alternating, 1)
	assert.Equal(t, 2, report.Alternating[0].StartIndex)
	assert.Equal(t, 7, report.Alternating[0].EndIndex)
	assert.Equal(t, 3, report.Alternating[0].Count)
	assert.Equal(t, 2, report.WastedTurns)
}

func TestTokenRoundTrip(t *testing.T) {
	seen := map[uint8]bool{}
	for _, axis := range gocube.Axes {
		for layer := 0; layer < gocube.GridSize; layer++ {
			for _, dir := range []gocube.Direction{gocube.Clockwise, gocube.CounterClockwise} {
				turn := gocube.LayerTurn{Axis: axis, Layer: layer, Direction: dir}
				tok := Token(turn)
				assert.Less(t, tok, uint8(18))
				assert.False(t, seen[tok], "duplicate token %d", tok)
				seen[tok] = true
				assert.Equal(t, turn.Notation(), TurnFromToken(tok).Notation())
			}
		}
	}
}

func TestMineNGrams(t *testing.T) {
	turns := mustTurns(t, "R U R' U' X1 R U R' U' Y0 R U R' U'")
	report := MineNGrams(turns, 4, 5, 3)

	top4 := report.TopNGrams[4]
	require.NotEmpty(t, top4)
	assert.Equal(t, []string{"X2'", "Y2'", "X2", "Y2"}, top4[0].Sequence)
	assert.Equal(t, 3, top4[0].Count)
	assert.Equal(t, []int{0, 5, 10}, top4[0].StartIndexes)

	_, ok := report.TopNGrams[5]
	assert.False(t, ok, "no 5-turn sequence repeats")
}

func TestSummarize(t *testing.T) {
	turns := mustTurns(t, "X0 Y1 X0' Z2")
	steps := []recorder.Step{
		{Seq: 1, At: 0, Turn: turns[0]},
		{Seq: 2, At: time.Second, Reset: true},
		{Seq: 3, At: 2 * time.Second, Turn: turns[1]},
		{Seq: 4, At: 3 * time.Second, Turn: turns[2]},
		{Seq: 5, At: 6 * time.Second, Turn: turns[3]},
	}

	s := Summarize(steps, DefaultPauseThreshold)
	assert.Equal(t, 3, s.TurnCount)
	assert.Equal(t, 1, s.ResetCount)
	assert.Equal(t, 4*time.Second, s.Duration)
	assert.InDelta(t, 0.75, s.TPS, 1e-9)
	assert.Equal(t, 2*time.Second, s.AvgGap)
	assert.Equal(t, 3*time.Second, s.LongestPause)
	assert.Equal(t, 1, s.PauseCount)
	assert.Equal(t, 3, s.OptimizedCount)
	assert.Equal(t, 1.0, s.Efficiency)
	assert.Equal(t, 1, s.AxisCounts[gocube.AxisX])
	assert.Equal(t, 1, s.AxisCounts[gocube.AxisY])
	assert.Equal(t, 1, s.AxisCounts[gocube.AxisZ])
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, DefaultPauseThreshold)
	assert.Equal(t, 0, s.TurnCount)
	assert.Equal(t, 1.0, s.Efficiency)
	assert.Zero(t, s.TPS)
}
