package analysis

import (
	"sort"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

// NGram is a turn sequence that occurs more than once.
type NGram struct {
	N            int      `json:"n"`
	Sequence     []string `json:"sequence"`
	Count        int      `json:"count"`
	StartIndexes []int    `json:"start_indexes,omitempty"` // first ten occurrences
}

// NGramReport contains the results of n-gram mining keyed by n.
type NGramReport struct {
	TopNGrams map[int][]NGram `json:"top_ngrams"`
}

// RollingHash is a Rabin-Karp rolling hash over a window of n tokens.
type RollingHash struct {
	base   uint64
	hash   uint64
	pow    uint64 // base^(n-1)
	window []uint8
	n      int
}

// NewRollingHash creates a new rolling hash for window size n.
func NewRollingHash(n int) *RollingHash {
	rh := &RollingHash{
		base:   31,
		n:      n,
		window: make([]uint8, 0, n),
		pow:    1,
	}
	for i := 0; i < n-1; i++ {
		rh.pow *= rh.base
	}
	return rh
}

// Roll pushes token, dropping the oldest once the window is full.
func (rh *RollingHash) Roll(token uint8) {
	if len(rh.window) < rh.n {
		rh.window = append(rh.window, token)
		rh.hash = rh.hash*rh.base + uint64(token)
		return
	}
	old := rh.window[0]
	rh.hash = (rh.hash-uint64(old)*rh.pow)*rh.base + uint64(token)
	copy(rh.window, rh.window[1:])
	rh.window[rh.n-1] = token
}

// Hash returns the current hash value.
func (rh *RollingHash) Hash() uint64 {
	return rh.hash
}

// Window returns a copy of the current window.
func (rh *RollingHash) Window() []uint8 {
	out := make([]uint8, len(rh.window))
	copy(out, rh.window)
	return out
}

// Ready reports whether the window is full.
func (rh *RollingHash) Ready() bool {
	return len(rh.window) == rh.n
}

// Token packs a turn into 0..17: axis, layer and direction.
func Token(t gocube.LayerTurn) uint8 {
	tok := uint8(t.Axis)*6 + uint8(t.Layer)*2
	if t.Direction == gocube.CounterClockwise {
		tok++
	}
	return tok
}

// TurnFromToken is the inverse of Token.
func TurnFromToken(tok uint8) gocube.LayerTurn {
	t := gocube.LayerTurn{
		Axis:      gocube.Axis(tok / 6),
		Layer:     int(tok%6) / 2,
		Direction: gocube.Clockwise,
	}
	if tok%2 == 1 {
		t.Direction = gocube.CounterClockwise
	}
	return t
}

type ngramEntry struct {
	tokens []uint8
	count  int
	starts []int
}

// MineNGrams finds the topK most frequent repeated sequences for each
// length in [minN, maxN].
func MineNGrams(turns []gocube.LayerTurn, minN, maxN, topK int) *NGramReport {
	report := &NGramReport{TopNGrams: make(map[int][]NGram)}

	tokens := make([]uint8, len(turns))
	for i, t := range turns {
		tokens[i] = Token(t)
	}

	for n := minN; n <= maxN && n <= len(tokens); n++ {
		if ngrams := mineNGramsForN(tokens, n, topK); len(ngrams) > 0 {
			report.TopNGrams[n] = ngrams
		}
	}
	return report
}

func mineNGramsForN(tokens []uint8, n, topK int) []NGram {
	if n <= 0 || len(tokens) < n {
		return nil
	}

	// Collisions chain under the same hash.
	counts := make(map[uint64][]*ngramEntry)
	var order []*ngramEntry
	rh := NewRollingHash(n)

	for i, tok := range tokens {
		rh.Roll(tok)
		if !rh.Ready() {
			continue
		}
		start := i - n + 1
		window := rh.Window()

		var entry *ngramEntry
		for _, e := range counts[rh.Hash()] {
			if slicesEqual(e.tokens, window) {
				entry = e
				break
			}
		}
		if entry == nil {
			entry = &ngramEntry{tokens: window}
			counts[rh.Hash()] = append(counts[rh.Hash()], entry)
			order = append(order, entry)
		}
		entry.count++
		if len(entry.starts) < 10 {
			entry.starts = append(entry.starts, start)
		}
	}

	var repeated []*ngramEntry
	for _, e := range order {
		if e.count >= 2 {
			repeated = append(repeated, e)
		}
	}
	sort.SliceStable(repeated, func(i, j int) bool {
		return repeated[i].count > repeated[j].count
	})
	if len(repeated) > topK {
		repeated = repeated[:topK]
	}

	out := make([]NGram, len(repeated))
	for i, e := range repeated {
		seq := make([]string, len(e.tokens))
		for j, tok := range e.tokens {
			seq[j] = TurnFromToken(tok).Notation()
		}
		out[i] = NGram{N: n, Sequence: seq, Count: e.count, StartIndexes: e.starts}
	}
	return out
}

func slicesEqual(a, b []uint8) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
