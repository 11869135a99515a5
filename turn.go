package gocube

import (
	"fmt"
	"strings"
	"time"
)

// LayerTurn is one quarter turn of a single layer, captured once when the
// turn starts.
type LayerTurn struct {
	Axis      Axis
	Layer     int       // 0..2 along Axis
	Direction Direction // Clockwise is +90° about the positive axis
	Time      time.Time // when the turn was requested (optional)
}

// Notation returns the turn in axis notation: axis letter, layer index and
// a trailing apostrophe for counter-clockwise. Examples: X2, Y0', Z1
func (t LayerTurn) Notation() string {
	s := fmt.Sprintf("%s%d", t.Axis, t.Layer)
	if t.Direction == CounterClockwise {
		s += "'"
	}
	return s
}

// Inverse returns the turn that undoes t.
func (t LayerTurn) Inverse() LayerTurn {
	inv := t
	inv.Direction = t.Direction.Opposite()
	return inv
}

// WithTime returns a copy of the turn with the given timestamp.
func (t LayerTurn) WithTime(ts time.Time) LayerTurn {
	t.Time = ts
	return t
}

// Valid reports whether the axis, layer and direction are in range.
func (t LayerTurn) Valid() bool {
	return t.Axis.Valid() && t.Layer >= 0 && t.Layer < GridSize &&
		(t.Direction == Clockwise || t.Direction == CounterClockwise)
}

// String returns the notation string (alias for Notation).
func (t LayerTurn) String() string {
	return t.Notation()
}

// faceTurns maps face letters to their clockwise turn seen from outside
// that face.
var faceTurns = map[byte]LayerTurn{
	'R': {Axis: AxisX, Layer: 2, Direction: CounterClockwise},
	'L': {Axis: AxisX, Layer: 0, Direction: Clockwise},
	'U': {Axis: AxisY, Layer: 2, Direction: CounterClockwise},
	'D': {Axis: AxisY, Layer: 0, Direction: Clockwise},
	'F': {Axis: AxisZ, Layer: 2, Direction: CounterClockwise},
	'B': {Axis: AxisZ, Layer: 0, Direction: Clockwise},
	'M': {Axis: AxisX, Layer: 1, Direction: Clockwise},
	'E': {Axis: AxisY, Layer: 1, Direction: Clockwise},
	'S': {Axis: AxisZ, Layer: 1, Direction: CounterClockwise},
}

// ParseTurn parses one turn. Axis notation (X2, y0', Z1), face letters
// (R, U', f) and slice letters (M, E', s) are accepted. A trailing ' or ` inverts the direction.
func ParseTurn(s string) (LayerTurn, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return LayerTurn{}, ErrInvalidNotation
	}

	invert := false
	if last := s[len(s)-1]; last == '\'' || last == '`' {
		invert = true
		s = s[:len(s)-1]
	}

	var t LayerTurn
	switch len(s) {
	case 1:
		ft, ok := faceTurns[upper(s[0])]
		if !ok {
			return LayerTurn{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		t = ft
	case 2:
		axis, err := ParseAxis(s[:1])
		if err != nil {
			return LayerTurn{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
		}
		if s[1] < '0' || s[1] >= '0'+GridSize {
			return LayerTurn{}, fmt.Errorf("%w: layer in %q", ErrInvalidNotation, s)
		}
		t = LayerTurn{Axis: axis, Layer: int(s[1] - '0'), Direction: Clockwise}
	default:
		return LayerTurn{}, fmt.Errorf("%w: %q", ErrInvalidNotation, s)
	}

	if invert {
		t = t.Inverse()
	}
	return t, nil
}

// ParseTurns parses a whitespace-separated sequence of turns.
// Example: "R U R' U'" or "X2 Y0' Z1"
// The first invalid token aborts the whole sequence.
func ParseTurns(s string) ([]LayerTurn, error) {
	parts := strings.Fields(s)
	turns := make([]LayerTurn, 0, len(parts))

	for _, part := range parts {
		t, err := ParseTurn(part)
		if err != nil {
			return nil, err
		}
		turns = append(turns, t)
	}

	return turns, nil
}

// FormatTurns formats turns as a space-separated notation string.
func FormatTurns(turns []LayerTurn) string {
	if len(turns) == 0 {
		return ""
	}

	parts := make([]string, len(turns))
	for i, t := range turns {
		parts[i] = t.Notation()
	}

	return strings.Join(parts, " ")
}

// InverseTurns returns the sequence that undoes turns.
func InverseTurns(turns []LayerTurn) []LayerTurn {
	inv := make([]LayerTurn, len(turns))
	for i, t := range turns {
		inv[len(turns)-1-i] = t.Inverse()
	}
	return inv
}

func upper(b byte) byte {
	if b >= 'a' && b <= 'z' {
		return b - 'a' + 'A'
	}
	return b
}
