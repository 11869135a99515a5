package gocube

import (
	"fmt"
	"sort"
	"strings"
)

// Binding is the turn a key triggers on the selected cube's layer.
type Binding struct {
	Axis      Axis
	Direction Direction
}

// KeyMap binds normalised key names to turns.
type KeyMap map[string]Binding

// DefaultKeyMap returns the standard bindings:
//
//	W  X counter-clockwise    S  X clockwise
//	A  Y counter-clockwise    D  Y clockwise
//	Q  Z clockwise            E  Z counter-clockwise
//
// Clockwise is +90° about the positive axis.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		"w": {Axis: AxisX, Direction: CounterClockwise},
		"s": {Axis: AxisX, Direction: Clockwise},
		"a": {Axis: AxisY, Direction: CounterClockwise},
		"d": {Axis: AxisY, Direction: Clockwise},
		"q": {Axis: AxisZ, Direction: Clockwise},
		"e": {Axis: AxisZ, Direction: CounterClockwise},
	}
}

// NormalizeKey folds browser codes ("KeyW"), ebiten names ("W") and
// terminal runes ("w") onto one lower-case name.
func NormalizeKey(code string) string {
	code = strings.TrimSpace(code)
	if len(code) == 4 && strings.HasPrefix(code, "Key") {
		code = code[3:]
	}
	return strings.ToLower(code)
}

// Lookup returns the binding for a key in any supported spelling.
func (km KeyMap) Lookup(code string) (Binding, bool) {
	b, ok := km[NormalizeKey(code)]
	return b, ok
}

// Validate checks every binding and rejects keys that only differ by
// spelling.
func (km KeyMap) Validate() error {
	seen := make(map[string]string, len(km))
	for key, b := range km {
		n := NormalizeKey(key)
		if n == "" {
			return fmt.Errorf("%w: empty key in key map", ErrInvalidOption)
		}
		if other, ok := seen[n]; ok {
			return fmt.Errorf("%w: keys %q and %q are the same key", ErrInvalidOption, other, key)
		}
		seen[n] = key
		if !b.Axis.Valid() {
			return fmt.Errorf("%w: key %q has invalid axis %d", ErrInvalidOption, key, b.Axis)
		}
		if b.Direction != Clockwise && b.Direction != CounterClockwise {
			return fmt.Errorf("%w: key %q has invalid direction %d", ErrInvalidOption, key, b.Direction)
		}
	}
	return nil
}

// Normalized returns a copy with every key in normalised form.
func (km KeyMap) Normalized() KeyMap {
	out := make(KeyMap, len(km))
	for k, b := range km {
		out[NormalizeKey(k)] = b
	}
	return out
}

// Keys returns the normalised keys in sorted order.
func (km KeyMap) Keys() []string {
	keys := make([]string, 0, len(km))
	for k := range km {
		keys = append(keys, NormalizeKey(k))
	}
	sort.Strings(keys)
	return keys
}
