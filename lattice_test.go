package gocube

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

func newTestLattice(t *testing.T, opts ...Option) *Lattice {
	t.Helper()
	l, err := NewLattice(opts...)
	if err != nil {
		t.Fatalf("NewLattice: %v", err)
	}
	return l
}

// slots records every cube's grid slot by ID.
func slots(cubes []*Cube) map[uuid.UUID][3]int {
	m := make(map[uuid.UUID][3]int, len(cubes))
	for _, c := range cubes {
		m[c.ID] = c.Grid()
	}
	return m
}

// sameRotation reports whether two unit quaternions describe the same
// rotation (q and -q are equivalent).
func sameRotation(a, b mgl64.Quat) bool {
	return math.Abs(math.Abs(a.Dot(b))-1) < 1e-9
}

func TestNewLatticeIsValid(t *testing.T) {
	l := newTestLattice(t)
	if got := len(l.Cubes()); got != CubeCount {
		t.Fatalf("got %d cubes, want %d", got, CubeCount)
	}
	if err := l.Validate(); err != nil {
		t.Errorf("new lattice should be valid: %v", err)
		t.Log(l.String())
	}
}

func TestNewLatticeSlots(t *testing.T) {
	l := newTestLattice(t)
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			for z := 0; z < GridSize; z++ {
				c := l.CubeAt([3]int{x, y, z})
				if c == nil {
					t.Fatalf("no cube at (%d,%d,%d)", x, y, z)
				}
				want := mgl64.Vec3{float64(x) * 0.82, float64(y) * 0.82, float64(z) * 0.82}
				if !c.Position().ApproxEqual(want) {
					t.Errorf("%s at %v, want %v", c, c.Position(), want)
				}
			}
		}
	}
}

func TestUniqueIDs(t *testing.T) {
	l := newTestLattice(t)
	seen := make(map[uuid.UUID]bool)
	for _, c := range l.Cubes() {
		if seen[c.ID] {
			t.Errorf("duplicate ID %s", c.ID)
		}
		seen[c.ID] = true
	}
}

func TestCenterCube(t *testing.T) {
	l := newTestLattice(t)
	c := l.CenterCube()
	if c == nil {
		t.Fatal("no center cube")
	}
	if c.Index != 0 {
		t.Errorf("center cube should be built first, index %d", c.Index)
	}
	if c.Grid() != [3]int{1, 1, 1} {
		t.Errorf("center cube at %v", c.Grid())
	}
	for i, col := range c.Colors() {
		if col != Black {
			t.Errorf("center face %d is %s, want black", i, col)
		}
	}
	if !c.Position().ApproxEqual(l.Center()) {
		t.Errorf("Center() = %v, center cube at %v", l.Center(), c.Position())
	}

	centers := 0
	for _, cc := range l.Cubes() {
		if cc.IsCenter() {
			centers++
		}
	}
	if centers != 1 {
		t.Errorf("got %d center cubes, want 1", centers)
	}
}

func TestFaceColors(t *testing.T) {
	l := newTestLattice(t)
	c := l.CubeAt([3]int{2, 2, 2})
	want := [6]Color{Red, Orange, Blue, Green, White, Yellow}
	if c.Colors() != want {
		t.Errorf("colors = %v, want %v", c.Colors(), want)
	}
	if Red.String() != "#d61a3c" {
		t.Errorf("Red = %s", Red)
	}
	r, g, b := Orange.RGB()
	if r != 0xe2 || g != 0x74 || b != 0x29 {
		t.Errorf("Orange.RGB() = %x %x %x", r, g, b)
	}
}

func TestResetRebuildsWithNewIDs(t *testing.T) {
	l := newTestLattice(t)
	before := l.Cubes()
	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 2, Direction: Clockwise})

	l.Reset()
	if err := l.Validate(); err != nil {
		t.Fatalf("reset lattice invalid: %v", err)
	}
	for _, old := range before {
		if l.Contains(old) {
			t.Errorf("%s survived reset", old)
		}
	}
	for _, c := range l.Cubes() {
		if !sameRotation(c.Orientation(), mgl64.QuatIdent()) {
			t.Errorf("%s not upright after reset", c)
		}
	}
}

func TestValidateDetectsCorruption(t *testing.T) {
	l := newTestLattice(t)
	a := l.CubeAt([3]int{0, 0, 0})
	b := l.CubeAt([3]int{2, 2, 2})
	b.position = a.position
	if err := l.Validate(); !errors.Is(err, ErrInvalidLattice) {
		t.Errorf("duplicate slot: got %v", err)
	}

	l = newTestLattice(t)
	l.CubeAt([3]int{0, 0, 0}).position[0] += 0.1
	if err := l.Validate(); !errors.Is(err, ErrInvalidLattice) {
		t.Errorf("off-slot cube: got %v", err)
	}
}

func TestLatticeOptions(t *testing.T) {
	l := newTestLattice(t, WithCubeSize(1), WithGap(0))
	if l.Spacing() != 1 {
		t.Errorf("spacing = %v, want 1", l.Spacing())
	}
	if l.Tolerance() != 0.25 {
		t.Errorf("default tolerance = %v, want 0.25", l.Tolerance())
	}

	bad := []struct {
		name string
		opt  Option
	}{
		{"zero size", WithCubeSize(0)},
		{"negative gap", WithGap(-0.1)},
		{"tolerance at half spacing", WithTolerance(0.41)},
		{"zero duration", WithDuration(0)},
		{"nil easing", WithEasing(nil)},
		{"bad key map", WithKeyMap(KeyMap{"w": {Axis: 7, Direction: Clockwise}})},
	}
	for _, tc := range bad {
		if _, err := NewLattice(tc.opt); !errors.Is(err, ErrInvalidOption) {
			t.Errorf("%s: got %v, want ErrInvalidOption", tc.name, err)
		}
	}
}

func TestLatticeString(t *testing.T) {
	l := newTestLattice(t)
	s := l.String()
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	if len(lines) != 1+GridSize {
		t.Fatalf("got %d lines:\n%s", len(lines), s)
	}
	if !strings.Contains(lines[2], "##") {
		t.Errorf("middle row should show the center cube:\n%s", s)
	}
	if !strings.HasPrefix(lines[0], "y=2") {
		t.Errorf("top slab should come first:\n%s", s)
	}
}

func TestLayerCoordinateRoundTrip(t *testing.T) {
	l := newTestLattice(t)
	for i := 0; i < GridSize; i++ {
		if got := l.LayerIndex(l.LayerCoordinate(i)); got != i {
			t.Errorf("LayerIndex(LayerCoordinate(%d)) = %d", i, got)
		}
	}
}
