package gocube

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestResolveScenarioClockwiseX(t *testing.T) {
	l := newTestLattice(t)
	c := l.CubeAt([3]int{2, 0, 1})

	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 2, Direction: Clockwise})
	if got := c.Grid(); got != [3]int{2, 1, 0} {
		t.Errorf("after X2: cube at %v, want (2,1,0)", got)
		t.Log(l.String())
	}

	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 2, Direction: CounterClockwise})
	if got := c.Grid(); got != [3]int{2, 0, 1} {
		t.Errorf("after X2 X2': cube at %v, want (2,0,1)", got)
		t.Log(l.String())
	}
}

func TestResolveIsPermutation(t *testing.T) {
	for _, axis := range Axes {
		for layer := 0; layer < GridSize; layer++ {
			for _, dir := range []Direction{Clockwise, CounterClockwise} {
				l := newTestLattice(t)
				cubes, _ := l.LayerAt(axis, layer)
				before := make(map[[3]int]bool)
				for _, c := range cubes {
					before[c.Grid()] = true
				}

				turnNow(t, l, LayerTurn{Axis: axis, Layer: layer, Direction: dir})

				after := make(map[[3]int]bool)
				for _, c := range cubes {
					g := c.Grid()
					if !before[g] {
						t.Errorf("%s%d %s: %s left the layer", axis, layer, dir, c)
					}
					after[g] = true
				}
				if len(after) != LayerSize {
					t.Errorf("%s%d %s: %d distinct slots", axis, layer, dir, len(after))
				}
				if err := l.Validate(); err != nil {
					t.Errorf("%s%d %s: %v", axis, layer, dir, err)
					t.Log(l.String())
				}
			}
		}
	}
}

func TestFourTurnsRestore(t *testing.T) {
	for _, axis := range Axes {
		for layer := 0; layer < GridSize; layer++ {
			l := newTestLattice(t)
			before := slots(l.Cubes())
			positions := make(map[*Cube]mgl64.Vec3)
			for _, c := range l.Cubes() {
				positions[c] = c.Position()
			}

			turn := LayerTurn{Axis: axis, Layer: layer, Direction: Clockwise}
			for i := 0; i < 4; i++ {
				turnNow(t, l, turn)
			}

			for _, c := range l.Cubes() {
				if c.Grid() != before[c.ID] {
					t.Errorf("%s x 4: %s not restored", turn, c)
				}
				if c.Position() != positions[c] {
					t.Errorf("%s x 4: %s drifted to %v", turn, c, c.Position())
				}
				if !sameRotation(c.Orientation(), mgl64.QuatIdent()) {
					t.Errorf("%s x 4: %s orientation %v", turn, c, c.Orientation())
				}
			}
		}
	}
}

func TestInverseRestores(t *testing.T) {
	for _, axis := range Axes {
		for layer := 0; layer < GridSize; layer++ {
			l := newTestLattice(t)
			before := slots(l.Cubes())
			turn := LayerTurn{Axis: axis, Layer: layer, Direction: CounterClockwise}
			turnNow(t, l, turn)
			turnNow(t, l, turn.Inverse())
			for _, c := range l.Cubes() {
				if c.Grid() != before[c.ID] {
					t.Errorf("%s %s: %s not restored", turn, turn.Inverse(), c)
				}
			}
		}
	}
}

func TestSexyMoveSixTimesRestores(t *testing.T) {
	l := newTestLattice(t)
	before := slots(l.Cubes())
	for i := 0; i < 6; i++ {
		for _, turn := range SexyMove {
			turnNow(t, l, turn)
		}
	}
	for _, c := range l.Cubes() {
		if c.Grid() != before[c.ID] {
			t.Errorf("%s not restored", c)
		}
		if !sameRotation(c.Orientation(), mgl64.QuatIdent()) {
			t.Errorf("%s orientation %v", c, c.Orientation())
		}
	}
	if !l.Solved() {
		t.Error("lattice not solved after six sexy moves")
	}
	if t.Failed() {
		t.Log(l.String())
	}
}

func TestSolved(t *testing.T) {
	l := newTestLattice(t)
	if !l.Solved() {
		t.Fatal("new lattice is not solved")
	}

	turn := LayerTurn{Axis: AxisY, Layer: 2, Direction: Clockwise}
	turnNow(t, l, turn)
	if l.Solved() {
		t.Errorf("solved after %s", turn)
	}

	// The center slab turns the center cube in place.
	l = newTestLattice(t)
	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 1, Direction: Clockwise})
	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 1, Direction: Clockwise})
	if l.Solved() {
		t.Error("solved after X1 X1")
	}
	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 1, Direction: CounterClockwise})
	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 1, Direction: CounterClockwise})
	if !l.Solved() {
		t.Error("not solved after X1 X1 X1' X1'")
		t.Log(l.String())
	}
}

func TestManyTurnsDoNotDrift(t *testing.T) {
	l := newTestLattice(t)
	for i := 0; i < 250; i++ {
		axis := Axes[i%3]
		turnNow(t, l, LayerTurn{Axis: axis, Layer: (i * 7) % 3, Direction: Clockwise})
	}
	if err := l.Validate(); err != nil {
		t.Errorf("lattice drifted: %v", err)
		t.Log(l.String())
	}
}

func TestOrientationAccumulatesQuarterTurn(t *testing.T) {
	l := newTestLattice(t)
	c := l.CubeAt([3]int{2, 0, 0})
	turnNow(t, l, LayerTurn{Axis: AxisX, Layer: 2, Direction: Clockwise})

	e := c.Euler()
	if math.Abs(e[0]-math.Pi/2) > 1e-9 || math.Abs(e[1]) > 1e-9 || math.Abs(e[2]) > 1e-9 {
		t.Errorf("Euler = %v, want (π/2, 0, 0)", e)
	}
	want := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{1, 0, 0})
	if !sameRotation(c.Orientation(), want) {
		t.Errorf("orientation %v, want %v", c.Orientation(), want)
	}
}

func TestResolveSnapsDrift(t *testing.T) {
	spacing := 0.82
	pivot := mgl64.Vec3{spacing, spacing, spacing}
	c := &Cube{position: mgl64.Vec3{2*spacing + 1e-7, -1e-7, spacing}, spacing: spacing}
	ResolvePositions([]*Cube{c}, AxisZ, math.Pi/2, pivot, spacing)
	want := mgl64.Vec3{2 * spacing, 2 * spacing, spacing}
	if c.Position() != want {
		t.Errorf("position %v, want exactly %v", c.Position(), want)
	}
}
