package gocube

import (
	"errors"
	"testing"
)

func TestEveryLayerHoldsNineCubes(t *testing.T) {
	l := newTestLattice(t)
	for _, axis := range Axes {
		for i := 0; i < GridSize; i++ {
			layer, err := l.LayerAt(axis, i)
			if err != nil {
				t.Errorf("%s%d: %v", axis, i, err)
				continue
			}
			for _, c := range layer {
				if c.Grid()[axis] != i {
					t.Errorf("%s%d selected %s", axis, i, c)
				}
			}
		}
	}
}

func TestLayersPartitionLattice(t *testing.T) {
	l := newTestLattice(t)
	for _, axis := range Axes {
		count := make(map[*Cube]int)
		for i := 0; i < GridSize; i++ {
			layer, _ := l.LayerAt(axis, i)
			for _, c := range layer {
				count[c]++
			}
		}
		if len(count) != CubeCount {
			t.Errorf("%s layers cover %d cubes", axis, len(count))
		}
		for c, n := range count {
			if n != 1 {
				t.Errorf("%s selected in %d %s layers", c, n, axis)
			}
		}
	}
}

func TestSelectLayerTolerance(t *testing.T) {
	l := newTestLattice(t)
	eps := l.Tolerance()
	// Just inside ε still selects the layer, just outside selects nothing.
	if got := len(SelectLayer(l.Cubes(), AxisY, 0.82+eps*0.99, eps)); got != LayerSize {
		t.Errorf("inside tolerance: got %d cubes", got)
	}
	if got := len(SelectLayer(l.Cubes(), AxisY, 0.82+eps*1.01, eps)); got != 0 {
		t.Errorf("outside tolerance: got %d cubes", got)
	}
}

func TestLayerReportsMalformed(t *testing.T) {
	l := newTestLattice(t)
	l.CubeAt([3]int{2, 0, 0}).position[0] = 0.41

	layer, err := l.LayerAt(AxisX, 2)
	if !errors.Is(err, ErrMalformedLayer) {
		t.Fatalf("got %v, want ErrMalformedLayer", err)
	}
	if len(layer) != LayerSize-1 {
		t.Errorf("got %d cubes, want %d", len(layer), LayerSize-1)
	}
}

func TestLayerDoesNotMutate(t *testing.T) {
	l := newTestLattice(t)
	before := slots(l.Cubes())
	for _, axis := range Axes {
		l.LayerAt(axis, 1)
	}
	for id, g := range slots(l.Cubes()) {
		if before[id] != g {
			t.Errorf("cube %s moved from %v to %v", id, before[id], g)
		}
	}
}
