package gocube

import (
	"fmt"
	"math"
)

// SelectLayer returns the cubes whose resting coordinate along axis is
// within eps of fixed. Order follows the input.
func SelectLayer(cubes []*Cube, axis Axis, fixed, eps float64) []*Cube {
	var layer []*Cube
	for _, c := range cubes {
		if math.Abs(component(c.position, axis)-fixed) < eps {
			layer = append(layer, c)
		}
	}
	return layer
}

// Layer selects the layer at world coordinate fixed along axis. A count
// other than 9 means the lattice is corrupted and is reported as
// ErrMalformedLayer together with the selection.
func (l *Lattice) Layer(axis Axis, fixed float64) ([]*Cube, error) {
	layer := SelectLayer(l.cubes, axis, fixed, l.cfg.eps())
	if len(layer) != LayerSize {
		return layer, fmt.Errorf("%w: %s=%.3f selected %d", ErrMalformedLayer, axis, fixed, len(layer))
	}
	return layer, nil
}

// LayerAt selects layer index 0..2 along axis.
func (l *Lattice) LayerAt(axis Axis, layer int) ([]*Cube, error) {
	return l.Layer(axis, l.LayerCoordinate(layer))
}
