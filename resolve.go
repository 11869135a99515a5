package gocube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ResolvePositions moves each cube to the slot it reaches after rotating by
// angle radians about axis through pivot, then snaps every coordinate to the
// nearest multiple of spacing so no floating-point drift accumulates.
//
// For a ±90° turn of one layer the result is a permutation of the layer's
// slots.
func ResolvePositions(cubes []*Cube, axis Axis, angle float64, pivot mgl64.Vec3, spacing float64) {
	q := mgl64.QuatRotate(angle, axis.Unit())
	for _, c := range cubes {
		offset := c.position.Sub(pivot)
		p := pivot.Add(q.Rotate(offset))
		c.position = snap(p, spacing)
	}
}

func snap(p mgl64.Vec3, spacing float64) mgl64.Vec3 {
	for i := 0; i < 3; i++ {
		p[i] = math.Round(p[i]/spacing) * spacing
	}
	return p
}
