package gocube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Box is an axis-aligned bounding box.
type Box struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// BoxAround returns the cube-shaped box of the given half size centred on p.
func BoxAround(p mgl64.Vec3, half float64) Box {
	h := mgl64.Vec3{half, half, half}
	return Box{Min: p.Sub(h), Max: p.Add(h)}
}

// Intersect tests the ray against the box using the slab method and returns
// the entry distance. A ray starting inside the box hits at distance 0.
func (b Box) Intersect(r Ray) (float64, bool) {
	tMin, tMax := 0.0, math.Inf(1)
	for axis := 0; axis < 3; axis++ {
		origin, dir := r.Origin[axis], r.Direction[axis]

		if math.Abs(dir) < 1e-12 {
			if origin < b.Min[axis] || origin > b.Max[axis] {
				return 0, false
			}
			continue
		}

		inv := 1 / dir
		t1 := (b.Min[axis] - origin) * inv
		t2 := (b.Max[axis] - origin) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tMin = math.Max(tMin, t1)
		tMax = math.Min(tMax, t2)
		if tMax < tMin {
			return 0, false
		}
	}
	return tMin, true
}

// Pick casts a ray through ndc and returns the nearest cube it hits,
// testing each cube's box at its displayed position. Nothing is mutated.
func Pick(ndc mgl64.Vec2, cam Camera, cubes []*Cube, cubeSize float64) (*Cube, float64, bool) {
	return PickRay(cam.Ray(ndc), cubes, cubeSize)
}

// PickRay is Pick for an explicit ray.
func PickRay(r Ray, cubes []*Cube, cubeSize float64) (*Cube, float64, bool) {
	var (
		best     *Cube
		bestDist = math.Inf(1)
	)
	half := cubeSize / 2
	for _, c := range cubes {
		t, ok := BoxAround(c.DisplayPosition(), half).Intersect(r)
		if ok && t < bestDist {
			best, bestDist = c, t
		}
	}
	if best == nil {
		return nil, 0, false
	}
	return best, bestDist, true
}
