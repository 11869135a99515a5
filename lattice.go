package gocube

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// GridSize is the number of slots along each lattice axis.
const GridSize = 3

// CubeCount is the number of cubes in a full lattice.
const CubeCount = GridSize * GridSize * GridSize

// LayerSize is the number of cubes in one layer.
const LayerSize = GridSize * GridSize

// Lattice owns the 27 cubes and their slots.
type Lattice struct {
	cfg   *config
	cubes []*Cube
}

// NewLattice builds a solved lattice.
func NewLattice(opts ...Option) (*Lattice, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	l := &Lattice{cfg: cfg}
	l.build()
	return l, nil
}

// build creates the center cube first, then the 26 others in x, y, z order.
func (l *Lattice) build() {
	spacing := l.cfg.spacing()
	pivot := l.Center()

	cubes := make([]*Cube, 0, CubeCount)
	cubes = append(cubes, newCube(0, [3]int{1, 1, 1}, spacing, pivot))
	for x := 0; x < GridSize; x++ {
		for y := 0; y < GridSize; y++ {
			for z := 0; z < GridSize; z++ {
				if x == 1 && y == 1 && z == 1 {
					continue
				}
				cubes = append(cubes, newCube(len(cubes), [3]int{x, y, z}, spacing, pivot))
			}
		}
	}
	l.cubes = cubes
}

// Reset discards every cube and rebuilds the solved lattice. Cubes handed
// out before the reset are no longer part of the lattice.
func (l *Lattice) Reset() {
	l.build()
}

// Cubes returns the cubes in construction order. The slice is a copy; the
// cubes are shared.
func (l *Lattice) Cubes() []*Cube {
	out := make([]*Cube, len(l.cubes))
	copy(out, l.cubes)
	return out
}

// CubeAt returns the cube resting in the given slot, or nil.
func (l *Lattice) CubeAt(grid [3]int) *Cube {
	for _, c := range l.cubes {
		if c.Grid() == grid {
			return c
		}
	}
	return nil
}

// Contains reports whether c belongs to the current lattice.
func (l *Lattice) Contains(c *Cube) bool {
	for _, cc := range l.cubes {
		if cc == c {
			return true
		}
	}
	return false
}

// CenterCube returns the black center cube.
func (l *Lattice) CenterCube() *Cube {
	for _, c := range l.cubes {
		if c.center {
			return c
		}
	}
	return nil
}

// Center returns the pivot of every turn in world units: slot (1,1,1)
// scaled by the spacing. It is also the camera orbit target.
func (l *Lattice) Center() mgl64.Vec3 {
	s := l.cfg.spacing()
	return mgl64.Vec3{s, s, s}
}

// Spacing returns cube size plus gap.
func (l *Lattice) Spacing() float64 {
	return l.cfg.spacing()
}

// CubeSize returns the edge length of one cube.
func (l *Lattice) CubeSize() float64 {
	return l.cfg.cubeSize
}

// Tolerance returns the layer-selection tolerance ε.
func (l *Lattice) Tolerance() float64 {
	return l.cfg.eps()
}

// LayerCoordinate returns the world coordinate of layer index 0..2.
func (l *Lattice) LayerCoordinate(layer int) float64 {
	return float64(layer) * l.cfg.spacing()
}

// LayerIndex converts a world coordinate back to a layer index.
func (l *Lattice) LayerIndex(coord float64) int {
	return int(math.Round(coord / l.cfg.spacing()))
}

// Validate checks that the resting slots form the full 3x3x3 grid with no
// duplicates, and that every position sits exactly on a slot.
func (l *Lattice) Validate() error {
	if len(l.cubes) != CubeCount {
		return fmt.Errorf("%w: %d cubes", ErrInvalidLattice, len(l.cubes))
	}
	spacing := l.cfg.spacing()
	seen := make(map[[3]int]*Cube, CubeCount)
	for _, c := range l.cubes {
		g := c.Grid()
		for i := 0; i < 3; i++ {
			if g[i] < 0 || g[i] >= GridSize {
				return fmt.Errorf("%w: %s out of range", ErrInvalidLattice, c)
			}
			if math.Abs(c.position[i]-float64(g[i])*spacing) > 1e-9 {
				return fmt.Errorf("%w: %s is off its slot", ErrInvalidLattice, c)
			}
		}
		if other, ok := seen[g]; ok {
			return fmt.Errorf("%w: %s and %s share a slot", ErrInvalidLattice, c, other)
		}
		seen[g] = c
	}
	return nil
}

// Solved reports whether every cube rests in its home slot with its
// original orientation.
func (l *Lattice) Solved() bool {
	ident := mgl64.QuatIdent()
	for _, c := range l.cubes {
		if c.Grid() != c.home {
			return false
		}
		if math.Abs(math.Abs(c.orientation.Dot(ident))-1) > 1e-9 {
			return false
		}
	}
	return true
}

// String renders the three Y slabs, top first, each as a 3x3 grid of cube
// labels with X to the right and Z downwards.
//
//	y=2        y=1        y=0
//	03 12 21   02 11 20   01 10 19
//	...
func (l *Lattice) String() string {
	var b strings.Builder
	for y := GridSize - 1; y >= 0; y-- {
		fmt.Fprintf(&b, "%-8s", fmt.Sprintf("y=%d", y))
		if y > 0 {
			b.WriteString("   ")
		}
	}
	b.WriteString("\n")
	for z := 0; z < GridSize; z++ {
		for y := GridSize - 1; y >= 0; y-- {
			for x := 0; x < GridSize; x++ {
				label := ".."
				if c := l.CubeAt([3]int{x, y, z}); c != nil {
					label = c.Label()
				}
				b.WriteString(label)
				if x < GridSize-1 {
					b.WriteString(" ")
				}
			}
			if y > 0 {
				b.WriteString("   ")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}
