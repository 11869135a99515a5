package gocube

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/google/uuid"
)

// Color is a 24-bit RGB face colour.
type Color uint32

const (
	Red    Color = 0xd61a3c // +X face
	Orange Color = 0xe27429 // -X face
	Blue   Color = 0x3e8fed // +Y face
	Green  Color = 0x4fbf26 // -Y face
	White  Color = 0xf9f9f3 // +Z face
	Yellow Color = 0xfed000 // -Z face
	Black  Color = 0x000000 // every face of the center cube
)

// String returns the colour as a CSS hex string, e.g. "#d61a3c".
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// RGB returns the colour channels.
func (c Color) RGB() (r, g, b uint8) {
	return uint8(c >> 16), uint8(c >> 8), uint8(c)
}

// CubeFace indexes the six faces of a cube in +X, -X, +Y, -Y, +Z, -Z order.
type CubeFace int

const (
	FacePosX CubeFace = 0
	FaceNegX CubeFace = 1
	FacePosY CubeFace = 2
	FaceNegY CubeFace = 3
	FacePosZ CubeFace = 4
	FaceNegZ CubeFace = 5
)

// Normal returns the outward unit normal of the face in the cube's own frame.
func (f CubeFace) Normal() mgl64.Vec3 {
	switch f {
	case FacePosX:
		return mgl64.Vec3{1, 0, 0}
	case FaceNegX:
		return mgl64.Vec3{-1, 0, 0}
	case FacePosY:
		return mgl64.Vec3{0, 1, 0}
	case FaceNegY:
		return mgl64.Vec3{0, -1, 0}
	case FacePosZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{0, 0, -1}
	}
}

var faceColors = [6]Color{Red, Orange, Blue, Green, White, Yellow}

// Cube is one rigid unit of the lattice.
//
// Position and orientation only change when a turn of the cube's layer
// completes. While a turn is in flight the cube carries a display-only swing
// so front ends can draw it orbiting the lattice pivot.
type Cube struct {
	ID    uuid.UUID
	Index int // construction order, 0 is the center cube

	center      bool
	home        [3]int
	position    mgl64.Vec3
	orientation mgl64.Quat
	spacing     float64

	// swing is the in-flight part of a turn, identity at rest.
	swing mgl64.Quat
	pivot mgl64.Vec3

	colors [6]Color
}

func newCube(index int, grid [3]int, spacing float64, pivot mgl64.Vec3) *Cube {
	c := &Cube{
		ID:    uuid.New(),
		Index: index,
		home:  grid,
		position: mgl64.Vec3{
			float64(grid[0]) * spacing,
			float64(grid[1]) * spacing,
			float64(grid[2]) * spacing,
		},
		orientation: mgl64.QuatIdent(),
		swing:       mgl64.QuatIdent(),
		spacing:     spacing,
		pivot:       pivot,
		colors:      faceColors,
	}
	if grid == [3]int{1, 1, 1} {
		c.center = true
		for i := range c.colors {
			c.colors[i] = Black
		}
	}
	return c
}

// Position returns the resting world position (grid slot times spacing).
func (c *Cube) Position() mgl64.Vec3 {
	return c.position
}

// Grid returns the discrete lattice slot of the cube.
func (c *Cube) Grid() [3]int {
	var g [3]int
	for i := 0; i < 3; i++ {
		g[i] = int(math.Round(c.position[i] / c.spacing))
	}
	return g
}

// Home returns the slot the cube was built in.
func (c *Cube) Home() [3]int {
	return c.home
}

// Orientation returns the accumulated resting orientation.
func (c *Cube) Orientation() mgl64.Quat {
	return c.orientation
}

// Euler returns the resting orientation as XYZ Euler angles in radians.
func (c *Cube) Euler() mgl64.Vec3 {
	return quatToEulerXYZ(c.orientation)
}

// DisplayPosition returns where the cube should be drawn this frame.
func (c *Cube) DisplayPosition() mgl64.Vec3 {
	return c.pivot.Add(c.swing.Rotate(c.position.Sub(c.pivot)))
}

// DisplayOrientation returns the orientation to draw this frame.
func (c *Cube) DisplayOrientation() mgl64.Quat {
	return c.swing.Mul(c.orientation).Normalize()
}

// IsCenter reports whether this is the fixed center cube.
func (c *Cube) IsCenter() bool {
	return c.center
}

// Colors returns the face colours in CubeFace order.
func (c *Cube) Colors() [6]Color {
	return c.colors
}

// Label returns a short label for text front ends.
func (c *Cube) Label() string {
	if c.center {
		return "##"
	}
	return fmt.Sprintf("%02d", c.Index)
}

func (c *Cube) String() string {
	g := c.Grid()
	return fmt.Sprintf("cube %s (%d,%d,%d)", c.Label(), g[0], g[1], g[2])
}

// quatToEulerXYZ decomposes q into intrinsic XYZ angles, the order three.js
// uses for Object3D.rotation.
func quatToEulerXYZ(q mgl64.Quat) mgl64.Vec3 {
	m := q.Mat4()
	// Column-major: m[col*4+row].
	m11, m12, m13 := m[0], m[4], m[8]
	m22, m23 := m[5], m[9]
	m32, m33 := m[6], m[10]

	y := math.Asin(mgl64.Clamp(m13, -1, 1))
	var x, z float64
	if math.Abs(m13) < 0.9999999 {
		x = math.Atan2(-m23, m33)
		z = math.Atan2(-m12, m11)
	} else {
		x = math.Atan2(m32, m22)
		z = 0
	}
	return mgl64.Vec3{x, y, z}
}
