package gocube

import (
	"fmt"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Axis is one of the three lattice axes.
type Axis int

const (
	AxisX Axis = 0
	AxisY Axis = 1
	AxisZ Axis = 2
)

// Axes lists every axis in X, Y, Z order.
var Axes = []Axis{AxisX, AxisY, AxisZ}

func (a Axis) String() string {
	switch a {
	case AxisX:
		return "X"
	case AxisY:
		return "Y"
	case AxisZ:
		return "Z"
	default:
		return "?"
	}
}

// Unit returns the positive unit vector of the axis.
func (a Axis) Unit() mgl64.Vec3 {
	switch a {
	case AxisY:
		return mgl64.Vec3{0, 1, 0}
	case AxisZ:
		return mgl64.Vec3{0, 0, 1}
	default:
		return mgl64.Vec3{1, 0, 0}
	}
}

// Valid reports whether a is X, Y or Z.
func (a Axis) Valid() bool {
	return a >= AxisX && a <= AxisZ
}

// ParseAxis parses "x", "y" or "z" (any case).
func ParseAxis(s string) (Axis, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "x":
		return AxisX, nil
	case "y":
		return AxisY, nil
	case "z":
		return AxisZ, nil
	default:
		return 0, fmt.Errorf("%w: unknown axis %q", ErrInvalidOption, s)
	}
}

// Direction is the sense of a quarter turn about an axis.
//
// Clockwise is a +90° rotation about the positive axis and CounterClockwise
// is -90°. The names follow the browser prototype this viewer replaces; they
// are a labelling convention, not a claim about how the turn looks from any
// particular side.
type Direction int

const (
	Clockwise        Direction = 1
	CounterClockwise Direction = -1
)

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "cw"
	case CounterClockwise:
		return "ccw"
	default:
		return "?"
	}
}

// Angle returns the signed rotation in radians, ±π/2.
func (d Direction) Angle() float64 {
	if d == CounterClockwise {
		return -math.Pi / 2
	}
	return math.Pi / 2
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	if d == CounterClockwise {
		return Clockwise
	}
	return CounterClockwise
}

// ParseDirection parses "cw"/"clockwise" or "ccw"/"counter-clockwise".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cw", "clockwise", "+":
		return Clockwise, nil
	case "ccw", "counter-clockwise", "counterclockwise", "-":
		return CounterClockwise, nil
	default:
		return 0, fmt.Errorf("%w: unknown direction %q", ErrInvalidOption, s)
	}
}

// component returns the coordinate of v along a.
func component(v mgl64.Vec3, a Axis) float64 {
	return v[a]
}
