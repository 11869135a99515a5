package gocube

import (
	"fmt"
	"strings"
)

// Easing maps linear progress in [0,1] to eased progress in [0,1].
type Easing func(t float64) float64

// Linear is the identity curve.
func Linear(t float64) float64 {
	return clamp01(t)
}

// QuadraticInOut accelerates through the first half and decelerates
// through the second.
func QuadraticInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 2 * t * t
	}
	return -1 + (4-2*t)*t
}

// CubicInOut is a steeper in/out curve.
func CubicInOut(t float64) float64 {
	t = clamp01(t)
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := 2*t - 2
	return 1 + u*u*u/2
}

// Smoothstep is 3t² - 2t³.
func Smoothstep(t float64) float64 {
	t = clamp01(t)
	return t * t * (3 - 2*t)
}

// Smootherstep is 6t⁵ - 15t⁴ + 10t³.
func Smootherstep(t float64) float64 {
	t = clamp01(t)
	return t * t * t * (t*(t*6-15) + 10)
}

var easings = map[string]Easing{
	"linear":           Linear,
	"quadratic-in-out": QuadraticInOut,
	"cubic-in-out":     CubicInOut,
	"smoothstep":       Smoothstep,
	"smootherstep":     Smootherstep,
}

// EasingNames lists the names accepted by ParseEasing.
func EasingNames() []string {
	return []string{"linear", "quadratic-in-out", "cubic-in-out", "smoothstep", "smootherstep"}
}

// ParseEasing looks up an easing curve by name. An empty name selects
// QuadraticInOut.
func ParseEasing(name string) (Easing, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return QuadraticInOut, nil
	}
	e, ok := easings[name]
	if !ok {
		return nil, fmt.Errorf("%w: unknown easing %q", ErrInvalidOption, name)
	}
	return e, nil
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
