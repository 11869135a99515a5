package gocube

import (
	"errors"
	"math"
	"testing"
)

func TestEasingEndpoints(t *testing.T) {
	for _, name := range EasingNames() {
		e, err := ParseEasing(name)
		if err != nil {
			t.Fatalf("ParseEasing(%q): %v", name, err)
		}
		if got := e(0); math.Abs(got) > 1e-12 {
			t.Errorf("%s(0) = %v", name, got)
		}
		if got := e(1); math.Abs(got-1) > 1e-12 {
			t.Errorf("%s(1) = %v", name, got)
		}
		if got := e(-1); got != e(0) {
			t.Errorf("%s should clamp below 0, got %v", name, got)
		}
		if got := e(2); got != e(1) {
			t.Errorf("%s should clamp above 1, got %v", name, got)
		}
	}
}

func TestEasingMonotonic(t *testing.T) {
	for _, name := range EasingNames() {
		e, _ := ParseEasing(name)
		prev := e(0)
		for i := 1; i <= 100; i++ {
			v := e(float64(i) / 100)
			if v < prev-1e-12 {
				t.Errorf("%s decreases at %d%%", name, i)
				break
			}
			prev = v
		}
	}
}

func TestParseEasing(t *testing.T) {
	e, err := ParseEasing("")
	if err != nil {
		t.Fatalf("empty name: %v", err)
	}
	if e(0.25) != QuadraticInOut(0.25) {
		t.Error("empty name should select quadratic-in-out")
	}
	if _, err := ParseEasing("bounce"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("unknown easing: got %v", err)
	}
}
