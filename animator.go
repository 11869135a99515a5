package gocube

import (
	"fmt"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// AnimationState is the global turn state.
type AnimationState int

const (
	StateIdle AnimationState = iota
	StateRotating
)

// String returns the string representation of the animation state.
func (s AnimationState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRotating:
		return "rotating-layer"
	default:
		return "unknown"
	}
}

// TurnEvent describes a completed turn.
type TurnEvent struct {
	Turn    LayerTurn
	Cubes   []*Cube
	Elapsed time.Duration // animation time from start to completion

	// Discarded is set by Controller when the lattice was reset while the
	// turn was in flight.
	Discarded bool
}

// Animator drives one layer turn at a time.
//
// Start captures the turn and enqueues one tween per cube; Advance is called
// once per frame and steps every tween in sequence. When the last tween of
// the layer completes the animator resolves the layer's new slots, returns
// to idle and notifies its listeners. A turn cannot be cancelled.
type Animator struct {
	duration time.Duration
	easing   Easing
	pivot    mgl64.Vec3
	spacing  float64
	eps      float64

	state     AnimationState
	turn      LayerTurn
	layer     []*Cube
	tweens    []*tween
	completed int
	elapsed   time.Duration

	onComplete []func(TurnEvent)
}

// NewAnimator creates an idle animator. Geometry options determine the
// pivot and snap spacing; animation options the duration and easing.
func NewAnimator(opts ...Option) (*Animator, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	return newAnimator(cfg), nil
}

func newAnimator(cfg *config) *Animator {
	s := cfg.spacing()
	return &Animator{
		duration: cfg.duration,
		easing:   cfg.easing,
		pivot:    mgl64.Vec3{s, s, s},
		spacing:  s,
		eps:      cfg.eps(),
		state:    StateIdle,
	}
}

// OnComplete registers a callback fired after each completed turn, once the
// layer's positions have been resolved.
func (a *Animator) OnComplete(cb func(TurnEvent)) {
	a.onComplete = append(a.onComplete, cb)
}

// State returns the current animation state.
func (a *Animator) State() AnimationState {
	return a.state
}

// Idle reports whether a new turn may start.
func (a *Animator) Idle() bool {
	return a.state == StateIdle
}

// Current returns the in-flight turn, if any.
func (a *Animator) Current() (LayerTurn, bool) {
	if a.state != StateRotating {
		return LayerTurn{}, false
	}
	return a.turn, true
}

// Progress returns the linear progress of the in-flight turn in [0,1],
// or 0 when idle.
func (a *Animator) Progress() float64 {
	if a.state != StateRotating {
		return 0
	}
	return clamp01(float64(a.elapsed) / float64(a.duration))
}

// Completed returns how many cubes of the in-flight layer have finished.
func (a *Animator) Completed() int {
	return a.completed
}

// Start begins turning layer. It returns ErrBusy while another turn is in
// flight, ErrInvalidNotation for a turn outside the lattice, ErrEmptyLayer
// for an empty layer and ErrMalformedLayer when a cube does not rest on the
// turned layer. Nothing changes on error.
func (a *Animator) Start(turn LayerTurn, layer []*Cube) error {
	if a.state == StateRotating {
		return ErrBusy
	}
	if !turn.Valid() {
		return fmt.Errorf("%w: axis %d layer %d direction %d", ErrInvalidNotation, turn.Axis, turn.Layer, turn.Direction)
	}
	if len(layer) == 0 {
		return ErrEmptyLayer
	}
	fixed := float64(turn.Layer) * a.spacing
	for _, c := range layer {
		if math.Abs(component(c.Position(), turn.Axis)-fixed) > a.eps {
			return fmt.Errorf("%w: %s is not on layer %s%d", ErrMalformedLayer, c, turn.Axis, turn.Layer)
		}
	}

	quarter := mgl64.QuatRotate(turn.Direction.Angle(), turn.Axis.Unit())

	a.turn = turn
	a.layer = append([]*Cube(nil), layer...)
	a.completed = 0
	a.elapsed = 0
	a.tweens = make([]*tween, len(a.layer))
	for i, c := range a.layer {
		c.pivot = a.pivot
		a.tweens[i] = newTween(c, quarter, a.duration, a.easing, a.tweenDone)
	}
	a.state = StateRotating
	return nil
}

// Advance steps the in-flight turn by dt. It is a no-op when idle.
func (a *Animator) Advance(dt time.Duration) {
	if a.state != StateRotating {
		return
	}
	if dt > 0 {
		a.elapsed += dt
	}
	tweens := a.tweens
	for _, tw := range tweens {
		tw.advance(dt)
	}
}

func (a *Animator) tweenDone(*Cube) {
	a.completed++
	if a.completed == len(a.layer) {
		a.finish()
	}
}

func (a *Animator) finish() {
	ResolvePositions(a.layer, a.turn.Axis, a.turn.Direction.Angle(), a.pivot, a.spacing)

	ev := TurnEvent{
		Turn:    a.turn,
		Cubes:   a.layer,
		Elapsed: a.elapsed,
	}

	a.state = StateIdle
	a.layer = nil
	a.tweens = nil

	for _, cb := range a.onComplete {
		cb(ev)
	}
}
