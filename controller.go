package gocube

import (
	"fmt"
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// Controller owns a lattice, its animator and the selection, and turns
// user input into layer turns. It is not safe for concurrent use: each
// front end drives it from a single goroutine.
type Controller struct {
	cfg       *config
	lattice   *Lattice
	animator  *Animator
	selection Selection
	frame     uint64

	onStart []func(LayerTurn)
	onTurn  []func(TurnEvent)
	onReset []func()
}

// NewController creates a controller around a solved lattice.
func NewController(opts ...Option) (*Controller, error) {
	cfg, err := buildConfig(opts)
	if err != nil {
		return nil, err
	}
	l := &Lattice{cfg: cfg}
	l.build()

	c := &Controller{
		cfg:      cfg,
		lattice:  l,
		animator: newAnimator(cfg),
	}
	c.animator.OnComplete(c.turnDone)
	return c, nil
}

// OnTurnStart registers a callback fired when a turn is accepted.
func (c *Controller) OnTurnStart(cb func(LayerTurn)) {
	c.onStart = append(c.onStart, cb)
}

// OnTurnComplete registers a callback fired when a turn has finished and
// positions are resolved.
func (c *Controller) OnTurnComplete(cb func(TurnEvent)) {
	c.onTurn = append(c.onTurn, cb)
}

// OnReset registers a callback fired after the lattice is rebuilt.
func (c *Controller) OnReset(cb func()) {
	c.onReset = append(c.onReset, cb)
}

// Lattice returns the lattice.
func (c *Controller) Lattice() *Lattice {
	return c.lattice
}

// Animator returns the animator.
func (c *Controller) Animator() *Animator {
	return c.animator
}

// KeyMap returns the active key bindings.
func (c *Controller) KeyMap() KeyMap {
	return c.cfg.keyMap
}

// State returns the animation state.
func (c *Controller) State() AnimationState {
	return c.animator.State()
}

// Idle reports whether a turn may start.
func (c *Controller) Idle() bool {
	return c.animator.Idle()
}

// Frame returns the number of ticks so far.
func (c *Controller) Frame() uint64 {
	return c.frame
}

// Selected returns the selected cube, or nil.
func (c *Controller) Selected() *Cube {
	return c.selection.Selected()
}

// Select makes cube the selection. Cubes that are not part of the current
// lattice are rejected with ErrNoSelection.
func (c *Controller) Select(cube *Cube) error {
	if cube == nil || !c.lattice.Contains(cube) {
		return ErrNoSelection
	}
	c.selection.Select(cube)
	return nil
}

// SelectAt selects the cube resting in grid.
func (c *Controller) SelectAt(grid [3]int) error {
	return c.Select(c.lattice.CubeAt(grid))
}

// Pick selects the nearest cube under ndc. A miss leaves the selection
// unchanged and returns false.
func (c *Controller) Pick(ndc mgl64.Vec2, cam Camera) (*Cube, bool) {
	cube, _, ok := Pick(ndc, cam, c.lattice.cubes, c.cfg.cubeSize)
	if !ok {
		return nil, false
	}
	c.selection.Select(cube)
	return cube, true
}

// ClearSelection empties the selection.
func (c *Controller) ClearSelection() {
	c.selection.Clear()
}

// HandleKey turns the selected cube's layer according to the key map.
func (c *Controller) HandleKey(code string) error {
	b, ok := c.cfg.keyMap.Lookup(code)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, code)
	}
	return c.Rotate(b.Axis, b.Direction)
}

// Rotate turns the layer through the selected cube about axis. The layer
// is fixed by the selection's resting position at this moment.
func (c *Controller) Rotate(axis Axis, dir Direction) error {
	sel := c.selection.Selected()
	if sel == nil {
		return ErrNoSelection
	}
	if !c.animator.Idle() {
		return ErrBusy
	}
	layer := c.lattice.LayerIndex(component(sel.Position(), axis))
	return c.Turn(LayerTurn{Axis: axis, Layer: layer, Direction: dir})
}

// Turn starts t without needing a selection. While another turn is in
// flight it returns ErrBusy and nothing changes.
func (c *Controller) Turn(t LayerTurn) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %+v", ErrInvalidNotation, t)
	}
	if !c.animator.Idle() {
		return ErrBusy
	}
	cubes, err := c.lattice.LayerAt(t.Axis, t.Layer)
	if err != nil {
		return err
	}
	if t.Time.IsZero() {
		t.Time = time.Now()
	}
	if err := c.animator.Start(t, cubes); err != nil {
		return err
	}
	for _, cb := range c.onStart {
		cb(t)
	}
	return nil
}

// Tick advances the animation by one frame of length dt.
func (c *Controller) Tick(dt time.Duration) {
	c.frame++
	c.animator.Advance(dt)
}

// Settle ticks in steps of step until the controller is idle and returns
// the number of frames it took.
func (c *Controller) Settle(step time.Duration) int {
	if step <= 0 {
		step = time.Second / 60
	}
	frames := 0
	for !c.animator.Idle() {
		c.Tick(step)
		frames++
	}
	return frames
}

// Apply performs turns one after the other, settling each with step.
// It stops at the first rejected turn.
func (c *Controller) Apply(step time.Duration, turns ...LayerTurn) error {
	for _, t := range turns {
		c.Settle(step)
		if err := c.Turn(t); err != nil {
			return fmt.Errorf("turn %s: %w", t, err)
		}
		c.Settle(step)
	}
	return nil
}

// Reset rebuilds the solved lattice and clears the selection. A turn in
// flight keeps running on the discarded cubes until it completes.
func (c *Controller) Reset() {
	c.lattice.Reset()
	c.selection.Clear()
	for _, cb := range c.onReset {
		cb()
	}
}

func (c *Controller) turnDone(ev TurnEvent) {
	if len(ev.Cubes) > 0 && !c.lattice.Contains(ev.Cubes[0]) {
		ev.Discarded = true
	}
	for _, cb := range c.onTurn {
		cb(ev)
	}
}

// CubeView is the render state of one cube.
type CubeView struct {
	ID         string     `json:"id"`
	Index      int        `json:"index"`
	Grid       [3]int     `json:"grid"`
	Position   [3]float64 `json:"position"`   // displayed position
	Quaternion [4]float64 `json:"quaternion"` // displayed orientation as x, y, z, w
	Center     bool       `json:"center"`
	Selected   bool       `json:"selected"`
	Colors     [6]string  `json:"colors"`
}

// Frame is a snapshot of everything a front end needs to draw.
type Frame struct {
	FrameID  uint64     `json:"frame_id"`
	State    string     `json:"state"`
	Selected string     `json:"selected,omitempty"`
	Turn     string     `json:"turn,omitempty"`
	Progress float64    `json:"progress"`
	Cubes    []CubeView `json:"cubes"`
}

// Snapshot captures the current frame.
func (c *Controller) Snapshot() Frame {
	f := Frame{
		FrameID:  c.frame,
		State:    c.animator.State().String(),
		Progress: c.animator.Progress(),
		Cubes:    make([]CubeView, 0, len(c.lattice.cubes)),
	}
	if t, ok := c.animator.Current(); ok {
		f.Turn = t.Notation()
	}
	if sel := c.selection.Selected(); sel != nil {
		f.Selected = sel.ID.String()
	}
	for _, cube := range c.lattice.cubes {
		p := cube.DisplayPosition()
		q := cube.DisplayOrientation()
		v := CubeView{
			ID:         cube.ID.String(),
			Index:      cube.Index,
			Grid:       cube.Grid(),
			Position:   [3]float64{p[0], p[1], p[2]},
			Quaternion: [4]float64{q.V[0], q.V[1], q.V[2], q.W},
			Center:     cube.center,
			Selected:   c.selection.Is(cube),
		}
		for i, col := range cube.colors {
			v.Colors[i] = col.String()
		}
		f.Cubes = append(f.Cubes, v)
	}
	return f
}
