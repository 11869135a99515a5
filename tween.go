package gocube

import (
	"time"

	"github.com/go-gl/mathgl/mgl64"
)

// tween interpolates one cube's swing from identity to a quarter turn.
type tween struct {
	cube     *Cube
	target   mgl64.Quat
	duration time.Duration
	elapsed  time.Duration
	easing   Easing

	done       bool
	onComplete func(*Cube)
}

func newTween(c *Cube, target mgl64.Quat, d time.Duration, e Easing, onComplete func(*Cube)) *tween {
	return &tween{
		cube:       c,
		target:     target,
		duration:   d,
		easing:     e,
		onComplete: onComplete,
	}
}

// advance moves the tween forward by dt. On the step that reaches the end
// it folds the swing into the cube's orientation and fires onComplete; later
// calls are no-ops, so completion is reported exactly once.
func (tw *tween) advance(dt time.Duration) {
	if tw.done {
		return
	}
	if dt > 0 {
		tw.elapsed += dt
	}

	p := 1.0
	if tw.elapsed < tw.duration {
		p = float64(tw.elapsed) / float64(tw.duration)
	}

	if p < 1 {
		tw.cube.swing = mgl64.QuatSlerp(mgl64.QuatIdent(), tw.target, tw.easing(p))
		return
	}

	tw.done = true
	tw.cube.orientation = tw.target.Mul(tw.cube.orientation).Normalize()
	tw.cube.swing = mgl64.QuatIdent()
	if tw.onComplete != nil {
		tw.onComplete(tw.cube)
	}
}
