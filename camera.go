package gocube

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera looking at Target.
type Camera struct {
	Eye    mgl64.Vec3
	Target mgl64.Vec3
	Up     mgl64.Vec3
	FovY   float64 // vertical field of view in degrees
	Aspect float64 // width / height
	Near   float64
	Far    float64
}

// DefaultCamera returns the camera the viewers start with, looking at
// target from the upper front right.
func DefaultCamera(target mgl64.Vec3, aspect float64) Camera {
	if aspect <= 0 {
		aspect = 1
	}
	return Camera{
		Eye:    target.Add(mgl64.Vec3{2.62, 2.94, 2.89}),
		Target: target,
		Up:     mgl64.Vec3{0, 1, 0},
		FovY:   70,
		Aspect: aspect,
		Near:   0.1,
		Far:    100,
	}
}

// View returns the world-to-camera matrix.
func (c Camera) View() mgl64.Mat4 {
	return mgl64.LookAtV(c.Eye, c.Target, c.Up)
}

// Projection returns the perspective matrix.
func (c Camera) Projection() mgl64.Mat4 {
	return mgl64.Perspective(mgl64.DegToRad(c.FovY), c.Aspect, c.Near, c.Far)
}

// ViewProjection returns Projection * View.
func (c Camera) ViewProjection() mgl64.Mat4 {
	return c.Projection().Mul4(c.View())
}

// Ray is a half-line from Origin along the unit vector Direction.
type Ray struct {
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mgl64.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// Ray returns the pick ray through a point in normalised device
// coordinates, x and y in [-1,1] with +y up.
func (c Camera) Ray(ndc mgl64.Vec2) Ray {
	inv := c.ViewProjection().Inv()
	near := unproject(inv, mgl64.Vec4{ndc[0], ndc[1], -1, 1})
	far := unproject(inv, mgl64.Vec4{ndc[0], ndc[1], 1, 1})
	return Ray{Origin: near, Direction: far.Sub(near).Normalize()}
}

func unproject(inv mgl64.Mat4, p mgl64.Vec4) mgl64.Vec3 {
	w := inv.Mul4x1(p)
	return w.Vec3().Mul(1 / w[3])
}

// Project maps a world point to normalised device coordinates. The z
// component is depth in [-1,1]. ok is false for points behind the camera.
func (c Camera) Project(p mgl64.Vec3) (ndc mgl64.Vec3, ok bool) {
	clip := c.ViewProjection().Mul4x1(p.Vec4(1))
	if clip[3] <= 1e-9 {
		return mgl64.Vec3{}, false
	}
	return clip.Vec3().Mul(1 / clip[3]), true
}

// Distance returns how far the eye is from the target.
func (c Camera) Distance() float64 {
	return c.Eye.Sub(c.Target).Len()
}

// Orbit swings the eye around the target by yaw about world Y and pitch
// towards the poles, both in radians. Pitch stops short of the poles.
func (c *Camera) Orbit(yaw, pitch float64) {
	off := c.Eye.Sub(c.Target)
	r := off.Len()
	if r == 0 {
		return
	}
	theta := math.Atan2(off[0], off[2]) + yaw
	phi := math.Acos(mgl64.Clamp(off[1]/r, -1, 1)) - pitch
	phi = mgl64.Clamp(phi, 0.05, math.Pi-0.05)

	c.Eye = c.Target.Add(mgl64.Vec3{
		r * math.Sin(phi) * math.Sin(theta),
		r * math.Cos(phi),
		r * math.Sin(phi) * math.Cos(theta),
	})
}

// Zoom scales the eye distance by factor, clamped to [min, max].
func (c *Camera) Zoom(factor, min, max float64) {
	off := c.Eye.Sub(c.Target)
	r := mgl64.Clamp(off.Len()*factor, min, max)
	c.Eye = c.Target.Add(off.Normalize().Mul(r))
}

// ScreenToNDC converts a pixel position in a w×h viewport (origin top
// left) to normalised device coordinates.
func ScreenToNDC(x, y, w, h float64) mgl64.Vec2 {
	return mgl64.Vec2{2*x/w - 1, 1 - 2*y/h}
}

// NDCToScreen is the inverse of ScreenToNDC.
func NDCToScreen(ndc mgl64.Vec2, w, h float64) (x, y float64) {
	return (ndc[0] + 1) * w / 2, (1 - ndc[1]) * h / 2
}
