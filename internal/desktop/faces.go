package desktop

import (
	"sort"

	"github.com/go-gl/mathgl/mgl64"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

// quad is one visible cube face projected to screen pixels.
type quad struct {
	pts      [4]mgl64.Vec2
	depth    float64 // eye distance to the face centre
	color    gocube.Color
	selected bool
}

var faces = [6]gocube.CubeFace{
	gocube.FacePosX, gocube.FaceNegX,
	gocube.FacePosY, gocube.FaceNegY,
	gocube.FacePosZ, gocube.FaceNegZ,
}

// corner signs walk a face outline in order.
var cornerSigns = [4][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}

// buildQuads projects every front-facing cube face into a w×h viewport and
// returns them far to near, ready for painter's-algorithm drawing.
func buildQuads(cubes []*gocube.Cube, sel *gocube.Cube, cam gocube.Camera, cubeSize, w, h float64) []quad {
	half := cubeSize / 2
	out := make([]quad, 0, len(cubes)*3)

	for _, c := range cubes {
		pos := c.DisplayPosition()
		rot := c.DisplayOrientation()
		colors := c.Colors()

	face:
		for _, f := range faces {
			n := f.Normal()
			normal := rot.Rotate(n)
			centre := pos.Add(normal.Mul(half))
			if normal.Dot(cam.Eye.Sub(centre)) <= 0 {
				continue
			}

			u, v := faceAxes(n)
			q := quad{
				depth:    cam.Eye.Sub(centre).Len(),
				color:    colors[f],
				selected: c == sel,
			}
			for i, s := range cornerSigns {
				local := n.Add(u.Mul(s[0])).Add(v.Mul(s[1])).Mul(half)
				ndc, ok := cam.Project(pos.Add(rot.Rotate(local)))
				if !ok {
					continue face
				}
				x, y := gocube.NDCToScreen(mgl64.Vec2{ndc[0], ndc[1]}, w, h)
				q.pts[i] = mgl64.Vec2{x, y}
			}
			out = append(out, q)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].depth > out[j].depth
	})
	return out
}

// faceAxes returns the two in-plane axes of the face with normal n.
func faceAxes(n mgl64.Vec3) (mgl64.Vec3, mgl64.Vec3) {
	switch {
	case n[0] != 0:
		return mgl64.Vec3{0, 1, 0}, mgl64.Vec3{0, 0, 1}
	case n[1] != 0:
		return mgl64.Vec3{0, 0, 1}, mgl64.Vec3{1, 0, 0}
	default:
		return mgl64.Vec3{1, 0, 0}, mgl64.Vec3{0, 1, 0}
	}
}
