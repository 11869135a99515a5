// Package desktop shows the lattice in a native window with ebiten.
package desktop

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog/log"

	gocube "github.com/SeamusWaldron/gocube_lattice"
)

const (
	doubleClickTicks = 18 // 300ms at 60 TPS
	clickSlop        = 4  // pixels
	orbitSpeed       = 0.01
	minDistance      = 2.5
	maxDistance      = 20
)

var background = color.RGBA{0x1e, 0x1e, 0x24, 0xff}

// Game is the ebiten game driving a controller.
type Game struct {
	ctrl *gocube.Controller
	cam  gocube.Camera
	tps  int

	width, height int

	tick         int
	dragging     bool
	lastX, lastY int

	lastClickTick int
	lastClickX    int
	lastClickY    int

	white *ebiten.Image
}

// NewGame creates a game for a width×height window.
func NewGame(ctrl *gocube.Controller, width, height, tps int) *Game {
	if tps <= 0 {
		tps = 60
	}
	return &Game{
		ctrl:          ctrl,
		cam:           gocube.DefaultCamera(ctrl.Lattice().Center(), float64(width)/float64(height)),
		tps:           tps,
		width:         width,
		height:        height,
		lastClickTick: -doubleClickTicks,
	}
}

// Run opens the window and blocks until it is closed.
func Run(ctrl *gocube.Controller, width, height, tps int) error {
	g := NewGame(ctrl, width, height, tps)

	ebiten.SetWindowTitle("GoCube Lattice")
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(g.tps)

	err := ebiten.RunGame(g)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (g *Game) Update() error {
	g.tick++
	g.ctrl.Tick(time.Second / time.Duration(g.tps))

	g.updateMouse()
	g.updateKeys()
	return nil
}

func (g *Game) updateMouse() {
	x, y := ebiten.CursorPosition()

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		if g.tick-g.lastClickTick <= doubleClickTicks &&
			abs(x-g.lastClickX) <= clickSlop && abs(y-g.lastClickY) <= clickSlop {
			g.pick(x, y)
			g.lastClickTick = -doubleClickTicks
		} else {
			g.lastClickTick = g.tick
			g.lastClickX, g.lastClickY = x, y
		}
		g.dragging = true
		g.lastX, g.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.dragging = false
	}
	if g.dragging && (x != g.lastX || y != g.lastY) {
		g.cam.Orbit(-float64(x-g.lastX)*orbitSpeed, -float64(y-g.lastY)*orbitSpeed)
		g.lastX, g.lastY = x, y
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.ctrl.ClearSelection()
	}

	if _, dy := ebiten.Wheel(); dy != 0 {
		g.cam.Zoom(math.Pow(0.9, dy), minDistance, maxDistance)
	}
}

func (g *Game) pick(x, y int) {
	ndc := gocube.ScreenToNDC(float64(x), float64(y), float64(g.width), float64(g.height))
	if c, ok := g.ctrl.Pick(ndc, g.cam); ok {
		log.Debug().Str("cube", c.String()).Msg("picked")
	}
}

func (g *Game) updateKeys() {
	for _, k := range inpututil.AppendJustPressedKeys(nil) {
		code := k.String()
		if _, bound := g.ctrl.KeyMap().Lookup(code); !bound {
			switch k {
			case ebiten.KeyR:
				g.ctrl.Reset()
			case ebiten.KeyEscape:
				g.ctrl.ClearSelection()
			}
			continue
		}
		if err := g.ctrl.HandleKey(code); err != nil {
			log.Debug().Err(err).Str("key", code).Msg("key rejected")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.white == nil {
		g.white = ebiten.NewImage(3, 3)
		g.white.Fill(color.White)
	}
	screen.Fill(background)

	lat := g.ctrl.Lattice()
	quads := buildQuads(lat.Cubes(), g.ctrl.Selected(), g.cam, lat.CubeSize(), float64(g.width), float64(g.height))
	for _, q := range quads {
		g.fillQuad(screen, q)
	}

	ebitenutil.DebugPrint(screen, g.status())
}

func (g *Game) fillQuad(screen *ebiten.Image, q quad) {
	r, gg, b := q.color.RGB()
	cr, cg, cb := float32(r)/255, float32(gg)/255, float32(b)/255
	if q.selected {
		cr, cg, cb = cr*0.6+0.4, cg*0.6+0.4, cb*0.6+0.4
	}

	vertices := make([]ebiten.Vertex, len(q.pts))
	for i, p := range q.pts {
		vertices[i] = ebiten.Vertex{
			DstX:   float32(p[0]),
			DstY:   float32(p[1]),
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: 1,
		}
	}
	indices := []uint16{0, 1, 2, 0, 2, 3}

	op := &ebiten.DrawTrianglesOptions{}
	op.FillRule = ebiten.FillAll
	screen.DrawTriangles(vertices, indices, g.white.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image), op)

	edge := color.RGBA{0x10, 0x10, 0x10, 0xff}
	width := float32(1.5)
	if q.selected {
		edge = color.RGBA{0xff, 0xff, 0xff, 0xff}
		width = 2.5
	}
	for i := range q.pts {
		a, b := q.pts[i], q.pts[(i+1)%len(q.pts)]
		vector.StrokeLine(screen, float32(a[0]), float32(a[1]), float32(b[0]), float32(b[1]), width, edge, true)
	}
}

func (g *Game) status() string {
	var b strings.Builder
	fmt.Fprintf(&b, "state: %s", g.ctrl.State())
	if t, ok := g.ctrl.Animator().Current(); ok {
		fmt.Fprintf(&b, " %s %3.0f%%", t.Notation(), g.ctrl.Animator().Progress()*100)
	}
	if c := g.ctrl.Selected(); c != nil {
		fmt.Fprintf(&b, "\nselected: %s", c)
	}
	b.WriteString("\ndouble-click select, right-click clear, drag orbit, wheel zoom")
	b.WriteString("\nW/S X  A/D Y  Q/E Z  R reset")
	return b.String()
}

// Layout follows the window so the camera aspect tracks resizes.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.cam.Aspect = float64(outsideWidth) / float64(outsideHeight)
	}
	return g.width, g.height
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
