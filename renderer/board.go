package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aco/camera"
	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/geom"
	"github.com/pthm-cable/aco/scene"
)

// minTrailAlpha keeps faint trails visible.
const minTrailAlpha = 0.15

// Layers selects optional drawing layers.
type Layers struct {
	Trails     bool
	Footprints bool
	Headings   bool
}

// BoardRenderer draws board elements in screen space through a camera.
type BoardRenderer struct {
	cam     *camera.Camera
	Palette Palette
}

// NewBoardRenderer creates a renderer for the given camera.
func NewBoardRenderer(cam *camera.Camera, p Palette) *BoardRenderer {
	return &BoardRenderer{cam: cam, Palette: p}
}

func (r *BoardRenderer) screen(x, y float64) rl.Vector2 {
	sx, sy := r.cam.WorldToScreen(float32(x), float32(y))
	return rl.Vector2{X: sx, Y: sy}
}

func (r *BoardRenderer) screenRect(g geom.Rect) rl.Rectangle {
	p := r.screen(g.X, g.Y)
	return rl.Rectangle{X: p.X, Y: p.Y, Width: float32(g.W) * r.cam.Zoom, Height: float32(g.H) * r.cam.Zoom}
}

// DrawBounds outlines the enclosing rectangle.
func (r *BoardRenderer) DrawBounds(b geom.Rect) {
	if b.Empty() {
		return
	}
	rl.DrawRectangleLinesEx(r.screenRect(b), 2, r.Palette.Bounds)
}

// DrawRegion fills a source or destination ellipse.
func (r *BoardRenderer) DrawRegion(e geom.Ellipse, c rl.Color) {
	p := r.screen(e.Center.X, e.Center.Y)
	rl.DrawEllipse(int32(p.X), int32(p.Y),
		float32(e.SemiMajor)*r.cam.Zoom, float32(e.SemiMinor)*r.cam.Zoom, c)
}

// DrawObstacles fills every obstacle rectangle.
func (r *BoardRenderer) DrawObstacles(obstacles []geom.Rect) {
	for _, o := range obstacles {
		r.DrawObstacle(o, r.Palette.Obstacle)
	}
}

// DrawObstacle fills one obstacle, e.g. one still being drawn.
func (r *BoardRenderer) DrawObstacle(o geom.Rect, c rl.Color) {
	if o.Empty() {
		return
	}
	rl.DrawRectangleRec(r.screenRect(o), c)
}

// DrawTrails draws every visible pheromone with alpha proportional to its
// intensity relative to the peak seen so far.
func (r *BoardRenderer) DrawTrails(sc *scene.Scene) {
	peak := float32(sc.Stats().PeakIntensity)
	if peak <= 0 {
		return
	}
	size := max(2, r.cam.Zoom*2)
	sc.EachTrail(func(loc components.Location, tr components.Trail) {
		if !r.cam.IsVisible(loc.X, loc.Y, 2) {
			return
		}
		t := minTrailAlpha + (1-minTrailAlpha)*float32(tr.Intensity)/peak
		sx, sy := r.cam.WorldToScreen(loc.X, loc.Y)
		rl.DrawRectangleV(rl.Vector2{X: sx - size/2, Y: sy - size/2}, rl.Vector2{X: size, Y: size},
			fade(r.Palette.Pheromone, t))
	})
}

// DrawAnts draws every mirrored ant. Returning ants use their own color;
// the selected ant gets an outline.
func (r *BoardRenderer) DrawAnts(sc *scene.Scene, layers Layers, selected components.AntID, hasSelected bool) {
	sc.EachAnt(func(v scene.AntView) {
		fp := v.Footprint
		if !r.cam.IsVisible(v.Location.X, v.Location.Y, max(fp.SemiMajor, 1)) {
			return
		}
		c := r.Palette.Ant
		if v.Ant.Returning {
			c = r.Palette.Returning
		}
		sx, sy := r.cam.WorldToScreen(v.Location.X, v.Location.Y)

		if layers.Footprints && fp.SemiMajor > 0 {
			rl.DrawEllipseLines(int32(sx), int32(sy), fp.SemiMajor*r.cam.Zoom, fp.SemiMinor*r.cam.Zoom, fade(c, 0.6))
		}
		rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, max(1.5, r.cam.Zoom*1.5), c)

		if layers.Headings && (v.Heading.DX != 0 || v.Heading.DY != 0) {
			// Steps are tiny; draw the direction at a fixed screen length.
			dx, dy := v.Heading.DX, v.Heading.DY
			n := 12 / max(float32(1e-6), hypot(dx, dy))
			rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: sx + dx*n, Y: sy + dy*n}, fade(c, 0.8))
		}

		if hasSelected && v.Ant.ID == selected {
			rl.DrawCircleLines(int32(sx), int32(sy), max(6, fp.SemiMajor*r.cam.Zoom+4), r.Palette.Selected)
		}
	})
}

func hypot(x, y float32) float32 {
	return float32(math.Hypot(float64(x), float64(y)))
}
