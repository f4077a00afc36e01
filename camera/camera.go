// Package camera provides a 2D camera for viewing a bounded board.
package camera

import "github.com/pthm-cable/aco/geom"

// Camera controls the viewport onto the board. The board is bounded, so the
// camera center stays inside the board rectangle.
type Camera struct {
	// Position is the camera center in board coordinates
	X, Y float32

	// Zoom level (1.0 = 1:1, 2.0 = 2x magnification)
	Zoom float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// Board rectangle the camera is constrained to
	World geom.Rect

	// Zoom constraints
	MinZoom, MaxZoom float32

	// fraction of the viewport the board fills after Reset
	fitMargin float32
}

// New creates a camera showing the whole board.
func New(viewportW, viewportH float32, world geom.Rect) *Camera {
	c := &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		MaxZoom:   8.0,
		fitMargin: 0.9,
	}
	c.SetWorld(world)
	return c
}

// SetWorld changes the board rectangle and refits the view.
func (c *Camera) SetWorld(world geom.Rect) {
	c.World = world
	c.updateMinZoom()
	c.Reset()
}

// FitZoom returns the zoom at which the whole board fits the viewport.
func (c *Camera) FitZoom() float32 {
	if c.World.Empty() {
		return 1
	}
	zx := c.ViewportW / float32(c.World.W)
	zy := c.ViewportH / float32(c.World.H)
	return min(zx, zy) * c.fitMargin
}

// updateMinZoom lets the board shrink to half its fitted size.
func (c *Camera) updateMinZoom() {
	c.MinZoom = c.FitZoom() / 2
	if c.Zoom < c.MinZoom {
		c.Zoom = c.MinZoom
	}
}

// WorldToScreen converts board coordinates to screen coordinates.
func (c *Camera) WorldToScreen(wx, wy float32) (sx, sy float32) {
	sx = c.ViewportW/2 + (wx-c.X)*c.Zoom
	sy = c.ViewportH/2 + (wy-c.Y)*c.Zoom
	return sx, sy
}

// ScreenToWorld converts screen coordinates to board coordinates.
func (c *Camera) ScreenToWorld(sx, sy float32) (wx, wy float32) {
	wx = c.X + (sx-c.ViewportW/2)/c.Zoom
	wy = c.Y + (sy-c.ViewportH/2)/c.Zoom
	return wx, wy
}

// IsVisible returns true if a circle at (wx, wy) with given radius
// could be visible on screen (conservative check for culling).
func (c *Camera) IsVisible(wx, wy, radius float32) bool {
	halfW := c.ViewportW/(2*c.Zoom) + radius
	halfH := c.ViewportH/(2*c.Zoom) + radius
	return absf(wx-c.X) <= halfW && absf(wy-c.Y) <= halfH
}

// Resize updates viewport dimensions and recalculates zoom constraints.
func (c *Camera) Resize(viewportW, viewportH float32) {
	if viewportW == c.ViewportW && viewportH == c.ViewportH {
		return
	}
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.updateMinZoom()
}

// Pan moves the camera by the given delta in screen pixels. The center is
// clamped to the board.
func (c *Camera) Pan(dx, dy float32) {
	c.X += dx / c.Zoom
	c.Y += dy / c.Zoom
	c.clampCenter()
}

func (c *Camera) clampCenter() {
	c.X = clamp(c.X, float32(c.World.X), float32(c.World.X+c.World.W))
	c.Y = clamp(c.Y, float32(c.World.Y), float32(c.World.Y+c.World.H))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = clamp(zoom, c.MinZoom, c.MaxZoom)
}

// ZoomBy multiplies the current zoom by the given factor.
func (c *Camera) ZoomBy(factor float32) {
	c.SetZoom(c.Zoom * factor)
}

// ZoomAt zooms by factor while keeping the board point under the screen
// position (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	wx, wy := c.ScreenToWorld(sx, sy)
	c.ZoomBy(factor)
	c.X = wx - (sx-c.ViewportW/2)/c.Zoom
	c.Y = wy - (sy-c.ViewportH/2)/c.Zoom
	c.clampCenter()
}

// Reset centers the camera on the board at the fitted zoom.
func (c *Camera) Reset() {
	center := c.World.Center()
	c.X = float32(center.X)
	c.Y = float32(center.Y)
	c.SetZoom(c.FitZoom())
}

// VisibleWorldBounds returns the board-coordinate bounds of the visible area.
func (c *Camera) VisibleWorldBounds() (minX, minY, maxX, maxY float32) {
	halfW := c.ViewportW / (2 * c.Zoom)
	halfH := c.ViewportH / (2 * c.Zoom)

	minX = c.X - halfW
	maxX = c.X + halfW
	minY = c.Y - halfH
	maxY = c.Y + halfH
	return
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
