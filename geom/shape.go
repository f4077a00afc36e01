// Package geom provides the area predicates shared by the map builder and the
// running board: axis-aligned rectangles, axis-aligned ellipses and the
// intersection/containment tests between them.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ellipseSamples is the number of boundary points used when two non-circular
// ellipses are tested against each other.
const ellipseSamples = 72

// Shape is anything that occupies an area on the board.
type Shape interface {
	// Bounds returns the smallest axis-aligned rectangle enclosing the shape.
	Bounds() Rect
	// Empty reports whether the shape has no area.
	Empty() bool
}

// Rect is an axis-aligned rectangle described by its top-left corner and size.
// Y grows downwards, as on screen.
type Rect struct {
	X, Y float64
	W, H float64
}

// NewRect creates a rectangle from its top-left corner and size.
func NewRect(corner r2.Vec, w, h float64) Rect {
	return Rect{X: corner.X, Y: corner.Y, W: w, H: h}
}

// RectFromCorners creates the rectangle spanned by two opposite corners,
// whichever way round they are given.
func RectFromCorners(a, b r2.Vec) Rect {
	return Rect{
		X: math.Min(a.X, b.X),
		Y: math.Min(a.Y, b.Y),
		W: math.Abs(b.X - a.X),
		H: math.Abs(b.Y - a.Y),
	}
}

// Min returns the top-left corner.
func (r Rect) Min() r2.Vec { return r2.Vec{X: r.X, Y: r.Y} }

// Max returns the bottom-right corner.
func (r Rect) Max() r2.Vec { return r2.Vec{X: r.X + r.W, Y: r.Y + r.H} }

// Center returns the center of the rectangle.
func (r Rect) Center() r2.Vec { return r2.Vec{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Bounds implements Shape.
func (r Rect) Bounds() Rect { return r }

// Empty implements Shape.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// ContainsPoint reports whether p lies inside r or on its border.
func (r Rect) ContainsPoint(p r2.Vec) bool {
	return p.X >= r.X && p.X <= r.X+r.W && p.Y >= r.Y && p.Y <= r.Y+r.H
}

// ContainsRect reports whether o lies entirely inside r. An empty o is
// treated as its top-left corner.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+math.Max(o.W, 0) <= r.X+r.W &&
		o.Y+math.Max(o.H, 0) <= r.Y+r.H
}

// Overlaps reports whether r and o share a region of non-zero area.
// Rectangles that only touch along an edge do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	if r.Empty() || o.Empty() {
		return false
	}
	return r.X < o.X+o.W && o.X < r.X+r.W &&
		r.Y < o.Y+o.H && o.Y < r.Y+r.H
}

// Ellipse is an axis-aligned ellipse. SemiMajor is the horizontal half-width,
// SemiMinor the vertical half-height; a circle has both equal.
type Ellipse struct {
	Center    r2.Vec
	SemiMajor float64
	SemiMinor float64
}

// NewCircle creates a circle as an ellipse with equal axes.
func NewCircle(center r2.Vec, radius float64) Ellipse {
	return Ellipse{Center: center, SemiMajor: radius, SemiMinor: radius}
}

// Radius returns the horizontal half-width, which is the radius for circles.
func (e Ellipse) Radius() float64 { return e.SemiMajor }

// IsCircle reports whether both axes are equal.
func (e Ellipse) IsCircle() bool { return e.SemiMajor == e.SemiMinor }

// Bounds implements Shape.
func (e Ellipse) Bounds() Rect {
	return Rect{
		X: e.Center.X - e.SemiMajor,
		Y: e.Center.Y - e.SemiMinor,
		W: 2 * e.SemiMajor,
		H: 2 * e.SemiMinor,
	}
}

// Empty implements Shape.
func (e Ellipse) Empty() bool { return e.SemiMajor <= 0 || e.SemiMinor <= 0 }

// ContainsPoint reports whether p lies strictly inside the ellipse.
func (e Ellipse) ContainsPoint(p r2.Vec) bool {
	if e.Empty() {
		return false
	}
	dx := (p.X - e.Center.X) / e.SemiMajor
	dy := (p.Y - e.Center.Y) / e.SemiMinor
	return dx*dx+dy*dy < 1
}

// overlapsRect tests in the ellipse's normalised space, where it becomes the
// unit circle and r stays axis-aligned, so the clamped nearest point is exact.
func (e Ellipse) overlapsRect(r Rect) bool {
	if e.Empty() || r.Empty() {
		return false
	}
	q := r2.Vec{
		X: clamp(e.Center.X, r.X, r.X+r.W),
		Y: clamp(e.Center.Y, r.Y, r.Y+r.H),
	}
	return e.ContainsPoint(q)
}

func (e Ellipse) overlapsEllipse(o Ellipse) bool {
	if e.Empty() || o.Empty() {
		return false
	}
	if e.IsCircle() && o.IsCircle() {
		return r2.Norm(r2.Sub(e.Center, o.Center)) < e.SemiMajor+o.SemiMajor
	}
	if !e.Bounds().Overlaps(o.Bounds()) {
		return false
	}
	if e.ContainsPoint(o.Center) || o.ContainsPoint(e.Center) {
		return true
	}
	for i := 0; i < ellipseSamples; i++ {
		theta := 2 * math.Pi * float64(i) / ellipseSamples
		if o.ContainsPoint(e.boundaryPoint(theta)) || e.ContainsPoint(o.boundaryPoint(theta)) {
			return true
		}
	}
	return false
}

func (e Ellipse) boundaryPoint(theta float64) r2.Vec {
	return r2.Vec{
		X: e.Center.X + e.SemiMajor*math.Cos(theta),
		Y: e.Center.Y + e.SemiMinor*math.Sin(theta),
	}
}

// Intersects reports whether two shapes share a region of non-zero area.
// Unknown shape types fall back to comparing their bounds.
func Intersects(a, b Shape) bool {
	switch sa := a.(type) {
	case Rect:
		switch sb := b.(type) {
		case Rect:
			return sa.Overlaps(sb)
		case Ellipse:
			return sb.overlapsRect(sa)
		}
	case Ellipse:
		switch sb := b.(type) {
		case Rect:
			return sa.overlapsRect(sb)
		case Ellipse:
			return sa.overlapsEllipse(sb)
		}
	}
	return a.Bounds().Overlaps(b.Bounds())
}

// Contains reports whether s lies entirely inside outer. Both rectangles and
// axis-aligned ellipses are inside a rectangle exactly when their bounds are.
func Contains(outer Rect, s Shape) bool {
	return outer.ContainsRect(s.Bounds())
}

// IntersectsAny reports whether s overlaps any of the rectangles.
func IntersectsAny(s Shape, rects []Rect) bool {
	for _, r := range rects {
		if Intersects(s, r) {
			return true
		}
	}
	return false
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
