// Package layout builds and validates board layouts: the enclosing bounds,
// the source and destination regions and the obstacle set.
package layout

import (
	"slices"

	"github.com/janpfeifer/must"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aco/geom"
)

// Layout is a validated board layout. Values returned by Builder.Build are
// never modified afterwards.
type Layout struct {
	Bounds      geom.Rect
	Source      geom.Ellipse
	Destination geom.Ellipse
	Obstacles   []geom.Rect
}

// Builder accumulates a layout one placement at a time. Every operation
// either succeeds or returns an error and leaves the builder unchanged.
//
// Placed elements must lie fully inside the bounds. Source and destination
// must not overlap each other or any obstacle; obstacles must not overlap
// the source, the destination or another obstacle. Elements may touch.
type Builder struct {
	bounds    geom.Rect
	hasBounds bool

	source         geom.Ellipse
	hasSource      bool
	destination    geom.Ellipse
	hasDestination bool

	obstacles []geom.Rect

	// obstacle being drawn
	current geom.Rect
	anchor  r2.Vec
	drawing bool
}

// NewBuilder creates an empty builder.
func NewBuilder() *Builder {
	return &Builder{obstacles: make([]geom.Rect, 0)}
}

// HasBounds reports whether non-empty bounds are set.
func (b *Builder) HasBounds() bool { return b.hasBounds && !b.bounds.Empty() }

// HasSource reports whether the source is placed.
func (b *Builder) HasSource() bool { return b.hasSource }

// HasDestination reports whether the destination is placed.
func (b *Builder) HasDestination() bool { return b.hasDestination }

// Bounds returns the current bounds.
func (b *Builder) Bounds() geom.Rect { return b.bounds }

// Source returns the source region and whether it is placed.
func (b *Builder) Source() (geom.Ellipse, bool) { return b.source, b.hasSource }

// Destination returns the destination region and whether it is placed.
func (b *Builder) Destination() (geom.Ellipse, bool) { return b.destination, b.hasDestination }

// Obstacles returns a copy of the committed obstacles.
func (b *Builder) Obstacles() []geom.Rect { return slices.Clone(b.obstacles) }

// CurrentObstacle returns the obstacle being drawn, if any.
func (b *Builder) CurrentObstacle() (geom.Rect, bool) { return b.current, b.drawing }

// SetBounds replaces the enclosing rectangle. It fails if an element placed
// earlier would end up outside the new bounds.
func (b *Builder) SetBounds(r geom.Rect) error {
	r = geom.RectFromCorners(r.Min(), r.Max())
	for _, placed := range b.placed() {
		if !geom.Contains(r, placed.shape) {
			return outOfBounds(placed.el, placed.shape)
		}
	}
	b.bounds = r
	b.hasBounds = true
	return nil
}

// ResetBounds starts drawing new bounds with a zero-size rectangle at corner.
func (b *Builder) ResetBounds(corner r2.Vec) error {
	return b.SetBounds(geom.Rect{X: corner.X, Y: corner.Y})
}

// ResizeBounds stretches the bounds from their anchor corner to point.
func (b *Builder) ResizeBounds(point r2.Vec) error {
	return b.SetBounds(geom.RectFromCorners(b.bounds.Min(), point))
}

// SetSource places the source circle.
func (b *Builder) SetSource(center r2.Vec, radius float64) error {
	c := geom.NewCircle(center, radius)
	if err := b.checkRegion(ElementSource, c, b.destination, b.hasDestination, ElementDestination); err != nil {
		return err
	}
	b.source, b.hasSource = c, true
	return nil
}

// SetDestination places the destination circle.
func (b *Builder) SetDestination(center r2.Vec, radius float64) error {
	c := geom.NewCircle(center, radius)
	if err := b.checkRegion(ElementDestination, c, b.source, b.hasSource, ElementSource); err != nil {
		return err
	}
	b.destination, b.hasDestination = c, true
	return nil
}

func (b *Builder) checkRegion(el Element, c geom.Ellipse, other geom.Ellipse, hasOther bool, otherEl Element) error {
	if !b.inside(c) {
		return outOfBounds(el, c)
	}
	if hasOther && geom.Intersects(c, other) {
		return collision(el, c, otherEl)
	}
	if geom.IntersectsAny(c, b.obstacles) {
		return collision(el, c, ElementObstacle)
	}
	return nil
}

// StartObstacle begins drawing an obstacle anchored at corner. Any obstacle
// still being drawn is discarded.
func (b *Builder) StartObstacle(corner r2.Vec) error {
	r := geom.Rect{X: corner.X, Y: corner.Y}
	if err := b.checkObstacle(r); err != nil {
		return err
	}
	b.current, b.anchor, b.drawing = r, corner, true
	return nil
}

// ResizeObstacle stretches the obstacle being drawn from its anchor to
// point, whichever direction the point lies in. On failure the previous
// size is kept.
func (b *Builder) ResizeObstacle(point r2.Vec) error {
	if !b.drawing {
		return incomplete(ElementObstacle)
	}
	r := geom.RectFromCorners(b.anchor, point)
	if err := b.checkObstacle(r); err != nil {
		return err
	}
	b.current = r
	return nil
}

// CommitObstacle adds the obstacle being drawn to the obstacle set.
// Empty obstacles are dropped silently. It reports whether one was added.
func (b *Builder) CommitObstacle() bool {
	if !b.drawing {
		return false
	}
	r := b.current
	b.current, b.drawing = geom.Rect{}, false
	if r.Empty() {
		return false
	}
	b.obstacles = append(b.obstacles, r)
	return true
}

// AddObstacle validates and adds a complete obstacle in one step.
// Empty rectangles are rejected as out of bounds.
func (b *Builder) AddObstacle(r geom.Rect) error {
	r = geom.RectFromCorners(r.Min(), r.Max())
	if r.Empty() {
		return outOfBounds(ElementObstacle, r)
	}
	if err := b.checkObstacle(r); err != nil {
		return err
	}
	b.obstacles = append(b.obstacles, r)
	return nil
}

func (b *Builder) checkObstacle(r geom.Rect) error {
	if !b.inside(r) {
		return outOfBounds(ElementObstacle, r)
	}
	if b.hasSource && geom.Intersects(r, b.source) {
		return collision(ElementObstacle, r, ElementSource)
	}
	if b.hasDestination && geom.Intersects(r, b.destination) {
		return collision(ElementObstacle, r, ElementDestination)
	}
	if geom.IntersectsAny(r, b.obstacles) {
		return collision(ElementObstacle, r, ElementObstacle)
	}
	return nil
}

func (b *Builder) inside(s geom.Shape) bool {
	return b.hasBounds && geom.Contains(b.bounds, s)
}

type placement struct {
	el    Element
	shape geom.Shape
}

func (b *Builder) placed() []placement {
	out := make([]placement, 0, len(b.obstacles)+3)
	if b.hasSource {
		out = append(out, placement{ElementSource, b.source})
	}
	if b.hasDestination {
		out = append(out, placement{ElementDestination, b.destination})
	}
	for _, o := range b.obstacles {
		out = append(out, placement{ElementObstacle, o})
	}
	if b.drawing {
		out = append(out, placement{ElementObstacle, b.current})
	}
	return out
}

// Build returns the finished layout. It fails with ErrIncompleteConfiguration
// unless bounds, source and destination are all present; the obstacle set
// may be empty. An obstacle still being drawn is not included.
func (b *Builder) Build() (*Layout, error) {
	var missing []Element
	if !b.HasBounds() {
		missing = append(missing, ElementBounds)
	}
	if !b.hasSource {
		missing = append(missing, ElementSource)
	}
	if !b.hasDestination {
		missing = append(missing, ElementDestination)
	}
	if len(missing) > 0 {
		return nil, incomplete(missing...)
	}
	return &Layout{
		Bounds:      b.bounds,
		Source:      b.source,
		Destination: b.destination,
		Obstacles:   slices.Clone(b.obstacles),
	}, nil
}

// Edit returns a builder holding the layout's elements for further editing.
func (l *Layout) Edit() *Builder {
	return &Builder{
		bounds:         l.Bounds,
		hasBounds:      true,
		source:         l.Source,
		hasSource:      true,
		destination:    l.Destination,
		hasDestination: true,
		obstacles:      slices.Clone(l.Obstacles),
	}
}

// Clear removes the source, the destination and every obstacle. The
// bounds are kept.
func (b *Builder) Clear() {
	b.hasSource, b.hasDestination = false, false
	b.source, b.destination = geom.Ellipse{}, geom.Ellipse{}
	b.obstacles = b.obstacles[:0]
	b.current, b.drawing = geom.Rect{}, false
}

// RemoveObstacleAt removes the last added obstacle containing point and
// reports whether one was removed.
func (b *Builder) RemoveObstacleAt(point r2.Vec) bool {
	for i := len(b.obstacles) - 1; i >= 0; i-- {
		if b.obstacles[i].ContainsPoint(point) {
			b.obstacles = slices.Delete(b.obstacles, i, i+1)
			return true
		}
	}
	return false
}

// Default returns a small ready-to-run layout: a square board with the
// source and destination in opposite corners and two staggered walls.
func Default() *Layout {
	b := NewBuilder()
	must.M(b.SetBounds(geom.Rect{X: 0, Y: 0, W: 1000, H: 1000}))
	must.M(b.SetSource(r2.Vec{X: 100, Y: 100}, 25))
	must.M(b.SetDestination(r2.Vec{X: 900, Y: 900}, 25))
	must.M(b.AddObstacle(geom.Rect{X: 300, Y: 0, W: 40, H: 600}))
	must.M(b.AddObstacle(geom.Rect{X: 650, Y: 400, W: 40, H: 600}))
	return must.M1(b.Build())
}
