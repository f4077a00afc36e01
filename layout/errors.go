package layout

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/aco/geom"
)

// Sentinel errors returned (wrapped) by Builder operations.
var (
	ErrOutOfBounds             = errors.New("element out of bounds")
	ErrCollision               = errors.New("element collides with another element")
	ErrIncompleteConfiguration = errors.New("incomplete configuration")
)

// Element names a kind of board element.
type Element string

const (
	ElementBounds      Element = "bounds"
	ElementSource      Element = "source"
	ElementDestination Element = "destination"
	ElementObstacle    Element = "obstacle"
)

// PlacementError reports a rejected placement. Err is ErrOutOfBounds or
// ErrCollision; use errors.Is to test for them.
type PlacementError struct {
	Element Element
	Rect    geom.Rect // bounds of the rejected shape
	With    Element   // element collided with, empty for out of bounds
	Err     error
}

func (e *PlacementError) Error() string {
	r := e.Rect
	if e.With != "" {
		return fmt.Sprintf("%s at (%.0f,%.0f %.0fx%.0f): %v (%s)", e.Element, r.X, r.Y, r.W, r.H, e.Err, e.With)
	}
	return fmt.Sprintf("%s at (%.0f,%.0f %.0fx%.0f): %v", e.Element, r.X, r.Y, r.W, r.H, e.Err)
}

func (e *PlacementError) Unwrap() error { return e.Err }

func outOfBounds(el Element, s geom.Shape) error {
	return &PlacementError{Element: el, Rect: s.Bounds(), Err: ErrOutOfBounds}
}

func collision(el Element, s geom.Shape, with Element) error {
	return &PlacementError{Element: el, Rect: s.Bounds(), With: with, Err: ErrCollision}
}

func incomplete(missing ...Element) error {
	return fmt.Errorf("%w: missing %v", ErrIncompleteConfiguration, missing)
}
