package viewer

import (
	"errors"
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aco/camera"
	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/layout"
	"github.com/pthm-cable/aco/ui"
)

// editor turns mouse input into layout builder placements.
type editor struct {
	builder  *layout.Builder
	settings config.Settings
	tool     ui.Tool
	dragging bool
}

func newEditor(l *layout.Layout, s config.Settings) *editor {
	e := &editor{settings: s}
	if l == nil {
		e.builder = layout.NewBuilder()
		e.tool = ui.ToolBounds
		return e
	}
	e.reset(l)
	return e
}

// reset replaces the builder contents with l.
func (e *editor) reset(l *layout.Layout) {
	e.builder = l.Edit()
	e.tool = ui.ToolObstacle
	e.dragging = false
}

func (e *editor) canStart() bool {
	b := e.builder
	return b.HasBounds() && b.HasSource() && b.HasDestination()
}

// handleMouse applies this frame's mouse input. Bounds and obstacles are
// drawn by dragging; the source and destination are placed by clicking.
func (e *editor) handleMouse(cam *camera.Camera, mouse rl.Vector2) error {
	wx, wy := cam.ScreenToWorld(mouse.X, mouse.Y)
	p := r2.Vec{X: float64(wx), Y: float64(wy)}

	if rl.IsMouseButtonPressed(rl.MouseButtonRight) {
		e.builder.RemoveObstacleAt(p)
		return nil
	}

	switch {
	case rl.IsMouseButtonPressed(rl.MouseButtonLeft):
		return e.press(p)
	case e.dragging && rl.IsMouseButtonDown(rl.MouseButtonLeft):
		return e.drag(p)
	case e.dragging && rl.IsMouseButtonReleased(rl.MouseButtonLeft):
		e.release()
	}
	return nil
}

func (e *editor) press(p r2.Vec) error {
	var err error
	switch e.tool {
	case ui.ToolBounds:
		err = e.builder.ResetBounds(p)
		e.dragging = err == nil
	case ui.ToolSource:
		err = e.builder.SetSource(p, e.settings.SourceRadius)
	case ui.ToolDestination:
		err = e.builder.SetDestination(p, e.settings.DestinationRadius)
	case ui.ToolObstacle:
		err = e.builder.StartObstacle(p)
		e.dragging = err == nil
	}
	return describe(err)
}

func (e *editor) drag(p r2.Vec) error {
	switch e.tool {
	case ui.ToolBounds:
		return describe(e.builder.ResizeBounds(p))
	case ui.ToolObstacle:
		return describe(e.builder.ResizeObstacle(p))
	}
	return nil
}

func (e *editor) release() {
	if e.tool == ui.ToolObstacle {
		e.builder.CommitObstacle()
	}
	e.dragging = false
}

// describe rewords placement errors for the status line.
func describe(err error) error {
	var pe *layout.PlacementError
	if !errors.As(err, &pe) {
		return err
	}
	if errors.Is(pe, layout.ErrCollision) {
		return fmt.Errorf("cannot place %s: overlaps the %s", pe.Element, pe.With)
	}
	return fmt.Errorf("cannot place %s: outside the board", pe.Element)
}
