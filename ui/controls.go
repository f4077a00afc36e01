package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tool is the layout element placed by mouse drags in edit mode.
type Tool int32

const (
	ToolBounds Tool = iota
	ToolSource
	ToolDestination
	ToolObstacle
)

// toolLabels is the raygui toggle group text, in Tool order.
const toolLabels = "Bounds;Source;Destination;Obstacle"

func (t Tool) String() string {
	switch t {
	case ToolBounds:
		return "bounds"
	case ToolSource:
		return "source"
	case ToolDestination:
		return "destination"
	case ToolObstacle:
		return "obstacle"
	default:
		return fmt.Sprintf("tool(%d)", int32(t))
	}
}

// ControlsState is what the panel shows.
type ControlsState struct {
	Editing  bool // layout editor vs running board
	Tool     Tool
	Paused   bool
	CanStart bool // layout is complete
}

// ControlsAction is what the user clicked this frame.
type ControlsAction struct {
	Tool          Tool
	Start         bool
	TogglePause   bool
	ResetCamera   bool
	DefaultLayout bool
	ClearLayout   bool
	SaveLayout    bool
	Stop          bool
}

// ControlsPanel renders the left-side panel with mode buttons and overlay
// toggles.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		visible:  true,
	}
}

// IsVisible returns whether the panel is shown.
func (c *ControlsPanel) IsVisible() bool {
	return c.visible
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Contains reports whether a screen point is over the panel.
func (c *ControlsPanel) Contains(x, y float32) bool {
	return c.visible && x >= float32(c.x) && x <= float32(c.x+c.width) && y >= float32(c.y) && y <= float32(c.y+c.height())
}

func (c *ControlsPanel) height() int32 {
	return 420
}

// Draw renders the panel and returns the actions triggered this frame.
func (c *ControlsPanel) Draw(state ControlsState, overlays *OverlayRegistry) ControlsAction {
	action := ControlsAction{Tool: state.Tool}
	if !c.visible {
		return action
	}

	r := c.renderer
	pad := r.Theme.Padding
	r.DrawPanel(c.x, c.y, c.width, c.height())

	x := float32(c.x + pad)
	y := float32(c.y + pad)
	w := float32(c.width - pad*2)
	button := func(label string) bool {
		pressed := gui.Button(rl.Rectangle{X: x, Y: y, Width: w, Height: 26}, label)
		y += 32
		return pressed
	}

	if state.Editing {
		rl.DrawText("Layout", int32(x), int32(y), 16, rl.White)
		y += 22
		action.Tool = Tool(gui.ToggleGroup(rl.Rectangle{X: x, Y: y, Width: w, Height: 24}, toolLabels, int32(state.Tool)))
		y += 32
		action.DefaultLayout = button("Default layout")
		action.ClearLayout = button("Clear")
		action.SaveLayout = button("Save layout")
		if !state.CanStart {
			gui.Disable()
		}
		action.Start = button("Start")
		gui.Enable()
	} else {
		rl.DrawText("Colony", int32(x), int32(y), 16, rl.White)
		y += 22
		label := "Pause"
		if state.Paused {
			label = "Resume"
		}
		action.TogglePause = button(label)
		action.ResetCamera = button("Reset view")
		action.Stop = button("Stop")
	}

	y += 8
	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), int32(x), int32(y), r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += float32(r.Theme.LineHeight) + 2
		for _, desc := range overlays.ByCategory(category) {
			enabled := overlays.IsEnabled(desc.ID)
			text := fmt.Sprintf("%s [%s]", desc.Name, desc.KeyLabel)
			if gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 14, Height: 14}, text, enabled) != enabled {
				overlays.Toggle(desc.ID)
			}
			y += 20
		}
		y += 4
	}
	return action
}

// categoryLabel returns a display label for a category.
func categoryLabel(cat string) string {
	switch cat {
	case "visual":
		return "Visual"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
