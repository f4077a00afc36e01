// Package inspector shows the components of a selected ant in a side panel.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/scene"
)

// Panel dimensions
const (
	PanelWidth   = 280
	PanelPadding = 10
	HeaderHeight = 30
)

// Panel colors
var (
	ColorPanelBg     = rl.Color{R: 30, G: 30, B: 35, A: 240}
	ColorPanelHeader = rl.Color{R: 45, G: 45, B: 55, A: 255}
	ColorPanelBorder = rl.Color{R: 70, G: 70, B: 80, A: 255}
	ColorHeaderText  = rl.Color{R: 255, G: 255, B: 255, A: 255}
	ColorCloseBtn    = rl.Color{R: 180, G: 80, B: 80, A: 255}
	ColorSection     = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorSectionText = rl.Color{R: 200, G: 200, B: 220, A: 255}
)

// Details carries board-side facts about the selected ant that the scene
// mirror does not hold.
type Details struct {
	CacheSize int
	Target    components.Position
}

// Picker returns the ant under a screen position.
type Picker func(screenX, screenY float32) (components.AntID, bool)

// Inspector manages ant selection and panel rendering.
type Inspector struct {
	selected     components.AntID
	hasSelected  bool
	panelX       int32
	panelY       int32
	screenWidth  int32
	screenHeight int32
}

// NewInspector creates a new inspector instance.
func NewInspector(screenWidth, screenHeight int32) *Inspector {
	ins := &Inspector{}
	ins.Resize(screenWidth, screenHeight)
	return ins
}

// Resize moves the panel to the right edge of a new screen size.
func (ins *Inspector) Resize(screenWidth, screenHeight int32) {
	ins.screenWidth = screenWidth
	ins.screenHeight = screenHeight
	ins.panelX = screenWidth - PanelWidth - 10
	ins.panelY = 10
}

// HandleInput processes clicks for selection and reports whether the
// click was consumed by the inspector.
func (ins *Inspector) HandleInput(mouseX, mouseY float32, pick Picker) bool {
	// Right click or Escape to deselect
	if rl.IsMouseButtonPressed(rl.MouseButtonRight) || rl.IsKeyPressed(rl.KeyEscape) {
		ins.Deselect()
		return false
	}
	if !rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		return false
	}

	if ins.hasSelected {
		closeX := ins.panelX + PanelWidth - 25
		closeY := ins.panelY + 5
		if inRect(mouseX, mouseY, closeX, closeY, 20, 20) {
			ins.Deselect()
			return true
		}
		if inRect(mouseX, mouseY, ins.panelX, ins.panelY, PanelWidth, ins.panelHeight()) {
			return true
		}
	}

	if id, ok := pick(mouseX, mouseY); ok {
		ins.selected = id
		ins.hasSelected = true
		return true
	}
	return false
}

func inRect(x, y float32, rx, ry, w, h int32) bool {
	return int32(x) >= rx && int32(x) <= rx+w && int32(y) >= ry && int32(y) <= ry+h
}

// Deselect clears the current selection.
func (ins *Inspector) Deselect() {
	ins.hasSelected = false
}

// Selected returns the currently selected ant.
func (ins *Inspector) Selected() (components.AntID, bool) {
	return ins.selected, ins.hasSelected
}

// Draw renders the panel for the selected ant. The selection is dropped
// when the ant is gone from the scene.
func (ins *Inspector) Draw(sc *scene.Scene, details Details) {
	if !ins.hasSelected {
		return
	}
	v, ok := sc.Ant(ins.selected)
	if !ok {
		ins.Deselect()
		return
	}

	panelHeight := ins.panelHeight()
	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, panelHeight, ColorPanelBg)
	rl.DrawRectangleLinesEx(
		rl.Rectangle{X: float32(ins.panelX), Y: float32(ins.panelY), Width: PanelWidth, Height: float32(panelHeight)},
		1,
		ColorPanelBorder,
	)

	rl.DrawRectangle(ins.panelX, ins.panelY, PanelWidth, HeaderHeight, ColorPanelHeader)
	rl.DrawText(fmt.Sprintf("ANT #%d", v.Ant.ID), ins.panelX+PanelPadding, ins.panelY+7, 16, ColorHeaderText)

	closeX := ins.panelX + PanelWidth - 25
	closeY := ins.panelY + 5
	rl.DrawRectangle(closeX, closeY, 20, 20, ColorCloseBtn)
	rl.DrawText("X", closeX+6, closeY+3, 14, rl.White)

	y := ins.panelY + HeaderHeight + PanelPadding
	x := ins.panelX + PanelPadding

	ins.drawSectionHeader(x, y, "STATE")
	y += 20
	for _, f := range ExtractFields(v.Ant) {
		y += DrawField(x, y, f)
	}
	y += DrawLabel(x, y, "Position", fmt.Sprintf("(%.1f, %.1f)", v.Location.X, v.Location.Y), nil)
	y += DrawLabel(x, y, "Target", fmt.Sprintf("(%.0f, %.0f)", details.Target.X, details.Target.Y), nil)
	y += DrawLabel(x, y, "Cached", details.CacheSize, nil)
	y += DrawAngle(x, y, "Heading", math.Atan2(float64(v.Heading.DY), float64(v.Heading.DX)))

	y += 4
	ins.drawSectionHeader(x, y, "FOOTPRINT")
	y += 20
	for _, f := range ExtractFields(v.Footprint) {
		y += DrawField(x, y, f)
	}
}

// drawSectionHeader renders a section title.
func (ins *Inspector) drawSectionHeader(x, y int32, title string) {
	rl.DrawRectangle(x-2, y-2, PanelWidth-2*PanelPadding+4, 18, ColorSection)
	rl.DrawText(title, x+2, y, 14, ColorSectionText)
}

func (ins *Inspector) panelHeight() int32 {
	height := HeaderHeight + PanelPadding
	height += 20     // state header
	height += 4 * 20 // ant fields
	height += 3 * 20 // position, target, cache
	height += 40     // heading
	height += 24     // footprint header
	height += 2 * 20 // footprint fields
	height += PanelPadding
	return int32(height)
}

// DrawSelectionHighlight draws a line from the selected ant to where it is
// heading. sx, sy and tx, ty are screen coordinates.
func (ins *Inspector) DrawSelectionHighlight(sx, sy, tx, ty float32) {
	if !ins.hasSelected {
		return
	}
	rl.DrawLineV(rl.Vector2{X: sx, Y: sy}, rl.Vector2{X: tx, Y: ty}, rl.Color{R: 255, G: 255, B: 0, A: 90})
}
