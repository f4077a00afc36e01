package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Row layout shared by every widget.
const (
	nameWidth = 90
	rowHeight = 20
	fontSize  = 14
	barWidth  = 110
)

// Widget colors
var (
	ColorBarBg   = rl.Color{R: 40, G: 40, B: 40, A: 255}
	ColorBarFill = rl.Color{R: 203, G: 166, B: 247, A: 255}
	ColorText    = rl.Color{R: 220, G: 220, B: 220, A: 255}
	ColorTextDim = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorDial    = rl.Color{R: 50, G: 50, B: 60, A: 255}
	ColorNeedle  = rl.Color{R: 249, G: 226, B: 175, A: 255}
	ColorYes     = rl.Color{R: 137, G: 180, B: 250, A: 255}
	ColorNo      = rl.Color{R: 80, G: 80, B: 80, A: 255}
)

// drawName draws the row label and returns the x where the value starts.
func drawName(x, y int32, name string) int32 {
	rl.DrawText(name, x, y, fontSize, ColorTextDim)
	return x + nameWidth
}

// DrawLabel renders a formatted value and returns the row height.
func DrawLabel(x, y int32, name string, value any, options map[string]string) int32 {
	vx := drawName(x, y, name)
	rl.DrawText(FormatValue(value, options), vx, y, fontSize, ColorText)
	return rowHeight
}

// DrawBar renders value as a bar scaled by the max option.
func DrawBar(x, y int32, name string, value float64, options map[string]string) int32 {
	vx := drawName(x, y, name)
	ratio := max(0, min(1, value/BarMax(options)))
	rl.DrawRectangle(vx, y, barWidth, fontSize, ColorBarBg)
	rl.DrawRectangle(vx, y, int32(barWidth*ratio), fontSize, ColorBarFill)
	rl.DrawText(FormatValue(value, options), vx+barWidth+5, y, fontSize, ColorTextDim)
	return rowHeight
}

// DrawAngle renders a compass dial pointing along radians. Screen y grows
// downward, so positive angles turn clockwise.
func DrawAngle(x, y int32, name string, radians float64) int32 {
	const radius = 18
	vx := drawName(x, y+radius-fontSize/2, name)
	center := rl.Vector2{X: float32(vx + radius), Y: float32(y + radius)}

	rl.DrawCircleV(center, radius, ColorDial)
	rl.DrawCircleLines(int32(center.X), int32(center.Y), radius, ColorTextDim)
	tip := rl.Vector2{
		X: center.X + (radius-4)*float32(math.Cos(radians)),
		Y: center.Y + (radius-4)*float32(math.Sin(radians)),
	}
	rl.DrawLineEx(center, tip, 2, ColorNeedle)

	deg := math.Mod(radians*180/math.Pi+360, 360)
	rl.DrawText(fmt.Sprintf("%.0f deg", deg), vx+2*radius+6, y+radius-fontSize/2, fontSize, ColorTextDim)
	return 2*radius + 4
}

// DrawBool renders a yes/no indicator.
func DrawBool(x, y int32, name string, value bool) int32 {
	vx := drawName(x, y, name)
	c, text := ColorNo, "no"
	if value {
		c, text = ColorYes, "yes"
	}
	rl.DrawRectangle(vx, y, fontSize, fontSize, c)
	rl.DrawText(text, vx+fontSize+5, y, fontSize, c)
	return rowHeight
}

// DrawField renders a field with its widget and returns the row height.
func DrawField(x, y int32, field Field) int32 {
	switch field.Widget {
	case WidgetBar:
		if v, ok := Numeric(field.Value); ok {
			return DrawBar(x, y, field.Name, v, field.Options)
		}
	case WidgetBool:
		if v, ok := field.Value.(bool); ok {
			return DrawBool(x, y, field.Name, v)
		}
	}
	return DrawLabel(x, y, field.Name, field.Value, field.Options)
}
