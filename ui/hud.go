package ui

import (
	"fmt"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aco/telemetry"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Title        string
	Mode         string
	Ants         int
	MaxAnts      int
	Returning    int
	Trips        int
	Pheromones   int
	ActiveTrails int
	FPS          int32
	Paused       bool
	Message      string // last status or error line
}

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD at the top left of the screen.
func (h *HUD) Draw(data HUDData) {
	rl.DrawText(data.Title, 10, 10, 20, rl.White)

	rl.DrawText(
		fmt.Sprintf("Ants: %d/%d | Returning: %d | Trips: %d", data.Ants, data.MaxAnts, data.Returning, data.Trips),
		10, 35, 16, rl.LightGray,
	)
	rl.DrawText(
		fmt.Sprintf("Pheromones: %d (%d active) | FPS: %d", data.Pheromones, data.ActiveTrails, data.FPS),
		10, 55, 16, rl.LightGray,
	)

	status := data.Mode
	if data.Paused {
		status += " | PAUSED"
	}
	rl.DrawText(status, 10, 75, 16, rl.Yellow)

	if data.Message != "" {
		rl.DrawText(data.Message, 10, 95, 14, rl.Orange)
	}
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders per-activity round timings.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the Y below it.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) int32 {
	r := p.renderer
	names := stats.SortedNames()
	height := r.Theme.Padding*2 + 20 + int32(len(names))*14
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := p.y + r.Theme.Padding
	rl.DrawText("Activity Timing", x, y, 16, rl.White)
	y += 20

	for _, name := range names {
		a := stats.Activities[name]
		color := rl.LightGray
		if a.Avg > 10*time.Millisecond {
			color = rl.Orange
		}
		rl.DrawText(
			fmt.Sprintf("%-10s %8s avg %8s max %6.0f/s", name,
				a.Avg.Round(time.Microsecond), a.Max.Round(time.Microsecond), a.RoundsPerSec),
			x, y, 12, color,
		)
		y += 14
	}
	return p.y + height
}
