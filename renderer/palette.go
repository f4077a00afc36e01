// Package renderer draws the board, its regions, pheromone trails and ants
// through a camera.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/aco/config"
)

// Palette holds the viewer colors.
type Palette struct {
	Background  rl.Color
	Bounds      rl.Color
	Source      rl.Color
	Destination rl.Color
	Obstacle    rl.Color
	Ant         rl.Color
	Returning   rl.Color
	Pheromone   rl.Color
	Selected    rl.Color
	Pending     rl.Color
}

// NewPalette converts configured hex colors. Colors are checked by
// config.Validate, so a bad value falls back to magenta.
func NewPalette(c config.ColorsConfig) Palette {
	return Palette{
		Background:  color(c.Background),
		Bounds:      color(c.Bounds),
		Source:      color(c.Source),
		Destination: color(c.Destination),
		Obstacle:    color(c.Obstacle),
		Ant:         color(c.Ant),
		Returning:   color(c.Returning),
		Pheromone:   color(c.Pheromone),
		Selected:    rl.White,
		Pending:     rl.Color{R: 255, G: 200, B: 100, A: 160},
	}
}

func color(hex string) rl.Color {
	r, g, b, a, err := config.ParseColor(hex)
	if err != nil {
		return rl.Magenta
	}
	return rl.Color{R: r, G: g, B: b, A: a}
}

// fade scales a color's alpha by t in [0, 1].
func fade(c rl.Color, t float32) rl.Color {
	t = max(0, min(1, t))
	c.A = uint8(float32(c.A) * t)
	return c
}
