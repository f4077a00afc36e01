package ui

import (
	"fmt"

	"github.com/pthm-cable/aco/telemetry"
)

type window = telemetry.WindowStats

// WindowSections describes the stats panel for a telemetry window.
func WindowSections() []SectionDescriptor[window] {
	return []SectionDescriptor[window]{
		{
			Title: "Movement",
			Fields: []FieldDescriptor[window]{
				{Label: "Moves", Value: func(w window) float64 { return float64(w.Moves) }},
				{Label: "Guided", Widget: WidgetBar, Format: "%.2f",
					Value: func(w window) float64 { return w.GuidedShare }},
				{Label: "Blocked", Value: func(w window) float64 { return float64(w.BlockedMoves) }},
			},
		},
		{
			Title: "Pheromone Field",
			Fields: []FieldDescriptor[window]{
				{Label: "Deposits", Value: func(w window) float64 { return float64(w.Deposits) }},
				{Label: "Created", Value: func(w window) float64 { return float64(w.PheromoneCreated) }},
				{Label: "Evaporations", Value: func(w window) float64 { return float64(w.Evaporations) }},
				{Label: "Intensity", Text: func(w window) string {
					return fmt.Sprintf("mean %.1f  p90 %.0f  max %.0f", w.IntensityMean, w.IntensityP90, w.IntensityMax)
				}},
			},
		},
		{
			Title: "Trips",
			Fields: []FieldDescriptor[window]{
				{Label: "Arrivals", Text: func(w window) string {
					return fmt.Sprintf("%d (total %d)", w.Arrivals, w.TotalArrivals)
				}},
				{Label: "Returns", Text: func(w window) string {
					return fmt.Sprintf("%d (total %d)", w.Returns, w.TotalReturns)
				}},
				{Label: "Dropped events",
					Visible: func(w window) bool { return w.DroppedEvents > 0 },
					Value:   func(w window) float64 { return float64(w.DroppedEvents) }},
			},
		},
	}
}

// StatsPanel renders the most recent telemetry window.
type StatsPanel struct {
	renderer *Renderer
	sections []SectionDescriptor[window]
	x, y     int32
	width    int32
}

// NewStatsPanel creates a stats panel.
func NewStatsPanel(x, y, width int32) *StatsPanel {
	return &StatsPanel{renderer: NewRenderer(), sections: WindowSections(), x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (s *StatsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// Draw renders the window and returns the Y below the panel.
func (s *StatsPanel) Draw(w telemetry.WindowStats) int32 {
	r := s.renderer
	pad := r.Theme.Padding

	height := pad*2 + r.Theme.LineHeight
	for _, sd := range s.sections {
		height += SectionHeight(r, sd, w)
	}
	r.DrawPanel(s.x, s.y, s.width, height)

	y := r.DrawLabelValue(s.x+pad, s.y+pad, "Window", fmt.Sprintf("%.0fs - %.0fs", w.WindowStartSec, w.WindowEndSec))
	for _, sd := range s.sections {
		y = DrawSection(r, s.x+pad, y, sd, w, s.width-pad*2)
	}
	return s.y + height
}
