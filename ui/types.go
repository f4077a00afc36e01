// Package ui draws the viewer's panels: HUD, controls, overlays and
// telemetry readouts. Data panels are described by typed field
// descriptors rather than hard-coded layouts.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// WidgetType specifies how a field is drawn.
type WidgetType int

const (
	WidgetText   WidgetType = iota // label and formatted value
	WidgetBar                      // horizontal bar over [0, Max]
	WidgetSpacer                   // vertical gap
)

// FieldDescriptor describes one row of a panel showing a T.
type FieldDescriptor[T any] struct {
	Label   string
	Widget  WidgetType
	Format  string          // printf format for Value, default "%.0f"
	Max     float64         // bar scale, 0 means 1
	Value   func(T) float64 // numeric fields
	Text    func(T) string  // text fields, takes precedence over Value
	Visible func(T) bool    // nil = always shown
}

func (fd FieldDescriptor[T]) shown(data T) bool {
	return fd.Visible == nil || fd.Visible(data)
}

func (fd FieldDescriptor[T]) text(data T) string {
	switch {
	case fd.Text != nil:
		return fd.Text(data)
	case fd.Value != nil:
		format := fd.Format
		if format == "" {
			format = "%.0f"
		}
		return fmt.Sprintf(format, fd.Value(data))
	}
	return ""
}

// SectionDescriptor groups fields under a header.
type SectionDescriptor[T any] struct {
	Title  string
	Fields []FieldDescriptor[T]
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the viewer theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 24, G: 24, B: 37, A: 235},
		PanelBorder:    rl.Color{R: 69, G: 71, B: 90, A: 255},
		SectionHeader:  rl.Color{R: 249, G: 226, B: 175, A: 255},
		LabelColor:     rl.Color{R: 166, G: 173, B: 200, A: 255},
		ValueColor:     rl.Color{R: 205, G: 214, B: 244, A: 255},
		BarBg:          rl.Color{R: 49, G: 50, B: 68, A: 255},
		BarFill:        rl.Color{R: 203, G: 166, B: 247, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     110,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
