package ui

import rl "github.com/gen2brain/raylib-go/raylib"

const (
	sectionGap = 4
	spacer     = 6
)

// Renderer draws panel primitives with one theme.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a header and returns the Y below it.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on one line and returns the Y
// below it.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	t := r.Theme
	rl.DrawText(label, x, y, t.FontSize, t.LabelColor)
	rl.DrawText(value, x+t.LabelWidth, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight
}

// DrawBar draws value as a bar filled to value/scale, followed by text.
func (r *Renderer) DrawBar(x, y int32, label string, value, scale float64, text string, width int32) int32 {
	t := r.Theme
	if scale <= 0 {
		scale = 1
	}
	fill := max(0, min(1, value/scale))
	bx, bw := x+t.LabelWidth, width-t.LabelWidth-50

	rl.DrawText(label, x, y, t.FontSize, t.LabelColor)
	rl.DrawRectangle(bx, y+3, bw, t.BarHeight, t.BarBg)
	rl.DrawRectangle(bx, y+3, int32(float64(bw)*fill), t.BarHeight, t.BarFill)
	rl.DrawText(text, bx+bw+5, y, t.FontSize, t.ValueColor)
	return y + t.LineHeight + 2
}

func rowHeight[T any](t Theme, fd FieldDescriptor[T]) int32 {
	switch fd.Widget {
	case WidgetBar:
		return t.LineHeight + 2
	case WidgetSpacer:
		return spacer
	default:
		return t.LineHeight
	}
}

// DrawSection renders a section of data and returns the Y below it.
func DrawSection[T any](r *Renderer, x, y int32, sd SectionDescriptor[T], data T, width int32) int32 {
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if !fd.shown(data) {
			continue
		}
		switch fd.Widget {
		case WidgetText:
			y = r.DrawLabelValue(x, y, fd.Label, fd.text(data))
		case WidgetBar:
			var v float64
			if fd.Value != nil {
				v = fd.Value(data)
			}
			y = r.DrawBar(x, y, fd.Label, v, fd.Max, fd.text(data), width)
		case WidgetSpacer:
			y += spacer
		}
	}
	return y + sectionGap
}

// SectionHeight returns the height DrawSection would use for data.
func SectionHeight[T any](r *Renderer, sd SectionDescriptor[T], data T) int32 {
	h := int32(sectionGap)
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if fd.shown(data) {
			h += rowHeight(r.Theme, fd)
		}
	}
	return h
}
