package inspector

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode"
)

// Widget selects how a component field is drawn.
type Widget int

const (
	WidgetAuto Widget = iota
	WidgetLabel
	WidgetBar
	WidgetBool
	WidgetSkip
)

var widgetNames = map[string]Widget{
	"label": WidgetLabel,
	"bar":   WidgetBar,
	"bool":  WidgetBool,
	"skip":  WidgetSkip,
}

// Field is one exported component field with its rendering hints.
type Field struct {
	Name    string // display label
	Value   any
	Widget  Widget
	Options map[string]string
}

// ParseTag parses an inspect struct tag of the form
// `inspect:"widget[,option:value...]"`. Known options are fmt, max, name
// and unit, e.g. `inspect:"label,fmt:%.1f,unit:px"`.
func ParseTag(tag string) (Widget, map[string]string) {
	options := make(map[string]string)
	head, rest, _ := strings.Cut(tag, ",")
	widget := widgetNames[strings.TrimSpace(head)]

	for part := range strings.SplitSeq(rest, ",") {
		if k, v, ok := strings.Cut(strings.TrimSpace(part), ":"); ok {
			options[k] = v
		}
	}
	return widget, options
}

// ExtractFields lists the exported fields of a component struct or a
// pointer to one. Fields tagged skip are left out; untagged booleans get
// the bool widget and everything else a label.
func ExtractFields(component any) []Field {
	v := reflect.Indirect(reflect.ValueOf(component))
	if v.Kind() != reflect.Struct {
		return nil
	}

	t := v.Type()
	var fields []Field
	for i := range t.NumField() {
		sf, fv := t.Field(i), v.Field(i)
		if !sf.IsExported() {
			continue
		}
		widget, options := ParseTag(sf.Tag.Get("inspect"))
		switch widget {
		case WidgetSkip:
			continue
		case WidgetAuto:
			widget = WidgetLabel
			if fv.Kind() == reflect.Bool {
				widget = WidgetBool
			}
		}
		name := options["name"]
		if name == "" {
			name = Humanize(sf.Name)
		}
		fields = append(fields, Field{Name: name, Value: fv.Interface(), Widget: widget, Options: options})
	}
	return fields
}

// Humanize turns a Go field name into a label: "SemiMajor" becomes
// "Semi major". Runs of capitals such as "ID" stay together.
func Humanize(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		startsWord := i > 0 && unicode.IsUpper(r) &&
			(unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1])))
		if startsWord {
			b.WriteByte(' ')
			if i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				r = unicode.ToLower(r)
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FormatValue formats a field value using the fmt and unit options.
func FormatValue(value any, options map[string]string) string {
	var s string
	switch f := options["fmt"]; {
	case f != "":
		s = fmt.Sprintf(f, value)
	default:
		if v, ok := Numeric(value); ok && isFloat(value) {
			s = strconv.FormatFloat(v, 'f', 2, 64)
		} else {
			s = fmt.Sprint(value)
		}
	}
	if unit := options["unit"]; unit != "" {
		s += " " + unit
	}
	return s
}

// BarMax returns the max option, or 1 when it is missing or invalid.
func BarMax(options map[string]string) float64 {
	if m, err := strconv.ParseFloat(options["max"], 64); err == nil && m > 0 {
		return m
	}
	return 1
}

// Numeric converts any integer or float value to float64.
func Numeric(value any) (float64, bool) {
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	default:
		return 0, false
	}
}

func isFloat(value any) bool {
	k := reflect.ValueOf(value).Kind()
	return k == reflect.Float32 || k == reflect.Float64
}
