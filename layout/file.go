package layout

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/aco/geom"
)

// point is a layout file coordinate.
type point struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
}

type rectFile struct {
	Width   float64 `yaml:"width" json:"width"`
	Height  float64 `yaml:"height" json:"height"`
	TopLeft point   `yaml:"top-left-corner" json:"top-left-corner"`
}

type circleFile struct {
	Radius float64 `yaml:"radius" json:"radius"`
	Center point   `yaml:"center" json:"center"`
}

// file is the persisted layout format. JSON files parse through the YAML
// decoder since JSON is valid YAML.
type file struct {
	Bounds      *rectFile   `yaml:"enclosing-rectangle" json:"enclosing-rectangle"`
	Source      *circleFile `yaml:"source-point" json:"source-point"`
	Destination *circleFile `yaml:"destination-point" json:"destination-point"`
	Obstacles   []rectFile  `yaml:"obstacles" json:"obstacles"`
}

func (r rectFile) rect() geom.Rect {
	return geom.Rect{X: r.TopLeft.X, Y: r.TopLeft.Y, W: r.Width, H: r.Height}
}

func toRectFile(r geom.Rect) rectFile {
	return rectFile{Width: r.W, Height: r.H, TopLeft: point{X: r.X, Y: r.Y}}
}

func toCircleFile(e geom.Ellipse) *circleFile {
	return &circleFile{Radius: e.Radius(), Center: point{X: e.Center.X, Y: e.Center.Y}}
}

// Parse decodes a layout and replays every placement through a Builder, so
// an invalid file fails with the same errors as interactive placement.
func Parse(data []byte) (*Layout, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}

	b := NewBuilder()
	if f.Bounds != nil {
		if err := b.SetBounds(f.Bounds.rect()); err != nil {
			return nil, err
		}
	}
	if f.Source != nil {
		if err := b.SetSource(r2.Vec(f.Source.Center), f.Source.Radius); err != nil {
			return nil, err
		}
	}
	if f.Destination != nil {
		if err := b.SetDestination(r2.Vec(f.Destination.Center), f.Destination.Radius); err != nil {
			return nil, err
		}
	}
	for i, o := range f.Obstacles {
		if err := b.AddObstacle(o.rect()); err != nil {
			return nil, fmt.Errorf("obstacle %d: %w", i, err)
		}
	}
	return b.Build()
}

// Load reads and parses a layout file.
func Load(path string) (*Layout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Marshal encodes the layout as YAML, or as indented JSON when asJSON is set.
func (l *Layout) Marshal(asJSON bool) ([]byte, error) {
	f := file{
		Bounds:      &rectFile{},
		Source:      toCircleFile(l.Source),
		Destination: toCircleFile(l.Destination),
		Obstacles:   make([]rectFile, 0, len(l.Obstacles)),
	}
	*f.Bounds = toRectFile(l.Bounds)
	for _, o := range l.Obstacles {
		f.Obstacles = append(f.Obstacles, toRectFile(o))
	}

	if asJSON {
		data, err := json.MarshalIndent(f, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling layout: %w", err)
		}
		return append(data, '\n'), nil
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, fmt.Errorf("marshaling layout: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling layout: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the layout to path. Files ending in .json are written as JSON,
// anything else as YAML.
func (l *Layout) Save(path string) error {
	asJSON := strings.EqualFold(filepath.Ext(path), ".json")
	data, err := l.Marshal(asJSON)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing layout file: %w", err)
	}
	return nil
}
