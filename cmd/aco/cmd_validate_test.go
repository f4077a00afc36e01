package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/aco/layout"
)

func TestValidateLayout(t *testing.T) {
	dir := t.TempDir()

	good := filepath.Join(dir, "good.yaml")
	if err := layout.Default().Save(good); err != nil {
		t.Fatal(err)
	}

	overlap := filepath.Join(dir, "overlap.json")
	data := []byte(`{
  "enclosing-rectangle": {"width": 500, "height": 500, "top-left-corner": {"x": 0, "y": 0}},
  "source-point": {"radius": 20, "center": {"x": 100, "y": 100}},
  "destination-point": {"radius": 20, "center": {"x": 400, "y": 400}},
  "obstacles": [{"width": 100, "height": 100, "top-left-corner": {"x": 350, "y": 350}}]
}`)
	if err := os.WriteFile(overlap, data, 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		path        string
		wantValid   bool
		wantElement string
		wantObs     int
	}{
		{"default layout", good, true, "", 2},
		{"obstacle on destination", overlap, false, "obstacle", 0},
		{"missing file", filepath.Join(dir, "nope.json"), false, "", 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := validateLayout(tc.path)
			if r.Valid != tc.wantValid {
				t.Fatalf("Valid = %v, want %v (error %q)", r.Valid, tc.wantValid, r.Error)
			}
			if r.Element != tc.wantElement {
				t.Errorf("Element = %q, want %q", r.Element, tc.wantElement)
			}
			if r.Obstacles != tc.wantObs {
				t.Errorf("Obstacles = %d, want %d", r.Obstacles, tc.wantObs)
			}
			if !r.Valid && r.Error == "" {
				t.Error("invalid result without an error message")
			}
		})
	}
}

func TestValidateConfig(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("colony:\n  max_ants: -1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := validateConfig(bad); r.Valid {
		t.Error("validateConfig() of negative max_ants is valid")
	}

	empty := filepath.Join(dir, "empty.yaml")
	if err := os.WriteFile(empty, []byte("{}\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if r := validateConfig(empty); !r.Valid {
		t.Errorf("validateConfig() of empty override = invalid: %s", r.Error)
	}
}
