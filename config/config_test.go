package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}

	if cfg.Colony.MaxAnts != 10 {
		t.Errorf("MaxAnts = %d, want 10", cfg.Colony.MaxAnts)
	}
	if cfg.Colony.AntsPerSecond != 5 {
		t.Errorf("AntsPerSecond = %d, want 5", cfg.Colony.AntsPerSecond)
	}
	if cfg.Derived.EvaporationTimeout != time.Second {
		t.Errorf("EvaporationTimeout = %v, want 1s", cfg.Derived.EvaporationTimeout)
	}
	if cfg.Derived.EventWait != 250*time.Millisecond {
		t.Errorf("EventWait = %v, want 250ms", cfg.Derived.EventWait)
	}
	if cfg.Heuristic.StepFraction != 0.01 {
		t.Errorf("StepFraction = %v, want 0.01", cfg.Heuristic.StepFraction)
	}
}

func TestLoadMergesOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "colony:\n  max_ants: 50\n  ants_per_second: 10\npheromone:\n  evaporation_timeout_ms: 250\n"
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	s := cfg.Settings()
	if s.MaxAnts != 50 || s.AntsPerSecond != 10 {
		t.Errorf("colony = (%d, %d), want (50, 10)", s.MaxAnts, s.AntsPerSecond)
	}
	if s.EvaporationTimeout != 250*time.Millisecond {
		t.Errorf("EvaporationTimeout = %v, want 250ms", s.EvaporationTimeout)
	}
	// Untouched sections keep their defaults.
	if s.SemiMajorAxis != 5 || s.SemiMinorAxis != 2 {
		t.Errorf("footprint = (%v, %v), want (5, 2)", s.SemiMajorAxis, s.SemiMinorAxis)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero clusters", func(c *Config) { c.Heuristic.Clusters = 0 }, "heuristic.clusters"},
		{"step fraction too large", func(c *Config) { c.Heuristic.StepFraction = 1.5 }, "heuristic.step_fraction"},
		{"negative pool", func(c *Config) { c.Scheduler.PoolSize = -1 }, "scheduler.pool_size"},
		{"negative event wait", func(c *Config) { c.Scheduler.EventWaitMS = -1 }, "scheduler.event_wait_ms"},
		{"no ants", func(c *Config) { c.Colony.MaxAnts = 0 }, "colony.max_ants"},
		{"bad color", func(c *Config) { c.Colors.Ant = "zz00zz" }, "colors.ant"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Defaults()
			if err != nil {
				t.Fatal(err)
			}
			tc.mutate(cfg)
			err = cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("Validate() error = %v, want mention of %q", err, tc.wantErr)
			}
		})
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Defaults()
	if err != nil {
		t.Fatal(err)
	}
	cfg.Heuristic.Clusters = 7

	path := filepath.Join(t.TempDir(), "out.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML() error = %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.Heuristic.Clusters != 7 {
		t.Errorf("Clusters = %d, want 7", loaded.Heuristic.Clusters)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in         string
		r, g, b, a uint8
		wantErr    bool
	}{
		{in: "1E1E2EFF", r: 0x1E, g: 0x1E, b: 0x2E, a: 0xFF},
		{in: "#A6E3A1", r: 0xA6, g: 0xE3, b: 0xA1, a: 0xFF},
		{in: "00000080", a: 0x80},
		{in: "fff", wantErr: true},
		{in: "GG0000FF", wantErr: true},
	}
	for _, tc := range tests {
		r, g, b, a, err := ParseColor(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("ParseColor(%q) error = nil, want error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseColor(%q) error = %v", tc.in, err)
			continue
		}
		if r != tc.r || g != tc.g || b != tc.b || a != tc.a {
			t.Errorf("ParseColor(%q) = %d,%d,%d,%d, want %d,%d,%d,%d", tc.in, r, g, b, a, tc.r, tc.g, tc.b, tc.a)
		}
	}
}
