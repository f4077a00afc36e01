// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Colony    ColonyConfig    `yaml:"colony"`
	Ant       AntConfig       `yaml:"ant"`
	Regions   RegionsConfig   `yaml:"regions"`
	Pheromone PheromoneConfig `yaml:"pheromone"`
	Heuristic HeuristicConfig `yaml:"heuristic"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Screen    ScreenConfig    `yaml:"screen"`
	Colors    ColorsConfig    `yaml:"colors"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ColonyConfig holds ant population parameters.
type ColonyConfig struct {
	MaxAnts         int `yaml:"max_ants"`          // Spawning stops once this many ants are alive
	AntsPerSecond   int `yaml:"ants_per_second"`   // Ants created per spawn batch
	SpawnIntervalMS int `yaml:"spawn_interval_ms"` // Delay between spawn batches
}

// AntConfig holds the ant footprint.
type AntConfig struct {
	SemiMajorAxis float64 `yaml:"semi_major_axis"` // Horizontal half-width
	SemiMinorAxis float64 `yaml:"semi_minor_axis"` // Vertical half-height
}

// RegionsConfig holds the source and destination radii.
type RegionsConfig struct {
	SourceRadius      float64 `yaml:"source_radius"`
	DestinationRadius float64 `yaml:"destination_radius"`
}

// PheromoneConfig holds pheromone field parameters.
type PheromoneConfig struct {
	EvaporationTimeoutMS int `yaml:"evaporation_timeout_ms"` // Idle time before a pheromone loses one unit
	DepositAmount        int `yaml:"deposit_amount"`         // Intensity added per ant step
}

// HeuristicConfig holds movement heuristic parameters.
type HeuristicConfig struct {
	Clusters     int     `yaml:"clusters"`      // Buckets per narrowing round
	StepFraction float64 `yaml:"step_fraction"` // Fraction of the vector to a pheromone covered per move
	RandomStep   float64 `yaml:"random_step"`   // Maximum per-axis length of a random step
	MaxResample  int     `yaml:"max_resample"`  // Random points tried before an ant stays put
}

// SchedulerConfig holds activity and worker pool parameters.
type SchedulerConfig struct {
	PoolSize            int `yaml:"pool_size"`             // Workers for per-ant and per-pheromone work (0 = GOMAXPROCS)
	MoveIntervalMS      int `yaml:"move_interval_ms"`      // Delay between move rounds (0 = free running)
	EvaporateIntervalMS int `yaml:"evaporate_interval_ms"` // Delay between evaporation sweeps (0 = free running)
	EventBuffer         int `yaml:"event_buffer"`          // Queued events per subscriber
	EventWaitMS         int `yaml:"event_wait_ms"`         // Time a full queue may hold a producer before the event is dropped (0 = drop at once)
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // Seconds per stats window
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// ColorsConfig holds hex colors (RRGGBBAA) used by the viewer.
type ColorsConfig struct {
	Background  string `yaml:"background"`
	Bounds      string `yaml:"bounds"`
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
	Obstacle    string `yaml:"obstacle"`
	Ant         string `yaml:"ant"`
	Returning   string `yaml:"returning"`
	Pheromone   string `yaml:"pheromone"`
}

func (c ColorsConfig) byName() map[string]string {
	return map[string]string{
		"background":  c.Background,
		"bounds":      c.Bounds,
		"source":      c.Source,
		"destination": c.Destination,
		"obstacle":    c.Obstacle,
		"ant":         c.Ant,
		"returning":   c.Returning,
		"pheromone":   c.Pheromone,
	}
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SpawnInterval      time.Duration
	EvaporationTimeout time.Duration
	MoveInterval       time.Duration
	EvaporateInterval  time.Duration
	EventWait          time.Duration
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg, err := Defaults()
	if err != nil {
		return nil, err
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.computeDerived()

	return cfg, nil
}

// Defaults returns the embedded default configuration.
func Defaults() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}
	cfg.computeDerived()
	return cfg, nil
}

// DefaultsYAML returns the raw embedded defaults.
func DefaultsYAML() []byte {
	return defaultsYAML
}

// Validate checks that every parameter is in range.
func (c *Config) Validate() error {
	var errs []error
	positive := func(name string, v float64) {
		if v <= 0 {
			errs = append(errs, fmt.Errorf("%s must be positive, got %v", name, v))
		}
	}
	nonNegative := func(name string, v int) {
		if v < 0 {
			errs = append(errs, fmt.Errorf("%s must not be negative, got %d", name, v))
		}
	}

	positive("colony.max_ants", float64(c.Colony.MaxAnts))
	positive("colony.ants_per_second", float64(c.Colony.AntsPerSecond))
	positive("colony.spawn_interval_ms", float64(c.Colony.SpawnIntervalMS))
	positive("ant.semi_major_axis", c.Ant.SemiMajorAxis)
	positive("ant.semi_minor_axis", c.Ant.SemiMinorAxis)
	positive("regions.source_radius", c.Regions.SourceRadius)
	positive("regions.destination_radius", c.Regions.DestinationRadius)
	positive("pheromone.evaporation_timeout_ms", float64(c.Pheromone.EvaporationTimeoutMS))
	positive("pheromone.deposit_amount", float64(c.Pheromone.DepositAmount))
	positive("heuristic.clusters", float64(c.Heuristic.Clusters))
	positive("heuristic.random_step", c.Heuristic.RandomStep)
	positive("heuristic.max_resample", float64(c.Heuristic.MaxResample))
	if c.Heuristic.StepFraction <= 0 || c.Heuristic.StepFraction > 1 {
		errs = append(errs, fmt.Errorf("heuristic.step_fraction must be in (0, 1], got %v", c.Heuristic.StepFraction))
	}
	nonNegative("scheduler.pool_size", c.Scheduler.PoolSize)
	nonNegative("scheduler.move_interval_ms", c.Scheduler.MoveIntervalMS)
	nonNegative("scheduler.evaporate_interval_ms", c.Scheduler.EvaporateIntervalMS)
	nonNegative("scheduler.event_buffer", c.Scheduler.EventBuffer)
	nonNegative("scheduler.event_wait_ms", c.Scheduler.EventWaitMS)
	positive("telemetry.stats_window", c.Telemetry.StatsWindow)
	for name, hex := range c.Colors.byName() {
		if _, _, _, _, err := ParseColor(hex); err != nil {
			errs = append(errs, fmt.Errorf("colors.%s: %w", name, err))
		}
	}

	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	ms := func(v int) time.Duration { return time.Duration(v) * time.Millisecond }
	c.Derived.SpawnInterval = ms(c.Colony.SpawnIntervalMS)
	c.Derived.EvaporationTimeout = ms(c.Pheromone.EvaporationTimeoutMS)
	c.Derived.MoveInterval = ms(c.Scheduler.MoveIntervalMS)
	c.Derived.EvaporateInterval = ms(c.Scheduler.EvaporateIntervalMS)
	c.Derived.EventWait = ms(c.Scheduler.EventWaitMS)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}

// ParseColor decodes an RRGGBBAA (or RRGGBB, opaque) hex color.
func ParseColor(hex string) (r, g, b, a uint8, err error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) == 6 {
		hex += "FF"
	}
	if len(hex) != 8 {
		return 0, 0, 0, 0, fmt.Errorf("color %q: want RRGGBB or RRGGBBAA", hex)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, 0, fmt.Errorf("color %q: %w", hex, err)
	}
	return uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}
