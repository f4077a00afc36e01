package config

import "time"

// Settings is the flat runtime record consumed by the simulation core.
// It carries no colors or screen parameters.
type Settings struct {
	MaxAnts            int
	AntsPerSecond      int
	SpawnInterval      time.Duration
	SourceRadius       float64
	DestinationRadius  float64
	SemiMajorAxis      float64
	SemiMinorAxis      float64
	EvaporationTimeout time.Duration
	DepositAmount      int
	Clusters           int
	StepFraction       float64
	RandomStep         float64
	MaxResample        int
	PoolSize           int
	MoveInterval       time.Duration
	EvaporateInterval  time.Duration
	EventBuffer        int
	EventWait          time.Duration
}

// Settings derives the runtime settings from the loaded config.
func (c *Config) Settings() Settings {
	return Settings{
		MaxAnts:            c.Colony.MaxAnts,
		AntsPerSecond:      c.Colony.AntsPerSecond,
		SpawnInterval:      c.Derived.SpawnInterval,
		SourceRadius:       c.Regions.SourceRadius,
		DestinationRadius:  c.Regions.DestinationRadius,
		SemiMajorAxis:      c.Ant.SemiMajorAxis,
		SemiMinorAxis:      c.Ant.SemiMinorAxis,
		EvaporationTimeout: c.Derived.EvaporationTimeout,
		DepositAmount:      c.Pheromone.DepositAmount,
		Clusters:           c.Heuristic.Clusters,
		StepFraction:       c.Heuristic.StepFraction,
		RandomStep:         c.Heuristic.RandomStep,
		MaxResample:        c.Heuristic.MaxResample,
		PoolSize:           c.Scheduler.PoolSize,
		MoveInterval:       c.Derived.MoveInterval,
		EvaporateInterval:  c.Derived.EvaporateInterval,
		EventBuffer:        c.Scheduler.EventBuffer,
		EventWait:          c.Derived.EventWait,
	}
}

// DefaultSettings returns the settings from the embedded defaults.
// Panics if the embedded defaults are invalid.
func DefaultSettings() Settings {
	cfg, err := Defaults()
	if err != nil {
		panic(err)
	}
	return cfg.Settings()
}
