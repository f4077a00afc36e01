package components

// Ant bundles identity and travel state for a mirrored ant.
type Ant struct {
	ID        AntID  `inspect:"label"`
	Returning bool   `inspect:"bool"`
	Moves     uint32 `inspect:"label"` // steps observed since spawn
	Trips     uint32 `inspect:"label"` // completed source-destination-source round trips
}

// Trail is the mirrored state of a single pheromone.
type Trail struct {
	ID        PheromoneID `inspect:"label"`
	Intensity int32       `inspect:"bar"`
	Changes   uint32      `inspect:"label"` // intensity change events observed
}
