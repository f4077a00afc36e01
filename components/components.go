// Package components defines the plain data records shared by the simulation
// core and the ECS scene mirror.
package components

import "gonum.org/v1/gonum/spatial/r2"

// Position is a point on the board. Pheromones are keyed by exact Position
// equality, so two positions only match when both coordinates are identical.
type Position = r2.Vec

// AntID identifies an ant for the lifetime of a board. IDs are dense and start at 0.
type AntID uint32

// PheromoneID is the arena index of a pheromone in the field's store.
// IDs are assigned in creation order and never reused.
type PheromoneID uint32

// Footprint is the elliptical area an ant occupies around its center.
type Footprint struct {
	SemiMajor float32 `inspect:"label,fmt:%.1f"` // horizontal half-width
	SemiMinor float32 `inspect:"label,fmt:%.1f"` // vertical half-height
}
