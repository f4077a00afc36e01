package systems

import (
	"math/rand"
	"sync"

	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/geom"
)

// Transition describes a change of an ant's travel direction.
type Transition uint8

const (
	TransitionNone     Transition = iota
	TransitionArrived             // reached the destination, now returning
	TransitionReturned            // back at the source, outbound again
)

func (t Transition) String() string {
	switch t {
	case TransitionArrived:
		return "arrived"
	case TransitionReturned:
		return "returned"
	default:
		return "none"
	}
}

// Ant is a single agent on the board.
//
// Position, travel state and the distance cache are guarded by the ant's
// lock: the move activity owns the position while deposits from other ants
// add cache entries concurrently.
type Ant struct {
	ID        components.AntID
	SemiMajor float64
	SemiMinor float64

	mu        sync.Mutex
	pos       components.Position
	returning bool
	distances map[components.PheromoneID]float64

	// rng is only used by the goroutine currently moving this ant.
	rng *rand.Rand
}

// NewAnt creates an outbound ant at pos.
func NewAnt(id components.AntID, pos components.Position, semiMajor, semiMinor float64, rng *rand.Rand) *Ant {
	return &Ant{
		ID:        id,
		SemiMajor: semiMajor,
		SemiMinor: semiMinor,
		pos:       pos,
		distances: make(map[components.PheromoneID]float64),
		rng:       rng,
	}
}

// Position returns the ant's center.
func (a *Ant) Position() components.Position {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos
}

// Returning reports whether the ant is travelling back to the source.
func (a *Ant) Returning() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.returning
}

// State returns position and travel state as one consistent read.
func (a *Ant) State() (components.Position, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pos, a.returning
}

// Footprint returns the ellipse the ant would occupy centered at pos.
func (a *Ant) Footprint(pos components.Position) geom.Ellipse {
	return geom.Ellipse{Center: pos, SemiMajor: a.SemiMajor, SemiMinor: a.SemiMinor}
}

// Observe records the distance to p if the ant can currently see it.
// It reports whether an entry was added.
func (a *Ant) Observe(p *Pheromone, nav *Navigator) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.distances[p.ID]; ok {
		return false
	}
	if !nav.Reachable(a.pos, p.Pos) {
		return false
	}
	a.distances[p.ID] = geom.Distance(a.pos, p.Pos)
	return true
}

// CachedDistance returns the cached distance to a pheromone.
func (a *Ant) CachedDistance(id components.PheromoneID) (float64, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	d, ok := a.distances[id]
	return d, ok
}

// CacheSize returns the number of cached pheromone distances.
func (a *Ant) CacheSize() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.distances)
}

// cached copies the distance cache so callers can iterate without the lock.
func (a *Ant) cached() map[components.PheromoneID]float64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make(map[components.PheromoneID]float64, len(a.distances))
	for id, d := range a.distances {
		out[id] = d
	}
	return out
}

// MoveTo sets the ant's center.
func (a *Ant) MoveTo(pos components.Position) {
	a.mu.Lock()
	a.pos = pos
	a.mu.Unlock()
}

// UpdateReturning re-evaluates the travel state against the source and
// destination regions. An outbound ant turns around once its center is
// strictly within the destination radius; a returning ant stays returning
// while its center is at least the source radius away from the source.
func (a *Ant) UpdateReturning(source, destination geom.Ellipse) Transition {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.returning {
		a.returning = geom.Distance(a.pos, source.Center) >= source.Radius()
		if !a.returning {
			return TransitionReturned
		}
		return TransitionNone
	}
	a.returning = geom.Distance(a.pos, destination.Center) < destination.Radius()
	if a.returning {
		return TransitionArrived
	}
	return TransitionNone
}
