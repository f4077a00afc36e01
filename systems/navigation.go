package systems

import (
	"math/rand"
	"sort"

	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/geom"
)

// MoveKind classifies how a next point was chosen.
type MoveKind uint8

const (
	MoveRandom  MoveKind = iota // random step biased toward the target
	MoveGuided                  // step toward a selected pheromone
	MoveBlocked                 // no free random point found, ant stays put
)

func (k MoveKind) String() string {
	switch k {
	case MoveGuided:
		return "guided"
	case MoveBlocked:
		return "blocked"
	default:
		return "random"
	}
}

// NavParams tunes the movement heuristic.
type NavParams struct {
	Clusters     int     // buckets per narrowing round, at least 1
	StepFraction float64 // fraction of the vector to the chosen pheromone covered per move
	RandomStep   float64 // maximum per-axis length of a random step
	MaxResample  int     // random points tried before giving up
}

// DefaultNavParams returns the parameters the board uses when none are configured.
func DefaultNavParams() NavParams {
	return NavParams{
		Clusters:     5,
		StepFraction: 0.01,
		RandomStep:   1,
		MaxResample:  64,
	}
}

// Navigator holds the static board geometry and picks next points for ants.
// It is read-only after construction and safe for concurrent use.
type Navigator struct {
	Bounds      geom.Rect
	Obstacles   []geom.Rect
	Source      geom.Ellipse
	Destination geom.Ellipse
	Params      NavParams
}

// Target returns the region center an ant is heading for.
func (n *Navigator) Target(returning bool) components.Position {
	if returning {
		return n.Source.Center
	}
	return n.Destination.Center
}

// Reachable reports whether no obstacle crosses the segment from one point to another.
func (n *Navigator) Reachable(from, to components.Position) bool {
	return !geom.SegmentBlocked(from, to, n.Obstacles)
}

// OnTheWay reports whether p lies in the same per-axis direction from "from"
// as the target does.
func (n *Navigator) OnTheWay(from, target, p components.Position) bool {
	tx, ty := geom.Direction(from, target)
	px, py := geom.Direction(from, p)
	return tx == px && ty == py
}

// CanOccupy reports whether an ant centered at pos stays inside the bounds
// and clear of every obstacle.
func (n *Navigator) CanOccupy(a *Ant, pos components.Position) bool {
	if !geom.Finite(pos) {
		return false
	}
	if !n.Bounds.Empty() && !n.Bounds.ContainsPoint(pos) {
		return false
	}
	return !geom.IntersectsAny(a.Footprint(pos), n.Obstacles)
}

// RandomPoint samples a point near "from" whose offset on each axis points
// toward target. Axes already aligned with the target get an unconstrained
// offset. Samples the ant cannot occupy are retried up to MaxResample times;
// when every sample fails "from" is returned with ok false.
func (n *Navigator) RandomPoint(a *Ant, from, target components.Position) (components.Position, bool) {
	sx, sy := geom.Direction(from, target)
	step := n.Params.RandomStep
	if step <= 0 {
		step = 1
	}
	tries := max(n.Params.MaxResample, 1)
	for i := 0; i < tries; i++ {
		p := components.Position{
			X: from.X + step*randomOffset(a.rng, sx),
			Y: from.Y + step*randomOffset(a.rng, sy),
		}
		if n.CanOccupy(a, p) {
			return p, true
		}
	}
	return from, false
}

// randomOffset returns a value in (0,1] with the given sign, or in (-1,1)
// when sign is zero.
func randomOffset(rng *rand.Rand, sign float64) float64 {
	if sign == 0 {
		return rng.Float64()*2 - 1
	}
	return sign * (1 - rng.Float64())
}

// NextPoint computes where the ant moves next. It does not move the ant.
func (n *Navigator) NextPoint(a *Ant, field *PheromoneField) (components.Position, MoveKind) {
	pos, returning := a.State()
	target := n.Target(returning)

	if field.Empty() {
		return n.randomMove(a, pos, target)
	}

	candidates := n.Candidates(a, pos, target, field)
	if len(candidates) == 0 {
		return n.randomMove(a, pos, target)
	}

	chosen := Narrow(candidates, n.Params.Clusters)
	if len(chosen) == 0 {
		return n.randomMove(a, pos, n.Destination.Center)
	}
	rep := Representative(chosen)
	return geom.Lerp(pos, rep.Pos, n.Params.StepFraction), MoveGuided
}

func (n *Navigator) randomMove(a *Ant, pos, target components.Position) (components.Position, MoveKind) {
	p, ok := n.RandomPoint(a, pos, target)
	if !ok {
		return pos, MoveBlocked
	}
	return p, MoveRandom
}

// Candidates returns the cached pheromones the ant could follow from pos:
// non-zero intensity, on the way to target and reachable right now.
// Distances come from the ant's cache. The result is sorted by ID.
func (n *Navigator) Candidates(a *Ant, pos, target components.Position, field *PheromoneField) []Candidate {
	cache := a.cached()
	out := make([]Candidate, 0, len(cache))
	for id, d := range cache {
		p := field.Get(id)
		if p == nil {
			continue
		}
		intensity := p.Intensity()
		if intensity == 0 {
			continue
		}
		if !n.OnTheWay(pos, target, p.Pos) || !n.Reachable(pos, p.Pos) {
			continue
		}
		out = append(out, Candidate{ID: id, Pos: p.Pos, Intensity: intensity, Distance: d})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
