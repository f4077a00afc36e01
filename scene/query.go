package scene

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aco/components"
)

// AntView is a copy of one mirrored ant.
type AntView struct {
	Entity    ecs.Entity
	Location  components.Location
	Ant       components.Ant
	Heading   components.Heading
	Footprint components.Footprint
}

// EachAnt calls fn for every mirrored ant. fn must not call back into the scene.
func (s *Scene) EachAnt(fn func(v AntView)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.antFilter.Query()
	for query.Next() {
		loc, ant, h, fp := query.Get()
		fn(AntView{Entity: query.Entity(), Location: *loc, Ant: *ant, Heading: *h, Footprint: *fp})
	}
}

// EachTrail calls fn for every trail with a non-zero intensity.
// fn must not call back into the scene.
func (s *Scene) EachTrail(fn func(loc components.Location, tr components.Trail)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := s.trailFilter.Query()
	for query.Next() {
		loc, tr := query.Get()
		if tr.Intensity == 0 {
			continue
		}
		fn(*loc, *tr)
	}
}

// AntAt returns the ant whose center is nearest to (x, y) within radius.
func (s *Scene) AntAt(x, y, radius float32) (components.AntID, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var (
		best  components.AntID
		found bool
	)
	bestDist := radius * radius
	query := s.antFilter.Query()
	for query.Next() {
		loc, ant, _, _ := query.Get()
		dx, dy := loc.X-x, loc.Y-y
		if d := dx*dx + dy*dy; d <= bestDist {
			best, bestDist, found = ant.ID, d, true
		}
	}
	return best, found
}

// Ant returns a copy of the mirrored ant with the given ID.
func (s *Scene) Ant(id components.AntID) (AntView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.ants[id]
	if !ok || !s.world.Alive(e) {
		return AntView{}, false
	}
	loc, ant, h, fp := s.antMapper.Get(e)
	return AntView{Entity: e, Location: *loc, Ant: *ant, Heading: *h, Footprint: *fp}, true
}
