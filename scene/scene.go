// Package scene mirrors a board into an ECS world. The mirror is fed by
// board events and read by the viewer, so drawing never takes the
// simulation's locks.
package scene

import (
	"log/slog"
	"sync"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/aco/components"
)

// Stats summarizes the mirrored state.
type Stats struct {
	Ants          int
	Returning     int
	Trips         int
	Trails        int
	ActiveTrails  int
	PeakIntensity int32
}

// Scene is an ECS mirror of a board. It implements game.Subscriber,
// game.TurnSubscriber and game.LevelSubscriber; all methods are safe for
// concurrent use.
type Scene struct {
	mu    sync.Mutex
	world *ecs.World

	antMapper   *ecs.Map4[components.Location, components.Ant, components.Heading, components.Footprint]
	trailMapper *ecs.Map2[components.Location, components.Trail]
	antFilter   *ecs.Filter4[components.Location, components.Ant, components.Heading, components.Footprint]
	trailFilter *ecs.Filter2[components.Location, components.Trail]

	locMap   *ecs.Map1[components.Location]
	antMap   *ecs.Map1[components.Ant]
	headMap  *ecs.Map1[components.Heading]
	trailMap *ecs.Map1[components.Trail]

	ants      map[components.AntID]ecs.Entity
	trails    map[components.PheromoneID]ecs.Entity
	footprint components.Footprint

	stats      Stats
	subscribed bool
	lastErr    error
}

// New creates an empty scene. Every mirrored ant gets the given footprint.
func New(footprint components.Footprint) *Scene {
	world := ecs.NewWorld()
	return &Scene{
		world:       world,
		antMapper:   ecs.NewMap4[components.Location, components.Ant, components.Heading, components.Footprint](world),
		trailMapper: ecs.NewMap2[components.Location, components.Trail](world),
		antFilter:   ecs.NewFilter4[components.Location, components.Ant, components.Heading, components.Footprint](world),
		trailFilter: ecs.NewFilter2[components.Location, components.Trail](world),
		locMap:      ecs.NewMap1[components.Location](world),
		antMap:      ecs.NewMap1[components.Ant](world),
		headMap:     ecs.NewMap1[components.Heading](world),
		trailMap:    ecs.NewMap1[components.Trail](world),
		ants:        make(map[components.AntID]ecs.Entity),
		trails:      make(map[components.PheromoneID]ecs.Entity),
		footprint:   footprint,
	}
}

// antEntity returns the entity for id, creating it at pos if the spawn
// event was never seen. Callers hold s.mu.
func (s *Scene) antEntity(id components.AntID, pos components.Position) (ecs.Entity, bool) {
	if e, ok := s.ants[id]; ok {
		return e, false
	}
	loc := components.Location{}
	loc.Set(pos)
	ant := components.Ant{ID: id}
	fp := s.footprint
	e := s.antMapper.NewEntity(&loc, &ant, &components.Heading{}, &fp)
	s.ants[id] = e
	s.stats.Ants++
	return e, true
}

// OnAntSpawned adds an ant entity.
func (s *Scene) OnAntSpawned(id components.AntID, pos components.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.antEntity(id, pos)
}

// OnAntMoved moves an ant entity and records its step as the heading.
func (s *Scene) OnAntMoved(id components.AntID, pos components.Position) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, created := s.antEntity(id, pos)
	if created {
		return
	}
	loc := s.locMap.Get(e)
	h := s.headMap.Get(e)
	h.DX = float32(pos.X) - loc.X
	h.DY = float32(pos.Y) - loc.Y
	loc.Set(pos)
	s.antMap.Get(e).Moves++
}

// OnAntTurned flips an ant between outbound and returning. Getting back
// to the source completes a trip.
func (s *Scene) OnAntTurned(id components.AntID, returning bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.ants[id]
	if !ok {
		return
	}
	ant := s.antMap.Get(e)
	if ant.Returning == returning {
		return
	}
	ant.Returning = returning
	if returning {
		s.stats.Returning++
		return
	}
	s.stats.Returning--
	ant.Trips++
	s.stats.Trips++
}

// OnPheromoneChanged applies an intensity change to a trail entity,
// creating it on first sight.
func (s *Scene) OnPheromoneChanged(id components.PheromoneID, pos components.Position, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	tr := s.trail(id, pos)
	s.setIntensity(tr, tr.Intensity+int32(delta))
}

// OnPheromoneLevel sets a trail entity to the board's intensity. A board
// delivers it in place of OnPheromoneChanged, so a lost event is repaired
// by the next one for the same pheromone.
func (s *Scene) OnPheromoneLevel(id components.PheromoneID, pos components.Position, intensity int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setIntensity(s.trail(id, pos), int32(intensity))
}

// trail returns the trail for id, creating it at pos. Callers hold s.mu.
func (s *Scene) trail(id components.PheromoneID, pos components.Position) *components.Trail {
	e, ok := s.trails[id]
	if !ok {
		loc := components.Location{}
		loc.Set(pos)
		e = s.trailMapper.NewEntity(&loc, &components.Trail{ID: id})
		s.trails[id] = e
		s.stats.Trails++
	}
	return s.trailMap.Get(e)
}

func (s *Scene) setIntensity(tr *components.Trail, v int32) {
	was := tr.Intensity
	tr.Intensity = max(v, 0)
	tr.Changes++

	switch {
	case was == 0 && tr.Intensity > 0:
		s.stats.ActiveTrails++
	case was > 0 && tr.Intensity == 0:
		s.stats.ActiveTrails--
	}
	if tr.Intensity > s.stats.PeakIntensity {
		s.stats.PeakIntensity = tr.Intensity
	}
}

func (s *Scene) OnSubscribed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribed = true
}

func (s *Scene) OnSubscriptionFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	slog.Warn("scene subscription failed", "error", err)
}

func (s *Scene) OnUnsubscribed() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribed = false
}

func (s *Scene) OnUnsubscribeFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = err
	slog.Warn("scene unsubscribe failed", "error", err)
}

// Subscribed reports whether the scene is attached to a board.
func (s *Scene) Subscribed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subscribed
}

// Err returns the last subscription error, if any.
func (s *Scene) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Stats returns the current counters.
func (s *Scene) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}
