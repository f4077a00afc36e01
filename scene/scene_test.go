package scene

import (
	"testing"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/game"
	"github.com/pthm-cable/aco/layout"
)

var (
	_ game.Subscriber      = (*Scene)(nil)
	_ game.TurnSubscriber  = (*Scene)(nil)
	_ game.LevelSubscriber = (*Scene)(nil)
)

func TestSceneMirrorsEvents(t *testing.T) {
	s := New(components.Footprint{SemiMajor: 5, SemiMinor: 2})

	s.OnAntSpawned(0, r2.Vec{X: 10, Y: 10})
	s.OnAntSpawned(1, r2.Vec{X: 50, Y: 50})
	s.OnAntMoved(0, r2.Vec{X: 12, Y: 11})

	v, ok := s.Ant(0)
	if !ok {
		t.Fatal("Ant(0) not found")
	}
	if v.Location != (components.Location{X: 12, Y: 11}) {
		t.Errorf("Location = %+v, want {12 11}", v.Location)
	}
	if v.Heading != (components.Heading{DX: 2, DY: 1}) {
		t.Errorf("Heading = %+v, want {2 1}", v.Heading)
	}
	if v.Ant.Moves != 1 {
		t.Errorf("Moves = %d, want 1", v.Ant.Moves)
	}
	if v.Footprint.SemiMajor != 5 {
		t.Errorf("Footprint = %+v", v.Footprint)
	}

	s.OnAntTurned(0, true)
	if got := s.Stats().Returning; got != 1 {
		t.Errorf("Returning = %d, want 1", got)
	}
	s.OnAntTurned(0, false)
	v, _ = s.Ant(0)
	if v.Ant.Returning || v.Ant.Trips != 1 {
		t.Errorf("after return: %+v, want outbound with 1 trip", v.Ant)
	}

	s.OnPheromoneChanged(0, r2.Vec{X: 12, Y: 11}, 2)
	s.OnPheromoneChanged(1, r2.Vec{X: 40, Y: 40}, 1)
	s.OnPheromoneChanged(1, r2.Vec{X: 40, Y: 40}, -1)

	st := s.Stats()
	want := Stats{Ants: 2, Returning: 0, Trips: 1, Trails: 2, ActiveTrails: 1, PeakIntensity: 2}
	if st != want {
		t.Errorf("Stats() = %+v, want %+v", st, want)
	}

	n := 0
	s.EachTrail(func(loc components.Location, tr components.Trail) {
		n++
		if tr.ID != 0 || tr.Intensity != 2 {
			t.Errorf("visible trail = %+v, want pheromone 0 at 2", tr)
		}
	})
	if n != 1 {
		t.Errorf("EachTrail visited %d trails, want 1", n)
	}
}

func TestSceneLevelRepairsLostChange(t *testing.T) {
	s := New(components.Footprint{})
	pos := r2.Vec{X: 5, Y: 5}

	s.OnPheromoneLevel(3, pos, 1)
	// Levels 2 and 3 never arrive.
	s.OnPheromoneLevel(3, pos, 4)

	var got int32 = -1
	s.EachTrail(func(_ components.Location, tr components.Trail) { got = tr.Intensity })
	if got != 4 {
		t.Errorf("Intensity = %d, want 4", got)
	}

	s.OnPheromoneLevel(3, pos, 0)
	st := s.Stats()
	if st.Trails != 1 || st.ActiveTrails != 0 || st.PeakIntensity != 4 {
		t.Errorf("Stats() = %+v, want 1 trail, none active, peak 4", st)
	}
}

func TestSceneMoveBeforeSpawn(t *testing.T) {
	s := New(components.Footprint{})
	s.OnAntMoved(7, r2.Vec{X: 3, Y: 4})

	v, ok := s.Ant(7)
	if !ok {
		t.Fatal("ant created by move not found")
	}
	if v.Location != (components.Location{X: 3, Y: 4}) {
		t.Errorf("Location = %+v, want {3 4}", v.Location)
	}
	if s.Stats().Ants != 1 {
		t.Errorf("Ants = %d, want 1", s.Stats().Ants)
	}
	s.OnAntTurned(99, true)
	if s.Stats().Returning != 0 {
		t.Error("turn for unknown ant counted")
	}
}

func TestAntAt(t *testing.T) {
	s := New(components.Footprint{})
	s.OnAntSpawned(0, r2.Vec{X: 100, Y: 100})
	s.OnAntSpawned(1, r2.Vec{X: 104, Y: 100})

	tests := []struct {
		x, y   float32
		want   components.AntID
		wantOK bool
	}{
		{x: 101, y: 100, want: 0, wantOK: true},
		{x: 103, y: 100, want: 1, wantOK: true},
		{x: 200, y: 200, wantOK: false},
	}
	for _, tc := range tests {
		got, ok := s.AntAt(tc.x, tc.y, 5)
		if ok != tc.wantOK || (ok && got != tc.want) {
			t.Errorf("AntAt(%v, %v) = %d, %v, want %d, %v", tc.x, tc.y, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestSceneFollowsBoard(t *testing.T) {
	s := config.DefaultSettings()
	s.AntsPerSecond = 8
	s.MaxAnts = 8
	b := game.NewBoard(layout.Default(), s, game.Options{Seed: 11})

	sc := New(components.Footprint{SemiMajor: float32(s.SemiMajorAxis), SemiMinor: float32(s.SemiMinorAxis)})
	if err := b.Subscribe(sc); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	if !sc.Subscribed() {
		t.Fatal("Subscribed() = false after Subscribe")
	}

	b.SpawnBatch()
	for i := 0; i < 5; i++ {
		if err := b.Step(); err != nil {
			t.Fatal(err)
		}
	}
	b.Stop()

	st := sc.Stats()
	if st.Ants != b.AntCount() {
		t.Errorf("mirrored ants = %d, want %d", st.Ants, b.AntCount())
	}
	if st.Trails != b.PheromoneCount() {
		t.Errorf("mirrored trails = %d, want %d", st.Trails, b.PheromoneCount())
	}
	active := 0
	for _, p := range b.Field().Snapshot() {
		if p.Intensity() > 0 {
			active++
		}
	}
	if st.ActiveTrails != active {
		t.Errorf("active trails = %d, want %d", st.ActiveTrails, active)
	}
	sc.EachTrail(func(_ components.Location, tr components.Trail) {
		if want := b.Field().Get(tr.ID).Intensity(); int(tr.Intensity) != want {
			t.Errorf("trail %d intensity = %d, want %d", tr.ID, tr.Intensity, want)
		}
	})

	for _, a := range b.Ants() {
		v, ok := sc.Ant(a.ID)
		if !ok {
			t.Errorf("ant %d not mirrored", a.ID)
			continue
		}
		want := components.Location{}
		want.Set(a.Position())
		if v.Location != want {
			t.Errorf("ant %d at %+v, want %+v", a.ID, v.Location, want)
		}
	}
}
