package telemetry

import (
	"sync"
	"testing"
	"time"
)

func TestCollectorFlush(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewCollector(10 * time.Second)
	c.SetClock(func() time.Time { return now })

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.RecordGuidedMove()
				c.RecordDeposit(j == 0)
			}
			c.RecordRandomMove()
			c.RecordSpawn()
		}()
	}
	wg.Wait()
	c.RecordArrival()
	c.RecordEvaporation()
	c.RecordDroppedEvents(3)

	if c.ShouldFlush() {
		t.Error("ShouldFlush() = true before the window elapsed")
	}
	now = now.Add(10 * time.Second)
	if !c.ShouldFlush() {
		t.Error("ShouldFlush() = false after the window elapsed")
	}

	s := c.Flush(Snapshot{Ants: 8, Returning: 1, Pheromones: 2, Intensities: []float64{1, 3}})

	if s.Spawns != 8 {
		t.Errorf("Spawns = %d, want 8", s.Spawns)
	}
	if s.Moves != 808 || s.GuidedMoves != 800 || s.RandomMoves != 8 {
		t.Errorf("moves = %d/%d/%d, want 808/800/8", s.Moves, s.GuidedMoves, s.RandomMoves)
	}
	if s.Deposits != 800 || s.PheromoneCreated != 8 {
		t.Errorf("deposits = %d (%d created), want 800 (8 created)", s.Deposits, s.PheromoneCreated)
	}
	if s.Arrivals != 1 || s.TotalArrivals != 1 || s.Evaporations != 1 || s.DroppedEvents != 3 {
		t.Errorf("unexpected counters: %+v", s)
	}
	if s.WindowEndSec != 10 {
		t.Errorf("WindowEndSec = %v, want 10", s.WindowEndSec)
	}
	if s.IntensityMean != 2 || s.ActiveTrail != 2 {
		t.Errorf("intensity mean/active = %v/%d, want 2/2", s.IntensityMean, s.ActiveTrail)
	}

	// Window counters reset, totals carry over.
	c.RecordArrival()
	now = now.Add(10 * time.Second)
	s = c.Flush(Snapshot{})
	if s.Moves != 0 || s.Arrivals != 1 || s.TotalArrivals != 2 {
		t.Errorf("second window moves/arrivals/total = %d/%d/%d, want 0/1/2", s.Moves, s.Arrivals, s.TotalArrivals)
	}
	if s.WindowStartSec != 10 || s.WindowEndSec != 20 {
		t.Errorf("second window = [%v, %v], want [10, 20]", s.WindowStartSec, s.WindowEndSec)
	}
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.RecordSpawn()
	c.RecordGuidedMove()
	c.RecordDeposit(true)
	c.RecordArrival()
	if c.ShouldFlush() {
		t.Error("nil collector should never flush")
	}
}
