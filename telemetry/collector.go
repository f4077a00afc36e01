// Package telemetry provides windowed colony statistics, milestone
// bookmarks, activity timing and CSV output.
package telemetry

import (
	"sync"
	"sync/atomic"
	"time"
)

// Collector accumulates simulation events within time windows and produces
// WindowStats. Record methods are safe for concurrent use and are no-ops on
// a nil Collector.
type Collector struct {
	window time.Duration
	now    func() time.Time

	mu          sync.Mutex
	start       time.Time // run start
	windowStart time.Time

	// Event counters for the current window
	spawns       atomic.Int64
	guidedMoves  atomic.Int64
	randomMoves  atomic.Int64
	blockedMoves atomic.Int64
	deposits     atomic.Int64
	created      atomic.Int64
	evaporations atomic.Int64
	arrivals     atomic.Int64
	returns      atomic.Int64
	dropped      atomic.Int64

	// Cumulative counters
	totalArrivals atomic.Int64
	totalReturns  atomic.Int64
}

// NewCollector creates a collector that flushes every window.
func NewCollector(window time.Duration) *Collector {
	if window <= 0 {
		window = 10 * time.Second
	}
	c := &Collector{window: window, now: time.Now}
	c.Reset()
	return c
}

// SetClock replaces the time source and restarts the window. Intended for tests.
func (c *Collector) SetClock(now func() time.Time) {
	c.now = now
	c.Reset()
}

// Reset restarts run and window timing.
func (c *Collector) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.start = c.now()
	c.windowStart = c.start
}

// Window returns the window length.
func (c *Collector) Window() time.Duration { return c.window }

// RecordSpawn records a new ant.
func (c *Collector) RecordSpawn() {
	if c == nil {
		return
	}
	c.spawns.Add(1)
}

// RecordGuidedMove records a move toward a selected pheromone.
func (c *Collector) RecordGuidedMove() {
	if c == nil {
		return
	}
	c.guidedMoves.Add(1)
}

// RecordRandomMove records a random move.
func (c *Collector) RecordRandomMove() {
	if c == nil {
		return
	}
	c.randomMoves.Add(1)
}

// RecordBlockedMove records a move where the ant found no free point.
func (c *Collector) RecordBlockedMove() {
	if c == nil {
		return
	}
	c.blockedMoves.Add(1)
}

// RecordDeposit records a pheromone deposit and whether it created the pheromone.
func (c *Collector) RecordDeposit(created bool) {
	if c == nil {
		return
	}
	c.deposits.Add(1)
	if created {
		c.created.Add(1)
	}
}

// RecordEvaporation records a single evaporation step.
func (c *Collector) RecordEvaporation() {
	if c == nil {
		return
	}
	c.evaporations.Add(1)
}

// RecordArrival records an ant reaching the destination.
func (c *Collector) RecordArrival() {
	if c == nil {
		return
	}
	c.arrivals.Add(1)
	c.totalArrivals.Add(1)
}

// RecordReturn records an ant getting back to the source.
func (c *Collector) RecordReturn() {
	if c == nil {
		return
	}
	c.returns.Add(1)
	c.totalReturns.Add(1)
}

// RecordDroppedEvents records subscriber events dropped on full queues.
func (c *Collector) RecordDroppedEvents(n int64) {
	if c == nil || n == 0 {
		return
	}
	c.dropped.Add(n)
}

// ShouldFlush returns true if the current window has elapsed.
func (c *Collector) ShouldFlush() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now().Sub(c.windowStart) >= c.window
}

// Snapshot is the board state sampled at the end of a window.
type Snapshot struct {
	Ants        int
	Returning   int
	Pheromones  int
	Intensities []float64 // intensity of every pheromone
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(s Snapshot) WindowStats {
	c.mu.Lock()
	now := c.now()
	start, windowStart := c.start, c.windowStart
	c.windowStart = now
	c.mu.Unlock()

	guided := int(c.guidedMoves.Swap(0))
	random := int(c.randomMoves.Swap(0))
	blocked := int(c.blockedMoves.Swap(0))
	moves := guided + random + blocked

	var guidedShare float64
	if moves > 0 {
		guidedShare = float64(guided) / float64(moves)
	}

	is := ComputeIntensityStats(s.Intensities)

	return WindowStats{
		WindowStartSec: windowStart.Sub(start).Seconds(),
		WindowEndSec:   now.Sub(start).Seconds(),

		Ants:       s.Ants,
		Returning:  s.Returning,
		Pheromones: s.Pheromones,

		Spawns:       int(c.spawns.Swap(0)),
		Moves:        moves,
		GuidedMoves:  guided,
		RandomMoves:  random,
		BlockedMoves: blocked,
		GuidedShare:  guidedShare,

		Deposits:         int(c.deposits.Swap(0)),
		PheromoneCreated: int(c.created.Swap(0)),
		Evaporations:     int(c.evaporations.Swap(0)),

		Arrivals:      int(c.arrivals.Swap(0)),
		Returns:       int(c.returns.Swap(0)),
		TotalArrivals: int(c.totalArrivals.Load()),
		TotalReturns:  int(c.totalReturns.Load()),

		DroppedEvents: int(c.dropped.Swap(0)),

		IntensityMean: is.Mean,
		IntensityStd:  is.Std,
		IntensityP50:  is.P50,
		IntensityP90:  is.P90,
		IntensityMax:  is.Max,
		ActiveTrail:   is.Active,
	}
}
