// Package game runs the colony simulation: a Board owns the pheromone field
// and the ants and drives the spawn, move and evaporate activities.
package game

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"runtime"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/config"
	"github.com/pthm-cable/aco/geom"
	"github.com/pthm-cable/aco/layout"
	"github.com/pthm-cable/aco/systems"
	"github.com/pthm-cable/aco/telemetry"
)

// Board lifecycle errors.
var (
	ErrStopped = errors.New("board stopped")
	ErrRunning = errors.New("board already running")
)

// Options holds optional board collaborators.
type Options struct {
	Seed      int64                    // RNG seed (0 = time-based)
	Collector *telemetry.Collector     // nil disables event counters
	Perf      *telemetry.PerfCollector // nil disables activity timing
	Clock     func() time.Time         // pheromone clock, nil = time.Now
}

// Board is a running colony on a fixed layout.
type Board struct {
	layout   *layout.Layout
	settings config.Settings
	nav      *systems.Navigator
	field    *systems.PheromoneField

	// antsMu also guards rng; an ant's ID is its index in ants.
	antsMu sync.RWMutex
	ants   []*systems.Ant // append-only
	rng    *rand.Rand

	gate *Gate
	pool *workerPool
	subs *registry

	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	mu       sync.Mutex
	running  bool
	stopped  bool
	cancel   context.CancelFunc
	shutdown sync.Once
	done     chan struct{}
}

// NewBoard creates a board for a validated layout. The source and
// destination keep the radii they were placed with.
func NewBoard(l *layout.Layout, s config.Settings, opts Options) *Board {
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	b := &Board{
		layout:   l,
		settings: s,
		nav: &systems.Navigator{
			Bounds:      l.Bounds,
			Obstacles:   l.Obstacles,
			Source:      l.Source,
			Destination: l.Destination,
			Params: systems.NavParams{
				Clusters:     s.Clusters,
				StepFraction: s.StepFraction,
				RandomStep:   s.RandomStep,
				MaxResample:  s.MaxResample,
			},
		},
		field:     systems.NewPheromoneField(s.EvaporationTimeout),
		ants:      make([]*systems.Ant, 0, s.MaxAnts+s.AntsPerSecond),
		rng:       rand.New(rand.NewSource(seed)),
		gate:      NewGate(),
		pool:      newWorkerPool(s.PoolSize),
		collector: opts.Collector,
		perf:      opts.Perf,
		done:      make(chan struct{}),
	}
	b.subs = newRegistry(s.EventBuffer, s.EventWait, opts.Collector)
	if opts.Clock != nil {
		b.field.SetClock(opts.Clock)
	}
	b.field.OnCreate = b.observeNew
	b.field.OnChange = b.pheromoneChanged
	return b
}

// Build validates the builder's layout and creates a board from it.
func Build(lb *layout.Builder, s config.Settings, opts Options) (*Board, error) {
	l, err := lb.Build()
	if err != nil {
		return nil, err
	}
	return NewBoard(l, s, opts), nil
}

// Layout returns the board layout.
func (b *Board) Layout() *layout.Layout { return b.layout }

// Bounds returns the enclosing rectangle.
func (b *Board) Bounds() geom.Rect { return b.layout.Bounds }

// Source returns the source region.
func (b *Board) Source() geom.Ellipse { return b.layout.Source }

// Destination returns the destination region.
func (b *Board) Destination() geom.Ellipse { return b.layout.Destination }

// Obstacles returns the obstacle set. The slice must not be modified.
func (b *Board) Obstacles() []geom.Rect { return b.layout.Obstacles }

// Settings returns the runtime settings.
func (b *Board) Settings() config.Settings { return b.settings }

// Field returns the pheromone field.
func (b *Board) Field() *systems.PheromoneField { return b.field }

// Ants returns the live ants in spawn order. The slice must not be modified.
func (b *Board) Ants() []*systems.Ant {
	b.antsMu.RLock()
	defer b.antsMu.RUnlock()
	return b.ants[:len(b.ants):len(b.ants)]
}

// Ant returns the ant with the given ID. IDs are assigned in spawn order
// starting at zero.
func (b *Board) Ant(id components.AntID) (*systems.Ant, bool) {
	b.antsMu.RLock()
	defer b.antsMu.RUnlock()
	if int(id) >= len(b.ants) {
		return nil, false
	}
	return b.ants[id], true
}

// AntCount returns the number of live ants.
func (b *Board) AntCount() int {
	b.antsMu.RLock()
	defer b.antsMu.RUnlock()
	return len(b.ants)
}

// PheromoneCount returns the number of pheromones ever created.
func (b *Board) PheromoneCount() int { return b.field.Len() }

// Paused reports whether the activities are paused.
func (b *Board) Paused() bool { return b.gate.Paused() }

// Stopped reports whether Stop was called.
func (b *Board) Stopped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopped
}

// Running reports whether Run is active.
func (b *Board) Running() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.running
}

// Done is closed once the board is stopped and its subscribers are drained.
func (b *Board) Done() <-chan struct{} { return b.done }

// Pause holds every activity at its next gate check.
func (b *Board) Pause() {
	if b.gate.Pause() {
		slog.Info("board paused", "ants", b.AntCount(), "pheromones", b.PheromoneCount())
	}
}

// Resume releases paused activities.
func (b *Board) Resume() {
	if b.gate.Resume() {
		slog.Info("board resumed")
	}
}

// TogglePause pauses a running board or resumes a paused one and returns
// the new paused state.
func (b *Board) TogglePause() bool {
	if b.Paused() {
		b.Resume()
		return false
	}
	b.Pause()
	return true
}

// Subscribe adds an observer. On failure the observer's
// OnSubscriptionFailed is called and the reason returned.
func (b *Board) Subscribe(s Subscriber) error {
	return b.subs.subscribe(s)
}

// Unsubscribe removes an observer. OnUnsubscribed is delivered after the
// events already queued for it.
func (b *Board) Unsubscribe(s Subscriber) error {
	return b.subs.unsubscribe(s)
}

// Run starts the spawn, move and evaporate activities and blocks until ctx
// is done or Stop is called; both end the run normally and return nil.
// The worker pool is released when Run returns. Subscriptions stay open
// until Unsubscribe or Stop. A stopped board cannot run again.
func (b *Board) Run(ctx context.Context) error {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return ErrStopped
	}
	if b.running {
		b.mu.Unlock()
		return ErrRunning
	}
	ctx, cancel := context.WithCancel(ctx)
	b.running = true
	b.cancel = cancel
	b.mu.Unlock()

	slog.Info("board started",
		"ants", b.AntCount(),
		"max_ants", b.settings.MaxAnts,
		"obstacles", len(b.layout.Obstacles),
		"workers", b.pool.numWorkers,
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return b.spawnLoop(gctx) })
	g.Go(func() error { return b.moveLoop(gctx) })
	g.Go(func() error { return b.evaporateLoop(gctx) })
	err := g.Wait()
	cancel()
	b.pool.release()

	b.mu.Lock()
	b.running = false
	b.cancel = nil
	stopped := b.stopped
	b.mu.Unlock()

	if stopped {
		b.close()
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		err = nil
	}
	return err
}

// Stop ends the board permanently. A running Run returns once its
// activities have finished their current round. Stop must not be called
// from a subscriber callback.
func (b *Board) Stop() {
	b.mu.Lock()
	if b.stopped {
		b.mu.Unlock()
		return
	}
	b.stopped = true
	cancel, running := b.cancel, b.running
	b.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if !running {
		b.close()
	}
}

// close releases the workers and drains subscribers. Runs once.
func (b *Board) close() {
	b.shutdown.Do(func() {
		b.pool.stop()
		b.subs.close()
		close(b.done)
		slog.Info("board stopped", "ants", b.AntCount(), "pheromones", b.PheromoneCount())
	})
}

// spawnLoop spawns a batch every spawn interval until the cap is reached.
func (b *Board) spawnLoop(ctx context.Context) error {
	for {
		if err := b.gate.Wait(ctx); err != nil {
			return err
		}
		if b.AntCount() >= b.settings.MaxAnts {
			slog.Info("spawn cap reached", "ants", b.AntCount())
			return nil
		}
		start := time.Now()
		b.SpawnBatch()
		b.perf.Time(telemetry.ActivitySpawn, start)

		if err := sleep(ctx, b.settings.SpawnInterval); err != nil {
			return err
		}
	}
}

func (b *Board) moveLoop(ctx context.Context) error {
	for {
		if err := b.gate.Wait(ctx); err != nil {
			return err
		}
		start := time.Now()
		b.moveRound()
		b.perf.Time(telemetry.ActivityMove, start)

		if err := sleep(ctx, b.settings.MoveInterval); err != nil {
			return err
		}
	}
}

func (b *Board) evaporateLoop(ctx context.Context) error {
	for {
		if err := b.gate.Wait(ctx); err != nil {
			return err
		}
		start := time.Now()
		b.evaporateRound()
		b.perf.Time(telemetry.ActivityEvaporate, start)

		if err := sleep(ctx, b.settings.EvaporateInterval); err != nil {
			return err
		}
	}
}

// sleep waits for d or until ctx is done. A zero d only yields.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		runtime.Gosched()
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SpawnBatch adds one batch of ants around the source unless the cap is
// already reached, and returns how many were added. A batch may take the
// count past the cap by up to the batch size minus one. New ants start
// with every reachable existing pheromone in their distance cache.
func (b *Board) SpawnBatch() int {
	b.antsMu.Lock()
	if len(b.ants) >= b.settings.MaxAnts {
		b.antsMu.Unlock()
		return 0
	}
	batch := make([]*systems.Ant, b.settings.AntsPerSecond)
	for i := range batch {
		batch[i] = b.newAnt(components.AntID(len(b.ants)))
		b.ants = append(b.ants, batch[i])
	}
	b.antsMu.Unlock()

	for _, a := range batch {
		b.collector.RecordSpawn()
		b.subs.publish(Event{Type: EventAntSpawned, Ant: a.ID, Pos: a.Position()})
	}

	// Pheromones created after the append reach the batch through observeNew.
	existing := b.field.Snapshot()
	b.pool.forEach(len(batch), antParallelThreshold, func(i int) {
		for _, p := range existing {
			batch[i].Observe(p, b.nav)
		}
	})
	return len(batch)
}

// newAnt places an ant at a random offset from the source center, bounded
// per axis by the source radius plus the matching semi-axis. Offsets that
// would put the ant on an obstacle are resampled; after MaxResample misses
// the ant starts at the source center. Callers hold antsMu.
func (b *Board) newAnt(id components.AntID) *systems.Ant {
	src := b.layout.Source
	spanX := src.Radius() + b.settings.SemiMajorAxis
	spanY := src.Radius() + b.settings.SemiMinorAxis

	a := systems.NewAnt(id, src.Center, b.settings.SemiMajorAxis, b.settings.SemiMinorAxis,
		rand.New(rand.NewSource(b.rng.Int63())))
	for i := 0; i < max(b.settings.MaxResample, 1); i++ {
		pos := components.Position{
			X: src.Center.X + (b.rng.Float64()*2-1)*spanX,
			Y: src.Center.Y + (b.rng.Float64()*2-1)*spanY,
		}
		if b.nav.CanOccupy(a, pos) {
			a.MoveTo(pos)
			break
		}
	}
	return a
}

// Step runs one move round followed by one evaporation sweep on the
// calling goroutine. It must not be used while Run is active.
func (b *Board) Step() error {
	if b.Stopped() {
		return ErrStopped
	}
	if b.Running() {
		return ErrRunning
	}
	b.moveRound()
	b.evaporateRound()
	return nil
}

// moveRound advances every live ant once.
func (b *Board) moveRound() {
	ants := b.Ants()
	b.pool.forEach(len(ants), antParallelThreshold, func(i int) {
		b.moveAnt(ants[i])
	})
}

// moveAnt applies one step of the movement heuristic to a.
func (b *Board) moveAnt(a *systems.Ant) {
	next, kind := b.nav.NextPoint(a, b.field)
	switch kind {
	case systems.MoveGuided:
		b.collector.RecordGuidedMove()
	case systems.MoveRandom:
		b.collector.RecordRandomMove()
	case systems.MoveBlocked:
		b.collector.RecordBlockedMove()
	}

	if kind != systems.MoveBlocked {
		a.MoveTo(next)
		b.subs.publish(Event{Type: EventAntMoved, Ant: a.ID, Pos: next})
	}
	b.Deposit(next, b.settings.DepositAmount)

	switch a.UpdateReturning(b.layout.Source, b.layout.Destination) {
	case systems.TransitionArrived:
		b.collector.RecordArrival()
		b.subs.publish(Event{Type: EventAntTurned, Ant: a.ID, Pos: next, Returning: true})
	case systems.TransitionReturned:
		b.collector.RecordReturn()
		b.subs.publish(Event{Type: EventAntTurned, Ant: a.ID, Pos: next, Returning: false})
	}
}

// Deposit adds delta to the pheromone at pos, creating it if needed.
// A new pheromone is offered to every live ant's distance cache before
// the delta is applied.
func (b *Board) Deposit(pos components.Position, delta int) *systems.Pheromone {
	p, created := b.field.Deposit(pos, delta)
	b.collector.RecordDeposit(created)
	return p
}

// observeNew offers a just-created pheromone to every live ant. Ants
// spawned while this runs may miss it.
func (b *Board) observeNew(p *systems.Pheromone) {
	for _, a := range b.Ants() {
		a.Observe(p, b.nav)
	}
}

func (b *Board) pheromoneChanged(p *systems.Pheromone, delta, intensity int) {
	b.subs.publish(Event{Type: EventPheromoneChanged, Pheromone: p.ID, Pos: p.Pos, Delta: delta, Intensity: intensity})
}

// evaporateRound runs one evaporation sweep over the whole field.
func (b *Board) evaporateRound() {
	ps := b.field.Snapshot()
	b.pool.forEach(len(ps), pheromoneParallelThreshold, func(i int) {
		if b.field.Evaporate(ps[i]) {
			b.collector.RecordEvaporation()
		}
	})
}

// Sample returns the board state for a telemetry window.
func (b *Board) Sample() telemetry.Snapshot {
	ants := b.Ants()
	returning := 0
	for _, a := range ants {
		if a.Returning() {
			returning++
		}
	}
	ps := b.field.Snapshot()
	intensities := make([]float64, len(ps))
	for i, p := range ps {
		intensities[i] = float64(p.Intensity())
	}
	return telemetry.Snapshot{
		Ants:        len(ants),
		Returning:   returning,
		Pheromones:  len(ps),
		Intensities: intensities,
	}
}
