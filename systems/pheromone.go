package systems

import (
	"sync"
	"time"

	"github.com/pthm-cable/aco/components"
)

// Pheromone is a trail marker at a fixed position. Its intensity and
// timestamp are guarded by the pheromone's own lock, so deposits and
// evaporation on different pheromones never contend.
type Pheromone struct {
	ID  components.PheromoneID
	Pos components.Position

	mu         sync.Mutex
	intensity  int
	lastUpdate time.Time
}

// Intensity returns the current intensity.
func (p *Pheromone) Intensity() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.intensity
}

// LastUpdate returns the time of the last intensity change.
func (p *Pheromone) LastUpdate() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lastUpdate
}

// PheromoneField maps exact board positions to pheromones.
//
// Pheromones live in an append-only arena indexed by PheromoneID; entries are
// never removed while the field exists. The field lock only guards the index
// and the arena slice, per-pheromone state has its own lock.
type PheromoneField struct {
	mu    sync.RWMutex
	index map[components.Position]components.PheromoneID
	store []*Pheromone

	timeout time.Duration
	now     func() time.Time

	// OnCreate runs once for every new pheromone, while its intensity is
	// still zero and before the creating deposit is applied.
	OnCreate func(p *Pheromone)
	// OnChange runs after every intensity change with the applied delta and
	// the resulting intensity.
	OnChange func(p *Pheromone, delta, intensity int)
}

// NewPheromoneField creates an empty field whose pheromones become eligible
// for evaporation timeout after their last update.
func NewPheromoneField(timeout time.Duration) *PheromoneField {
	return &PheromoneField{
		index:   make(map[components.Position]components.PheromoneID),
		store:   make([]*Pheromone, 0, 1024),
		timeout: timeout,
		now:     time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (f *PheromoneField) SetClock(now func() time.Time) {
	f.now = now
}

// Timeout returns the evaporation timeout.
func (f *PheromoneField) Timeout() time.Duration { return f.timeout }

// Deposit adds delta to the pheromone at pos, creating it first if needed.
// It returns the pheromone and whether this call created it.
// Intensity is clamped at zero for negative deltas.
func (f *PheromoneField) Deposit(pos components.Position, delta int) (*Pheromone, bool) {
	p, created := f.getOrCreate(pos)
	if created && f.OnCreate != nil {
		f.OnCreate(p)
	}
	f.apply(p, delta)
	return p, created
}

func (f *PheromoneField) getOrCreate(pos components.Position) (*Pheromone, bool) {
	f.mu.RLock()
	id, ok := f.index[pos]
	if ok {
		p := f.store[id]
		f.mu.RUnlock()
		return p, false
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()
	// Another deposit may have created it between the two locks.
	if id, ok := f.index[pos]; ok {
		return f.store[id], false
	}
	p := &Pheromone{
		ID:         components.PheromoneID(len(f.store)),
		Pos:        pos,
		lastUpdate: f.now(),
	}
	f.store = append(f.store, p)
	f.index[pos] = p.ID
	return p, true
}

// apply changes the intensity under the pheromone's lock and reports the
// change. The hook runs while the lock is held so observers see changes to
// one pheromone in the order they were applied.
func (f *PheromoneField) apply(p *Pheromone, delta int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.intensity+delta < 0 {
		delta = -p.intensity
	}
	p.intensity += delta
	p.lastUpdate = f.now()
	if delta != 0 && f.OnChange != nil {
		f.OnChange(p, delta, p.intensity)
	}
}

// Evaporate decrements p by one if its intensity is positive and it has not
// been updated for at least the timeout. It reports whether p changed.
func (f *PheromoneField) Evaporate(p *Pheromone) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := f.now()
	if p.intensity <= 0 || now.Sub(p.lastUpdate) < f.timeout {
		return false
	}
	p.intensity--
	p.lastUpdate = now
	if f.OnChange != nil {
		f.OnChange(p, -1, p.intensity)
	}
	return true
}

// Sweep runs Evaporate over every pheromone and returns how many changed.
func (f *PheromoneField) Sweep() int {
	n := 0
	for _, p := range f.Snapshot() {
		if f.Evaporate(p) {
			n++
		}
	}
	return n
}

// Snapshot returns the pheromones that exist now, in creation order.
// The returned slice must not be modified.
func (f *PheromoneField) Snapshot() []*Pheromone {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.store[:len(f.store):len(f.store)]
}

// Get returns the pheromone with the given ID, or nil.
func (f *PheromoneField) Get(id components.PheromoneID) *Pheromone {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if int(id) >= len(f.store) {
		return nil
	}
	return f.store[id]
}

// At returns the pheromone at exactly pos.
func (f *PheromoneField) At(pos components.Position) (*Pheromone, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	id, ok := f.index[pos]
	if !ok {
		return nil, false
	}
	return f.store[id], true
}

// Len returns the number of pheromones ever created.
func (f *PheromoneField) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.store)
}

// Empty reports whether no pheromone has been created yet.
func (f *PheromoneField) Empty() bool {
	return f.Len() == 0
}
