package game

import (
	"testing"
	"time"

	"github.com/pthm-cable/aco/components"
)

// stalled blocks in its first pheromone callback until release is closed.
type stalled struct {
	NopSubscriber
	entered chan struct{}
	release chan struct{}
	levels  chan int
}

func newStalled() *stalled {
	return &stalled{
		entered: make(chan struct{}),
		release: make(chan struct{}),
		levels:  make(chan int, 16),
	}
}

func (s *stalled) OnPheromoneLevel(_ components.PheromoneID, _ components.Position, intensity int) {
	if intensity == 1 {
		close(s.entered)
		<-s.release
	}
	s.levels <- intensity
}

func pheromoneEvent(intensity int) Event {
	return Event{Type: EventPheromoneChanged, Pheromone: 1, Delta: 1, Intensity: intensity}
}

func TestPublishWaitsForRoom(t *testing.T) {
	r := newRegistry(1, 20*time.Millisecond, nil)
	s := newStalled()
	if err := r.subscribe(s); err != nil {
		t.Fatal(err)
	}

	r.publish(pheromoneEvent(1))
	<-s.entered
	r.publish(pheromoneEvent(2)) // fills the queue

	start := time.Now()
	r.publish(pheromoneEvent(3))
	if waited := time.Since(start); waited < 20*time.Millisecond {
		t.Errorf("publish on a full queue returned after %v, want at least 20ms", waited)
	}
	sub := r.subs[s]
	if got := sub.dropped.Load(); got != 1 {
		t.Fatalf("dropped = %d, want 1", got)
	}

	// A consumer that catches up within the wait loses nothing.
	r.wait = 2 * time.Second
	go func() {
		time.Sleep(10 * time.Millisecond)
		close(s.release)
	}()
	r.publish(pheromoneEvent(4))
	if got := sub.dropped.Load(); got != 1 {
		t.Errorf("dropped = %d after the consumer caught up, want 1", got)
	}

	r.close()
	close(s.levels)
	var got []int
	for v := range s.levels {
		got = append(got, v)
	}
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 4 {
		t.Errorf("delivered levels = %v, want [1 2 4]", got)
	}
}

func TestPublishWithoutWaitDrops(t *testing.T) {
	r := newRegistry(1, 0, nil)
	s := newStalled()
	if err := r.subscribe(s); err != nil {
		t.Fatal(err)
	}
	defer func() {
		close(s.release)
		r.close()
	}()

	r.publish(pheromoneEvent(1))
	<-s.entered
	r.publish(pheromoneEvent(2))
	r.publish(pheromoneEvent(3))
	if got := r.subs[s].dropped.Load(); got != 1 {
		t.Errorf("dropped = %d, want 1", got)
	}
}

// both implements the delta and the level callbacks.
type both struct {
	NopSubscriber
	deltas []int
	levels []int
}

func (b *both) OnPheromoneChanged(_ components.PheromoneID, _ components.Position, delta int) {
	b.deltas = append(b.deltas, delta)
}

func (b *both) OnPheromoneLevel(_ components.PheromoneID, _ components.Position, intensity int) {
	b.levels = append(b.levels, intensity)
}

func TestDeliverPrefersLevels(t *testing.T) {
	var lv both
	Event{Type: EventPheromoneChanged, Delta: -1, Intensity: 6}.deliver(&lv)
	if len(lv.deltas) != 0 || len(lv.levels) != 1 || lv.levels[0] != 6 {
		t.Errorf("level subscriber got deltas %v levels %v, want levels [6]", lv.deltas, lv.levels)
	}

	r := newRecorder()
	Event{Type: EventPheromoneChanged, Pheromone: 2, Delta: 3, Intensity: 6}.deliver(r)
	if r.intensity[2] != 3 {
		t.Errorf("delta subscriber intensity = %d, want 3", r.intensity[2])
	}
}
