package game

import (
	"errors"
	"log/slog"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pthm-cable/aco/components"
	"github.com/pthm-cable/aco/telemetry"
)

// Subscription errors passed to OnSubscriptionFailed and OnUnsubscribeFailed.
var (
	ErrAlreadySubscribed = errors.New("already subscribed")
	ErrNotSubscribed     = errors.New("not subscribed")
	ErrNotComparable     = errors.New("subscriber type is not comparable")
)

// Subscriber observes a board. Callbacks for one subscriber are delivered
// in order on a goroutine owned by its subscription, never on a simulation
// activity. Subscribers must not mutate the board.
type Subscriber interface {
	OnAntSpawned(id components.AntID, pos components.Position)
	OnAntMoved(id components.AntID, pos components.Position)
	OnPheromoneChanged(id components.PheromoneID, pos components.Position, delta int)

	OnSubscribed()
	OnSubscriptionFailed(reason error)
	OnUnsubscribed()
	OnUnsubscribeFailed(reason error)
}

// TurnSubscriber is implemented by subscribers that also want travel state
// changes.
type TurnSubscriber interface {
	OnAntTurned(id components.AntID, returning bool)
}

// LevelSubscriber is implemented by subscribers that mirror intensities.
// They receive OnPheromoneLevel with the intensity after each change in
// place of OnPheromoneChanged, so a dropped event is corrected by the next
// change to the same pheromone.
type LevelSubscriber interface {
	OnPheromoneLevel(id components.PheromoneID, pos components.Position, intensity int)
}

// NopSubscriber implements Subscriber with no-ops. Embed it to override only
// the callbacks you need.
type NopSubscriber struct{}

func (NopSubscriber) OnAntSpawned(components.AntID, components.Position)                  {}
func (NopSubscriber) OnAntMoved(components.AntID, components.Position)                    {}
func (NopSubscriber) OnPheromoneChanged(components.PheromoneID, components.Position, int) {}
func (NopSubscriber) OnSubscribed()                                                       {}
func (NopSubscriber) OnSubscriptionFailed(error)                                          {}
func (NopSubscriber) OnUnsubscribed()                                                     {}
func (NopSubscriber) OnUnsubscribeFailed(error)                                           {}

// EventType identifies a board event.
type EventType uint8

const (
	EventAntSpawned EventType = iota
	EventAntMoved
	EventAntTurned
	EventPheromoneChanged
)

func (t EventType) String() string {
	switch t {
	case EventAntSpawned:
		return "ant_spawned"
	case EventAntMoved:
		return "ant_moved"
	case EventAntTurned:
		return "ant_turned"
	case EventPheromoneChanged:
		return "pheromone_changed"
	default:
		return "unknown"
	}
}

// Event is a single change on the board.
type Event struct {
	Type      EventType
	Ant       components.AntID       // ant events
	Pheromone components.PheromoneID // pheromone events
	Pos       components.Position
	Delta     int  // intensity change, pheromone events
	Intensity int  // intensity after the change, pheromone events
	Returning bool // new travel state, turn events
}

// deliver invokes the matching callback.
func (ev Event) deliver(s Subscriber) {
	switch ev.Type {
	case EventAntSpawned:
		s.OnAntSpawned(ev.Ant, ev.Pos)
	case EventAntMoved:
		s.OnAntMoved(ev.Ant, ev.Pos)
	case EventAntTurned:
		if ts, ok := s.(TurnSubscriber); ok {
			ts.OnAntTurned(ev.Ant, ev.Returning)
		}
	case EventPheromoneChanged:
		if ls, ok := s.(LevelSubscriber); ok {
			ls.OnPheromoneLevel(ev.Pheromone, ev.Pos, ev.Intensity)
			return
		}
		s.OnPheromoneChanged(ev.Pheromone, ev.Pos, ev.Delta)
	}
}

// subscription queues events for one subscriber and dispatches them on its
// own goroutine. A full queue holds the producer for up to the registry's
// wait and then drops the event.
type subscription struct {
	sub     Subscriber
	events  chan Event
	done    chan struct{}
	dropped atomic.Int64

	// set before events is closed when the subscriber asked to leave
	unsubscribed bool
}

func (s *subscription) dispatch() {
	defer close(s.done)
	for ev := range s.events {
		ev.deliver(s.sub)
	}
	if s.unsubscribed {
		s.sub.OnUnsubscribed()
	}
}

// registry is the board's subscriber set.
type registry struct {
	mu        sync.RWMutex
	subs      map[Subscriber]*subscription
	buffer    int
	wait      time.Duration
	closed    bool
	collector *telemetry.Collector
}

func newRegistry(buffer int, wait time.Duration, collector *telemetry.Collector) *registry {
	if buffer <= 0 {
		buffer = 1024
	}
	return &registry{
		subs:      make(map[Subscriber]*subscription),
		buffer:    buffer,
		wait:      wait,
		collector: collector,
	}
}

func (r *registry) subscribe(s Subscriber) error {
	if s == nil {
		return ErrNotComparable
	}
	if !reflect.TypeOf(s).Comparable() {
		s.OnSubscriptionFailed(ErrNotComparable)
		return ErrNotComparable
	}

	r.mu.Lock()
	var err error
	switch {
	case r.closed:
		err = ErrStopped
	case r.subs[s] != nil:
		err = ErrAlreadySubscribed
	}
	if err != nil {
		r.mu.Unlock()
		s.OnSubscriptionFailed(err)
		return err
	}

	sub := &subscription{
		sub:    s,
		events: make(chan Event, r.buffer),
		done:   make(chan struct{}),
	}
	r.subs[s] = sub
	r.mu.Unlock()

	// Events published from here on wait in the queue until the dispatcher
	// starts, so OnSubscribed is always the first callback.
	s.OnSubscribed()
	go sub.dispatch()
	return nil
}

func (r *registry) unsubscribe(s Subscriber) error {
	if s == nil || !reflect.TypeOf(s).Comparable() {
		if s != nil {
			s.OnUnsubscribeFailed(ErrNotSubscribed)
		}
		return ErrNotSubscribed
	}

	r.mu.Lock()
	sub := r.subs[s]
	if sub == nil {
		r.mu.Unlock()
		s.OnUnsubscribeFailed(ErrNotSubscribed)
		return ErrNotSubscribed
	}
	delete(r.subs, s)
	sub.unsubscribed = true
	close(sub.events)
	r.mu.Unlock()

	if n := sub.dropped.Load(); n > 0 {
		slog.Warn("subscriber dropped events", "dropped", n)
	}
	return nil
}

// publish queues ev for every subscriber. A full queue is given up to
// r.wait to make room before the event is dropped.
func (r *registry) publish(ev Event) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sub := range r.subs {
		select {
		case sub.events <- ev:
			continue
		default:
		}
		if r.wait > 0 && sendWithin(sub.events, ev, r.wait) {
			continue
		}
		sub.dropped.Add(1)
		r.collector.RecordDroppedEvents(1)
	}
}

func sendWithin(ch chan<- Event, ev Event, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case ch <- ev:
		return true
	case <-t.C:
		return false
	}
}

// close ends every subscription without unsubscribe callbacks and waits
// for queued events to be delivered.
func (r *registry) close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	subs := make([]*subscription, 0, len(r.subs))
	for s, sub := range r.subs {
		close(sub.events)
		subs = append(subs, sub)
		delete(r.subs, s)
	}
	r.mu.Unlock()

	for _, sub := range subs {
		<-sub.done
	}
}

func (r *registry) len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.subs)
}
