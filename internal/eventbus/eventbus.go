package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/voxelcore/worldcore/internal/vec"
)

// EventType names a message kind carried on the bus. The world actor
// currently emits exactly one: a chunk crossing.
type EventType string

// EventPlayerMovedChunks is published whenever an observer's current chunk
// coordinate changes, carrying a PlayerMovedChunksPayload.
const EventPlayerMovedChunks EventType = "player_moved_chunks"

// PlayerMovedChunksPayload is the Envelope.Payload for EventPlayerMovedChunks.
type PlayerMovedChunksPayload struct {
	NewChunkXZ vec.Vec2
}

// Envelope is the generic wrapper used for EVENT_PLAYER_MOVED_CHUNKS and any
// other loosely-coupled broadcast, as opposed to the tightly-typed
// request/response channels the gen/mesh worker pools use directly.
type Envelope struct {
	ID            string
	Timestamp     time.Time
	Source        string
	EventType     EventType
	CorrelationID string
	Payload       interface{}
	Metadata      map[string]string
}

// coalesceKey groups envelopes that only the most recent copy of needs to
// survive backpressure: one observer crossing three chunks in quick
// succession only needs subscribers to see the last one.
func (ev *Envelope) coalesceKey() string {
	return string(ev.EventType) + "|" + ev.Source
}

// Filter selects which events a subscriber receives.
type Filter struct {
	Types   []EventType // empty means all types
	Sources []string    // empty means all sources
}

// Subscription can be cancelled.
type Subscription interface {
	Unsubscribe()
}

// Handler consumes one event.
type Handler func(ctx context.Context, ev *Envelope)

// Stats is a snapshot of bus throughput.
type Stats struct {
	Published uint64
	Consumed  uint64
	Dropped   uint64 // envelopes coalesced away by a newer same-key envelope before delivery
	InFlight  int
}

// EventBus is the narrow interface the world actor publishes through.
type EventBus interface {
	Publish(ctx context.Context, ev *Envelope) error
	Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error)
	Metrics() Stats
}

type memoryBus struct {
	mu          sync.RWMutex
	subscribers map[int]subscriber
	nextID      int
	stats       Stats
	buffer      chan *Envelope
	capacity    int

	// coalesced holds, per coalesceKey, the most recent envelope that
	// overflowed buffer while it was full. The world actor's mesh pipeline
	// already dedups mesh requests by mini coord and keeps only the latest;
	// this mirrors that policy for broadcast events instead of the
	// teacher's numeric-priority drop/block split, since this bus has no
	// notion of message priority tiers.
	coalesced map[string]*Envelope
	wake      chan struct{}
}

type subscriber struct {
	filter  Filter
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewMemoryBus creates an in-process bus with the given buffer capacity.
func NewMemoryBus(capacity int) EventBus {
	mb := &memoryBus{
		subscribers: make(map[int]subscriber),
		buffer:      make(chan *Envelope, capacity),
		capacity:    capacity,
		coalesced:   make(map[string]*Envelope),
		wake:        make(chan struct{}, 1),
	}
	go mb.dispatchLoop()
	return mb
}

func (mb *memoryBus) Publish(ctx context.Context, ev *Envelope) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.Timestamp.IsZero() {
		ev.Timestamp = time.Now()
	}

	select {
	case mb.buffer <- ev:
		mb.mu.Lock()
		mb.stats.Published++
		mb.mu.Unlock()
		return nil
	default:
	}

	mb.mu.Lock()
	if _, hadPending := mb.coalesced[ev.coalesceKey()]; hadPending {
		mb.stats.Dropped++
	}
	mb.coalesced[ev.coalesceKey()] = ev
	mb.mu.Unlock()

	select {
	case mb.wake <- struct{}{}:
	default:
	}
	return nil
}

func (mb *memoryBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	mb.mu.Lock()
	id := mb.nextID
	mb.nextID++
	cctx, cancel := context.WithCancel(ctx)
	mb.subscribers[id] = subscriber{filter: f, handler: h, ctx: cctx, cancel: cancel}
	mb.mu.Unlock()

	return &memSub{bus: mb, id: id}, nil
}

func (mb *memoryBus) Metrics() Stats {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	s := mb.stats
	s.InFlight = len(mb.buffer) + len(mb.coalesced)
	return s
}

func (mb *memoryBus) dispatchLoop() {
	for {
		select {
		case ev, ok := <-mb.buffer:
			if !ok {
				return
			}
			mb.dispatch(ev)
		case <-mb.wake:
			mb.drainCoalesced()
		}
	}
}

// drainCoalesced flushes every pending coalesced envelope directly to
// subscribers, bypassing buffer since each key already represents "the
// latest state", not a queue entry competing for a buffer slot.
func (mb *memoryBus) drainCoalesced() {
	mb.mu.Lock()
	pending := mb.coalesced
	mb.coalesced = make(map[string]*Envelope)
	mb.mu.Unlock()

	for _, ev := range pending {
		mb.mu.Lock()
		mb.stats.Published++
		mb.mu.Unlock()
		mb.dispatch(ev)
	}
}

func (mb *memoryBus) dispatch(ev *Envelope) {
	mb.mu.RLock()
	subs := make([]subscriber, 0, len(mb.subscribers))
	for _, sub := range mb.subscribers {
		subs = append(subs, sub)
	}
	mb.mu.RUnlock()

	for _, sub := range subs {
		if !matchFilter(ev, sub.filter) {
			continue
		}
		go func(s subscriber) {
			select {
			case <-s.ctx.Done():
				return
			default:
				s.handler(s.ctx, ev)
				mb.mu.Lock()
				mb.stats.Consumed++
				mb.mu.Unlock()
			}
		}(sub)
	}
}

func matchFilter(ev *Envelope, f Filter) bool {
	matchType := func(val EventType, arr []EventType) bool {
		if len(arr) == 0 {
			return true
		}
		for _, v := range arr {
			if v == val {
				return true
			}
		}
		return false
	}
	matchSource := func(val string, arr []string) bool {
		if len(arr) == 0 {
			return true
		}
		for _, v := range arr {
			if v == val {
				return true
			}
		}
		return false
	}
	return matchType(ev.EventType, f.Types) && matchSource(ev.Source, f.Sources)
}

type memSub struct {
	bus *memoryBus
	id  int
}

func (s *memSub) Unsubscribe() {
	s.bus.mu.Lock()
	if sub, ok := s.bus.subscribers[s.id]; ok {
		sub.cancel()
		delete(s.bus.subscribers, s.id)
	}
	s.bus.mu.Unlock()
}
