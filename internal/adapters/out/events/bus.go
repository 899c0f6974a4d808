// Package events carries diagnostic and order events out of the request path.
// Publishers hand events to a Bus, which forwards them to a Sink from a single
// worker goroutine.
package events

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

const DefaultQueueSize = 256

// Event is one published event.
type Event struct {
	Name    string         `json:"event"`
	Payload map[string]any `json:"payload"`
	At      time.Time      `json:"at"`
}

// Sink delivers events somewhere. Send is only ever called from the bus
// worker, one event at a time.
type Sink interface {
	Send(ctx context.Context, e Event) error
}

// Bus implements ports.EventPublisher with a bounded queue. Publish never
// blocks: when the queue is full the event is dropped and counted.
type Bus struct {
	sink   Sink
	logger *slog.Logger
	now    func() time.Time

	mu     sync.RWMutex
	queue  chan Event
	closed bool

	dropped atomic.Uint64
	done    chan struct{}
}

func NewBus(sink Sink, logger *slog.Logger, size int) *Bus {
	if size <= 0 {
		size = DefaultQueueSize
	}
	if logger == nil {
		logger = slog.Default()
	}

	b := &Bus{
		sink:   sink,
		logger: logger.With("component", "event_bus"),
		now:    func() time.Time { return time.Now().UTC() },
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}
	go b.run()
	return b
}

func (b *Bus) Publish(name string, payload map[string]any) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		b.dropped.Add(1)
		return
	}

	select {
	case b.queue <- Event{Name: name, Payload: payload, At: b.now()}:
	default:
		if n := b.dropped.Add(1); n == 1 || n%100 == 0 {
			b.logger.Warn("event queue full, dropping events", "event", name, "dropped", n)
		}
	}
}

// Dropped reports how many events were discarded so far.
func (b *Bus) Dropped() uint64 {
	return b.dropped.Load()
}

// Close stops accepting events and waits until the queued ones are delivered
// or ctx expires.
func (b *Bus) Close(ctx context.Context) error {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()

	select {
	case <-b.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (b *Bus) run() {
	defer close(b.done)

	for e := range b.queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := b.sink.Send(ctx, e); err != nil {
			b.logger.Warn("failed to deliver event", "event", e.Name, "error", err)
		}
		cancel()
	}
}
