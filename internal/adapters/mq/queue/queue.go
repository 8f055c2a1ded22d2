// Package queue carries table rows from the loaders to the aggregation workers.
//
// Enqueue blocks while the buffer is full, so a slow pool applies
// backpressure to the loaders instead of dropping rows.
package queue

import (
	"context"
	"fmt"
	"sync"

	"github.com/okian/delfos/internal/domain/model"
	"github.com/okian/delfos/pkg/metrics"
)

const defaultQueueCapacity = 10_000

// Event represents the payload type flowing through the queue.
type Event = model.Row

// Queue provides blocking enqueue and channel-based dequeue semantics.
type Queue interface {
	// Enqueue adds a row, waiting for room. It fails once the queue is
	// closed or ctx is done.
	Enqueue(ctx context.Context, e Event) error

	// Dequeue returns the channel workers read from. It is closed, after
	// draining, once Close is called.
	Dequeue(ctx context.Context) <-chan Event

	// Len returns the current number of queued rows.
	Len(ctx context.Context) int

	// Close stops accepting rows. Rows already queued stay readable.
	Close() error

	// IsClosed returns true if the queue has been closed.
	IsClosed() bool
}

// InMemoryQueue implements Queue using a buffered channel.
type InMemoryQueue struct {
	events   chan Event
	capacity int

	mu     sync.RWMutex
	closed bool
}

// NewInMemoryQueue creates a new in-memory queue with configuration options.
func NewInMemoryQueue(opts ...Option) *InMemoryQueue {
	q := &InMemoryQueue{
		capacity: defaultQueueCapacity,
	}

	for _, opt := range opts {
		opt(q)
	}

	q.events = make(chan Event, q.capacity)

	metrics.UpdateQueueCapacity(q.capacity)
	metrics.UpdateQueueSize(0)

	return q
}

// Enqueue implements Queue.
func (q *InMemoryQueue) Enqueue(ctx context.Context, e Event) error {
	q.mu.RLock()
	defer q.mu.RUnlock()

	if q.closed {
		return ErrClosed
	}

	select {
	case q.events <- e:
		metrics.UpdateQueueSize(len(q.events))
		return nil
	case <-ctx.Done():
		return fmt.Errorf("enqueue %s line %d: %w", e.Table, e.Line, ctx.Err())
	}
}

// Dequeue implements Queue.
func (q *InMemoryQueue) Dequeue(_ context.Context) <-chan Event {
	return q.events
}

// Len implements Queue.
func (q *InMemoryQueue) Len(_ context.Context) int {
	size := len(q.events)
	metrics.UpdateQueueSize(size)
	return size
}

// Close implements Queue. Callers must ensure no Enqueue is blocked on a
// full buffer with a context that never ends.
func (q *InMemoryQueue) Close() error {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return nil
	}

	close(q.events)
	q.closed = true

	return nil
}

// IsClosed implements Queue.
func (q *InMemoryQueue) IsClosed() bool {
	q.mu.RLock()
	defer q.mu.RUnlock()
	return q.closed
}
