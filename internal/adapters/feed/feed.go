// Package feed moves event partitions from the source to the fill
// workers over a bounded in-memory queue. The feed is the only channel
// shared between goroutines; histograms themselves are never shared.
package feed

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mariajose2398/SIDM/internal/domain/event"
	"github.com/mariajose2398/SIDM/pkg/metrics"
)

// Default feed configuration constants.
const (
	defaultCapacity   = 256
	defaultBufferSize = 256
)

// Partition is one contiguous slice of the run's events together with
// its per-event weights. Retried halves keep fresh IDs so the dedupe
// guard treats them as new work.
type Partition struct {
	ID      uuid.UUID
	Offset  int // index of the partition's first event within the run
	Batch   *event.Batch
	Weights []float64
}

// NewPartition wraps a batch and its weights under a fresh ID.
func NewPartition(offset int, batch *event.Batch, wts []float64) Partition {
	return Partition{ID: uuid.New(), Offset: offset, Batch: batch, Weights: wts}
}

// Feed provides non-blocking enqueue and channel-based dequeue.
type Feed interface {
	// Enqueue adds a partition. Returns false when the feed is full or
	// closed and the partition was not accepted.
	Enqueue(ctx context.Context, p Partition) bool

	// Dequeue returns a channel delivering partitions as they become
	// available. The channel closes when the feed closes and drains.
	Dequeue(ctx context.Context) <-chan Partition

	// Len returns the current number of queued partitions.
	Len(ctx context.Context) int

	// Close stops further enqueues; queued partitions still drain.
	Close() error

	// IsClosed reports whether the feed has been closed.
	IsClosed() bool
}

// InMemoryFeed implements Feed using a buffered channel.
type InMemoryFeed struct {
	parts      chan Partition
	capacity   int
	bufferSize int
	mu         sync.RWMutex
	closed     bool
}

// NewInMemoryFeed creates an in-memory feed with configuration options.
func NewInMemoryFeed(opts ...Option) *InMemoryFeed {
	f := &InMemoryFeed{
		capacity:   defaultCapacity,
		bufferSize: defaultBufferSize,
	}

	for _, opt := range opts {
		opt(f)
	}

	f.parts = make(chan Partition, f.bufferSize)

	metrics.UpdateFeedCapacity(f.capacity)
	metrics.UpdateFeedSize(0)
	metrics.UpdateFeedUtilization(0)

	return f
}

// Enqueue adds a partition to the feed.
func (f *InMemoryFeed) Enqueue(ctx context.Context, p Partition) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.closed {
		metrics.RecordFeedEnqueueError()
		metrics.RecordErrorByComponent("feed", "closed")
		return false
	}

	if len(f.parts) >= f.capacity {
		metrics.RecordFeedEnqueueError()
		metrics.RecordErrorByComponent("feed", "capacity_exceeded")
		return false
	}

	select {
	case f.parts <- p:
		metrics.RecordFeedEnqueue()
		f.updateGauges()
		return true
	case <-ctx.Done():
		metrics.RecordFeedEnqueueError()
		metrics.RecordErrorByComponent("feed", "context_cancelled")
		return false
	default:
		metrics.RecordFeedEnqueueError()
		metrics.RecordErrorByComponent("feed", "feed_full")
		return false
	}
}

// Dequeue returns a channel delivering partitions as they arrive.
func (f *InMemoryFeed) Dequeue(ctx context.Context) <-chan Partition {
	out := make(chan Partition)
	go func() {
		defer close(out)
		for p := range f.parts {
			select {
			case out <- p:
				metrics.RecordFeedDequeue()
				f.updateGauges()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// Len returns the current number of queued partitions.
func (f *InMemoryFeed) Len(_ context.Context) int {
	size := len(f.parts)
	f.updateGauges()
	return size
}

// Close stops further enqueues.
func (f *InMemoryFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed {
		return nil
	}
	close(f.parts)
	f.closed = true
	return nil
}

// IsClosed reports whether the feed has been closed.
func (f *InMemoryFeed) IsClosed() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.closed
}

func (f *InMemoryFeed) updateGauges() {
	size := len(f.parts)
	metrics.UpdateFeedSize(size)
	metrics.UpdateFeedUtilization(float64(size) / float64(f.capacity))
}
