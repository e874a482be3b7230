// Package dedupe tracks partition IDs so a partition is filled at most
// once even when the source re-emits it.
package dedupe

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Deduper records seen partition IDs for at-most-once filling.
type Deduper interface {
	// SeenAndRecord atomically checks whether id was seen and records it
	// if not. Returns true when id was already seen.
	SeenAndRecord(ctx context.Context, id uuid.UUID) bool

	// Unrecord removes an ID so the partition can be retried. Used when
	// a partition was recorded but its fill failed and it re-enters the
	// feed under the same ID.
	Unrecord(ctx context.Context, id uuid.UUID)

	Size() int64
}

// inMemoryDeduper implements Deduper with a map guarded by a mutex. A
// run's partition count is bounded by EventCount/BatchSize plus retry
// splits, so no eviction is needed.
type inMemoryDeduper struct {
	mu   sync.Mutex
	seen map[uuid.UUID]struct{}
	size atomic.Int64
}

// NewInMemoryDeduper creates an in-memory deduper.
func NewInMemoryDeduper() Deduper {
	return &inMemoryDeduper{seen: make(map[uuid.UUID]struct{})}
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id uuid.UUID) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		return true
	}
	d.seen[id] = struct{}{}
	d.size.Add(1)
	return false
}

func (d *inMemoryDeduper) Unrecord(_ context.Context, id uuid.UUID) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.seen[id]; exists {
		delete(d.seen, id)
		d.size.Add(-1)
	}
}

// Size returns the current number of recorded IDs.
func (d *inMemoryDeduper) Size() int64 {
	return d.size.Load()
}
