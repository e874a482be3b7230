// Package results holds the merged histogram state of a run and serves
// reads while workers keep merging partial sets into it.
package results

import (
	"context"
	"sync"

	"github.com/mariajose2398/SIDM/internal/domain/hist"
	"github.com/mariajose2398/SIDM/internal/registry"
	"github.com/mariajose2398/SIDM/pkg/metrics"
)

// Store accumulates partial histogram sets into one merged view.
type Store interface {
	// MergeSet folds a worker's partial set into the store. The first
	// merged set fixes the histogram selection; later sets must cover
	// the same names.
	MergeSet(ctx context.Context, s *registry.Set) error

	// Get returns the merged histogram under name.
	// Returns ErrEmpty before the first merge.
	Get(ctx context.Context, name string) (*hist.Histogram, error)

	// Names returns the stored histogram names in registry order.
	Names(ctx context.Context) []string

	// TotalEntries returns the summed entry count over all histograms.
	TotalEntries(ctx context.Context) uint64

	// Set returns the merged set itself, or nil before the first merge.
	Set(ctx context.Context) *registry.Set
}

// InMemoryStore implements Store guarded by a read-write mutex.
type InMemoryStore struct {
	mu     sync.RWMutex
	merged *registry.Set
}

// NewInMemoryStore creates an empty store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// MergeSet folds a partial set into the store.
func (st *InMemoryStore) MergeSet(_ context.Context, s *registry.Set) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	if st.merged == nil {
		st.merged = s.Clone()
	}
	if err := st.merged.Merge(s); err != nil {
		metrics.RecordErrorByComponent("results", "merge_mismatch")
		return err
	}

	for _, name := range st.merged.Names() {
		h, err := st.merged.Get(name)
		if err != nil {
			continue
		}
		metrics.UpdateHistogramEntries(name, h.Storage().Entries())
	}
	return nil
}

// Get returns the merged histogram under name.
func (st *InMemoryStore) Get(_ context.Context, name string) (*hist.Histogram, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.merged == nil {
		return nil, ErrEmpty
	}
	return st.merged.Get(name)
}

// Names returns the stored histogram names in registry order.
func (st *InMemoryStore) Names(_ context.Context) []string {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.merged == nil {
		return nil
	}
	return st.merged.Names()
}

// TotalEntries returns the summed entry count over all histograms.
func (st *InMemoryStore) TotalEntries(_ context.Context) uint64 {
	st.mu.RLock()
	defer st.mu.RUnlock()

	if st.merged == nil {
		return 0
	}
	return st.merged.TotalEntries()
}

// Set returns the merged set, or nil before the first merge.
func (st *InMemoryStore) Set(_ context.Context) *registry.Set {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.merged
}
