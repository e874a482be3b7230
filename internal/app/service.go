// Package app wires the fill pipeline together: a seeded source feeds
// event partitions to a pool of workers, each filling a private
// histogram set, and the partial sets merge into the results store once
// the feed drains.
package app

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mariajose2398/SIDM/internal/adapters/feed"
	"github.com/mariajose2398/SIDM/internal/adapters/results"
	"github.com/mariajose2398/SIDM/internal/adapters/source"
	"github.com/mariajose2398/SIDM/internal/domain/dedupe"
	"github.com/mariajose2398/SIDM/internal/domain/event"
	"github.com/mariajose2398/SIDM/internal/domain/weights"
	"github.com/mariajose2398/SIDM/internal/registry"
	"github.com/mariajose2398/SIDM/pkg/logger"
	"github.com/mariajose2398/SIDM/pkg/metrics"
)

// Default pipeline configuration constants.
const (
	defaultEventCount   = 100_000
	defaultBatchSize    = 10_000
	defaultFeedCapacity = 256
	defaultSeed         = 1
	enqueueRetryDelay   = time.Millisecond
)

// batchSource produces the run's events.
type batchSource interface {
	Generate(ctx context.Context, n int) (*event.Batch, error)
}

// Service runs one fill pass over a generated event set.
type Service struct {
	mu sync.Mutex

	feed    feed.Feed
	deduper dedupe.Deduper
	store   results.Store
	gen     batchSource

	eventCount   int
	batchSize    int
	workerCount  int
	feedCapacity int
	seed         int64
	weightScale  float64
	histograms   []string

	// pending counts partitions enqueued but not yet terminal. The feed
	// closes when it reaches zero, since splits re-enqueue new work
	// after the source is done.
	pending   atomic.Int64
	closeFeed sync.Once

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithEventCount sets the number of events to generate and fill.
func WithEventCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.eventCount = count
		}
	}
}

// WithBatchSize sets the partition size events are filled in.
func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// WithWorkerCount sets the number of fill workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithFeedCapacity sets the partition feed capacity.
func WithFeedCapacity(capacity int) Option {
	return func(s *Service) {
		if capacity > 0 {
			s.feedCapacity = capacity
		}
	}
}

// WithSeed sets the event generation seed.
func WithSeed(seed int64) Option {
	return func(s *Service) {
		s.seed = seed
	}
}

// WithWeightScale sets the per-event weight.
func WithWeightScale(scale float64) Option {
	return func(s *Service) {
		if scale > 0 {
			s.weightScale = scale
		}
	}
}

// WithHistograms restricts the run to the named histograms. Empty
// means the full registry.
func WithHistograms(names []string) Option {
	return func(s *Service) {
		s.histograms = names
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		eventCount:   defaultEventCount,
		batchSize:    defaultBatchSize,
		workerCount:  runtime.NumCPU(),
		feedCapacity: defaultFeedCapacity,
		seed:         defaultSeed,
		weightScale:  1.0,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("app")
	}

	return s
}

// Results returns the merged histogram store. Complete only after Run
// has returned.
func (s *Service) Results() results.Store {
	return s.store
}

// DedupeSize returns the number of partition IDs recorded so far.
func (s *Service) DedupeSize() int64 {
	if s.deduper == nil {
		return 0
	}
	return s.deduper.Size()
}

// Run generates the event set, fills every selected histogram and
// merges the worker results. It returns once the merged store is
// complete.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.feed = feed.NewInMemoryFeed(
		feed.WithCapacity(s.feedCapacity),
		feed.WithBufferSize(s.feedCapacity),
	)
	s.deduper = dedupe.NewInMemoryDeduper()
	s.store = results.NewInMemoryStore()
	s.pending.Store(0)
	s.closeFeed = sync.Once{}

	metrics.UpdateWorkerCount(s.workerCount)

	s.logger.Info(ctx, "starting fill run",
		logger.Int("events", s.eventCount),
		logger.Int("batchSize", s.batchSize),
		logger.Int("workers", s.workerCount),
		logger.Int64("seed", s.seed),
	)

	gen := s.gen
	if gen == nil {
		gen = source.New(source.WithSeed(s.seed))
	}
	run, err := gen.Generate(ctx, s.eventCount)
	if err != nil {
		return fmt.Errorf("generate events: %w", err)
	}

	runWeights := weights.New(weights.WithScale(s.weightScale)).Vector(s.eventCount)

	workerSets := make([]*registry.Set, s.workerCount)
	for i := range workerSets {
		set, err := registry.NewSet(s.histograms...)
		if err != nil {
			return fmt.Errorf("build histogram set: %w", err)
		}
		workerSets[i] = set
	}

	var wg sync.WaitGroup
	for i, set := range workerSets {
		wg.Add(1)
		go func(name string, set *registry.Set) {
			defer wg.Done()
			s.runWorker(ctx, name, set)
		}(strconv.Itoa(i), set)
	}

	if err := s.produce(ctx, run, runWeights); err != nil {
		s.closeFeed.Do(func() { _ = s.feed.Close() })
		wg.Wait()
		return err
	}

	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}

	mergeStart := time.Now()
	for _, set := range workerSets {
		if err := s.store.MergeSet(ctx, set); err != nil {
			return fmt.Errorf("merge worker set: %w", err)
		}
	}
	metrics.RecordMergeLatency(float64(time.Since(mergeStart).Milliseconds()))

	s.logger.Info(ctx, "fill run complete",
		logger.Uint64("entries", s.store.TotalEntries(ctx)),
		logger.Int64("partitions", s.deduper.Size()),
	)

	return nil
}

// produce slices the run into partitions and enqueues them. The feed
// closes once every partition, split halves included, is terminal. A
// producer token keeps the pending count above zero until the last
// initial partition is in, so fast workers cannot close the feed early.
func (s *Service) produce(ctx context.Context, run *event.Batch, runWeights []float64) error {
	s.pending.Add(1)

	total := run.Len()
	for lo := 0; lo < total; lo += s.batchSize {
		hi := lo + s.batchSize
		if hi > total {
			hi = total
		}
		chunk, err := run.Slice(lo, hi)
		if err != nil {
			s.settle(1)
			return fmt.Errorf("slice run: %w", err)
		}
		if !s.enqueue(ctx, feed.NewPartition(lo, chunk, runWeights[lo:hi])) {
			s.settle(1)
			return fmt.Errorf("enqueue partition at %d: %w", lo, ctx.Err())
		}
	}
	s.settle(1)
	return nil
}

// enqueue retries until the feed accepts the partition or ctx ends.
// The pending count is raised before the attempt so the feed cannot
// close underneath a retry.
func (s *Service) enqueue(ctx context.Context, p feed.Partition) bool {
	s.pending.Add(1)
	for {
		if s.feed.Enqueue(ctx, p) {
			return true
		}
		select {
		case <-ctx.Done():
			s.settle(1)
			return false
		case <-time.After(enqueueRetryDelay):
		}
	}
}

// settle retires n pending partitions and closes the feed when none
// remain.
func (s *Service) settle(n int64) {
	if s.pending.Add(-n) == 0 {
		s.closeFeed.Do(func() { _ = s.feed.Close() })
	}
}

// runWorker drains the feed into a private histogram set.
func (s *Service) runWorker(ctx context.Context, name string, set *registry.Set) {
	log := s.logger.Named("worker-" + name)

	for p := range s.feed.Dequeue(ctx) {
		if s.deduper.SeenAndRecord(ctx, p.ID) {
			metrics.RecordDuplicateBatch()
			log.Debug(ctx, "skipping duplicate partition", logger.String("id", p.ID.String()))
			s.settle(1)
			continue
		}

		start := time.Now()
		err := set.Fill(p.Batch, p.Weights)
		metrics.RecordFillLatency(float64(time.Since(start).Milliseconds()))

		if err != nil {
			metrics.RecordBatchFailed()
			metrics.RecordErrorByComponent("worker", "fill_error")
			s.deduper.Unrecord(ctx, p.ID)
			s.retry(ctx, log, p, err)
			s.settle(1)
			continue
		}

		metrics.RecordBatchFilled()
		metrics.RecordEntriesFilled(float64(p.Batch.Len()))
		s.settle(1)
	}
}

// retry splits a failed partition in half and re-enqueues both sides
// under fresh IDs, isolating a poisoned event instead of losing its
// whole partition. Single-event partitions are dropped.
func (s *Service) retry(ctx context.Context, log logger.Logger, p feed.Partition, cause error) {
	n := p.Batch.Len()
	if n <= 1 {
		metrics.RecordBatchDropped()
		log.Error(ctx, "dropping unfillable partition",
			logger.String("id", p.ID.String()),
			logger.Int("offset", p.Offset),
			logger.Error(cause),
		)
		return
	}

	mid := n / 2
	left, lerr := p.Batch.Slice(0, mid)
	right, rerr := p.Batch.Slice(mid, n)
	if lerr != nil || rerr != nil {
		metrics.RecordBatchDropped()
		log.Error(ctx, "dropping unsplittable partition", logger.String("id", p.ID.String()), logger.Error(cause))
		return
	}

	metrics.RecordBatchSplit()
	log.Warn(ctx, "splitting failed partition",
		logger.String("id", p.ID.String()),
		logger.Int("events", n),
		logger.Error(cause),
	)

	s.enqueue(ctx, feed.NewPartition(p.Offset, left, p.Weights[:mid]))
	s.enqueue(ctx, feed.NewPartition(p.Offset+mid, right, p.Weights[mid:]))
}
