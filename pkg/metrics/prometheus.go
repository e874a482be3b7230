// Package metrics provides Prometheus metrics for the SIDM fill engine.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager owns every Prometheus instrument the fill engine exposes.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         prometheus.Registerer

	// Fill throughput
	batchesFilled    prometheus.Counter
	batchesFailed    prometheus.Counter
	batchesSplit     prometheus.Counter
	batchesDropped   prometheus.Counter
	duplicateBatches prometheus.Counter
	entriesFilled    prometheus.Counter
	eventsGenerated  prometheus.Counter

	// Latency
	fillLatency  prometheus.Histogram
	mergeLatency prometheus.Histogram

	// Feed health
	feedSize          prometheus.Gauge
	feedCapacity      prometheus.Gauge
	feedUtilization   prometheus.Gauge
	feedEnqueues      prometheus.Counter
	feedDequeues      prometheus.Counter
	feedEnqueueErrors prometheus.Counter

	// Workers
	workerCount prometheus.Gauge

	// Per-histogram results
	histogramEntries *prometheus.GaugeVec

	// Errors by component and kind
	errorsByComponent *prometheus.CounterVec
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "sidm",
		subsystem:        "fill",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.batchesFilled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_filled_total",
		Help:      "Total number of event partitions filled into every selected histogram",
	})

	m.batchesFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_failed_total",
		Help:      "Total number of partitions whose fill aborted with an error",
	})

	m.batchesSplit = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_split_total",
		Help:      "Total number of failed partitions re-enqueued as two halves",
	})

	m.batchesDropped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_dropped_total",
		Help:      "Total number of single-event partitions dropped after a fill error",
	})

	m.duplicateBatches = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_duplicate_total",
		Help:      "Total number of partitions skipped as already filled",
	})

	m.entriesFilled = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "entries_filled_total",
		Help:      "Total number of histogram entries recorded across all histograms",
	})

	m.eventsGenerated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_generated_total",
		Help:      "Total number of synthetic events produced by the source",
	})

	m.fillLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_fill_latency_milliseconds",
		Help:      "Histogram of per-partition fill latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.mergeLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "merge_latency_milliseconds",
		Help:      "Histogram of worker result-set merge latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.feedSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_size",
		Help:      "Current number of partitions waiting in the feed",
	})

	m.feedCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_capacity",
		Help:      "Configured capacity of the partition feed",
	})

	m.feedUtilization = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_utilization",
		Help:      "Feed fill ratio between 0 and 1",
	})

	m.feedEnqueues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_enqueues_total",
		Help:      "Total number of partitions accepted by the feed",
	})

	m.feedDequeues = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_dequeues_total",
		Help:      "Total number of partitions handed to workers",
	})

	m.feedEnqueueErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "feed_enqueue_errors_total",
		Help:      "Total number of rejected enqueue attempts",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of fill workers currently running",
	})

	m.histogramEntries = auto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "histogram_entries",
			Help:      "Entry count of each merged result histogram, under/overflow included",
		},
		[]string{"histogram"},
	)

	m.errorsByComponent = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "errors_total",
			Help:      "Total errors by component and kind",
		},
		[]string{"component", "kind"},
	)
}

// RecordBatchFilled increments the filled-partition counter.
func RecordBatchFilled() {
	globalManager.batchesFilled.Inc()
}

// RecordBatchFailed increments the failed-partition counter.
func RecordBatchFailed() {
	globalManager.batchesFailed.Inc()
}

// RecordBatchSplit increments the split-partition counter.
func RecordBatchSplit() {
	globalManager.batchesSplit.Inc()
}

// RecordBatchDropped increments the dropped-partition counter.
func RecordBatchDropped() {
	globalManager.batchesDropped.Inc()
}

// RecordDuplicateBatch increments the duplicate-partition counter.
func RecordDuplicateBatch() {
	globalManager.duplicateBatches.Inc()
}

// RecordEntriesFilled adds n to the filled-entries counter.
func RecordEntriesFilled(n float64) {
	globalManager.entriesFilled.Add(n)
}

// RecordEventsGenerated adds n to the generated-events counter.
func RecordEventsGenerated(n int) {
	globalManager.eventsGenerated.Add(float64(n))
}

// RecordFillLatency records one partition's fill latency in milliseconds.
func RecordFillLatency(latencyMs float64) {
	globalManager.fillLatency.Observe(latencyMs)
}

// RecordMergeLatency records one result-set merge latency in milliseconds.
func RecordMergeLatency(latencyMs float64) {
	globalManager.mergeLatency.Observe(latencyMs)
}

// UpdateFeedSize sets the current feed size.
func UpdateFeedSize(size int) {
	globalManager.feedSize.Set(float64(size))
}

// UpdateFeedCapacity sets the configured feed capacity.
func UpdateFeedCapacity(capacity int) {
	globalManager.feedCapacity.Set(float64(capacity))
}

// UpdateFeedUtilization sets the feed fill ratio.
func UpdateFeedUtilization(utilization float64) {
	globalManager.feedUtilization.Set(utilization)
}

// RecordFeedEnqueue increments the feed enqueue counter.
func RecordFeedEnqueue() {
	globalManager.feedEnqueues.Inc()
}

// RecordFeedDequeue increments the feed dequeue counter.
func RecordFeedDequeue() {
	globalManager.feedDequeues.Inc()
}

// RecordFeedEnqueueError increments the rejected-enqueue counter.
func RecordFeedEnqueueError() {
	globalManager.feedEnqueueErrors.Inc()
}

// UpdateWorkerCount sets the running worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateHistogramEntries sets the merged entry count for one histogram.
func UpdateHistogramEntries(name string, entries uint64) {
	globalManager.histogramEntries.WithLabelValues(name).Set(float64(entries))
}

// RecordErrorByComponent counts one error for a component and kind.
func RecordErrorByComponent(component, kind string) {
	globalManager.errorsByComponent.WithLabelValues(component, kind).Inc()
}

// GetRegistry returns the custom registry the global manager registers
// on, for serving via promhttp.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
