// Package metrics provides Prometheus metrics for the delfos derivation pipeline.
//
// The pipeline is a batch job, so metrics are not scraped: the registry is
// written to a node_exporter textfile once a run succeeds.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Manager manages all Prometheus metrics for the pipeline.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Input metrics
	rowsRead      *prometheus.CounterVec
	rowsSkipped   *prometheus.CounterVec
	tablesMissing *prometheus.CounterVec

	// Aggregation metrics
	observationsAggregated prometheus.Counter
	bucketsCreated         prometheus.Counter
	professions            prometheus.Gauge
	aptitudeGlobalMax      *prometheus.GaugeVec

	// Queue metrics
	queueCapacity prometheus.Gauge
	queueSize     prometheus.Gauge

	// Worker metrics
	workerCount             prometheus.Gauge
	workerProcessingLatency prometheus.Histogram
	workerErrors            prometheus.Counter

	// Run metrics
	stageDuration  *prometheus.HistogramVec
	lastSuccessRun prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "delfos",
		subsystem:        "pipeline",
		histogramBuckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		registry:         prometheus.NewRegistry(),
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.rowsRead = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_read_total",
		Help:      "Rows read from each source table",
	}, []string{"table"})

	m.rowsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "rows_skipped_total",
		Help:      "Rows excluded from aggregation by table and reason",
	}, []string{"table", "reason"})

	m.tablesMissing = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "tables_missing_total",
		Help:      "Configured source tables absent from the source directory",
	}, []string{"table"})

	m.observationsAggregated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "observations_aggregated_total",
		Help:      "Observations added to profession buckets (one per resolved profession)",
	})

	m.bucketsCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "buckets_created_total",
		Help:      "Profession/aptitude buckets created",
	})

	m.professions = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "professions",
		Help:      "Professions present in the last artifact",
	})

	m.aptitudeGlobalMax = auto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "aptitude_global_max",
		Help:      "Largest per-profession average observed for each aptitude",
	}, []string{"aptitude"})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Capacity of the row queue",
	})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Rows waiting in the queue",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Aggregation workers in the pool",
	})

	m.workerProcessingLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_processing_seconds",
		Help:      "Time spent scoring and aggregating one row",
		Buckets:   []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1},
	})

	m.workerErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_errors_total",
		Help:      "Rows a worker could not process",
	})

	m.stageDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stage_duration_seconds",
		Help:      "Duration of each pipeline stage",
		Buckets:   m.histogramBuckets,
	}, []string{"stage"})

	m.lastSuccessRun = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_success_timestamp_seconds",
		Help:      "Unix time of the last run that wrote an artifact",
	})
}

// Registry returns the manager's registry.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// WriteTextfile writes every metric of the manager to path in the text
// exposition format. The file is replaced atomically.
func (m *Manager) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteTextfile, err)
	}
	return nil
}

// RecordRowRead increments the rows read counter for table.
func RecordRowRead(table string) {
	globalManager.rowsRead.WithLabelValues(table).Inc()
}

// RecordRowSkipped increments the skipped rows counter.
func RecordRowSkipped(table, reason string) {
	globalManager.rowsSkipped.WithLabelValues(table, reason).Inc()
}

// RecordTableMissing marks a configured table as absent.
func RecordTableMissing(table string) {
	globalManager.tablesMissing.WithLabelValues(table).Inc()
}

// RecordObservationAggregated adds n bucket updates.
func RecordObservationAggregated(n int) {
	globalManager.observationsAggregated.Add(float64(n))
}

// RecordBucketCreated increments the bucket counter.
func RecordBucketCreated() {
	globalManager.bucketsCreated.Inc()
}

// UpdateProfessionCount sets the number of professions emitted.
func UpdateProfessionCount(n int) {
	globalManager.professions.Set(float64(n))
}

// UpdateAptitudeGlobalMax sets the global max for an aptitude.
func UpdateAptitudeGlobalMax(aptitude string, v float64) {
	globalManager.aptitudeGlobalMax.WithLabelValues(aptitude).Set(v)
}

// UpdateQueueCapacity sets the maximum queue capacity.
func UpdateQueueCapacity(capacity int) {
	globalManager.queueCapacity.Set(float64(capacity))
}

// UpdateQueueSize sets the current queue size.
func UpdateQueueSize(size int) {
	globalManager.queueSize.Set(float64(size))
}

// UpdateWorkerCount sets the current worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// RecordWorkerProcessingLatency records per-row processing time in seconds.
func RecordWorkerProcessingLatency(seconds float64) {
	globalManager.workerProcessingLatency.Observe(seconds)
}

// RecordWorkerError increments the worker error counter.
func RecordWorkerError() {
	globalManager.workerErrors.Inc()
}

// RecordStageDuration records how long a pipeline stage took.
func RecordStageDuration(stage string, seconds float64) {
	globalManager.stageDuration.WithLabelValues(stage).Observe(seconds)
}

// MarkSuccess records the time of a successful run.
func MarkSuccess(unixSeconds float64) {
	globalManager.lastSuccessRun.Set(unixSeconds)
}

// WriteTextfile writes the global registry to path.
func WriteTextfile(path string) error {
	return globalManager.WriteTextfile(path)
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
