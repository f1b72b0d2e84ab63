package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the replay API
type Metrics struct {
	// Inventory metrics
	InventoryBuilds       prometheus.Counter
	InventoryBuildErrors  prometheus.Counter
	InventoryBuildSeconds prometheus.Histogram
	CachedInventories     prometheus.Gauge

	// Resolver metrics
	ResolveRequests  prometheus.Counter
	ResolveNotMapped *prometheus.CounterVec

	// Export metrics
	ExportsStarted    prometheus.Counter
	ExportsCompleted  prometheus.Counter
	ExportsFailed     prometheus.Counter
	ExportDuration    prometheus.Histogram
	SnippetDuration   prometheus.Histogram
	SegmentsPerExport prometheus.Histogram
}

// NewMetrics creates and registers all Prometheus metrics
func NewMetrics() *Metrics {
	return &Metrics{
		InventoryBuilds: promauto.NewCounter(prometheus.CounterOpts{
			Name: "replay_inventory_builds_total",
			Help: "Total number of audio inventory builds",
		}),
		InventoryBuildErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "replay_inventory_build_errors_total",
			Help: "Total number of failed audio inventory builds",
		}),
		InventoryBuildSeconds: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "replay_inventory_build_duration_seconds",
			Help:    "Time spent measuring audio files for an inventory build",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~2 minutes
		}),
		CachedInventories: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "replay_cached_inventories",
			Help: "Current number of cached contest inventories",
		}),

		ResolveRequests: promauto.NewCounter(prometheus.CounterOpts{
			Name: "replay_resolve_requests_total",
			Help: "Total number of contact position resolutions",
		}),
		ResolveNotMapped: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "replay_resolve_not_mapped_total",
			Help: "Total number of resolutions outside the audio timeline",
		}, []string{"reason"}),

		ExportsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "replay_exports_started_total",
			Help: "Total number of snippet exports started",
		}),
		ExportsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "replay_exports_completed_total",
			Help: "Total number of snippet exports completed",
		}),
		ExportsFailed: promauto.NewCounter(prometheus.CounterOpts{
			Name: "replay_exports_failed_total",
			Help: "Total number of snippet exports that failed",
		}),
		ExportDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "replay_export_duration_seconds",
			Help:    "Wall time of snippet export requests",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		}),
		SnippetDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "replay_snippet_duration_seconds",
			Help:    "Audio duration of exported snippets",
			Buckets: prometheus.ExponentialBuckets(1, 2, 12), // 1s to ~1 hour
		}),
		SegmentsPerExport: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "replay_segments_per_export",
			Help:    "Number of audio segments spliced per export",
			Buckets: prometheus.LinearBuckets(1, 1, 10),
		}),
	}
}

// RecordInventoryBuild records a completed inventory build
func (m *Metrics) RecordInventoryBuild(seconds float64) {
	m.InventoryBuilds.Inc()
	m.InventoryBuildSeconds.Observe(seconds)
}

// RecordInventoryBuildError increments the build error counter
func (m *Metrics) RecordInventoryBuildError() {
	m.InventoryBuildErrors.Inc()
}

// SetCachedInventories sets the current cached inventory count
func (m *Metrics) SetCachedInventories(count int) {
	m.CachedInventories.Set(float64(count))
}

// RecordResolve increments the resolve counter
func (m *Metrics) RecordResolve() {
	m.ResolveRequests.Inc()
}

// RecordNotMapped records a resolution outside the timeline
func (m *Metrics) RecordNotMapped(reason string) {
	m.ResolveNotMapped.WithLabelValues(reason).Inc()
}

// RecordExportStarted increments the exports started counter
func (m *Metrics) RecordExportStarted() {
	m.ExportsStarted.Inc()
}

// RecordExportCompleted records a finished export
func (m *Metrics) RecordExportCompleted(wallSeconds, snippetSeconds float64, segments int) {
	m.ExportsCompleted.Inc()
	m.ExportDuration.Observe(wallSeconds)
	m.SnippetDuration.Observe(snippetSeconds)
	m.SegmentsPerExport.Observe(float64(segments))
}

// RecordExportFailed increments the failed exports counter
func (m *Metrics) RecordExportFailed() {
	m.ExportsFailed.Inc()
}
