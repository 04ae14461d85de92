package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Store names used as label values.
const (
	StoreResults = "results"
	StorePicks   = "picks"
)

// Load outcomes used as label values.
const (
	OutcomeLoaded = "loaded"
	OutcomeSeeded = "seeded"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Manager owns every Prometheus collector of the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	constLabels      map[string]string
	registry         prometheus.Registerer

	// Store metrics
	storeLoads      *prometheus.CounterVec
	storeSaves      *prometheus.CounterVec
	storeSaveErrors *prometheus.CounterVec
	medalsCoerced   *prometheus.CounterVec
	importsRejected *prometheus.CounterVec

	// Scoreboard metrics
	scoreboardBuilds  prometheus.Counter
	scoreboardLatency prometheus.Histogram

	// Pool size gauges
	athletesTotal prometheus.Gauge
	playersTotal  prometheus.Gauge
	picksTotal    prometheus.Gauge
	medalsAwarded prometheus.Gauge

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	errorsByEndpoint    *prometheus.CounterVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

var globalManager *Manager //nolint:gochecknoglobals // package-level recorders below

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // served by /healthz

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a metrics manager and registers its collectors.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "medaltips",
		subsystem:        "pool",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.DefaultRegisterer,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		Buckets:     m.histogramBuckets,
		ConstLabels: m.constLabels,
	}
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.storeLoads = auto.NewCounterVec(
		m.counterOpts("store_loads_total", "Store loads by store and outcome"),
		[]string{"store", "outcome"},
	)
	m.storeSaves = auto.NewCounterVec(
		m.counterOpts("store_saves_total", "Successful full-store writes"),
		[]string{"store"},
	)
	m.storeSaveErrors = auto.NewCounterVec(
		m.counterOpts("store_save_errors_total", "Failed full-store writes"),
		[]string{"store"},
	)
	m.medalsCoerced = auto.NewCounterVec(
		m.counterOpts("medals_coerced_total", "Unknown medal values replaced by None on load or import"),
		[]string{"store"},
	)
	m.importsRejected = auto.NewCounterVec(
		m.counterOpts("imports_rejected_total", "Import payloads rejected as malformed"),
		[]string{"store"},
	)

	m.scoreboardBuilds = auto.NewCounter(m.counterOpts("scoreboard_builds_total", "Scoreboard computations"))
	m.scoreboardLatency = auto.NewHistogram(m.histogramOpts("scoreboard_latency_milliseconds", "Scoreboard computation latency in milliseconds"))

	m.athletesTotal = auto.NewGauge(m.gaugeOpts("athletes", "Athletes in the registry"))
	m.playersTotal = auto.NewGauge(m.gaugeOpts("players", "Players in the roster"))
	m.picksTotal = auto.NewGauge(m.gaugeOpts("picks", "Stored predictions across all players"))
	m.medalsAwarded = auto.NewGauge(m.gaugeOpts("medals_awarded", "Athletes with an official medal"))

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "HTTP requests by endpoint, method and status"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.errorsByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "HTTP errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(m.gaugeOpts("system_memory_usage_bytes", "Heap bytes allocated"))
	m.systemGoroutineCount = auto.NewGauge(m.gaugeOpts("system_goroutine_count", "Number of goroutines"))
}

// RecordStoreLoad counts a store load with its outcome.
func RecordStoreLoad(store, outcome string) {
	globalManager.storeLoads.WithLabelValues(store, outcome).Inc()
}

// RecordStoreSave counts a full-store write.
func RecordStoreSave(store string) {
	globalManager.storeSaves.WithLabelValues(store).Inc()
}

// RecordStoreSaveError counts a failed full-store write.
func RecordStoreSaveError(store string) {
	globalManager.storeSaveErrors.WithLabelValues(store).Inc()
}

// RecordMedalsCoerced adds n coerced medal values.
func RecordMedalsCoerced(store string, n int) {
	if n <= 0 {
		return
	}
	globalManager.medalsCoerced.WithLabelValues(store).Add(float64(n))
}

// RecordImportRejected counts a rejected import payload.
func RecordImportRejected(store string) {
	globalManager.importsRejected.WithLabelValues(store).Inc()
}

// RecordScoreboardBuild records one scoreboard computation.
func RecordScoreboardBuild(latencyMs float64) {
	globalManager.scoreboardBuilds.Inc()
	globalManager.scoreboardLatency.Observe(latencyMs)
}

// UpdateAthletesTotal sets the registry size.
func UpdateAthletesTotal(n int) {
	globalManager.athletesTotal.Set(float64(n))
}

// UpdatePlayersTotal sets the roster size.
func UpdatePlayersTotal(n int) {
	globalManager.playersTotal.Set(float64(n))
}

// UpdatePicksTotal sets the number of stored predictions.
func UpdatePicksTotal(n int) {
	globalManager.picksTotal.Set(float64(n))
}

// UpdateMedalsAwarded sets the number of athletes holding a medal.
func UpdateMedalsAwarded(n int) {
	globalManager.medalsAwarded.Set(float64(n))
}

// RecordHTTPRequest increments the HTTP requests counter.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration in milliseconds.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordErrorByEndpoint counts an HTTP error response.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorsByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// UpdateSystemMemoryUsage sets heap bytes in use.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the goroutine count.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
