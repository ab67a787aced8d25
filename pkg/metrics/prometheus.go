// Package metrics provides Prometheus metrics for the best XI selector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the selector service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	refreshInterval  time.Duration
	customLabels     map[string]string
	registry         prometheus.Registerer

	// Selection metrics
	selections          *prometheus.CounterVec
	selectionErrors     *prometheus.CounterVec
	selectionLatency    prometheus.Histogram
	keeperFallbacks     prometheus.Counter
	captainFallbacks    prometheus.Counter
	backfilledPlayers   prometheus.Counter
	opponentsFiltered   prometheus.Counter
	duplicatePicksFound prometheus.Counter

	// Dataset metrics
	datasetLoadLatency  prometheus.Histogram
	datasetRowsLoaded   prometheus.Gauge
	datasetRowsRejected prometheus.Gauge
	datasetLoadErrors   prometheus.Counter

	// HTTP metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	httpRateLimited     *prometheus.CounterVec

	// Error metrics
	errorRateByComponent *prometheus.CounterVec
	errorRateByType      *prometheus.CounterVec
	errorRateByEndpoint  *prometheus.CounterVec
	errorLatency         *prometheus.HistogramVec

	// System metrics
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
	systemGCPauseTime    prometheus.Histogram
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
		namespace:        "bestxi",
		subsystem:        "selector",
		histogramBuckets: prometheus.DefBuckets,
		refreshInterval:  defaultRefreshInterval,
		customLabels:     make(map[string]string),
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// RefreshInterval is how often gauge-style system metrics should be sampled.
func (m *Manager) RefreshInterval() time.Duration {
	return m.refreshInterval
}

func (m *Manager) counterOpts(name, help string) prometheus.CounterOpts {
	return prometheus.CounterOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) gaugeOpts(name, help string) prometheus.GaugeOpts {
	return prometheus.GaugeOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
	}
}

func (m *Manager) histogramOpts(name, help string) prometheus.HistogramOpts {
	return prometheus.HistogramOpts{
		Namespace:   m.namespace,
		Subsystem:   m.subsystem,
		Name:        name,
		Help:        help,
		ConstLabels: m.customLabels,
		Buckets:     m.histogramBuckets,
	}
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() { //nolint:funlen // one place for every metric
	auto := promauto.With(m.registry)

	m.selections = auto.NewCounterVec(
		m.counterOpts("selections_total", "Total number of lineups selected by pitch type and pitch source"),
		[]string{"pitch", "source"},
	)
	m.selectionErrors = auto.NewCounterVec(
		m.counterOpts("selection_errors_total", "Total number of failed selections by error kind"),
		[]string{"kind"},
	)
	m.selectionLatency = auto.NewHistogram(
		m.histogramOpts("selection_latency_milliseconds", "End-to-end selection latency in milliseconds"),
	)
	m.keeperFallbacks = auto.NewCounter(
		m.counterOpts("wicketkeeper_fallbacks_total", "Lineups where a batsman was promoted to wicket-keeper"),
	)
	m.captainFallbacks = auto.NewCounter(
		m.counterOpts("captain_fallbacks_total", "Lineups captained by top selection score for lack of an eligible leader"),
	)
	m.backfilledPlayers = auto.NewCounter(
		m.counterOpts("backfilled_players_total", "Players added regardless of role to complete a lineup"),
	)
	m.opponentsFiltered = auto.NewCounter(
		m.counterOpts("opponent_players_filtered_total", "Players removed because they belong to the opponent"),
	)
	m.duplicatePicksFound = auto.NewCounter(
		m.counterOpts("duplicate_picks_total", "Picks skipped because the player was already selected"),
	)

	m.datasetLoadLatency = auto.NewHistogram(
		m.histogramOpts("dataset_load_latency_milliseconds", "Dataset load and parse latency in milliseconds"),
	)
	m.datasetRowsLoaded = auto.NewGauge(
		m.gaugeOpts("dataset_rows_loaded", "Rows accepted on the last dataset load"),
	)
	m.datasetRowsRejected = auto.NewGauge(
		m.gaugeOpts("dataset_rows_rejected", "Rows rejected on the last dataset load"),
	)
	m.datasetLoadErrors = auto.NewCounter(
		m.counterOpts("dataset_load_errors_total", "Dataset loads that failed"),
	)

	m.httpRequests = auto.NewCounterVec(
		m.counterOpts("http_requests_total", "Total number of HTTP requests by endpoint and method"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRequestDuration = auto.NewHistogramVec(
		m.histogramOpts("http_request_duration_milliseconds", "HTTP request duration in milliseconds"),
		[]string{"endpoint", "method", "status_code"},
	)
	m.httpRateLimited = auto.NewCounterVec(
		m.counterOpts("http_rate_limited_total", "Requests rejected by the rate limiter"),
		[]string{"endpoint"},
	)

	m.errorRateByComponent = auto.NewCounterVec(
		m.counterOpts("errors_by_component_total", "Total number of errors by component"),
		[]string{"component", "error_type"},
	)
	m.errorRateByType = auto.NewCounterVec(
		m.counterOpts("errors_by_type_total", "Total number of errors by type"),
		[]string{"error_type", "severity"},
	)
	m.errorRateByEndpoint = auto.NewCounterVec(
		m.counterOpts("errors_by_endpoint_total", "Total number of errors by endpoint"),
		[]string{"endpoint", "method", "error_type"},
	)
	m.errorLatency = auto.NewHistogramVec(
		m.histogramOpts("error_latency_milliseconds", "Latency of operations that resulted in errors"),
		[]string{"component", "error_type"},
	)

	m.systemMemoryUsage = auto.NewGauge(
		m.gaugeOpts("system_memory_usage_bytes", "System memory usage in bytes"),
	)
	m.systemGoroutineCount = auto.NewGauge(
		m.gaugeOpts("system_goroutine_count", "Number of goroutines"),
	)
	gc := m.histogramOpts("system_gc_pause_time_milliseconds", "GC pause time in milliseconds")
	gc.Buckets = []float64{0.1, 0.5, 1, 2, 5, 10, 25, 50, 100, 250, 500, 1000}
	m.systemGCPauseTime = auto.NewHistogram(gc)
}

// RecordSelection counts a successful selection.
func RecordSelection(pitch, source string) {
	globalManager.selections.WithLabelValues(pitch, source).Inc()
}

// RecordSelectionError counts a failed selection by error kind.
func RecordSelectionError(kind string) {
	globalManager.selectionErrors.WithLabelValues(kind).Inc()
}

// RecordSelectionLatency records selection latency in milliseconds.
func RecordSelectionLatency(latencyMs float64) {
	globalManager.selectionLatency.Observe(latencyMs)
}

// RecordKeeperFallback counts a wicket-keeper promotion.
func RecordKeeperFallback() {
	globalManager.keeperFallbacks.Inc()
}

// RecordCaptainFallback counts a captaincy fallback.
func RecordCaptainFallback() {
	globalManager.captainFallbacks.Inc()
}

// RecordBackfilled adds n backfilled players.
func RecordBackfilled(n int) {
	if n > 0 {
		globalManager.backfilledPlayers.Add(float64(n))
	}
}

// RecordOpponentFiltered adds n players removed by the opponent filter.
func RecordOpponentFiltered(n int) {
	if n > 0 {
		globalManager.opponentsFiltered.Add(float64(n))
	}
}

// RecordDuplicatePicks adds n skipped duplicate picks.
func RecordDuplicatePicks(n int) {
	if n > 0 {
		globalManager.duplicatePicksFound.Add(float64(n))
	}
}

// RecordDatasetLoad records a completed dataset load.
func RecordDatasetLoad(latencyMs float64, loaded, rejected int) {
	globalManager.datasetLoadLatency.Observe(latencyMs)
	globalManager.datasetRowsLoaded.Set(float64(loaded))
	globalManager.datasetRowsRejected.Set(float64(rejected))
}

// RecordDatasetLoadError counts a failed dataset load.
func RecordDatasetLoadError() {
	globalManager.datasetLoadErrors.Inc()
}

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records HTTP request duration.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, duration float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(duration)
}

// RecordRateLimited counts a request rejected by the rate limiter.
func RecordRateLimited(endpoint string) {
	globalManager.httpRateLimited.WithLabelValues(endpoint).Inc()
}

// RecordErrorByComponent records an error with component and type labels.
func RecordErrorByComponent(component, errorType string) {
	globalManager.errorRateByComponent.WithLabelValues(component, errorType).Inc()
}

// RecordErrorByType records an error with type and severity labels.
func RecordErrorByType(errorType, severity string) {
	globalManager.errorRateByType.WithLabelValues(errorType, severity).Inc()
}

// RecordErrorByEndpoint records an error with endpoint, method, and error type labels.
func RecordErrorByEndpoint(endpoint, method, errorType string) {
	globalManager.errorRateByEndpoint.WithLabelValues(endpoint, method, errorType).Inc()
}

// RecordErrorLatency records the latency of an operation that resulted in an error.
func RecordErrorLatency(component, errorType string, latencyMs float64) {
	globalManager.errorLatency.WithLabelValues(component, errorType).Observe(latencyMs)
}

// UpdateSystemMemoryUsage sets the system memory usage in bytes.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount sets the number of goroutines.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// RecordSystemGCPauseTime records GC pause time in milliseconds.
func RecordSystemGCPauseTime(pauseMs float64) {
	globalManager.systemGCPauseTime.Observe(pauseMs)
}

// RefreshInterval returns the sampling interval of the global manager.
func RefreshInterval() time.Duration {
	return globalManager.refreshInterval
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
