// Package metrics provides Prometheus metrics for the DALS status service.
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

// Manager manages all Prometheus metrics for the DALS service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// HTTP Performance Metrics
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Stardate Encoder Metrics
	stardateComputations prometheus.Counter
	stardateErrors       *prometheus.CounterVec

	// Status Normalizer / Governance Metrics
	moduleStatusRequests *prometheus.CounterVec
	countersClamped      prometheus.Counter

	// Module Registry Metrics
	heartbeats        *prometheus.CounterVec
	moduleErrors      prometheus.Counter
	registeredModules prometheus.Gauge

	// Telemetry Stream Metrics
	wsClients    prometheus.Gauge
	wsBroadcasts prometheus.Counter

	// System Metrics
	uptimeSeconds        prometheus.Gauge
	systemMemoryUsage    prometheus.Gauge
	systemGoroutineCount prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "dals",
		subsystem:        "core",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	// Ensure metrics are registered on the configured registry (custom by default)
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests by endpoint, method and status code",
	}, []string{"endpoint", "method", "status_code"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "http_request_duration_milliseconds",
		Help:      "Histogram of HTTP request duration in milliseconds",
		Buckets:   m.histogramBuckets,
	}, []string{"endpoint", "method", "status_code"})

	m.stardateComputations = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stardate_computations_total",
		Help:      "Total number of successful stardate encodings",
	})

	m.stardateErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "stardate_errors_total",
		Help:      "Total number of rejected stardate encodings by reason",
	}, []string{"reason"})

	m.moduleStatusRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "module_status_requests_total",
		Help:      "Total number of module status reports served, by module",
	}, []string{"module"})

	m.countersClamped = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "counters_clamped_total",
		Help:      "Total number of status responses with counters clamped to zero for offline modules",
	})

	m.heartbeats = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "module_heartbeats_total",
		Help:      "Total number of module heartbeats recorded, by module",
	}, []string{"module"})

	m.moduleErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "module_errors_reported_total",
		Help:      "Total number of module error reports received",
	})

	m.registeredModules = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "registered_modules",
		Help:      "Number of modules currently registered",
	})

	m.wsClients = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_clients",
		Help:      "Number of currently connected telemetry websocket clients",
	})

	m.wsBroadcasts = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "ws_broadcasts_total",
		Help:      "Total number of telemetry snapshots broadcast to websocket clients",
	})

	m.uptimeSeconds = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "uptime_seconds",
		Help:      "Service uptime in seconds",
	})

	m.systemMemoryUsage = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_memory_bytes",
		Help:      "Current heap allocation in bytes",
	})

	m.systemGoroutineCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "system_goroutines",
		Help:      "Current number of goroutines",
	})
}

// Package-level helpers operating on the global manager.

// RecordHTTPRequest records an HTTP request.
func RecordHTTPRequest(endpoint, method, statusCode string) {
	globalManager.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
}

// RecordHTTPRequestDuration records the duration of an HTTP request.
func RecordHTTPRequestDuration(endpoint, method, statusCode string, durationMs float64) {
	globalManager.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordStardateComputation records a successful stardate encoding.
func RecordStardateComputation() {
	globalManager.stardateComputations.Inc()
}

// RecordStardateError records a rejected encoding by reason
// ("invalid_timestamp" or "epoch_underflow").
func RecordStardateError(reason string) {
	globalManager.stardateErrors.WithLabelValues(reason).Inc()
}

// RecordModuleStatusRequest records one served status report.
func RecordModuleStatusRequest(module string) {
	globalManager.moduleStatusRequests.WithLabelValues(module).Inc()
}

// RecordCountersClamped records a response whose counters were zeroed.
func RecordCountersClamped() {
	globalManager.countersClamped.Inc()
}

// RecordHeartbeat records a module heartbeat.
func RecordHeartbeat(module string) {
	globalManager.heartbeats.WithLabelValues(module).Inc()
}

// RecordModuleError records a module error report.
func RecordModuleError() {
	globalManager.moduleErrors.Inc()
}

// UpdateRegisteredModules updates the registered module gauge.
func UpdateRegisteredModules(count int) {
	globalManager.registeredModules.Set(float64(count))
}

// UpdateWSClients updates the connected websocket client gauge.
func UpdateWSClients(count int) {
	globalManager.wsClients.Set(float64(count))
}

// RecordWSBroadcast records one telemetry broadcast tick.
func RecordWSBroadcast() {
	globalManager.wsBroadcasts.Inc()
}

// UpdateUptime updates the uptime gauge.
func UpdateUptime(seconds float64) {
	globalManager.uptimeSeconds.Set(seconds)
}

// UpdateSystemMemoryUsage updates the heap allocation gauge.
func UpdateSystemMemoryUsage(bytes uint64) {
	globalManager.systemMemoryUsage.Set(float64(bytes))
}

// UpdateSystemGoroutineCount updates the goroutine gauge.
func UpdateSystemGoroutineCount(count int) {
	globalManager.systemGoroutineCount.Set(float64(count))
}

// GetRegistry returns the custom registry used by the global manager.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
