// Package observability provides prometheus metrics for the bridge server.
package observability

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks tool execution, bridge state and transport activity.
// All methods are safe on a nil receiver so instrumentation points never
// need nil checks.
type Metrics struct {
	// ToolExecutionCounter counts tool invocations.
	// Labels: tool, status (success|error|timeout)
	ToolExecutionCounter *prometheus.CounterVec

	// ToolExecutionDuration measures tool execution time in seconds.
	// Labels: tool
	ToolExecutionDuration *prometheus.HistogramVec

	// BridgeInFlight is the number of calls currently in the bridge table.
	BridgeInFlight prometheus.Gauge

	// BridgeTimeouts counts submitter-side wait timeouts.
	BridgeTimeouts prometheus.Counter

	// SSESessions is the number of connected SSE clients.
	SSESessions prometheus.Gauge

	// HTTPRequestCounter counts HTTP requests.
	// Labels: method, path, status_code
	HTTPRequestCounter *prometheus.CounterVec

	// HTTPRequestDuration measures HTTP request latency in seconds.
	// Labels: method, path
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics registers the metric set with the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ToolExecutionCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fusebridge_tool_executions_total",
			Help: "Tool invocations by tool name and outcome.",
		}, []string{"tool", "status"}),
		ToolExecutionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fusebridge_tool_execution_duration_seconds",
			Help:    "Tool execution latency in seconds.",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}, []string{"tool"}),
		BridgeInFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fusebridge_bridge_in_flight_calls",
			Help: "Calls currently pending in the bridge table.",
		}),
		BridgeTimeouts: factory.NewCounter(prometheus.CounterOpts{
			Name: "fusebridge_bridge_timeouts_total",
			Help: "Submitter-side wait timeouts.",
		}),
		SSESessions: factory.NewGauge(prometheus.GaugeOpts{
			Name: "fusebridge_sse_sessions",
			Help: "Connected SSE client sessions.",
		}),
		HTTPRequestCounter: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fusebridge_http_requests_total",
			Help: "HTTP requests by method, path and status code.",
		}, []string{"method", "path", "status_code"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fusebridge_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds.",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"method", "path"}),
	}
}

// ObserveTool records one tool invocation outcome.
func (m *Metrics) ObserveTool(tool, status string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ToolExecutionCounter.WithLabelValues(tool, status).Inc()
	m.ToolExecutionDuration.WithLabelValues(tool).Observe(elapsed.Seconds())
}

// CallSubmitted tracks a call entering the bridge table.
func (m *Metrics) CallSubmitted() {
	if m == nil {
		return
	}
	m.BridgeInFlight.Inc()
}

// CallRemoved tracks a call leaving the bridge table.
func (m *Metrics) CallRemoved() {
	if m == nil {
		return
	}
	m.BridgeInFlight.Dec()
}

// CallTimedOut counts a submitter-side wait timeout.
func (m *Metrics) CallTimedOut() {
	if m == nil {
		return
	}
	m.BridgeTimeouts.Inc()
}

// SSEOpened tracks a new SSE session.
func (m *Metrics) SSEOpened() {
	if m == nil {
		return
	}
	m.SSESessions.Inc()
}

// SSEClosed tracks a closed SSE session.
func (m *Metrics) SSEClosed() {
	if m == nil {
		return
	}
	m.SSESessions.Dec()
}

// ObserveHTTP records one HTTP request.
func (m *Metrics) ObserveHTTP(method, path string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestCounter.WithLabelValues(method, path, strconv.Itoa(code)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
