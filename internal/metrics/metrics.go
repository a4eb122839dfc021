package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Timecode engine metrics
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_operations_total",
		Help: "Total timecode operations by type and frame rate",
	}, []string{"operation", "rate"})

	operationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_operation_errors_total",
		Help: "Total failed timecode operations by type and error kind",
	}, []string{"operation", "error_type"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "timecode_operation_duration_seconds",
		Help:    "Timecode operation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.000001, 10, 8), // 1µs to 10s
	}, []string{"operation"})

	parseWarningsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "timecode_parse_warnings_total",
		Help: "Total advisory warnings raised while parsing timecodes",
	}, []string{"warning"})

	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total HTTP requests by method, path and status",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path"})

	httpRequestsInFlight = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "http_requests_in_flight",
		Help: "Number of HTTP requests currently being served",
	})

	rateLimitedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_rate_limited_total",
		Help: "Total HTTP requests rejected by the rate limiter",
	}, []string{"path"})
)

// RecordOperation updates counters and latency for a completed
// timecode operation.
func RecordOperation(operation, rate string, duration float64) {
	operationsTotal.WithLabelValues(operation, rate).Inc()
	operationDuration.WithLabelValues(operation).Observe(duration)
}

// IncrementOperationError increments the error counter for an operation
func IncrementOperationError(operation, errorType string) {
	operationErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// IncrementParseWarning increments the parse warning counter
func IncrementParseWarning(warning string) {
	parseWarningsTotal.WithLabelValues(warning).Inc()
}

// RecordHTTPRequest records a completed HTTP request
func RecordHTTPRequest(method, path string, status int, duration float64) {
	httpRequestsTotal.WithLabelValues(method, path, statusLabel(status)).Inc()
	httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// IncrementRequestsInFlight increments the in-flight request gauge
func IncrementRequestsInFlight() {
	httpRequestsInFlight.Inc()
}

// DecrementRequestsInFlight decrements the in-flight request gauge
func DecrementRequestsInFlight() {
	httpRequestsInFlight.Dec()
}

// IncrementRateLimited increments the rate limiter rejection counter
func IncrementRateLimited(path string) {
	rateLimitedTotal.WithLabelValues(path).Inc()
}

func statusLabel(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
