package prometheus

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Counter metrics
var (
	// Tenant onboarding counter
	TenantLoginCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "clinic_tenant_login_total",
			Help: "Total number of tenant onboarding/login attempts",
		},
	)

	// Tenant resolution outcomes per pipeline stage
	TenantResolveCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_tenant_resolve_total",
			Help: "Total number of tenant token resolutions by outcome",
		},
		[]string{"outcome"}, // "ok", "missing", "malformed", "invalid_payload", "not_found"
	)

	// Tenant connection bind outcomes
	TenantBindCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_tenant_bind_total",
			Help: "Total number of tenant connection binds by outcome",
		},
		[]string{"outcome"}, // "hit", "dial", "unreachable"
	)

	// Resource operation counter
	ResourceOperationCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_resource_operations_total",
			Help: "Total number of resource operations",
		},
		[]string{"resource", "operation"},
	)

	// HTTP request counter by endpoint and status
	HTTPRequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_http_requests_total",
			Help: "Total number of HTTP requests by endpoint and status",
		},
		[]string{"endpoint", "method", "status"},
	)

	// Auth/tenant error counter
	AuthErrorCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clinic_auth_errors_total",
			Help: "Total number of tenant authentication errors",
		},
		[]string{"type"},
	)
)

// Histogram metrics
var (
	// Request duration
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	// Tenant connection bind duration
	TenantBindDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "clinic_tenant_bind_duration_seconds",
			Help:    "Duration of tenant connection binds in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Database operation duration
	DBOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "clinic_db_operation_duration_seconds",
			Help:    "Duration of database operations in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"}, // operation can be "query", "insert", "update", "delete"
	)
)

// Gauge metrics
var (
	// Tenant connections currently held by the router pool
	OpenTenantConnectionsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "clinic_open_tenant_connections",
			Help: "Number of tenant database connections currently pooled",
		},
	)

	// System info
	InfoGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "clinic_info",
			Help: "Information about the clinic service",
		},
		[]string{"version"},
	)
)

func init() {
	// Register counters
	prometheus.MustRegister(TenantLoginCounter)
	prometheus.MustRegister(TenantResolveCounter)
	prometheus.MustRegister(TenantBindCounter)
	prometheus.MustRegister(ResourceOperationCounter)
	prometheus.MustRegister(HTTPRequestCounter)
	prometheus.MustRegister(AuthErrorCounter)

	// Register histograms
	prometheus.MustRegister(RequestDuration)
	prometheus.MustRegister(TenantBindDuration)
	prometheus.MustRegister(DBOperationDuration)

	// Register gauges
	prometheus.MustRegister(OpenTenantConnectionsGauge)
	prometheus.MustRegister(InfoGauge)

	// Set initial service info
	InfoGauge.With(prometheus.Labels{"version": "1.0.0"}).Set(1)
}

// GetPrometheusHandler returns an HTTP handler for the Prometheus metrics
func GetPrometheusHandler() http.Handler {
	return promhttp.Handler()
}

// TrackDBOperation measures database operation durations
func TrackDBOperation(operation string) func(time.Time) {
	startTime := time.Now()
	return func(endTime time.Time) {
		duration := time.Since(startTime).Seconds()
		DBOperationDuration.With(prometheus.Labels{
			"operation": operation,
		}).Observe(duration)
	}
}

// TrackTenantBind measures the duration of a tenant connection bind
func TrackTenantBind() func() {
	startTime := time.Now()
	return func() {
		TenantBindDuration.Observe(time.Since(startTime).Seconds())
	}
}

// MetricsMiddleware creates a middleware function that captures metrics for each request
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(c.Response().Status)
			endpoint := c.Path()
			method := c.Request().Method

			RequestDuration.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Observe(duration)

			HTTPRequestCounter.With(prometheus.Labels{
				"endpoint": endpoint,
				"method":   method,
				"status":   status,
			}).Inc()

			return err
		}
	}
}

// RecordAuthError records a tenant authentication error by type
func RecordAuthError(errorType string) {
	AuthErrorCounter.With(prometheus.Labels{"type": errorType}).Inc()
}

// RecordTenantResolve records a tenant token resolution outcome
func RecordTenantResolve(outcome string) {
	TenantResolveCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// RecordTenantBind records a tenant connection bind outcome
func RecordTenantBind(outcome string) {
	TenantBindCounter.With(prometheus.Labels{"outcome": outcome}).Inc()
}

// RecordResourceOperation records a resource operation
func RecordResourceOperation(resource, operation string) {
	ResourceOperationCounter.With(prometheus.Labels{
		"resource":  resource,
		"operation": operation,
	}).Inc()
}

// SetOpenTenantConnections updates the pooled tenant connection gauge
func SetOpenTenantConnections(count int) {
	OpenTenantConnectionsGauge.Set(float64(count))
}
