package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application
type Metrics struct {
	// HTTP Metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
	HTTPResponseSize    *prometheus.HistogramVec

	// Settings store Metrics
	SettingsOperationsTotal *prometheus.CounterVec

	// Application Metrics
	PostcodeChecksTotal    *prometheus.CounterVec
	PostcodeLookupsTotal   *prometheus.CounterVec
	PostcodeLookupDuration prometheus.Histogram
}

// New creates all Prometheus metrics and registers them on the default registry
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates all Prometheus metrics and registers them on reg
// Tests pass a fresh prometheus.NewRegistry() to avoid duplicate registration
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint", "status"},
		),

		HTTPResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: prometheus.ExponentialBuckets(100, 10, 7),
			},
			[]string{"method", "endpoint", "status"},
		),

		SettingsOperationsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "settings_store_operations_total",
				Help: "Total number of settings store operations",
			},
			[]string{"store", "operation", "status"},
		),

		PostcodeChecksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postcode_checks_total",
				Help: "Total number of postcode admission checks by outcome",
			},
			[]string{"result"},
		),

		PostcodeLookupsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "postcode_lookups_total",
				Help: "Total number of postcode lookup service calls by outcome",
			},
			[]string{"result"},
		),

		PostcodeLookupDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "postcode_lookup_duration_seconds",
				Help:    "Postcode lookup service latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}
