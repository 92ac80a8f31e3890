package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/evyataryagoni/postcode-checker/internal/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// unmatchedRoute labels requests that no route matched
const unmatchedRoute = "unmatched"

// MetricsMiddleware records HTTP metrics for each request
// Endpoints are labelled by route pattern (e.g. /v1/settings/{key}) to keep cardinality bounded
func MetricsMiddleware(m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// Wrap the response writer to capture status code and size
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start).Seconds()
			status := strconv.Itoa(statusOf(ww))
			endpoint := routePattern(r)

			m.HTTPRequestsTotal.WithLabelValues(
				r.Method,
				endpoint,
				status,
			).Inc()

			m.HTTPRequestDuration.WithLabelValues(
				r.Method,
				endpoint,
				status,
			).Observe(duration)

			m.HTTPResponseSize.WithLabelValues(
				r.Method,
				endpoint,
				status,
			).Observe(float64(ww.BytesWritten()))
		})
	}
}

// routePattern returns the matched chi pattern, available once routing has run
func routePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return unmatchedRoute
	}
	if pattern := rctx.RoutePattern(); pattern != "" {
		return pattern
	}
	return unmatchedRoute
}

// statusOf treats a handler that never wrote a header as 200
func statusOf(ww middleware.WrapResponseWriter) int {
	if ww.Status() == 0 {
		return http.StatusOK
	}
	return ww.Status()
}
