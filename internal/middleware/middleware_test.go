package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/metrics"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestLoggingMiddleware_Levels tests that the completion level follows the status code
func TestLoggingMiddleware_Levels(t *testing.T) {
	tests := []struct {
		status    int
		wantLevel string
	}{
		{http.StatusOK, "info"},
		{http.StatusNoContent, "info"},
		{http.StatusBadRequest, "warn"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			log := logger.New(logger.Config{Level: "info", Output: &buf})

			handler := LoggingMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			req := httptest.NewRequest(http.MethodGet, "/v1/postcodes/validate?postcode=AB01CD", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)

			var record map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
				t.Fatalf("expected one JSON log record, got %q: %v", buf.String(), err)
			}
			if record["level"] != tt.wantLevel {
				t.Errorf("expected level %s, got %v", tt.wantLevel, record["level"])
			}
			if record["status"] != float64(tt.status) {
				t.Errorf("expected status %d, got %v", tt.status, record["status"])
			}
			if record["path"] != "/v1/postcodes/validate" {
				t.Errorf("unexpected path %v", record["path"])
			}
		})
	}
}

// TestLoggingMiddleware_NoQueryString tests that postcodes in query strings are not logged
func TestLoggingMiddleware_NoQueryString(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "debug", Output: &buf})

	handler := LoggingMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	req := httptest.NewRequest(http.MethodGet, "/v1/postcodes/validate?postcode=SW1A1AA", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if strings.Contains(buf.String(), "SW1A1AA") {
		t.Errorf("query string leaked into logs: %s", buf.String())
	}
}

// TestLoggingMiddleware_RequestID tests the request ID field
func TestLoggingMiddleware_RequestID(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Config{Level: "info", Output: &buf})

	handler := chimiddleware.RequestID(LoggingMiddleware(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "req-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !strings.Contains(buf.String(), `"request_id":"req-123"`) {
		t.Errorf("expected request_id in log, got %s", buf.String())
	}
}

// TestMetricsMiddleware_RoutePattern tests that metrics are labelled by route pattern
func TestMetricsMiddleware_RoutePattern(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Put("/v1/settings/{key}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{}`))
	})

	for _, key := range []string{"allowed_postcodes_lsoa", "specific_allowed_postcodes"} {
		req := httptest.NewRequest(http.MethodPut, "/v1/settings/"+key, nil)
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodPut, "/v1/settings/{key}", "200"))
	if got != 2 {
		t.Errorf("expected 2 requests under the route pattern, got %v", got)
	}
}

// TestMetricsMiddleware_Unmatched tests the label used for unknown routes
func TestMetricsMiddleware_Unmatched(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	r := chi.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/does-not-exist", nil))

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "404"))
	if got != 1 {
		t.Errorf("expected 1 unmatched request, got %v", got)
	}
}

// TestMetricsMiddleware_DefaultStatus tests that handlers which never call WriteHeader count as 200
func TestMetricsMiddleware_DefaultStatus(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry())

	handler := MetricsMiddleware(m)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/plain", nil))

	got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "unmatched", "200"))
	if got != 1 {
		t.Errorf("expected 1 request with status 200, got %v", got)
	}
}
