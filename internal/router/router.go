package router

import (
	"net/http"

	_ "github.com/evyataryagoni/postcode-checker/docs" // Swagger docs
	"github.com/evyataryagoni/postcode-checker/internal/handler"
	"github.com/evyataryagoni/postcode-checker/internal/logger"
	"github.com/evyataryagoni/postcode-checker/internal/metrics"
	custommiddleware "github.com/evyataryagoni/postcode-checker/internal/middleware"
	v1 "github.com/evyataryagoni/postcode-checker/internal/router/v1"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"
)

// SetupRouter creates and configures the Chi router with all middleware and routes
// This separates routing logic from the main application setup
//
// Parameters:
//   - postcodeHandler: the postcode check handler
//   - settingsHandler: the settings administration handler
//   - admin: credentials guarding the settings API (disabled when empty)
//   - m: metrics collector
//   - log: structured logger
//
// Returns:
//   - chi.Router: configured router ready to use
func SetupRouter(postcodeHandler *handler.PostcodeHandler, settingsHandler *handler.SettingsHandler, admin v1.AdminCredentials, m *metrics.Metrics, log *logger.Logger) chi.Router {
	r := chi.NewRouter()

	// Apply global middleware - these run on every request
	// Order matters! RequestID should be first, then logging
	r.Use(middleware.RequestID)                    // Add unique request ID to each request
	r.Use(middleware.RealIP)                       // Get real client IP (handles proxies/load balancers)
	r.Use(custommiddleware.LoggingMiddleware(log)) // Structured logging
	r.Use(middleware.Recoverer)                    // Recover from panics and return 500
	r.Use(custommiddleware.MetricsMiddleware(m))   // Collect Prometheus metrics

	// Mount v1 API routes under /v1 prefix
	r.Mount("/v1", v1.SetupRoutes(postcodeHandler, settingsHandler, admin))

	// Root-level routes (not versioned)
	// Health check endpoint - used by load balancers and monitoring
	r.Get("/health", healthCheckHandler)

	// Prometheus metrics endpoint
	r.Handle("/metrics", promhttp.Handler())

	// Swagger UI endpoint - API documentation
	// Access at: http://localhost:3000/swagger/index.html
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	return r
}

// healthCheckHandler is a simple liveness endpoint
// It does not read settings, so it stays green while the policy is unconfigured
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
