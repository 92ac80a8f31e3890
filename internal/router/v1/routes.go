package v1

import (
	"github.com/evyataryagoni/postcode-checker/internal/handler"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// adminRealm is the basic auth realm of the settings API
const adminRealm = "postcode-checker settings"

// AdminCredentials guard the settings endpoints
// Basic auth is enabled only when both fields are set
type AdminCredentials struct {
	User     string
	Password string
}

// Enabled reports whether basic auth should be enforced
func (c AdminCredentials) Enabled() bool {
	return c.User != "" && c.Password != ""
}

// SetupRoutes configures all v1 API routes
// This function is called by the main router to setup /v1/* endpoints
//
// Parameters:
//   - postcodeHandler: the postcode check handler
//   - settingsHandler: the settings administration handler
//   - admin: settings API credentials
//
// Returns:
//   - chi.Router: configured v1 router
func SetupRoutes(postcodeHandler *handler.PostcodeHandler, settingsHandler *handler.SettingsHandler, admin AdminCredentials) chi.Router {
	r := chi.NewRouter()

	// POST /v1/postcodes/check {"postcode": "..."}
	// GET  /v1/postcodes/validate?postcode=<postcode>
	r.Route("/postcodes", func(r chi.Router) {
		r.Post("/check", postcodeHandler.Check)
		r.Get("/validate", postcodeHandler.Validate)
	})

	// GET    /v1/settings
	// PUT    /v1/settings/{key} {"values": [...]}
	// DELETE /v1/settings/{key}
	r.Route("/settings", func(r chi.Router) {
		if admin.Enabled() {
			r.Use(middleware.BasicAuth(adminRealm, map[string]string{admin.User: admin.Password}))
		}
		r.Get("/", settingsHandler.List)
		r.Put("/{key}", settingsHandler.Update)
		r.Delete("/{key}", settingsHandler.Delete)
	})

	return r
}
