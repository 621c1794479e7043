// internal/app/features/reports/routes.go
package reports

import (
	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/system/auth"
)

// Routes mounts the report history endpoints. Access control (self or admin)
// happens in the handler since the target player is a URL parameter.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/players/{playerID}", h.ServePlayerReports)
	r.Get("/players/{playerID}/export", h.ServePlayerReportsCSV)
	return r
}
