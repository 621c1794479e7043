// internal/app/features/uploadreports/routes.go
package uploadreports

import (
	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/system/auth"
)

// Routes mounts the report ingestion endpoints, admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole("admin"))
	r.Post("/upload", h.ServeUpload)
	r.Get("/uploads", h.ServeHistory)
	return r
}
