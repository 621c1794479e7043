// internal/app/features/goalconfig/routes.go
package goalconfig

import (
	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/system/auth"
)

// Routes mounts the goal configuration endpoints, admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole("admin"))
	r.Get("/", h.ServeList)
	r.Get("/{teamType}", h.ServeGet)
	r.Put("/{teamType}", h.ServeUpdate)
	return r
}
