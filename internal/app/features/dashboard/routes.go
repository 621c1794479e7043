// internal/app/features/dashboard/routes.go
package dashboard

import (
	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/system/auth"
)

// Routes mounts the dashboard endpoints. Everyone signed in sees their own
// dashboard; only admins may look at another player's.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireSignedIn)
		r.Get("/", h.ServeSelf)
	})

	r.Group(func(r chi.Router) {
		r.Use(sm.RequireRole("admin"))
		r.Get("/players/{playerID}", h.ServePlayer)
	})

	return r
}
