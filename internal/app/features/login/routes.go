// internal/app/features/login/routes.go
package login

import "github.com/go-chi/chi/v5"

// Routes mounts the authentication endpoints. Login is open; logout only
// makes sense with a session but is harmless without one.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/login", h.ServeLogin)
	r.Post("/logout", h.ServeLogout)
	return r
}
