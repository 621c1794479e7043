// internal/app/features/provideradmin/routes.go
package provideradmin

import (
	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/system/auth"
)

// Routes mounts the provider entity CRUD, admin only.
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireRole("admin"))

	r.Route("/players", func(r chi.Router) {
		r.Get("/", h.listPlayers)
		r.Post("/", h.createPlayer)
		r.Get("/{playerID}", h.getPlayer)
		r.Put("/{playerID}", h.updatePlayer)
		r.Delete("/{playerID}", h.deletePlayer)
	})

	r.Route("/teams", func(r chi.Router) {
		r.Get("/", h.listTeams)
		r.Post("/", h.createTeam)
		r.Put("/{teamID}", h.updateTeam)
		r.Delete("/{teamID}", h.deleteTeam)
	})

	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", h.listCatalogItems)
		r.Post("/", h.createCatalogItem)
		r.Put("/{itemID}", h.updateCatalogItem)
		r.Delete("/{itemID}", h.deleteCatalogItem)
	})

	return r
}
