// internal/app/features/provideradmin/players.go
package provideradmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/store/audit"
	"github.com/salespulse/salespulse/internal/app/system/htmlsanitize"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
)

func (h *Handler) listPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "player list")
	defer cancel()

	players, err := h.Provider.ListPlayers(ctx, h.token(r))
	if err != nil {
		h.providerError(w, "list players", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"players": players})
}

func (h *Handler) getPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "player get")
	defer cancel()

	p, err := h.Provider.GetPlayer(ctx, h.token(r), chi.URLParam(r, "playerID"))
	if err != nil {
		h.providerError(w, "get player", err)
		return
	}
	httpjson.Write(w, http.StatusOK, p)
}

func (h *Handler) createPlayer(w http.ResponseWriter, r *http.Request) {
	var p models.Player
	if err := httpjson.Decode(r, &p); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	p.Name = htmlsanitize.PlainText(p.Name)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "player create")
	defer cancel()

	created, err := h.Provider.CreatePlayer(ctx, h.token(r), p)
	if err != nil {
		h.providerError(w, "create player", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventPlayerCreated, actorID(r), created.ID)
	httpjson.Write(w, http.StatusCreated, created)
}

func (h *Handler) updatePlayer(w http.ResponseWriter, r *http.Request) {
	var p models.Player
	if err := httpjson.Decode(r, &p); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	p.ID = chi.URLParam(r, "playerID")
	p.Name = htmlsanitize.PlainText(p.Name)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "player update")
	defer cancel()

	updated, err := h.Provider.UpdatePlayer(ctx, h.token(r), p)
	if err != nil {
		h.providerError(w, "update player", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventPlayerUpdated, actorID(r), updated.ID)
	httpjson.Write(w, http.StatusOK, updated)
}

func (h *Handler) deletePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "player delete")
	defer cancel()

	if err := h.Provider.DeletePlayer(ctx, h.token(r), playerID); err != nil {
		h.providerError(w, "delete player", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventPlayerDeleted, actorID(r), playerID)
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
