// internal/app/features/provideradmin/teams.go
package provideradmin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/app/store/audit"
	"github.com/salespulse/salespulse/internal/app/system/htmlsanitize"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/normalize"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
)

func (h *Handler) listTeams(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "team list")
	defer cancel()

	teams, err := h.Provider.ListTeams(ctx, h.token(r))
	if err != nil {
		h.providerError(w, "list teams", err)
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"teams": teams})
}

func (h *Handler) createTeam(w http.ResponseWriter, r *http.Request) {
	var team models.Team
	if err := httpjson.Decode(r, &team); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	team.Name = htmlsanitize.PlainText(team.Name)
	team.TeamType = normalize.TeamType(team.TeamType)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "team create")
	defer cancel()

	created, err := h.Provider.CreateTeam(ctx, h.token(r), team)
	if err != nil {
		h.providerError(w, "create team", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventTeamCreated, actorID(r), created.ID)
	httpjson.Write(w, http.StatusCreated, created)
}

func (h *Handler) updateTeam(w http.ResponseWriter, r *http.Request) {
	var team models.Team
	if err := httpjson.Decode(r, &team); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	team.ID = chi.URLParam(r, "teamID")
	team.Name = htmlsanitize.PlainText(team.Name)
	team.TeamType = normalize.TeamType(team.TeamType)

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "team update")
	defer cancel()

	updated, err := h.Provider.UpdateTeam(ctx, h.token(r), team)
	if err != nil {
		h.providerError(w, "update team", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventTeamUpdated, actorID(r), updated.ID)
	httpjson.Write(w, http.StatusOK, updated)
}

func (h *Handler) deleteTeam(w http.ResponseWriter, r *http.Request) {
	teamID := chi.URLParam(r, "teamID")

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "team delete")
	defer cancel()

	if err := h.Provider.DeleteTeam(ctx, h.token(r), teamID); err != nil {
		h.providerError(w, "delete team", err)
		return
	}
	h.AuditLog.AdminChange(ctx, r, audit.EventTeamDeleted, actorID(r), teamID)
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
}
