// internal/app/features/dashboard/handler.go
package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/engine"
	goalconfigstore "github.com/salespulse/salespulse/internal/app/store/goalconfig"
	reportstore "github.com/salespulse/salespulse/internal/app/store/reports"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/metrics"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
	"github.com/salespulse/salespulse/internal/provider"
)

// Handler computes dashboard views. Live player state comes from the
// provider; goal configuration comes from the local store with built-in
// defaults as the fallback; the latest performance report is best-effort.
type Handler struct {
	Log         *zap.Logger
	SessionMgr  *auth.SessionManager
	Provider    *provider.Client
	GoalConfigs *goalconfigstore.Store
	Reports     *reportstore.Store
	Metrics     *metrics.Manager
}

// NewHandler constructs a dashboard Handler.
func NewHandler(
	sessionMgr *auth.SessionManager,
	prov *provider.Client,
	goalConfigs *goalconfigstore.Store,
	reports *reportstore.Store,
	m *metrics.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:         logger,
		SessionMgr:  sessionMgr,
		Provider:    prov,
		GoalConfigs: goalConfigs,
		Reports:     reports,
		Metrics:     m,
	}
}

// ServeSelf handles GET /dashboard: the signed-in player's own view.
func (h *Handler) ServeSelf(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}
	h.render(w, r, user.PlayerID)
}

// ServePlayer handles GET /dashboard/players/{playerID}: any player's view,
// for admins checking what a team member sees.
func (h *Handler) ServePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		httpjson.Error(w, http.StatusBadRequest, "invalid_request", "player id is required")
		return
	}
	h.render(w, r, playerID)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, playerID string) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "dashboard render")
	defer cancel()

	token := h.SessionMgr.Token(r).AccessToken

	status, err := h.Provider.PlayerStatus(ctx, token, playerID)
	if err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			httpjson.Error(w, http.StatusNotFound, "player_not_found", "no such player")
			return
		}
		h.Metrics.ProviderError()
		h.Log.Error("player status fetch failed",
			zap.String("player_id", playerID), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "provider_unavailable", "player data is unavailable")
		return
	}

	teamType := status.TeamType()
	cfg, err := h.goalConfig(ctx, teamType)
	if err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "unknown_team_type",
			"no goal configuration exists for team "+teamType)
		return
	}

	// A missing or failing report feed degrades the view to challenge data
	// rather than taking the whole dashboard down.
	rec, err := h.Reports.LatestForPlayer(ctx, token, playerID)
	if err != nil {
		h.Metrics.ProviderError()
		h.Log.Warn("latest report lookup failed, rendering without report",
			zap.String("player_id", playerID), zap.Error(err))
		rec = nil
	}

	view := engine.BuildView(cfg, status, rec)
	h.Metrics.DashboardRender()
	httpjson.Write(w, http.StatusOK, view)
}

// goalConfig prefers the stored (possibly admin-edited) config and falls back
// to the built-in default for the team. A nil store means no local database
// is wired in and defaults apply throughout.
func (h *Handler) goalConfig(ctx context.Context, teamType string) (models.TeamGoalConfig, error) {
	if h.GoalConfigs != nil {
		cfg, err := h.GoalConfigs.Get(ctx, teamType)
		if err == nil {
			return cfg, nil
		}
		if !errors.Is(err, goalconfigstore.ErrNotFound) {
			h.Log.Warn("goal config lookup failed, using default",
				zap.String("team_type", teamType), zap.Error(err))
		}
	}
	if def, ok := engine.DefaultConfig(teamType); ok {
		return def, nil
	}
	return models.TeamGoalConfig{}, errUnknownTeam
}

var errUnknownTeam = errors.New("unknown team type")
