// internal/app/features/reports/handler.go
package reports

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	reportstore "github.com/salespulse/salespulse/internal/app/store/reports"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/metrics"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
)

// Handler serves a player's report history. Members may read their own
// history; admins may read anyone's.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Reports    *reportstore.Store
	Metrics    *metrics.Manager
}

// NewHandler constructs a reports Handler.
func NewHandler(sessionMgr *auth.SessionManager, reports *reportstore.Store, m *metrics.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Reports:    reports,
		Metrics:    m,
	}
}

// ServePlayerReports handles GET /reports/players/{playerID}.
func (h *Handler) ServePlayerReports(w http.ResponseWriter, r *http.Request) {
	recs, ok := h.loadReports(w, r)
	if !ok {
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"reports": recs})
}

// ServePlayerReportsCSV handles GET /reports/players/{playerID}/export:
// the same history as a CSV download.
func (h *Handler) ServePlayerReportsCSV(w http.ResponseWriter, r *http.Request) {
	recs, ok := h.loadReports(w, r)
	if !ok {
		return
	}
	writeReportCSV(w, chi.URLParam(r, "playerID"), recs)
}

// loadReports resolves the target player, enforces self-or-admin access, and
// fetches the history newest first.
func (h *Handler) loadReports(w http.ResponseWriter, r *http.Request) ([]models.ReportRecord, bool) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return nil, false
	}
	playerID := chi.URLParam(r, "playerID")
	if playerID == "" {
		httpjson.Error(w, http.StatusBadRequest, "invalid_request", "player id is required")
		return nil, false
	}
	if playerID != user.PlayerID && !user.IsAdmin() {
		httpjson.Error(w, http.StatusForbidden, "forbidden", "you may only view your own reports")
		return nil, false
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "report history")
	defer cancel()

	recs, err := h.Reports.ListForPlayer(ctx, h.SessionMgr.Token(r).AccessToken, playerID)
	if err != nil {
		h.Metrics.ProviderError()
		h.Log.Error("report history fetch failed",
			zap.String("player_id", playerID), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "provider_unavailable", "report history is unavailable")
		return nil, false
	}
	return recs, true
}
