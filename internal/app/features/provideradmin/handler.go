// internal/app/features/provideradmin/handler.go
package provideradmin

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/metrics"
	"github.com/salespulse/salespulse/internal/provider"
)

// Handler proxies admin CRUD for the provider-owned entities: players, teams,
// and catalog items. Nothing is cached locally; the provider stays the source
// of truth and every change lands in the audit trail.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Provider   *provider.Client
	AuditLog   *auditlog.Logger
	Metrics    *metrics.Manager
}

// NewHandler constructs a provider admin Handler.
func NewHandler(
	sessionMgr *auth.SessionManager,
	prov *provider.Client,
	audit *auditlog.Logger,
	m *metrics.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Provider:   prov,
		AuditLog:   audit,
		Metrics:    m,
	}
}

// token returns the signed-in admin's provider bearer token.
func (h *Handler) token(r *http.Request) string {
	return h.SessionMgr.Token(r).AccessToken
}

// providerError translates a provider client failure into an HTTP response.
func (h *Handler) providerError(w http.ResponseWriter, action string, err error) {
	switch {
	case errors.Is(err, provider.ErrNotFound):
		httpjson.Error(w, http.StatusNotFound, "not_found", "no such record")
	case errors.Is(err, provider.ErrUnauthorized):
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized", "provider rejected the session token")
	default:
		h.Metrics.ProviderError()
		h.Log.Error("provider call failed", zap.String("action", action), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "provider_unavailable", "provider is unavailable")
	}
}

// actorID returns the signed-in admin's player id for audit entries.
func actorID(r *http.Request) string {
	if u, ok := auth.CurrentUser(r); ok {
		return u.PlayerID
	}
	return ""
}
