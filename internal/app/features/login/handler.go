// internal/app/features/login/handler.go
package login

import (
	"errors"
	"net/http"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/htmlsanitize"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/metrics"
	"github.com/salespulse/salespulse/internal/app/system/normalize"
	"github.com/salespulse/salespulse/internal/app/system/ratelimit"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
	"github.com/salespulse/salespulse/internal/provider"
)

// adminTeam is the provider team whose members get the admin role here.
const adminTeam = "admin"

// Handler authenticates users against the provider's password grant and
// issues the cookie session the rest of the app rides on. A single local
// bootstrap admin account works without the provider, so the console stays
// reachable when the vendor is down.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Provider   *provider.Client
	AuditLog   *auditlog.Logger
	Metrics    *metrics.Manager
	Limiter    *ratelimit.LoginLimiter

	BootstrapAdminLogin string
	BootstrapAdminHash  string // bcrypt
}

// NewHandler constructs a login Handler.
func NewHandler(
	sessionMgr *auth.SessionManager,
	prov *provider.Client,
	audit *auditlog.Logger,
	m *metrics.Manager,
	limiter *ratelimit.LoginLimiter,
	bootstrapLogin, bootstrapHash string,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:                 logger,
		SessionMgr:          sessionMgr,
		Provider:            prov,
		AuditLog:            audit,
		Metrics:             m,
		Limiter:             limiter,
		BootstrapAdminLogin: normalize.LoginID(bootstrapLogin),
		BootstrapAdminHash:  bootstrapHash,
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string      `json:"token,omitempty"`
	ExpiresAt *time.Time  `json:"expires_at,omitempty"`
	Player    loginPlayer `json:"player"`
}

type loginPlayer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Role     string `json:"role"`
	TeamType string `json:"team_type,omitempty"`
}

// ServeLogin handles POST /auth/login.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httpjson.Decode(r, &req); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_request", err.Error())
		return
	}
	username := normalize.LoginID(req.Username)

	if ok, msg := h.Limiter.Check(r, username); !ok {
		h.Metrics.LoginRateLimited()
		h.AuditLog.LoginRateLimited(r.Context(), r, username)
		httpjson.Error(w, http.StatusTooManyRequests, "rate_limited", msg)
		return
	}

	if h.isBootstrapAdmin(username, req.Password) {
		h.signInBootstrapAdmin(w, r, username)
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "provider login")
	defer cancel()

	sess, err := h.Provider.Login(ctx, username, req.Password)
	if err != nil {
		if errors.Is(err, provider.ErrInvalidCredentials) {
			h.Metrics.LoginFailed()
			h.AuditLog.LoginFailed(r.Context(), r, username)
			httpjson.Error(w, http.StatusUnauthorized, "invalid_credentials", "username or password is incorrect")
			return
		}
		h.Metrics.ProviderError()
		h.Log.Error("provider login failed", zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "provider_unavailable", "authentication service is unavailable")
		return
	}

	// The token itself only names the player; the status payload carries
	// display name and team, which the session caches for rendering.
	status, err := h.Provider.PlayerStatus(ctx, sess.Token, sess.PlayerID)
	if err != nil {
		h.Metrics.ProviderError()
		h.Log.Error("player status after login failed",
			zap.String("player_id", sess.PlayerID), zap.Error(err))
		httpjson.Error(w, http.StatusBadGateway, "provider_unavailable", "authentication service is unavailable")
		return
	}

	user := &auth.SessionUser{
		PlayerID: sess.PlayerID,
		Name:     htmlsanitize.PlainText(status.Name),
		LoginID:  username,
		Role:     roleFor(status),
		TeamType: status.TeamType(),
	}
	tok := auth.ProviderToken{
		AccessToken:  sess.Token,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
	}
	if err := h.SessionMgr.SignIn(w, r, user, tok); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not establish session")
		return
	}

	h.Limiter.ResetUser(username)
	h.Metrics.LoginSuccess()
	h.AuditLog.LoginSuccess(r.Context(), r, user.PlayerID, username)

	resp := loginResponse{
		Token:  sess.Token,
		Player: loginPlayer{ID: user.PlayerID, Name: user.Name, Role: user.Role, TeamType: user.TeamType},
	}
	if !sess.ExpiresAt.IsZero() {
		resp.ExpiresAt = &sess.ExpiresAt
	}
	httpjson.Write(w, http.StatusOK, resp)
}

// ServeLogout handles POST /auth/logout.
func (h *Handler) ServeLogout(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		h.AuditLog.Logout(r.Context(), r, u.PlayerID)
	}
	if err := h.SessionMgr.SignOut(w, r); err != nil {
		h.Log.Error("session clear failed", zap.Error(err))
	}
	httpjson.Write(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

func (h *Handler) isBootstrapAdmin(username, password string) bool {
	if h.BootstrapAdminLogin == "" || h.BootstrapAdminHash == "" {
		return false
	}
	if username != h.BootstrapAdminLogin {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(h.BootstrapAdminHash), []byte(password)) == nil
}

func (h *Handler) signInBootstrapAdmin(w http.ResponseWriter, r *http.Request, username string) {
	user := &auth.SessionUser{
		PlayerID: "bootstrap-admin",
		Name:     "Administrator",
		LoginID:  username,
		Role:     "admin",
	}
	if err := h.SessionMgr.SignIn(w, r, user, auth.ProviderToken{}); err != nil {
		h.Log.Error("session save failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not establish session")
		return
	}
	h.Limiter.ResetUser(username)
	h.Metrics.LoginSuccess()
	h.AuditLog.LoginSuccess(r.Context(), r, user.PlayerID, username)
	httpjson.Write(w, http.StatusOK, loginResponse{
		Player: loginPlayer{ID: user.PlayerID, Name: user.Name, Role: user.Role},
	})
}

// roleFor maps provider team membership to this app's role model: membership
// of the admin team grants the admin role, everyone else is a member.
func roleFor(status models.PlayerStatus) string {
	if slices.Contains(status.Teams, adminTeam) {
		return "admin"
	}
	return "member"
}
