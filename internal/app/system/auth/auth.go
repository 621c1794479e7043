// internal/app/system/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/sessions"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/httpjson"
)

const (
	isAuthKey       = "is_authenticated"
	playerIDKey     = "player_id"
	userNameKey     = "user_name"
	loginIDKey      = "login_id"
	userRoleKey     = "user_role"
	teamTypeKey     = "team_type"
	tokenKey        = "provider_token"
	refreshTokenKey = "provider_refresh_token"
	tokenExpiryKey  = "provider_token_expiry"
)

// SessionUser is what the cookie session caches about the signed-in user and
// what LoadSessionUser injects into r.Context().
type SessionUser struct {
	PlayerID string
	Name     string
	LoginID  string
	Role     string
	TeamType string
}

// IsAdmin reports whether the user carries the admin role.
func (u *SessionUser) IsAdmin() bool {
	return u != nil && strings.EqualFold(u.Role, "admin")
}

// ProviderToken is the vendor bearer credential stored alongside the user.
// The local bootstrap admin signs in without one; its zero value is valid.
type ProviderToken struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}

// Expired reports whether the access token is past (or within a minute of)
// its expiry. A token without an expiry never expires here; the provider
// still rejects it server-side if it is stale.
func (t ProviderToken) Expired() bool {
	if t.AccessToken == "" || t.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(t.ExpiresAt.Add(-time.Minute))
}

type ctxKey string

const currentUserKey ctxKey = "currentUser"

// CurrentUser returns the signed-in user and a found flag.
func CurrentUser(r *http.Request) (*SessionUser, bool) {
	u, ok := r.Context().Value(currentUserKey).(*SessionUser)
	return u, ok
}

// SessionManager owns the cookie store and the sign-in/sign-out lifecycle.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a cookie-backed session manager.
//
// In production (secure=true), cookies are Secure + SameSite=None so the
// dashboard front-end can call the API cross-site over HTTPS. In local dev
// over http://localhost use secure=false so the browser accepts the cookie.
func NewSessionManager(sessionKey, cookieName, domain string, maxAge time.Duration, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}
	if cookieName == "" {
		cookieName = "salespulse-session"
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		Secure:   secure,
		HttpOnly: true,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	} else {
		opts.SameSite = http.SameSiteLaxMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.String("cookie", cookieName),
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: cookieName, log: logger}, nil
}

// SignIn writes the user and provider credential into a fresh session cookie.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, u *SessionUser, tok ProviderToken) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Values[isAuthKey] = true
	sess.Values[playerIDKey] = u.PlayerID
	sess.Values[userNameKey] = u.Name
	sess.Values[loginIDKey] = u.LoginID
	sess.Values[userRoleKey] = u.Role
	sess.Values[teamTypeKey] = u.TeamType
	sess.Values[tokenKey] = tok.AccessToken
	sess.Values[refreshTokenKey] = tok.RefreshToken
	var expiry int64
	if !tok.ExpiresAt.IsZero() {
		expiry = tok.ExpiresAt.Unix()
	}
	sess.Values[tokenExpiryKey] = expiry
	return sess.Save(r, w)
}

// SignOut expires the session cookie.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, _ := sm.store.Get(r, sm.name)
	sess.Options.MaxAge = -1
	sess.Values = map[any]any{}
	return sess.Save(r, w)
}

// Token returns the provider credential stored in the request's session.
func (sm *SessionManager) Token(r *http.Request) ProviderToken {
	sess, _ := sm.store.Get(r, sm.name)
	tok := ProviderToken{
		AccessToken:  getString(sess, tokenKey),
		RefreshToken: getString(sess, refreshTokenKey),
	}
	if unix, ok := sess.Values[tokenExpiryKey].(int64); ok && unix > 0 {
		tok.ExpiresAt = time.Unix(unix, 0)
	}
	return tok
}

// LoadSessionUser injects the session's user into the request context. A
// session whose provider token has expired is treated as signed out, so the
// caller gets a 401 from the gate and re-authenticates.
func (sm *SessionManager) LoadSessionUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess, _ := sm.store.Get(r, sm.name)
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth && !sm.Token(r).Expired() {
			u := &SessionUser{
				PlayerID: getString(sess, playerIDKey),
				Name:     getString(sess, userNameKey),
				LoginID:  getString(sess, loginIDKey),
				Role:     getString(sess, userRoleKey),
				TeamType: getString(sess, teamTypeKey),
			}
			r = withUser(r, u)
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSignedIn gates a route on an authenticated session. API callers get
// a 401 JSON envelope; browser navigation gets a redirect to /login.
func (sm *SessionManager) RequireSignedIn(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := CurrentUser(r); ok {
			next.ServeHTTP(w, r)
			return
		}
		unauthorized(w, r)
	})
}

// RequireRole gates a route on the session user's role (case-insensitive).
// Missing session → 401; wrong role → 403.
func (sm *SessionManager) RequireRole(allowed ...string) func(http.Handler) http.Handler {
	set := make(map[string]struct{}, len(allowed))
	for _, role := range allowed {
		set[strings.ToLower(strings.TrimSpace(role))] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := CurrentUser(r)
			if !ok {
				unauthorized(w, r)
				return
			}
			if _, has := set[strings.ToLower(u.Role)]; !has {
				forbidden(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithTestUser injects a SessionUser into the request context, simulating
// what LoadSessionUser does. Test helper.
func WithTestUser(r *http.Request, u *SessionUser) *http.Request {
	return withUser(r, u)
}

func unauthorized(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	httpjson.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
}

func forbidden(w http.ResponseWriter, r *http.Request) {
	if wantsHTML(r) {
		http.Redirect(w, r, "/forbidden", http.StatusSeeOther)
		return
	}
	httpjson.Error(w, http.StatusForbidden, "forbidden", "insufficient role")
}

func withUser(r *http.Request, u *SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), currentUserKey, u))
}

func getString(s *sessions.Session, key string) string {
	if v, ok := s.Values[key].(string); ok {
		return v
	}
	return ""
}

func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
