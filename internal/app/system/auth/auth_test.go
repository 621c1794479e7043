package auth_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/system/auth"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		24*time.Hour,
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func withTestUser(r *http.Request, role string) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		PlayerID: "player-42",
		Name:     "Test User",
		LoginID:  "test@example.com",
		Role:     role,
		TeamType: "portfolio_ii",
	})
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	return body.Error.Code
}

func TestRequireSignedIn_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "unauthorized" {
		t.Errorf("expected error code unauthorized, got %q", code)
	}
}

func TestRequireSignedIn_NoUser_Browser_RedirectsToLogin(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Accept", "text/html")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther {
		t.Errorf("expected status %d, got %d", http.StatusSeeOther, rec.Code)
	}
	if loc := rec.Header().Get("Location"); !strings.HasPrefix(loc, "/login") {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestRequireSignedIn_WithUser_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireSignedIn(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("GET", "/dashboard", nil), "member")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_NoUser_API_Returns401(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/admin/goal-configs", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, rec.Code)
	}
}

func TestRequireRole_WrongRole_API_Returns403(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("GET", "/admin/goal-configs", nil), "member")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, rec.Code)
	}
	if code := decodeErrorCode(t, rec); code != "forbidden" {
		t.Errorf("expected error code forbidden, got %q", code)
	}
}

func TestRequireRole_CorrectRole_Proceeds(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("GET", "/admin/goal-configs", nil), "admin")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, rec.Code)
	}
}

func TestRequireRole_CaseInsensitive(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.RequireRole("admin")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := withTestUser(httptest.NewRequest("GET", "/admin/goal-configs", nil), "Admin")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for uppercase role, got %d", http.StatusOK, rec.Code)
	}
}

func TestSignInLoadSignOutRoundTrip(t *testing.T) {
	sm := newTestSessionManager(t)

	// Sign in and capture the cookie.
	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest("POST", "/auth/login", nil)
	user := &auth.SessionUser{PlayerID: "player-42", Name: "Dana", LoginID: "dana", Role: "member", TeamType: "portfolio_ii"}
	tok := auth.ProviderToken{AccessToken: "tok-1", ExpiresAt: time.Now().Add(time.Hour)}
	if err := sm.SignIn(signInRec, signInReq, user, tok); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := signInRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	// Replay the cookie through LoadSessionUser.
	var loaded *auth.SessionUser
	var loadedTok auth.ProviderToken
	probe := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		loaded, _ = auth.CurrentUser(r)
		loadedTok = sm.Token(r)
	}))
	req := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	probe.ServeHTTP(httptest.NewRecorder(), req)

	if loaded == nil {
		t.Fatal("session user not loaded from cookie")
	}
	if loaded.PlayerID != "player-42" || loaded.Role != "member" || loaded.TeamType != "portfolio_ii" {
		t.Errorf("loaded user: %+v", loaded)
	}
	if loadedTok.AccessToken != "tok-1" {
		t.Errorf("loaded token: %+v", loadedTok)
	}

	// Sign out expires the cookie.
	signOutRec := httptest.NewRecorder()
	signOutReq := httptest.NewRequest("POST", "/auth/logout", nil)
	for _, c := range cookies {
		signOutReq.AddCookie(c)
	}
	if err := sm.SignOut(signOutRec, signOutReq); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	for _, c := range signOutRec.Result().Cookies() {
		if c.Name == "test-session" && c.MaxAge >= 0 {
			t.Errorf("sign-out cookie MaxAge = %d, want negative", c.MaxAge)
		}
	}
}

func TestLoadSessionUser_ExpiredTokenTreatedAsSignedOut(t *testing.T) {
	sm := newTestSessionManager(t)

	signInRec := httptest.NewRecorder()
	signInReq := httptest.NewRequest("POST", "/auth/login", nil)
	user := &auth.SessionUser{PlayerID: "player-42", Role: "member"}
	tok := auth.ProviderToken{AccessToken: "tok-1", ExpiresAt: time.Now().Add(-time.Hour)}
	if err := sm.SignIn(signInRec, signInReq, user, tok); err != nil {
		t.Fatalf("SignIn: %v", err)
	}

	found := false
	probe := sm.LoadSessionUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, found = auth.CurrentUser(r)
	}))
	req := httptest.NewRequest("GET", "/dashboard", nil)
	for _, c := range signInRec.Result().Cookies() {
		req.AddCookie(c)
	}
	probe.ServeHTTP(httptest.NewRecorder(), req)

	if found {
		t.Error("expired provider token must not yield a signed-in user")
	}
}

func TestCurrentUser_NoUser(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	user, ok := auth.CurrentUser(req)
	if ok || user != nil {
		t.Error("expected no user in a bare request context")
	}
}
