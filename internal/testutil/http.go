// internal/testutil/http.go
package testutil

import (
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/salespulse/salespulse/internal/app/system/auth"
)

// TestUser holds identity data for exercising authenticated handlers.
type TestUser struct {
	PlayerID string
	Name     string
	LoginID  string
	Role     string
	TeamType string
}

// AdminUser returns a TestUser with the admin role.
func AdminUser() TestUser {
	return TestUser{
		PlayerID: "admin-1",
		Name:     "Test Admin",
		LoginID:  "admin@test.com",
		Role:     "admin",
	}
}

// MemberUser returns a TestUser on the given team.
func MemberUser(teamType string) TestUser {
	return TestUser{
		PlayerID: "player-42",
		Name:     "Test Member",
		LoginID:  "member@test.com",
		Role:     "member",
		TeamType: teamType,
	}
}

// WithUser injects the user into the request context, bypassing the session
// middleware the way auth.WithTestUser does.
func WithUser(r *http.Request, user TestUser) *http.Request {
	return auth.WithTestUser(r, &auth.SessionUser{
		PlayerID: user.PlayerID,
		Name:     user.Name,
		LoginID:  user.LoginID,
		Role:     user.Role,
		TeamType: user.TeamType,
	})
}

// NewRequest creates an HTTP request for testing.
func NewRequest(method, target string) *http.Request {
	return httptest.NewRequest(method, target, nil)
}

// NewAuthenticatedRequest creates an HTTP request with a user in context.
func NewAuthenticatedRequest(method, target string, user TestUser) *http.Request {
	return WithUser(httptest.NewRequest(method, target, nil), user)
}

// ResponseRecorder wraps httptest.ResponseRecorder with assertion helpers.
type ResponseRecorder struct {
	*httptest.ResponseRecorder
}

// NewRecorder creates a new ResponseRecorder.
func NewRecorder() *ResponseRecorder {
	return &ResponseRecorder{httptest.NewRecorder()}
}

// AssertStatus checks the response status code.
func (r *ResponseRecorder) AssertStatus(t interface{ Errorf(string, ...any) }, expected int) {
	if r.Code != expected {
		t.Errorf("status code: got %d, want %d (body: %s)", r.Code, expected, r.Body.String())
	}
}

// AssertContains checks that the response body contains the expected string.
func (r *ResponseRecorder) AssertContains(t interface{ Errorf(string, ...any) }, expected string) {
	if !strings.Contains(r.Body.String(), expected) {
		t.Errorf("response body does not contain %q: %s", expected, r.Body.String())
	}
}
