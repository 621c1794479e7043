// internal/provider/auth.go
package provider

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// Session is the result of a password-grant login: the bearer token the
// dashboard stores in the user's cookie session, when it stops working, and
// who it belongs to.
type Session struct {
	Token        string
	RefreshToken string
	ExpiresAt    time.Time
	PlayerID     string
}

// Expired reports whether the token is past (or within a minute of) expiry.
// An unknown expiry counts as expired so callers re-authenticate.
func (s Session) Expired() bool {
	if s.ExpiresAt.IsZero() {
		return true
	}
	return time.Now().After(s.ExpiresAt.Add(-time.Minute))
}

func (c *Client) oauthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  c.cfg.BaseURL + "/v3/auth/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
}

// Login exchanges a member's credentials for a bearer token using the
// platform's password grant. Bad credentials return ErrInvalidCredentials.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	tok, err := c.oauthConfig().PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) &&
			(rerr.Response.StatusCode == http.StatusBadRequest ||
				rerr.Response.StatusCode == http.StatusUnauthorized ||
				rerr.Response.StatusCode == http.StatusForbidden) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	return c.sessionFromToken(tok), nil
}

// Refresh trades a refresh token for a fresh session. Callers fall back to a
// full login when the grant is rejected.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (Session, error) {
	if refreshToken == "" {
		return Session{}, ErrInvalidCredentials
	}
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.http)

	src := c.oauthConfig().TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) && rerr.Response.StatusCode < http.StatusInternalServerError {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}
	return c.sessionFromToken(tok), nil
}

func (c *Client) sessionFromToken(tok *oauth2.Token) Session {
	s := Session{
		Token:        tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		ExpiresAt:    tok.Expiry,
	}
	if exp, sub, ok := decodeTokenClaims(tok.AccessToken); ok {
		if !exp.IsZero() {
			s.ExpiresAt = exp
		}
		s.PlayerID = sub
	}
	return s
}

// decodeTokenClaims reads exp and sub from the access token without verifying
// the signature. The platform signs its tokens; this side only needs to know
// when to re-authenticate and which player the token names.
func decodeTokenClaims(accessToken string) (expiry time.Time, subject string, ok bool) {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return time.Time{}, "", false
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		expiry = exp.Time
	}
	subject, _ = claims.GetSubject()
	if subject == "" {
		if pid, found := claims["player_id"].(string); found {
			subject = pid
		}
	}
	return expiry, subject, true
}
