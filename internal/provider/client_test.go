package provider_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/domain/models"
	"github.com/salespulse/salespulse/internal/provider"
)

func newClient(t *testing.T, handler http.Handler) (*provider.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	c := provider.New(provider.Config{
		BaseURL:      srv.URL,
		APIKey:       "test-key",
		ClientID:     "client",
		ClientSecret: "secret",
	}, zap.NewNop())
	return c, srv
}

// signedToken builds a real JWT so expiry/subject extraction has something to
// parse. The signature is never verified by the client.
func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": sub,
		"exp": exp.Unix(),
	})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestLogin_Success(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	access := signedToken(t, "player-42", exp)

	mux := http.NewServeMux()
	mux.HandleFunc("/v3/auth/token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.Form.Get("grant_type"); got != "password" {
			t.Errorf("grant_type = %q, want password", got)
		}
		if r.Form.Get("username") != "dana" || r.Form.Get("password") != "hunter2" {
			t.Errorf("credentials not forwarded: %v", r.Form)
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"access_token":  access,
			"refresh_token": "refresh-1",
			"token_type":    "bearer",
			"expires_in":    7200,
		})
	})
	c, _ := newClient(t, mux)

	sess, err := c.Login(context.Background(), "dana", "hunter2")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if sess.Token != access {
		t.Error("access token not carried into session")
	}
	if sess.PlayerID != "player-42" {
		t.Errorf("player id from sub claim: got %q", sess.PlayerID)
	}
	if sess.RefreshToken != "refresh-1" {
		t.Errorf("refresh token: got %q", sess.RefreshToken)
	}
	// JWT exp wins over expires_in.
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("expiry: got %v, want %v", sess.ExpiresAt, exp)
	}
	if sess.Expired() {
		t.Error("fresh session must not report expired")
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v3/auth/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	})
	c, _ := newClient(t, mux)

	_, err := c.Login(context.Background(), "dana", "wrong")
	if !errors.Is(err, provider.ErrInvalidCredentials) {
		t.Fatalf("got %v, want ErrInvalidCredentials", err)
	}
}

func TestSession_ExpiredWhenUnknown(t *testing.T) {
	if !(provider.Session{Token: "x"}).Expired() {
		t.Error("session without expiry must count as expired")
	}
}

func TestPlayerStatus(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v3/player/player-42/status", func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok-1" {
			t.Errorf("Authorization = %q", got)
		}
		if got := r.Header.Get("X-Api-Key"); got != "test-key" {
			t.Errorf("X-Api-Key = %q", got)
		}
		json.NewEncoder(w).Encode(models.PlayerStatus{
			PlayerID:     "player-42",
			Name:         "Dana",
			TotalPoints:  1200,
			CatalogItems: map[string]int{"item_boost1_p2": 1},
			Teams:        []string{"portfolio_ii"},
		})
	})
	c, _ := newClient(t, mux)

	status, err := c.PlayerStatus(context.Background(), "tok-1", "player-42")
	if err != nil {
		t.Fatalf("PlayerStatus: %v", err)
	}
	if status.Name != "Dana" || status.TotalPoints != 1200 {
		t.Errorf("unexpected status: %+v", status)
	}
	if status.TeamType() != "portfolio_ii" {
		t.Errorf("team type: got %q", status.TeamType())
	}
}

func TestErrorMapping(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v3/player/gone/status", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"not_found","message":"no such player"}}`, http.StatusNotFound)
	})
	mux.HandleFunc("/v3/player/locked/status", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/v3/player/teapot/status", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"teapot","message":"short and stout"}}`, http.StatusTeapot)
	})
	c, _ := newClient(t, mux)
	ctx := context.Background()

	if _, err := c.PlayerStatus(ctx, "t", "gone"); !errors.Is(err, provider.ErrNotFound) {
		t.Errorf("404: got %v, want ErrNotFound", err)
	}
	if _, err := c.PlayerStatus(ctx, "t", "locked"); !errors.Is(err, provider.ErrUnauthorized) {
		t.Errorf("401: got %v, want ErrUnauthorized", err)
	}

	_, err := c.PlayerStatus(ctx, "t", "teapot")
	var apiErr *provider.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("other status: got %T %v, want *APIError", err, err)
	}
	if apiErr.StatusCode != http.StatusTeapot || apiErr.Code != "teapot" || apiErr.Message != "short and stout" {
		t.Errorf("envelope not decoded: %+v", apiErr)
	}
}

func TestCollectionOperations(t *testing.T) {
	var gotFind map[string]any
	var gotPipeline []map[string]any
	var gotBulk []map[string]any

	mux := http.NewServeMux()
	mux.HandleFunc("/v3/database/performance_reports", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	mux.HandleFunc("/v3/database/performance_reports/bulk", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBulk); err != nil {
			t.Fatalf("decode bulk body: %v", err)
		}
		json.NewEncoder(w).Encode(map[string]int{"inserted": len(gotBulk)})
	})
	mux.HandleFunc("/v3/database/performance_reports/find", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode find body: %v", err)
		}
		gotFind, _ = body["filter"].(map[string]any)
		json.NewEncoder(w).Encode([]map[string]any{{"player_id": "p1"}})
	})
	mux.HandleFunc("/v3/database/performance_reports/aggregate", func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotPipeline); err != nil {
			t.Fatalf("decode pipeline: %v", err)
		}
		json.NewEncoder(w).Encode([]map[string]any{{"player_id": "p1", "cycle_day": 3}})
	})
	c, _ := newClient(t, mux)
	ctx := context.Background()

	if err := c.InsertDocument(ctx, "t", "performance_reports", map[string]any{"player_id": "p1"}); err != nil {
		t.Fatalf("InsertDocument: %v", err)
	}

	n, err := c.BulkInsert(ctx, "t", "performance_reports", []any{
		map[string]any{"player_id": "p1"},
		map[string]any{"player_id": "p2"},
	})
	if err != nil || n != 2 {
		t.Fatalf("BulkInsert: n=%d err=%v", n, err)
	}

	var docs []map[string]any
	if err := c.FindDocuments(ctx, "t", "performance_reports", map[string]any{"player_id": "p1"}, &docs); err != nil {
		t.Fatalf("FindDocuments: %v", err)
	}
	if len(docs) != 1 || gotFind["player_id"] != "p1" {
		t.Errorf("find: docs=%v forwarded filter=%v", docs, gotFind)
	}

	var rows []map[string]any
	pipeline := []map[string]any{{"$match": map[string]any{"player_id": "p1"}}}
	if err := c.Aggregate(ctx, "t", "performance_reports", pipeline, &rows); err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	if len(rows) != 1 || len(gotPipeline) != 1 {
		t.Errorf("aggregate: rows=%v pipeline=%v", rows, gotPipeline)
	}
}

func TestBulkInsert_EmptyBatchSkipsCall(t *testing.T) {
	c, _ := newClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
	}))
	n, err := c.BulkInsert(context.Background(), "t", "performance_reports", nil)
	if err != nil || n != 0 {
		t.Fatalf("empty bulk: n=%d err=%v", n, err)
	}
}
