// internal/app/features/reports/handler_test.go
package reports

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/engine"
	reportstore "github.com/salespulse/salespulse/internal/app/store/reports"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/metrics"
	"github.com/salespulse/salespulse/internal/domain/models"
	"github.com/salespulse/salespulse/internal/provider"
	"github.com/salespulse/salespulse/internal/testutil"
)

func newHandler(t *testing.T, recs []models.ReportRecord) *Handler {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/database/performance_reports/aggregate" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(recs)
	}))
	t.Cleanup(srv.Close)

	sm, err := auth.NewSessionManager("0123456789abcdef0123456789abcdef", "salespulse-test", "", time.Hour, false, zap.NewNop())
	if err != nil {
		t.Fatalf("session manager: %v", err)
	}
	prov := provider.New(provider.Config{BaseURL: srv.URL, APIKey: "test-key"}, zap.NewNop())
	return NewHandler(sm, reportstore.New(prov, ""), metrics.NewManager(), zap.NewNop())
}

func sampleRecords() []models.ReportRecord {
	activity := 82.5
	return []models.ReportRecord{
		{
			PlayerID:       "player-42",
			TeamType:       engine.TeamOnline,
			ReportDate:     "2026-08-20",
			CycleDay:       12,
			TotalCycleDays: 21,
			Activity:       &activity,
		},
		{
			PlayerID:       "player-42",
			TeamType:       engine.TeamOnline,
			ReportDate:     "2026-08-13",
			CycleDay:       5,
			TotalCycleDays: 21,
		},
	}
}

func TestServePlayerReports_SelfAccess(t *testing.T) {
	h := newHandler(t, sampleRecords())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/reports/players/player-42", testutil.MemberUser(engine.TeamOnline))
	req = testutil.WithChiURLParam(req, "playerID", "player-42")
	rec := httptest.NewRecorder()
	h.ServePlayerReports(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		Reports []models.ReportRecord `json:"reports"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if len(resp.Reports) != 2 {
		t.Fatalf("got %d reports, want 2", len(resp.Reports))
	}
	if resp.Reports[0].ReportDate != "2026-08-20" {
		t.Errorf("first report date = %q, want newest first", resp.Reports[0].ReportDate)
	}
}

func TestServePlayerReports_MemberCannotReadOthers(t *testing.T) {
	h := newHandler(t, sampleRecords())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/reports/players/someone-else", testutil.MemberUser(engine.TeamOnline))
	req = testutil.WithChiURLParam(req, "playerID", "someone-else")
	rec := httptest.NewRecorder()
	h.ServePlayerReports(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", rec.Code, rec.Body.String())
	}
}

func TestServePlayerReports_AdminReadsAnyone(t *testing.T) {
	h := newHandler(t, sampleRecords())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/reports/players/player-42", testutil.AdminUser())
	req = testutil.WithChiURLParam(req, "playerID", "player-42")
	rec := httptest.NewRecorder()
	h.ServePlayerReports(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
}

func TestServePlayerReportsCSV(t *testing.T) {
	h := newHandler(t, sampleRecords())

	req := testutil.NewAuthenticatedRequest(http.MethodGet, "/reports/players/player-42/export", testutil.MemberUser(engine.TeamOnline))
	req = testutil.WithChiURLParam(req, "playerID", "player-42")
	rec := httptest.NewRecorder()
	h.ServePlayerReportsCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("content type = %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "reports_player-42.csv") {
		t.Errorf("content disposition = %q", cd)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "player_id,team_type,report_date") {
		t.Errorf("missing header row: %s", body)
	}
	if !strings.Contains(body, "82.5") {
		t.Errorf("missing activity cell: %s", body)
	}
	// Second record carries no metrics; its activity cell must be empty,
	// not zero.
	lines := strings.Split(strings.TrimSpace(body), "\r\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want 3: %q", len(lines), body)
	}
	if !strings.Contains(lines[2], "2026-08-13,5,21,,") {
		t.Errorf("empty metric cells missing: %q", lines[2])
	}
}
