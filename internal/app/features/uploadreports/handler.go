// internal/app/features/uploadreports/handler.go
package uploadreports

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/salespulse/salespulse/internal/app/engine"
	reportstore "github.com/salespulse/salespulse/internal/app/store/reports"
	uploadstore "github.com/salespulse/salespulse/internal/app/store/uploads"
	"github.com/salespulse/salespulse/internal/app/system/auditlog"
	"github.com/salespulse/salespulse/internal/app/system/auth"
	"github.com/salespulse/salespulse/internal/app/system/httpjson"
	"github.com/salespulse/salespulse/internal/app/system/metrics"
	"github.com/salespulse/salespulse/internal/app/system/normalize"
	"github.com/salespulse/salespulse/internal/app/system/reportcsv"
	"github.com/salespulse/salespulse/internal/app/system/timeouts"
	"github.com/salespulse/salespulse/internal/domain/models"
	"github.com/salespulse/salespulse/internal/provider"
)

// Handler ingests performance report CSVs. Parsed rows are reconciled against
// the latest stored record per player so re-uploading the same file is a
// no-op, then written to the provider collection in one bulk call. Every
// upload leaves a batch record in the local history.
type Handler struct {
	Log        *zap.Logger
	SessionMgr *auth.SessionManager
	Provider   *provider.Client
	Reports    *reportstore.Store
	Uploads    *uploadstore.Store
	AuditLog   *auditlog.Logger
	Metrics    *metrics.Manager
}

// NewHandler constructs an upload Handler.
func NewHandler(
	sessionMgr *auth.SessionManager,
	prov *provider.Client,
	reports *reportstore.Store,
	uploads *uploadstore.Store,
	audit *auditlog.Logger,
	m *metrics.Manager,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Log:        logger,
		SessionMgr: sessionMgr,
		Provider:   prov,
		Reports:    reports,
		Uploads:    uploads,
		AuditLog:   audit,
		Metrics:    m,
	}
}

type uploadSummary struct {
	BatchID      string            `json:"batch_id"`
	FileName     string            `json:"file_name"`
	TeamType     string            `json:"team_type"`
	ReportDate   string            `json:"report_date"`
	RowsTotal    int               `json:"rows_total"`
	RowsImported int               `json:"rows_imported"`
	RowsSkipped  int               `json:"rows_skipped"`
	RowErrors    []models.RowError `json:"row_errors,omitempty"`
}

// ServeUpload handles POST /admin/reports/upload. Multipart form with a "csv"
// file plus "team_type" and "report_date" fields applying to every row.
func (h *Handler) ServeUpload(w http.ResponseWriter, r *http.Request) {
	user, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, "unauthorized", "sign in required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, reportcsv.MaxUploadSize)

	teamType := normalize.TeamType(r.FormValue("team_type"))
	if !engine.IsKnownTeam(teamType) {
		httpjson.Error(w, http.StatusUnprocessableEntity, "unknown_team_type",
			"team_type must be one of the configured teams")
		return
	}
	reportDate := strings.TrimSpace(r.FormValue("report_date"))
	if _, err := time.Parse("2006-01-02", reportDate); err != nil {
		httpjson.Error(w, http.StatusUnprocessableEntity, "invalid_report_date",
			"report_date must be YYYY-MM-DD")
		return
	}

	file, header, err := r.FormFile("csv")
	if err != nil {
		if strings.Contains(err.Error(), "request body too large") {
			httpjson.Error(w, http.StatusRequestEntityTooLarge, "file_too_large",
				"csv file exceeds the 5 MB limit")
			return
		}
		httpjson.Error(w, http.StatusBadRequest, "missing_file", "a csv file is required")
		return
	}
	defer file.Close()

	parsed, err := reportcsv.Parse(file, reportcsv.ParseOptions{})
	if err != nil {
		if errors.Is(err, reportcsv.ErrTooManyRows) {
			httpjson.Error(w, http.StatusUnprocessableEntity, "too_many_rows",
				"csv exceeds the maximum row count")
			return
		}
		httpjson.Error(w, http.StatusBadRequest, "invalid_csv", "csv could not be read: "+err.Error())
		return
	}

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Batch(), h.Log, "report csv import")
	defer cancel()

	token := h.SessionMgr.Token(r).AccessToken
	batchID := uuid.NewString()

	toInsert := make([]models.ReportRecord, 0, len(parsed.Rows))
	skipped := 0
	for _, row := range parsed.Rows {
		rec := row.Record
		rec.TeamType = teamType
		rec.ReportDate = reportDate
		rec.UploadID = batchID

		stored, err := h.Reports.LatestForPlayer(ctx, token, rec.PlayerID)
		if err != nil {
			// Reconciliation is an optimization; a failed lookup must not
			// block the import.
			h.Metrics.ProviderError()
			h.Log.Warn("latest report lookup failed during import, importing row anyway",
				zap.String("player_id", rec.PlayerID), zap.Error(err))
			stored = nil
		}
		if !engine.Reconcile(stored, rec).HasChanges {
			skipped++
			continue
		}
		toInsert = append(toInsert, rec)
	}

	imported := 0
	if len(toInsert) > 0 {
		imported, err = h.Reports.BulkInsert(ctx, token, toInsert)
		if err != nil {
			h.Metrics.ProviderError()
			h.Log.Error("bulk report insert failed", zap.Error(err))
			httpjson.Error(w, http.StatusBadGateway, "provider_unavailable",
				"report storage is unavailable; nothing was imported")
			return
		}
	}

	batch := models.UploadBatch{
		BatchID:      batchID,
		FileName:     header.Filename,
		TeamType:     teamType,
		UploadedBy:   user.PlayerID,
		RowsTotal:    len(parsed.Rows) + len(parsed.Errors),
		RowsImported: imported,
		RowsSkipped:  skipped,
		RowErrors:    parsed.Errors,
	}
	if err := h.Uploads.Insert(ctx, batch); err != nil {
		h.Log.Error("upload batch record failed",
			zap.String("batch_id", batchID), zap.Error(err))
	}

	h.Metrics.CSVRows(imported, skipped, len(parsed.Errors))
	h.AuditLog.ReportUpload(ctx, r, user.PlayerID, batchID, header.Filename,
		imported, skipped, len(parsed.Errors))

	httpjson.Write(w, http.StatusOK, uploadSummary{
		BatchID:      batchID,
		FileName:     header.Filename,
		TeamType:     teamType,
		ReportDate:   reportDate,
		RowsTotal:    batch.RowsTotal,
		RowsImported: imported,
		RowsSkipped:  skipped,
		RowErrors:    parsed.Errors,
	})
}

// ServeHistory handles GET /admin/reports/uploads.
func (h *Handler) ServeHistory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Medium(), h.Log, "upload history")
	defer cancel()

	var limit int64
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			httpjson.Error(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = n
	}

	batches, err := h.Uploads.ListRecent(ctx, limit)
	if err != nil {
		h.Log.Error("upload history query failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, "internal", "could not load upload history")
		return
	}
	httpjson.Write(w, http.StatusOK, map[string]any{"uploads": batches})
}
