// internal/testutil/fixtures.go
package testutil

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that call handlers directly, without a router.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// ReportRecord builds a report record with the activity percent set, the
// shape most store and handler tests need.
func ReportRecord(playerID, teamType, reportDate string, cycleDay, totalDays int, activity float64) models.ReportRecord {
	return models.ReportRecord{
		PlayerID:       playerID,
		TeamType:       teamType,
		ReportDate:     reportDate,
		CycleDay:       cycleDay,
		TotalCycleDays: totalDays,
		Activity:       &activity,
	}
}
