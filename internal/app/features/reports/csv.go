// internal/app/features/reports/csv.go
package reports

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// writeReportCSV streams the history as a CSV download. BOM and CRLF keep
// Excel happy.
func writeReportCSV(w http.ResponseWriter, playerID string, recs []models.ReportRecord) {
	filename := "reports_" + playerID + ".csv"
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, url.PathEscape(filename)))

	_, _ = w.Write([]byte{0xEF, 0xBB, 0xBF})

	cw := csv.NewWriter(w)
	cw.UseCRLF = true
	defer cw.Flush()

	header := []string{"player_id", "team_type", "report_date", "cycle_day", "total_cycle_days"}
	header = append(header, models.MetricFields()...)
	_ = cw.Write(header)

	for i := range recs {
		rec := &recs[i]
		row := []string{
			rec.PlayerID,
			rec.TeamType,
			rec.ReportDate,
			strconv.Itoa(rec.CycleDay),
			strconv.Itoa(rec.TotalCycleDays),
		}
		for _, field := range models.MetricFields() {
			row = append(row, formatMetric(rec.Metric(field)))
		}
		_ = cw.Write(row)
	}
}

// formatMetric renders a metric cell; nil stays empty to keep "not reported"
// distinct from an explicit zero.
func formatMetric(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}
