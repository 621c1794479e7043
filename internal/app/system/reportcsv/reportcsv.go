// internal/app/system/reportcsv/reportcsv.go
package reportcsv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// Upload size and row limits for report CSV processing.
const (
	MaxUploadSize = 5 << 20 // 5 MB
	MaxRows       = 20000
)

// ErrTooManyRows is returned when the file exceeds the configured row limit.
var ErrTooManyRows = errors.New("csv exceeds maximum row count")

// Column layout is positional: three id/cycle columns, then one
// target/actual/percent triplet per metric in a fixed order. Only the percent
// cell of each triplet feeds the dashboard; target and actual are carried in
// the file for the analysts who produce it.
const (
	colPlayerID       = 0
	colCycleDay       = 1
	colTotalCycleDays = 2
	firstTripletCol   = 3
	tripletWidth      = 3

	// conversions is the last required triplet
	minColumns = firstTripletCol + 4*tripletWidth // 15
	maxColumns = firstTripletCol + 6*tripletWidth // 21
)

// tripletMetrics maps triplet position to the metric its percent cell fills,
// in column order.
var tripletMetrics = [...]string{
	models.MetricActivity,
	models.MetricRevenuePerActive,
	models.MetricMultiBrandPerActive,
	models.MetricConversions,
	models.MetricUPA,
	models.MetricRegistrations,
}

// ParsedRow is one valid CSV row. The record carries only what the file
// knows: player, cycle position, and metric percentages. The upload handler
// stamps report date, team type, and batch id.
type ParsedRow struct {
	Line   int
	Record models.ReportRecord
}

// Result holds the outcome of parsing a report CSV: valid rows plus one
// RowError per rejected row. A bad row never aborts the file.
type Result struct {
	Rows   []ParsedRow
	Errors []models.RowError
}

// HasErrors returns true if any row was rejected.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// ParseOptions controls parsing limits. A zero MaxRows falls back to MaxRows.
type ParseOptions struct {
	MaxRows int
}

// Parse reads a performance report CSV. The header row is optional and
// detected; a UTF-8 BOM is tolerated. Rows must carry 15 to 21 columns
// (through the conversions triplet at minimum, through registrations at
// most). Percent cells accept a decimal comma and an optional % suffix;
// a blank percent cell means the metric is absent for that player.
func Parse(r io.Reader, opts ParseOptions) (Result, error) {
	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = MaxRows
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var result Result
	lineNum := 0

	first, err := reader.Read()
	if err == io.EOF {
		return result, nil
	}
	if err != nil {
		return result, err
	}
	lineNum++

	if len(first) > 0 {
		first[0] = strings.TrimPrefix(first[0], "\uFEFF")
	}

	rowCount := 0
	if !isHeaderRow(first) {
		parseRowInto(&result, first, lineNum)
		rowCount++
	}

	for {
		rec, err := reader.Read()
		lineNum++
		if err == io.EOF {
			break
		}
		if err != nil {
			result.Errors = append(result.Errors, models.RowError{
				Line:   lineNum,
				Reason: err.Error(),
			})
			continue
		}
		if allEmpty(rec) {
			continue
		}
		if rowCount >= maxRows {
			return result, ErrTooManyRows
		}
		parseRowInto(&result, rec, lineNum)
		rowCount++
	}

	return result, nil
}

// isHeaderRow checks whether a row is the header by looking at the cycle-day
// column: headers carry a label there, data rows carry a number.
func isHeaderRow(rec []string) bool {
	if len(rec) < 2 {
		return false
	}
	c0 := strings.ToLower(strings.TrimSpace(rec[colPlayerID]))
	if c0 == "player_id" || c0 == "player id" || c0 == "playerid" {
		return true
	}
	c1 := strings.TrimSpace(rec[colCycleDay])
	if c1 == "" {
		return false
	}
	_, err := strconv.Atoi(c1)
	return err != nil
}

func allEmpty(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

func parseRowInto(result *Result, rec []string, line int) {
	for i := range rec {
		rec[i] = strings.TrimSpace(rec[i])
	}

	if len(rec) < minColumns {
		result.Errors = append(result.Errors, models.RowError{
			Line:   line,
			Reason: fmt.Sprintf("row has %d columns, need at least %d (through the conversions triplet)", len(rec), minColumns),
		})
		return
	}
	if len(rec) > maxColumns {
		result.Errors = append(result.Errors, models.RowError{
			Line:   line,
			Reason: fmt.Sprintf("row has %d columns, maximum is %d", len(rec), maxColumns),
		})
		return
	}
	// Partial triplets would silently drop a metric's percent cell.
	if (len(rec)-firstTripletCol)%tripletWidth != 0 {
		result.Errors = append(result.Errors, models.RowError{
			Line:   line,
			Reason: fmt.Sprintf("row has %d columns; metric columns come in target/actual/percent triplets", len(rec)),
		})
		return
	}

	playerID := rec[colPlayerID]
	if playerID == "" {
		result.Errors = append(result.Errors, models.RowError{
			Line:   line,
			Field:  "player_id",
			Reason: "missing player id",
		})
		return
	}

	cycleDay, err := parsePositiveInt(rec[colCycleDay])
	if err != nil {
		result.Errors = append(result.Errors, models.RowError{
			Line:   line,
			Field:  "cycle_day",
			Reason: fmt.Sprintf("invalid cycle day %q", rec[colCycleDay]),
		})
		return
	}
	totalDays, err := parsePositiveInt(rec[colTotalCycleDays])
	if err != nil || totalDays == 0 {
		result.Errors = append(result.Errors, models.RowError{
			Line:   line,
			Field:  "total_cycle_days",
			Reason: fmt.Sprintf("invalid total cycle days %q", rec[colTotalCycleDays]),
		})
		return
	}
	record := models.ReportRecord{
		PlayerID:       playerID,
		CycleDay:       cycleDay,
		TotalCycleDays: totalDays,
	}

	triplets := (len(rec) - firstTripletCol) / tripletWidth
	for i := 0; i < triplets; i++ {
		metric := tripletMetrics[i]
		percentCol := firstTripletCol + i*tripletWidth + 2
		pct, err := parsePercent(rec[percentCol])
		if err != nil {
			result.Errors = append(result.Errors, models.RowError{
				Line:   line,
				Field:  metric,
				Reason: fmt.Sprintf("invalid percent %q", rec[percentCol]),
			})
			return
		}
		setMetric(&record, metric, pct)
	}

	result.Rows = append(result.Rows, ParsedRow{Line: line, Record: record})
}

func parsePositiveInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative value %d", n)
	}
	return n, nil
}

// parsePercent parses a percent cell. Blank means the metric is absent.
// Accepts "87.5", "87,5", and "87.5%".
func parsePercent(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	s = strings.TrimSuffix(s, "%")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func setMetric(r *models.ReportRecord, field string, v *float64) {
	switch field {
	case models.MetricActivity:
		r.Activity = v
	case models.MetricRevenuePerActive:
		r.RevenuePerActive = v
	case models.MetricMultiBrandPerActive:
		r.MultiBrandPerActive = v
	case models.MetricConversions:
		r.Conversions = v
	case models.MetricUPA:
		r.UPA = v
	case models.MetricRegistrations:
		r.Registrations = v
	}
}
