package reportcsv

import (
	"errors"
	"strings"
	"testing"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// fifteen builds a minimal valid 15-column row: id, cycle day, total days,
// four triplets whose percent cells carry the given values.
func fifteen(playerID string, percents ...string) string {
	cols := []string{playerID, "5", "21"}
	for i := 0; i < 4; i++ {
		pct := ""
		if i < len(percents) {
			pct = percents[i]
		}
		cols = append(cols, "100", "80", pct)
	}
	return strings.Join(cols, ",")
}

func TestParse_Empty(t *testing.T) {
	result, err := Parse(strings.NewReader(""), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 0 || result.HasErrors() {
		t.Errorf("empty file: rows=%d errors=%d", len(result.Rows), len(result.Errors))
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	csv := "player_id,cycle_day,total_cycle_days,act_target,act_actual,act_pct,rev_target,rev_actual,rev_pct,mb_target,mb_actual,mb_pct,conv_target,conv_actual,conv_pct\n"
	result, err := Parse(strings.NewReader(csv), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 0 || result.HasErrors() {
		t.Errorf("header only: rows=%d errors=%v", len(result.Rows), result.Errors)
	}
}

func TestParse_ValidRowWithBOMAndNoHeader(t *testing.T) {
	csv := "\uFEFF" + fifteen("p1", "87.5", "60", "", "102") + "\n"
	result, err := Parse(strings.NewReader(csv), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.HasErrors() {
		t.Fatalf("unexpected row errors: %v", result.Errors)
	}
	if len(result.Rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(result.Rows))
	}

	rec := result.Rows[0].Record
	if rec.PlayerID != "p1" {
		t.Errorf("BOM should be stripped: got player id %q", rec.PlayerID)
	}
	if rec.CycleDay != 5 || rec.TotalCycleDays != 21 {
		t.Errorf("cycle: got %d/%d", rec.CycleDay, rec.TotalCycleDays)
	}
	if rec.Activity == nil || *rec.Activity != 87.5 {
		t.Errorf("activity: got %v", rec.Activity)
	}
	if rec.RevenuePerActive == nil || *rec.RevenuePerActive != 60 {
		t.Errorf("revenue_per_active: got %v", rec.RevenuePerActive)
	}
	if rec.MultiBrandPerActive != nil {
		t.Errorf("blank percent must parse as nil, got %v", *rec.MultiBrandPerActive)
	}
	if rec.Conversions == nil || *rec.Conversions != 102 {
		t.Errorf("conversions: got %v", rec.Conversions)
	}
	if rec.UPA != nil || rec.Registrations != nil {
		t.Error("15-column row must leave the optional metrics absent")
	}
}

func TestParse_FullWidthRow(t *testing.T) {
	cols := []string{"p1", "10", "21"}
	for _, pct := range []string{"50", "60", "70", "80", "90", "110"} {
		cols = append(cols, "1", "1", pct)
	}
	result, err := Parse(strings.NewReader(strings.Join(cols, ",")+"\n"), ParseOptions{})
	if err != nil || result.HasErrors() {
		t.Fatalf("err=%v rowErrors=%v", err, result.Errors)
	}
	rec := result.Rows[0].Record
	for i, want := range []float64{50, 60, 70, 80, 90, 110} {
		field := models.MetricFields()[i]
		got := rec.Metric(field)
		if got == nil || *got != want {
			t.Errorf("%s: got %v, want %v", field, got, want)
		}
	}
}

func TestParse_DecimalCommaAndPercentSuffix(t *testing.T) {
	csv := fifteen("p1", `"87,5"`, "92.1%") + "\n"
	result, err := Parse(strings.NewReader(csv), ParseOptions{})
	if err != nil || result.HasErrors() {
		t.Fatalf("err=%v rowErrors=%v", err, result.Errors)
	}
	rec := result.Rows[0].Record
	if rec.Activity == nil || *rec.Activity != 87.5 {
		t.Errorf("decimal comma: got %v", rec.Activity)
	}
	if rec.RevenuePerActive == nil || *rec.RevenuePerActive != 92.1 {
		t.Errorf("percent suffix: got %v", rec.RevenuePerActive)
	}
}

func TestParse_BadRowsCollectErrorsWithoutAborting(t *testing.T) {
	lines := []string{
		fifteen("p1", "80"),           // good
		fifteen("", "80"),             // missing player id
		strings.Replace(fifteen("p3", "80"), "p3,5,", "p3,notaday,", 1), // bad cycle day
		fifteen("p4", "eighty"),       // bad percent
		"p5,5,21,1,1,50",              // too few columns
		fifteen("p6", "90"),           // good
	}
	result, err := Parse(strings.NewReader(strings.Join(lines, "\n")), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Errorf("expected 2 good rows, got %d", len(result.Rows))
	}
	if len(result.Errors) != 4 {
		t.Fatalf("expected 4 row errors, got %d: %v", len(result.Errors), result.Errors)
	}

	byField := map[string]int{}
	for _, e := range result.Errors {
		byField[e.Field]++
		if e.Line == 0 {
			t.Errorf("row error without line number: %+v", e)
		}
	}
	if byField["player_id"] != 1 {
		t.Errorf("expected one player_id error, got %d", byField["player_id"])
	}
	if byField["cycle_day"] != 1 {
		t.Errorf("expected one cycle_day error, got %d", byField["cycle_day"])
	}
	if byField[models.MetricActivity] != 1 {
		t.Errorf("expected one activity percent error, got %d", byField[models.MetricActivity])
	}
}

func TestParse_SkipsBlankLines(t *testing.T) {
	csv := fifteen("p1", "80") + "\n\n,,,,,,,,,,,,,,\n" + fifteen("p2", "90") + "\n"
	result, err := Parse(strings.NewReader(csv), ParseOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Rows) != 2 || result.HasErrors() {
		t.Errorf("rows=%d errors=%v", len(result.Rows), result.Errors)
	}
}

func TestParse_RowLimit(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 5; i++ {
		b.WriteString(fifteen("p1", "80"))
		b.WriteString("\n")
	}
	_, err := Parse(strings.NewReader(b.String()), ParseOptions{MaxRows: 3})
	if !errors.Is(err, ErrTooManyRows) {
		t.Fatalf("got %v, want ErrTooManyRows", err)
	}
}
