// internal/domain/models/reportrecord.go
package models

import "time"

// Metric field names shared by CSV parsing, goal configuration, and the
// dashboard engine. A TeamGoalConfig slot references one of these to pull a
// percentage out of a ReportRecord.
const (
	MetricActivity            = "activity"
	MetricRevenuePerActive    = "revenue_per_active"
	MetricMultiBrandPerActive = "multi_brand_per_active"
	MetricConversions         = "conversions"
	MetricUPA                 = "upa"
	MetricRegistrations       = "registrations"
)

// MetricFields lists every metric a report record can carry, in CSV column order.
func MetricFields() []string {
	return []string{
		MetricActivity,
		MetricRevenuePerActive,
		MetricMultiBrandPerActive,
		MetricConversions,
		MetricUPA,
		MetricRegistrations,
	}
}

// ReportRecord is one CSV-derived snapshot of a player's cycle performance
// for a given report date. Records are immutable once written; a newer report
// date supersedes an older one. Uniquely keyed by (player_id, report_date).
//
// Metric percentages are pointers: nil means the upload did not carry that
// metric, which is different from an explicit 0.
type ReportRecord struct {
	PlayerID       string    `json:"player_id" bson:"player_id"`
	TeamType       string    `json:"team_type" bson:"team_type"`
	ReportDate     string    `json:"report_date" bson:"report_date"` // YYYY-MM-DD
	CycleDay       int       `json:"cycle_day" bson:"cycle_day"`
	TotalCycleDays int       `json:"total_cycle_days" bson:"total_cycle_days"`
	UploadID       string    `json:"upload_id,omitempty" bson:"upload_id,omitempty"`
	CreatedAt      time.Time `json:"created_at" bson:"created_at"`

	Activity            *float64 `json:"activity,omitempty" bson:"activity,omitempty"`
	RevenuePerActive    *float64 `json:"revenue_per_active,omitempty" bson:"revenue_per_active,omitempty"`
	MultiBrandPerActive *float64 `json:"multi_brand_per_active,omitempty" bson:"multi_brand_per_active,omitempty"`
	Conversions         *float64 `json:"conversions,omitempty" bson:"conversions,omitempty"`
	UPA                 *float64 `json:"upa,omitempty" bson:"upa,omitempty"`
	Registrations       *float64 `json:"registrations,omitempty" bson:"registrations,omitempty"`
}

// Metric returns the percentage stored for the named metric field,
// or nil when the record does not carry it (or the name is unknown).
func (r *ReportRecord) Metric(field string) *float64 {
	if r == nil {
		return nil
	}
	switch field {
	case MetricActivity:
		return r.Activity
	case MetricRevenuePerActive:
		return r.RevenuePerActive
	case MetricMultiBrandPerActive:
		return r.MultiBrandPerActive
	case MetricConversions:
		return r.Conversions
	case MetricUPA:
		return r.UPA
	case MetricRegistrations:
		return r.Registrations
	default:
		return nil
	}
}
