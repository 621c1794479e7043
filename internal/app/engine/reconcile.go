// internal/app/engine/reconcile.go
package engine

import (
	"github.com/salespulse/salespulse/internal/domain/models"
)

// FieldDiff is one field-level difference between a stored report record and
// a freshly parsed one.
type FieldDiff struct {
	Old any `json:"old"`
	New any `json:"new"`
}

// ReconcileResult reports whether a new report record is worth writing.
// The reconciler itself performs no writes.
type ReconcileResult struct {
	HasChanges  bool                 `json:"has_changes"`
	Differences map[string]FieldDiff `json:"differences,omitempty"`
}

// Reconcile compares an incoming report record against the latest stored
// record for the same player. With no stored record, everything counts as a
// change and the differences carry a single "all" entry. Fields differ when
// their values are not numerically equal; a nil metric on one side only is a
// difference, nil on both sides is not.
func Reconcile(stored *models.ReportRecord, incoming models.ReportRecord) ReconcileResult {
	if stored == nil {
		return ReconcileResult{
			HasChanges:  true,
			Differences: map[string]FieldDiff{"all": {Old: nil, New: incoming}},
		}
	}

	diffs := make(map[string]FieldDiff)

	if stored.CycleDay != incoming.CycleDay {
		diffs["cycle_day"] = FieldDiff{Old: stored.CycleDay, New: incoming.CycleDay}
	}
	if stored.TotalCycleDays != incoming.TotalCycleDays {
		diffs["total_cycle_days"] = FieldDiff{Old: stored.TotalCycleDays, New: incoming.TotalCycleDays}
	}

	for _, field := range models.MetricFields() {
		oldV := stored.Metric(field)
		newV := incoming.Metric(field)
		if metricEqual(oldV, newV) {
			continue
		}
		diffs[field] = FieldDiff{Old: deref(oldV), New: deref(newV)}
	}

	if len(diffs) == 0 {
		return ReconcileResult{HasChanges: false}
	}
	return ReconcileResult{HasChanges: true, Differences: diffs}
}

func metricEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func deref(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
