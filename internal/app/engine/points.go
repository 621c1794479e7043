// internal/app/engine/points.go
package engine

import (
	"math"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// UnlockPercent is the threshold at which a threshold-unlock team's points
// unlock. The boundary is inclusive: exactly 100% unlocks.
const UnlockPercent = 100.0

// Sanitize normalizes a percentage before any threshold comparison.
// NaN, infinities, and negative values all collapse to 0, so malformed
// upstream data deterministically produces a locked result.
func Sanitize(p float64) float64 {
	if math.IsNaN(p) || math.IsInf(p, 0) || p < 0 {
		return 0
	}
	return p
}

// Unlocked decides whether the player's points count toward their total.
// Threshold teams unlock when the controlling metric reaches UnlockPercent;
// item teams unlock by owning the configured unlock catalog item.
func Unlocked(cfg models.TeamGoalConfig, status models.PlayerStatus, controlling float64) bool {
	switch cfg.Unlock.Kind {
	case models.UnlockThreshold:
		return Sanitize(controlling) >= UnlockPercent
	case models.UnlockItem:
		return status.OwnsItem(cfg.Unlock.CatalogItemID)
	default:
		return false
	}
}

// Multiplier is the boost multiplier applied to unlocked points:
// 1 plus one for each active boost.
func Multiplier(boost1, boost2 bool) int {
	m := 1
	if boost1 {
		m++
	}
	if boost2 {
		m++
	}
	return m
}

// FinalPoints computes the displayed point total. Boosts apply only while
// unlocked; locked players keep their base points untouched. The result is
// always a non-negative integer.
func FinalPoints(base float64, unlocked, boost1, boost2 bool) int {
	if math.IsNaN(base) || base < 0 {
		base = 0
	}
	if !unlocked {
		return int(math.Round(base))
	}
	return int(math.Round(base * float64(Multiplier(boost1, boost2))))
}
