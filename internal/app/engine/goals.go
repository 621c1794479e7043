// internal/app/engine/goals.go
package engine

import (
	"github.com/salespulse/salespulse/internal/domain/models"
)

// Color bucket boundaries, inclusive on the lower edge only:
// [0,50) red, [50,100) yellow, [100,inf) green.
const (
	colorYellowFloor = 50.0
	colorGreenFloor  = 100.0
)

// ColorFor assigns the display color bucket for a goal percentage.
func ColorFor(pct float64) string {
	pct = Sanitize(pct)
	switch {
	case pct >= colorGreenFloor:
		return models.ColorGreen
	case pct >= colorYellowFloor:
		return models.ColorYellow
	default:
		return models.ColorRed
	}
}

// ResolvePercent picks the effective percentage for one goal slot.
// A non-nil report value always wins; otherwise the configured challenge's
// progress is used; otherwise 0. Missing data degrades, it never fails.
func ResolvePercent(slot models.GoalSlot, status models.PlayerStatus, rec *models.ReportRecord) (pct float64, source string) {
	if v := rec.Metric(slot.MetricField); v != nil {
		return Sanitize(*v), models.SourceReport
	}
	if v, ok := status.ChallengePercent(slot.ChallengeID); ok {
		return Sanitize(v), models.SourceChallenge
	}
	return 0, models.SourceNone
}

// ResolveGoals resolves all three goal slots of a team configuration into
// display form. The primary slot of a threshold-unlock team carries the
// unlock metadata; secondary slots carry their boost-active flag.
func ResolveGoals(cfg models.TeamGoalConfig, status models.PlayerStatus, rec *models.ReportRecord) (primary, secondary1, secondary2 models.GoalView) {
	primary = resolveSlot(cfg.Primary, status, rec)
	secondary1 = resolveSlot(cfg.Secondary1, status, rec)
	secondary2 = resolveSlot(cfg.Secondary2, status, rec)

	if cfg.Unlock.Kind == models.UnlockThreshold {
		primary.IsUnlockGoal = true
		primary.UnlockThreshold = UnlockPercent
	}
	secondary1.BoostActive = status.OwnsItem(cfg.BoostItem1ID)
	secondary2.BoostActive = status.OwnsItem(cfg.BoostItem2ID)
	return primary, secondary1, secondary2
}

func resolveSlot(slot models.GoalSlot, status models.PlayerStatus, rec *models.ReportRecord) models.GoalView {
	pct, source := ResolvePercent(slot, status, rec)
	return models.GoalView{
		Name:    slot.DisplayName,
		Percent: pct,
		Color:   ColorFor(pct),
		Source:  source,
	}
}
