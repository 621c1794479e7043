// internal/app/engine/view.go
package engine

import (
	"github.com/salespulse/salespulse/internal/domain/models"
)

// BuildView runs the full engine for one player: goal resolution, the
// unlock decision, and the boost-adjusted point total, composed into the
// ephemeral dashboard view. Pure and total: any missing input degrades to
// safe defaults (0%, red, locked) so a partial-data player still renders.
func BuildView(cfg models.TeamGoalConfig, status models.PlayerStatus, rec *models.ReportRecord) models.ComputedDashboardView {
	primary, secondary1, secondary2 := ResolveGoals(cfg, status, rec)

	controlling, _ := ResolvePercent(controllingSlot(cfg), status, rec)
	unlocked := Unlocked(cfg, status, controlling)

	boost1 := status.OwnsItem(cfg.BoostItem1ID)
	boost2 := status.OwnsItem(cfg.BoostItem2ID)

	multiplier := 1
	if unlocked {
		multiplier = Multiplier(boost1, boost2)
	}

	cycleDay, totalDays := 0, 0
	if rec != nil {
		cycleDay, totalDays = rec.CycleDay, rec.TotalCycleDays
	}
	remaining := totalDays - cycleDay
	if remaining < 0 {
		remaining = 0
	}

	return models.ComputedDashboardView{
		PlayerID:     status.PlayerID,
		Name:         status.Name,
		TeamType:     cfg.TeamType,
		TotalPoints:  FinalPoints(status.TotalPoints, unlocked, boost1, boost2),
		PointsLocked: !unlocked,
		Multiplier:   multiplier,

		Primary:    primary,
		Secondary1: secondary1,
		Secondary2: secondary2,

		CycleDay:             cycleDay,
		TotalCycleDays:       totalDays,
		DaysRemainingInCycle: remaining,
	}
}

// controllingSlot returns the slot whose percentage drives a threshold
// unlock: the slot tagged with the unlock role, or failing that, the slot
// whose metric matches the rule. Item-unlock teams have no controlling slot;
// the zero slot resolves to 0% which the unlock decision ignores.
func controllingSlot(cfg models.TeamGoalConfig) models.GoalSlot {
	for _, s := range cfg.Slots() {
		if s.Role == models.RoleUnlock {
			return s
		}
	}
	if cfg.Unlock.Kind == models.UnlockThreshold && cfg.Unlock.Metric != "" {
		for _, s := range cfg.Slots() {
			if s.MetricField == cfg.Unlock.Metric {
				return s
			}
		}
		return models.GoalSlot{MetricField: cfg.Unlock.Metric}
	}
	return models.GoalSlot{}
}
