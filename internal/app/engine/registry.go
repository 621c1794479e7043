// internal/app/engine/registry.go
package engine

import (
	"github.com/salespulse/salespulse/internal/domain/models"
)

// Team types known to the built-in registry. Each team renders three goals
// (one primary, two secondary) and has its own unlock rule. Per-team behavior
// is lookup-driven: all differences live in the config table below, never in
// scattered conditionals.
const (
	TeamPortfolioI   = "portfolio_i"
	TeamPortfolioII  = "portfolio_ii"
	TeamPortfolioIII = "portfolio_iii"
	TeamPortfolioIV  = "portfolio_iv"
	TeamFieldSales   = "field_sales"
	TeamOnline       = "online"
)

// TeamTypes returns the built-in team types in display order.
func TeamTypes() []string {
	return []string{
		TeamPortfolioI,
		TeamPortfolioII,
		TeamPortfolioIII,
		TeamPortfolioIV,
		TeamFieldSales,
		TeamOnline,
	}
}

// defaultConfigs is the static team registry. portfolio_ii and field_sales
// unlock on a metric threshold (their primary goal doubles as the unlock
// goal); the other teams unlock by owning the team's unlock catalog item.
var defaultConfigs = map[string]models.TeamGoalConfig{
	TeamPortfolioI: {
		TeamType: TeamPortfolioI,
		Primary: models.GoalSlot{
			DisplayName: "Activity",
			MetricField: models.MetricActivity,
			ChallengeID: "ch_activity",
		},
		Secondary1: models.GoalSlot{
			DisplayName: "Revenue per Active",
			MetricField: models.MetricRevenuePerActive,
			ChallengeID: "ch_revenue_active",
			Role:        models.RoleBoost1,
		},
		Secondary2: models.GoalSlot{
			DisplayName: "Multi-brand per Active",
			MetricField: models.MetricMultiBrandPerActive,
			ChallengeID: "ch_multibrand",
			Role:        models.RoleBoost2,
		},
		Unlock: models.UnlockRule{
			Kind:          models.UnlockItem,
			CatalogItemID: "item_unlock_p1",
		},
		BoostItem1ID: "item_boost1_p1",
		BoostItem2ID: "item_boost2_p1",
	},
	TeamPortfolioII: {
		TeamType: TeamPortfolioII,
		Primary: models.GoalSlot{
			DisplayName: "Activity",
			MetricField: models.MetricActivity,
			ChallengeID: "ch_activity",
			Role:        models.RoleUnlock,
		},
		Secondary1: models.GoalSlot{
			DisplayName: "Revenue per Active",
			MetricField: models.MetricRevenuePerActive,
			ChallengeID: "ch_revenue_active",
			Role:        models.RoleBoost1,
		},
		Secondary2: models.GoalSlot{
			DisplayName: "Multi-brand per Active",
			MetricField: models.MetricMultiBrandPerActive,
			ChallengeID: "ch_multibrand",
			Role:        models.RoleBoost2,
		},
		Unlock: models.UnlockRule{
			Kind:   models.UnlockThreshold,
			Metric: models.MetricActivity,
		},
		BoostItem1ID: "item_boost1_p2",
		BoostItem2ID: "item_boost2_p2",
	},
	TeamPortfolioIII: {
		TeamType: TeamPortfolioIII,
		Primary: models.GoalSlot{
			DisplayName: "Conversions",
			MetricField: models.MetricConversions,
			ChallengeID: "ch_conversions",
		},
		Secondary1: models.GoalSlot{
			DisplayName: "UPA",
			MetricField: models.MetricUPA,
			ChallengeID: "ch_upa",
			Role:        models.RoleBoost1,
		},
		Secondary2: models.GoalSlot{
			DisplayName: "Activity",
			MetricField: models.MetricActivity,
			ChallengeID: "ch_activity",
			Role:        models.RoleBoost2,
		},
		Unlock: models.UnlockRule{
			Kind:          models.UnlockItem,
			CatalogItemID: "item_unlock_p3",
		},
		BoostItem1ID: "item_boost1_p3",
		BoostItem2ID: "item_boost2_p3",
	},
	TeamPortfolioIV: {
		TeamType: TeamPortfolioIV,
		Primary: models.GoalSlot{
			DisplayName: "Conversions",
			MetricField: models.MetricConversions,
			ChallengeID: "ch_conversions",
		},
		Secondary1: models.GoalSlot{
			DisplayName: "UPA",
			MetricField: models.MetricUPA,
			ChallengeID: "ch_upa",
			Role:        models.RoleBoost1,
		},
		Secondary2: models.GoalSlot{
			DisplayName: "Registrations",
			MetricField: models.MetricRegistrations,
			ChallengeID: "ch_registrations",
			Role:        models.RoleBoost2,
		},
		Unlock: models.UnlockRule{
			Kind:          models.UnlockItem,
			CatalogItemID: "item_unlock_p4",
		},
		BoostItem1ID: "item_boost1_p4",
		BoostItem2ID: "item_boost2_p4",
	},
	TeamFieldSales: {
		TeamType: TeamFieldSales,
		Primary: models.GoalSlot{
			DisplayName: "Revenue per Active",
			MetricField: models.MetricRevenuePerActive,
			ChallengeID: "ch_revenue_active",
			Role:        models.RoleUnlock,
		},
		Secondary1: models.GoalSlot{
			DisplayName: "Activity",
			MetricField: models.MetricActivity,
			ChallengeID: "ch_activity",
			Role:        models.RoleBoost1,
		},
		Secondary2: models.GoalSlot{
			DisplayName: "Conversions",
			MetricField: models.MetricConversions,
			ChallengeID: "ch_conversions",
			Role:        models.RoleBoost2,
		},
		Unlock: models.UnlockRule{
			Kind:   models.UnlockThreshold,
			Metric: models.MetricRevenuePerActive,
		},
		BoostItem1ID: "item_boost1_fs",
		BoostItem2ID: "item_boost2_fs",
	},
	TeamOnline: {
		TeamType: TeamOnline,
		Primary: models.GoalSlot{
			DisplayName: "Conversions",
			MetricField: models.MetricConversions,
			ChallengeID: "ch_conversions",
		},
		Secondary1: models.GoalSlot{
			DisplayName: "Registrations",
			MetricField: models.MetricRegistrations,
			ChallengeID: "ch_registrations",
			Role:        models.RoleBoost1,
		},
		Secondary2: models.GoalSlot{
			DisplayName: "Multi-brand per Active",
			MetricField: models.MetricMultiBrandPerActive,
			ChallengeID: "ch_multibrand",
			Role:        models.RoleBoost2,
		},
		Unlock: models.UnlockRule{
			Kind:          models.UnlockItem,
			CatalogItemID: "item_unlock_on",
		},
		BoostItem1ID: "item_boost1_on",
		BoostItem2ID: "item_boost2_on",
	},
}

// DefaultConfig returns the built-in goal configuration for a team type.
// The second return is false for unknown team types.
func DefaultConfig(teamType string) (models.TeamGoalConfig, bool) {
	cfg, ok := defaultConfigs[teamType]
	return cfg, ok
}

// DefaultConfigs returns the built-in configurations for all six team types,
// in display order. Used to seed the admin-editable store.
func DefaultConfigs() []models.TeamGoalConfig {
	configs := make([]models.TeamGoalConfig, 0, len(defaultConfigs))
	for _, teamType := range TeamTypes() {
		configs = append(configs, defaultConfigs[teamType])
	}
	return configs
}

// IsKnownTeam reports whether the team type exists in the built-in registry.
func IsKnownTeam(teamType string) bool {
	_, ok := defaultConfigs[teamType]
	return ok
}
