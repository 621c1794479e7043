package engine_test

import (
	"testing"

	"github.com/salespulse/salespulse/internal/app/engine"
	"github.com/salespulse/salespulse/internal/domain/models"
)

func TestBuildView_UnlockedWithBothBoosts(t *testing.T) {
	cfg := thresholdConfig() // portfolio_ii: activity threshold unlocks
	status := models.PlayerStatus{
		PlayerID:    "p1",
		Name:        "Dana",
		TotalPoints: 1000,
		CatalogItems: map[string]int{
			cfg.BoostItem1ID: 1,
			cfg.BoostItem2ID: 1,
		},
	}
	rec := &models.ReportRecord{
		PlayerID:       "p1",
		CycleDay:       14,
		TotalCycleDays: 21,
		Activity:       f(110),
		RevenuePerActive: f(60),
	}

	view := engine.BuildView(cfg, status, rec)

	if view.PointsLocked {
		t.Fatal("110% on the unlock metric must unlock points")
	}
	if view.Multiplier != 3 {
		t.Errorf("multiplier: got %d, want 3", view.Multiplier)
	}
	if view.TotalPoints != 3000 {
		t.Errorf("total points: got %d, want 3000", view.TotalPoints)
	}
	if !view.Primary.IsUnlockGoal || view.Primary.UnlockThreshold != engine.UnlockPercent {
		t.Errorf("primary goal must carry unlock metadata, got %+v", view.Primary)
	}
	if !view.Secondary1.BoostActive || !view.Secondary2.BoostActive {
		t.Error("owned boost items must mark both secondary goals active")
	}
	if view.Primary.Color != models.ColorGreen {
		t.Errorf("primary color: got %q, want green", view.Primary.Color)
	}
	if view.CycleDay != 14 || view.TotalCycleDays != 21 || view.DaysRemainingInCycle != 7 {
		t.Errorf("cycle: got day %d/%d, %d remaining", view.CycleDay, view.TotalCycleDays, view.DaysRemainingInCycle)
	}
}

func TestBuildView_LockedIgnoresBoosts(t *testing.T) {
	cfg := thresholdConfig()
	status := models.PlayerStatus{
		PlayerID:    "p1",
		TotalPoints: 1000,
		CatalogItems: map[string]int{
			cfg.BoostItem1ID: 1,
			cfg.BoostItem2ID: 1,
		},
	}
	rec := &models.ReportRecord{
		PlayerID:       "p1",
		CycleDay:       14,
		TotalCycleDays: 21,
		Activity:       f(99.9),
	}

	view := engine.BuildView(cfg, status, rec)

	if !view.PointsLocked {
		t.Fatal("99.9% is below the unlock boundary, points must stay locked")
	}
	if view.TotalPoints != 1000 {
		t.Errorf("locked points: got %d, want unmultiplied 1000", view.TotalPoints)
	}
	if view.Multiplier != 1 {
		t.Errorf("locked multiplier: got %d, want 1", view.Multiplier)
	}
	// Boost ownership still shows on the goals even while locked.
	if !view.Secondary1.BoostActive {
		t.Error("boost ownership must render on the secondary goal regardless of lock state")
	}
}

func TestBuildView_ItemUnlockTeam(t *testing.T) {
	cfg := itemConfig() // portfolio_i: unlock by owning the catalog item
	status := models.PlayerStatus{
		PlayerID:    "p2",
		TotalPoints: 500,
		CatalogItems: map[string]int{
			cfg.Unlock.CatalogItemID: 1,
		},
		ChallengeProgress: []models.ChallengeProgress{
			{ChallengeID: cfg.Primary.ChallengeID, Percent: 40},
		},
	}

	view := engine.BuildView(cfg, status, nil)

	if view.PointsLocked {
		t.Fatal("owning the unlock item must unlock points, whatever the goal percentages")
	}
	if view.TotalPoints != 500 {
		t.Errorf("no boosts owned: got %d, want 500", view.TotalPoints)
	}
	if view.Primary.IsUnlockGoal {
		t.Error("item-unlock teams have no threshold goal")
	}
	if view.Primary.Percent != 40 || view.Primary.Source != models.SourceChallenge {
		t.Errorf("primary without report: got %v from %q", view.Primary.Percent, view.Primary.Source)
	}
}

func TestBuildView_NoReportDegradesToZeroCycle(t *testing.T) {
	cfg := thresholdConfig()
	view := engine.BuildView(cfg, models.PlayerStatus{PlayerID: "p3", TotalPoints: 200}, nil)

	if !view.PointsLocked {
		t.Error("no report and no challenge progress must leave points locked")
	}
	if view.CycleDay != 0 || view.TotalCycleDays != 0 || view.DaysRemainingInCycle != 0 {
		t.Errorf("cycle fields must zero out without a report, got %d/%d/%d",
			view.CycleDay, view.TotalCycleDays, view.DaysRemainingInCycle)
	}
	if view.Primary.Color != models.ColorRed || view.Primary.Source != models.SourceNone {
		t.Errorf("missing data must render 0%% red, got %+v", view.Primary)
	}
}

func TestBuildView_CycleDayPastEnd(t *testing.T) {
	cfg := thresholdConfig()
	rec := &models.ReportRecord{PlayerID: "p1", CycleDay: 25, TotalCycleDays: 21, Activity: f(50)}

	view := engine.BuildView(cfg, models.PlayerStatus{PlayerID: "p1"}, rec)
	if view.DaysRemainingInCycle != 0 {
		t.Errorf("remaining days clamp at zero, got %d", view.DaysRemainingInCycle)
	}
}
