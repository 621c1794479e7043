package engine_test

import (
	"testing"

	"github.com/salespulse/salespulse/internal/app/engine"
	"github.com/salespulse/salespulse/internal/domain/models"
)

func f(v float64) *float64 { return &v }

func TestColorFor(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{0, models.ColorRed},
		{45, models.ColorRed},
		{49.99, models.ColorRed},
		{50, models.ColorYellow}, // inclusive lower edge
		{75, models.ColorYellow},
		{99.9, models.ColorYellow},
		{100, models.ColorGreen}, // inclusive lower edge
		{125, models.ColorGreen},
		{-10, models.ColorRed}, // sanitized to 0
	}
	for _, tc := range cases {
		if got := engine.ColorFor(tc.pct); got != tc.want {
			t.Errorf("ColorFor(%v) = %q, want %q", tc.pct, got, tc.want)
		}
	}
}

func TestResolvePercent_ReportWinsOverChallenge(t *testing.T) {
	slot := models.GoalSlot{
		DisplayName: "Activity",
		MetricField: models.MetricActivity,
		ChallengeID: "ch_activity",
	}
	status := models.PlayerStatus{
		PlayerID: "p1",
		ChallengeProgress: []models.ChallengeProgress{
			{ChallengeID: "ch_activity", Percent: 40},
		},
	}
	rec := &models.ReportRecord{PlayerID: "p1", Activity: f(88)}

	pct, source := engine.ResolvePercent(slot, status, rec)
	if pct != 88 || source != models.SourceReport {
		t.Errorf("got (%v, %q), want (88, report)", pct, source)
	}
}

func TestResolvePercent_FallsBackToChallenge(t *testing.T) {
	slot := models.GoalSlot{
		DisplayName: "Activity",
		MetricField: models.MetricActivity,
		ChallengeID: "ch_activity",
	}
	status := models.PlayerStatus{
		PlayerID: "p1",
		ChallengeProgress: []models.ChallengeProgress{
			{ChallengeID: "ch_activity", Percent: 40},
		},
	}

	// Report record present but field is nil: challenge progress wins.
	rec := &models.ReportRecord{PlayerID: "p1"}
	pct, source := engine.ResolvePercent(slot, status, rec)
	if pct != 40 || source != models.SourceChallenge {
		t.Errorf("nil report field: got (%v, %q), want (40, challenge)", pct, source)
	}

	// No report record at all.
	pct, source = engine.ResolvePercent(slot, status, nil)
	if pct != 40 || source != models.SourceChallenge {
		t.Errorf("nil record: got (%v, %q), want (40, challenge)", pct, source)
	}
}

func TestResolvePercent_DefaultsToZero(t *testing.T) {
	slot := models.GoalSlot{
		DisplayName: "Conversions",
		MetricField: models.MetricConversions,
		ChallengeID: "ch_conversions",
	}
	status := models.PlayerStatus{PlayerID: "p1"}

	pct, source := engine.ResolvePercent(slot, status, nil)
	if pct != 0 || source != models.SourceNone {
		t.Errorf("got (%v, %q), want (0, none)", pct, source)
	}
	if engine.ColorFor(pct) != models.ColorRed {
		t.Error("missing data must render red")
	}
}

func TestResolveGoals_UnlockAndBoostMetadata(t *testing.T) {
	cfg := thresholdConfig()
	status := models.PlayerStatus{
		PlayerID:     "p1",
		CatalogItems: map[string]int{cfg.BoostItem2ID: 2},
		ChallengeProgress: []models.ChallengeProgress{
			{ChallengeID: cfg.Primary.ChallengeID, Percent: 105},
		},
	}

	primary, s1, s2 := engine.ResolveGoals(cfg, status, nil)

	if !primary.IsUnlockGoal {
		t.Error("primary goal of a threshold team must carry the unlock flag")
	}
	if primary.UnlockThreshold != engine.UnlockPercent {
		t.Errorf("UnlockThreshold = %v, want %v", primary.UnlockThreshold, engine.UnlockPercent)
	}
	if primary.Color != models.ColorGreen {
		t.Errorf("primary color = %q, want green", primary.Color)
	}
	if s1.BoostActive {
		t.Error("secondary1 boost item not owned, flag must be false")
	}
	if !s2.BoostActive {
		t.Error("secondary2 boost item owned, flag must be true")
	}
	if s1.IsUnlockGoal || s2.IsUnlockGoal {
		t.Error("secondary goals never carry the unlock flag")
	}
}

func TestResolveGoals_ItemTeamHasNoUnlockGoal(t *testing.T) {
	cfg := itemConfig()
	primary, _, _ := engine.ResolveGoals(cfg, models.PlayerStatus{PlayerID: "p1"}, nil)
	if primary.IsUnlockGoal {
		t.Error("item-unlock teams must not flag the primary goal as an unlock goal")
	}
}
