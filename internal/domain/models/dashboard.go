// internal/domain/models/dashboard.go
package models

// Color buckets for goal display. Assignment is a pure function of the
// percentage: [0,50) red, [50,100) yellow, [100,inf) green.
const (
	ColorRed    = "red"
	ColorYellow = "yellow"
	ColorGreen  = "green"
)

// Goal value sources, reported so the UI can flag fresh report data.
const (
	SourceReport    = "report"
	SourceChallenge = "challenge"
	SourceNone      = "none"
)

// GoalView is the resolved display state of one goal slot.
type GoalView struct {
	Name    string  `json:"name"`
	Percent float64 `json:"percent"`
	Color   string  `json:"color"`
	Source  string  `json:"source"`

	// Unlock metadata, set on the primary goal of threshold-unlock teams.
	IsUnlockGoal    bool    `json:"is_unlock_goal,omitempty"`
	UnlockThreshold float64 `json:"unlock_threshold,omitempty"`

	// BoostActive is set on secondary goals whose boost catalog item is owned.
	BoostActive bool `json:"boost_active,omitempty"`
}

// ComputedDashboardView is the per-player result of running the engine.
// It is never persisted; every dashboard request recomputes it.
type ComputedDashboardView struct {
	PlayerID     string `json:"player_id"`
	Name         string `json:"name"`
	TeamType     string `json:"team_type"`
	TotalPoints  int    `json:"total_points"`
	PointsLocked bool   `json:"points_locked"`
	Multiplier   int    `json:"multiplier"`

	Primary    GoalView `json:"primary_goal"`
	Secondary1 GoalView `json:"secondary_goal1"`
	Secondary2 GoalView `json:"secondary_goal2"`

	CycleDay             int `json:"cycle_day"`
	TotalCycleDays       int `json:"total_cycle_days"`
	DaysRemainingInCycle int `json:"days_remaining_in_cycle"`
}
