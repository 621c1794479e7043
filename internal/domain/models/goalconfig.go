// internal/domain/models/goalconfig.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Goal slot roles. A slot tagged with a boost role mirrors whether the
// associated boost catalog item is owned; the unlock role marks the metric
// that controls a threshold unlock.
const (
	RoleUnlock = "unlock"
	RoleBoost1 = "boost1"
	RoleBoost2 = "boost2"
)

// Unlock rule kinds.
const (
	UnlockThreshold = "threshold" // locked while the controlling metric is below 100%
	UnlockItem      = "item"      // locked while the unlock catalog item is not owned
)

// GoalSlot describes one of the (up to) three goals a team's dashboard shows:
// where its percentage comes from and how it is labeled.
//
// MetricField names a ReportRecord field; ChallengeID names the provider
// challenge used when no report value is present. Report data always wins.
type GoalSlot struct {
	DisplayName string `bson:"display_name" json:"display_name" validate:"required"`
	MetricField string `bson:"metric_field" json:"metric_field" validate:"required"`
	ChallengeID string `bson:"challenge_id" json:"challenge_id"`
	Role        string `bson:"role,omitempty" json:"role,omitempty" validate:"omitempty,oneof=unlock boost1 boost2"`
}

// UnlockRule decides whether a player's points count toward their total.
type UnlockRule struct {
	Kind          string `bson:"kind" json:"kind" validate:"required,oneof=threshold item"`
	Metric        string `bson:"metric,omitempty" json:"metric,omitempty"`
	CatalogItemID string `bson:"catalog_item_id,omitempty" json:"catalog_item_id,omitempty"`
}

// TeamGoalConfig maps a team type to its dashboard configuration: the three
// goal slots, the unlock rule, and the boost catalog items. Seeded from the
// built-in registry and editable in the admin console.
type TeamGoalConfig struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TeamType     string             `bson:"team_type" json:"team_type" validate:"required"`
	Primary      GoalSlot           `bson:"primary" json:"primary"`
	Secondary1   GoalSlot           `bson:"secondary1" json:"secondary1"`
	Secondary2   GoalSlot           `bson:"secondary2" json:"secondary2"`
	Unlock       UnlockRule         `bson:"unlock" json:"unlock"`
	BoostItem1ID string             `bson:"boost_item1_id,omitempty" json:"boost_item1_id,omitempty"`
	BoostItem2ID string             `bson:"boost_item2_id,omitempty" json:"boost_item2_id,omitempty"`

	UpdatedBy string    `bson:"updated_by,omitempty" json:"updated_by,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// Slots returns the configured goal slots in display order.
func (c TeamGoalConfig) Slots() [3]GoalSlot {
	return [3]GoalSlot{c.Primary, c.Secondary1, c.Secondary2}
}
