// internal/domain/models/playerstatus.go
package models

// ChallengeProgress is one entry of the provider's challenge-progress list:
// how far a player has advanced on a single challenge, as a percentage.
type ChallengeProgress struct {
	ChallengeID string  `json:"challenge_id" bson:"challenge_id"`
	Percent     float64 `json:"percent" bson:"percent"`
}

// PlayerStatus is the provider's raw status payload for one player.
// It is read-only from our side: the provider owns this data and we only
// normalize it for dashboard rendering.
//
// CatalogItems maps catalog item id -> owned count. The dashboard treats
// ownership as a boolean flag (unlock and boost toggles).
type PlayerStatus struct {
	PlayerID          string              `json:"_id" bson:"_id"`
	Name              string              `json:"name" bson:"name"`
	Image             string              `json:"image,omitempty" bson:"image,omitempty"`
	TotalPoints       float64             `json:"total_points" bson:"total_points"`
	CatalogItems      map[string]int      `json:"catalog_items" bson:"catalog_items"`
	ChallengeProgress []ChallengeProgress `json:"challenge_progress" bson:"challenge_progress"`
	Teams             []string            `json:"teams" bson:"teams"`
}

// OwnsItem reports whether the player owns at least one of the catalog item.
func (s PlayerStatus) OwnsItem(itemID string) bool {
	return itemID != "" && s.CatalogItems[itemID] > 0
}

// ChallengePercent returns the progress percentage for the given challenge id,
// and whether an entry for it exists at all.
func (s PlayerStatus) ChallengePercent(challengeID string) (float64, bool) {
	if challengeID == "" {
		return 0, false
	}
	for _, cp := range s.ChallengeProgress {
		if cp.ChallengeID == challengeID {
			return cp.Percent, true
		}
	}
	return 0, false
}

// TeamType returns the first team the provider lists for the player, which is
// the team whose goal configuration drives the dashboard. Empty when the
// player is not on any team.
func (s PlayerStatus) TeamType() string {
	if len(s.Teams) == 0 {
		return ""
	}
	return s.Teams[0]
}
