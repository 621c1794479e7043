// internal/domain/models/provider.go
package models

// Player is the provider's player record as managed by the admin console.
// CRUD on these goes straight through to the provider API; nothing is cached.
type Player struct {
	ID       string   `json:"_id,omitempty"`
	Name     string   `json:"name" validate:"required"`
	Email    string   `json:"email,omitempty" validate:"omitempty,email"`
	Image    string   `json:"image,omitempty"`
	Teams    []string `json:"teams,omitempty"`
	IsActive bool     `json:"is_active"`
}

// Team is the provider's team record.
type Team struct {
	ID       string `json:"_id,omitempty"`
	Name     string `json:"name" validate:"required"`
	TeamType string `json:"team_type" validate:"required"`
}

// CatalogItem is one provider catalog entry. Certain items double as
// unlock/boost toggles: ownership of the item flips the corresponding flag.
type CatalogItem struct {
	ID    string  `json:"_id,omitempty"`
	Name  string  `json:"name" validate:"required"`
	Price float64 `json:"price"`
}
