// internal/provider/player.go
package provider

import (
	"context"
	"net/url"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// PlayerStatus fetches the provider's full status payload for one player:
// points, catalog item ownership, challenge progress, and team membership.
func (c *Client) PlayerStatus(ctx context.Context, token, playerID string) (models.PlayerStatus, error) {
	var status models.PlayerStatus
	err := c.do(ctx, "GET", "/v3/player/"+url.PathEscape(playerID)+"/status", token, nil, &status)
	return status, err
}

// ListPlayers returns every player record. Admin only on the provider side.
func (c *Client) ListPlayers(ctx context.Context, token string) ([]models.Player, error) {
	var players []models.Player
	err := c.do(ctx, "GET", "/v3/player", token, nil, &players)
	return players, err
}

// GetPlayer fetches one player record by id.
func (c *Client) GetPlayer(ctx context.Context, token, playerID string) (models.Player, error) {
	var p models.Player
	err := c.do(ctx, "GET", "/v3/player/"+url.PathEscape(playerID), token, nil, &p)
	return p, err
}

// CreatePlayer registers a player and returns the record the provider stored,
// including its assigned id.
func (c *Client) CreatePlayer(ctx context.Context, token string, p models.Player) (models.Player, error) {
	var created models.Player
	err := c.do(ctx, "POST", "/v3/player", token, p, &created)
	return created, err
}

// UpdatePlayer replaces a player record.
func (c *Client) UpdatePlayer(ctx context.Context, token string, p models.Player) (models.Player, error) {
	var updated models.Player
	err := c.do(ctx, "PUT", "/v3/player/"+url.PathEscape(p.ID), token, p, &updated)
	return updated, err
}

// DeletePlayer removes a player record.
func (c *Client) DeletePlayer(ctx context.Context, token, playerID string) error {
	return c.do(ctx, "DELETE", "/v3/player/"+url.PathEscape(playerID), token, nil, nil)
}
