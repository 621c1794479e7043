// internal/provider/admin.go
package provider

import (
	"context"
	"net/url"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// Team and catalog management. These are straight pass-throughs to the
// provider; the admin console owns no copy of this data.

func (c *Client) ListTeams(ctx context.Context, token string) ([]models.Team, error) {
	var teams []models.Team
	err := c.do(ctx, "GET", "/v3/team", token, nil, &teams)
	return teams, err
}

func (c *Client) CreateTeam(ctx context.Context, token string, t models.Team) (models.Team, error) {
	var created models.Team
	err := c.do(ctx, "POST", "/v3/team", token, t, &created)
	return created, err
}

func (c *Client) UpdateTeam(ctx context.Context, token string, t models.Team) (models.Team, error) {
	var updated models.Team
	err := c.do(ctx, "PUT", "/v3/team/"+url.PathEscape(t.ID), token, t, &updated)
	return updated, err
}

func (c *Client) DeleteTeam(ctx context.Context, token, teamID string) error {
	return c.do(ctx, "DELETE", "/v3/team/"+url.PathEscape(teamID), token, nil, nil)
}

func (c *Client) ListCatalogItems(ctx context.Context, token string) ([]models.CatalogItem, error) {
	var items []models.CatalogItem
	err := c.do(ctx, "GET", "/v3/virtualgoods/item", token, nil, &items)
	return items, err
}

func (c *Client) CreateCatalogItem(ctx context.Context, token string, item models.CatalogItem) (models.CatalogItem, error) {
	var created models.CatalogItem
	err := c.do(ctx, "POST", "/v3/virtualgoods/item", token, item, &created)
	return created, err
}

func (c *Client) UpdateCatalogItem(ctx context.Context, token string, item models.CatalogItem) (models.CatalogItem, error) {
	var updated models.CatalogItem
	err := c.do(ctx, "PUT", "/v3/virtualgoods/item/"+url.PathEscape(item.ID), token, item, &updated)
	return updated, err
}

func (c *Client) DeleteCatalogItem(ctx context.Context, token, itemID string) error {
	return c.do(ctx, "DELETE", "/v3/virtualgoods/item/"+url.PathEscape(itemID), token, nil, nil)
}
