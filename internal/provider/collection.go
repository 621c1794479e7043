// internal/provider/collection.go
package provider

import (
	"context"
	"net/url"
)

// Document collection access. The provider exposes Mongo-flavored collections
// under /v3/database/{collection}; report records live there rather than in a
// local database so the rest of the platform can see them too.

// InsertDocument stores one document in the named collection.
func (c *Client) InsertDocument(ctx context.Context, token, collection string, doc any) error {
	return c.do(ctx, "POST", "/v3/database/"+url.PathEscape(collection), token, doc, nil)
}

// bulkResult is the provider's bulk-insert acknowledgment.
type bulkResult struct {
	Inserted int `json:"inserted"`
}

// BulkInsert stores many documents in one call and returns how many the
// provider accepted. An empty batch is a no-op.
func (c *Client) BulkInsert(ctx context.Context, token, collection string, docs []any) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	var res bulkResult
	err := c.do(ctx, "POST", "/v3/database/"+url.PathEscape(collection)+"/bulk", token, docs, &res)
	return res.Inserted, err
}

// FindDocuments runs a filtered query against the collection and decodes the
// matching documents into out (a pointer to a slice).
func (c *Client) FindDocuments(ctx context.Context, token, collection string, filter map[string]any, out any) error {
	body := map[string]any{"filter": filter}
	return c.do(ctx, "POST", "/v3/database/"+url.PathEscape(collection)+"/find", token, body, out)
}

// Aggregate runs a Mongo-style aggregation pipeline against the collection
// and decodes the result set into out (a pointer to a slice).
func (c *Client) Aggregate(ctx context.Context, token, collection string, pipeline []map[string]any, out any) error {
	return c.do(ctx, "POST", "/v3/database/"+url.PathEscape(collection)+"/aggregate", token, pipeline, out)
}
