// internal/app/store/reports/reportstore.go
package reportstore

import (
	"context"
	"errors"
	"time"

	"github.com/salespulse/salespulse/internal/domain/models"
	"github.com/salespulse/salespulse/internal/provider"
)

// DefaultCollection is the provider collection report records live in.
const DefaultCollection = "performance_reports"

// Store reads and writes report records in the provider's document
// collection rather than a local database, so the rest of the gamification
// platform sees the same data the dashboard does. Every call takes the
// caller's bearer token, which the provider uses for access control.
type Store struct {
	client     *provider.Client
	collection string
}

// New creates a report store over the given provider collection. An empty
// collection name falls back to DefaultCollection.
func New(client *provider.Client, collection string) *Store {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Store{client: client, collection: collection}
}

// Insert stores one record, stamping CreatedAt.
func (s *Store) Insert(ctx context.Context, token string, rec models.ReportRecord) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	return s.client.InsertDocument(ctx, token, s.collection, rec)
}

// BulkInsert stores a batch of records in one provider call and returns how
// many the provider accepted.
func (s *Store) BulkInsert(ctx context.Context, token string, recs []models.ReportRecord) (int, error) {
	if len(recs) == 0 {
		return 0, nil
	}
	now := time.Now().UTC()
	docs := make([]any, len(recs))
	for i, rec := range recs {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		docs[i] = rec
	}
	return s.client.BulkInsert(ctx, token, s.collection, docs)
}

// LatestForPlayer returns the player's most recent record by report date,
// or nil when the player has none. Report dates are YYYY-MM-DD strings, so
// lexicographic sort is date order.
func (s *Store) LatestForPlayer(ctx context.Context, token, playerID string) (*models.ReportRecord, error) {
	pipeline := []map[string]any{
		{"$match": map[string]any{"player_id": playerID}},
		{"$sort": map[string]any{"report_date": -1, "created_at": -1}},
		{"$limit": 1},
	}
	var recs []models.ReportRecord
	if err := s.client.Aggregate(ctx, token, s.collection, pipeline, &recs); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return &recs[0], nil
}

// ListForPlayer returns every record for a player, newest report date first.
func (s *Store) ListForPlayer(ctx context.Context, token, playerID string) ([]models.ReportRecord, error) {
	pipeline := []map[string]any{
		{"$match": map[string]any{"player_id": playerID}},
		{"$sort": map[string]any{"report_date": -1, "created_at": -1}},
	}
	var recs []models.ReportRecord
	if err := s.client.Aggregate(ctx, token, s.collection, pipeline, &recs); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return recs, nil
}

// ListForDate returns every record with the given report date, used to check
// what a re-upload would change.
func (s *Store) ListForDate(ctx context.Context, token, reportDate string) ([]models.ReportRecord, error) {
	var recs []models.ReportRecord
	filter := map[string]any{"report_date": reportDate}
	if err := s.client.FindDocuments(ctx, token, s.collection, filter, &recs); err != nil {
		if errors.Is(err, provider.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return recs, nil
}
