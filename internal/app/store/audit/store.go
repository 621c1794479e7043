// internal/app/store/audit/store.go
package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Event categories
const (
	CategoryAuth  = "auth"
	CategoryAdmin = "admin"
)

// Auth event types
const (
	EventLoginSuccess         = "login_success"
	EventLoginFailed          = "login_failed"
	EventLoginFailedRateLimit = "login_failed_rate_limit"
	EventLogout               = "logout"
)

// Admin event types
const (
	EventGoalConfigUpdated  = "goal_config_updated"
	EventReportUpload       = "report_upload"
	EventPlayerCreated      = "player_created"
	EventPlayerUpdated      = "player_updated"
	EventPlayerDeleted      = "player_deleted"
	EventTeamCreated        = "team_created"
	EventTeamUpdated        = "team_updated"
	EventTeamDeleted        = "team_deleted"
	EventCatalogItemCreated = "catalog_item_created"
	EventCatalogItemUpdated = "catalog_item_updated"
	EventCatalogItemDeleted = "catalog_item_deleted"
)

// Event is one audit record. Player ids come from the provider, so they are
// plain strings rather than ObjectIDs.
type Event struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Timestamp time.Time          `bson:"timestamp"`

	Category  string `bson:"category"`
	EventType string `bson:"event_type"`

	// ActorID is who performed the action; SubjectID is who or what it was
	// done to (player id, team type, catalog item id, upload batch id).
	ActorID   string `bson:"actor_id,omitempty"`
	SubjectID string `bson:"subject_id,omitempty"`

	IP        string `bson:"ip,omitempty"`
	UserAgent string `bson:"user_agent,omitempty"`

	Success       bool   `bson:"success"`
	FailureReason string `bson:"failure_reason,omitempty"`

	Details map[string]string `bson:"details,omitempty"`
}

// QueryFilter narrows audit queries.
type QueryFilter struct {
	ActorID   string
	Category  string
	EventType string
	StartTime *time.Time
	EndTime   *time.Time
	Limit     int64
	Offset    int64
}

// Store manages audit event records.
type Store struct {
	c *mongo.Collection
}

// New creates a new audit Store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("audit_events")}
}

// EnsureIndexes creates the indexes the audit queries rely on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		{Keys: bson.D{
			{Key: "actor_id", Value: 1},
			{Key: "timestamp", Value: -1},
		}},
		{Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "event_type", Value: 1},
			{Key: "timestamp", Value: -1},
		}},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Log records one audit event.
func (s *Store) Log(ctx context.Context, event Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_, err := s.c.InsertOne(ctx, event)
	return err
}

func (f QueryFilter) query() bson.M {
	query := bson.M{}
	if f.ActorID != "" {
		query["actor_id"] = f.ActorID
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.EventType != "" {
		query["event_type"] = f.EventType
	}
	if f.StartTime != nil || f.EndTime != nil {
		timeQuery := bson.M{}
		if f.StartTime != nil {
			timeQuery["$gte"] = *f.StartTime
		}
		if f.EndTime != nil {
			timeQuery["$lte"] = *f.EndTime
		}
		query["timestamp"] = timeQuery
	}
	return query
}

// Query retrieves matching events, most recent first. Limit defaults to 100.
func (s *Store) Query(ctx context.Context, filter QueryFilter) ([]Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "timestamp", Value: -1}}).
		SetLimit(limit).
		SetSkip(filter.Offset)

	cursor, err := s.c.Find(ctx, filter.query(), opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []Event
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Count returns how many events match the filter.
func (s *Store) Count(ctx context.Context, filter QueryFilter) (int64, error) {
	return s.c.CountDocuments(ctx, filter.query())
}

// GetRecent retrieves the most recent events across all categories.
func (s *Store) GetRecent(ctx context.Context, limit int64) ([]Event, error) {
	return s.Query(ctx, QueryFilter{Limit: limit})
}
