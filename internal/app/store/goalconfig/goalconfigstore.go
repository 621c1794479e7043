// internal/app/store/goalconfig/goalconfigstore.go
package goalconfigstore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// ErrNotFound is returned when no config exists for a team type.
var ErrNotFound = errors.New("goal config not found")

// Store provides access to the goal_configs collection: one document per
// team type, seeded from the built-in defaults and edited in the admin
// console.
type Store struct {
	c *mongo.Collection
}

// New creates a goal config store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("goal_configs")}
}

// EnsureIndexes creates the unique team_type index.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "team_type", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Get returns the config for one team type.
func (s *Store) Get(ctx context.Context, teamType string) (models.TeamGoalConfig, error) {
	var cfg models.TeamGoalConfig
	err := s.c.FindOne(ctx, bson.M{"team_type": teamType}).Decode(&cfg)
	if err == mongo.ErrNoDocuments {
		return models.TeamGoalConfig{}, ErrNotFound
	}
	if err != nil {
		return models.TeamGoalConfig{}, err
	}
	return cfg, nil
}

// List returns every stored config, sorted by team type.
func (s *Store) List(ctx context.Context) ([]models.TeamGoalConfig, error) {
	opts := options.Find().SetSort(bson.D{{Key: "team_type", Value: 1}})
	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var configs []models.TeamGoalConfig
	if err := cursor.All(ctx, &configs); err != nil {
		return nil, err
	}
	return configs, nil
}

// Save upserts a team's config, stamping UpdatedAt (and CreatedAt on insert).
func (s *Store) Save(ctx context.Context, cfg models.TeamGoalConfig) error {
	now := time.Now().UTC()
	update := bson.M{
		"$set": bson.M{
			"team_type":      cfg.TeamType,
			"primary":        cfg.Primary,
			"secondary1":     cfg.Secondary1,
			"secondary2":     cfg.Secondary2,
			"unlock":         cfg.Unlock,
			"boost_item1_id": cfg.BoostItem1ID,
			"boost_item2_id": cfg.BoostItem2ID,
			"updated_by":     cfg.UpdatedBy,
			"updated_at":     now,
		},
		"$setOnInsert": bson.M{
			"_id":        primitive.NewObjectID(),
			"created_at": now,
		},
	}
	opts := options.Update().SetUpsert(true)
	_, err := s.c.UpdateOne(ctx, bson.M{"team_type": cfg.TeamType}, update, opts)
	return err
}

// SeedDefaults inserts any of the given configs whose team type is not yet
// stored. Existing documents are left untouched so admin edits survive
// restarts. Returns how many were inserted.
func (s *Store) SeedDefaults(ctx context.Context, defaults []models.TeamGoalConfig) (int, error) {
	inserted := 0
	now := time.Now().UTC()
	for _, cfg := range defaults {
		cfg.ID = primitive.NewObjectID()
		cfg.CreatedAt = now
		cfg.UpdatedAt = now
		res, err := s.c.UpdateOne(ctx,
			bson.M{"team_type": cfg.TeamType},
			bson.M{"$setOnInsert": cfg},
			options.Update().SetUpsert(true))
		if err != nil {
			return inserted, err
		}
		if res.UpsertedCount > 0 {
			inserted++
		}
	}
	return inserted, nil
}
