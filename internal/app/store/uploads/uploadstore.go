// internal/app/store/uploads/uploadstore.go
package uploadstore

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/salespulse/salespulse/internal/domain/models"
)

// Store provides access to the upload_batches collection, the admin-facing
// history of report CSV uploads.
type Store struct {
	c *mongo.Collection
}

// New creates an upload batch store.
func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("upload_batches")}
}

// EnsureIndexes creates the indexes the history view queries on.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "batch_id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}
	_, err := s.c.Indexes().CreateMany(ctx, indexes)
	return err
}

// Insert records one completed upload.
func (s *Store) Insert(ctx context.Context, batch models.UploadBatch) error {
	if batch.ID.IsZero() {
		batch.ID = primitive.NewObjectID()
	}
	if batch.CreatedAt.IsZero() {
		batch.CreatedAt = time.Now().UTC()
	}
	_, err := s.c.InsertOne(ctx, batch)
	return err
}

// ListRecent returns the most recent batches, newest first.
// Limit defaults to 50.
func (s *Store) ListRecent(ctx context.Context, limit int64) ([]models.UploadBatch, error) {
	if limit <= 0 {
		limit = 50
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(limit)
	cursor, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var batches []models.UploadBatch
	if err := cursor.All(ctx, &batches); err != nil {
		return nil, err
	}
	return batches, nil
}

// GetByBatchID returns one batch by its uuid.
func (s *Store) GetByBatchID(ctx context.Context, batchID string) (models.UploadBatch, error) {
	var batch models.UploadBatch
	err := s.c.FindOne(ctx, bson.M{"batch_id": batchID}).Decode(&batch)
	return batch, err
}
