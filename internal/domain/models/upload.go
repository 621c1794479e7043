// internal/domain/models/upload.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RowError is a per-row validation failure from a report CSV upload.
// Valid rows in the same file still import; errors are reported in aggregate.
type RowError struct {
	Line   int    `bson:"line" json:"line"`
	Field  string `bson:"field,omitempty" json:"field,omitempty"`
	Reason string `bson:"reason" json:"reason"`
}

// UploadBatch records one report CSV upload for the admin history view.
type UploadBatch struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	BatchID    string             `bson:"batch_id" json:"batch_id"` // uuid
	FileName   string             `bson:"file_name" json:"file_name"`
	TeamType   string             `bson:"team_type" json:"team_type"`
	UploadedBy string             `bson:"uploaded_by" json:"uploaded_by"`

	RowsTotal    int        `bson:"rows_total" json:"rows_total"`
	RowsImported int        `bson:"rows_imported" json:"rows_imported"`
	RowsSkipped  int        `bson:"rows_skipped" json:"rows_skipped"` // unchanged vs. latest stored record
	RowErrors    []RowError `bson:"row_errors,omitempty" json:"row_errors,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
