package batchmodel

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const collectionName = "issuance_batches"

const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// BatchReport is the stored outcome of one upload. Large uploads are
// processed in the background and polled through this document.
type BatchReport struct {
	ID            string     `bson:"_id" json:"batch_id"`
	InstitutionID uint       `bson:"institution_id" json:"institution_id"`
	Variant       string     `bson:"certificate_type" json:"certificate_type"`
	Filename      string     `bson:"filename" json:"filename"`
	Status        string     `bson:"status" json:"status"`
	Rows          int        `bson:"rows" json:"rows"`
	Created       int        `bson:"created" json:"created"`
	Updated       int        `bson:"updated" json:"updated"`
	Errors        []string   `bson:"errors" json:"errors"`
	Certificates  []string   `bson:"certificates" json:"certificates"`
	Message       string     `bson:"message" json:"message"`
	CreatedAt     time.Time  `bson:"created_at" json:"created_at"`
	FinishedAt    *time.Time `bson:"finished_at,omitempty" json:"finished_at,omitempty"`
}

type BatchRepository struct {
	db *mongo.Database
}

func NewBatchRepository(db *mongo.Database) *BatchRepository {
	return &BatchRepository{db: db}
}

func (r *BatchRepository) collection() *mongo.Collection {
	return r.db.Collection(collectionName)
}

func (r *BatchRepository) Create(report *BatchReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := r.collection().InsertOne(ctx, report); err != nil {
		slog.Error("BatchModel Create failed", "error", err, "batch_id", report.ID)
		return err
	}
	return nil
}

// Save replaces the stored report with report.
func (r *BatchRepository) Save(report *BatchReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err := r.collection().ReplaceOne(ctx, bson.M{"_id": report.ID}, report)
	if err != nil {
		slog.Error("BatchModel Save failed", "error", err, "batch_id", report.ID)
		return err
	}
	return nil
}

// GetById returns nil, nil for an unknown batch.
func (r *BatchRepository) GetById(id string) (*BatchReport, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var report BatchReport
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&report)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		slog.Error("BatchModel GetById failed", "error", err, "batch_id", id)
		return nil, err
	}
	return &report, nil
}
