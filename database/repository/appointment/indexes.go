package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the appointments collection.
func (repo *MongoAppointmentRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Overlap queries filter on doctor + interval boundaries + status.
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "start", Value: 1}, {Key: "end", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("doctor_interval_status_idx"),
		},
		{
			Keys:    bson.D{{Key: "patient_id", Value: 1}, {Key: "start", Value: -1}},
			Options: options.Index().SetName("patient_start_idx"),
		},
		// Sweep scans by status + end cutoff.
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "end", Value: 1}},
			Options: options.Index().SetName("status_end_idx"),
		},
	}

	_, err := repo.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}
	return nil
}
