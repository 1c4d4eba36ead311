package scheduleRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the necessary indexes on the schedule collections.
func (repo *MongoScheduleRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	templateIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary query pattern: templates for one doctor on one weekday.
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "day_of_week", Value: 1}, {Key: "active", Value: 1}},
			Options: options.Index().SetName("doctor_day_active_idx"),
		},
	}
	if _, err := repo.templateColl.Indexes().CreateMany(ctx, templateIndexes); err != nil {
		return fmt.Errorf("failed to create template indexes: %w", err)
	}

	leaveIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Leave coverage lookups filter on the date range boundaries.
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "start_date", Value: 1}, {Key: "end_date", Value: 1}},
			Options: options.Index().SetName("doctor_range_idx"),
		},
	}
	if _, err := repo.leaveColl.Indexes().CreateMany(ctx, leaveIndexes); err != nil {
		return fmt.Errorf("failed to create leave indexes: %w", err)
	}

	busyIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "date", Value: 1}},
			Options: options.Index().SetName("doctor_date_idx"),
		},
		{
			Keys:    bson.D{{Key: "doctor_id", Value: 1}, {Key: "recurring", Value: 1}, {Key: "day_of_week", Value: 1}},
			Options: options.Index().SetName("doctor_recurring_day_idx"),
		},
	}
	if _, err := repo.busyColl.Indexes().CreateMany(ctx, busyIndexes); err != nil {
		return fmt.Errorf("failed to create busy block indexes: %w", err)
	}
	return nil
}
