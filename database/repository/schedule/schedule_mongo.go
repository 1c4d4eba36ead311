package scheduleRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when a schedule document does not exist or belongs
// to a different doctor.
var ErrNotFound = errors.New("schedule entry not found")

// MongoScheduleRepo implements ScheduleRepository using MongoDB.
type MongoScheduleRepo struct {
	templateColl *mongo.Collection
	leaveColl    *mongo.Collection
	busyColl     *mongo.Collection
}

// NewMongoScheduleRepo constructs a new instance of MongoScheduleRepo.
func NewMongoScheduleRepo() ScheduleRepository {
	db := database.DB()
	return &MongoScheduleRepo{
		templateColl: db.Collection("weekly_templates"),
		leaveColl:    db.Collection("leave_periods"),
		busyColl:     db.Collection("busy_blocks"),
	}
}

// TemplatesFor retrieves a doctor's active template entries for one weekday,
// ordered by start time.
func (repo *MongoScheduleRepo) TemplatesFor(ctx context.Context, doctorID string, day time.Weekday) ([]models.WeeklyTemplateEntry, error) {
	filter := bson.M{
		"doctor_id":   doctorID,
		"day_of_week": int(day),
		"active":      true,
	}
	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.templateColl.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error fetching template entries: %w", err)
	}
	var entries []models.WeeklyTemplateEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding template entries: %w", err)
	}
	return entries, nil
}

// LeavesCovering retrieves leave periods whose inclusive date range covers the
// given calendar date.
func (repo *MongoScheduleRepo) LeavesCovering(ctx context.Context, doctorID string, date time.Time) ([]models.LeavePeriod, error) {
	day := models.DateOnly(date)
	filter := bson.M{
		"doctor_id":  doctorID,
		"start_date": bson.M{"$lt": day.AddDate(0, 0, 1)},
		"end_date":   bson.M{"$gte": day},
	}
	cursor, err := repo.leaveColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching leave periods: %w", err)
	}
	var leaves []models.LeavePeriod
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("error decoding leave periods: %w", err)
	}
	return leaves, nil
}

// BusyBlocksFor retrieves the union of one-off blocks dated exactly date and
// recurring blocks on the matching weekday.
func (repo *MongoScheduleRepo) BusyBlocksFor(ctx context.Context, doctorID string, date time.Time, day time.Weekday) ([]models.BusyBlock, error) {
	start := models.DateOnly(date)
	filter := bson.M{
		"doctor_id": doctorID,
		"$or": bson.A{
			bson.M{
				"recurring": false,
				"date":      bson.M{"$gte": start, "$lt": start.AddDate(0, 0, 1)},
			},
			bson.M{
				"recurring":   true,
				"day_of_week": int(day),
			},
		},
	}
	cursor, err := repo.busyColl.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching busy blocks: %w", err)
	}
	var blocks []models.BusyBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding busy blocks: %w", err)
	}
	return blocks, nil
}

// ListTemplates returns all of a doctor's template entries, weekday then start
// time order.
func (repo *MongoScheduleRepo) ListTemplates(ctx context.Context, doctorID string) ([]models.WeeklyTemplateEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "day_of_week", Value: 1}, {Key: "start_time", Value: 1}})
	cursor, err := repo.templateColl.Find(ctx, bson.M{"doctor_id": doctorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing template entries: %w", err)
	}
	var entries []models.WeeklyTemplateEntry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("error decoding template entries: %w", err)
	}
	return entries, nil
}

// CreateTemplate inserts a new template entry document.
func (repo *MongoScheduleRepo) CreateTemplate(ctx context.Context, entry *models.WeeklyTemplateEntry) error {
	if _, err := repo.templateColl.InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("error creating template entry: %w", err)
	}
	return nil
}

// DeleteTemplate removes a template entry owned by the doctor.
func (repo *MongoScheduleRepo) DeleteTemplate(ctx context.Context, doctorID, entryID string) error {
	res, err := repo.templateColl.DeleteOne(ctx, bson.M{"id": entryID, "doctor_id": doctorID})
	if err != nil {
		return fmt.Errorf("error deleting template entry %s: %w", entryID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListLeaves returns all of a doctor's leave periods, most recent first.
func (repo *MongoScheduleRepo) ListLeaves(ctx context.Context, doctorID string) ([]models.LeavePeriod, error) {
	opts := options.Find().SetSort(bson.D{{Key: "start_date", Value: -1}})
	cursor, err := repo.leaveColl.Find(ctx, bson.M{"doctor_id": doctorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing leave periods: %w", err)
	}
	var leaves []models.LeavePeriod
	if err := cursor.All(ctx, &leaves); err != nil {
		return nil, fmt.Errorf("error decoding leave periods: %w", err)
	}
	return leaves, nil
}

// CreateLeave inserts a new leave period document.
func (repo *MongoScheduleRepo) CreateLeave(ctx context.Context, leave *models.LeavePeriod) error {
	if _, err := repo.leaveColl.InsertOne(ctx, leave); err != nil {
		return fmt.Errorf("error creating leave period: %w", err)
	}
	return nil
}

// DeleteLeave removes a leave period owned by the doctor.
func (repo *MongoScheduleRepo) DeleteLeave(ctx context.Context, doctorID, leaveID string) error {
	res, err := repo.leaveColl.DeleteOne(ctx, bson.M{"id": leaveID, "doctor_id": doctorID})
	if err != nil {
		return fmt.Errorf("error deleting leave period %s: %w", leaveID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBusyBlocks returns all of a doctor's busy blocks, most recent first.
func (repo *MongoScheduleRepo) ListBusyBlocks(ctx context.Context, doctorID string) ([]models.BusyBlock, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := repo.busyColl.Find(ctx, bson.M{"doctor_id": doctorID}, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing busy blocks: %w", err)
	}
	var blocks []models.BusyBlock
	if err := cursor.All(ctx, &blocks); err != nil {
		return nil, fmt.Errorf("error decoding busy blocks: %w", err)
	}
	return blocks, nil
}

// CreateBusyBlock inserts a new busy block document.
func (repo *MongoScheduleRepo) CreateBusyBlock(ctx context.Context, block *models.BusyBlock) error {
	if _, err := repo.busyColl.InsertOne(ctx, block); err != nil {
		return fmt.Errorf("error creating busy block: %w", err)
	}
	return nil
}

// DeleteBusyBlock removes a busy block owned by the doctor.
func (repo *MongoScheduleRepo) DeleteBusyBlock(ctx context.Context, doctorID, blockID string) error {
	res, err := repo.busyColl.DeleteOne(ctx, bson.M{"id": blockID, "doctor_id": doctorID})
	if err != nil {
		return fmt.Errorf("error deleting busy block %s: %w", blockID, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
