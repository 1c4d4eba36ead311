package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	return &MongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
}

// GetByID retrieves an appointment document by ID.
func (repo *MongoAppointmentRepo) GetByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appt models.Appointment
	if err := repo.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// List retrieves appointments matching the filter, most recent start first.
func (repo *MongoAppointmentRepo) List(ctx context.Context, filter Filter) ([]models.Appointment, error) {
	q := bson.M{}
	if filter.DoctorID != "" {
		q["doctor_id"] = filter.DoctorID
	}
	if filter.PatientID != "" {
		q["patient_id"] = filter.PatientID
	}
	if filter.Status != "" {
		q["status"] = filter.Status
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.D{{Key: "start", Value: -1}}).SetLimit(limit)
	cursor, err := repo.coll.Find(ctx, q, opts)
	if err != nil {
		return nil, fmt.Errorf("error listing appointments: %w", err)
	}
	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// Occupying retrieves pending/confirmed appointments intersecting [from, to),
// optionally excluding one appointment id.
func (repo *MongoAppointmentRepo) Occupying(ctx context.Context, doctorID string, from, to time.Time, excludeID string) ([]models.Appointment, error) {
	filter := occupyingFilter(doctorID, from, to, excludeID)
	cursor, err := repo.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching occupying appointments: %w", err)
	}
	var appts []models.Appointment
	if err := cursor.All(ctx, &appts); err != nil {
		return nil, fmt.Errorf("error decoding occupying appointments: %w", err)
	}
	return appts, nil
}

// UpdateStatus sets the appointment's status.
func (repo *MongoAppointmentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	res, err := repo.coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("error updating appointment %s status: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SweepPast marks occupying appointments that ended before the cutoff as completed.
func (repo *MongoAppointmentRepo) SweepPast(ctx context.Context, before time.Time) (int64, error) {
	filter := bson.M{
		"status": bson.M{"$in": models.OccupyingStatuses},
		"end":    bson.M{"$lt": before},
	}
	res, err := repo.coll.UpdateMany(ctx, filter, bson.M{"$set": bson.M{"status": models.StatusCompleted}})
	if err != nil {
		return 0, fmt.Errorf("error sweeping past appointments: %w", err)
	}
	return res.ModifiedCount, nil
}

// occupyingFilter builds the overlap query for occupying appointments against
// [from, to). Half-open semantics: start < to and end > from, so intervals
// that merely touch do not match.
func occupyingFilter(doctorID string, from, to time.Time, excludeID string) bson.M {
	filter := bson.M{
		"doctor_id": doctorID,
		"status":    bson.M{"$in": models.OccupyingStatuses},
		"start":     bson.M{"$lt": to},
		"end":       bson.M{"$gt": from},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	return filter
}
