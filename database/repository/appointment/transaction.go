package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"clinicbook/models"
)

// CreateIfFree inserts the appointment inside a session transaction, re-running
// the occupying-overlap count first. Validation and the write are otherwise not
// atomic, so this final check is what prevents two concurrent bookings for the
// same interval from both committing.
func (repo *MongoAppointmentRepo) CreateIfFree(ctx context.Context, appt *models.Appointment) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		n, err := repo.coll.CountDocuments(sc, occupyingFilter(appt.DoctorID, appt.Start, appt.End, ""))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrConflict
		}
		if _, err := repo.coll.InsertOne(sc, appt); err != nil {
			return fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil
	}

	return repo.runTxn(ctx, sess, txnFn)
}

// RescheduleIfFree moves an appointment to a new interval inside a session
// transaction, excluding the appointment itself from the overlap re-check.
func (repo *MongoAppointmentRepo) RescheduleIfFree(ctx context.Context, id string, start, end time.Time) error {
	client := repo.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		var appt models.Appointment
		if err := repo.coll.FindOne(sc, bson.M{"id": id}).Decode(&appt); err != nil {
			if err == mongo.ErrNoDocuments {
				return ErrNotFound
			}
			return fmt.Errorf("error fetching appointment %s: %w", id, err)
		}

		n, err := repo.coll.CountDocuments(sc, occupyingFilter(appt.DoctorID, start, end, id))
		if err != nil {
			return fmt.Errorf("overlap re-check failed: %w", err)
		}
		if n > 0 {
			return ErrConflict
		}

		update := bson.M{"$set": bson.M{"start": start, "end": end}}
		if _, err := repo.coll.UpdateOne(sc, bson.M{"id": id}, update); err != nil {
			return fmt.Errorf("reschedule update failed: %w", err)
		}
		return nil
	}

	return repo.runTxn(ctx, sess, txnFn)
}

func (repo *MongoAppointmentRepo) runTxn(ctx context.Context, sess mongo.Session, txnFn func(mongo.SessionContext) error) error {
	var txnErr error
	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			txnErr = err
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		// Surface ErrConflict and ErrNotFound unwrapped so callers can map them.
		if txnErr == ErrConflict || txnErr == ErrNotFound {
			return txnErr
		}
		return fmt.Errorf("appointment transaction failed: %w", err)
	}
	return nil
}
