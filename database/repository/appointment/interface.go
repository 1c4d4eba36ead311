package appointmentRepo

import (
	"context"
	"errors"
	"time"

	"clinicbook/models"
)

// ErrConflict is returned when a guarded write loses to an overlapping
// occupying appointment.
var ErrConflict = errors.New("overlapping appointment exists")

// ErrNotFound is returned when an appointment does not exist.
var ErrNotFound = errors.New("appointment not found")

// Filter narrows appointment listings.
type Filter struct {
	DoctorID  string
	PatientID string
	Status    string
	Limit     int64
}

// AppointmentRepository defines data access for appointments. Occupying is a
// pure query; the *IfFree writes re-run the overlap check inside a Mongo
// session transaction so two concurrent bookings for the same interval cannot
// both commit.
type AppointmentRepository interface {
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	List(ctx context.Context, filter Filter) ([]models.Appointment, error)
	// Occupying retrieves pending/confirmed appointments whose interval
	// intersects [from, to), optionally excluding one appointment id.
	Occupying(ctx context.Context, doctorID string, from, to time.Time, excludeID string) ([]models.Appointment, error)
	// CreateIfFree inserts the appointment unless an occupying appointment
	// overlaps its interval; returns ErrConflict on overlap.
	CreateIfFree(ctx context.Context, appt *models.Appointment) error
	// RescheduleIfFree moves an appointment to a new interval unless another
	// occupying appointment overlaps it; the appointment never conflicts with
	// itself. Returns ErrConflict on overlap, ErrNotFound on unknown id.
	RescheduleIfFree(ctx context.Context, id string, start, end time.Time) error
	UpdateStatus(ctx context.Context, id, status string) error
	// SweepPast marks occupying appointments that ended before the cutoff as
	// completed and returns how many were updated.
	SweepPast(ctx context.Context, before time.Time) (int64, error)
}
