package models

import "time"

// Appointment statuses. Only pending and confirmed appointments occupy time;
// cancelled and completed do not block new bookings.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// OccupyingStatuses are the statuses that block overlapping bookings.
var OccupyingStatuses = []string{StatusPending, StatusConfirmed}

// Appointment is the canonical booked interval between a patient and a doctor.
type Appointment struct {
	ID        string    `bson:"id" json:"id"`
	PatientID string    `bson:"patient_id" json:"patientId"`
	DoctorID  string    `bson:"doctor_id" json:"doctorId"`
	Start     time.Time `bson:"start" json:"start"`
	End       time.Time `bson:"end" json:"end"`
	Status    string    `bson:"status" json:"status"`
	Notes     string    `bson:"notes,omitempty" json:"notes,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Interval returns the appointment's occupied interval.
func (a *Appointment) Interval() Interval {
	return Interval{Start: a.Start, End: a.End}
}

// Occupying reports whether the appointment blocks overlapping bookings.
func (a *Appointment) Occupying() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// ValidStatus reports whether s is a known appointment status.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	}
	return false
}

// CanTransition reports whether a status change is legal. Cancelled and
// completed are terminal.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusConfirmed || to == StatusCancelled
	case StatusConfirmed:
		return to == StatusCancelled || to == StatusCompleted
	}
	return false
}
