package scheduling

import (
	"context"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
)

// BookingRequest carries a patient-initiated booking attempt.
type BookingRequest struct {
	PatientID string    `json:"patientId"`
	DoctorID  string    `json:"doctorId" binding:"required"`
	Start     time.Time `json:"start" binding:"required"`
	End       time.Time `json:"end" binding:"required"`
	Notes     string    `json:"notes"`
}

// SchedulingService is the appointment scheduling and availability engine.
// Rejections are expected, data-driven outcomes returned as values; the error
// return carries storage faults only.
type SchedulingService interface {
	// ComputeAvailableSlots derives the bookable time windows for a doctor on
	// a calendar date. Read-only.
	ComputeAvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]models.Slot, error)
	// ValidateBooking checks whether [start, end) may be committed for the
	// doctor, optionally excluding one appointment id (rescheduling).
	ValidateBooking(ctx context.Context, doctorID string, start, end time.Time, excludeID string) (*Rejection, error)
	// BookAppointment validates and persists a new appointment under the
	// doctor's serialization lock.
	BookAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, *Rejection, error)
	// RescheduleAppointment moves an existing appointment to a new interval,
	// validating against everyone except itself.
	RescheduleAppointment(ctx context.Context, id string, start, end time.Time) (*models.Appointment, *Rejection, error)
	// TransitionStatus applies a confirm/cancel/complete transition.
	TransitionStatus(ctx context.Context, id, status string) (*models.Appointment, error)
}

// DefaultSchedulingService implements SchedulingService.
type DefaultSchedulingService struct {
	ScheduleRepo    scheduleRepo.ScheduleRepository
	AppointmentRepo appointmentRepo.AppointmentRepository
	// Cache is optional; nil disables slot caching.
	Cache *SlotCache
	// Clock supplies the current instant for past-time checks; defaults to
	// time.Now so tests can control it.
	Clock func() time.Time

	locks doctorLocks
}

func (s *DefaultSchedulingService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}
