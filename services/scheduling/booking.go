package scheduling

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
	"clinicbook/utils"
)

// BookAppointment validates and persists a new appointment. The whole
// validate-then-write sequence runs under the doctor's serialization lock, and
// the repository re-runs the overlap check inside its transaction, so two
// concurrent requests for the same interval cannot both succeed.
func (s *DefaultSchedulingService) BookAppointment(ctx context.Context, req BookingRequest) (*models.Appointment, *Rejection, error) {
	if req.PatientID == "" || req.DoctorID == "" {
		return nil, nil, fmt.Errorf("patient id and doctor id are required")
	}
	logger := utils.GetLogger()

	unlock := s.locks.lock(req.DoctorID)
	defer unlock()

	rej, err := s.ValidateBooking(ctx, req.DoctorID, req.Start, req.End, "")
	if err != nil {
		return nil, nil, err
	}
	if rej != nil {
		return nil, rej, nil
	}

	appt := &models.Appointment{
		ID:        uuid.New().String(),
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		Start:     req.Start,
		End:       req.End,
		Status:    models.StatusConfirmed,
		Notes:     req.Notes,
		CreatedAt: s.now(),
	}

	if err := s.AppointmentRepo.CreateIfFree(ctx, appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrConflict) {
			return nil, reject(RejectAppointmentConflict), nil
		}
		return nil, nil, err
	}

	s.invalidateSlots(ctx, req.DoctorID, req.Start)
	logger.Info("appointment booked",
		zap.String("id", appt.ID),
		zap.String("doctorId", appt.DoctorID),
		zap.Time("start", appt.Start))
	return appt, nil, nil
}

// RescheduleAppointment moves an appointment to a new interval, validating
// against every constraint except the appointment itself.
func (s *DefaultSchedulingService) RescheduleAppointment(ctx context.Context, id string, start, end time.Time) (*models.Appointment, *Rejection, error) {
	appt, err := s.AppointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	unlock := s.locks.lock(appt.DoctorID)
	defer unlock()

	rej, err := s.ValidateBooking(ctx, appt.DoctorID, start, end, id)
	if err != nil {
		return nil, nil, err
	}
	if rej != nil {
		return nil, rej, nil
	}

	if err := s.AppointmentRepo.RescheduleIfFree(ctx, id, start, end); err != nil {
		if errors.Is(err, appointmentRepo.ErrConflict) {
			return nil, reject(RejectAppointmentConflict), nil
		}
		return nil, nil, err
	}

	// Both the vacated and the newly occupied day change.
	s.invalidateSlots(ctx, appt.DoctorID, appt.Start)
	s.invalidateSlots(ctx, appt.DoctorID, start)

	appt.Start = start
	appt.End = end
	return appt, nil, nil
}

// TransitionStatus applies a confirm/cancel/complete transition, enforcing the
// legal state machine. Cancelled and completed stop occupying time, so the
// affected day's slot cache is invalidated.
func (s *DefaultSchedulingService) TransitionStatus(ctx context.Context, id, status string) (*models.Appointment, error) {
	if !models.ValidStatus(status) {
		return nil, fmt.Errorf("unknown appointment status %q", status)
	}
	appt, err := s.AppointmentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !models.CanTransition(appt.Status, status) {
		return nil, fmt.Errorf("illegal status transition %s -> %s", appt.Status, status)
	}
	if err := s.AppointmentRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	if appt.Occupying() && (status == models.StatusCancelled || status == models.StatusCompleted) {
		s.invalidateSlots(ctx, appt.DoctorID, appt.Start)
	}
	appt.Status = status
	return appt, nil
}

func (s *DefaultSchedulingService) invalidateSlots(ctx context.Context, doctorID string, date time.Time) {
	if s.Cache != nil {
		s.Cache.Invalidate(ctx, doctorID, models.DateOnly(date))
	}
}
