package scheduling

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"
)

// ValidateBooking runs the pre-commit checks for a proposed [start, end)
// interval, in user-facing precedence order, short-circuiting on the first
// failure. A non-nil Rejection is an expected refusal; the error return
// carries storage faults only. Booking granularity is not checked here: any
// interval inside a template window is acceptable regardless of the entry's
// configured slot duration.
func (s *DefaultSchedulingService) ValidateBooking(ctx context.Context, doctorID string, start, end time.Time, excludeID string) (*Rejection, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("doctor id is required")
	}

	if !start.Before(end) {
		return reject(RejectInvalidInterval), nil
	}
	if start.Before(s.now()) {
		return reject(RejectInThePast), nil
	}

	entries, err := s.ScheduleRepo.TemplatesFor(ctx, doctorID, start.Weekday())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return reject(RejectNoTemplateForDay), nil
	}

	// Wall-clock containment; zero-padded "HH:MM" strings compare
	// lexicographically.
	startClock := models.FormatClock(start)
	endClock := models.FormatClock(end)
	covered := false
	for _, e := range entries {
		if startClock >= e.StartTime && endClock <= e.EndTime {
			covered = true
			break
		}
	}
	if !covered {
		return reject(RejectOutsideTemplateWindow), nil
	}

	leaves, err := s.ScheduleRepo.LeavesCovering(ctx, doctorID, start)
	if err != nil {
		return nil, err
	}
	if len(leaves) > 0 {
		return reject(RejectOnLeave), nil
	}

	proposed := models.Interval{Start: start, End: end}
	busy, err := s.ScheduleRepo.BusyBlocksFor(ctx, doctorID, start, start.Weekday())
	if err != nil {
		return nil, err
	}
	for _, b := range busy {
		if proposed.Overlaps(b.Window().On(start)) {
			return reject(RejectBusyConflict), nil
		}
	}

	conflicts, err := s.AppointmentRepo.Occupying(ctx, doctorID, start, end, excludeID)
	if err != nil {
		return nil, err
	}
	if len(conflicts) > 0 {
		return reject(RejectAppointmentConflict), nil
	}

	return nil, nil
}
