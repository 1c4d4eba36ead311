package scheduling

import (
	"context"
	"fmt"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// ComputeAvailableSlots derives, for a doctor and calendar date, the ordered
// list of candidate slots and their availability. Slots come from the weekly
// template for that weekday, sliced at each entry's configured duration, and
// are marked unavailable when they overlap a busy block or an occupying
// appointment. A day covered by leave, or a weekday with no template, yields
// an empty list.
func (s *DefaultSchedulingService) ComputeAvailableSlots(ctx context.Context, doctorID string, date time.Time) ([]models.Slot, error) {
	if doctorID == "" {
		return nil, fmt.Errorf("doctor id is required")
	}
	logger := utils.GetLogger()
	day := models.DateOnly(date)

	if s.Cache != nil {
		if slots, ok := s.Cache.Get(ctx, doctorID, day); ok {
			return slots, nil
		}
	}

	entries, err := s.ScheduleRepo.TemplatesFor(ctx, doctorID, day.Weekday())
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		// Doctor does not work on this day.
		return []models.Slot{}, nil
	}

	leaves, err := s.ScheduleRepo.LeavesCovering(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}
	if len(leaves) > 0 {
		return []models.Slot{}, nil
	}

	// Fetch busy blocks and occupying appointments once; shared across all
	// template entries below.
	busy, err := s.ScheduleRepo.BusyBlocksFor(ctx, doctorID, day, day.Weekday())
	if err != nil {
		return nil, err
	}
	appts, err := s.AppointmentRepo.Occupying(ctx, doctorID, day, day.AddDate(0, 0, 1), "")
	if err != nil {
		return nil, err
	}

	busyIntervals := make([]models.Interval, 0, len(busy))
	for _, b := range busy {
		busyIntervals = append(busyIntervals, b.Window().On(day))
	}

	slots := []models.Slot{}
	for _, entry := range entries {
		if entry.SlotDurationMins <= 0 {
			// A zero duration would never advance the carving loop. Such
			// entries are rejected at creation; skip any that slipped into
			// storage by other means.
			logger.Warn("skipping template entry with non-positive slot duration",
				zap.String("entryId", entry.ID),
				zap.Int("slotDurationMins", entry.SlotDurationMins))
			continue
		}
		window := entry.Window().On(day)
		duration := time.Duration(entry.SlotDurationMins) * time.Minute

		for cur := window.Start; cur.Before(window.End); {
			curEnd := cur.Add(duration)
			if curEnd.After(window.End) {
				// Partial trailing slot is discarded, not truncated.
				break
			}
			slot := models.Slot{Start: cur, End: curEnd}
			slot.Available = slotFree(slot.SlotInterval(), busyIntervals, appts)
			slots = append(slots, slot)
			cur = curEnd
		}
	}

	if s.Cache != nil {
		s.Cache.Set(ctx, doctorID, day, slots)
	}
	logger.Debug("computed available slots",
		zap.String("doctorId", doctorID),
		zap.String("date", day.Format("2006-01-02")),
		zap.Int("slots", len(slots)))
	return slots, nil
}

// slotFree reports whether the candidate interval avoids every busy window and
// every occupying appointment.
func slotFree(candidate models.Interval, busy []models.Interval, appts []models.Appointment) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return false
		}
	}
	for i := range appts {
		if candidate.Overlaps(appts[i].Interval()) {
			return false
		}
	}
	return true
}
