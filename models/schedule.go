package models

import (
	"fmt"
	"time"
)

// LeaveType categorizes a leave period.
type LeaveType string

const (
	LeaveVacation   LeaveType = "vacation"
	LeaveSick       LeaveType = "sick"
	LeaveEmergency  LeaveType = "emergency"
	LeavePersonal   LeaveType = "personal"
	LeaveConference LeaveType = "conference"
	LeaveOther      LeaveType = "other"
)

func (t LeaveType) Valid() bool {
	switch t {
	case LeaveVacation, LeaveSick, LeaveEmergency, LeavePersonal, LeaveConference, LeaveOther:
		return true
	}
	return false
}

// WeeklyTemplateEntry is one contiguous recurring availability window on one
// weekday, sliced into fixed-size slots during generation. A doctor may have
// multiple entries per weekday; the engine does not enforce non-overlap
// between them.
type WeeklyTemplateEntry struct {
	ID               string    `bson:"id" json:"id"`
	DoctorID         string    `bson:"doctor_id" json:"doctorId"`
	DayOfWeek        int       `bson:"day_of_week" json:"dayOfWeek"` // 0 = Sunday, 6 = Saturday
	StartTime        string    `bson:"start_time" json:"startTime"`  // "HH:MM"
	EndTime          string    `bson:"end_time" json:"endTime"`      // "HH:MM"
	SlotDurationMins int       `bson:"slot_duration_mins" json:"slotDurationMins"`
	Active           bool      `bson:"active" json:"active"`
	CreatedAt        time.Time `bson:"created_at" json:"createdAt"`
}

// Window returns the entry's wall-clock window.
func (e *WeeklyTemplateEntry) Window() ClockWindow {
	return ClockWindow{StartTime: e.StartTime, EndTime: e.EndTime}
}

// Validate checks the entry's structural invariants.
func (e *WeeklyTemplateEntry) Validate() error {
	if e.DoctorID == "" {
		return fmt.Errorf("template entry: doctor id is required")
	}
	if e.DayOfWeek < 0 || e.DayOfWeek > 6 {
		return fmt.Errorf("template entry: day of week %d out of range [0,6]", e.DayOfWeek)
	}
	if err := e.Window().Validate(); err != nil {
		return fmt.Errorf("template entry: %w", err)
	}
	if e.SlotDurationMins <= 0 {
		return fmt.Errorf("template entry: slot duration must be positive, got %d", e.SlotDurationMins)
	}
	return nil
}

// LeavePeriod is an inclusive date range during which the doctor is entirely
// unavailable, overriding templates and busy blocks. Leaves are auto-approved
// on creation.
type LeavePeriod struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctor_id" json:"doctorId"`
	StartDate time.Time `bson:"start_date" json:"startDate"`
	EndDate   time.Time `bson:"end_date" json:"endDate"`
	LeaveType LeaveType `bson:"leave_type" json:"leaveType"`
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	Approved  bool      `bson:"approved" json:"approved"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Covers reports whether the leave covers the given calendar date.
// Comparison is at day granularity and inclusive on both ends.
func (l *LeavePeriod) Covers(date time.Time) bool {
	day := DateOnly(date)
	return !day.Before(DateOnly(l.StartDate)) && !day.After(DateOnly(l.EndDate))
}

// Validate checks the leave's structural invariants.
func (l *LeavePeriod) Validate() error {
	if l.DoctorID == "" {
		return fmt.Errorf("leave period: doctor id is required")
	}
	if DateOnly(l.EndDate).Before(DateOnly(l.StartDate)) {
		return fmt.Errorf("leave period: end date before start date")
	}
	if !l.LeaveType.Valid() {
		return fmt.Errorf("leave period: unknown leave type %q", l.LeaveType)
	}
	return nil
}

// BusyBlock is a one-off or weekly-recurring unavailable window narrower than
// a full leave, e.g. a lunch break or surgery.
type BusyBlock struct {
	ID        string    `bson:"id" json:"id"`
	DoctorID  string    `bson:"doctor_id" json:"doctorId"`
	Recurring bool      `bson:"recurring" json:"recurring"`
	Date      time.Time `bson:"date,omitempty" json:"date,omitempty"`           // one-off blocks
	DayOfWeek int       `bson:"day_of_week,omitempty" json:"dayOfWeek"`         // recurring blocks
	StartTime string    `bson:"start_time" json:"startTime"`                    // "HH:MM"
	EndTime   string    `bson:"end_time" json:"endTime"`                        // "HH:MM"
	Reason    string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedAt time.Time `bson:"created_at" json:"createdAt"`
}

// Window returns the block's wall-clock window.
func (b *BusyBlock) Window() ClockWindow {
	return ClockWindow{StartTime: b.StartTime, EndTime: b.EndTime}
}

// AppliesOn reports whether the block is in effect on the given date.
func (b *BusyBlock) AppliesOn(date time.Time) bool {
	if b.Recurring {
		return b.DayOfWeek == int(date.Weekday())
	}
	return DateOnly(b.Date).Equal(DateOnly(date))
}

// Validate checks the block's structural invariants.
func (b *BusyBlock) Validate() error {
	if b.DoctorID == "" {
		return fmt.Errorf("busy block: doctor id is required")
	}
	if err := b.Window().Validate(); err != nil {
		return fmt.Errorf("busy block: %w", err)
	}
	if b.Recurring {
		if b.DayOfWeek < 0 || b.DayOfWeek > 6 {
			return fmt.Errorf("busy block: day of week %d out of range [0,6]", b.DayOfWeek)
		}
	} else if b.Date.IsZero() {
		return fmt.Errorf("busy block: date is required for one-off blocks")
	}
	return nil
}
