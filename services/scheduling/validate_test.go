package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/models"
)

func TestValidateBookingAccepted(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	svc := newTestService(sched, newFakeAppointmentRepo())

	// Any interval inside the window is fine, aligned to slot boundaries or not.
	rej, err := svc.ValidateBooking(context.Background(), testDoctor, at(monday, 9, 15), at(monday, 9, 45), "")
	require.NoError(t, err)
	assert.Nil(t, rej)
}

func TestValidateBookingRejections(t *testing.T) {
	sched := &fakeScheduleRepo{
		templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()},
		busy: []models.BusyBlock{{
			ID:        "bb-1",
			DoctorID:  testDoctor,
			Recurring: true,
			DayOfWeek: int(time.Monday),
			StartTime: "11:00",
			EndTime:   "11:30",
		}},
	}
	appts := newFakeAppointmentRepo()
	require.NoError(t, appts.CreateIfFree(context.Background(), &models.Appointment{
		ID:       "a1",
		DoctorID: testDoctor,
		Start:    at(monday, 10, 0),
		End:      at(monday, 10, 30),
		Status:   models.StatusConfirmed,
	}))
	svc := newTestService(sched, appts)

	tuesday := monday.AddDate(0, 0, 1)
	tests := []struct {
		name       string
		start, end time.Time
		code       RejectionCode
		reason     string
	}{
		{
			"inverted interval", at(monday, 10, 0), at(monday, 9, 0),
			RejectInvalidInterval, "start time must be before end time",
		},
		{
			"zero-length interval", at(monday, 10, 0), at(monday, 10, 0),
			RejectInvalidInterval, "start time must be before end time",
		},
		{
			"in the past", at(monday.AddDate(0, 0, -14), 9, 0), at(monday.AddDate(0, 0, -14), 9, 30),
			RejectInThePast, "cannot book appointments in the past",
		},
		{
			"no template for day", at(tuesday, 9, 0), at(tuesday, 9, 30),
			RejectNoTemplateForDay, "doctor does not work on this day",
		},
		{
			"before working hours", at(monday, 8, 0), at(monday, 8, 30),
			RejectOutsideTemplateWindow, "time is outside doctor's working hours",
		},
		{
			"straddles window end", at(monday, 11, 45), at(monday, 12, 15),
			RejectOutsideTemplateWindow, "time is outside doctor's working hours",
		},
		{
			"busy conflict", at(monday, 11, 0), at(monday, 11, 30),
			RejectBusyConflict, "doctor is busy during this time",
		},
		{
			"appointment conflict", at(monday, 10, 0), at(monday, 10, 30),
			RejectAppointmentConflict, "time slot is already booked",
		},
		{
			"partial appointment overlap", at(monday, 10, 15), at(monday, 10, 45),
			RejectAppointmentConflict, "time slot is already booked",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rej, err := svc.ValidateBooking(context.Background(), testDoctor, tt.start, tt.end, "")
			require.NoError(t, err)
			require.NotNil(t, rej)
			assert.Equal(t, tt.code, rej.Code)
			assert.Equal(t, tt.reason, rej.Reason)
		})
	}
}

// An inverted interval in the past must report the interval problem, not the
// past-time one.
func TestValidateBookingOrderInvalidBeforePast(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, newFakeAppointmentRepo())

	past := monday.AddDate(0, 0, -14)
	rej, err := svc.ValidateBooking(context.Background(), testDoctor, at(past, 10, 0), at(past, 9, 0), "")
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectInvalidInterval, rej.Code)
}

func TestValidateBookingLeaveBeatsBusyAndAppointments(t *testing.T) {
	sched := &fakeScheduleRepo{
		templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()},
		leaves: []models.LeavePeriod{{
			ID:        "lv-1",
			DoctorID:  testDoctor,
			StartDate: monday,
			EndDate:   monday,
			LeaveType: models.LeaveConference,
		}},
		busy: []models.BusyBlock{{
			ID:        "bb-1",
			DoctorID:  testDoctor,
			Recurring: true,
			DayOfWeek: int(time.Monday),
			StartTime: "09:00",
			EndTime:   "12:00",
		}},
	}
	svc := newTestService(sched, newFakeAppointmentRepo())

	rej, err := svc.ValidateBooking(context.Background(), testDoctor, at(monday, 9, 0), at(monday, 9, 30), "")
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectOnLeave, rej.Code)
}

func TestValidateBookingTouchingAppointmentAccepted(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	appts := newFakeAppointmentRepo()
	require.NoError(t, appts.CreateIfFree(context.Background(), &models.Appointment{
		ID:       "a1",
		DoctorID: testDoctor,
		Start:    at(monday, 9, 0),
		End:      at(monday, 9, 30),
		Status:   models.StatusConfirmed,
	}))
	svc := newTestService(sched, appts)

	rej, err := svc.ValidateBooking(context.Background(), testDoctor, at(monday, 9, 30), at(monday, 10, 0), "")
	require.NoError(t, err)
	assert.Nil(t, rej)
}

func TestValidateBookingExcludesSelf(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	appts := newFakeAppointmentRepo()
	require.NoError(t, appts.CreateIfFree(context.Background(), &models.Appointment{
		ID:       "a1",
		DoctorID: testDoctor,
		Start:    at(monday, 10, 0),
		End:      at(monday, 10, 30),
		Status:   models.StatusConfirmed,
	}))
	svc := newTestService(sched, appts)

	// The appointment does not conflict with itself during a reschedule check.
	rej, err := svc.ValidateBooking(context.Background(), testDoctor, at(monday, 10, 0), at(monday, 10, 30), "a1")
	require.NoError(t, err)
	assert.Nil(t, rej)

	// Another appointment at the same time still does.
	rej, err = svc.ValidateBooking(context.Background(), testDoctor, at(monday, 10, 0), at(monday, 10, 30), "other")
	require.NoError(t, err)
	require.NotNil(t, rej)
	assert.Equal(t, RejectAppointmentConflict, rej.Code)
}

func TestValidateBookingIgnoresNonOccupying(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	appts := newFakeAppointmentRepo()
	appts.appts["a1"] = &models.Appointment{
		ID:       "a1",
		DoctorID: testDoctor,
		Start:    at(monday, 10, 0),
		End:      at(monday, 10, 30),
		Status:   models.StatusCancelled,
	}
	svc := newTestService(sched, appts)

	rej, err := svc.ValidateBooking(context.Background(), testDoctor, at(monday, 10, 0), at(monday, 10, 30), "")
	require.NoError(t, err)
	assert.Nil(t, rej)
}
