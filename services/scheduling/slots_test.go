package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"clinicbook/models"
)

const testDoctor = "doc-1"

// monday is a fixed future Monday used as the anchor date for slot tests.
var monday = time.Date(2026, time.September, 7, 0, 0, 0, 0, time.Local)

func newTestService(sched *fakeScheduleRepo, appts *fakeAppointmentRepo) *DefaultSchedulingService {
	return &DefaultSchedulingService{
		ScheduleRepo:    sched,
		AppointmentRepo: appts,
		Clock: func() time.Time {
			return time.Date(2026, time.September, 1, 9, 0, 0, 0, time.Local)
		},
	}
}

func mondayMorningTemplate() models.WeeklyTemplateEntry {
	return models.WeeklyTemplateEntry{
		ID:               "tpl-1",
		DoctorID:         testDoctor,
		DayOfWeek:        int(time.Monday),
		StartTime:        "09:00",
		EndTime:          "12:00",
		SlotDurationMins: 30,
		Active:           true,
	}
}

func at(base time.Time, hour, min int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, min, 0, 0, base.Location())
}

func TestComputeAvailableSlotsFullMorning(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	svc := newTestService(sched, newFakeAppointmentRepo())

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	assert.Equal(t, at(monday, 9, 0), slots[0].Start)
	assert.Equal(t, at(monday, 9, 30), slots[0].End)
	assert.Equal(t, at(monday, 11, 30), slots[5].Start)
	assert.Equal(t, at(monday, 12, 0), slots[5].End)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestComputeAvailableSlotsMarksBookedSlot(t *testing.T) {
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

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	for _, s := range slots {
		if s.Start.Equal(at(monday, 10, 0)) {
			assert.False(t, s.Available)
		} else {
			assert.True(t, s.Available, "slot at %v", s.Start)
		}
	}
}

func TestComputeAvailableSlotsNoTemplateDay(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	svc := newTestService(sched, newFakeAppointmentRepo())

	tuesday := monday.AddDate(0, 0, 1)
	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, tuesday)
	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlotsLeaveDay(t *testing.T) {
	sched := &fakeScheduleRepo{
		templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()},
		leaves: []models.LeavePeriod{{
			ID:        "lv-1",
			DoctorID:  testDoctor,
			StartDate: monday,
			EndDate:   monday,
			LeaveType: models.LeaveVacation,
		}},
	}
	svc := newTestService(sched, newFakeAppointmentRepo())

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestComputeAvailableSlotsBusyBlock(t *testing.T) {
	sched := &fakeScheduleRepo{
		templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()},
		busy: []models.BusyBlock{{
			ID:        "bb-1",
			DoctorID:  testDoctor,
			Recurring: true,
			DayOfWeek: int(time.Monday),
			StartTime: "11:00",
			EndTime:   "12:00",
		}},
	}
	svc := newTestService(sched, newFakeAppointmentRepo())

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	for _, s := range slots {
		if !s.Start.Before(at(monday, 11, 0)) {
			assert.False(t, s.Available, "slot at %v overlaps the busy block", s.Start)
		} else {
			assert.True(t, s.Available, "slot at %v", s.Start)
		}
	}
}

func TestComputeAvailableSlotsDiscardsPartialTrailingSlot(t *testing.T) {
	entry := mondayMorningTemplate()
	entry.EndTime = "10:45"
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{entry}}
	svc := newTestService(sched, newFakeAppointmentRepo())

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)

	// 09:00-10:45 at 30 minutes fits three whole slots; 10:30-10:45 is dropped.
	require.Len(t, slots, 3)
	assert.Equal(t, at(monday, 10, 0), slots[2].Start)
	assert.Equal(t, at(monday, 10, 30), slots[2].End)
}

func TestComputeAvailableSlotsMultipleEntriesKeepOverlaps(t *testing.T) {
	// Two Monday entries whose windows overlap. Slots come out in entry order,
	// chronological within each entry, and duplicated windows are kept as-is.
	afternoon := models.WeeklyTemplateEntry{
		ID:               "tpl-2",
		DoctorID:         testDoctor,
		DayOfWeek:        int(time.Monday),
		StartTime:        "11:00",
		EndTime:          "13:00",
		SlotDurationMins: 60,
		Active:           true,
	}
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate(), afternoon}}
	svc := newTestService(sched, newFakeAppointmentRepo())

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	require.Len(t, slots, 8)

	// First entry's six 30-minute slots, then the second entry's two hour slots.
	assert.Equal(t, at(monday, 9, 0), slots[0].Start)
	assert.Equal(t, at(monday, 11, 30), slots[5].Start)
	assert.Equal(t, at(monday, 11, 0), slots[6].Start)
	assert.Equal(t, at(monday, 12, 0), slots[6].End)
	assert.Equal(t, at(monday, 12, 0), slots[7].Start)
	assert.Equal(t, at(monday, 13, 0), slots[7].End)

	// The 11:00-12:00 window is covered by both entries and emitted by both.
	covering := 0
	for _, s := range slots {
		if s.Start.Before(at(monday, 12, 0)) && at(monday, 11, 0).Before(s.End) {
			covering++
		}
	}
	assert.Equal(t, 3, covering)
}

func TestComputeAvailableSlotsSkipsZeroDurationEntry(t *testing.T) {
	broken := mondayMorningTemplate()
	broken.ID = "tpl-broken"
	broken.SlotDurationMins = 0
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{broken, mondayMorningTemplate()}}
	svc := newTestService(sched, newFakeAppointmentRepo())

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)
}

func TestComputeAvailableSlotsTouchingAppointmentDoesNotBlock(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	appts := newFakeAppointmentRepo()
	// Ends exactly where the 09:30 slot starts.
	require.NoError(t, appts.CreateIfFree(context.Background(), &models.Appointment{
		ID:       "a1",
		DoctorID: testDoctor,
		Start:    at(monday, 9, 0),
		End:      at(monday, 9, 30),
		Status:   models.StatusConfirmed,
	}))
	svc := newTestService(sched, appts)

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	require.Len(t, slots, 6)

	assert.False(t, slots[0].Available)
	assert.True(t, slots[1].Available, "a touching appointment must not block the next slot")
}

func TestComputeAvailableSlotsIgnoresCancelled(t *testing.T) {
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

	slots, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	for _, s := range slots {
		assert.True(t, s.Available)
	}
}

func TestComputeAvailableSlotsIdempotent(t *testing.T) {
	sched := &fakeScheduleRepo{templates: []models.WeeklyTemplateEntry{mondayMorningTemplate()}}
	svc := newTestService(sched, newFakeAppointmentRepo())

	first, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	second, err := svc.ComputeAvailableSlots(context.Background(), testDoctor, monday)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestComputeAvailableSlotsRequiresDoctor(t *testing.T) {
	svc := newTestService(&fakeScheduleRepo{}, newFakeAppointmentRepo())
	_, err := svc.ComputeAvailableSlots(context.Background(), "", monday)
	assert.Error(t, err)
}
