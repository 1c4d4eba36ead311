package scheduling

import (
	"context"
	"sync"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
)

// fakeScheduleRepo serves schedule constraints from memory.
type fakeScheduleRepo struct {
	templates []models.WeeklyTemplateEntry
	leaves    []models.LeavePeriod
	busy      []models.BusyBlock
}

func (f *fakeScheduleRepo) TemplatesFor(_ context.Context, doctorID string, day time.Weekday) ([]models.WeeklyTemplateEntry, error) {
	var out []models.WeeklyTemplateEntry
	for _, e := range f.templates {
		if e.DoctorID == doctorID && e.DayOfWeek == int(day) && e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) LeavesCovering(_ context.Context, doctorID string, date time.Time) ([]models.LeavePeriod, error) {
	var out []models.LeavePeriod
	for i := range f.leaves {
		if f.leaves[i].DoctorID == doctorID && f.leaves[i].Covers(date) {
			out = append(out, f.leaves[i])
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) BusyBlocksFor(_ context.Context, doctorID string, date time.Time, _ time.Weekday) ([]models.BusyBlock, error) {
	var out []models.BusyBlock
	for i := range f.busy {
		if f.busy[i].DoctorID == doctorID && f.busy[i].AppliesOn(date) {
			out = append(out, f.busy[i])
		}
	}
	return out, nil
}

func (f *fakeScheduleRepo) ListTemplates(_ context.Context, doctorID string) ([]models.WeeklyTemplateEntry, error) {
	return f.templates, nil
}

func (f *fakeScheduleRepo) CreateTemplate(_ context.Context, entry *models.WeeklyTemplateEntry) error {
	f.templates = append(f.templates, *entry)
	return nil
}

func (f *fakeScheduleRepo) DeleteTemplate(_ context.Context, _, _ string) error { return nil }

func (f *fakeScheduleRepo) ListLeaves(_ context.Context, _ string) ([]models.LeavePeriod, error) {
	return f.leaves, nil
}

func (f *fakeScheduleRepo) CreateLeave(_ context.Context, leave *models.LeavePeriod) error {
	f.leaves = append(f.leaves, *leave)
	return nil
}

func (f *fakeScheduleRepo) DeleteLeave(_ context.Context, _, _ string) error { return nil }

func (f *fakeScheduleRepo) ListBusyBlocks(_ context.Context, _ string) ([]models.BusyBlock, error) {
	return f.busy, nil
}

func (f *fakeScheduleRepo) CreateBusyBlock(_ context.Context, block *models.BusyBlock) error {
	f.busy = append(f.busy, *block)
	return nil
}

func (f *fakeScheduleRepo) DeleteBusyBlock(_ context.Context, _, _ string) error { return nil }

// fakeAppointmentRepo stores appointments in memory. The guarded writes hold a
// mutex across check and write, mirroring the transactional guarantee of the
// Mongo implementation.
type fakeAppointmentRepo struct {
	mu    sync.Mutex
	appts map[string]*models.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (f *fakeAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	cp := *appt
	return &cp, nil
}

func (f *fakeAppointmentRepo) List(_ context.Context, filter appointmentRepo.Filter) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Appointment
	for _, a := range f.appts {
		if filter.DoctorID != "" && a.DoctorID != filter.DoctorID {
			continue
		}
		if filter.PatientID != "" && a.PatientID != filter.PatientID {
			continue
		}
		if filter.Status != "" && a.Status != filter.Status {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeAppointmentRepo) Occupying(_ context.Context, doctorID string, from, to time.Time, excludeID string) ([]models.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.occupyingLocked(doctorID, from, to, excludeID), nil
}

func (f *fakeAppointmentRepo) occupyingLocked(doctorID string, from, to time.Time, excludeID string) []models.Appointment {
	query := models.Interval{Start: from, End: to}
	var out []models.Appointment
	for _, a := range f.appts {
		if a.DoctorID != doctorID || !a.Occupying() || a.ID == excludeID {
			continue
		}
		if query.Overlaps(a.Interval()) {
			out = append(out, *a)
		}
	}
	return out
}

func (f *fakeAppointmentRepo) CreateIfFree(_ context.Context, appt *models.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.occupyingLocked(appt.DoctorID, appt.Start, appt.End, "")) > 0 {
		return appointmentRepo.ErrConflict
	}
	cp := *appt
	f.appts[appt.ID] = &cp
	return nil
}

func (f *fakeAppointmentRepo) RescheduleIfFree(_ context.Context, id string, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	if len(f.occupyingLocked(appt.DoctorID, start, end, id)) > 0 {
		return appointmentRepo.ErrConflict
	}
	appt.Start = start
	appt.End = end
	return nil
}

func (f *fakeAppointmentRepo) UpdateStatus(_ context.Context, id, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	appt, ok := f.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	appt.Status = status
	return nil
}

func (f *fakeAppointmentRepo) SweepPast(_ context.Context, before time.Time) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, a := range f.appts {
		if a.Occupying() && a.End.Before(before) {
			a.Status = models.StatusCompleted
			n++
		}
	}
	return n, nil
}
