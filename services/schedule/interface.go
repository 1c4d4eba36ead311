package schedule

import (
	"context"

	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
	"clinicbook/services/scheduling"
)

// DoctorScheduleService manages a doctor's recurring schedule: weekly template
// entries, leave periods and busy blocks. Entries are validated at
// construction; writes invalidate the doctor's cached slots.
type DoctorScheduleService interface {
	ListTemplates(ctx context.Context, doctorID string) ([]models.WeeklyTemplateEntry, error)
	CreateTemplate(ctx context.Context, entry *models.WeeklyTemplateEntry) error
	DeleteTemplate(ctx context.Context, doctorID, entryID string) error

	ListLeaves(ctx context.Context, doctorID string) ([]models.LeavePeriod, error)
	CreateLeave(ctx context.Context, leave *models.LeavePeriod) error
	DeleteLeave(ctx context.Context, doctorID, leaveID string) error

	ListBusyBlocks(ctx context.Context, doctorID string) ([]models.BusyBlock, error)
	CreateBusyBlock(ctx context.Context, block *models.BusyBlock) error
	DeleteBusyBlock(ctx context.Context, doctorID, blockID string) error
}

// DefaultDoctorScheduleService implements DoctorScheduleService.
type DefaultDoctorScheduleService struct {
	Repo  scheduleRepo.ScheduleRepository
	Cache *scheduling.SlotCache
}
