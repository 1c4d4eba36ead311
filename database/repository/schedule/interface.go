package scheduleRepo

import (
	"context"
	"time"

	"clinicbook/models"
)

// ScheduleRepository defines data access for a doctor's recurring schedule:
// weekly template entries, leave periods and busy blocks. The *For/*Covering
// accessors are pure queries and safe to call concurrently.
type ScheduleRepository interface {
	// TemplatesFor retrieves a doctor's active template entries for one weekday.
	TemplatesFor(ctx context.Context, doctorID string, day time.Weekday) ([]models.WeeklyTemplateEntry, error)
	// LeavesCovering retrieves leave periods whose inclusive date range covers the given date.
	LeavesCovering(ctx context.Context, doctorID string, date time.Time) ([]models.LeavePeriod, error)
	// BusyBlocksFor retrieves the union of one-off blocks dated exactly date and
	// recurring blocks whose weekday matches.
	BusyBlocksFor(ctx context.Context, doctorID string, date time.Time, day time.Weekday) ([]models.BusyBlock, error)

	// Doctor-facing CRUD.
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
