package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"clinicbook/models"
)

func (s *DefaultDoctorScheduleService) ListTemplates(ctx context.Context, doctorID string) ([]models.WeeklyTemplateEntry, error) {
	return s.Repo.ListTemplates(ctx, doctorID)
}

func (s *DefaultDoctorScheduleService) CreateTemplate(ctx context.Context, entry *models.WeeklyTemplateEntry) error {
	entry.ID = uuid.New().String()
	entry.Active = true
	entry.CreatedAt = time.Now()
	if entry.SlotDurationMins == 0 {
		entry.SlotDurationMins = 30
	}
	if err := entry.Validate(); err != nil {
		return err
	}
	if err := s.Repo.CreateTemplate(ctx, entry); err != nil {
		return err
	}
	s.invalidate(ctx, entry.DoctorID)
	return nil
}

func (s *DefaultDoctorScheduleService) DeleteTemplate(ctx context.Context, doctorID, entryID string) error {
	if err := s.Repo.DeleteTemplate(ctx, doctorID, entryID); err != nil {
		return err
	}
	s.invalidate(ctx, doctorID)
	return nil
}

func (s *DefaultDoctorScheduleService) ListLeaves(ctx context.Context, doctorID string) ([]models.LeavePeriod, error) {
	return s.Repo.ListLeaves(ctx, doctorID)
}

func (s *DefaultDoctorScheduleService) CreateLeave(ctx context.Context, leave *models.LeavePeriod) error {
	leave.ID = uuid.New().String()
	// No approval workflow; leaves take effect immediately.
	leave.Approved = true
	leave.CreatedAt = time.Now()
	if leave.LeaveType == "" {
		leave.LeaveType = models.LeavePersonal
	}
	if err := leave.Validate(); err != nil {
		return err
	}
	if err := s.Repo.CreateLeave(ctx, leave); err != nil {
		return err
	}
	s.invalidate(ctx, leave.DoctorID)
	return nil
}

func (s *DefaultDoctorScheduleService) DeleteLeave(ctx context.Context, doctorID, leaveID string) error {
	if err := s.Repo.DeleteLeave(ctx, doctorID, leaveID); err != nil {
		return err
	}
	s.invalidate(ctx, doctorID)
	return nil
}

func (s *DefaultDoctorScheduleService) ListBusyBlocks(ctx context.Context, doctorID string) ([]models.BusyBlock, error) {
	return s.Repo.ListBusyBlocks(ctx, doctorID)
}

func (s *DefaultDoctorScheduleService) CreateBusyBlock(ctx context.Context, block *models.BusyBlock) error {
	block.ID = uuid.New().String()
	block.CreatedAt = time.Now()
	if err := block.Validate(); err != nil {
		return err
	}
	if err := s.Repo.CreateBusyBlock(ctx, block); err != nil {
		return err
	}
	s.invalidate(ctx, block.DoctorID)
	return nil
}

func (s *DefaultDoctorScheduleService) DeleteBusyBlock(ctx context.Context, doctorID, blockID string) error {
	if err := s.Repo.DeleteBusyBlock(ctx, doctorID, blockID); err != nil {
		return err
	}
	s.invalidate(ctx, doctorID)
	return nil
}

// invalidate drops every cached slot list for the doctor; a recurring schedule
// change can affect any date.
func (s *DefaultDoctorScheduleService) invalidate(ctx context.Context, doctorID string) {
	if s.Cache != nil {
		s.Cache.InvalidateDoctor(ctx, doctorID)
	}
}
