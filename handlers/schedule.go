package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/models"
	"clinicbook/services/schedule"
	"clinicbook/utils"
)

// ScheduleHandler exposes the doctor-facing schedule CRUD: weekly template
// entries, leave periods and busy blocks.
type ScheduleHandler struct {
	Service schedule.DoctorScheduleService
}

// NewScheduleHandler constructs a ScheduleHandler.
func NewScheduleHandler(svc schedule.DoctorScheduleService) *ScheduleHandler {
	return &ScheduleHandler{Service: svc}
}

// scheduleOwner resolves the doctor whose schedule is addressed: admins may
// pass doctorId, doctors act on their own.
func scheduleOwner(c *gin.Context) string {
	if c.GetString("role") == "admin" {
		if id := c.Query("doctorId"); id != "" {
			return id
		}
	}
	return c.GetString("userID")
}

// ListTemplatesHandler returns the doctor's template entries.
// GET /api/schedule/templates
func (h *ScheduleHandler) ListTemplatesHandler(c *gin.Context) {
	entries, err := h.Service.ListTemplates(c.Request.Context(), scheduleOwner(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list templates", err.Error())
		return
	}
	c.JSON(http.StatusOK, entries)
}

type createTemplateRequest struct {
	DayOfWeek        int    `json:"dayOfWeek"`
	StartTime        string `json:"startTime" binding:"required"`
	EndTime          string `json:"endTime" binding:"required"`
	SlotDurationMins int    `json:"slotDurationMins"`
}

// CreateTemplateHandler adds a recurring availability window.
// POST /api/schedule/templates
func (h *ScheduleHandler) CreateTemplateHandler(c *gin.Context) {
	var req createTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	entry := &models.WeeklyTemplateEntry{
		DoctorID:         c.GetString("userID"),
		DayOfWeek:        req.DayOfWeek,
		StartTime:        req.StartTime,
		EndTime:          req.EndTime,
		SlotDurationMins: req.SlotDurationMins,
	}
	if err := h.Service.CreateTemplate(c.Request.Context(), entry); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid template entry", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "templateId": entry.ID})
}

// DeleteTemplateHandler removes one of the doctor's template entries.
// DELETE /api/schedule/templates/:id
func (h *ScheduleHandler) DeleteTemplateHandler(c *gin.Context) {
	err := h.Service.DeleteTemplate(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "template entry not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete template entry", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListLeavesHandler returns the doctor's leave periods.
// GET /api/schedule/leaves
func (h *ScheduleHandler) ListLeavesHandler(c *gin.Context) {
	leaves, err := h.Service.ListLeaves(c.Request.Context(), scheduleOwner(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list leaves", err.Error())
		return
	}
	c.JSON(http.StatusOK, leaves)
}

type createLeaveRequest struct {
	StartDate time.Time `json:"startDate" binding:"required"`
	EndDate   time.Time `json:"endDate" binding:"required"`
	LeaveType string    `json:"leaveType"`
	Reason    string    `json:"reason"`
}

// CreateLeaveHandler adds a leave period; leaves are auto-approved.
// POST /api/schedule/leaves
func (h *ScheduleHandler) CreateLeaveHandler(c *gin.Context) {
	var req createLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	leave := &models.LeavePeriod{
		DoctorID:  c.GetString("userID"),
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		LeaveType: models.LeaveType(req.LeaveType),
		Reason:    req.Reason,
	}
	if err := h.Service.CreateLeave(c.Request.Context(), leave); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid leave period", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "leaveId": leave.ID})
}

// DeleteLeaveHandler removes one of the doctor's leave periods.
// DELETE /api/schedule/leaves/:id
func (h *ScheduleHandler) DeleteLeaveHandler(c *gin.Context) {
	err := h.Service.DeleteLeave(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "leave period not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete leave period", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListBusyBlocksHandler returns the doctor's busy blocks.
// GET /api/schedule/busy-blocks
func (h *ScheduleHandler) ListBusyBlocksHandler(c *gin.Context) {
	blocks, err := h.Service.ListBusyBlocks(c.Request.Context(), scheduleOwner(c))
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list busy blocks", err.Error())
		return
	}
	c.JSON(http.StatusOK, blocks)
}

type createBusyBlockRequest struct {
	Recurring bool      `json:"recurring"`
	Date      time.Time `json:"date"`
	DayOfWeek int       `json:"dayOfWeek"`
	StartTime string    `json:"startTime" binding:"required"`
	EndTime   string    `json:"endTime" binding:"required"`
	Reason    string    `json:"reason"`
}

// CreateBusyBlockHandler adds a one-off or weekly-recurring busy block.
// POST /api/schedule/busy-blocks
func (h *ScheduleHandler) CreateBusyBlockHandler(c *gin.Context) {
	var req createBusyBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	block := &models.BusyBlock{
		DoctorID:  c.GetString("userID"),
		Recurring: req.Recurring,
		Date:      req.Date,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Reason:    req.Reason,
	}
	if err := h.Service.CreateBusyBlock(c.Request.Context(), block); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid busy block", err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "busyBlockId": block.ID})
}

// DeleteBusyBlockHandler removes one of the doctor's busy blocks.
// DELETE /api/schedule/busy-blocks/:id
func (h *ScheduleHandler) DeleteBusyBlockHandler(c *gin.Context) {
	err := h.Service.DeleteBusyBlock(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "busy block not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to delete busy block", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
