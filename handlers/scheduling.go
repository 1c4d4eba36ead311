package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"clinicbook/services/scheduling"
	"clinicbook/utils"
)

// SchedulingHandler exposes the availability engine's read path.
type SchedulingHandler struct {
	Service scheduling.SchedulingService
}

// NewSchedulingHandler constructs a SchedulingHandler.
func NewSchedulingHandler(svc scheduling.SchedulingService) *SchedulingHandler {
	return &SchedulingHandler{Service: svc}
}

// AvailableSlotsHandler returns the ordered slot list for a doctor and date.
// GET /api/schedule/available-slots?doctorId=...&date=YYYY-MM-DD
func (h *SchedulingHandler) AvailableSlotsHandler(c *gin.Context) {
	doctorID := c.Query("doctorId")
	dateStr := c.Query("date")
	if doctorID == "" || dateStr == "" {
		utils.JSONError(c, http.StatusBadRequest, "Doctor ID and date required", "")
		return
	}

	date, err := time.ParseInLocation("2006-01-02", dateStr, time.Local)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid date", "want YYYY-MM-DD")
		return
	}

	slots, err := h.Service.ComputeAvailableSlots(c.Request.Context(), doctorID, date)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "Failed to get available slots", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"slots": slots})
}
