package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
	"clinicbook/services/scheduling"
	"clinicbook/utils"
)

// AppointmentHandler exposes booking, rescheduling, status transitions and
// listing.
type AppointmentHandler struct {
	Service scheduling.SchedulingService
	Repo    appointmentRepo.AppointmentRepository
}

// NewAppointmentHandler constructs an AppointmentHandler.
func NewAppointmentHandler(svc scheduling.SchedulingService, repo appointmentRepo.AppointmentRepository) *AppointmentHandler {
	return &AppointmentHandler{Service: svc, Repo: repo}
}

// rejectionStatus maps a rejection to its HTTP status: malformed-interval
// checks are the caller's fault (400), the rest are scheduling conflicts (409).
func rejectionStatus(rej *scheduling.Rejection) int {
	switch rej.Code {
	case scheduling.RejectInvalidInterval, scheduling.RejectInThePast:
		return http.StatusBadRequest
	}
	return http.StatusConflict
}

// CreateAppointmentHandler books a new appointment for the authenticated patient.
// POST /api/appointments
func (h *AppointmentHandler) CreateAppointmentHandler(c *gin.Context) {
	var req scheduling.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	req.PatientID = c.GetString("userID")

	appt, rej, err := h.Service.BookAppointment(c.Request.Context(), req)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "booking failed", err.Error())
		return
	}
	if rej != nil {
		c.JSON(rejectionStatus(rej), gin.H{"error": rej.Reason, "code": rej.Code})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "appointmentId": appt.ID})
}

type patchAppointmentRequest struct {
	Status string     `json:"status"`
	Start  *time.Time `json:"start"`
	End    *time.Time `json:"end"`
}

// PatchAppointmentHandler reschedules an appointment and/or applies a status
// transition. Rescheduling validates against everyone except the appointment
// itself.
// PATCH /api/appointments/:id
func (h *AppointmentHandler) PatchAppointmentHandler(c *gin.Context) {
	id := c.Param("id")
	appt, err := h.Repo.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrNotFound) {
			utils.JSONError(c, http.StatusNotFound, "appointment not found", "")
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, "failed to fetch appointment", err.Error())
		return
	}

	callerID := c.GetString("userID")
	role := c.GetString("role")
	if appt.PatientID != callerID && appt.DoctorID != callerID && role != "admin" {
		utils.JSONError(c, http.StatusForbidden, "Forbidden", "")
		return
	}

	var req patchAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	if req.Start != nil && req.End != nil {
		updated, rej, err := h.Service.RescheduleAppointment(c.Request.Context(), id, *req.Start, *req.End)
		if err != nil {
			utils.JSONError(c, http.StatusInternalServerError, "reschedule failed", err.Error())
			return
		}
		if rej != nil {
			c.JSON(rejectionStatus(rej), gin.H{"error": rej.Reason, "code": rej.Code})
			return
		}
		appt = updated
	} else if req.Start != nil || req.End != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "both start and end are required to reschedule")
		return
	}

	if req.Status != "" {
		updated, err := h.Service.TransitionStatus(c.Request.Context(), id, req.Status)
		if err != nil {
			utils.JSONError(c, http.StatusBadRequest, "status update failed", err.Error())
			return
		}
		appt = updated
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "appointment": appt})
}

// ListAppointmentsHandler lists appointments visible to the caller. Patients
// see their own, doctors see their schedule, admins see everything.
// GET /api/appointments?status=...
func (h *AppointmentHandler) ListAppointmentsHandler(c *gin.Context) {
	filter := appointmentRepo.Filter{Status: c.Query("status")}
	if filter.Status != "" && !models.ValidStatus(filter.Status) {
		utils.JSONError(c, http.StatusBadRequest, "unknown status", filter.Status)
		return
	}

	switch c.GetString("role") {
	case "doctor":
		filter.DoctorID = c.GetString("userID")
	case "admin":
		filter.DoctorID = c.Query("doctorId")
		filter.PatientID = c.Query("patientId")
	default:
		filter.PatientID = c.GetString("userID")
	}

	appts, err := h.Repo.List(c.Request.Context(), filter)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to list appointments", err.Error())
		return
	}
	c.JSON(http.StatusOK, appts)
}
