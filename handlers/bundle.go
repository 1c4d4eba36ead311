package handlers

import "github.com/gin-gonic/gin"

// HandlerBundle aggregates handler functions used by route registration.
type HandlerBundle struct {
	// Availability read path.
	AvailableSlotsHandler gin.HandlerFunc

	// Appointment endpoints.
	CreateAppointmentHandler gin.HandlerFunc
	PatchAppointmentHandler  gin.HandlerFunc
	ListAppointmentsHandler  gin.HandlerFunc

	// Doctor schedule endpoints.
	ListTemplatesHandler   gin.HandlerFunc
	CreateTemplateHandler  gin.HandlerFunc
	DeleteTemplateHandler  gin.HandlerFunc
	ListLeavesHandler      gin.HandlerFunc
	CreateLeaveHandler     gin.HandlerFunc
	DeleteLeaveHandler     gin.HandlerFunc
	ListBusyBlocksHandler  gin.HandlerFunc
	CreateBusyBlockHandler gin.HandlerFunc
	DeleteBusyBlockHandler gin.HandlerFunc
}
