package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/utils"
)

// RegisterAppointmentRoutes registers booking and appointment management
// endpoints.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	api.Use(middleware.JWTAuthMiddleware())
	{
		api.GET("", hb.ListAppointmentsHandler)
		api.POST("", middleware.RequireRole("user"), hb.CreateAppointmentHandler)
		api.PATCH("/:id", hb.PatchAppointmentHandler)
	}
}

// RegisterScheduleRoutes registers the availability read path and the
// doctor-facing schedule CRUD.
func RegisterScheduleRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/schedule")
	api.Use(middleware.JWTAuthMiddleware())
	{
		// Available slots are readable by any authenticated caller.
		api.GET("/available-slots", hb.AvailableSlotsHandler)

		doctor := api.Group("")
		doctor.Use(middleware.RequireRole("doctor", "admin"))
		{
			doctor.GET("/templates", hb.ListTemplatesHandler)
			doctor.POST("/templates", middleware.RequireRole("doctor"), hb.CreateTemplateHandler)
			doctor.DELETE("/templates/:id", middleware.RequireRole("doctor"), hb.DeleteTemplateHandler)

			doctor.GET("/leaves", hb.ListLeavesHandler)
			doctor.POST("/leaves", middleware.RequireRole("doctor"), hb.CreateLeaveHandler)
			doctor.DELETE("/leaves/:id", middleware.RequireRole("doctor"), hb.DeleteLeaveHandler)

			doctor.GET("/busy-blocks", hb.ListBusyBlocksHandler)
			doctor.POST("/busy-blocks", middleware.RequireRole("doctor"), hb.CreateBusyBlockHandler)
			doctor.DELETE("/busy-blocks/:id", middleware.RequireRole("doctor"), hb.DeleteBusyBlockHandler)
		}
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
	})
}

// RegisterRoutes wires up CORS and all endpoint groups.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	RegisterHealthRoute(r)
	RegisterScheduleRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
}
