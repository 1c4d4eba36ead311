// File: clinicbook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"clinicbook/config"
	"clinicbook/cron"
	"clinicbook/database"
	appointmentRepo "clinicbook/database/repository/appointment"
	scheduleRepo "clinicbook/database/repository/schedule"
	"clinicbook/handlers"
	"clinicbook/middleware"
	"clinicbook/routes"
	"clinicbook/services/schedule"
	"clinicbook/services/scheduling"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.StartHealthMonitor(utils.GetCacheClient(), database.MongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	schedRepo := scheduleRepo.NewMongoScheduleRepo()
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()

	if r, ok := schedRepo.(*scheduleRepo.MongoScheduleRepo); ok {
		if err := r.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to create schedule indexes: %v", err)
		}
	}
	if r, ok := apptRepo.(*appointmentRepo.MongoAppointmentRepo); ok {
		if err := r.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to create appointment indexes: %v", err)
		}
	}

	// services.
	slotCache := scheduling.NewSlotCache(
		utils.GetCacheClient(),
		time.Duration(config.AppConfig.SlotCacheTTLSecs)*time.Second,
	)
	schedulingService := &scheduling.DefaultSchedulingService{
		ScheduleRepo:    schedRepo,
		AppointmentRepo: apptRepo,
		Cache:           slotCache,
	}
	scheduleService := &schedule.DefaultDoctorScheduleService{
		Repo:  schedRepo,
		Cache: slotCache,
	}

	// handlers.
	schedulingHandler := handlers.NewSchedulingHandler(schedulingService)
	appointmentHandler := handlers.NewAppointmentHandler(schedulingService, apptRepo)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AvailableSlotsHandler: schedulingHandler.AvailableSlotsHandler,

		CreateAppointmentHandler: appointmentHandler.CreateAppointmentHandler,
		PatchAppointmentHandler:  appointmentHandler.PatchAppointmentHandler,
		ListAppointmentsHandler:  appointmentHandler.ListAppointmentsHandler,

		ListTemplatesHandler:   scheduleHandler.ListTemplatesHandler,
		CreateTemplateHandler:  scheduleHandler.CreateTemplateHandler,
		DeleteTemplateHandler:  scheduleHandler.DeleteTemplateHandler,
		ListLeavesHandler:      scheduleHandler.ListLeavesHandler,
		CreateLeaveHandler:     scheduleHandler.CreateLeaveHandler,
		DeleteLeaveHandler:     scheduleHandler.DeleteLeaveHandler,
		ListBusyBlocksHandler:  scheduleHandler.ListBusyBlocksHandler,
		CreateBusyBlockHandler: scheduleHandler.CreateBusyBlockHandler,
		DeleteBusyBlockHandler: scheduleHandler.DeleteBusyBlockHandler,
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Background sweep of past appointments.
	cron.InitSweepWorker(apptRepo)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
