package cron

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"clinicbook/config"
	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/utils"
)

const TypeAppointmentSweep = "appointments:sweep"

// InitSweepWorker runs the async worker in background. It periodically marks
// occupying appointments whose end has passed as completed, so stale
// pending/confirmed records stop blocking the schedule.
func InitSweepWorker(repo appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 2,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeAppointmentSweep, handleSweepTask(repo))

	go func() {
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("sweep worker stopped", zap.Error(err))
		}
	}()

	interval := config.AppConfig.SweepIntervalMins
	if interval <= 0 {
		interval = 15
	}
	scheduler := asynq.NewScheduler(redisOpts, nil)
	spec := fmt.Sprintf("@every %dm", interval)
	if _, err := scheduler.Register(spec, asynq.NewTask(TypeAppointmentSweep, nil)); err != nil {
		utils.GetLogger().Error("failed to register sweep task", zap.Error(err))
		return
	}
	go func() {
		if err := scheduler.Run(); err != nil {
			utils.GetLogger().Error("sweep scheduler stopped", zap.Error(err))
		}
	}()
}

func handleSweepTask(repo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		n, err := repo.SweepPast(ctx, time.Now())
		if err != nil {
			return err
		}
		if n > 0 {
			utils.GetLogger().Info("swept past appointments", zap.Int64("count", n))
		}
		return nil
	}
}
