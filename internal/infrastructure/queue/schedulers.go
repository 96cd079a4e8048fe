package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"aguacates-backend/internal/config"
	cartJob "aguacates-backend/internal/domains/cart/job"
	"aguacates-backend/internal/shared"
	"aguacates-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	worker    config.WorkerConfig
}

func NewScheduler(redisAddress, redisPassword string, redisDB int, worker config.WorkerConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress, Password: redisPassword, DB: redisDB},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		worker:    worker,
	}
}

func (s *Scheduler) RegisterCronJobs() error {
	return s.registerCleanupCartsJob()
}

func (s *Scheduler) registerCleanupCartsJob() error {
	payload, err := json.Marshal(cartJob.CleanupCartsPayload{
		BatchSize: s.worker.CartCleanupBatch,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupCarts, payload)

	_, err = s.scheduler.Register(
		s.worker.CartCleanupCron,
		task,
		asynq.Queue("low"),
		asynq.MaxRetry(1),
		asynq.Timeout(5*time.Minute),
	)

	if err != nil {
		logger.Error("Failed to register CleanupCarts job", err)
		return err
	}

	logger.Info("Registered CleanupCarts cron", map[string]interface{}{
		"cron": s.worker.CartCleanupCron,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
