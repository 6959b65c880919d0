package main

import (
	"os"
	"os/signal"
	"syscall"

	"catalog-backend/internal/domains/product/job"
	"catalog-backend/internal/shared"
	"catalog-backend/pkg/container"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// Run starts the background worker: an asynq consumer for queued imports and
// a cron scheduler for housekeeping. Blocks until a shutdown signal.
func Run() {
	appContainer, err := container.NewContainer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize container")
	}
	defer appContainer.Cleanup()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     appContainer.Config.Redis.Host,
			Password: appContainer.Config.Redis.Password,
			DB:       appContainer.Config.Redis.DB,
		},
		asynq.Config{
			// Imports are IO-heavy and share one database; modest parallelism.
			Concurrency: 4,
			Queues: map[string]int{
				"default": 1,
			},
			Logger: asynqLogger{},
		},
	)

	mux := asynq.NewServeMux()
	importJobs := job.NewImportJobHandler(appContainer.ImportService)
	mux.HandleFunc(shared.TaskProductImport, importJobs.HandleProductImport)

	scheduler := StartScheduler(appContainer)
	defer scheduler.Stop()

	if err := srv.Start(mux); err != nil {
		log.Fatal().Err(err).Msg("Failed to start worker")
	}

	log.Info().Msg("Worker started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down worker")
	srv.Shutdown()
	log.Info().Msg("Worker exited")
}

// asynqLogger routes asynq's internal logging through zerolog.
type asynqLogger struct{}

func (asynqLogger) Debug(args ...interface{}) { log.Debug().Msgf("%v", args) }
func (asynqLogger) Info(args ...interface{})  { log.Info().Msgf("%v", args) }
func (asynqLogger) Warn(args ...interface{})  { log.Warn().Msgf("%v", args) }
func (asynqLogger) Error(args ...interface{}) { log.Error().Msgf("%v", args) }
func (asynqLogger) Fatal(args ...interface{}) { log.Fatal().Msgf("%v", args) }
