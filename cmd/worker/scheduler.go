package main

import (
	"context"
	"time"

	"catalog-backend/pkg/container"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// StartScheduler runs the worker's periodic housekeeping. Currently a single
// nightly task: dropping import jobs past the retention window.
func StartScheduler(c *container.Container) *cron.Cron {
	scheduler := cron.New()

	if _, err := scheduler.AddFunc("0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()

		if _, err := c.ImportService.PurgeExpiredJobs(ctx); err != nil {
			log.Error().Err(err).Msg("Import job purge failed")
		}
	}); err != nil {
		log.Error().Err(err).Msg("Failed to register import job purge schedule")
	}

	scheduler.Start()
	log.Info().Msg("Scheduler started")
	return scheduler
}
