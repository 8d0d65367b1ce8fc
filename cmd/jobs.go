package main

import (
	"anser/internal/jobs"
	"anser/pkg/logger"
)

func (app *Application) initJobs() error {
	if app.workerService == nil {
		logger.WarnCtx(app.ctx, "Service layer not fully initialized yet, skipping background task registration")
		return nil
	}

	manager := jobs.NewManager(app.ctx)

	// The sweep owns the ONLINE -> OFFLINE transition and the staleness
	// re-requests. One pass per interval, fleet-wide, mutually excluded
	// across instances via Redis.
	manager.Register(jobs.NewSweepJob(app.workerService, app.redisClient, app.config.State.SweepInterval))

	app.jobsManager = manager
	return nil
}
