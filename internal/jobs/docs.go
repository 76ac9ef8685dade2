// Package jobs provides scheduled background tasks for the freight workflow
// service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// 1. StaleLoadingJob - Runs hourly to report trips stuck in loading past the
// configured window.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(staleLoadingHandler, 12*time.Hour, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Error Handling
//
// The watchdog reports stuck trips at WARN and its own failures at ERROR; it
// never mutates workflow state.
package jobs
