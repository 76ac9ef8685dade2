package jobs

import (
	"fmt"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/queries"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	staleLoadingJob *StaleLoadingJob
}

// NewJobManager creates a job manager with all required jobs.
func NewJobManager(
	staleLoadingHandler queries.GetStaleLoadingTripsQueryHandler,
	staleLoadingAfter time.Duration,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		staleLoadingJob: NewStaleLoadingJob(staleLoadingHandler, staleLoadingAfter, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.staleLoadingJob.Start(); err != nil {
		return fmt.Errorf("failed to start stale loading job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.staleLoadingJob.Stop()
}
