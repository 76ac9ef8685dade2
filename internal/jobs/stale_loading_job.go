package jobs

import (
	"context"
	"log/slog"
	"time"

	"freight/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
)

// StaleLoadingJob watches for trips stuck at the dock: manifests that opened
// loading but never dispatched within the configured window. The job only
// reports; dispatching or cancelling a stuck trip stays a human decision.
type StaleLoadingJob struct {
	handler   queries.GetStaleLoadingTripsQueryHandler
	olderThan time.Duration
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleLoadingJob creates the watchdog. Trips in created or loading status
// older than olderThan are reported on every run.
func NewStaleLoadingJob(
	handler queries.GetStaleLoadingTripsQueryHandler,
	olderThan time.Duration,
	logger *slog.Logger,
) *StaleLoadingJob {
	return &StaleLoadingJob{
		handler:   handler,
		olderThan: olderThan,
		cron:      cron.New(),
		logger:    logger.With("component", "stale_loading_job"),
	}
}

// Start begins the watchdog, running at the top of every hour.
func (j *StaleLoadingJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()

		query, qErr := queries.NewGetStaleLoadingTripsQuery(j.olderThan)
		if qErr != nil {
			j.logger.ErrorContext(ctx, "Stale loading job misconfigured", "error", qErr)
			return
		}

		trips, qErr := j.handler.Handle(ctx, query)
		if qErr != nil {
			j.logger.ErrorContext(ctx, "Stale loading job failed", "error", qErr)
			return
		}

		for _, t := range trips {
			j.logger.WarnContext(ctx, "Trip stuck in loading",
				"trip_id", t.ID.String(),
				"ogpl_number", t.OGPLNumber,
				"org_id", t.OrgID.String(),
				"created_at", t.CreatedAt,
			)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale loading job started (running hourly)")
	return nil
}

// Stop stops the watchdog.
func (j *StaleLoadingJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Stale loading job stopped")
}
