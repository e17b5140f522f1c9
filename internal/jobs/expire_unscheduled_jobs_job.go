package jobs

import (
	"context"
	"log/slog"

	"hauling/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ExpireUnscheduledJobsJob sweeps jobs whose window ended without a single
// truck scheduled and marks them Incomplete.
type ExpireUnscheduledJobsJob struct {
	handler commands.ExpireUnscheduledJobsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewExpireUnscheduledJobsJob creates the expiry sweep, run every five
// minutes.
func NewExpireUnscheduledJobsJob(
	handler commands.ExpireUnscheduledJobsCommandHandler,
	logger *slog.Logger,
) *ExpireUnscheduledJobsJob {
	return &ExpireUnscheduledJobsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "expire_unscheduled_jobs_job"),
	}
}

// Start begins the expiry sweep.
func (j *ExpireUnscheduledJobsJob) Start() error {
	_, err := j.cron.AddFunc("*/5 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewExpireUnscheduledJobsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Expiry sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Expiry sweep started (running every 5 minutes)")
	return nil
}

// Stop stops the expiry sweep.
func (j *ExpireUnscheduledJobsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Expiry sweep stopped")
}
