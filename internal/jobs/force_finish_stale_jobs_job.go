package jobs

import (
	"context"
	"log/slog"

	"hauling/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ForceFinishStaleJobsJob clocks out drivers who forgot to, on jobs whose
// window ended more than the grace period ago, and drives those jobs to a
// terminal status.
type ForceFinishStaleJobsJob struct {
	handler commands.ForceFinishStaleJobsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewForceFinishStaleJobsJob creates the force-finish sweep, run hourly.
// The handler is idempotent, so overlapping or repeated runs are safe.
func NewForceFinishStaleJobsJob(
	handler commands.ForceFinishStaleJobsCommandHandler,
	logger *slog.Logger,
) *ForceFinishStaleJobsJob {
	return &ForceFinishStaleJobsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "force_finish_stale_jobs_job"),
	}
}

// Start begins the force-finish sweep.
func (j *ForceFinishStaleJobsJob) Start() error {
	_, err := j.cron.AddFunc("0 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewForceFinishStaleJobsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Force-finish sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Force-finish sweep started (running hourly)")
	return nil
}

// Stop stops the force-finish sweep.
func (j *ForceFinishStaleJobsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Force-finish sweep stopped")
}
