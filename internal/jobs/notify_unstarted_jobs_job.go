package jobs

import (
	"context"
	"log/slog"

	"hauling/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotifyUnstartedJobsJob reminds owners about scheduled jobs whose window
// has opened with no driver clocked in yet.
type NotifyUnstartedJobsJob struct {
	handler commands.NotifyUnstartedJobsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotifyUnstartedJobsJob creates the unstarted-job reminder, run every
// ten minutes.
func NewNotifyUnstartedJobsJob(
	handler commands.NotifyUnstartedJobsCommandHandler,
	logger *slog.Logger,
) *NotifyUnstartedJobsJob {
	return &NotifyUnstartedJobsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "notify_unstarted_jobs_job"),
	}
}

// Start begins the reminder sweep.
func (j *NotifyUnstartedJobsJob) Start() error {
	_, err := j.cron.AddFunc("*/10 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewNotifyUnstartedJobsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Unstarted-job reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Unstarted-job reminder sweep started (running every 10 minutes)")
	return nil
}

// Stop stops the reminder sweep.
func (j *NotifyUnstartedJobsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Unstarted-job reminder sweep stopped")
}
