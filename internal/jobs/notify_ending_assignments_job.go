package jobs

import (
	"context"
	"log/slog"

	"hauling/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// NotifyEndingAssignmentsJob warns drivers and owners about active
// assignations whose job window closes within the next sweep interval.
type NotifyEndingAssignmentsJob struct {
	handler commands.NotifyEndingAssignmentsCommandHandler
	cron    *cron.Cron
	logger  *slog.Logger
}

// NewNotifyEndingAssignmentsJob creates the ending-soon reminder, run
// every fifteen minutes to match the handler's lookahead span.
func NewNotifyEndingAssignmentsJob(
	handler commands.NotifyEndingAssignmentsCommandHandler,
	logger *slog.Logger,
) *NotifyEndingAssignmentsJob {
	return &NotifyEndingAssignmentsJob{
		handler: handler,
		cron:    cron.New(),
		logger:  logger.With("component", "notify_ending_assignments_job"),
	}
}

// Start begins the ending-soon sweep.
func (j *NotifyEndingAssignmentsJob) Start() error {
	_, err := j.cron.AddFunc("*/15 * * * *", func() {
		ctx := context.Background()
		cmd := commands.NewNotifyEndingAssignmentsCommand()

		if err := j.handler.Handle(ctx, cmd); err != nil {
			j.logger.ErrorContext(ctx, "Ending-soon reminder sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Ending-soon reminder sweep started (running every 15 minutes)")
	return nil
}

// Stop stops the ending-soon sweep.
func (j *NotifyEndingAssignmentsJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Ending-soon reminder sweep stopped")
}
