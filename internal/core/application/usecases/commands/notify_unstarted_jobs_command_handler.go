package commands

import (
	"context"
	"log/slog"

	"hauling/internal/core/ports"
)

// NotifyUnstartedJobsCommandHandler reminds owners whose schedules have
// not clocked in although the job's window already started. Read-only; no
// state changes.
type NotifyUnstartedJobsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationService
	now        Clock
	log        *slog.Logger
}

// NewNotifyUnstartedJobsCommandHandler creates the reminder sweep handler.
func NewNotifyUnstartedJobsCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationService,
	now Clock,
	log *slog.Logger,
) NotifyUnstartedJobsCommandHandler {
	return NotifyUnstartedJobsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        now,
		log:        log.With("component", "notify_unstarted_jobs"),
	}
}

// Handle runs one sweep pass.
func (h NotifyUnstartedJobsCommandHandler) Handle(ctx context.Context, cmd NotifyUnstartedJobsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobs, err := uow.JobRepository().GetScheduledUnstarted(ctx, h.now())
	if err != nil {
		return err
	}

	for _, aggregate := range jobs {
		scheds, err := uow.ScheduledJobRepository().GetAllByJob(ctx, aggregate.ID())
		if err != nil {
			h.log.Error("schedule lookup failed, skipping job", "job", aggregate.ID(), "error", err)
			continue
		}
		for _, s := range scheds {
			if s.IsCanceled() || s.HasStarted() {
				continue
			}
			h.notifier.Notify(ctx, ports.Notification{
				Recipient:      s.OwnerID(),
				Kind:           ports.NotifyJobUnstarted,
				JobID:          aggregate.ID(),
				ScheduledJobID: s.ID(),
				Message:        "a job you are scheduled for has started and no driver clocked in",
			})
		}
	}
	return nil
}
