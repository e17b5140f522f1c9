package commands

import (
	"context"
	"log/slog"

	"hauling/internal/core/ports"
)

// RaiseDisputeCommandHandler handles opening a dispute on a finished
// schedule. Administrators are notified and the owning company gets a
// dispute email once the flag commits.
type RaiseDisputeCommandHandler struct {
	uowFactory ScheduleUoWFactory
	directory  ports.DirectoryService
	notifier   ports.NotificationService
	email      ports.EmailService
	now        Clock
	log        *slog.Logger
}

// NewRaiseDisputeCommandHandler creates a handler for dispute opening.
func NewRaiseDisputeCommandHandler(
	uowFactory ScheduleUoWFactory,
	directory ports.DirectoryService,
	notifier ports.NotificationService,
	email ports.EmailService,
	now Clock,
	log *slog.Logger,
) RaiseDisputeCommandHandler {
	return RaiseDisputeCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
		email:      email,
		now:        now,
		log:        log.With("component", "raise_dispute"),
	}
}

// Handle processes the dispute command. The one-day window is checked
// against the schedule's latest finish.
func (h RaiseDisputeCommandHandler) Handle(ctx context.Context, cmd RaiseDisputeCommand) error {
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

	sched, err := uow.ScheduledJobRepository().Get(ctx, cmd.ScheduledJobID())
	if err != nil {
		return err
	}

	if err = sched.RaiseDispute(h.now()); err != nil {
		return err
	}

	if err = uow.ScheduledJobRepository().Update(ctx, sched); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	admins, err := h.directory.ListAdministrators(ctx)
	if err != nil {
		h.log.Warn("administrator fan-out skipped", "error", err)
	}
	for _, admin := range admins {
		h.notifier.Notify(ctx, ports.Notification{
			Recipient:      admin,
			Kind:           ports.NotifyDisputeRaised,
			JobID:          sched.JobID(),
			ScheduledJobID: sched.ID(),
			Message:        "a dispute was raised on a finished job",
		})
	}
	h.email.Send(ctx, sched.OwnerID(), ports.EmailDisputeRaised, map[string]string{
		"scheduled_job_id": sched.ID().String(),
	})
	return nil
}
