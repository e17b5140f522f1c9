package commands

import (
	"context"

	"hauling/internal/core/ports"
)

// CancelScheduledJobCommandHandler handles owner-initiated cancellation of
// one schedule. An unstarted schedule is canceled whole; once work has
// started only not-yet-started assignations are released and the started
// share continues. Released slots reopen on the job either way.
type CancelScheduledJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationService
	now        Clock
}

// NewCancelScheduledJobCommandHandler creates a handler for owner-side
// cancellation.
func NewCancelScheduledJobCommandHandler(
	uowFactory UoWFactory, notifier ports.NotificationService, now Clock,
) CancelScheduledJobCommandHandler {
	return CancelScheduledJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        now,
	}
}

// Handle processes the owner cancellation command. Affected drivers are
// notified after the release commits.
func (h CancelScheduledJobCommandHandler) Handle(ctx context.Context, cmd CancelScheduledJobCommand) error {
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
	aggregate, err := uow.JobRepository().Get(ctx, sched.JobID())
	if err != nil {
		return err
	}

	released, err := sched.CancelByOwner(h.now())
	if err != nil {
		return err
	}
	for _, a := range released {
		if err = aggregate.ReleaseSlot(a.SlotID()); err != nil {
			return err
		}
	}

	if err = uow.ScheduledJobRepository().Update(ctx, sched); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, a := range released {
		h.notifier.Notify(ctx, ports.Notification{
			Recipient:      a.DriverID(),
			Kind:           ports.NotifyScheduleReleased,
			JobID:          aggregate.ID(),
			ScheduledJobID: sched.ID(),
			AssignationID:  a.ID(),
			Message:        "your company withdrew from a job you were scheduled for",
		})
	}
	return nil
}
