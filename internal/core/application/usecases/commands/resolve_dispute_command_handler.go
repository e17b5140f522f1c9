package commands

import (
	"context"

	"hauling/internal/core/ports"
)

// ResolveDisputeCommandHandler closes a dispute with a confirmed outcome.
// Resolution is terminal; the owner and the contractor are both told.
type ResolveDisputeCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationService
}

// NewResolveDisputeCommandHandler creates a handler for dispute
// resolution.
func NewResolveDisputeCommandHandler(
	uowFactory UoWFactory, notifier ports.NotificationService,
) ResolveDisputeCommandHandler {
	return ResolveDisputeCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the resolution command.
func (h ResolveDisputeCommandHandler) Handle(ctx context.Context, cmd ResolveDisputeCommand) error {
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

	if err = sched.ResolveDispute(); err != nil {
		return err
	}

	if err = uow.ScheduledJobRepository().Update(ctx, sched); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Recipient:      sched.OwnerID(),
		Kind:           ports.NotifyDisputeResolved,
		JobID:          sched.JobID(),
		ScheduledJobID: sched.ID(),
		Message:        "the dispute on your job was resolved",
	})
	h.notifier.Notify(ctx, ports.Notification{
		Recipient:      aggregate.ContractorID(),
		Kind:           ports.NotifyDisputeResolved,
		JobID:          sched.JobID(),
		ScheduledJobID: sched.ID(),
		Message:        "your dispute was resolved",
	})
	return nil
}
