package commands

import (
	"context"
	"log/slog"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"
)

// ExpireUnscheduledJobsCommandHandler marks Pending jobs whose window
// ended with nothing scheduled as Incomplete and tells the contractor.
// Each job commits in its own transaction so one bad item never aborts
// the batch.
type ExpireUnscheduledJobsCommandHandler struct {
	uowFactory JobUoWFactory
	notifier   ports.NotificationService
	now        Clock
	log        *slog.Logger
}

// NewExpireUnscheduledJobsCommandHandler creates the expiry sweep handler.
func NewExpireUnscheduledJobsCommandHandler(
	uowFactory JobUoWFactory,
	notifier ports.NotificationService,
	now Clock,
	log *slog.Logger,
) ExpireUnscheduledJobsCommandHandler {
	return ExpireUnscheduledJobsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        now,
		log:        log.With("component", "expire_unscheduled_jobs"),
	}
}

// Handle runs one sweep pass.
func (h ExpireUnscheduledJobsCommandHandler) Handle(ctx context.Context, cmd ExpireUnscheduledJobsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	listUoW := h.uowFactory.Create()
	if err := listUoW.Begin(ctx); err != nil {
		return err
	}
	jobs, err := listUoW.JobRepository().GetUnscheduledPastEnd(ctx, h.now())
	_ = listUoW.Rollback(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range jobs {
		if err := h.expire(ctx, aggregate.ID()); err != nil {
			h.log.Error("expiry failed, skipping job", "job", aggregate.ID(), "error", err)
		}
	}
	return nil
}

func (h ExpireUnscheduledJobsCommandHandler) expire(ctx context.Context, jobID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	aggregate, err := uow.JobRepository().Get(ctx, jobID)
	if err != nil {
		return err
	}
	if err = aggregate.MarkIncomplete(); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Recipient: aggregate.ContractorID(),
		Kind:      ports.NotifyJobExpired,
		JobID:     aggregate.ID(),
		Message:   "your job expired without any trucks scheduled",
	})
	return nil
}
