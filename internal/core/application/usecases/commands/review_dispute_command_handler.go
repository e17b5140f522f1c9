package commands

import (
	"context"
)

// ReviewDisputeCommandHandler marks a raised dispute as under review. A
// second review of the same dispute is a no-op rather than an error, so
// two administrators clicking at once both succeed.
type ReviewDisputeCommandHandler struct {
	uowFactory ScheduleUoWFactory
}

// NewReviewDisputeCommandHandler creates a handler for dispute review.
func NewReviewDisputeCommandHandler(uowFactory ScheduleUoWFactory) ReviewDisputeCommandHandler {
	return ReviewDisputeCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the review command.
func (h ReviewDisputeCommandHandler) Handle(ctx context.Context, cmd ReviewDisputeCommand) error {
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

	first, err := sched.ReviewDispute()
	if err != nil {
		return err
	}
	if !first {
		// Already reviewed; nothing to persist.
		return nil
	}

	if err = uow.ScheduledJobRepository().Update(ctx, sched); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
