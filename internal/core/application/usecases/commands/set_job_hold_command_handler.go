package commands

import (
	"context"
	"errors"
	"fmt"

	"hauling/internal/pkg/errs"
)

// SetJobHoldCommandHandler toggles a job's hold flag. Holding a job with
// active trucks is rejected by the aggregate.
type SetJobHoldCommandHandler struct {
	uowFactory JobUoWFactory
}

// NewSetJobHoldCommandHandler creates a handler for hold operations.
func NewSetJobHoldCommandHandler(uowFactory JobUoWFactory) SetJobHoldCommandHandler {
	return SetJobHoldCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the hold command.
func (h SetJobHoldCommandHandler) Handle(ctx context.Context, cmd SetJobHoldCommand) error {
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

	aggregate, err := uow.JobRepository().Get(ctx, cmd.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("job %s: %w", cmd.JobID(), errs.ErrJobNotExist)
	}
	if err != nil {
		return err
	}

	if err = aggregate.SetHold(cmd.Hold()); err != nil {
		return err
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
