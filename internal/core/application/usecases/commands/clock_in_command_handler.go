package commands

import (
	"context"
)

// ClockInCommandHandler handles a driver's clock-in. Starting the first
// assignation of a job moves the job from Pending to Started; clock-ins are
// rejected while the job is on hold.
type ClockInCommandHandler struct {
	uowFactory UoWFactory
	now        Clock
}

// NewClockInCommandHandler creates a handler for clock-in operations.
func NewClockInCommandHandler(uowFactory UoWFactory, now Clock) ClockInCommandHandler {
	return ClockInCommandHandler{
		uowFactory: uowFactory,
		now:        now,
	}
}

// Handle processes the clock-in command. Slot activation and the
// assignation's start timestamp commit together.
func (h ClockInCommandHandler) Handle(ctx context.Context, cmd ClockInCommand) error {
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

	sched, err := uow.ScheduledJobRepository().GetByAssignation(ctx, cmd.AssignationID())
	if err != nil {
		return err
	}
	assignation, err := sched.Assignation(cmd.AssignationID())
	if err != nil {
		return err
	}

	aggregate, err := uow.JobRepository().Get(ctx, sched.JobID())
	if err != nil {
		return err
	}

	if err = aggregate.ActivateSlot(assignation.SlotID()); err != nil {
		return err
	}
	if err = assignation.Start(h.now()); err != nil {
		return err
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.ScheduledJobRepository().Update(ctx, sched); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
