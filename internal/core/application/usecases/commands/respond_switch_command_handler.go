package commands

import (
	"context"

	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"
)

// RespondSwitchCommandHandler applies a driver's answer to a pending
// switch. Acceptance removes the source assignation and frees its slot;
// the clone on the target job takes over. Denial rolls the clone back:
// the cloned slot reopens, the cloned assignation is removed, and the
// target schedule is deleted when it only existed for this switch.
type RespondSwitchCommandHandler struct {
	uowFactory SwitchUoWFactory
	notifier   ports.NotificationService
}

// NewRespondSwitchCommandHandler creates a handler for switch answers.
func NewRespondSwitchCommandHandler(
	uowFactory SwitchUoWFactory, notifier ports.NotificationService,
) RespondSwitchCommandHandler {
	return RespondSwitchCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the switch answer.
func (h RespondSwitchCommandHandler) Handle(ctx context.Context, cmd RespondSwitchCommand) error {
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

	request, err := uow.SwitchRequestRepository().Get(ctx, cmd.SwitchRequestID())
	if err != nil {
		return err
	}

	sourceSched, err := uow.ScheduledJobRepository().Get(ctx, request.SourceScheduledJobID())
	if err != nil {
		return err
	}
	source, err := sourceSched.Assignation(request.AssignationID())
	if err != nil {
		return err
	}

	if cmd.Accept() {
		err = h.accept(ctx, uow, request, sourceSched, source)
	} else {
		err = h.deny(ctx, uow, request, sourceSched, source)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Recipient:     source.DriverID(),
		Kind:          ports.NotifySwitchAnswered,
		JobID:         request.TargetJobID(),
		AssignationID: source.ID(),
		Message:       "your switch answer was recorded",
	})
	return nil
}

func (h RespondSwitchCommandHandler) accept(
	ctx context.Context,
	uow SwitchUoW,
	request *schedule.SwitchRequest,
	sourceSched *schedule.ScheduledJob,
	source *schedule.Assignation,
) error {
	if err := request.Accept(); err != nil {
		return err
	}
	if err := source.AcceptSwitch(); err != nil {
		return err
	}
	source.Remove()

	sourceJob, err := uow.JobRepository().Get(ctx, sourceSched.JobID())
	if err != nil {
		return err
	}
	// The slot may still be active when an in-progress assignation moves.
	if err = sourceJob.DeactivateSlot(source.SlotID()); err != nil {
		return err
	}
	if err = sourceJob.ReleaseSlot(source.SlotID()); err != nil {
		return err
	}

	if err = uow.JobRepository().Update(ctx, sourceJob); err != nil {
		return err
	}
	if err = uow.ScheduledJobRepository().Update(ctx, sourceSched); err != nil {
		return err
	}
	return uow.SwitchRequestRepository().Update(ctx, request)
}

func (h RespondSwitchCommandHandler) deny(
	ctx context.Context,
	uow SwitchUoW,
	request *schedule.SwitchRequest,
	sourceSched *schedule.ScheduledJob,
	source *schedule.Assignation,
) error {
	if err := request.Deny(); err != nil {
		return err
	}
	if err := source.DenySwitch(); err != nil {
		return err
	}

	targetSched, err := uow.ScheduledJobRepository().Get(ctx, request.TargetScheduledJobID())
	if err != nil {
		return err
	}
	cloned, err := targetSched.Assignation(request.ClonedAssignationID())
	if err != nil {
		return err
	}
	cloned.Remove()

	targetJob, err := uow.JobRepository().Get(ctx, request.TargetJobID())
	if err != nil {
		return err
	}
	if err = targetJob.ReleaseSlot(request.ClonedSlotID()); err != nil {
		return err
	}

	if err = uow.JobRepository().Update(ctx, targetJob); err != nil {
		return err
	}
	if err = uow.ScheduledJobRepository().Update(ctx, sourceSched); err != nil {
		return err
	}

	if request.CreatedScheduledJob() && targetSched.LiveAssignationCount() == 0 {
		err = uow.ScheduledJobRepository().Remove(ctx, targetSched.ID())
	} else {
		err = uow.ScheduledJobRepository().Update(ctx, targetSched)
	}
	if err != nil {
		return err
	}
	return uow.SwitchRequestRepository().Update(ctx, request)
}
