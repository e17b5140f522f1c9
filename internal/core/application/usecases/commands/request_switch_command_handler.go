package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"
	"hauling/internal/pkg/errs"
)

// RequestSwitchCommandHandler starts the switch-job workflow. The source
// slot is cloned into the target job carrying the source's rate fields, a
// new assignation for the same driver and truck is created on the owner's
// existing or new schedule there, and the source assignation moves to
// Requested. Everything needed to roll the clone back on denial is
// recorded on the switch request.
type RequestSwitchCommandHandler struct {
	uowFactory SwitchUoWFactory
	notifier   ports.NotificationService
}

// NewRequestSwitchCommandHandler creates a handler for switch requests.
func NewRequestSwitchCommandHandler(
	uowFactory SwitchUoWFactory, notifier ports.NotificationService,
) RequestSwitchCommandHandler {
	return RequestSwitchCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
	}
}

// Handle processes the switch request. Only one switch may be pending per
// assignation.
func (h RequestSwitchCommandHandler) Handle(ctx context.Context, cmd RequestSwitchCommand) error {
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

	sourceSched, err := uow.ScheduledJobRepository().GetByAssignation(ctx, cmd.AssignationID())
	if err != nil {
		return err
	}
	source, err := sourceSched.Assignation(cmd.AssignationID())
	if err != nil {
		return err
	}
	if err = source.RequestSwitch(); err != nil {
		return err
	}

	targetJob, err := uow.JobRepository().Get(ctx, cmd.TargetJobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("job %s: %w", cmd.TargetJobID(), errs.ErrJobNotExist)
	}
	if err != nil {
		return err
	}

	sourceJob, err := uow.JobRepository().Get(ctx, sourceSched.JobID())
	if err != nil {
		return err
	}
	sourceSlot, err := sourceJob.Slot(source.SlotID())
	if err != nil {
		return err
	}

	clone, err := sourceSlot.Clone(kernel.NewUUID())
	if err != nil {
		return err
	}
	if err = targetJob.AddSlot(clone); err != nil {
		return err
	}
	if err = targetJob.ScheduleSlot(clone.ID()); err != nil {
		return err
	}

	cloned, err := schedule.NewAssignation(kernel.NewUUID(), source.DriverID(),
		source.TruckID(), clone.ID(), source.TruckType(), source.Rate())
	if err != nil {
		return err
	}

	targetSched, created, err := h.findOrCreateTarget(ctx, uow, targetJob.ID(),
		sourceSched.OwnerID(), targetJob.PaymentDue())
	if err != nil {
		return err
	}
	if err = targetSched.AddAssignation(cloned); err != nil {
		return err
	}

	request, err := schedule.NewSwitchRequest(kernel.NewUUID(), source.ID(),
		sourceSched.ID(), targetSched.ID(), targetJob.ID(), clone.ID(), cloned.ID(), created)
	if err != nil {
		return err
	}

	if err = uow.ScheduledJobRepository().Update(ctx, sourceSched); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, targetJob); err != nil {
		return err
	}
	if created {
		err = uow.ScheduledJobRepository().Add(ctx, targetSched)
	} else {
		err = uow.ScheduledJobRepository().Update(ctx, targetSched)
	}
	if err != nil {
		return err
	}
	if err = uow.SwitchRequestRepository().Add(ctx, request); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.notifier.Notify(ctx, ports.Notification{
		Recipient:     source.DriverID(),
		Kind:          ports.NotifySwitchRequested,
		JobID:         targetJob.ID(),
		AssignationID: source.ID(),
		Message:       "you are asked to switch to another job",
	})
	return nil
}

func (h RequestSwitchCommandHandler) findOrCreateTarget(
	ctx context.Context,
	uow SwitchUoW,
	jobID, ownerID kernel.UUID,
	paymentDue time.Time,
) (*schedule.ScheduledJob, bool, error) {
	sched, err := uow.ScheduledJobRepository().GetByJobAndOwner(ctx, jobID, ownerID)
	if err == nil {
		return sched, false, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, false, err
	}

	sched, err = schedule.NewScheduledJob(kernel.NewUUID(), jobID, ownerID, paymentDue)
	if err != nil {
		return nil, false, err
	}
	return sched, true, nil
}
