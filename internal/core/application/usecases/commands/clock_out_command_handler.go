package commands

import (
	"context"
	"log/slog"

	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"
)

// ClockOutCommandHandler handles finishing an assignation. It pulls the
// haul counters from the loads collaborator, deactivates the slot, and
// drives completion upwards: invoices when the owner's whole schedule is
// finished, job Done when every schedule of a fully scheduled job is.
type ClockOutCommandHandler struct {
	uowFactory UoWFactory
	loads      ports.LoadsService
	invoices   ports.InvoiceService
	now        Clock
	log        *slog.Logger
}

// NewClockOutCommandHandler creates a handler for clock-out operations.
func NewClockOutCommandHandler(
	uowFactory UoWFactory,
	loads ports.LoadsService,
	invoices ports.InvoiceService,
	now Clock,
	log *slog.Logger,
) ClockOutCommandHandler {
	return ClockOutCommandHandler{
		uowFactory: uowFactory,
		loads:      loads,
		invoices:   invoices,
		now:        now,
		log:        log.With("component", "clock_out"),
	}
}

// Handle processes the clock-out command. A loads-service failure does not
// block the finish; the counter is recorded as zero and logged. Invoice
// generation runs after the transaction commits.
func (h ClockOutCommandHandler) Handle(ctx context.Context, cmd ClockOutCommand) error {
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

	loads, err := h.loads.TotalTravels(ctx, assignation.DriverID(), sched.JobID())
	if err != nil {
		h.log.Warn("loads service unavailable, recording zero loads",
			"assignation", assignation.ID(), "error", err)
		loads = 0
	}

	if err = assignation.Finish(h.now(), cmd.Actor(), cmd.Reason()); err != nil {
		return err
	}
	if err = assignation.RecordHaul(loads, cmd.Tons()); err != nil {
		return err
	}
	if err = aggregate.DeactivateSlot(assignation.SlotID()); err != nil {
		return err
	}

	scheduleFinished := sched.IsFinished()
	if scheduleFinished {
		if err = h.completeJobIfDone(ctx, uow, aggregate, sched); err != nil {
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

	h.generateInvoices(ctx, sched, assignation, scheduleFinished)
	return nil
}

// completeJobIfDone marks the job Done when all its slots are consumed and
// every live schedule is finished. The current schedule's finish only
// exists in memory at this point, so its stored copy is skipped.
func (h ClockOutCommandHandler) completeJobIfDone(
	ctx context.Context, uow UoW, aggregate *job.Job, current *schedule.ScheduledJob,
) error {
	if aggregate.Status() != job.Started || !aggregate.AllSlotsScheduled() {
		return nil
	}

	scheds, err := uow.ScheduledJobRepository().GetAllByJob(ctx, aggregate.ID())
	if err != nil {
		return err
	}
	for _, s := range scheds {
		if s.ID().IsEqual(current.ID()) || s.IsCanceled() {
			continue
		}
		if !s.IsFinished() {
			return nil
		}
	}
	return aggregate.Complete()
}

func (h ClockOutCommandHandler) generateInvoices(
	ctx context.Context,
	sched *schedule.ScheduledJob,
	assignation *schedule.Assignation,
	scheduleFinished bool,
) {
	if err := h.invoices.GenerateDriverInvoice(ctx, assignation.ID()); err != nil {
		h.log.Error("driver invoice generation failed",
			"assignation", assignation.ID(), "error", err)
	}
	if !scheduleFinished {
		return
	}
	if err := h.invoices.GenerateOwnerInvoice(ctx, sched.ID()); err != nil {
		h.log.Error("owner invoice generation failed",
			"scheduled_job", sched.ID(), "error", err)
	}
}
