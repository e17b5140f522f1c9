package commands

import (
	"context"
	"log/slog"
	"time"

	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"
)

// forceFinishGrace is how long past a job's end open assignations are left
// alone before the system clocks them out.
const forceFinishGrace = time.Hour

// forceFinishReason is recorded on every system clock-out so the finish is
// distinguishable from a driver's own.
const forceFinishReason = "automatically clocked out"

// ForceFinishStaleJobsCommandHandler closes out jobs whose window ended
// more than the grace period ago with assignations still open. Each open
// assignation is finished at the job's end time by the system, its slot
// deactivated, and the job driven to Done or Incomplete. The selection
// only ever returns jobs with open assignations in a non-terminal status,
// so a second pass over the same job finds nothing to do.
type ForceFinishStaleJobsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationService
	now        Clock
	log        *slog.Logger
}

// NewForceFinishStaleJobsCommandHandler creates the force-finish sweep
// handler.
func NewForceFinishStaleJobsCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationService,
	now Clock,
	log *slog.Logger,
) ForceFinishStaleJobsCommandHandler {
	return ForceFinishStaleJobsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        now,
		log:        log.With("component", "force_finish_stale_jobs"),
	}
}

// Handle runs one sweep pass. Each job commits independently.
func (h ForceFinishStaleJobsCommandHandler) Handle(ctx context.Context, cmd ForceFinishStaleJobsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	listUoW := h.uowFactory.Create()
	if err := listUoW.Begin(ctx); err != nil {
		return err
	}
	jobs, err := listUoW.JobRepository().GetOverdue(ctx, h.now().Add(-forceFinishGrace))
	_ = listUoW.Rollback(ctx)
	if err != nil {
		return err
	}

	for _, aggregate := range jobs {
		if err := h.finishJob(ctx, aggregate.ID()); err != nil {
			h.log.Error("force finish failed, skipping job", "job", aggregate.ID(), "error", err)
		}
	}
	return nil
}

func (h ForceFinishStaleJobsCommandHandler) finishJob(ctx context.Context, jobID kernel.UUID) error {
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
	scheds, err := uow.ScheduledJobRepository().GetAllByJob(ctx, jobID)
	if err != nil {
		return err
	}

	forced := make([]ports.Notification, 0)
	end := aggregate.Window().End()
	for _, s := range scheds {
		if s.IsCanceled() {
			continue
		}
		touched := false
		for _, a := range s.OpenAssignations() {
			if err = a.Finish(end, schedule.ActorSystem, forceFinishReason); err != nil {
				return err
			}
			if err = aggregate.DeactivateSlot(a.SlotID()); err != nil {
				return err
			}
			touched = true
			forced = append(forced,
				ports.Notification{
					Recipient:      a.DriverID(),
					Kind:           ports.NotifyForcedClockOut,
					JobID:          aggregate.ID(),
					ScheduledJobID: s.ID(),
					AssignationID:  a.ID(),
					Message:        "you were automatically clocked out at the job's end time",
				},
				ports.Notification{
					Recipient:      s.OwnerID(),
					Kind:           ports.NotifyForcedClockOut,
					JobID:          aggregate.ID(),
					ScheduledJobID: s.ID(),
					AssignationID:  a.ID(),
					Message:        "a driver of yours was automatically clocked out",
				})
		}
		if touched {
			if err = uow.ScheduledJobRepository().Update(ctx, s); err != nil {
				return err
			}
		}
	}

	if err = h.settleStatus(aggregate); err != nil {
		return err
	}
	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, n := range forced {
		h.notifier.Notify(ctx, n)
	}
	return nil
}

// settleStatus drives the job terminal: Started work counts as Done, a job
// that never started ends Incomplete.
func (h ForceFinishStaleJobsCommandHandler) settleStatus(aggregate *job.Job) error {
	switch aggregate.Status() {
	case job.Started:
		return aggregate.Complete()
	case job.Pending:
		return aggregate.MarkIncomplete()
	default:
		return nil
	}
}
