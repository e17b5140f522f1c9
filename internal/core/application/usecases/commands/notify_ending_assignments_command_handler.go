package commands

import (
	"context"
	"log/slog"
	"time"

	"hauling/internal/core/ports"
)

// endingSoonLead is how far ahead of a job's end the reminder goes out.
// The cron schedule matches it so each ending job is picked up by exactly
// one pass.
const endingSoonLead = 15 * time.Minute

// NotifyEndingAssignmentsCommandHandler warns drivers and owners of
// assignations still running when the job's end is near. Read-only.
type NotifyEndingAssignmentsCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationService
	now        Clock
	log        *slog.Logger
}

// NewNotifyEndingAssignmentsCommandHandler creates the ending-soon sweep
// handler.
func NewNotifyEndingAssignmentsCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationService,
	now Clock,
	log *slog.Logger,
) NotifyEndingAssignmentsCommandHandler {
	return NotifyEndingAssignmentsCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		now:        now,
		log:        log.With("component", "notify_ending_assignments"),
	}
}

// Handle runs one sweep pass over jobs ending within the lead window.
func (h NotifyEndingAssignmentsCommandHandler) Handle(ctx context.Context, cmd NotifyEndingAssignmentsCommand) error {
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

	now := h.now()
	jobs, err := uow.JobRepository().GetEndingBetween(ctx, now, now.Add(endingSoonLead))
	if err != nil {
		return err
	}

	for _, aggregate := range jobs {
		scheds, err := uow.ScheduledJobRepository().GetAllByJob(ctx, aggregate.ID())
		if err != nil {
			h.log.Error("schedule lookup failed, skipping job", "job", aggregate.ID(), "error", err)
			continue
		}
		for _, s := range scheds {
			for _, a := range s.Assignations() {
				if !a.IsActive() {
					continue
				}
				h.notifier.Notify(ctx, ports.Notification{
					Recipient:      a.DriverID(),
					Kind:           ports.NotifyJobEndingSoon,
					JobID:          aggregate.ID(),
					ScheduledJobID: s.ID(),
					AssignationID:  a.ID(),
					Message:        "the job you are working ends soon, remember to clock out",
				})
				h.notifier.Notify(ctx, ports.Notification{
					Recipient:      s.OwnerID(),
					Kind:           ports.NotifyJobEndingSoon,
					JobID:          aggregate.ID(),
					ScheduledJobID: s.ID(),
					AssignationID:  a.ID(),
					Message:        "a job your trucks are working ends soon",
				})
			}
		}
	}
	return nil
}
