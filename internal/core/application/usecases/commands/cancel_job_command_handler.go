package commands

import (
	"context"
	"errors"
	"fmt"

	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"
	"hauling/internal/pkg/errs"
)

// CancelJobCommandHandler handles contractor-initiated job cancellation.
// The outcome may be partial: each owner's schedule is canceled only when
// none of its assignations are active. Drivers of canceled shares are
// notified, owners of refused shares are told the contractor tried, and
// the job itself reaches Canceled only when every share could be canceled.
type CancelJobCommandHandler struct {
	uowFactory UoWFactory
	notifier   ports.NotificationService
	email      ports.EmailService
	now        Clock
}

// NewCancelJobCommandHandler creates a handler for job cancellation.
func NewCancelJobCommandHandler(
	uowFactory UoWFactory,
	notifier ports.NotificationService,
	email ports.EmailService,
	now Clock,
) CancelJobCommandHandler {
	return CancelJobCommandHandler{
		uowFactory: uowFactory,
		notifier:   notifier,
		email:      email,
		now:        now,
	}
}

// Handle processes the cancellation command. All state changes commit in
// one transaction; notifications go out afterwards.
func (h CancelJobCommandHandler) Handle(ctx context.Context, cmd CancelJobCommand) error {
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

	scheds, err := uow.ScheduledJobRepository().GetAllByJob(ctx, aggregate.ID())
	if err != nil {
		return err
	}

	canceled, refused, err := h.cancelShares(aggregate, scheds)
	if err != nil {
		return err
	}

	switch {
	case len(scheds) == 0:
		// Nothing scheduled yet; the aggregate's own guards decide.
		if err = aggregate.Cancel(); err != nil {
			return err
		}
	case len(refused) == 0:
		// Every share canceled and released. Slots of already finished
		// work stay consumed, so the scheduled-slot guard does not apply.
		if err = aggregate.MarkCanceled(); err != nil {
			return err
		}
	}

	if err = uow.JobRepository().Update(ctx, aggregate); err != nil {
		return err
	}
	for _, s := range canceled {
		if err = uow.ScheduledJobRepository().Update(ctx, s); err != nil {
			return err
		}
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.fanOut(ctx, aggregate, canceled, refused)
	return nil
}

// cancelShares tries to cancel every owner's schedule. A canceled share
// releases its open assignations and frees their slots so the drivers and
// trucks become bookable again.
func (h CancelJobCommandHandler) cancelShares(
	aggregate *job.Job, scheds []*schedule.ScheduledJob,
) (canceled, refused []*schedule.ScheduledJob, err error) {
	for _, s := range scheds {
		if s.IsCanceled() {
			continue
		}
		if cancelErr := s.CancelByContractor(); cancelErr != nil {
			if errors.Is(cancelErr, errs.ErrJobHasActiveTrucks) {
				refused = append(refused, s)
				continue
			}
			return nil, nil, cancelErr
		}
		for _, a := range s.OpenAssignations() {
			if err = a.Finish(h.now(), schedule.ActorSystem, "job canceled by contractor"); err != nil {
				return nil, nil, err
			}
			if err = aggregate.ReleaseSlot(a.SlotID()); err != nil {
				return nil, nil, err
			}
		}
		canceled = append(canceled, s)
	}
	return canceled, refused, nil
}

func (h CancelJobCommandHandler) fanOut(
	ctx context.Context,
	aggregate *job.Job,
	canceled, refused []*schedule.ScheduledJob,
) {
	for _, s := range canceled {
		for _, a := range s.Assignations() {
			if a.Removed() {
				continue
			}
			h.notifier.Notify(ctx, ports.Notification{
				Recipient:      a.DriverID(),
				Kind:           ports.NotifyJobCanceled,
				JobID:          aggregate.ID(),
				ScheduledJobID: s.ID(),
				AssignationID:  a.ID(),
				Message:        "the job you were scheduled for was canceled",
			})
		}
		h.email.Send(ctx, s.OwnerID(), ports.EmailJobCanceled, map[string]string{
			"job_id": aggregate.ID().String(),
		})
	}
	for _, s := range refused {
		h.notifier.Notify(ctx, ports.Notification{
			Recipient:      s.OwnerID(),
			Kind:           ports.NotifyCancelRefused,
			JobID:          aggregate.ID(),
			ScheduledJobID: s.ID(),
			Message:        "the contractor tried to cancel a job with trucks on site",
		})
	}
}
