package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/domain/services"
	"hauling/internal/core/ports"
	"hauling/internal/pkg/errs"
)

// doubleBookingPad widens a job's window on both sides when checking a
// driver's or truck's existing bookings, so back-to-back jobs keep travel
// slack between them.
const doubleBookingPad = time.Hour

// ScheduleTrucksCommandHandler orchestrates the matching of an owner's
// driver/truck pairs against a job's open slots. Validation, the
// double-booking checks, the matching itself, and the persistence of the
// resulting assignations all run inside one transaction; either every pair
// is scheduled or nothing is.
type ScheduleTrucksCommandHandler struct {
	uowFactory UoWFactory
	directory  ports.DirectoryService
	notifier   ports.NotificationService
	planner    services.AssignmentPlanner
}

// NewScheduleTrucksCommandHandler creates a handler for truck scheduling
// operations.
func NewScheduleTrucksCommandHandler(
	uowFactory UoWFactory,
	directory ports.DirectoryService,
	notifier ports.NotificationService,
) ScheduleTrucksCommandHandler {
	return ScheduleTrucksCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		notifier:   notifier,
		planner:    services.NewAssignmentPlanner(),
	}
}

// Handle processes the scheduling command. The validation order is fixed:
// empty submission, owner verification, job existence, already fully
// scheduled, pair ownership and truck active flags, then per-driver and
// per-truck overlap checks against the padded window. Matching failures
// leave zero assignations persisted.
func (h ScheduleTrucksCommandHandler) Handle(ctx context.Context, cmd ScheduleTrucksCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if len(cmd.Pairs()) == 0 {
		return fmt.Errorf("job %s: %w", cmd.JobID(), errs.ErrNoAssignations)
	}

	owner, err := h.directory.GetOwnerProfile(ctx, cmd.OwnerID())
	if err != nil {
		return err
	}
	if !owner.Verified {
		return fmt.Errorf("owner %s: %w", cmd.OwnerID(), errs.ErrUnverifiedOwner)
	}

	candidates, err := h.resolvePairs(ctx, cmd)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	jobRepo := uow.JobRepository()
	schedRepo := uow.ScheduledJobRepository()

	aggregate, err := jobRepo.Get(ctx, cmd.JobID())
	if errors.Is(err, errs.ErrObjectNotFound) {
		return fmt.Errorf("job %s: %w", cmd.JobID(), errs.ErrJobNotExist)
	}
	if err != nil {
		return err
	}
	if aggregate.AllSlotsScheduled() {
		return fmt.Errorf("job %s: %w", cmd.JobID(), errs.ErrAlreadyScheduled)
	}

	padded := aggregate.Window().Padded(doubleBookingPad)
	for _, c := range candidates {
		booked, err := schedRepo.HasOpenOverlapForDriver(ctx, c.Driver.ID, padded)
		if err != nil {
			return err
		}
		if booked {
			return fmt.Errorf("driver %s: %w", c.Driver.ID, errs.ErrUserAlreadyScheduled)
		}

		booked, err = schedRepo.HasOpenOverlapForTruck(ctx, c.Truck.ID, padded)
		if err != nil {
			return err
		}
		if booked {
			return fmt.Errorf("truck %s: %w", c.Truck.ID, errs.ErrTruckAlreadyScheduled)
		}
	}

	assignations, err := h.planner.Plan(aggregate, candidates)
	if err != nil {
		return err
	}

	sched, created, err := h.findOrCreateSchedule(ctx, schedRepo, aggregate.ID(),
		cmd.OwnerID(), aggregate.PaymentDue())
	if err != nil {
		return err
	}
	for _, a := range assignations {
		if err = sched.AddAssignation(a); err != nil {
			return err
		}
	}

	if err = jobRepo.Update(ctx, aggregate); err != nil {
		return err
	}
	if created {
		err = schedRepo.Add(ctx, sched)
	} else {
		err = schedRepo.Update(ctx, sched)
	}
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, a := range assignations {
		h.notifier.Notify(ctx, ports.Notification{
			Recipient:      a.DriverID(),
			Kind:           ports.NotifyJobScheduled,
			JobID:          aggregate.ID(),
			ScheduledJobID: sched.ID(),
			AssignationID:  a.ID(),
			Message:        "you have been scheduled for a job",
		})
	}
	return nil
}

// resolvePairs checks each pair against the directory: both halves must
// belong to the submitting company and the truck must be active.
func (h ScheduleTrucksCommandHandler) resolvePairs(
	ctx context.Context, cmd ScheduleTrucksCommand,
) ([]services.Candidate, error) {
	candidates := make([]services.Candidate, 0, len(cmd.Pairs()))
	for _, pair := range cmd.Pairs() {
		driver, err := h.directory.GetDriver(ctx, pair.DriverID)
		if err != nil {
			return nil, err
		}
		truck, err := h.directory.GetTruck(ctx, pair.TruckID)
		if err != nil {
			return nil, err
		}
		if !driver.CompanyID.IsEqual(cmd.OwnerID()) {
			return nil, errs.NewObjectNotFoundError("driver of company", pair.DriverID.String())
		}
		if !truck.CompanyID.IsEqual(cmd.OwnerID()) {
			return nil, errs.NewObjectNotFoundError("truck of company", pair.TruckID.String())
		}
		if !truck.Active {
			return nil, fmt.Errorf("truck %s: %w", truck.ID, errs.ErrInactiveTruck)
		}
		candidates = append(candidates, services.Candidate{Driver: driver, Truck: truck})
	}
	return candidates, nil
}

func (h ScheduleTrucksCommandHandler) findOrCreateSchedule(
	ctx context.Context,
	repo ports.ScheduledJobRepository,
	jobID, ownerID kernel.UUID,
	paymentDue time.Time,
) (*schedule.ScheduledJob, bool, error) {
	sched, err := repo.GetByJobAndOwner(ctx, jobID, ownerID)
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
