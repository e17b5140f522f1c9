package commands

import (
	"context"
	"fmt"

	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"
	"hauling/internal/pkg/errs"
)

// CreateJobCommandHandler handles the business logic for posting a new
// hauling job. Builds the job aggregate with its requirement slots and
// persists it in Pending status; the visibility throttle starts counting
// from the creation time recorded here.
type CreateJobCommandHandler struct {
	uowFactory JobUoWFactory
	directory  ports.DirectoryService
	now        Clock
}

// NewCreateJobCommandHandler creates a handler for job posting operations.
func NewCreateJobCommandHandler(
	uowFactory JobUoWFactory, directory ports.DirectoryService, now Clock,
) CreateJobCommandHandler {
	return CreateJobCommandHandler{
		uowFactory: uowFactory,
		directory:  directory,
		now:        now,
	}
}

// Handle processes the job posting command. Unverified contractors are
// rejected before anything is built.
func (h CreateJobCommandHandler) Handle(ctx context.Context, cmd CreateJobCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	verified, err := h.directory.IsVerifiedContractor(ctx, cmd.ContractorID())
	if err != nil {
		return err
	}
	if !verified {
		return fmt.Errorf("contractor %s: %w", cmd.ContractorID(), errs.ErrUnverifiedContractor)
	}

	slots := make([]*job.TruckCategory, 0, len(cmd.Slots()))
	for _, input := range cmd.Slots() {
		slot, err := job.NewTruckCategory(kernel.NewUUID(),
			input.Accepted, input.Rates, input.PreferredTruckID, input.PreferredOwnerID)
		if err != nil {
			return err
		}
		slots = append(slots, slot)
	}

	aggregate, err := job.NewJob(cmd.JobID(), cmd.ContractorID(), cmd.Window(),
		cmd.LoadSite(), cmd.DumpSite(), cmd.PaymentDue(), slots, h.now())
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

	if err = uow.JobRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
