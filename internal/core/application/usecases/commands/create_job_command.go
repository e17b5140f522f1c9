package commands

import (
	"errors"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var (
	ErrCreateJobCommandIsNotConstructed = errors.New(
		"CreateJobCommand must be created via NewCreateJobCommand constructor",
	)
	ErrSlotsAreRequired      = errors.New("at least one requirement slot is required")
	ErrPaymentDueIsRequired  = errors.New("payment due date is required")
	ErrLoadAddressIsRequired = errors.New("load site address is required")
	ErrDumpAddressIsRequired = errors.New("dump site address is required")
)

// SlotInput describes one requirement slot of a new job: the truck shapes
// it accepts, the rate table, and an optional pinned preferred truck.
type SlotInput struct {
	Accepted         []job.TruckSpec
	Rates            map[fleet.TruckType]job.Rate
	PreferredTruckID *kernel.UUID
	PreferredOwnerID *kernel.UUID
}

// CreateJobCommand represents a contractor's request to post a new hauling
// job with its requirement slots.
type CreateJobCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	contractorID kernel.UUID
	window       kernel.TimeWindow
	loadSite     job.Site
	dumpSite     job.Site
	paymentDue   time.Time
	slots        []SlotInput

	guard guard.ConstructorGuard
}

// NewCreateJobCommand creates a command to post a new job. Validates the
// identifiers, the work window, both sites, and that at least one slot is
// described; slot contents are validated by the domain model when the
// handler builds them.
func NewCreateJobCommand(
	jobID kernel.UUID,
	contractorID kernel.UUID,
	window kernel.TimeWindow,
	loadSite job.Site,
	dumpSite job.Site,
	paymentDue time.Time,
	slots []SlotInput,
) (CreateJobCommand, error) {
	cmd := CreateJobCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setIDs(jobID, contractorID),
		cmd.setWindow(window),
		cmd.setSites(loadSite, dumpSite),
		cmd.setPaymentDue(paymentDue),
		cmd.setSlots(slots),
	); err != nil {
		return CreateJobCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateJobCommand) Validate() error {
	return c.guard.Validate(ErrCreateJobCommandIsNotConstructed)
}

// JobID returns the identifier for the new job.
func (c CreateJobCommand) JobID() kernel.UUID { return c.jobID }

// ContractorID returns the posting contractor.
func (c CreateJobCommand) ContractorID() kernel.UUID { return c.contractorID }

// Window returns the job's work window.
func (c CreateJobCommand) Window() kernel.TimeWindow { return c.window }

// LoadSite returns the pick-up site.
func (c CreateJobCommand) LoadSite() job.Site { return c.loadSite }

// DumpSite returns the drop-off site.
func (c CreateJobCommand) DumpSite() job.Site { return c.dumpSite }

// PaymentDue returns the payment due date.
func (c CreateJobCommand) PaymentDue() time.Time { return c.paymentDue }

// Slots returns the requirement slot descriptions.
func (c CreateJobCommand) Slots() []SlotInput { return c.slots }

func (c *CreateJobCommand) setIDs(jobID, contractorID kernel.UUID) error {
	if err := errors.Join(jobID.Validate(), contractorID.Validate()); err != nil {
		return err
	}
	c.jobID = jobID
	c.contractorID = contractorID
	return nil
}

func (c *CreateJobCommand) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	c.window = window
	return nil
}

func (c *CreateJobCommand) setSites(loadSite, dumpSite job.Site) error {
	if loadSite.Address == "" {
		return ErrLoadAddressIsRequired
	}
	if dumpSite.Address == "" {
		return ErrDumpAddressIsRequired
	}
	c.loadSite = loadSite
	c.dumpSite = dumpSite
	return nil
}

func (c *CreateJobCommand) setPaymentDue(paymentDue time.Time) error {
	if paymentDue.IsZero() {
		return ErrPaymentDueIsRequired
	}
	c.paymentDue = paymentDue
	return nil
}

func (c *CreateJobCommand) setSlots(slots []SlotInput) error {
	if len(slots) == 0 {
		return ErrSlotsAreRequired
	}
	c.slots = slots
	return nil
}
