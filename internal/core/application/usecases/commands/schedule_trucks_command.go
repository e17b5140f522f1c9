package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrScheduleTrucksCommandIsNotConstructed = errors.New(
	"ScheduleTrucksCommand must be created via NewScheduleTrucksCommand constructor",
)

// TruckPair is one driver/truck pair an owner submits for a job.
type TruckPair struct {
	DriverID kernel.UUID
	TruckID  kernel.UUID
}

// ScheduleTrucksCommand represents a fleet owner's offer of driver/truck
// pairs for a job's open requirement slots.
type ScheduleTrucksCommand struct { //nolint:recvcheck //using for validation
	jobID   kernel.UUID
	ownerID kernel.UUID
	pairs   []TruckPair

	guard guard.ConstructorGuard
}

// NewScheduleTrucksCommand creates a command to schedule trucks onto a job.
// An empty pair list is accepted here and rejected by the handler with the
// no-assignations domain error, so callers get the stable code.
func NewScheduleTrucksCommand(jobID, ownerID kernel.UUID, pairs []TruckPair) (ScheduleTrucksCommand, error) {
	cmd := ScheduleTrucksCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(jobID.Validate(), ownerID.Validate()); err != nil {
		return ScheduleTrucksCommand{}, err
	}
	for _, pair := range pairs {
		if err := errors.Join(pair.DriverID.Validate(), pair.TruckID.Validate()); err != nil {
			return ScheduleTrucksCommand{}, err
		}
	}

	cmd.jobID = jobID
	cmd.ownerID = ownerID
	cmd.pairs = pairs
	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ScheduleTrucksCommand) Validate() error {
	return c.guard.Validate(ErrScheduleTrucksCommandIsNotConstructed)
}

// JobID returns the job being scheduled.
func (c ScheduleTrucksCommand) JobID() kernel.UUID { return c.jobID }

// OwnerID returns the offering company.
func (c ScheduleTrucksCommand) OwnerID() kernel.UUID { return c.ownerID }

// Pairs returns the offered driver/truck pairs.
func (c ScheduleTrucksCommand) Pairs() []TruckPair { return c.pairs }
