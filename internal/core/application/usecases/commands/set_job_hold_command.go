package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrSetJobHoldCommandIsNotConstructed = errors.New(
	"SetJobHoldCommand must be created via NewSetJobHoldCommand constructor",
)

// SetJobHoldCommand represents toggling a job's hold flag. Holding blocks
// new clock-ins without changing the job's status.
type SetJobHoldCommand struct { //nolint:recvcheck //using for validation
	jobID kernel.UUID
	hold  bool

	guard guard.ConstructorGuard
}

// NewSetJobHoldCommand creates a command to put a job on hold or release
// it.
func NewSetJobHoldCommand(jobID kernel.UUID, hold bool) (SetJobHoldCommand, error) {
	if err := jobID.Validate(); err != nil {
		return SetJobHoldCommand{}, err
	}

	return SetJobHoldCommand{
		jobID: jobID,
		hold:  hold,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c SetJobHoldCommand) Validate() error {
	return c.guard.Validate(ErrSetJobHoldCommandIsNotConstructed)
}

// JobID returns the job being held or released.
func (c SetJobHoldCommand) JobID() kernel.UUID { return c.jobID }

// Hold returns the desired hold state.
func (c SetJobHoldCommand) Hold() bool { return c.hold }
