package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrCancelScheduledJobCommandIsNotConstructed = errors.New(
	"CancelScheduledJobCommand must be created via NewCancelScheduledJobCommand constructor",
)

// CancelScheduledJobCommand represents a fleet owner backing out of their
// share of a job.
type CancelScheduledJobCommand struct { //nolint:recvcheck //using for validation
	scheduledJobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCancelScheduledJobCommand creates a command to cancel an owner's
// scheduled job.
func NewCancelScheduledJobCommand(scheduledJobID kernel.UUID) (CancelScheduledJobCommand, error) {
	if err := scheduledJobID.Validate(); err != nil {
		return CancelScheduledJobCommand{}, err
	}

	return CancelScheduledJobCommand{
		scheduledJobID: scheduledJobID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CancelScheduledJobCommand) Validate() error {
	return c.guard.Validate(ErrCancelScheduledJobCommandIsNotConstructed)
}

// ScheduledJobID returns the schedule being canceled.
func (c CancelScheduledJobCommand) ScheduledJobID() kernel.UUID { return c.scheduledJobID }
