package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrRaiseDisputeCommandIsNotConstructed = errors.New(
	"RaiseDisputeCommand must be created via NewRaiseDisputeCommand constructor",
)

// RaiseDisputeCommand represents a contractor contesting a finished
// schedule's outcome.
type RaiseDisputeCommand struct { //nolint:recvcheck //using for validation
	scheduledJobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewRaiseDisputeCommand creates a command to open a dispute.
func NewRaiseDisputeCommand(scheduledJobID kernel.UUID) (RaiseDisputeCommand, error) {
	if err := scheduledJobID.Validate(); err != nil {
		return RaiseDisputeCommand{}, err
	}

	return RaiseDisputeCommand{
		scheduledJobID: scheduledJobID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RaiseDisputeCommand) Validate() error {
	return c.guard.Validate(ErrRaiseDisputeCommandIsNotConstructed)
}

// ScheduledJobID returns the schedule being disputed.
func (c RaiseDisputeCommand) ScheduledJobID() kernel.UUID { return c.scheduledJobID }
