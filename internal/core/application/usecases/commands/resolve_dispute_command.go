package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrResolveDisputeCommandIsNotConstructed = errors.New(
	"ResolveDisputeCommand must be created via NewResolveDisputeCommand constructor",
)

// ResolveDisputeCommand represents an administrator closing a dispute with
// a confirmed outcome.
type ResolveDisputeCommand struct { //nolint:recvcheck //using for validation
	scheduledJobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewResolveDisputeCommand creates a command to resolve a dispute.
func NewResolveDisputeCommand(scheduledJobID kernel.UUID) (ResolveDisputeCommand, error) {
	if err := scheduledJobID.Validate(); err != nil {
		return ResolveDisputeCommand{}, err
	}

	return ResolveDisputeCommand{
		scheduledJobID: scheduledJobID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ResolveDisputeCommand) Validate() error {
	return c.guard.Validate(ErrResolveDisputeCommandIsNotConstructed)
}

// ScheduledJobID returns the disputed schedule.
func (c ResolveDisputeCommand) ScheduledJobID() kernel.UUID { return c.scheduledJobID }
