package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrReviewDisputeCommandIsNotConstructed = errors.New(
	"ReviewDisputeCommand must be created via NewReviewDisputeCommand constructor",
)

// ReviewDisputeCommand represents an administrator taking a raised dispute
// into review.
type ReviewDisputeCommand struct { //nolint:recvcheck //using for validation
	scheduledJobID kernel.UUID

	guard guard.ConstructorGuard
}

// NewReviewDisputeCommand creates a command to review a dispute.
func NewReviewDisputeCommand(scheduledJobID kernel.UUID) (ReviewDisputeCommand, error) {
	if err := scheduledJobID.Validate(); err != nil {
		return ReviewDisputeCommand{}, err
	}

	return ReviewDisputeCommand{
		scheduledJobID: scheduledJobID,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ReviewDisputeCommand) Validate() error {
	return c.guard.Validate(ErrReviewDisputeCommandIsNotConstructed)
}

// ScheduledJobID returns the disputed schedule.
func (c ReviewDisputeCommand) ScheduledJobID() kernel.UUID { return c.scheduledJobID }
