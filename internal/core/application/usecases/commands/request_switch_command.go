package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrRequestSwitchCommandIsNotConstructed = errors.New(
	"RequestSwitchCommand must be created via NewRequestSwitchCommand constructor",
)

// RequestSwitchCommand represents a dispatcher asking a driver to relocate
// an assignation to a different job.
type RequestSwitchCommand struct { //nolint:recvcheck //using for validation
	assignationID kernel.UUID
	targetJobID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewRequestSwitchCommand creates a command to request a switch.
func NewRequestSwitchCommand(assignationID, targetJobID kernel.UUID) (RequestSwitchCommand, error) {
	if err := errors.Join(assignationID.Validate(), targetJobID.Validate()); err != nil {
		return RequestSwitchCommand{}, err
	}

	return RequestSwitchCommand{
		assignationID: assignationID,
		targetJobID:   targetJobID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RequestSwitchCommand) Validate() error {
	return c.guard.Validate(ErrRequestSwitchCommandIsNotConstructed)
}

// AssignationID returns the assignation to relocate.
func (c RequestSwitchCommand) AssignationID() kernel.UUID { return c.assignationID }

// TargetJobID returns the job the assignation would move to.
func (c RequestSwitchCommand) TargetJobID() kernel.UUID { return c.targetJobID }
