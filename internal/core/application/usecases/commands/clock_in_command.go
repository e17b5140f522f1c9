package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrClockInCommandIsNotConstructed = errors.New(
	"ClockInCommand must be created via NewClockInCommand constructor",
)

// ClockInCommand represents a driver starting work on an assignation.
type ClockInCommand struct { //nolint:recvcheck //using for validation
	assignationID kernel.UUID

	guard guard.ConstructorGuard
}

// NewClockInCommand creates a command to clock an assignation in.
func NewClockInCommand(assignationID kernel.UUID) (ClockInCommand, error) {
	if err := assignationID.Validate(); err != nil {
		return ClockInCommand{}, err
	}

	return ClockInCommand{
		assignationID: assignationID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClockInCommand) Validate() error {
	return c.guard.Validate(ErrClockInCommandIsNotConstructed)
}

// AssignationID returns the assignation being started.
func (c ClockInCommand) AssignationID() kernel.UUID { return c.assignationID }
