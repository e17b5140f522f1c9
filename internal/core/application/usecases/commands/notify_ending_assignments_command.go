package commands

import (
	"errors"

	"hauling/internal/pkg/guard"
)

var ErrNotifyEndingAssignmentsCommandIsNotConstructed = errors.New(
	"NotifyEndingAssignmentsCommand must be created via NewNotifyEndingAssignmentsCommand constructor",
)

// NotifyEndingAssignmentsCommand triggers the sweep that warns drivers and
// owners about assignations still running close to the job's end time.
type NotifyEndingAssignmentsCommand struct {
	guard guard.ConstructorGuard
}

// NewNotifyEndingAssignmentsCommand creates the sweep trigger command.
func NewNotifyEndingAssignmentsCommand() NotifyEndingAssignmentsCommand {
	return NotifyEndingAssignmentsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *NotifyEndingAssignmentsCommand) Validate() error {
	return c.guard.Validate(ErrNotifyEndingAssignmentsCommandIsNotConstructed)
}
