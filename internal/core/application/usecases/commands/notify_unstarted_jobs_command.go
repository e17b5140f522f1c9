package commands

import (
	"errors"

	"hauling/internal/pkg/guard"
)

var ErrNotifyUnstartedJobsCommandIsNotConstructed = errors.New(
	"NotifyUnstartedJobsCommand must be created via NewNotifyUnstartedJobsCommand constructor",
)

// NotifyUnstartedJobsCommand triggers the sweep that reminds owners about
// jobs past their start time where no driver has clocked in yet.
type NotifyUnstartedJobsCommand struct {
	guard guard.ConstructorGuard
}

// NewNotifyUnstartedJobsCommand creates the sweep trigger command.
func NewNotifyUnstartedJobsCommand() NotifyUnstartedJobsCommand {
	return NotifyUnstartedJobsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *NotifyUnstartedJobsCommand) Validate() error {
	return c.guard.Validate(ErrNotifyUnstartedJobsCommandIsNotConstructed)
}
