package commands

import (
	"errors"

	"hauling/internal/pkg/guard"
)

var ErrForceFinishStaleJobsCommandIsNotConstructed = errors.New(
	"ForceFinishStaleJobsCommand must be created via NewForceFinishStaleJobsCommand constructor",
)

// ForceFinishStaleJobsCommand triggers the sweep that clocks out
// assignations left open after a job's window has been over for more than
// the grace period.
type ForceFinishStaleJobsCommand struct {
	guard guard.ConstructorGuard
}

// NewForceFinishStaleJobsCommand creates the sweep trigger command.
func NewForceFinishStaleJobsCommand() ForceFinishStaleJobsCommand {
	return ForceFinishStaleJobsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ForceFinishStaleJobsCommand) Validate() error {
	return c.guard.Validate(ErrForceFinishStaleJobsCommandIsNotConstructed)
}
