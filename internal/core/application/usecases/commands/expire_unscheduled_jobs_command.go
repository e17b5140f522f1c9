package commands

import (
	"errors"

	"hauling/internal/pkg/guard"
)

var ErrExpireUnscheduledJobsCommandIsNotConstructed = errors.New(
	"ExpireUnscheduledJobsCommand must be created via NewExpireUnscheduledJobsCommand constructor",
)

// ExpireUnscheduledJobsCommand triggers the sweep that expires jobs whose
// window ended without a single truck scheduled. Parameterless; the cron
// layer fires it on a fixed schedule.
type ExpireUnscheduledJobsCommand struct {
	guard guard.ConstructorGuard
}

// NewExpireUnscheduledJobsCommand creates the sweep trigger command.
func NewExpireUnscheduledJobsCommand() ExpireUnscheduledJobsCommand {
	return ExpireUnscheduledJobsCommand{
		guard: guard.NewConstructorGuard(),
	}
}

// Validate ensures the command was created through the constructor.
func (c *ExpireUnscheduledJobsCommand) Validate() error {
	return c.guard.Validate(ErrExpireUnscheduledJobsCommandIsNotConstructed)
}
