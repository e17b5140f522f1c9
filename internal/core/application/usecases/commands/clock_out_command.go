package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/pkg/guard"
)

var (
	ErrClockOutCommandIsNotConstructed = errors.New(
		"ClockOutCommand must be created via NewClockOutCommand constructor",
	)
	ErrFinishActorIsInvalid = errors.New("finish actor must be driver, owner, or system")
	ErrTonsAreInvalid       = errors.New("tons must not be negative")
)

// ClockOutCommand represents finishing an assignation: who finished it,
// why, and the tonnage the driver reports. The load count is fetched from
// the geolocation collaborator, not supplied by the caller.
type ClockOutCommand struct { //nolint:recvcheck //using for validation
	assignationID kernel.UUID
	actor         schedule.FinishActor
	reason        string
	tons          float64

	guard guard.ConstructorGuard
}

// NewClockOutCommand creates a command to clock an assignation out.
func NewClockOutCommand(
	assignationID kernel.UUID, actor schedule.FinishActor, reason string, tons float64,
) (ClockOutCommand, error) {
	if err := assignationID.Validate(); err != nil {
		return ClockOutCommand{}, err
	}
	switch actor {
	case schedule.ActorDriver, schedule.ActorOwner, schedule.ActorSystem:
	default:
		return ClockOutCommand{}, ErrFinishActorIsInvalid
	}
	if tons < 0 {
		return ClockOutCommand{}, ErrTonsAreInvalid
	}

	return ClockOutCommand{
		assignationID: assignationID,
		actor:         actor,
		reason:        reason,
		tons:          tons,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ClockOutCommand) Validate() error {
	return c.guard.Validate(ErrClockOutCommandIsNotConstructed)
}

// AssignationID returns the assignation being finished.
func (c ClockOutCommand) AssignationID() kernel.UUID { return c.assignationID }

// Actor returns who recorded the finish.
func (c ClockOutCommand) Actor() schedule.FinishActor { return c.actor }

// Reason returns the recorded finish reason.
func (c ClockOutCommand) Reason() string { return c.reason }

// Tons returns the reported tonnage.
func (c ClockOutCommand) Tons() float64 { return c.tons }
