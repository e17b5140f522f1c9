package commands

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var ErrRespondSwitchCommandIsNotConstructed = errors.New(
	"RespondSwitchCommand must be created via NewRespondSwitchCommand constructor",
)

// RespondSwitchCommand represents a driver answering a pending switch
// request.
type RespondSwitchCommand struct { //nolint:recvcheck //using for validation
	switchRequestID kernel.UUID
	accept          bool

	guard guard.ConstructorGuard
}

// NewRespondSwitchCommand creates a command carrying the driver's answer.
func NewRespondSwitchCommand(switchRequestID kernel.UUID, accept bool) (RespondSwitchCommand, error) {
	if err := switchRequestID.Validate(); err != nil {
		return RespondSwitchCommand{}, err
	}

	return RespondSwitchCommand{
		switchRequestID: switchRequestID,
		accept:          accept,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c RespondSwitchCommand) Validate() error {
	return c.guard.Validate(ErrRespondSwitchCommandIsNotConstructed)
}

// SwitchRequestID returns the request being answered.
func (c RespondSwitchCommand) SwitchRequestID() kernel.UUID { return c.switchRequestID }

// Accept returns the driver's answer.
func (c RespondSwitchCommand) Accept() bool { return c.accept }
