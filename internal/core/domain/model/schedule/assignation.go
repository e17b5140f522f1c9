package schedule

import (
	"errors"
	"fmt"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/errs"
)

// ErrAssignationIsNotConstructed is returned when an Assignation was not
// created through NewAssignation or RestoreAssignation.
var ErrAssignationIsNotConstructed = errors.New(
	"Assignation must be created via NewAssignation or RestoreAssignation")

// ErrAssignationAlreadyStarted is returned on a second clock-in.
var ErrAssignationAlreadyStarted = errors.New("assignation has already started")

// ErrAssignationAlreadyFinished is returned when mutating a finished
// assignation. Sweeps rely on it never firing: their queries select only
// open assignations, so re-runs are no-ops.
var ErrAssignationAlreadyFinished = errors.New("assignation has already finished")

// FinishActor identifies who recorded an assignation's finish.
type FinishActor string

const (
	ActorDriver FinishActor = "driver"
	ActorOwner  FinishActor = "owner"
	ActorSystem FinishActor = "system"
)

// SwitchStatus tracks an assignation's relocation workflow.
type SwitchStatus int

const (
	// SwitchNotRequested means no relocation is pending; the only state from
	// which a new switch may be requested.
	SwitchNotRequested SwitchStatus = iota

	// SwitchRequested means a relocation awaits the driver's answer.
	SwitchRequested

	// SwitchAccepted means the driver moved to the target job.
	SwitchAccepted

	// SwitchDenied means the driver refused and the clone was rolled back.
	SwitchDenied
)

func switchStatusStrings() map[SwitchStatus]string {
	return map[SwitchStatus]string{
		SwitchNotRequested: "NotRequested",
		SwitchRequested:    "Requested",
		SwitchAccepted:     "Accepted",
		SwitchDenied:       "Denied",
	}
}

// String implements fmt.Stringer.
func (s SwitchStatus) String() string {
	if str, ok := switchStatusStrings()[s]; ok {
		return str
	}
	return "NotRequested"
}

// Validate checks the value is a defined switch status.
func (s SwitchStatus) Validate() error {
	if _, ok := switchStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("switch status",
			fmt.Errorf("%d is not a valid switch status", s))
	}
	return nil
}

// Assignation binds one driver and truck to one requirement slot. The rate
// snapshot is taken from the slot's rate table at matching time and never
// changes afterwards, so later rate edits on the job cannot reprice work
// already agreed.
type Assignation struct {
	id        kernel.UUID
	driverID  kernel.UUID
	truckID   kernel.UUID
	slotID    kernel.UUID
	truckType fleet.TruckType
	rate      job.Rate

	startedAt    *time.Time
	finishedAt   *time.Time
	loads        int
	tons         float64
	finishedBy   FinishActor
	finishReason string
	removed      bool
	switchStatus SwitchStatus

	isConstructed bool
}

// NewAssignation creates an open assignation with an immutable rate
// snapshot.
func NewAssignation(
	id kernel.UUID,
	driverID kernel.UUID,
	truckID kernel.UUID,
	slotID kernel.UUID,
	truckType fleet.TruckType,
	rate job.Rate,
) (*Assignation, error) {
	if err := errors.Join(
		id.Validate(), driverID.Validate(), truckID.Validate(), slotID.Validate(),
	); err != nil {
		return nil, err
	}
	if truckType == "" {
		return nil, errs.NewValueIsRequiredError("truck type")
	}
	if err := rate.Basis.Validate(); err != nil {
		return nil, err
	}

	return &Assignation{
		id:            id,
		driverID:      driverID,
		truckID:       truckID,
		slotID:        slotID,
		truckType:     truckType,
		rate:          rate,
		isConstructed: true,
	}, nil
}

// RestoreAssignation reconstructs an assignation from persistence.
func RestoreAssignation(
	id kernel.UUID,
	driverID kernel.UUID,
	truckID kernel.UUID,
	slotID kernel.UUID,
	truckType fleet.TruckType,
	rate job.Rate,
	startedAt *time.Time,
	finishedAt *time.Time,
	loads int,
	tons float64,
	finishedBy FinishActor,
	finishReason string,
	removed bool,
	switchStatus SwitchStatus,
) (*Assignation, error) {
	a, err := NewAssignation(id, driverID, truckID, slotID, truckType, rate)
	if err != nil {
		return nil, err
	}
	if err = switchStatus.Validate(); err != nil {
		return nil, err
	}
	a.startedAt = startedAt
	a.finishedAt = finishedAt
	a.loads = loads
	a.tons = tons
	a.finishedBy = finishedBy
	a.finishReason = finishReason
	a.removed = removed
	a.switchStatus = switchStatus
	return a, nil
}

// Validate ensures the assignation was created through a constructor.
func (a *Assignation) Validate() error {
	if a == nil || !a.isConstructed {
		return ErrAssignationIsNotConstructed
	}
	return nil
}

// ID returns the assignation's identifier.
func (a *Assignation) ID() kernel.UUID { return a.id }

// DriverID returns the bound driver.
func (a *Assignation) DriverID() kernel.UUID { return a.driverID }

// TruckID returns the bound truck.
func (a *Assignation) TruckID() kernel.UUID { return a.truckID }

// SlotID returns the requirement slot this assignation fills.
func (a *Assignation) SlotID() kernel.UUID { return a.slotID }

// TruckType returns the type the rate was snapshotted for.
func (a *Assignation) TruckType() fleet.TruckType { return a.truckType }

// Rate returns the immutable price snapshot.
func (a *Assignation) Rate() job.Rate { return a.rate }

// StartedAt returns the clock-in time, or nil.
func (a *Assignation) StartedAt() *time.Time { return a.startedAt }

// FinishedAt returns the clock-out time, or nil.
func (a *Assignation) FinishedAt() *time.Time { return a.finishedAt }

// Loads returns the total travels counter recorded at finish.
func (a *Assignation) Loads() int { return a.loads }

// Tons returns the hauled tonnage recorded at finish.
func (a *Assignation) Tons() float64 { return a.tons }

// FinishedBy returns who recorded the finish.
func (a *Assignation) FinishedBy() FinishActor { return a.finishedBy }

// FinishReason returns the recorded finish reason.
func (a *Assignation) FinishReason() string { return a.finishReason }

// Removed reports whether the assignation was taken out of the ledger by
// the switch workflow.
func (a *Assignation) Removed() bool { return a.removed }

// SwitchStatus returns the relocation workflow state.
func (a *Assignation) SwitchStatus() SwitchStatus { return a.switchStatus }

// IsStarted reports whether the driver has clocked in.
func (a *Assignation) IsStarted() bool { return a.startedAt != nil }

// IsFinished reports whether a finish time is recorded.
func (a *Assignation) IsFinished() bool { return a.finishedAt != nil }

// IsOpen reports whether the assignation still occupies its driver and
// truck: not finished and not removed. The system-wide no-double-booking
// rule counts only open assignations.
func (a *Assignation) IsOpen() bool { return a.finishedAt == nil && !a.removed }

// IsActive reports whether work is running right now.
func (a *Assignation) IsActive() bool { return a.IsStarted() && a.IsOpen() }

// Start records the clock-in.
func (a *Assignation) Start(at time.Time) error {
	if a.removed {
		return errs.NewValueIsInvalidError("assignation was removed")
	}
	if a.finishedAt != nil {
		return ErrAssignationAlreadyFinished
	}
	if a.startedAt != nil {
		return ErrAssignationAlreadyStarted
	}
	t := at
	a.startedAt = &t
	return nil
}

// Finish records the clock-out with its actor and reason. An assignation
// that never started may still be finished; that is the explicit
// never-started release path used by owner cancellation and forced
// clock-outs.
func (a *Assignation) Finish(at time.Time, actor FinishActor, reason string) error {
	if a.finishedAt != nil {
		return ErrAssignationAlreadyFinished
	}
	t := at
	a.finishedAt = &t
	a.finishedBy = actor
	a.finishReason = reason
	return nil
}

// RecordHaul stores the load and ton counters fetched from the geolocation
// service when the assignation is finalized.
func (a *Assignation) RecordHaul(loads int, tons float64) error {
	if loads < 0 {
		return errs.NewValueIsOutOfRangeError("loads", loads, 0, "unbounded")
	}
	if tons < 0 {
		return errs.NewValueIsOutOfRangeError("tons", tons, 0, "unbounded")
	}
	a.loads = loads
	a.tons = tons
	return nil
}

// Remove takes the assignation out of the ledger. Used when a switch is
// accepted (the source record) or denied (the cloned record).
func (a *Assignation) Remove() {
	a.removed = true
}

// RequestSwitch moves the assignation into the relocation workflow. Only
// one switch may be active per assignation.
func (a *Assignation) RequestSwitch() error {
	if !a.IsOpen() {
		return errs.NewValueIsInvalidError("only open assignations can be switched")
	}
	if a.switchStatus != SwitchNotRequested {
		return fmt.Errorf("assignation %s: %w", a.id, errs.ErrSwitchAlreadyRequested)
	}
	a.switchStatus = SwitchRequested
	return nil
}

// AcceptSwitch records the driver's acceptance.
func (a *Assignation) AcceptSwitch() error {
	if a.switchStatus != SwitchRequested {
		return errs.NewValueIsInvalidError("no switch is pending for this assignation")
	}
	a.switchStatus = SwitchAccepted
	return nil
}

// DenySwitch records the driver's refusal.
func (a *Assignation) DenySwitch() error {
	if a.switchStatus != SwitchRequested {
		return errs.NewValueIsInvalidError("no switch is pending for this assignation")
	}
	a.switchStatus = SwitchDenied
	return nil
}
