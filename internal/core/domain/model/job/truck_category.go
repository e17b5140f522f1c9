package job

import (
	"errors"
	"fmt"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/errs"
)

// ErrTruckCategoryIsNotConstructed is returned when a TruckCategory instance
// was not created through NewTruckCategory or RestoreTruckCategory.
var ErrTruckCategoryIsNotConstructed = errors.New(
	"TruckCategory must be created via NewTruckCategory or RestoreTruckCategory")

// PaymentBasis is how an assignation matched to a slot is paid.
type PaymentBasis string

const (
	PayHourly  PaymentBasis = "hourly"
	PayPerLoad PaymentBasis = "per-load"
	PayPerTon  PaymentBasis = "per-ton"
)

// Validate checks the basis is one of the defined payment modes.
func (b PaymentBasis) Validate() error {
	switch b {
	case PayHourly, PayPerLoad, PayPerTon:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("payment basis",
			fmt.Errorf("%q is not a valid payment basis", string(b)))
	}
}

// Rate is one row of a slot's rate table. Price is what the driver earns,
// CustomerRate what the contractor pays, PartnerRate the platform margin
// basis. An Assignation snapshots the row for its truck's type at matching
// time; the snapshot is immutable afterwards.
type Rate struct {
	Price        float64
	CustomerRate float64
	PartnerRate  float64
	Basis        PaymentBasis
}

// TruckSpec is one accepted truck shape on a slot: a type plus the subtypes
// it admits. An empty Subtypes list admits every subtype of the type.
type TruckSpec struct {
	Type     fleet.TruckType
	Subtypes []string
}

// Matches reports whether a truck satisfies this spec.
func (s TruckSpec) Matches(truck fleet.Truck) bool {
	if truck.Type != s.Type {
		return false
	}
	if len(s.Subtypes) == 0 {
		return true
	}
	for _, sub := range s.Subtypes {
		if sub == truck.Subtype {
			return true
		}
	}
	return false
}

// TruckCategory is one "needed truck" line item on a job: which truck shapes
// it accepts, what each type pays, an optional pinned preferred truck, and
// the two lifecycle flags. isActive implies isScheduled, enforced by
// Activate.
type TruckCategory struct {
	id               kernel.UUID
	accepted         []TruckSpec
	rates            map[fleet.TruckType]Rate
	preferredTruckID *kernel.UUID
	preferredOwnerID *kernel.UUID
	isScheduled      bool
	isActive         bool
	isConstructed    bool
}

// NewTruckCategory creates an open, inactive slot. A pinned slot carries the
// preferred truck's id and its owning company, captured at job creation so
// matching never needs a directory round trip.
func NewTruckCategory(
	id kernel.UUID,
	accepted []TruckSpec,
	rates map[fleet.TruckType]Rate,
	preferredTruckID *kernel.UUID,
	preferredOwnerID *kernel.UUID,
) (*TruckCategory, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if len(accepted) == 0 {
		return nil, errs.NewValueIsRequiredError("accepted truck specs")
	}
	if len(rates) == 0 {
		return nil, errs.NewValueIsRequiredError("rate table")
	}
	for truckType, rate := range rates {
		if err := rate.Basis.Validate(); err != nil {
			return nil, errs.NewValueIsInvalidErrorWithCause(
				fmt.Sprintf("rate for %s", truckType), err)
		}
	}
	if (preferredTruckID == nil) != (preferredOwnerID == nil) {
		return nil, errs.NewValueIsInvalidError("preferred truck requires its owning company")
	}

	return &TruckCategory{
		id:               id,
		accepted:         accepted,
		rates:            rates,
		preferredTruckID: preferredTruckID,
		preferredOwnerID: preferredOwnerID,
		isConstructed:    true,
	}, nil
}

// RestoreTruckCategory reconstructs a slot from persistence, including its
// lifecycle flags.
func RestoreTruckCategory(
	id kernel.UUID,
	accepted []TruckSpec,
	rates map[fleet.TruckType]Rate,
	preferredTruckID *kernel.UUID,
	preferredOwnerID *kernel.UUID,
	isScheduled bool,
	isActive bool,
) (*TruckCategory, error) {
	cat, err := NewTruckCategory(id, accepted, rates, preferredTruckID, preferredOwnerID)
	if err != nil {
		return nil, err
	}
	if isActive && !isScheduled {
		return nil, errs.NewValueIsInvalidError("slot cannot be active without being scheduled")
	}
	cat.isScheduled = isScheduled
	cat.isActive = isActive
	return cat, nil
}

// Validate ensures the slot was created through a constructor.
func (c *TruckCategory) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrTruckCategoryIsNotConstructed
	}
	return nil
}

// ID returns the slot's identifier.
func (c *TruckCategory) ID() kernel.UUID {
	return c.id
}

// Accepted returns the accepted truck shapes.
func (c *TruckCategory) Accepted() []TruckSpec {
	return c.accepted
}

// Rates returns the slot's rate table.
func (c *TruckCategory) Rates() map[fleet.TruckType]Rate {
	return c.rates
}

// IsScheduled reports whether the slot has been matched to an assignation.
func (c *TruckCategory) IsScheduled() bool {
	return c.isScheduled
}

// IsActive reports whether the matched assignation has clocked in.
func (c *TruckCategory) IsActive() bool {
	return c.isActive
}

// IsPinned reports whether the slot carries a preferred truck.
func (c *TruckCategory) IsPinned() bool {
	return c.preferredTruckID != nil
}

// PreferredTruckID returns the pinned truck's id, or nil.
func (c *TruckCategory) PreferredTruckID() *kernel.UUID {
	return c.preferredTruckID
}

// PreferredOwnerID returns the pinned truck's owning company, or nil.
func (c *TruckCategory) PreferredOwnerID() *kernel.UUID {
	return c.preferredOwnerID
}

// Accepts reports whether the truck is structurally compatible with the
// slot: it matches one of the accepted specs, and for a pinned slot it
// belongs to the preferred truck's owning company.
func (c *TruckCategory) Accepts(truck fleet.Truck) bool {
	if c.preferredOwnerID != nil && !truck.CompanyID.IsEqual(*c.preferredOwnerID) {
		return false
	}
	for _, spec := range c.accepted {
		if spec.Matches(truck) {
			return true
		}
	}
	return false
}

// RateFor returns the rate table row for a truck type.
func (c *TruckCategory) RateFor(truckType fleet.TruckType) (Rate, error) {
	rate, ok := c.rates[truckType]
	if !ok {
		return Rate{}, errs.NewObjectNotFoundError("rate for truck type", string(truckType))
	}
	return rate, nil
}

// MarkScheduled consumes the slot for an assignation.
func (c *TruckCategory) MarkScheduled() error {
	if c.isScheduled {
		return fmt.Errorf("slot %s: %w", c.id, errs.ErrAlreadyScheduled)
	}
	c.isScheduled = true
	return nil
}

// Release frees a slot whose assignation was canceled or relocated. The
// slot must not be active.
func (c *TruckCategory) Release() error {
	if c.isActive {
		return fmt.Errorf("slot %s: %w", c.id, errs.ErrJobHasActiveTrucks)
	}
	c.isScheduled = false
	return nil
}

// Activate marks the slot's work as started. A slot can only become active
// once it is scheduled.
func (c *TruckCategory) Activate() error {
	if !c.isScheduled {
		return errs.NewValueIsInvalidError("slot cannot be activated before it is scheduled")
	}
	c.isActive = true
	return nil
}

// Deactivate marks the slot's work as no longer running, on clock-out or
// forced finish. The slot stays scheduled.
func (c *TruckCategory) Deactivate() {
	c.isActive = false
}

// Clone creates an open, inactive copy of the slot under a new id, carrying
// the accepted specs and rate table. The switch-job workflow clones the
// source slot into the target job.
func (c *TruckCategory) Clone(id kernel.UUID) (*TruckCategory, error) {
	accepted := make([]TruckSpec, len(c.accepted))
	copy(accepted, c.accepted)
	rates := make(map[fleet.TruckType]Rate, len(c.rates))
	for k, v := range c.rates {
		rates[k] = v
	}
	return NewTruckCategory(id, accepted, rates, nil, nil)
}
