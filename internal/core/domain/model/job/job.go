package job

import (
	"errors"
	"fmt"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/errs"
)

// ErrJobIsNotConstructed is returned when a Job instance was not created
// through NewJob or RestoreJob.
var ErrJobIsNotConstructed = errors.New("Job must be created via NewJob or RestoreJob")

// ErrSlotNotFound is returned when a slot id does not belong to the job.
var ErrSlotNotFound = errors.New("slot does not belong to this job")

// Site is a named location on a job: the load site where material is picked
// up and the dump site where it is delivered.
type Site struct {
	Address string
	Point   kernel.GeoPoint
}

// Job is the aggregate root for a contractor's posted hauling work order.
// It owns its requirement slots and is the single writer of their lifecycle
// flags; everything else references slots by id.
//
// Job maintains these invariants:
//   - every owned slot satisfies isActive implies isScheduled
//   - the job is never reported fully scheduled while any slot is open
//   - terminal statuses (Done, Canceled, Incomplete) accept no transitions
//   - onHold is orthogonal to status and cannot be set while any slot is
//     active
type Job struct {
	id           kernel.UUID
	contractorID kernel.UUID
	status       Status
	window       kernel.TimeWindow
	loadSite     Site
	dumpSite     Site
	paymentDue   time.Time
	onHold       bool
	createdAt    time.Time
	slots        []*TruckCategory

	isConstructed bool
}

// NewJob creates a posted job in Pending status with at least one
// requirement slot. createdAt anchors the visibility throttle's delay
// calculation.
func NewJob(
	id kernel.UUID,
	contractorID kernel.UUID,
	window kernel.TimeWindow,
	loadSite Site,
	dumpSite Site,
	paymentDue time.Time,
	slots []*TruckCategory,
	createdAt time.Time,
) (*Job, error) {
	j := &Job{
		status:        Pending,
		isConstructed: true,
	}

	if err := errors.Join(
		j.setID(id),
		j.setContractorID(contractorID),
		j.setWindow(window),
		j.setSites(loadSite, dumpSite),
		j.setSlots(slots),
	); err != nil {
		return nil, err
	}

	if createdAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("createdAt")
	}
	j.paymentDue = paymentDue
	j.createdAt = createdAt

	return j, nil
}

// RestoreJob reconstructs a job from persistence with its full state.
func RestoreJob(
	id kernel.UUID,
	contractorID kernel.UUID,
	status Status,
	window kernel.TimeWindow,
	loadSite Site,
	dumpSite Site,
	paymentDue time.Time,
	onHold bool,
	slots []*TruckCategory,
	createdAt time.Time,
) (*Job, error) {
	j, err := NewJob(id, contractorID, window, loadSite, dumpSite, paymentDue, slots, createdAt)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	j.status = status
	j.onHold = onHold
	return j, nil
}

// Validate ensures the job was created through a constructor.
func (j *Job) Validate() error {
	if j == nil || !j.isConstructed {
		return ErrJobIsNotConstructed
	}
	return nil
}

// IsEqual compares two jobs by id.
func (j *Job) IsEqual(other *Job) bool {
	return other != nil && j.id.IsEqual(other.id)
}

// ID returns the job's identifier.
func (j *Job) ID() kernel.UUID { return j.id }

// ContractorID returns the posting contractor.
func (j *Job) ContractorID() kernel.UUID { return j.contractorID }

// Status returns the current lifecycle status.
func (j *Job) Status() Status { return j.status }

// Window returns the job's start/end window.
func (j *Job) Window() kernel.TimeWindow { return j.window }

// LoadSite returns where material is picked up.
func (j *Job) LoadSite() Site { return j.loadSite }

// DumpSite returns where material is delivered.
func (j *Job) DumpSite() Site { return j.dumpSite }

// PaymentDue returns the payment-due date.
func (j *Job) PaymentDue() time.Time { return j.paymentDue }

// OnHold reports whether new clock-ins are blocked.
func (j *Job) OnHold() bool { return j.onHold }

// CreatedAt returns when the job was posted.
func (j *Job) CreatedAt() time.Time { return j.createdAt }

// Slots returns the job's requirement slots in posting order.
func (j *Job) Slots() []*TruckCategory {
	out := make([]*TruckCategory, len(j.slots))
	copy(out, j.slots)
	return out
}

// Slot returns the owned slot with the given id.
func (j *Job) Slot(id kernel.UUID) (*TruckCategory, error) {
	for _, s := range j.slots {
		if s.ID().IsEqual(id) {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrSlotNotFound, id)
}

// OpenSlots returns the slots not yet matched to an assignation.
func (j *Job) OpenSlots() []*TruckCategory {
	var open []*TruckCategory
	for _, s := range j.slots {
		if !s.IsScheduled() {
			open = append(open, s)
		}
	}
	return open
}

// AllSlotsScheduled reports whether every requirement slot is filled.
func (j *Job) AllSlotsScheduled() bool {
	for _, s := range j.slots {
		if !s.IsScheduled() {
			return false
		}
	}
	return true
}

// HasScheduledSlot reports whether any slot is matched.
func (j *Job) HasScheduledSlot() bool {
	for _, s := range j.slots {
		if s.IsScheduled() {
			return true
		}
	}
	return false
}

// HasActiveSlot reports whether any slot's work has started.
func (j *Job) HasActiveSlot() bool {
	for _, s := range j.slots {
		if s.IsActive() {
			return true
		}
	}
	return false
}

// ActivateSlot marks a slot's work as started and advances the job to
// Started on the first activation. Rejected while the job is on hold.
func (j *Job) ActivateSlot(slotID kernel.UUID) error {
	if j.onHold {
		return fmt.Errorf("job %s: %w", j.id, errs.ErrJobOnHold)
	}

	slot, err := j.Slot(slotID)
	if err != nil {
		return err
	}
	if err = slot.Activate(); err != nil {
		return err
	}

	newStatus, err := j.status.Start()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// DeactivateSlot marks a slot's work as finished running. The slot stays
// scheduled; completion is decided by the assignation ledger.
func (j *Job) DeactivateSlot(slotID kernel.UUID) error {
	slot, err := j.Slot(slotID)
	if err != nil {
		return err
	}
	slot.Deactivate()
	return nil
}

// ScheduleSlot consumes a slot for a new assignation.
func (j *Job) ScheduleSlot(slotID kernel.UUID) error {
	slot, err := j.Slot(slotID)
	if err != nil {
		return err
	}
	return slot.MarkScheduled()
}

// ReleaseSlot frees a slot whose assignation was canceled or relocated.
func (j *Job) ReleaseSlot(slotID kernel.UUID) error {
	slot, err := j.Slot(slotID)
	if err != nil {
		return err
	}
	return slot.Release()
}

// AddSlot appends a slot cloned in by the switch-job workflow.
func (j *Job) AddSlot(slot *TruckCategory) error {
	if err := slot.Validate(); err != nil {
		return err
	}
	if _, err := j.Slot(slot.ID()); err == nil {
		return errs.NewValueIsInvalidError("slot already belongs to this job")
	}
	j.slots = append(j.slots, slot)
	return nil
}

// Complete marks the job Done once every assignation has finished.
func (j *Job) Complete() error {
	newStatus, err := j.status.Complete()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// Cancel explicitly cancels a job that has nothing locked in: any scheduled
// or active slot rejects the direct cancel. Jobs with scheduled work go
// through the cancellation workflow, which cancels each scheduled job first
// and then calls MarkCanceled.
func (j *Job) Cancel() error {
	if j.HasActiveSlot() {
		return fmt.Errorf("job %s: %w", j.id, errs.ErrJobHasActiveTrucks)
	}
	if j.HasScheduledSlot() {
		return fmt.Errorf("job %s: %w", j.id, errs.ErrJobAlreadyStarted)
	}
	return j.MarkCanceled()
}

// MarkCanceled transitions to Canceled without inspecting slots. The
// cancellation workflow calls it after every scheduled job was successfully
// canceled and the slots released.
func (j *Job) MarkCanceled() error {
	newStatus, err := j.status.Cancel()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// MarkIncomplete transitions to Incomplete, used by the expiry sweeps.
func (j *Job) MarkIncomplete() error {
	newStatus, err := j.status.MarkIncomplete()
	if err != nil {
		return err
	}
	j.status = newStatus
	return nil
}

// SetHold toggles the orthogonal on-hold flag. Holding is rejected while any
// slot is active, since running work cannot be paused retroactively.
func (j *Job) SetHold(on bool) error {
	if on && j.HasActiveSlot() {
		return fmt.Errorf("job %s: %w", j.id, errs.ErrJobHasActiveTrucks)
	}
	j.onHold = on
	return nil
}

func (j *Job) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	j.id = id
	return nil
}

func (j *Job) setContractorID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("contractorID", err)
	}
	j.contractorID = id
	return nil
}

func (j *Job) setWindow(window kernel.TimeWindow) error {
	if err := window.Validate(); err != nil {
		return err
	}
	j.window = window
	return nil
}

func (j *Job) setSites(loadSite, dumpSite Site) error {
	if err := loadSite.Point.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("load site", err)
	}
	if err := dumpSite.Point.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("dump site", err)
	}
	j.loadSite = loadSite
	j.dumpSite = dumpSite
	return nil
}

func (j *Job) setSlots(slots []*TruckCategory) error {
	if len(slots) == 0 {
		return errs.NewValueIsRequiredError("at least one requirement slot")
	}
	seen := make(map[kernel.UUID]struct{}, len(slots))
	for _, s := range slots {
		if err := s.Validate(); err != nil {
			return err
		}
		if _, dup := seen[s.ID()]; dup {
			return errs.NewValueIsInvalidError("duplicate slot id")
		}
		seen[s.ID()] = struct{}{}
	}
	j.slots = slots
	return nil
}
