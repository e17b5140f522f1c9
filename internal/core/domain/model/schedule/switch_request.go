package schedule

import (
	"errors"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/errs"
)

// ErrSwitchRequestIsNotConstructed is returned when a SwitchRequest was not
// created through NewSwitchRequest or RestoreSwitchRequest.
var ErrSwitchRequestIsNotConstructed = errors.New(
	"SwitchRequest must be created via NewSwitchRequest or RestoreSwitchRequest")

// SwitchRequest records one pending relocation of an assignation to a
// higher-priority job. It remembers everything needed to roll the clone
// back on denial: the cloned slot, the cloned assignation, and whether the
// target schedule was created just for this switch.
type SwitchRequest struct {
	id                   kernel.UUID
	assignationID        kernel.UUID
	sourceScheduledJobID kernel.UUID
	targetScheduledJobID kernel.UUID
	targetJobID          kernel.UUID
	clonedSlotID         kernel.UUID
	clonedAssignationID  kernel.UUID
	createdScheduledJob  bool
	status               SwitchStatus

	isConstructed bool
}

// NewSwitchRequest creates a pending switch request.
func NewSwitchRequest(
	id kernel.UUID,
	assignationID kernel.UUID,
	sourceScheduledJobID kernel.UUID,
	targetScheduledJobID kernel.UUID,
	targetJobID kernel.UUID,
	clonedSlotID kernel.UUID,
	clonedAssignationID kernel.UUID,
	createdScheduledJob bool,
) (*SwitchRequest, error) {
	if err := errors.Join(
		id.Validate(),
		assignationID.Validate(),
		sourceScheduledJobID.Validate(),
		targetScheduledJobID.Validate(),
		targetJobID.Validate(),
		clonedSlotID.Validate(),
		clonedAssignationID.Validate(),
	); err != nil {
		return nil, err
	}

	return &SwitchRequest{
		id:                   id,
		assignationID:        assignationID,
		sourceScheduledJobID: sourceScheduledJobID,
		targetScheduledJobID: targetScheduledJobID,
		targetJobID:          targetJobID,
		clonedSlotID:         clonedSlotID,
		clonedAssignationID:  clonedAssignationID,
		createdScheduledJob:  createdScheduledJob,
		status:               SwitchRequested,
		isConstructed:        true,
	}, nil
}

// RestoreSwitchRequest reconstructs a switch request from persistence.
func RestoreSwitchRequest(
	id kernel.UUID,
	assignationID kernel.UUID,
	sourceScheduledJobID kernel.UUID,
	targetScheduledJobID kernel.UUID,
	targetJobID kernel.UUID,
	clonedSlotID kernel.UUID,
	clonedAssignationID kernel.UUID,
	createdScheduledJob bool,
	status SwitchStatus,
) (*SwitchRequest, error) {
	r, err := NewSwitchRequest(id, assignationID, sourceScheduledJobID,
		targetScheduledJobID, targetJobID, clonedSlotID, clonedAssignationID, createdScheduledJob)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	r.status = status
	return r, nil
}

// Validate ensures the request was created through a constructor.
func (r *SwitchRequest) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrSwitchRequestIsNotConstructed
	}
	return nil
}

// ID returns the request's identifier.
func (r *SwitchRequest) ID() kernel.UUID { return r.id }

// AssignationID returns the source assignation being relocated.
func (r *SwitchRequest) AssignationID() kernel.UUID { return r.assignationID }

// SourceScheduledJobID returns the schedule the assignation lives on.
func (r *SwitchRequest) SourceScheduledJobID() kernel.UUID { return r.sourceScheduledJobID }

// TargetScheduledJobID returns the schedule the clone was created on.
func (r *SwitchRequest) TargetScheduledJobID() kernel.UUID { return r.targetScheduledJobID }

// TargetJobID returns the job the assignation would move to.
func (r *SwitchRequest) TargetJobID() kernel.UUID { return r.targetJobID }

// ClonedSlotID returns the requirement slot cloned into the target job.
func (r *SwitchRequest) ClonedSlotID() kernel.UUID { return r.clonedSlotID }

// ClonedAssignationID returns the assignation created on the target
// schedule.
func (r *SwitchRequest) ClonedAssignationID() kernel.UUID { return r.clonedAssignationID }

// CreatedScheduledJob reports whether the target schedule was created just
// for this switch, and so should be removed on denial.
func (r *SwitchRequest) CreatedScheduledJob() bool { return r.createdScheduledJob }

// Status returns the request's workflow state.
func (r *SwitchRequest) Status() SwitchStatus { return r.status }

// IsPending reports whether the driver has not answered yet.
func (r *SwitchRequest) IsPending() bool { return r.status == SwitchRequested }

// Accept records the driver's acceptance.
func (r *SwitchRequest) Accept() error {
	if r.status != SwitchRequested {
		return errs.NewValueIsInvalidError("switch request is not pending")
	}
	r.status = SwitchAccepted
	return nil
}

// Deny records the driver's refusal.
func (r *SwitchRequest) Deny() error {
	if r.status != SwitchRequested {
		return errs.NewValueIsInvalidError("switch request is not pending")
	}
	r.status = SwitchDenied
	return nil
}
