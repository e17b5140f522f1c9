package schedule

import (
	"errors"
	"fmt"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/errs"
)

// ErrScheduledJobIsNotConstructed is returned when a ScheduledJob was not
// created through NewScheduledJob or RestoreScheduledJob.
var ErrScheduledJobIsNotConstructed = errors.New(
	"ScheduledJob must be created via NewScheduledJob or RestoreScheduledJob")

// ErrScheduledJobCanceled is returned when mutating a canceled schedule;
// isCanceled is terminal.
var ErrScheduledJobCanceled = errors.New("scheduled job is canceled")

// disputeWindow is how long after the last finish a contractor may still
// raise a dispute.
const disputeWindow = 24 * time.Hour

// ScheduledJob is the subset of a job's work assigned to one owning
// company. There is exactly one live ScheduledJob per (job, owner) pair; it
// owns its assignations and carries the cancellation and dispute state for
// that company's share of the work.
type ScheduledJob struct {
	id      kernel.UUID
	jobID   kernel.UUID
	ownerID kernel.UUID

	paymentDue      time.Time
	isCanceled      bool
	canceledByOwner bool

	disputeRequested   bool
	disputeReviewed    bool
	disputeConfirmed   bool
	disputeRequestedAt *time.Time

	assignations []*Assignation

	isConstructed bool
}

// NewScheduledJob creates an empty schedule for one owner's share of a job.
func NewScheduledJob(id, jobID, ownerID kernel.UUID, paymentDue time.Time) (*ScheduledJob, error) {
	if err := errors.Join(id.Validate(), jobID.Validate(), ownerID.Validate()); err != nil {
		return nil, err
	}

	return &ScheduledJob{
		id:            id,
		jobID:         jobID,
		ownerID:       ownerID,
		paymentDue:    paymentDue,
		isConstructed: true,
	}, nil
}

// RestoreScheduledJob reconstructs a schedule from persistence.
func RestoreScheduledJob(
	id, jobID, ownerID kernel.UUID,
	paymentDue time.Time,
	isCanceled, canceledByOwner bool,
	disputeRequested, disputeReviewed, disputeConfirmed bool,
	disputeRequestedAt *time.Time,
	assignations []*Assignation,
) (*ScheduledJob, error) {
	s, err := NewScheduledJob(id, jobID, ownerID, paymentDue)
	if err != nil {
		return nil, err
	}
	for _, a := range assignations {
		if err = a.Validate(); err != nil {
			return nil, err
		}
	}
	s.isCanceled = isCanceled
	s.canceledByOwner = canceledByOwner
	s.disputeRequested = disputeRequested
	s.disputeReviewed = disputeReviewed
	s.disputeConfirmed = disputeConfirmed
	s.disputeRequestedAt = disputeRequestedAt
	s.assignations = assignations
	return s, nil
}

// Validate ensures the schedule was created through a constructor.
func (s *ScheduledJob) Validate() error {
	if s == nil || !s.isConstructed {
		return ErrScheduledJobIsNotConstructed
	}
	return nil
}

// ID returns the schedule's identifier.
func (s *ScheduledJob) ID() kernel.UUID { return s.id }

// JobID returns the parent job.
func (s *ScheduledJob) JobID() kernel.UUID { return s.jobID }

// OwnerID returns the owning company.
func (s *ScheduledJob) OwnerID() kernel.UUID { return s.ownerID }

// PaymentDue returns the payment-due date.
func (s *ScheduledJob) PaymentDue() time.Time { return s.paymentDue }

// IsCanceled reports whether the schedule was canceled; terminal.
func (s *ScheduledJob) IsCanceled() bool { return s.isCanceled }

// CanceledByOwner reports whether the owner, rather than the contractor,
// initiated the cancellation.
func (s *ScheduledJob) CanceledByOwner() bool { return s.canceledByOwner }

// DisputeRequested reports whether a dispute has been raised.
func (s *ScheduledJob) DisputeRequested() bool { return s.disputeRequested }

// DisputeReviewed reports whether the raised dispute has been reviewed.
func (s *ScheduledJob) DisputeReviewed() bool { return s.disputeReviewed }

// DisputeConfirmed reports whether the dispute was resolved; terminal.
func (s *ScheduledJob) DisputeConfirmed() bool { return s.disputeConfirmed }

// DisputeRequestedAt returns when the dispute was raised, or nil.
func (s *ScheduledJob) DisputeRequestedAt() *time.Time { return s.disputeRequestedAt }

// Assignations returns the owned assignation records.
func (s *ScheduledJob) Assignations() []*Assignation {
	out := make([]*Assignation, len(s.assignations))
	copy(out, s.assignations)
	return out
}

// Assignation returns the owned assignation with the given id.
func (s *ScheduledJob) Assignation(id kernel.UUID) (*Assignation, error) {
	for _, a := range s.assignations {
		if a.ID().IsEqual(id) {
			return a, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("assignation", id.String())
}

// AddAssignation appends a new assignation. Rejected on canceled schedules.
func (s *ScheduledJob) AddAssignation(a *Assignation) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if s.isCanceled {
		return fmt.Errorf("scheduled job %s: %w", s.id, ErrScheduledJobCanceled)
	}
	if _, err := s.Assignation(a.ID()); err == nil {
		return errs.NewValueIsInvalidError("assignation already belongs to this scheduled job")
	}
	s.assignations = append(s.assignations, a)
	return nil
}

// OpenAssignations returns assignations still occupying their driver and
// truck.
func (s *ScheduledJob) OpenAssignations() []*Assignation {
	var open []*Assignation
	for _, a := range s.assignations {
		if a.IsOpen() {
			open = append(open, a)
		}
	}
	return open
}

// HasStarted reports whether any assignation has clocked in.
func (s *ScheduledJob) HasStarted() bool {
	for _, a := range s.assignations {
		if !a.Removed() && a.IsStarted() {
			return true
		}
	}
	return false
}

// HasActiveAssignations reports whether work is running right now.
func (s *ScheduledJob) HasActiveAssignations() bool {
	for _, a := range s.assignations {
		if a.IsActive() {
			return true
		}
	}
	return false
}

// LiveAssignationCount returns the number of non-removed assignations.
func (s *ScheduledJob) LiveAssignationCount() int {
	n := 0
	for _, a := range s.assignations {
		if !a.Removed() {
			n++
		}
	}
	return n
}

// IsFinished reports whether every non-removed assignation has a finish
// time. A schedule with no live assignations is not finished; nothing was
// done.
func (s *ScheduledJob) IsFinished() bool {
	finished := 0
	for _, a := range s.assignations {
		if a.Removed() {
			continue
		}
		if !a.IsFinished() {
			return false
		}
		finished++
	}
	return finished > 0
}

// LatestFinish returns the most recent finish time across non-removed
// assignations, or nil when none have finished.
func (s *ScheduledJob) LatestFinish() *time.Time {
	var latest *time.Time
	for _, a := range s.assignations {
		if a.Removed() || !a.IsFinished() {
			continue
		}
		if latest == nil || a.FinishedAt().After(*latest) {
			latest = a.FinishedAt()
		}
	}
	return latest
}

// CancelByContractor cancels the owner's whole share on the contractor's
// behalf. Permitted only when none of the assignations are active; the
// caller releases the job's slots and notifies the drivers.
func (s *ScheduledJob) CancelByContractor() error {
	if s.isCanceled {
		return fmt.Errorf("scheduled job %s: %w", s.id, ErrScheduledJobCanceled)
	}
	if s.HasActiveAssignations() {
		return fmt.Errorf("scheduled job %s: %w", s.id, errs.ErrJobHasActiveTrucks)
	}
	s.isCanceled = true
	s.canceledByOwner = false
	return nil
}

// CancelByOwner cancels or partially releases the owner's share and returns
// the released assignations so the caller can free their slots and notify
// the drivers.
//
// When work has already started, only not-yet-started assignations are
// released and the schedule itself stays un-canceled; the started share of
// the work continues. When nothing has started, every assignation is
// released and the schedule is marked canceled with canceledByOwner set.
func (s *ScheduledJob) CancelByOwner(now time.Time) ([]*Assignation, error) {
	if s.isCanceled {
		return nil, fmt.Errorf("scheduled job %s: %w", s.id, ErrScheduledJobCanceled)
	}

	started := s.HasStarted()
	var released []*Assignation
	for _, a := range s.assignations {
		if a.Removed() || a.IsFinished() || a.IsStarted() {
			continue
		}
		if err := a.Finish(now, ActorOwner, "released by owner cancellation"); err != nil {
			return nil, err
		}
		released = append(released, a)
	}

	if !started {
		s.isCanceled = true
		s.canceledByOwner = true
	}
	return released, nil
}

// RaiseDispute opens a dispute on a finished schedule. The dispute window
// is one day from the latest finish.
func (s *ScheduledJob) RaiseDispute(now time.Time) error {
	if s.disputeRequested {
		return errs.NewValueIsInvalidError("dispute already raised for this scheduled job")
	}
	if !s.IsFinished() {
		return fmt.Errorf("scheduled job %s: %w", s.id, errs.ErrJobNotFinished)
	}

	latest := s.LatestFinish()
	if latest == nil {
		return fmt.Errorf("scheduled job %s: %w", s.id, errs.ErrNoFinishedAssignations)
	}
	if now.Sub(*latest) > disputeWindow {
		return fmt.Errorf("scheduled job %s: %w", s.id, errs.ErrDisputeTimePassed)
	}

	t := now
	s.disputeRequested = true
	s.disputeRequestedAt = &t
	return nil
}

// ReviewDispute marks the raised dispute as reviewed. Returns false when
// the dispute was already reviewed, so a second call performs no side
// effects.
func (s *ScheduledJob) ReviewDispute() (bool, error) {
	if !s.disputeRequested {
		return false, fmt.Errorf("scheduled job %s: %w", s.id, errs.ErrNoDisputeRequested)
	}
	if s.disputeReviewed {
		return false, nil
	}
	s.disputeReviewed = true
	return true, nil
}

// ResolveDispute confirms the dispute outcome; terminal.
func (s *ScheduledJob) ResolveDispute() error {
	if !s.disputeRequested {
		return fmt.Errorf("scheduled job %s: %w", s.id, errs.ErrNoDisputeRequested)
	}
	if s.disputeConfirmed {
		return errs.NewValueIsInvalidError("dispute already resolved")
	}
	s.disputeReviewed = true
	s.disputeConfirmed = true
	return nil
}
