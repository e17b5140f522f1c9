package errs

import "fmt"

// DomainError is a business rejection produced by the scheduling core. The
// taxonomy is closed: every condition the core can refuse is one of the
// sentinel values below, each carrying a stable machine-readable code that
// the transport layer surfaces to callers unchanged.
//
// Use errors.Is against a sentinel to test for one condition, or errors.As
// with *DomainError to separate any business rejection from infrastructure
// failures:
//
//	var domainErr *errs.DomainError
//	if errors.As(err, &domainErr) {
//	    return c.JSON(http.StatusConflict, map[string]string{"code": domainErr.Code})
//	}
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s (%s)", e.Message, e.Code)
}

// Is matches another DomainError with the same code, so wrapped copies of a
// sentinel still compare equal under errors.Is.
func (e *DomainError) Is(target error) bool {
	other, ok := target.(*DomainError)
	return ok && other.Code == e.Code
}

// NewDomainError creates a domain condition with a stable code. Codes are
// part of the public contract and must never change once released.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// The closed set of domain conditions.
var (
	ErrAlreadyScheduled       = NewDomainError("ALREADY_SCHEDULED", "every requirement slot on the job is already filled")
	ErrUserAlreadyScheduled   = NewDomainError("USER_ALREADY_SCHEDULED", "driver already has an open assignment in an overlapping window")
	ErrTruckAlreadyScheduled  = NewDomainError("TRUCK_ALREADY_SCHEDULED", "truck already has an open assignment in an overlapping window")
	ErrNoAssignations         = NewDomainError("NO_ASSIGNATIONS", "at least one driver and truck pair is required")
	ErrTrucksUnassignable     = NewDomainError("TRUCKS_UNASSIGNABLE", "submitted trucks cannot all be matched to open requirement slots")
	ErrInactiveTruck          = NewDomainError("INACTIVE_TRUCK", "truck is not active")
	ErrUnverifiedOwner        = NewDomainError("UNVERIFIED_OWNER", "owner account is not verified")
	ErrUnverifiedContractor   = NewDomainError("UNVERIFIED_CONTRACTOR", "contractor account is not verified")
	ErrJobNotFinished         = NewDomainError("JOB_NOT_FINISHED", "scheduled job is not finished yet")
	ErrNoFinishedAssignations = NewDomainError("NO_FINISHED_ASSIGNATIONS", "scheduled job has no finished assignations")
	ErrDisputeTimePassed      = NewDomainError("DISPUTE_TIME_PASSED", "dispute window of one day after the last finish has passed")
	ErrNoDisputeRequested     = NewDomainError("NO_DISPUTE_REQUESTED", "no dispute has been raised for this scheduled job")
	ErrJobAlreadyStarted      = NewDomainError("JOB_ALREADY_STARTED", "job has already started")
	ErrJobHasActiveTrucks     = NewDomainError("JOB_HAS_ACTIVE_TRUCKS", "job has trucks with active assignments")
	ErrJobNotExist            = NewDomainError("JOB_NOT_EXIST", "job does not exist")
	ErrJobOnHold              = NewDomainError("JOB_ON_HOLD", "job is on hold and does not accept clock-ins")
	ErrSwitchAlreadyRequested = NewDomainError("SWITCH_ALREADY_REQUESTED", "assignation already has an active switch request")
)
