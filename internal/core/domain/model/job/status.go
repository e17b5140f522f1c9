package job

import (
	"fmt"

	"hauling/internal/pkg/errs"
)

// Status represents the lifecycle state of a job. It implements a state
// machine with defined transitions:
//
//	Requested ──> Pending ──> Started ──> Done
//	                 │            │
//	                 ├────────────┼──> Canceled
//	                 └────────────┴──> Incomplete
//
// Requested is a pre-job placeholder for a truck request that has not been
// materialized into a posted job yet. Done, Canceled, and Incomplete are
// terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Requested is a truck request not yet materialized into a job.
	Requested

	// Pending is a posted job whose work has not started.
	Pending

	// Started means at least one assignation has clocked in.
	Started

	// Done means every non-removed assignation has a finish time.
	Done

	// Canceled is the terminal state of an explicitly canceled job.
	Canceled

	// Incomplete is the terminal state of a job that expired without being
	// scheduled or finished.
	Incomplete
)

func statusStrings() map[Status]string {
	return map[Status]string{
		Unknown:    "Unknown",
		Requested:  "Requested",
		Pending:    "Pending",
		Started:    "Started",
		Done:       "Done",
		Canceled:   "Canceled",
		Incomplete: "Incomplete",
	}
}

// Validate checks the Status is one of the defined lifecycle states.
func (s Status) Validate() error {
	switch s {
	case Requested, Pending, Started, Done, Canceled, Incomplete:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%d is not a valid status", s))
	}
}

// String implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Done || s == Canceled || s == Incomplete
}

// Materialize transitions a truck request into a posted job.
func (s Status) Materialize() (Status, error) {
	if s != Requested {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s cannot be materialized into a pending job", s))
	}
	return Pending, nil
}

// Start transitions the status to Started on the first clock-in. Starting an
// already started job is a no-op, since later assignations clock in against
// the same job.
func (s Status) Start() (Status, error) {
	if s != Pending && s != Started {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to start", s))
	}
	return Started, nil
}

// Complete transitions the status to Done.
func (s Status) Complete() (Status, error) {
	if s != Started {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to complete", s))
	}
	return Done, nil
}

// Cancel transitions the status to Canceled. Only reachable before the job
// is finished.
func (s Status) Cancel() (Status, error) {
	if s != Pending && s != Started {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to cancel", s))
	}
	return Canceled, nil
}

// MarkIncomplete transitions the status to Incomplete, used by the expiry
// sweeps.
func (s Status) MarkIncomplete() (Status, error) {
	if s != Pending && s != Started {
		return 0, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s is not a valid status to mark incomplete", s))
	}
	return Incomplete, nil
}
