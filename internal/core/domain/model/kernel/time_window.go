package kernel

import (
	"errors"
	"fmt"
	"time"

	"hauling/internal/pkg/errs"
	"hauling/internal/pkg/guard"
)

// ErrTimeWindowIsNotConstructed is returned when using a TimeWindow that was
// not created through NewTimeWindow.
var ErrTimeWindowIsNotConstructed = errs.NewValueIsRequiredError(
	"time window must be created via NewTimeWindow")

// TimeWindow is the half-open interval [Start, End) a job is expected to run
// in. It is an immutable value object; End is always strictly after Start.
//
// Example:
//
//	window, err := kernel.NewTimeWindow(start, start.Add(4*time.Hour))
//	if err != nil {
//	    // Handle validation error
//	}
type TimeWindow struct { //nolint:recvcheck //using for validation
	start time.Time
	end   time.Time
	guard guard.ConstructorGuard
}

// NewTimeWindow creates a validated TimeWindow. Both bounds must be non-zero
// and end must be after start.
func NewTimeWindow(start, end time.Time) (TimeWindow, error) {
	w := TimeWindow{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(w.setStart(start), w.setEnd(end)); err != nil {
		return TimeWindow{}, err
	}

	if !w.end.After(w.start) {
		return TimeWindow{}, errs.NewValueIsInvalidErrorWithCause("time window",
			fmt.Errorf("end %s is not after start %s", end, start))
	}

	return w, nil
}

// Start returns the window's start instant.
func (w TimeWindow) Start() time.Time {
	return w.start
}

// End returns the window's end instant.
func (w TimeWindow) End() time.Time {
	return w.end
}

// Duration returns End minus Start.
func (w TimeWindow) Duration() time.Duration {
	return w.end.Sub(w.start)
}

// Padded returns a new window widened by pad on both sides. Used by the
// double-booking check, which treats assignments within one hour of each
// other as overlapping.
func (w TimeWindow) Padded(pad time.Duration) TimeWindow {
	return TimeWindow{
		start: w.start.Add(-pad),
		end:   w.end.Add(pad),
		guard: w.guard,
	}
}

// Overlaps reports whether two windows intersect.
func (w TimeWindow) Overlaps(other TimeWindow) bool {
	return w.start.Before(other.end) && other.start.Before(w.end)
}

// Validate ensures the window was built through NewTimeWindow.
func (w TimeWindow) Validate() error {
	return w.guard.Validate(ErrTimeWindowIsNotConstructed)
}

func (w *TimeWindow) setStart(start time.Time) error {
	if start.IsZero() {
		return errs.NewValueIsRequiredError("start time")
	}
	w.start = start
	return nil
}

func (w *TimeWindow) setEnd(end time.Time) error {
	if end.IsZero() {
		return errs.NewValueIsRequiredError("end time")
	}
	w.end = end
	return nil
}
