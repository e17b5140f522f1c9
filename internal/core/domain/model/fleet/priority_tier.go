package fleet

import (
	"fmt"

	"hauling/internal/pkg/errs"
)

// PriorityTier is an owner's visibility-throttling class. Higher tiers see
// newly posted jobs earlier; TierMaximum sees them immediately.
type PriorityTier int

const (
	// TierUnknown represents an invalid or undefined tier.
	TierUnknown PriorityTier = iota

	// TierLow waits the longest for new jobs.
	TierLow

	// TierMedium waits less than low, more than high.
	TierMedium

	// TierHigh waits the shortest non-zero delay.
	TierHigh

	// TierMaximum sees every new job immediately.
	TierMaximum
)

func tierStrings() map[PriorityTier]string {
	return map[PriorityTier]string{
		TierUnknown: "Unknown",
		TierLow:     "Low",
		TierMedium:  "Medium",
		TierHigh:    "High",
		TierMaximum: "Maximum",
	}
}

// Validate checks the tier is one of the four defined classes.
func (t PriorityTier) Validate() error {
	switch t {
	case TierLow, TierMedium, TierHigh, TierMaximum:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("priority tier",
			fmt.Errorf("%d is not a valid tier", t))
	}
}

// String implements fmt.Stringer.
func (t PriorityTier) String() string {
	if s, ok := tierStrings()[t]; ok {
		return s
	}
	return "Unknown"
}

// TierFromString parses a tier from its wire name, for example "Medium".
func TierFromString(s string) (PriorityTier, error) {
	for tier, name := range tierStrings() {
		if name == s && tier != TierUnknown {
			return tier, nil
		}
	}

	return TierUnknown, errs.NewValueIsInvalidErrorWithCause("priority tier",
		fmt.Errorf("%q is not a valid tier", s))
}

// TierPopulation counts owners per non-maximum tier. The admission throttle
// needs it: the delay assigned to a tier depends on which higher tiers
// currently have members at all.
type TierPopulation struct {
	High   int
	Medium int
	Low    int
}
