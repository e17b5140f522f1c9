package services

import (
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
)

// VisibilityPolicy is a domain service deciding when a new job is shown to
// a fleet owner. Owners are throttled by priority tier so that
// higher-tier fleets get the first look at fresh work.
//
// The delay matrix depends on which higher tiers currently have members:
//   - MAXIMUM always sees jobs immediately
//   - with any HIGH-tier owners present: HIGH waits 10 min, MEDIUM 25,
//     LOW 40
//   - with no HIGH but some MEDIUM owners: MEDIUM waits 10 min, LOW 25
//   - with neither: everyone waits 10 min
//
// Beyond the delay, a job is visible only when its load site lies within
// the owner's configured job radius and the owner holds at least one
// truck structurally compatible with a still-open slot.
type VisibilityPolicy struct{}

// NewVisibilityPolicy creates a new VisibilityPolicy instance.
func NewVisibilityPolicy() VisibilityPolicy {
	return VisibilityPolicy{}
}

// Delay returns how long after a job's creation the given tier must wait
// before the job is shown, given the current tier population.
func (v VisibilityPolicy) Delay(tier fleet.PriorityTier, population fleet.TierPopulation) time.Duration {
	if tier == fleet.TierMaximum {
		return 0
	}

	switch {
	case population.High > 0:
		switch tier {
		case fleet.TierHigh:
			return 10 * time.Minute
		case fleet.TierMedium:
			return 25 * time.Minute
		default:
			return 40 * time.Minute
		}
	case population.Medium > 0:
		if tier == fleet.TierMedium {
			return 10 * time.Minute
		}
		return 25 * time.Minute
	default:
		return 10 * time.Minute
	}
}

// IsVisible reports whether the job should be shown to the owner right
// now: the tier delay has elapsed, the load site is within the owner's
// job radius, and one of the owner's trucks fits an open slot.
func (v VisibilityPolicy) IsVisible(
	j *job.Job,
	owner fleet.OwnerProfile,
	trucks []fleet.Truck,
	population fleet.TierPopulation,
	now time.Time,
) bool {
	if now.Sub(j.CreatedAt()) < v.Delay(owner.Tier, population) {
		return false
	}
	if owner.Base.DistanceKm(j.LoadSite().Point) > owner.JobRadiusKm {
		return false
	}
	return v.hasCompatibleTruck(j, trucks)
}

func (v VisibilityPolicy) hasCompatibleTruck(j *job.Job, trucks []fleet.Truck) bool {
	for _, slot := range j.OpenSlots() {
		for _, truck := range trucks {
			if truck.Active && slot.Accepts(truck) {
				return true
			}
		}
	}
	return false
}
