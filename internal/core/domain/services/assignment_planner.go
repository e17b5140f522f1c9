package services

import (
	"fmt"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/pkg/errs"
)

// Candidate is one driver/truck pair a fleet owner offers for a job.
type Candidate struct {
	Driver fleet.Driver
	Truck  fleet.Truck
}

// AssignmentPlanner is a domain service that matches an owner's candidate
// pairs against a job's open requirement slots and produces the assignation
// records for the match.
//
// Business rules:
//   - Matching is all-or-nothing: either every candidate gets a slot or
//     nothing is scheduled
//   - Pinned slots are filled first; a slot pinned to a specific truck is
//     claimed by that exact truck when it is among the candidates
//   - A candidate fits a slot only if the slot accepts the truck's type
//     and subtype, and for pinned slots only trucks of the preferred
//     owning company qualify
//   - Each assignation snapshots the slot's rate for the truck's type at
//     matching time
//
// On success the matched slots are marked scheduled on the job and the new
// assignation records are returned; the caller persists both and attaches
// the assignations to the owner's scheduled job.
type AssignmentPlanner struct{}

// NewAssignmentPlanner creates a new AssignmentPlanner instance.
func NewAssignmentPlanner() AssignmentPlanner {
	return AssignmentPlanner{}
}

// Plan matches candidates to the job's open slots and, when every
// candidate found a slot, commits the match: slots are marked scheduled
// and one assignation per candidate is returned.
//
// Returns errs.ErrTrucksUnassignable when no complete match exists. The
// job is left untouched on any error.
func (p AssignmentPlanner) Plan(j *job.Job, candidates []Candidate) ([]*schedule.Assignation, error) {
	if err := j.Validate(); err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("job %s: %w", j.ID(), errs.ErrNoAssignations)
	}

	matches, err := p.match(j.OpenSlots(), candidates)
	if err != nil {
		return nil, err
	}

	assignations := make([]*schedule.Assignation, 0, len(matches))
	for _, m := range matches {
		rate, err := m.slot.RateFor(m.candidate.Truck.Type)
		if err != nil {
			return nil, err
		}
		a, err := schedule.NewAssignation(
			kernel.NewUUID(),
			m.candidate.Driver.ID,
			m.candidate.Truck.ID,
			m.slot.ID(),
			m.candidate.Truck.Type,
			rate,
		)
		if err != nil {
			return nil, err
		}
		assignations = append(assignations, a)
	}

	for _, m := range matches {
		if err := j.ScheduleSlot(m.slot.ID()); err != nil {
			return nil, err
		}
	}
	return assignations, nil
}

type plannedMatch struct {
	slot      *job.TruckCategory
	candidate Candidate
}

// match pairs candidates with slots without mutating anything. Pinned
// slots claim their exact preferred truck first, then the remaining
// candidates fill the remaining slots greedily with pinned slots tried
// before open ones.
func (p AssignmentPlanner) match(slots []*job.TruckCategory, candidates []Candidate) ([]plannedMatch, error) {
	taken := make(map[kernel.UUID]bool, len(slots))
	matched := make([]bool, len(candidates))
	var matches []plannedMatch

	// Exact pins first, so a truck the contractor asked for by id never
	// loses its slot to another candidate.
	for _, slot := range slots {
		if slot.PreferredTruckID() == nil {
			continue
		}
		for i, c := range candidates {
			if matched[i] || !c.Truck.ID.IsEqual(*slot.PreferredTruckID()) {
				continue
			}
			if !slot.Accepts(c.Truck) {
				break
			}
			taken[slot.ID()] = true
			matched[i] = true
			matches = append(matches, plannedMatch{slot: slot, candidate: c})
			break
		}
	}

	ordered := pinnedFirst(slots)
	for i, c := range candidates {
		if matched[i] {
			continue
		}
		slot := p.findSlot(ordered, taken, c.Truck)
		if slot == nil {
			return nil, fmt.Errorf("truck %s: %w", c.Truck.ID, errs.ErrTrucksUnassignable)
		}
		taken[slot.ID()] = true
		matched[i] = true
		matches = append(matches, plannedMatch{slot: slot, candidate: c})
	}
	return matches, nil
}

func (p AssignmentPlanner) findSlot(
	slots []*job.TruckCategory, taken map[kernel.UUID]bool, truck fleet.Truck,
) *job.TruckCategory {
	for _, slot := range slots {
		if taken[slot.ID()] {
			continue
		}
		if slot.Accepts(truck) {
			return slot
		}
	}
	return nil
}

func pinnedFirst(slots []*job.TruckCategory) []*job.TruckCategory {
	ordered := make([]*job.TruckCategory, 0, len(slots))
	for _, s := range slots {
		if s.IsPinned() {
			ordered = append(ordered, s)
		}
	}
	for _, s := range slots {
		if !s.IsPinned() {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
