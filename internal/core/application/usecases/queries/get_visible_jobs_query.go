package queries

import (
	"errors"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var (
	ErrGetVisibleJobsQueryIsNotConstructed = errors.New(
		"GetVisibleJobsQuery must be created via NewGetVisibleJobsQuery constructor",
	)
)

// GetVisibleJobsQuery retrieves the open jobs an owner is allowed to see
// right now. The result is throttled by priority tier, restricted to the
// owner's job radius, and limited to jobs with an open slot one of the
// owner's trucks fits.
//
// Example:
//
//	query, err := NewGetVisibleJobsQuery(ownerID)
//	if err != nil {
//	    return err
//	}
//
//	jobs, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get visible jobs: %w", err)
//	}
//
//	fmt.Printf("%d jobs available\n", len(jobs))
type GetVisibleJobsQuery struct {
	guard   guard.ConstructorGuard
	ownerID kernel.UUID
}

// NewGetVisibleJobsQuery creates a query for one owner's job feed.
func NewGetVisibleJobsQuery(ownerID kernel.UUID) (GetVisibleJobsQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetVisibleJobsQuery{}, err
	}

	return GetVisibleJobsQuery{
		guard:   guard.NewConstructorGuard(),
		ownerID: ownerID,
	}, nil
}

// OwnerID returns the owner the feed is computed for.
func (q GetVisibleJobsQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Validate ensures the query was created through the constructor.
func (q GetVisibleJobsQuery) Validate() error {
	return q.guard.Validate(ErrGetVisibleJobsQueryIsNotConstructed)
}

// GetVisibleJobsQueryResponse is one job in an owner's feed, carrying
// everything the owner needs to decide on a schedule request.
type GetVisibleJobsQueryResponse struct {
	ID         kernel.UUID
	Window     kernel.TimeWindow
	LoadSite   job.Site
	DumpSite   job.Site
	PaymentDue time.Time
	OpenSlots  []OpenSlotResponse
}

// OpenSlotResponse describes one still-open requirement slot.
type OpenSlotResponse struct {
	ID       kernel.UUID
	Accepted []job.TruckSpec
	Rates    map[fleet.TruckType]job.Rate
}
