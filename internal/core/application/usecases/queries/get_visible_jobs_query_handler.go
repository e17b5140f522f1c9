package queries

import (
	"context"
	"time"

	"hauling/internal/core/domain/services"
	"hauling/internal/core/ports"
)

// Clock supplies the current time to query handlers. Tests substitute a
// fixed clock to pin visibility-delay arithmetic.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time { return time.Now() }

// GetVisibleJobsQueryHandler computes an owner's job feed. Unlike the
// read models that go straight to SQL, this query loads full aggregates:
// the visibility decision runs the tier-delay matrix, the radius check,
// and slot/truck compatibility, all of which live in the domain layer.
//
// Example:
//
//	handler := NewGetVisibleJobsQueryHandler(jobRepo, directory, SystemClock)
//	query, _ := NewGetVisibleJobsQuery(ownerID)
//
//	feed, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("failed to compute job feed: %v", err)
//	    return err
//	}
type GetVisibleJobsQueryHandler struct {
	jobRepository ports.JobRepository
	directory     ports.DirectoryService
	policy        services.VisibilityPolicy
	clock         Clock
}

// NewGetVisibleJobsQueryHandler creates a handler for the owner job feed.
func NewGetVisibleJobsQueryHandler(
	jobRepository ports.JobRepository,
	directory ports.DirectoryService,
	clock Clock,
) GetVisibleJobsQueryHandler {
	return GetVisibleJobsQueryHandler{
		jobRepository: jobRepository,
		directory:     directory,
		policy:        services.NewVisibilityPolicy(),
		clock:         clock,
	}
}

// Handle computes the feed: every open job whose tier delay has elapsed
// for this owner, whose load site is within the owner's job radius, and
// for which the owner holds a compatible active truck. Unverified owners
// get an empty feed; they could not schedule anything they saw.
func (h GetVisibleJobsQueryHandler) Handle(
	ctx context.Context,
	query GetVisibleJobsQuery,
) ([]GetVisibleJobsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	feed := make([]GetVisibleJobsQueryResponse, 0)

	owner, err := h.directory.GetOwnerProfile(ctx, query.OwnerID())
	if err != nil {
		return nil, err
	}
	if !owner.Verified {
		return feed, nil
	}

	trucks, err := h.directory.ListOwnerTrucks(ctx, owner.CompanyID)
	if err != nil {
		return nil, err
	}

	population, err := h.directory.CountOwnersByTier(ctx)
	if err != nil {
		return nil, err
	}

	openJobs, err := h.jobRepository.GetOpenJobs(ctx)
	if err != nil {
		return nil, err
	}

	now := h.clock()
	for _, j := range openJobs {
		if !h.policy.IsVisible(j, owner, trucks, population, now) {
			continue
		}

		slots := make([]OpenSlotResponse, 0)
		for _, slot := range j.OpenSlots() {
			slots = append(slots, OpenSlotResponse{
				ID:       slot.ID(),
				Accepted: slot.Accepted(),
				Rates:    slot.Rates(),
			})
		}

		feed = append(feed, GetVisibleJobsQueryResponse{
			ID:         j.ID(),
			Window:     j.Window(),
			LoadSite:   j.LoadSite(),
			DumpSite:   j.DumpSite(),
			PaymentDue: j.PaymentDue(),
			OpenSlots:  slots,
		})
	}

	return feed, nil
}
