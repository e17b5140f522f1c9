package queries_test

import (
	"context"
	"testing"
	"time"

	"hauling/internal/core/application/usecases/queries"
	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var feedNow = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)

func frozenFeedClock() time.Time { return feedNow }

func openJob(t *testing.T, createdAgo time.Duration, truckType fleet.TruckType, site kernel.GeoPoint) *job.Job {
	t.Helper()

	slot, err := job.NewTruckCategory(
		kernel.NewUUID(),
		[]job.TruckSpec{{Type: truckType}},
		map[fleet.TruckType]job.Rate{
			truckType: {Price: 95, CustomerRate: 120, PartnerRate: 25, Basis: job.PayHourly},
		},
		nil,
		nil,
	)
	require.NoError(t, err)

	window, err := kernel.NewTimeWindow(feedNow.Add(24*time.Hour), feedNow.Add(32*time.Hour))
	require.NoError(t, err)

	j, err := job.NewJob(
		kernel.NewUUID(),
		kernel.NewUUID(),
		window,
		job.Site{Address: "1 Quarry Rd", Point: site},
		job.Site{Address: "2 Fill Site Ln", Point: site},
		feedNow.Add(30*24*time.Hour),
		[]*job.TruckCategory{slot},
		feedNow.Add(-createdAgo),
	)
	require.NoError(t, err)
	return j
}

func TestGetVisibleJobsQueryHandler_FiltersByDelayRadiusAndFleet(t *testing.T) {
	base, err := kernel.NewGeoPoint(33.45, -112.07)
	require.NoError(t, err)
	farAway, err := kernel.NewGeoPoint(34.45, -112.07)
	require.NoError(t, err)

	ownerID := kernel.NewUUID()
	companyID := kernel.NewUUID()
	owner := fleet.OwnerProfile{
		ID:          ownerID,
		CompanyID:   companyID,
		Tier:        fleet.TierMedium,
		Verified:    true,
		Base:        base,
		JobRadiusKm: 50,
	}

	visible := openJob(t, 30*time.Minute, "10-yard", base)
	tooFresh := openJob(t, 5*time.Minute, "10-yard", base)
	wrongFleet := openJob(t, 30*time.Minute, "super-dump", base)
	outOfRange := openJob(t, 30*time.Minute, "10-yard", farAway)

	jobRepo := &MockJobRepository{}
	jobRepo.On("GetOpenJobs", mock.Anything).
		Return([]*job.Job{visible, tooFresh, wrongFleet, outOfRange}, nil)

	directory := &MockDirectoryService{}
	directory.On("GetOwnerProfile", mock.Anything, ownerID).Return(owner, nil)
	directory.On("ListOwnerTrucks", mock.Anything, companyID).Return([]fleet.Truck{
		{ID: kernel.NewUUID(), CompanyID: companyID, Type: "10-yard", Active: true},
	}, nil)
	directory.On("CountOwnersByTier", mock.Anything).
		Return(fleet.TierPopulation{High: 2, Medium: 5, Low: 1}, nil)

	handler := queries.NewGetVisibleJobsQueryHandler(jobRepo, directory, frozenFeedClock)
	query, err := queries.NewGetVisibleJobsQuery(ownerID)
	require.NoError(t, err)

	feed, err := handler.Handle(context.Background(), query)

	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.True(t, feed[0].ID.IsEqual(visible.ID()))
	assert.Len(t, feed[0].OpenSlots, 1)
	assert.Equal(t, visible.Window().Start(), feed[0].Window.Start())
}

func TestGetVisibleJobsQueryHandler_MaximumTierSeesFreshJobs(t *testing.T) {
	base, err := kernel.NewGeoPoint(33.45, -112.07)
	require.NoError(t, err)

	ownerID := kernel.NewUUID()
	companyID := kernel.NewUUID()
	owner := fleet.OwnerProfile{
		ID:          ownerID,
		CompanyID:   companyID,
		Tier:        fleet.TierMaximum,
		Verified:    true,
		Base:        base,
		JobRadiusKm: 50,
	}

	fresh := openJob(t, time.Minute, "10-yard", base)

	jobRepo := &MockJobRepository{}
	jobRepo.On("GetOpenJobs", mock.Anything).Return([]*job.Job{fresh}, nil)

	directory := &MockDirectoryService{}
	directory.On("GetOwnerProfile", mock.Anything, ownerID).Return(owner, nil)
	directory.On("ListOwnerTrucks", mock.Anything, companyID).Return([]fleet.Truck{
		{ID: kernel.NewUUID(), CompanyID: companyID, Type: "10-yard", Active: true},
	}, nil)
	directory.On("CountOwnersByTier", mock.Anything).
		Return(fleet.TierPopulation{High: 3}, nil)

	handler := queries.NewGetVisibleJobsQueryHandler(jobRepo, directory, frozenFeedClock)
	query, err := queries.NewGetVisibleJobsQuery(ownerID)
	require.NoError(t, err)

	feed, err := handler.Handle(context.Background(), query)

	require.NoError(t, err)
	require.Len(t, feed, 1)
}

func TestGetVisibleJobsQueryHandler_UnverifiedOwnerGetsEmptyFeed(t *testing.T) {
	base, err := kernel.NewGeoPoint(33.45, -112.07)
	require.NoError(t, err)

	ownerID := kernel.NewUUID()
	owner := fleet.OwnerProfile{
		ID:          ownerID,
		CompanyID:   kernel.NewUUID(),
		Tier:        fleet.TierHigh,
		Verified:    false,
		Base:        base,
		JobRadiusKm: 50,
	}

	jobRepo := &MockJobRepository{}
	directory := &MockDirectoryService{}
	directory.On("GetOwnerProfile", mock.Anything, ownerID).Return(owner, nil)

	handler := queries.NewGetVisibleJobsQueryHandler(jobRepo, directory, frozenFeedClock)
	query, err := queries.NewGetVisibleJobsQuery(ownerID)
	require.NoError(t, err)

	feed, err := handler.Handle(context.Background(), query)

	require.NoError(t, err)
	assert.Empty(t, feed)
	jobRepo.AssertNotCalled(t, "GetOpenJobs", mock.Anything)
	directory.AssertNotCalled(t, "ListOwnerTrucks", mock.Anything, mock.Anything)
}

func TestGetVisibleJobsQueryHandler_InvalidQuery(t *testing.T) {
	handler := queries.NewGetVisibleJobsQueryHandler(&MockJobRepository{}, &MockDirectoryService{}, frozenFeedClock)

	_, err := handler.Handle(context.Background(), queries.GetVisibleJobsQuery{})

	require.Error(t, err)
	assert.ErrorIs(t, err, queries.ErrGetVisibleJobsQueryIsNotConstructed)
}
