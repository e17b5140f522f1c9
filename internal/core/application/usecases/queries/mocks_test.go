package queries_test

import (
	"context"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/mock"
)

// Testify mocks for the visible-jobs query test. The owner schedule query
// reads raw SQL and is covered by the integration suite instead.

type MockJobRepository struct{ mock.Mock }

func (m *MockJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetOpenJobs(ctx context.Context) ([]*job.Job, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetUnscheduledPastEnd(ctx context.Context, now time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetScheduledUnstarted(ctx context.Context, now time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetEndingBetween(ctx context.Context, from, to time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

func (m *MockJobRepository) GetOverdue(ctx context.Context, cutoff time.Time) ([]*job.Job, error) {
	args := m.Called(ctx, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*job.Job), args.Error(1)
}

type MockDirectoryService struct{ mock.Mock }

func (m *MockDirectoryService) GetDriver(ctx context.Context, id kernel.UUID) (fleet.Driver, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(fleet.Driver), args.Error(1)
}

func (m *MockDirectoryService) GetTruck(ctx context.Context, id kernel.UUID) (fleet.Truck, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(fleet.Truck), args.Error(1)
}

func (m *MockDirectoryService) ListOwnerTrucks(ctx context.Context, companyID kernel.UUID) ([]fleet.Truck, error) {
	args := m.Called(ctx, companyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Truck), args.Error(1)
}

func (m *MockDirectoryService) GetOwnerProfile(ctx context.Context, ownerID kernel.UUID) (fleet.OwnerProfile, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(fleet.OwnerProfile), args.Error(1)
}

func (m *MockDirectoryService) IsVerifiedContractor(ctx context.Context, contractorID kernel.UUID) (bool, error) {
	args := m.Called(ctx, contractorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockDirectoryService) CountOwnersByTier(ctx context.Context) (fleet.TierPopulation, error) {
	args := m.Called(ctx)
	return args.Get(0).(fleet.TierPopulation), args.Error(1)
}

func (m *MockDirectoryService) ListAdministrators(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}
