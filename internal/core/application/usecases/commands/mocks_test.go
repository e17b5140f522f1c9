package commands_test

import (
	"context"
	"time"

	"hauling/internal/core/application/usecases/commands"
	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

// Shared testify mocks for the command handler tests. One set serves every
// handler; each test wires only the calls it expects.

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

type MockScheduledJobRepository struct{ mock.Mock }

func (m *MockScheduledJobRepository) Add(ctx context.Context, aggregate *schedule.ScheduledJob) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockScheduledJobRepository) Update(ctx context.Context, aggregate *schedule.ScheduledJob) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockScheduledJobRepository) Remove(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockScheduledJobRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledJob, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.ScheduledJob), args.Error(1)
}

func (m *MockScheduledJobRepository) GetByJobAndOwner(ctx context.Context, jobID, ownerID kernel.UUID) (*schedule.ScheduledJob, error) {
	args := m.Called(ctx, jobID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.ScheduledJob), args.Error(1)
}

func (m *MockScheduledJobRepository) GetAllByJob(ctx context.Context, jobID kernel.UUID) ([]*schedule.ScheduledJob, error) {
	args := m.Called(ctx, jobID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.ScheduledJob), args.Error(1)
}

func (m *MockScheduledJobRepository) GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*schedule.ScheduledJob, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*schedule.ScheduledJob), args.Error(1)
}

func (m *MockScheduledJobRepository) GetByAssignation(ctx context.Context, assignationID kernel.UUID) (*schedule.ScheduledJob, error) {
	args := m.Called(ctx, assignationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.ScheduledJob), args.Error(1)
}

func (m *MockScheduledJobRepository) HasOpenOverlapForDriver(ctx context.Context, driverID kernel.UUID, window kernel.TimeWindow) (bool, error) {
	args := m.Called(ctx, driverID, window)
	return args.Bool(0), args.Error(1)
}

func (m *MockScheduledJobRepository) HasOpenOverlapForTruck(ctx context.Context, truckID kernel.UUID, window kernel.TimeWindow) (bool, error) {
	args := m.Called(ctx, truckID, window)
	return args.Bool(0), args.Error(1)
}

type MockSwitchRequestRepository struct{ mock.Mock }

func (m *MockSwitchRequestRepository) Add(ctx context.Context, request *schedule.SwitchRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockSwitchRequestRepository) Update(ctx context.Context, request *schedule.SwitchRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockSwitchRequestRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.SwitchRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.SwitchRequest), args.Error(1)
}

func (m *MockSwitchRequestRepository) GetPendingByAssignation(ctx context.Context, assignationID kernel.UUID) (*schedule.SwitchRequest, error) {
	args := m.Called(ctx, assignationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*schedule.SwitchRequest), args.Error(1)
}

// MockUoW satisfies every unit of work composition the handlers use.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) JobRepository() ports.JobRepository {
	args := m.Called()
	return args.Get(0).(ports.JobRepository)
}

func (m *MockUoW) ScheduledJobRepository() ports.ScheduledJobRepository {
	args := m.Called()
	return args.Get(0).(ports.ScheduledJobRepository)
}

func (m *MockUoW) SwitchRequestRepository() ports.SwitchRequestRepository {
	args := m.Called()
	return args.Get(0).(ports.SwitchRequestRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockJobUoWFactory struct{ mock.Mock }

func (m *MockJobUoWFactory) Create() commands.JobUoW {
	args := m.Called()
	return args.Get(0).(commands.JobUoW)
}

type MockScheduleUoWFactory struct{ mock.Mock }

func (m *MockScheduleUoWFactory) Create() commands.ScheduleUoW {
	args := m.Called()
	return args.Get(0).(commands.ScheduleUoW)
}

type MockSwitchUoWFactory struct{ mock.Mock }

func (m *MockSwitchUoWFactory) Create() commands.SwitchUoW {
	args := m.Called()
	return args.Get(0).(commands.SwitchUoW)
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

type MockNotificationService struct{ mock.Mock }

func (m *MockNotificationService) Notify(ctx context.Context, notification ports.Notification) {
	m.Called(ctx, notification)
}

type MockEmailService struct{ mock.Mock }

func (m *MockEmailService) Send(ctx context.Context, recipient kernel.UUID, template ports.EmailTemplate, data map[string]string) {
	m.Called(ctx, recipient, template, data)
}

type MockLoadsService struct{ mock.Mock }

func (m *MockLoadsService) TotalTravels(ctx context.Context, driverID, jobID kernel.UUID) (int, error) {
	args := m.Called(ctx, driverID, jobID)
	return args.Int(0), args.Error(1)
}

type MockInvoiceService struct{ mock.Mock }

func (m *MockInvoiceService) GenerateOwnerInvoice(ctx context.Context, scheduledJobID kernel.UUID) error {
	args := m.Called(ctx, scheduledJobID)
	return args.Error(0)
}

func (m *MockInvoiceService) GenerateDriverInvoice(ctx context.Context, assignationID kernel.UUID) error {
	args := m.Called(ctx, assignationID)
	return args.Error(0)
}
