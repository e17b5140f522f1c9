package queries_test

import (
	"context"
	"testing"
	"time"

	"hauling/internal/adapters/out/postgres/jobrepo"
	"hauling/internal/adapters/out/postgres/schedrepo"
	"hauling/internal/core/application/usecases/queries"
	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type mockAggregateTracker struct{}

func (m *mockAggregateTracker) TrackAggregate(_ kernel.UUID, _ any) {}

type GetOwnerScheduleQueryHandlerTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	handler   queries.GetOwnerScheduleQueryHandler
	jobRepo   *jobrepo.GormJobRepository
	schedRepo *schedrepo.GormScheduledJobRepository
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(
		&jobrepo.JobDTO{}, &jobrepo.SlotDTO{},
		&schedrepo.ScheduledJobDTO{}, &schedrepo.AssignationDTO{}, &schedrepo.SwitchRequestDTO{},
	)
	suite.Require().NoError(err)

	suite.handler = queries.NewGetOwnerScheduleQueryHandler(db)
	suite.jobRepo = jobrepo.NewGormJobRepository(db, &mockAggregateTracker{})
	suite.schedRepo = schedrepo.NewGormScheduledJobRepository(db, &mockAggregateTracker{})
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE jobs, job_slots, scheduled_jobs, assignations, switch_requests CASCADE").Error
	suite.Require().NoError(err)
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) seedJob(start, end time.Time) *job.Job {
	slot, err := job.NewTruckCategory(
		kernel.NewUUID(),
		[]job.TruckSpec{{Type: "10-yard"}},
		map[fleet.TruckType]job.Rate{
			"10-yard": {Price: 95, CustomerRate: 120, PartnerRate: 25, Basis: job.PayHourly},
		},
		nil,
		nil,
	)
	suite.Require().NoError(err)

	window, err := kernel.NewTimeWindow(start, end)
	suite.Require().NoError(err)
	point, err := kernel.NewGeoPoint(33.45, -112.07)
	suite.Require().NoError(err)

	j, err := job.NewJob(
		kernel.NewUUID(),
		kernel.NewUUID(),
		window,
		job.Site{Address: "1 Quarry Rd", Point: point},
		job.Site{Address: "2 Fill Site Ln", Point: point},
		end.Add(30*24*time.Hour),
		[]*job.TruckCategory{slot},
		start.Add(-48*time.Hour),
	)
	suite.Require().NoError(err)

	err = suite.jobRepo.Add(context.Background(), j)
	suite.Require().NoError(err)
	return j
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) seedSchedule(
	j *job.Job, ownerID kernel.UUID,
) (*schedule.ScheduledJob, *schedule.Assignation) {
	sched, err := schedule.NewScheduledJob(kernel.NewUUID(), j.ID(), ownerID, j.PaymentDue())
	suite.Require().NoError(err)

	assignation, err := schedule.NewAssignation(
		kernel.NewUUID(),
		kernel.NewUUID(),
		kernel.NewUUID(),
		j.Slots()[0].ID(),
		"10-yard",
		job.Rate{Price: 95, CustomerRate: 120, PartnerRate: 25, Basis: job.PayHourly},
	)
	suite.Require().NoError(err)
	suite.Require().NoError(sched.AddAssignation(assignation))

	err = suite.schedRepo.Add(context.Background(), sched)
	suite.Require().NoError(err)
	return sched, assignation
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) TestHandle_EmptySchedule_ReturnsEmptySlice() {
	query, err := queries.NewGetOwnerScheduleQuery(kernel.NewUUID())
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.NotNil(result)
	suite.Empty(result)
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) TestHandle_ReturnsOwnBookingsOnly() {
	start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
	ownJob := suite.seedJob(start, start.Add(8*time.Hour))
	otherJob := suite.seedJob(start.Add(48*time.Hour), start.Add(56*time.Hour))

	ownerID := kernel.NewUUID()
	sched, assignation := suite.seedSchedule(ownJob, ownerID)
	suite.seedSchedule(otherJob, kernel.NewUUID())

	query, err := queries.NewGetOwnerScheduleQuery(ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 1)
	suite.True(result[0].ScheduledJobID.IsEqual(sched.ID()))
	suite.True(result[0].JobID.IsEqual(ownJob.ID()))
	suite.True(result[0].AssignationID.IsEqual(assignation.ID()))
	suite.Equal("10-yard", result[0].TruckType)
	suite.InDelta(95.0, result[0].RatePrice, 0.001)
	suite.Equal("hourly", result[0].RateBasis)
	suite.True(result[0].WindowStart.Equal(ownJob.Window().Start()))
	suite.True(result[0].WindowEnd.Equal(ownJob.Window().End()))
	suite.Nil(result[0].StartedAt)
	suite.Nil(result[0].FinishedAt)
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) TestHandle_SortsByWindowStart() {
	start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
	laterJob := suite.seedJob(start.Add(72*time.Hour), start.Add(80*time.Hour))
	earlierJob := suite.seedJob(start, start.Add(8*time.Hour))

	ownerID := kernel.NewUUID()
	suite.seedSchedule(laterJob, ownerID)
	suite.seedSchedule(earlierJob, ownerID)

	query, err := queries.NewGetOwnerScheduleQuery(ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Require().Len(result, 2)
	suite.True(result[0].JobID.IsEqual(earlierJob.ID()))
	suite.True(result[1].JobID.IsEqual(laterJob.ID()))
}

func (suite *GetOwnerScheduleQueryHandlerTestSuite) TestHandle_ExcludesCanceledSchedules() {
	start := time.Now().UTC().Truncate(time.Second).Add(24 * time.Hour)
	j := suite.seedJob(start, start.Add(8*time.Hour))

	ownerID := kernel.NewUUID()
	sched, _ := suite.seedSchedule(j, ownerID)
	suite.Require().NoError(sched.CancelByContractor())
	suite.Require().NoError(suite.schedRepo.Update(context.Background(), sched))

	query, err := queries.NewGetOwnerScheduleQuery(ownerID)
	suite.Require().NoError(err)

	result, err := suite.handler.Handle(context.Background(), query)

	suite.Require().NoError(err)
	suite.Empty(result)
}

func TestGetOwnerScheduleQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetOwnerScheduleQueryHandlerTestSuite))
}
