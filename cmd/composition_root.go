package cmd

import (
	"log/slog"

	"gorm.io/gorm"

	httpin "hauling/internal/adapters/in/http"
	"hauling/internal/adapters/out/billing"
	"hauling/internal/adapters/out/directory"
	"hauling/internal/adapters/out/geoloads"
	"hauling/internal/adapters/out/notify"
	"hauling/internal/adapters/out/postgres"
	"hauling/internal/adapters/out/postgres/jobrepo"
	"hauling/internal/core/application/usecases/commands"
	"hauling/internal/core/application/usecases/queries"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"
	"hauling/internal/jobs"
)

// CompositionRoot wires adapters to use case handlers. Each Create method
// builds a fresh handler over the shared infrastructure.
type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory
	directory  ports.DirectoryService
	loads      ports.LoadsService
	invoices   ports.InvoiceService
	notifier   *notify.Dispatcher
	logger     *slog.Logger
}

// NewCompositionRoot builds the shared infrastructure from configuration.
func NewCompositionRoot(config Config, gormDB *gorm.DB, logger *slog.Logger) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		directory:  directory.NewClient(config.DirectoryServiceURL, config.DirectoryServiceAPIKey),
		loads:      geoloads.NewClient(config.GeoServiceURL, config.GeoServiceAPIKey),
		invoices:   billing.NewClient(config.BillingServiceURL, config.BillingServiceAPIKey),
		notifier: notify.NewDispatcher(
			notify.NewHTTPGateway(config.MessagingServiceURL, config.MessagingServiceAPIKey),
			logger,
		),
		logger: logger,
	}
}

func (c *CompositionRoot) CreateCreateJobCommandHandler() commands.CreateJobCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateJobCommandHandler(f, c.directory, commands.SystemClock)
}

func (c *CompositionRoot) CreateSetJobHoldCommandHandler() commands.SetJobHoldCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewSetJobHoldCommandHandler(f)
}

func (c *CompositionRoot) CreateCancelJobCommandHandler() commands.CancelJobCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelJobCommandHandler(f, c.notifier, c.notifier, commands.SystemClock)
}

func (c *CompositionRoot) CreateScheduleTrucksCommandHandler() commands.ScheduleTrucksCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewScheduleTrucksCommandHandler(f, c.directory, c.notifier)
}

func (c *CompositionRoot) CreateCancelScheduledJobCommandHandler() commands.CancelScheduledJobCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCancelScheduledJobCommandHandler(f, c.notifier, commands.SystemClock)
}

func (c *CompositionRoot) CreateClockInCommandHandler() commands.ClockInCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClockInCommandHandler(f, commands.SystemClock)
}

func (c *CompositionRoot) CreateClockOutCommandHandler() commands.ClockOutCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewClockOutCommandHandler(f, c.loads, c.invoices, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateRaiseDisputeCommandHandler() commands.RaiseDisputeCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRaiseDisputeCommandHandler(
		f, c.directory, c.notifier, c.notifier, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateReviewDisputeCommandHandler() commands.ReviewDisputeCommandHandler {
	var f commands.ScheduleUoWFactory = FuncScheduleUoWFactory(func() commands.ScheduleUoW {
		return c.uowFactory.Create()
	})
	return commands.NewReviewDisputeCommandHandler(f)
}

func (c *CompositionRoot) CreateResolveDisputeCommandHandler() commands.ResolveDisputeCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewResolveDisputeCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRequestSwitchCommandHandler() commands.RequestSwitchCommandHandler {
	var f commands.SwitchUoWFactory = FuncSwitchUoWFactory(func() commands.SwitchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRequestSwitchCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateRespondSwitchCommandHandler() commands.RespondSwitchCommandHandler {
	var f commands.SwitchUoWFactory = FuncSwitchUoWFactory(func() commands.SwitchUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRespondSwitchCommandHandler(f, c.notifier)
}

func (c *CompositionRoot) CreateExpireUnscheduledJobsCommandHandler() commands.ExpireUnscheduledJobsCommandHandler {
	var f commands.JobUoWFactory = FuncJobUoWFactory(func() commands.JobUoW {
		return c.uowFactory.Create()
	})
	return commands.NewExpireUnscheduledJobsCommandHandler(f, c.notifier, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateNotifyUnstartedJobsCommandHandler() commands.NotifyUnstartedJobsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewNotifyUnstartedJobsCommandHandler(f, c.notifier, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateNotifyEndingAssignmentsCommandHandler() commands.NotifyEndingAssignmentsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewNotifyEndingAssignmentsCommandHandler(f, c.notifier, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateForceFinishStaleJobsCommandHandler() commands.ForceFinishStaleJobsCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewForceFinishStaleJobsCommandHandler(f, c.notifier, commands.SystemClock, c.logger)
}

func (c *CompositionRoot) CreateGetVisibleJobsQueryHandler() queries.GetVisibleJobsQueryHandler {
	jobRepository := jobrepo.NewGormJobRepository(c.gormDB, noopTracker{})
	return queries.NewGetVisibleJobsQueryHandler(jobRepository, c.directory, queries.SystemClock)
}

func (c *CompositionRoot) CreateGetOwnerScheduleQueryHandler() queries.GetOwnerScheduleQueryHandler {
	return queries.NewGetOwnerScheduleQueryHandler(c.gormDB)
}

// CreateHTTPServer wires every endpoint handler into the HTTP server.
func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	return httpin.NewServer(
		c.CreateCreateJobCommandHandler(),
		c.CreateSetJobHoldCommandHandler(),
		c.CreateCancelJobCommandHandler(),
		c.CreateScheduleTrucksCommandHandler(),
		c.CreateCancelScheduledJobCommandHandler(),
		c.CreateClockInCommandHandler(),
		c.CreateClockOutCommandHandler(),
		c.CreateRaiseDisputeCommandHandler(),
		c.CreateReviewDisputeCommandHandler(),
		c.CreateResolveDisputeCommandHandler(),
		c.CreateRequestSwitchCommandHandler(),
		c.CreateRespondSwitchCommandHandler(),
		c.CreateGetVisibleJobsQueryHandler(),
		c.CreateGetOwnerScheduleQueryHandler(),
	)
}

// CreateJobManager wires the four time-triggered sweeps.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		c.CreateExpireUnscheduledJobsCommandHandler(),
		c.CreateNotifyUnstartedJobsCommandHandler(),
		c.CreateNotifyEndingAssignmentsCommandHandler(),
		c.CreateForceFinishStaleJobsCommandHandler(),
		c.logger,
	)
}

// noopTracker satisfies the repository tracker for read-only repositories
// created outside a unit of work.
type noopTracker struct{}

func (noopTracker) TrackAggregate(kernel.UUID, any) {}

type FuncJobUoWFactory func() commands.JobUoW

func (f FuncJobUoWFactory) Create() commands.JobUoW {
	return f()
}

type FuncScheduleUoWFactory func() commands.ScheduleUoW

func (f FuncScheduleUoWFactory) Create() commands.ScheduleUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}

type FuncSwitchUoWFactory func() commands.SwitchUoW

func (f FuncSwitchUoWFactory) Create() commands.SwitchUoW {
	return f()
}
