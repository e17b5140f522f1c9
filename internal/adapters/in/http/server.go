package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"hauling/internal/core/application/usecases/commands"
	"hauling/internal/core/application/usecases/queries"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/pkg/errs"
)

// Server exposes the job lifecycle over HTTP. It coordinates between HTTP
// handlers and application use cases: every endpoint binds its input, builds
// a command or query through its constructor, and delegates to the handler.
type Server struct {
	// Command handlers
	createJobHandler          commands.CreateJobCommandHandler
	setJobHoldHandler         commands.SetJobHoldCommandHandler
	cancelJobHandler          commands.CancelJobCommandHandler
	scheduleTrucksHandler     commands.ScheduleTrucksCommandHandler
	cancelScheduledJobHandler commands.CancelScheduledJobCommandHandler
	clockInHandler            commands.ClockInCommandHandler
	clockOutHandler           commands.ClockOutCommandHandler
	raiseDisputeHandler       commands.RaiseDisputeCommandHandler
	reviewDisputeHandler      commands.ReviewDisputeCommandHandler
	resolveDisputeHandler     commands.ResolveDisputeCommandHandler
	requestSwitchHandler      commands.RequestSwitchCommandHandler
	respondSwitchHandler      commands.RespondSwitchCommandHandler

	// Query handlers
	getVisibleJobsHandler   queries.GetVisibleJobsQueryHandler
	getOwnerScheduleHandler queries.GetOwnerScheduleQueryHandler
}

// NewServer creates a new HTTP server with the required command and query
// handlers.
func NewServer(
	createJobHandler commands.CreateJobCommandHandler,
	setJobHoldHandler commands.SetJobHoldCommandHandler,
	cancelJobHandler commands.CancelJobCommandHandler,
	scheduleTrucksHandler commands.ScheduleTrucksCommandHandler,
	cancelScheduledJobHandler commands.CancelScheduledJobCommandHandler,
	clockInHandler commands.ClockInCommandHandler,
	clockOutHandler commands.ClockOutCommandHandler,
	raiseDisputeHandler commands.RaiseDisputeCommandHandler,
	reviewDisputeHandler commands.ReviewDisputeCommandHandler,
	resolveDisputeHandler commands.ResolveDisputeCommandHandler,
	requestSwitchHandler commands.RequestSwitchCommandHandler,
	respondSwitchHandler commands.RespondSwitchCommandHandler,
	getVisibleJobsHandler queries.GetVisibleJobsQueryHandler,
	getOwnerScheduleHandler queries.GetOwnerScheduleQueryHandler,
) *Server {
	return &Server{
		createJobHandler:          createJobHandler,
		setJobHoldHandler:         setJobHoldHandler,
		cancelJobHandler:          cancelJobHandler,
		scheduleTrucksHandler:     scheduleTrucksHandler,
		cancelScheduledJobHandler: cancelScheduledJobHandler,
		clockInHandler:            clockInHandler,
		clockOutHandler:           clockOutHandler,
		raiseDisputeHandler:       raiseDisputeHandler,
		reviewDisputeHandler:      reviewDisputeHandler,
		resolveDisputeHandler:     resolveDisputeHandler,
		requestSwitchHandler:      requestSwitchHandler,
		respondSwitchHandler:      respondSwitchHandler,
		getVisibleJobsHandler:     getVisibleJobsHandler,
		getOwnerScheduleHandler:   getOwnerScheduleHandler,
	}
}

// RegisterRoutes mounts every endpoint on the given echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/jobs", s.CreateJob)
	api.POST("/jobs/:jobID/hold", s.SetJobHold)
	api.POST("/jobs/:jobID/cancel", s.CancelJob)
	api.POST("/jobs/:jobID/schedules", s.ScheduleTrucks)

	api.POST("/schedules/:scheduledJobID/cancel", s.CancelScheduledJob)
	api.POST("/schedules/:scheduledJobID/disputes", s.RaiseDispute)
	api.POST("/schedules/:scheduledJobID/disputes/review", s.ReviewDispute)
	api.POST("/schedules/:scheduledJobID/disputes/resolve", s.ResolveDispute)

	api.POST("/assignations/:assignationID/clock-in", s.ClockIn)
	api.POST("/assignations/:assignationID/clock-out", s.ClockOut)
	api.POST("/assignations/:assignationID/switch-requests", s.RequestSwitch)
	api.POST("/switch-requests/:requestID/response", s.RespondSwitch)

	api.GET("/owners/:ownerID/jobs", s.GetVisibleJobs)
	api.GET("/owners/:ownerID/schedule", s.GetOwnerSchedule)
}

// CreateJob handles POST /api/v1/jobs - posts a new hauling job.
func (s *Server) CreateJob(ctx echo.Context) error {
	var newJob NewJob
	if err := ctx.Bind(&newJob); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	contractorID, err := kernel.UUIDFromString(newJob.ContractorID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid contractor id: " + err.Error(),
		})
	}

	window, err := kernel.NewTimeWindow(newJob.WindowStart, newJob.WindowEnd)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid work window: " + err.Error(),
		})
	}

	loadSite, err := siteFromBody(newJob.LoadSite)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid load site: " + err.Error(),
		})
	}

	dumpSite, err := siteFromBody(newJob.DumpSite)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dump site: " + err.Error(),
		})
	}

	slots, err := slotsFromBody(newJob.Slots)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid slot: " + err.Error(),
		})
	}

	jobID := kernel.NewUUID()

	cmd, err := commands.NewCreateJobCommand(
		jobID, contractorID, window, loadSite, dumpSite, newJob.PaymentDue, slots)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid job data: " + err.Error(),
		})
	}

	if handleErr := s.createJobHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to create job")
	}

	return ctx.JSON(http.StatusCreated, JobCreated{ID: jobID.Bytes()})
}

// SetJobHold handles POST /api/v1/jobs/:jobID/hold - pauses or resumes a
// job's visibility and scheduling.
func (s *Server) SetJobHold(ctx echo.Context) error {
	jobID, ok := s.pathUUID(ctx, "jobID")
	if !ok {
		return nil
	}

	var hold JobHold
	if err := ctx.Bind(&hold); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewSetJobHoldCommand(jobID, hold.OnHold)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid hold data: " + err.Error(),
		})
	}

	if handleErr := s.setJobHoldHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to change job hold")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// CancelJob handles POST /api/v1/jobs/:jobID/cancel - cancels a job on the
// contractor's behalf.
func (s *Server) CancelJob(ctx echo.Context) error {
	jobID, ok := s.pathUUID(ctx, "jobID")
	if !ok {
		return nil
	}

	cmd, err := commands.NewCancelJobCommand(jobID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid cancel data: " + err.Error(),
		})
	}

	if handleErr := s.cancelJobHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to cancel job")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ScheduleTrucks handles POST /api/v1/jobs/:jobID/schedules - an owner
// offers driver/truck pairs for a job's open slots.
func (s *Server) ScheduleTrucks(ctx echo.Context) error {
	jobID, ok := s.pathUUID(ctx, "jobID")
	if !ok {
		return nil
	}

	var offer ScheduleTrucks
	if err := ctx.Bind(&offer); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	ownerID, err := kernel.UUIDFromString(offer.OwnerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid owner id: " + err.Error(),
		})
	}

	pairs := make([]commands.TruckPair, len(offer.Pairs))
	for i, pair := range offer.Pairs {
		driverID, pairErr := kernel.UUIDFromString(pair.DriverID)
		if pairErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid driver id: " + pairErr.Error(),
			})
		}
		truckID, pairErr := kernel.UUIDFromString(pair.TruckID)
		if pairErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid truck id: " + pairErr.Error(),
			})
		}
		pairs[i] = commands.TruckPair{DriverID: driverID, TruckID: truckID}
	}

	cmd, err := commands.NewScheduleTrucksCommand(jobID, ownerID, pairs)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid scheduling data: " + err.Error(),
		})
	}

	if handleErr := s.scheduleTrucksHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to schedule trucks")
	}

	return ctx.NoContent(http.StatusCreated)
}

// CancelScheduledJob handles POST /api/v1/schedules/:scheduledJobID/cancel -
// an owner withdraws a whole booking.
func (s *Server) CancelScheduledJob(ctx echo.Context) error {
	scheduledJobID, ok := s.pathUUID(ctx, "scheduledJobID")
	if !ok {
		return nil
	}

	cmd, err := commands.NewCancelScheduledJobCommand(scheduledJobID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid cancel data: " + err.Error(),
		})
	}

	if handleErr := s.cancelScheduledJobHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to cancel booking")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClockIn handles POST /api/v1/assignations/:assignationID/clock-in - a
// driver starts work on an assignation.
func (s *Server) ClockIn(ctx echo.Context) error {
	assignationID, ok := s.pathUUID(ctx, "assignationID")
	if !ok {
		return nil
	}

	cmd, err := commands.NewClockInCommand(assignationID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid clock-in data: " + err.Error(),
		})
	}

	if handleErr := s.clockInHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to clock in")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ClockOut handles POST /api/v1/assignations/:assignationID/clock-out - a
// driver or owner finishes an assignation.
func (s *Server) ClockOut(ctx echo.Context) error {
	assignationID, ok := s.pathUUID(ctx, "assignationID")
	if !ok {
		return nil
	}

	var clockOut ClockOut
	if err := ctx.Bind(&clockOut); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewClockOutCommand(
		assignationID, schedule.FinishActor(clockOut.Actor), clockOut.Reason, clockOut.Tons)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid clock-out data: " + err.Error(),
		})
	}

	if handleErr := s.clockOutHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to clock out")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RaiseDispute handles POST /api/v1/schedules/:scheduledJobID/disputes - a
// contractor contests a finished booking.
func (s *Server) RaiseDispute(ctx echo.Context) error {
	scheduledJobID, ok := s.pathUUID(ctx, "scheduledJobID")
	if !ok {
		return nil
	}

	cmd, err := commands.NewRaiseDisputeCommand(scheduledJobID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispute data: " + err.Error(),
		})
	}

	if handleErr := s.raiseDisputeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to raise dispute")
	}

	return ctx.NoContent(http.StatusCreated)
}

// ReviewDispute handles POST /api/v1/schedules/:scheduledJobID/disputes/review -
// support takes a raised dispute into review.
func (s *Server) ReviewDispute(ctx echo.Context) error {
	scheduledJobID, ok := s.pathUUID(ctx, "scheduledJobID")
	if !ok {
		return nil
	}

	cmd, err := commands.NewReviewDisputeCommand(scheduledJobID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispute data: " + err.Error(),
		})
	}

	if handleErr := s.reviewDisputeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to review dispute")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// ResolveDispute handles POST /api/v1/schedules/:scheduledJobID/disputes/resolve -
// support closes a dispute and releases the booking.
func (s *Server) ResolveDispute(ctx echo.Context) error {
	scheduledJobID, ok := s.pathUUID(ctx, "scheduledJobID")
	if !ok {
		return nil
	}

	cmd, err := commands.NewResolveDisputeCommand(scheduledJobID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid dispute data: " + err.Error(),
		})
	}

	if handleErr := s.resolveDisputeHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to resolve dispute")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// RequestSwitch handles POST /api/v1/assignations/:assignationID/switch-requests -
// an owner asks to move a booked truck to another job.
func (s *Server) RequestSwitch(ctx echo.Context) error {
	assignationID, ok := s.pathUUID(ctx, "assignationID")
	if !ok {
		return nil
	}

	var request NewSwitchRequest
	if err := ctx.Bind(&request); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	targetJobID, err := kernel.UUIDFromString(request.TargetJobID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid target job id: " + err.Error(),
		})
	}

	cmd, err := commands.NewRequestSwitchCommand(assignationID, targetJobID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid switch data: " + err.Error(),
		})
	}

	if handleErr := s.requestSwitchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to request switch")
	}

	return ctx.NoContent(http.StatusCreated)
}

// RespondSwitch handles POST /api/v1/switch-requests/:requestID/response -
// the contractor accepts or denies a pending switch request.
func (s *Server) RespondSwitch(ctx echo.Context) error {
	requestID, ok := s.pathUUID(ctx, "requestID")
	if !ok {
		return nil
	}

	var response SwitchResponse
	if err := ctx.Bind(&response); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := commands.NewRespondSwitchCommand(requestID, response.Accept)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid switch response: " + err.Error(),
		})
	}

	if handleErr := s.respondSwitchHandler.Handle(ctx.Request().Context(), cmd); handleErr != nil {
		return s.commandError(ctx, handleErr, "Failed to respond to switch")
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetVisibleJobs handles GET /api/v1/owners/:ownerID/jobs - the owner's job
// feed after tier delay, radius, and fleet filtering.
func (s *Server) GetVisibleJobs(ctx echo.Context) error {
	ownerID, ok := s.pathUUID(ctx, "ownerID")
	if !ok {
		return nil
	}

	query, err := queries.NewGetVisibleJobsQuery(ownerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid feed query: " + err.Error(),
		})
	}

	jobs, err := s.getVisibleJobsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to compute job feed",
		})
	}

	response := make([]VisibleJob, len(jobs))
	for i, j := range jobs {
		response[i] = visibleJobToBody(j)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOwnerSchedule handles GET /api/v1/owners/:ownerID/schedule - every live
// booking row of the owner across jobs.
func (s *Server) GetOwnerSchedule(ctx echo.Context) error {
	ownerID, ok := s.pathUUID(ctx, "ownerID")
	if !ok {
		return nil
	}

	query, err := queries.NewGetOwnerScheduleQuery(ownerID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid schedule query: " + err.Error(),
		})
	}

	entries, err := s.getOwnerScheduleHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Failed to load schedule",
		})
	}

	response := make([]ScheduleEntry, len(entries))
	for i, entry := range entries {
		response[i] = scheduleEntryToBody(entry)
	}

	return ctx.JSON(http.StatusOK, response)
}

// pathUUID parses a UUID path parameter. On failure it writes the 400
// response itself and reports ok=false; the caller returns immediately.
func (s *Server) pathUUID(ctx echo.Context, name string) (kernel.UUID, bool) {
	id, err := kernel.UUIDFromString(ctx.Param(name))
	if err != nil {
		_ = ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid " + name + ": " + err.Error(),
		})

		return kernel.UUID{}, false
	}

	return id, true
}

// commandError maps a handler failure to a response: unknown aggregates are
// 404, everything else is a 409 state conflict.
func (s *Server) commandError(ctx echo.Context, err error, message string) error {
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: message + ": " + err.Error(),
		})
	}

	return ctx.JSON(http.StatusConflict, Error{
		Code:    http.StatusConflict,
		Message: message + ": " + err.Error(),
	})
}
