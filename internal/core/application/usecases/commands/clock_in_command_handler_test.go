package commands_test

import (
	"testing"

	"hauling/internal/core/application/usecases/commands"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClockInCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	slot := newOpenSlot(t, "10-yard")
	aggregate := newTestJob(t, slot)
	require.NoError(t, aggregate.ScheduleSlot(slot.ID()))

	assignation := newAssignationFor(t, slot, "10-yard")
	sched := newScheduleFor(t, aggregate, assignation)

	cmd, err := commands.NewClockInCommand(assignation.ID())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	schedRepo := new(MockScheduledJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ScheduledJobRepository").Return(schedRepo)
	schedRepo.On("GetByAssignation", ctx, assignation.ID()).Return(sched, nil).Once()
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	jobRepo.On("Update", ctx, aggregate).Return(nil).Once()
	schedRepo.On("Update", ctx, sched).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClockInCommandHandler(factory, frozenClock)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, job.Started, aggregate.Status())
	assert.True(t, assignation.IsActive())
	require.NotNil(t, assignation.StartedAt())
	assert.True(t, assignation.StartedAt().Equal(frozenNow))
	jobRepo.AssertExpectations(t)
	schedRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClockInCommandHandler_Handle_JobOnHold(t *testing.T) {
	ctx := t.Context()
	slot := newOpenSlot(t, "10-yard")
	aggregate := newTestJob(t, slot)
	require.NoError(t, aggregate.ScheduleSlot(slot.ID()))
	require.NoError(t, aggregate.SetHold(true))

	assignation := newAssignationFor(t, slot, "10-yard")
	sched := newScheduleFor(t, aggregate, assignation)

	cmd, err := commands.NewClockInCommand(assignation.ID())
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	schedRepo := new(MockScheduledJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ScheduledJobRepository").Return(schedRepo)
	schedRepo.On("GetByAssignation", ctx, assignation.ID()).Return(sched, nil).Once()
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClockInCommandHandler(factory, frozenClock)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrJobOnHold)
	assert.False(t, assignation.IsStarted())
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestClockInCommandHandler_Handle_UnknownAssignation(t *testing.T) {
	ctx := t.Context()
	assignationID := kernel.NewUUID()
	cmd, err := commands.NewClockInCommand(assignationID)
	require.NoError(t, err)

	schedRepo := new(MockScheduledJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("ScheduledJobRepository").Return(schedRepo)
	schedRepo.On("GetByAssignation", ctx, assignationID).Return(nil, errs.ErrObjectNotFound).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClockInCommandHandler(factory, frozenClock)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClockInCommandHandler_Handle_InvalidCommand(t *testing.T) {
	factory := new(MockUoWFactory)
	handler := commands.NewClockInCommandHandler(factory, frozenClock)

	err := handler.Handle(t.Context(), commands.ClockInCommand{})

	require.ErrorIs(t, err, commands.ErrClockInCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}
