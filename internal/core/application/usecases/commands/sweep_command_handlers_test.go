package commands_test

import (
	"testing"
	"time"

	"hauling/internal/core/application/usecases/commands"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestExpireUnscheduledJobsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	aggregate := newJobAt(t, windowAt(t, frozenNow.Add(-10*time.Hour), 4*time.Hour),
		newOpenSlot(t, "10-yard"))

	jobRepo := new(MockJobRepository)

	listUoW := new(MockUoW)
	listUoW.On("Begin", ctx).Return(nil).Once()
	listUoW.On("JobRepository").Return(jobRepo)
	listUoW.On("Rollback", ctx).Return(nil).Once()

	jobUoW := new(MockUoW)
	jobUoW.On("Begin", ctx).Return(nil).Once()
	jobUoW.On("JobRepository").Return(jobRepo)
	jobUoW.On("Commit", ctx).Return(nil).Once()
	jobUoW.On("Rollback", ctx).Return(nil).Once()

	jobRepo.On("GetUnscheduledPastEnd", ctx, frozenNow).Return([]*job.Job{aggregate}, nil).Once()
	jobRepo.On("Get", ctx, aggregate.ID()).Return(aggregate, nil).Once()
	jobRepo.On("Update", ctx, aggregate).Return(nil).Once()

	factory := new(MockJobUoWFactory)
	factory.On("Create").Return(listUoW).Once()
	factory.On("Create").Return(jobUoW).Once()

	notifier := new(MockNotificationService)
	notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotifyJobExpired && n.Recipient.IsEqual(aggregate.ContractorID())
	})).Once()

	handler := commands.NewExpireUnscheduledJobsCommandHandler(
		factory, notifier, frozenClock, discardLogger())
	err := handler.Handle(ctx, commands.NewExpireUnscheduledJobsCommand())

	require.NoError(t, err)
	assert.Equal(t, job.Incomplete, aggregate.Status())
	notifier.AssertExpectations(t)
	jobRepo.AssertExpectations(t)
}

func TestNotifyUnstartedJobsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	slot := newOpenSlot(t, "10-yard")
	aggregate := newJobAt(t, windowAt(t, frozenNow.Add(-30*time.Minute), 8*time.Hour), slot)
	require.NoError(t, aggregate.ScheduleSlot(slot.ID()))

	idle := newScheduleFor(t, aggregate, newAssignationFor(t, slot, "10-yard"))

	started := newAssignationFor(t, slot, "10-yard")
	require.NoError(t, started.Start(frozenNow.Add(-10*time.Minute)))
	working := newScheduleFor(t, aggregate, started)

	jobRepo := new(MockJobRepository)
	schedRepo := new(MockScheduledJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ScheduledJobRepository").Return(schedRepo)
	jobRepo.On("GetScheduledUnstarted", ctx, frozenNow).Return([]*job.Job{aggregate}, nil).Once()
	schedRepo.On("GetAllByJob", ctx, aggregate.ID()).
		Return([]*schedule.ScheduledJob{idle, working}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationService)
	notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotifyJobUnstarted && n.Recipient.IsEqual(idle.OwnerID())
	})).Once()

	handler := commands.NewNotifyUnstartedJobsCommandHandler(
		factory, notifier, frozenClock, discardLogger())
	err := handler.Handle(ctx, commands.NewNotifyUnstartedJobsCommand())

	require.NoError(t, err)
	notifier.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "Notify", 1)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestNotifyEndingAssignmentsCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	slot := newOpenSlot(t, "10-yard")
	aggregate := newJobAt(t, windowAt(t, frozenNow.Add(-8*time.Hour), 8*time.Hour+10*time.Minute), slot)
	require.NoError(t, aggregate.ScheduleSlot(slot.ID()))
	require.NoError(t, aggregate.ActivateSlot(slot.ID()))

	active := newAssignationFor(t, slot, "10-yard")
	require.NoError(t, active.Start(frozenNow.Add(-7*time.Hour)))
	finished := newAssignationFor(t, slot, "10-yard")
	require.NoError(t, finished.Start(frozenNow.Add(-7*time.Hour)))
	require.NoError(t, finished.Finish(frozenNow.Add(-time.Hour), schedule.ActorDriver, ""))
	sched := newScheduleFor(t, aggregate, active, finished)

	jobRepo := new(MockJobRepository)
	schedRepo := new(MockScheduledJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ScheduledJobRepository").Return(schedRepo)
	jobRepo.On("GetEndingBetween", ctx, frozenNow, frozenNow.Add(15*time.Minute)).
		Return([]*job.Job{aggregate}, nil).Once()
	schedRepo.On("GetAllByJob", ctx, aggregate.ID()).
		Return([]*schedule.ScheduledJob{sched}, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationService)
	notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotifyJobEndingSoon && n.Recipient.IsEqual(active.DriverID())
	})).Once()
	notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotifyJobEndingSoon && n.Recipient.IsEqual(sched.OwnerID())
	})).Once()

	handler := commands.NewNotifyEndingAssignmentsCommandHandler(
		factory, notifier, frozenClock, discardLogger())
	err := handler.Handle(ctx, commands.NewNotifyEndingAssignmentsCommand())

	require.NoError(t, err)
	notifier.AssertExpectations(t)
	notifier.AssertNumberOfCalls(t, "Notify", 2)
}
