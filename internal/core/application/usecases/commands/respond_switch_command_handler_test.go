package commands_test

import (
	"testing"

	"hauling/internal/core/application/usecases/commands"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type switchFixture struct {
	sourceJob   *job.Job
	sourceSched *schedule.ScheduledJob
	source      *schedule.Assignation
	targetJob   *job.Job
	targetSched *schedule.ScheduledJob
	cloned      *schedule.Assignation
	request     *schedule.SwitchRequest
}

// newSwitchFixture rebuilds the state the switch-request handler leaves
// behind: a pending request, the cloned slot consumed on the target job,
// and a target schedule that only exists for this switch.
func newSwitchFixture(t *testing.T) switchFixture {
	t.Helper()
	sourceSlot := newOpenSlot(t, "10-yard")
	sourceJob := newTestJob(t, sourceSlot)
	require.NoError(t, sourceJob.ScheduleSlot(sourceSlot.ID()))
	source := newAssignationFor(t, sourceSlot, "10-yard")
	require.NoError(t, source.RequestSwitch())
	sourceSched := newScheduleFor(t, sourceJob, source)

	clonedSlot := newOpenSlot(t, "10-yard")
	targetJob := newTestJob(t, clonedSlot)
	require.NoError(t, targetJob.ScheduleSlot(clonedSlot.ID()))
	cloned := newAssignationFor(t, clonedSlot, "10-yard")
	targetSched := newScheduleFor(t, targetJob, cloned)

	request, err := schedule.NewSwitchRequest(
		kernel.NewUUID(), source.ID(), sourceSched.ID(), targetSched.ID(),
		targetJob.ID(), clonedSlot.ID(), cloned.ID(), true)
	require.NoError(t, err)

	return switchFixture{
		sourceJob: sourceJob, sourceSched: sourceSched, source: source,
		targetJob: targetJob, targetSched: targetSched, cloned: cloned,
		request: request,
	}
}

func TestRespondSwitchCommandHandler_Handle_Accept(t *testing.T) {
	ctx := t.Context()
	fx := newSwitchFixture(t)

	cmd, err := commands.NewRespondSwitchCommand(fx.request.ID(), true)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	schedRepo := new(MockScheduledJobRepository)
	switchRepo := new(MockSwitchRequestRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ScheduledJobRepository").Return(schedRepo)
	uow.On("SwitchRequestRepository").Return(switchRepo)
	switchRepo.On("Get", ctx, fx.request.ID()).Return(fx.request, nil).Once()
	schedRepo.On("Get", ctx, fx.sourceSched.ID()).Return(fx.sourceSched, nil).Once()
	jobRepo.On("Get", ctx, fx.sourceJob.ID()).Return(fx.sourceJob, nil).Once()
	jobRepo.On("Update", ctx, fx.sourceJob).Return(nil).Once()
	schedRepo.On("Update", ctx, fx.sourceSched).Return(nil).Once()
	switchRepo.On("Update", ctx, fx.request).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSwitchUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationService)
	notifier.On("Notify", ctx, mock.MatchedBy(func(n ports.Notification) bool {
		return n.Kind == ports.NotifySwitchAnswered && n.Recipient.IsEqual(fx.source.DriverID())
	})).Once()

	handler := commands.NewRespondSwitchCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, schedule.SwitchAccepted, fx.request.Status())
	assert.True(t, fx.source.Removed(), "accepted source assignation leaves its schedule")
	assert.False(t, fx.sourceJob.Slots()[0].IsScheduled(), "source slot reopens")
	notifier.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRespondSwitchCommandHandler_Handle_DenyRollsCloneBack(t *testing.T) {
	ctx := t.Context()
	fx := newSwitchFixture(t)

	cmd, err := commands.NewRespondSwitchCommand(fx.request.ID(), false)
	require.NoError(t, err)

	jobRepo := new(MockJobRepository)
	schedRepo := new(MockScheduledJobRepository)
	switchRepo := new(MockSwitchRequestRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("JobRepository").Return(jobRepo)
	uow.On("ScheduledJobRepository").Return(schedRepo)
	uow.On("SwitchRequestRepository").Return(switchRepo)
	switchRepo.On("Get", ctx, fx.request.ID()).Return(fx.request, nil).Once()
	schedRepo.On("Get", ctx, fx.sourceSched.ID()).Return(fx.sourceSched, nil).Once()
	schedRepo.On("Get", ctx, fx.targetSched.ID()).Return(fx.targetSched, nil).Once()
	jobRepo.On("Get", ctx, fx.targetJob.ID()).Return(fx.targetJob, nil).Once()
	jobRepo.On("Update", ctx, fx.targetJob).Return(nil).Once()
	schedRepo.On("Update", ctx, fx.sourceSched).Return(nil).Once()
	schedRepo.On("Remove", ctx, fx.targetSched.ID()).Return(nil).Once()
	switchRepo.On("Update", ctx, fx.request).Return(nil).Once()
	uow.On("Commit", ctx).Return(nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSwitchUoWFactory)
	factory.On("Create").Return(uow).Once()

	notifier := new(MockNotificationService)
	notifier.On("Notify", ctx, mock.Anything).Once()

	handler := commands.NewRespondSwitchCommandHandler(factory, notifier)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, schedule.SwitchDenied, fx.request.Status())
	assert.False(t, fx.source.Removed(), "denied source assignation stays put")
	assert.Equal(t, schedule.SwitchDenied, fx.source.SwitchStatus())
	assert.True(t, fx.cloned.Removed())
	assert.False(t, fx.targetJob.Slots()[0].IsScheduled(), "cloned slot reopens on denial")
	schedRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestRespondSwitchCommandHandler_Handle_AnsweredRequest(t *testing.T) {
	ctx := t.Context()
	fx := newSwitchFixture(t)
	require.NoError(t, fx.request.Deny())

	cmd, err := commands.NewRespondSwitchCommand(fx.request.ID(), true)
	require.NoError(t, err)

	switchRepo := new(MockSwitchRequestRepository)
	schedRepo := new(MockScheduledJobRepository)
	uow := new(MockUoW)
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("SwitchRequestRepository").Return(switchRepo)
	uow.On("ScheduledJobRepository").Return(schedRepo)
	switchRepo.On("Get", ctx, fx.request.ID()).Return(fx.request, nil).Once()
	schedRepo.On("Get", ctx, fx.sourceSched.ID()).Return(fx.sourceSched, nil).Once()
	uow.On("Rollback", ctx).Return(nil).Once()

	factory := new(MockSwitchUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewRespondSwitchCommandHandler(factory, new(MockNotificationService))
	err = handler.Handle(ctx, cmd)

	require.Error(t, err)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
}
