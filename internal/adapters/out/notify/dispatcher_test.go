package notify_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"hauling/internal/adapters/out/notify"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockGateway struct{ mock.Mock }

func (m *MockGateway) Push(ctx context.Context, notification ports.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockGateway) Email(
	ctx context.Context, recipient kernel.UUID, template ports.EmailTemplate, data map[string]string,
) error {
	args := m.Called(ctx, recipient, template, data)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatcher_Notify_DeliversThroughGateway(t *testing.T) {
	gateway := &MockGateway{}
	notification := ports.Notification{
		Recipient: kernel.NewUUID(),
		Kind:      ports.NotifyJobScheduled,
		JobID:     kernel.NewUUID(),
		Message:   "You are scheduled",
	}
	gateway.On("Push", mock.Anything, notification).Return(nil).Once()

	dispatcher := notify.NewDispatcher(gateway, discardLogger())
	dispatcher.Notify(context.Background(), notification)

	gateway.AssertExpectations(t)
}

func TestDispatcher_Notify_AbsorbsGatewayFailure(t *testing.T) {
	gateway := &MockGateway{}
	gateway.On("Push", mock.Anything, mock.Anything).Return(errors.New("gateway down"))

	dispatcher := notify.NewDispatcher(gateway, discardLogger())

	// Must not panic or propagate anything.
	dispatcher.Notify(context.Background(), ports.Notification{
		Recipient: kernel.NewUUID(),
		Kind:      ports.NotifyJobExpired,
	})

	gateway.AssertExpectations(t)
}

func TestDispatcher_Send_DeliversEmail(t *testing.T) {
	gateway := &MockGateway{}
	recipient := kernel.NewUUID()
	data := map[string]string{"jobId": "abc"}
	gateway.On("Email", mock.Anything, recipient, ports.EmailJobCanceled, data).Return(nil).Once()

	dispatcher := notify.NewDispatcher(gateway, discardLogger())
	dispatcher.Send(context.Background(), recipient, ports.EmailJobCanceled, data)

	gateway.AssertExpectations(t)
}

func TestDispatcher_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	gateway := &MockGateway{}
	gateway.On("Push", mock.Anything, mock.Anything).Return(errors.New("gateway down"))

	dispatcher := notify.NewDispatcher(gateway, discardLogger())
	notification := ports.Notification{Recipient: kernel.NewUUID(), Kind: ports.NotifyJobUnstarted}

	for range 10 {
		dispatcher.Notify(context.Background(), notification)
	}

	// Once the breaker trips the gateway stops being called.
	calls := len(gateway.Calls)
	assert.Less(t, calls, 10, "breaker should short-circuit after repeated failures")
	assert.GreaterOrEqual(t, calls, 3, "breaker needs a few failures before tripping")
}
