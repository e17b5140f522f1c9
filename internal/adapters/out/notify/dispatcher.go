// Package notify implements the outbound notification and email ports.
// Deliveries go through a circuit breaker and are fire-and-forget: a dead
// gateway must never fail the state transition that triggered the message,
// so every error is logged and absorbed here.
package notify

import (
	"context"
	"log/slog"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/ports"

	"github.com/sony/gobreaker"
)

// Gateway delivers payloads to the external messaging service. Push covers
// the in-app/SMS fan-out, Email the transactional templates.
type Gateway interface {
	Push(ctx context.Context, notification ports.Notification) error
	Email(ctx context.Context, recipient kernel.UUID, template ports.EmailTemplate, data map[string]string) error
}

// Dispatcher implements ports.NotificationService and ports.EmailService
// over a Gateway. A shared circuit breaker trips when the gateway keeps
// failing, so sweeps touching hundreds of jobs do not stack up timeouts
// against a dead service.
type Dispatcher struct {
	gateway Gateway
	breaker *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

// NewDispatcher creates a dispatcher around the given gateway.
func NewDispatcher(gateway Gateway, logger *slog.Logger) *Dispatcher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notify-gateway",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
	})

	return &Dispatcher{
		gateway: gateway,
		breaker: breaker,
		logger:  logger.With("component", "notify"),
	}
}

// Notify delivers one notification payload. Failures are logged, never
// returned.
func (d *Dispatcher) Notify(ctx context.Context, notification ports.Notification) {
	_, err := d.breaker.Execute(func() (any, error) {
		return nil, d.gateway.Push(ctx, notification)
	})
	if err != nil {
		d.logger.Warn("notification delivery failed",
			"kind", string(notification.Kind),
			"recipient", notification.Recipient.String(),
			"error", err)
	}
}

// Send delivers one templated email. Failures are logged, never returned.
func (d *Dispatcher) Send(
	ctx context.Context,
	recipient kernel.UUID,
	template ports.EmailTemplate,
	data map[string]string,
) {
	_, err := d.breaker.Execute(func() (any, error) {
		return nil, d.gateway.Email(ctx, recipient, template, data)
	})
	if err != nil {
		d.logger.Warn("email delivery failed",
			"template", string(template),
			"recipient", recipient.String(),
			"error", err)
	}
}
