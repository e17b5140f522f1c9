package ports

import (
	"context"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
)

// SwitchRequestRepository defines the persistence contract for switch
// requests.
type SwitchRequestRepository interface {
	// Add persists a new switch request.
	Add(ctx context.Context, request *schedule.SwitchRequest) error

	// Update persists the request's answer.
	Update(ctx context.Context, request *schedule.SwitchRequest) error

	// Get retrieves a switch request by id.
	// Returns errs.ErrObjectNotFound when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*schedule.SwitchRequest, error)

	// GetPendingByAssignation retrieves the pending request for an
	// assignation, or errs.ErrObjectNotFound when none is pending. At most
	// one request per assignation is ever pending.
	GetPendingByAssignation(ctx context.Context, assignationID kernel.UUID) (*schedule.SwitchRequest, error)
}
