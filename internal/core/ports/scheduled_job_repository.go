package ports

import (
	"context"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
)

// ScheduledJobRepository defines the persistence contract for scheduled job
// aggregates. A scheduled job is always stored and loaded together with its
// assignations.
type ScheduledJobRepository interface {
	// Add persists a new scheduled job aggregate to storage.
	Add(ctx context.Context, aggregate *schedule.ScheduledJob) error

	// Update persists changes to an existing scheduled job aggregate,
	// including its assignations.
	Update(ctx context.Context, aggregate *schedule.ScheduledJob) error

	// Remove deletes a scheduled job created for a switch that the driver
	// then denied. Only empty schedules may be removed.
	Remove(ctx context.Context, id kernel.UUID) error

	// Get retrieves a scheduled job aggregate by id.
	// Returns errs.ErrObjectNotFound when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledJob, error)

	// GetByJobAndOwner retrieves the live (not canceled) scheduled job for
	// one owner's share of a job, or errs.ErrObjectNotFound when the owner
	// has no share yet. There is at most one.
	GetByJobAndOwner(ctx context.Context, jobID, ownerID kernel.UUID) (*schedule.ScheduledJob, error)

	// GetAllByJob retrieves every live scheduled job of a job.
	GetAllByJob(ctx context.Context, jobID kernel.UUID) ([]*schedule.ScheduledJob, error)

	// GetAllByOwner retrieves every scheduled job of an owning company,
	// canceled ones included. Feeds the owner schedule query.
	GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*schedule.ScheduledJob, error)

	// GetByAssignation retrieves the scheduled job owning an assignation.
	GetByAssignation(ctx context.Context, assignationID kernel.UUID) (*schedule.ScheduledJob, error)

	// HasOpenOverlapForDriver reports whether the driver already holds an
	// open assignation on a job whose window overlaps the given one. The
	// caller passes the window already padded; this call and the
	// subsequent insert must share one transaction.
	HasOpenOverlapForDriver(ctx context.Context, driverID kernel.UUID, window kernel.TimeWindow) (bool, error)

	// HasOpenOverlapForTruck is HasOpenOverlapForDriver for a truck.
	HasOpenOverlapForTruck(ctx context.Context, truckID kernel.UUID, window kernel.TimeWindow) (bool, error)
}
