// Package ports defines the contracts between the scheduling core and
// infrastructure: repositories for the core's aggregates, the unit of work
// boundary, and the external collaborator services. These interfaces enable
// dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
)

// JobRepository defines the persistence contract for job aggregates. A job
// is always stored and loaded together with its requirement slots.
type JobRepository interface {
	// Add persists a new job aggregate to storage.
	Add(ctx context.Context, aggregate *job.Job) error

	// Update persists changes to an existing job aggregate, including the
	// lifecycle flags of its slots.
	Update(ctx context.Context, aggregate *job.Job) error

	// Get retrieves a job aggregate with its slots by id.
	// Returns errs.ErrObjectNotFound when the id is unknown.
	Get(ctx context.Context, id kernel.UUID) (*job.Job, error)

	// GetOpenJobs retrieves every job still accepting trucks: Pending or
	// Started with at least one open slot and not on hold. Feeds the
	// visibility query.
	GetOpenJobs(ctx context.Context) ([]*job.Job, error)

	// GetUnscheduledPastEnd retrieves Pending jobs whose window end has
	// passed without a single slot scheduled. Feeds the expiry sweep.
	GetUnscheduledPastEnd(ctx context.Context, now time.Time) ([]*job.Job, error)

	// GetScheduledUnstarted retrieves Pending jobs with at least one
	// scheduled slot whose window start has passed without any clock-in.
	// Feeds the unstarted-job reminder sweep.
	GetScheduledUnstarted(ctx context.Context, now time.Time) ([]*job.Job, error)

	// GetEndingBetween retrieves Started jobs whose window end falls inside
	// [from, to). Feeds the ending-soon reminder sweep.
	GetEndingBetween(ctx context.Context, from, to time.Time) ([]*job.Job, error)

	// GetOverdue retrieves jobs whose window end passed before cutoff and
	// that still have a scheduled or active slot. Feeds the force-finish
	// sweep; jobs already driven to a terminal status are excluded, which
	// keeps the sweep idempotent.
	GetOverdue(ctx context.Context, cutoff time.Time) ([]*job.Job, error)
}
