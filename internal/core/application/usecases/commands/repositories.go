// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS
// architecture. All commands follow a consistent pattern: validation,
// transaction management, and persistence.
package commands

import (
	"context"
	"time"

	"hauling/internal/core/ports"
)

// Clock supplies the current time to handlers whose rules depend on it
// (dispute windows, sweeps, clock-ins). Production wiring passes time.Now;
// tests pass a fixed instant.
type Clock func() time.Time

// SystemClock is the production Clock.
func SystemClock() time.Time { return time.Now() }

// Unit of Work interfaces provide transaction management for command
// handlers. Each handler declares the narrowest composition it needs.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// JobRepoFactory provides access to the job repository within a
	// transaction.
	JobRepoFactory interface {
		JobRepository() ports.JobRepository
	}

	// ScheduleRepoFactory provides access to the scheduled job repository
	// within a transaction.
	ScheduleRepoFactory interface {
		ScheduledJobRepository() ports.ScheduledJobRepository
	}

	// SwitchRepoFactory provides access to the switch request repository
	// within a transaction.
	SwitchRepoFactory interface {
		SwitchRequestRepository() ports.SwitchRequestRepository
	}

	// JobUoW manages transactions for job-only operations.
	JobUoW interface {
		TxManager
		JobRepoFactory
	}

	// JobUoWFactory creates new job unit of work instances.
	JobUoWFactory interface {
		Create() JobUoW
	}

	// ScheduleUoW manages transactions for scheduled-job-only operations,
	// the dispute workflow mostly.
	ScheduleUoW interface {
		TxManager
		ScheduleRepoFactory
	}

	// ScheduleUoWFactory creates new schedule unit of work instances.
	ScheduleUoWFactory interface {
		Create() ScheduleUoW
	}

	// UoW manages transactions across the job and scheduled job
	// aggregates. Used by every command that moves slots and assignations
	// together.
	UoW interface {
		TxManager
		JobRepoFactory
		ScheduleRepoFactory
	}

	// UoWFactory creates new unit of work instances for cross-aggregate
	// operations.
	UoWFactory interface {
		Create() UoW
	}

	// SwitchUoW manages transactions for the switch-job workflow, which
	// touches all three aggregates.
	SwitchUoW interface {
		TxManager
		JobRepoFactory
		ScheduleRepoFactory
		SwitchRepoFactory
	}

	// SwitchUoWFactory creates new switch unit of work instances.
	SwitchUoWFactory interface {
		Create() SwitchUoW
	}
)
