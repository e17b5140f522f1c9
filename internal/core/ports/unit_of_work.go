package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each
// request/command. This ensures proper isolation between concurrent
// operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary. It provides
// transaction control and hands out repositories bound to the current
// transaction. Client code must explicitly manage the transaction
// lifecycle; the no-double-booking guarantee depends on the overlap check
// and the assignation insert running inside one Begin/Commit pair.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// JobRepository returns a JobRepository bound to the current
	// transaction.
	JobRepository() JobRepository

	// ScheduledJobRepository returns a ScheduledJobRepository bound to the
	// current transaction.
	ScheduledJobRepository() ScheduledJobRepository

	// SwitchRequestRepository returns a SwitchRequestRepository bound to
	// the current transaction.
	SwitchRequestRepository() SwitchRequestRepository
}
