package queries

import (
	"errors"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/guard"
)

var (
	ErrGetOwnerScheduleQueryIsNotConstructed = errors.New(
		"GetOwnerScheduleQuery must be created via NewGetOwnerScheduleQuery constructor",
	)
)

// GetOwnerScheduleQuery retrieves an owner's booking ledger: one row per
// live assignation across the owner's scheduled jobs.
//
// Example:
//
//	query, err := NewGetOwnerScheduleQuery(ownerID)
//	if err != nil {
//	    return err
//	}
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to get schedule: %w", err)
//	}
type GetOwnerScheduleQuery struct {
	guard   guard.ConstructorGuard
	ownerID kernel.UUID
}

// NewGetOwnerScheduleQuery creates a query for one owner's schedule.
func NewGetOwnerScheduleQuery(ownerID kernel.UUID) (GetOwnerScheduleQuery, error) {
	if err := ownerID.Validate(); err != nil {
		return GetOwnerScheduleQuery{}, err
	}

	return GetOwnerScheduleQuery{
		guard:   guard.NewConstructorGuard(),
		ownerID: ownerID,
	}, nil
}

// OwnerID returns the owner whose schedule is requested.
func (q GetOwnerScheduleQuery) OwnerID() kernel.UUID {
	return q.ownerID
}

// Validate ensures the query was created through the constructor.
func (q GetOwnerScheduleQuery) Validate() error {
	return q.guard.Validate(ErrGetOwnerScheduleQueryIsNotConstructed)
}

// GetOwnerScheduleQueryResponse is one booking row in an owner's schedule.
// StartedAt and FinishedAt are nil while the driver has not clocked in or
// out.
type GetOwnerScheduleQueryResponse struct {
	ScheduledJobID kernel.UUID
	JobID          kernel.UUID
	AssignationID  kernel.UUID
	DriverID       kernel.UUID
	TruckID        kernel.UUID
	TruckType      string
	RatePrice      float64
	RateBasis      string
	WindowStart    time.Time
	WindowEnd      time.Time
	StartedAt      *time.Time
	FinishedAt     *time.Time
	Loads          int
	Tons           float64
}
