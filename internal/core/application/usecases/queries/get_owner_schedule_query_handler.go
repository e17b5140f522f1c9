package queries

import (
	"context"
	"database/sql"

	"hauling/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetOwnerScheduleQueryHandler reads an owner's bookings straight from the
// database. Uses direct SQL for optimal read performance in the CQRS
// pattern.
//
// Example:
//
//	handler := NewGetOwnerScheduleQueryHandler(db)
//	query, _ := NewGetOwnerScheduleQuery(ownerID)
//
//	rows, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get schedule: %v", err)
//	    return err
//	}
type GetOwnerScheduleQueryHandler struct {
	db *gorm.DB
}

// NewGetOwnerScheduleQueryHandler creates a handler for owner schedule
// queries. Requires a GORM database connection for query execution.
func NewGetOwnerScheduleQueryHandler(db *gorm.DB) GetOwnerScheduleQueryHandler {
	return GetOwnerScheduleQueryHandler{db: db}
}

// Handle executes the query. Canceled schedules and removed assignations
// are excluded; rows are sorted by booking window start for a calendar
// view.
func (h GetOwnerScheduleQueryHandler) Handle(
	ctx context.Context,
	query GetOwnerScheduleQuery,
) ([]GetOwnerScheduleQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	bookings := make([]GetOwnerScheduleQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			s.id,
			s.job_id,
			a.id,
			a.driver_id,
			a.truck_id,
			a.truck_type,
			a.rate_price,
			a.rate_basis,
			a.window_start,
			a.window_end,
			a.started_at,
			a.finished_at,
			a.loads,
			a.tons
		FROM scheduled_jobs s
		JOIN assignations a ON a.scheduled_job_id = s.id
		WHERE s.owner_id = ?
		  AND s.is_canceled = false
		  AND a.removed = false
		ORDER BY a.window_start, a.id
	`, query.OwnerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var booking GetOwnerScheduleQueryResponse
		var schedID, jobID, assignationID, driverID, truckID uuid.UUID
		var startedAt, finishedAt sql.NullTime

		err = rows.Scan(
			&schedID,
			&jobID,
			&assignationID,
			&driverID,
			&truckID,
			&booking.TruckType,
			&booking.RatePrice,
			&booking.RateBasis,
			&booking.WindowStart,
			&booking.WindowEnd,
			&startedAt,
			&finishedAt,
			&booking.Loads,
			&booking.Tons,
		)
		if err != nil {
			return nil, err
		}

		ids := []struct {
			src uuid.UUID
			dst *kernel.UUID
		}{
			{schedID, &booking.ScheduledJobID},
			{jobID, &booking.JobID},
			{assignationID, &booking.AssignationID},
			{driverID, &booking.DriverID},
			{truckID, &booking.TruckID},
		}
		for _, id := range ids {
			converted, idErr := kernel.UUIDFromBytes(id.src[:])
			if idErr != nil {
				return nil, idErr
			}
			*id.dst = converted
		}

		if startedAt.Valid {
			t := startedAt.Time
			booking.StartedAt = &t
		}
		if finishedAt.Valid {
			t := finishedAt.Time
			booking.FinishedAt = &t
		}

		bookings = append(bookings, booking)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return bookings, nil
}
