package schedrepo

import (
	"context"
	"errors"
	"time"

	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"
	"hauling/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormScheduledJobRepository implements ScheduledJobRepository using GORM.
// Assignation rows carry a denormalized copy of the job's window, filled in
// on every save, so the overlap checks stay single-table scans.
type GormScheduledJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormScheduledJobRepository creates a new GORM schedule repository.
func NewGormScheduledJobRepository(db *gorm.DB, tracker aggregateTracker) *GormScheduledJobRepository {
	return &GormScheduledJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new schedule with its assignations.
func (r *GormScheduledJobRepository) Add(ctx context.Context, aggregate *schedule.ScheduledJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	window, err := r.jobWindow(ctx, aggregate)
	if err != nil {
		return err
	}
	dto := fromDomain(aggregate, window)
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing schedule together with its assignation rows.
func (r *GormScheduledJobRepository) Update(ctx context.Context, aggregate *schedule.ScheduledJob) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	window, err := r.jobWindow(ctx, aggregate)
	if err != nil {
		return err
	}
	dto := fromDomain(aggregate, window)
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Remove deletes a schedule and its assignations. Used only to undo a
// schedule created by a denied switch before anything else touched it.
func (r *GormScheduledJobRepository) Remove(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	tx := r.db.WithContext(ctx)
	if err := tx.Delete(&AssignationDTO{}, "scheduled_job_id = ?", id.Bytes()).Error; err != nil {
		return err
	}
	return tx.Delete(&ScheduledJobDTO{}, "id = ?", id.Bytes()).Error
}

// Get retrieves a schedule by ID with its assignations.
func (r *GormScheduledJobRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.ScheduledJob, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ScheduledJobDTO
	if err := r.db.WithContext(ctx).Preload("Assignations").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scheduled job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByJobAndOwner retrieves the one schedule an owner holds on a job.
func (r *GormScheduledJobRepository) GetByJobAndOwner(
	ctx context.Context, jobID, ownerID kernel.UUID,
) (*schedule.ScheduledJob, error) {
	var dto ScheduledJobDTO
	err := r.db.WithContext(ctx).Preload("Assignations").
		First(&dto, "job_id = ? AND owner_id = ? AND is_canceled = false",
			jobID.Bytes(), ownerID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("scheduled job of owner", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllByJob retrieves every owner's schedule on a job.
func (r *GormScheduledJobRepository) GetAllByJob(ctx context.Context, jobID kernel.UUID) ([]*schedule.ScheduledJob, error) {
	var dtos []ScheduledJobDTO
	err := r.db.WithContext(ctx).Preload("Assignations").
		Find(&dtos, "job_id = ?", jobID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetAllByOwner retrieves every schedule an owner holds.
func (r *GormScheduledJobRepository) GetAllByOwner(ctx context.Context, ownerID kernel.UUID) ([]*schedule.ScheduledJob, error) {
	var dtos []ScheduledJobDTO
	err := r.db.WithContext(ctx).Preload("Assignations").
		Find(&dtos, "owner_id = ?", ownerID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetByAssignation retrieves the schedule owning an assignation.
func (r *GormScheduledJobRepository) GetByAssignation(
	ctx context.Context, assignationID kernel.UUID,
) (*schedule.ScheduledJob, error) {
	var row AssignationDTO
	err := r.db.WithContext(ctx).
		First(&row, "id = ?", assignationID.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("assignation", assignationID.String())
		}
		return nil, err
	}

	id, err := kernel.UUIDFromBytes(row.ScheduledJobID[:])
	if err != nil {
		return nil, err
	}
	return r.Get(ctx, id)
}

// HasOpenOverlapForDriver reports whether the driver holds an open booking
// whose denormalized window overlaps the given one. Canceled schedules and
// finished or removed assignations do not block.
func (r *GormScheduledJobRepository) HasOpenOverlapForDriver(
	ctx context.Context, driverID kernel.UUID, window kernel.TimeWindow,
) (bool, error) {
	return r.hasOpenOverlap(ctx, "assignations.driver_id = ?", driverID, window)
}

// HasOpenOverlapForTruck is the truck-side double-booking check.
func (r *GormScheduledJobRepository) HasOpenOverlapForTruck(
	ctx context.Context, truckID kernel.UUID, window kernel.TimeWindow,
) (bool, error) {
	return r.hasOpenOverlap(ctx, "assignations.truck_id = ?", truckID, window)
}

func (r *GormScheduledJobRepository) hasOpenOverlap(
	ctx context.Context, condition string, id kernel.UUID, window kernel.TimeWindow,
) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&AssignationDTO{}).
		Joins("JOIN scheduled_jobs ON scheduled_jobs.id = assignations.scheduled_job_id").
		Where(condition, id.Bytes()).
		Where("assignations.finished_at IS NULL AND assignations.removed = false").
		Where("scheduled_jobs.is_canceled = false").
		Where("assignations.window_start < ? AND assignations.window_end > ?",
			window.End(), window.Start()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// jobWindow reads the parent job's window for denormalization onto the
// assignation rows.
func (r *GormScheduledJobRepository) jobWindow(
	ctx context.Context, aggregate *schedule.ScheduledJob,
) (kernel.TimeWindow, error) {
	var row struct {
		WindowStart, WindowEnd time.Time
	}
	err := r.db.WithContext(ctx).Table("jobs").
		Select("window_start", "window_end").
		Where("id = ?", aggregate.JobID().Bytes()).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return kernel.TimeWindow{}, errs.NewObjectNotFoundError("job", aggregate.JobID().String())
		}
		return kernel.TimeWindow{}, err
	}
	return kernel.NewTimeWindow(row.WindowStart, row.WindowEnd)
}

func (r *GormScheduledJobRepository) toDomainAll(dtos []ScheduledJobDTO) ([]*schedule.ScheduledJob, error) {
	scheds := make([]*schedule.ScheduledJob, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		scheds = append(scheds, aggregate)
	}
	return scheds, nil
}

// GormSwitchRequestRepository implements SwitchRequestRepository using GORM.
type GormSwitchRequestRepository struct {
	db *gorm.DB
}

// NewGormSwitchRequestRepository creates a new GORM switch request
// repository.
func NewGormSwitchRequestRepository(db *gorm.DB) *GormSwitchRequestRepository {
	return &GormSwitchRequestRepository{db: db}
}

// Add saves a new switch request.
func (r *GormSwitchRequestRepository) Add(ctx context.Context, request *schedule.SwitchRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := switchFromDomain(request)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Update saves an answered switch request.
func (r *GormSwitchRequestRepository) Update(ctx context.Context, request *schedule.SwitchRequest) error {
	if err := request.Validate(); err != nil {
		return err
	}

	dto := switchFromDomain(request)
	result := r.db.WithContext(ctx).Model(&SwitchRequestDTO{}).
		Where("id = ?", dto.ID).Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Get retrieves a switch request by ID.
func (r *GormSwitchRequestRepository) Get(ctx context.Context, id kernel.UUID) (*schedule.SwitchRequest, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto SwitchRequestDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("switch request", id.String())
		}
		return nil, err
	}

	return switchToDomain(dto)
}

// GetPendingByAssignation retrieves the pending switch for an assignation,
// if one exists.
func (r *GormSwitchRequestRepository) GetPendingByAssignation(
	ctx context.Context, assignationID kernel.UUID,
) (*schedule.SwitchRequest, error) {
	var dto SwitchRequestDTO
	err := r.db.WithContext(ctx).
		First(&dto, "assignation_id = ? AND status = ?",
			assignationID.Bytes(), int(schedule.SwitchRequested)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("pending switch request", assignationID.String())
		}
		return nil, err
	}

	return switchToDomain(dto)
}
