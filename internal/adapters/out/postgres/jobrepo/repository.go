package jobrepo

import (
	"context"
	"errors"
	"time"

	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormJobRepository implements JobRepository using GORM.
type GormJobRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormJobRepository creates a new GORM job repository.
func NewGormJobRepository(db *gorm.DB, tracker aggregateTracker) *GormJobRepository {
	return &GormJobRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new job with its slots to the database.
func (r *GormJobRepository) Add(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing job. Slot rows are saved together with the job
// row so the lifecycle flags never drift from the aggregate.
func (r *GormJobRepository) Update(ctx context.Context, aggregate *job.Job) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto, err := fromDomain(aggregate)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a job by ID with its slots.
func (r *GormJobRepository) Get(ctx context.Context, id kernel.UUID) (*job.Job, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto JobDTO
	if err := r.db.WithContext(ctx).Preload("Slots").
		First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("job", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetOpenJobs retrieves Pending jobs that still have at least one open
// slot. These are the jobs the visibility policy filters per owner.
func (r *GormJobRepository) GetOpenJobs(ctx context.Context) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).Preload("Slots").
		Where("status = ? AND on_hold = false", job.Pending).
		Where("id IN (?)", r.db.Model(&SlotDTO{}).Select("job_id").Where("is_scheduled = false")).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetUnscheduledPastEnd retrieves Pending jobs whose window already ended
// with no slot ever scheduled. These expire to Incomplete.
func (r *GormJobRepository) GetUnscheduledPastEnd(ctx context.Context, now time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).Preload("Slots").
		Where("status = ? AND window_end <= ?", job.Pending, now).
		Where("id NOT IN (?)", r.db.Model(&SlotDTO{}).Select("job_id").Where("is_scheduled = true")).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetScheduledUnstarted retrieves Pending jobs whose window already started
// and that have scheduled slots with no clock-in yet.
func (r *GormJobRepository) GetScheduledUnstarted(ctx context.Context, now time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).Preload("Slots").
		Where("status = ? AND window_start <= ?", job.Pending, now).
		Where("id IN (?)", r.db.Model(&SlotDTO{}).Select("job_id").Where("is_scheduled = true")).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetEndingBetween retrieves Started jobs whose window ends inside the
// given span.
func (r *GormJobRepository) GetEndingBetween(ctx context.Context, from, to time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).Preload("Slots").
		Where("status = ? AND window_end > ? AND window_end <= ?", job.Started, from, to).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

// GetOverdue retrieves non-terminal jobs with scheduled slots whose window
// ended at or before the cutoff. Once the force-finish sweep drives a job
// terminal the status filter keeps it out of later passes.
func (r *GormJobRepository) GetOverdue(ctx context.Context, cutoff time.Time) ([]*job.Job, error) {
	var dtos []JobDTO
	err := r.db.WithContext(ctx).Preload("Slots").
		Where("status IN ? AND window_end <= ?", []int{int(job.Pending), int(job.Started)}, cutoff).
		Where("id IN (?)", r.db.Model(&SlotDTO{}).Select("job_id").Where("is_scheduled = true")).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return r.toDomainAll(dtos)
}

func (r *GormJobRepository) toDomainAll(dtos []JobDTO) ([]*job.Job, error) {
	jobs := make([]*job.Job, 0, len(dtos))
	for _, dto := range dtos {
		aggregate, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, aggregate)
	}
	return jobs, nil
}
