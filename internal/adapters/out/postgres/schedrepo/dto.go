// Package schedrepo provides data transfer objects and mapping functions
// for schedule persistence: the per-owner scheduled jobs with their
// assignation ledgers, and the switch requests of the relocation workflow.
package schedrepo

import (
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"

	"github.com/google/uuid"
)

// ScheduledJobDTO represents the database structure for persisting an
// owner's schedule on a job.
type ScheduledJobDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	JobID              uuid.UUID `gorm:"type:uuid;not null;index"`
	OwnerID            uuid.UUID `gorm:"type:uuid;not null;index"`
	PaymentDue         time.Time `gorm:"type:timestamptz"`
	IsCanceled         bool
	CanceledByOwner    bool
	DisputeRequested   bool
	DisputeReviewed    bool
	DisputeConfirmed   bool
	DisputeRequestedAt *time.Time       `gorm:"type:timestamptz"`
	Assignations       []AssignationDTO `gorm:"foreignKey:ScheduledJobID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "scheduled_jobs".
func (ScheduledJobDTO) TableName() string {
	return "scheduled_jobs"
}

// AssignationDTO represents one driver/truck booking row. The window
// columns duplicate the job's window so the double-booking overlap check
// runs without a join.
type AssignationDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	ScheduledJobID uuid.UUID `gorm:"type:uuid;not null;index"`
	DriverID       uuid.UUID `gorm:"type:uuid;not null;index"`
	TruckID        uuid.UUID `gorm:"type:uuid;not null;index"`
	SlotID         uuid.UUID `gorm:"type:uuid;not null"`
	TruckType      string    `gorm:"type:varchar(64)"`
	Rate           RateDTO   `gorm:"embedded;embeddedPrefix:rate_"`
	WindowStart    time.Time `gorm:"type:timestamptz"`
	WindowEnd      time.Time `gorm:"type:timestamptz"`
	StartedAt      *time.Time `gorm:"type:timestamptz"`
	FinishedAt     *time.Time `gorm:"type:timestamptz"`
	Loads          int
	Tons           float64
	FinishedBy     string `gorm:"type:varchar(16)"`
	FinishReason   string `gorm:"type:varchar(255)"`
	Removed        bool
	SwitchStatus   int
}

// TableName overrides GORM's default naming to use "assignations".
func (AssignationDTO) TableName() string {
	return "assignations"
}

// RateDTO represents the embedded rate snapshot on an assignation.
type RateDTO struct {
	Price        float64
	CustomerRate float64
	PartnerRate  float64
	Basis        string `gorm:"type:varchar(16)"`
}

// SwitchRequestDTO represents a pending or answered relocation request.
type SwitchRequestDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	AssignationID        uuid.UUID `gorm:"type:uuid;not null;index"`
	SourceScheduledJobID uuid.UUID `gorm:"type:uuid;not null"`
	TargetScheduledJobID uuid.UUID `gorm:"type:uuid;not null"`
	TargetJobID          uuid.UUID `gorm:"type:uuid;not null"`
	ClonedSlotID         uuid.UUID `gorm:"type:uuid;not null"`
	ClonedAssignationID  uuid.UUID `gorm:"type:uuid;not null"`
	CreatedScheduledJob  bool
	Status               int
}

// TableName overrides GORM's default naming to use "switch_requests".
func (SwitchRequestDTO) TableName() string {
	return "switch_requests"
}

func fromDomain(aggregate *schedule.ScheduledJob, window kernel.TimeWindow) ScheduledJobDTO {
	schedID := aggregate.ID().Bytes()
	assignations := make([]AssignationDTO, 0, len(aggregate.Assignations()))
	for _, a := range aggregate.Assignations() {
		assignations = append(assignations, assignationFromDomain(schedID, a, window))
	}

	return ScheduledJobDTO{
		ID:                 schedID,
		JobID:              aggregate.JobID().Bytes(),
		OwnerID:            aggregate.OwnerID().Bytes(),
		PaymentDue:         aggregate.PaymentDue(),
		IsCanceled:         aggregate.IsCanceled(),
		CanceledByOwner:    aggregate.CanceledByOwner(),
		DisputeRequested:   aggregate.DisputeRequested(),
		DisputeReviewed:    aggregate.DisputeReviewed(),
		DisputeConfirmed:   aggregate.DisputeConfirmed(),
		DisputeRequestedAt: aggregate.DisputeRequestedAt(),
		Assignations:       assignations,
	}
}

func assignationFromDomain(
	schedID uuid.UUID, a *schedule.Assignation, window kernel.TimeWindow,
) AssignationDTO {
	return AssignationDTO{
		ID:             a.ID().Bytes(),
		ScheduledJobID: schedID,
		DriverID:       a.DriverID().Bytes(),
		TruckID:        a.TruckID().Bytes(),
		SlotID:         a.SlotID().Bytes(),
		TruckType:      string(a.TruckType()),
		Rate: RateDTO{
			Price:        a.Rate().Price,
			CustomerRate: a.Rate().CustomerRate,
			PartnerRate:  a.Rate().PartnerRate,
			Basis:        string(a.Rate().Basis),
		},
		WindowStart:  window.Start(),
		WindowEnd:    window.End(),
		StartedAt:    a.StartedAt(),
		FinishedAt:   a.FinishedAt(),
		Loads:        a.Loads(),
		Tons:         a.Tons(),
		FinishedBy:   string(a.FinishedBy()),
		FinishReason: a.FinishReason(),
		Removed:      a.Removed(),
		SwitchStatus: int(a.SwitchStatus()),
	}
}

func toDomain(dto ScheduledJobDTO) (*schedule.ScheduledJob, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	jobID, err := kernel.UUIDFromBytes(dto.JobID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}

	assignations := make([]*schedule.Assignation, 0, len(dto.Assignations))
	for _, aDto := range dto.Assignations {
		a, aErr := assignationToDomain(aDto)
		if aErr != nil {
			return nil, aErr
		}
		assignations = append(assignations, a)
	}

	return schedule.RestoreScheduledJob(id, jobID, ownerID, dto.PaymentDue,
		dto.IsCanceled, dto.CanceledByOwner,
		dto.DisputeRequested, dto.DisputeReviewed, dto.DisputeConfirmed,
		dto.DisputeRequestedAt, assignations)
}

func assignationToDomain(dto AssignationDTO) (*schedule.Assignation, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}
	truckID, err := kernel.UUIDFromBytes(dto.TruckID[:])
	if err != nil {
		return nil, err
	}
	slotID, err := kernel.UUIDFromBytes(dto.SlotID[:])
	if err != nil {
		return nil, err
	}

	rate := job.Rate{
		Price:        dto.Rate.Price,
		CustomerRate: dto.Rate.CustomerRate,
		PartnerRate:  dto.Rate.PartnerRate,
		Basis:        job.PaymentBasis(dto.Rate.Basis),
	}

	return schedule.RestoreAssignation(id, driverID, truckID, slotID,
		fleet.TruckType(dto.TruckType), rate,
		dto.StartedAt, dto.FinishedAt, dto.Loads, dto.Tons,
		schedule.FinishActor(dto.FinishedBy), dto.FinishReason,
		dto.Removed, schedule.SwitchStatus(dto.SwitchStatus))
}

func switchFromDomain(request *schedule.SwitchRequest) SwitchRequestDTO {
	return SwitchRequestDTO{
		ID:                   request.ID().Bytes(),
		AssignationID:        request.AssignationID().Bytes(),
		SourceScheduledJobID: request.SourceScheduledJobID().Bytes(),
		TargetScheduledJobID: request.TargetScheduledJobID().Bytes(),
		TargetJobID:          request.TargetJobID().Bytes(),
		ClonedSlotID:         request.ClonedSlotID().Bytes(),
		ClonedAssignationID:  request.ClonedAssignationID().Bytes(),
		CreatedScheduledJob:  request.CreatedScheduledJob(),
		Status:               int(request.Status()),
	}
}

func switchToDomain(dto SwitchRequestDTO) (*schedule.SwitchRequest, error) {
	ids := make([]kernel.UUID, 7)
	for i, raw := range []uuid.UUID{
		dto.ID, dto.AssignationID, dto.SourceScheduledJobID,
		dto.TargetScheduledJobID, dto.TargetJobID,
		dto.ClonedSlotID, dto.ClonedAssignationID,
	} {
		id, err := kernel.UUIDFromBytes(raw[:])
		if err != nil {
			return nil, err
		}
		ids[i] = id
	}

	return schedule.RestoreSwitchRequest(ids[0], ids[1], ids[2], ids[3],
		ids[4], ids[5], ids[6],
		dto.CreatedScheduledJob, schedule.SwitchStatus(dto.Status))
}
