// Package jobrepo provides data transfer objects and mapping functions for
// job persistence. It implements the repository pattern for the job
// aggregate, converting between domain entities and database rows.
package jobrepo

import (
	"encoding/json"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// JobDTO represents the database structure for persisting job aggregates.
// The work window is split into two indexed columns so the sweep selections
// can filter on the end time directly.
type JobDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ContractorID uuid.UUID `gorm:"type:uuid;index"`
	Status       int       `gorm:"index"`
	WindowStart  time.Time `gorm:"type:timestamptz"`
	WindowEnd    time.Time `gorm:"type:timestamptz;index"`
	LoadSite     SiteDTO   `gorm:"embedded;embeddedPrefix:load_"`
	DumpSite     SiteDTO   `gorm:"embedded;embeddedPrefix:dump_"`
	PaymentDue   time.Time `gorm:"type:timestamptz"`
	OnHold       bool
	CreatedAt    time.Time `gorm:"type:timestamptz"`
	Slots        []SlotDTO `gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

// TableName overrides GORM's default naming to use "jobs".
func (JobDTO) TableName() string {
	return "jobs"
}

// SiteDTO represents an embedded job site: a street address plus the
// coordinates the visibility radius check runs against.
type SiteDTO struct {
	Address   string  `gorm:"type:varchar(512)"`
	Latitude  float64 `gorm:"type:double precision"`
	Longitude float64 `gorm:"type:double precision"`
}

// SlotDTO represents one requirement slot row. The accepted truck shapes
// and the rate table are stored as JSON documents; they are opaque to every
// query the system runs, so relational decomposition buys nothing.
type SlotDTO struct {
	ID               uuid.UUID  `gorm:"type:uuid;primaryKey"`
	JobID            uuid.UUID  `gorm:"type:uuid;not null;index"`
	Accepted         string     `gorm:"type:jsonb"`
	Rates            string     `gorm:"type:jsonb"`
	PreferredTruckID *uuid.UUID `gorm:"type:uuid"`
	PreferredOwnerID *uuid.UUID `gorm:"type:uuid"`
	IsScheduled      bool
	IsActive         bool
}

// TableName overrides GORM's default naming to use "job_slots".
func (SlotDTO) TableName() string {
	return "job_slots"
}

func fromDomain(aggregate *job.Job) (JobDTO, error) {
	jobID := aggregate.ID().Bytes()
	slots := make([]SlotDTO, 0, len(aggregate.Slots()))
	for _, slot := range aggregate.Slots() {
		dto, err := slotFromDomain(jobID, slot)
		if err != nil {
			return JobDTO{}, err
		}
		slots = append(slots, dto)
	}

	return JobDTO{
		ID:           jobID,
		ContractorID: aggregate.ContractorID().Bytes(),
		Status:       int(aggregate.Status()),
		WindowStart:  aggregate.Window().Start(),
		WindowEnd:    aggregate.Window().End(),
		LoadSite:     siteFromDomain(aggregate.LoadSite()),
		DumpSite:     siteFromDomain(aggregate.DumpSite()),
		PaymentDue:   aggregate.PaymentDue(),
		OnHold:       aggregate.OnHold(),
		CreatedAt:    aggregate.CreatedAt(),
		Slots:        slots,
	}, nil
}

func siteFromDomain(site job.Site) SiteDTO {
	return SiteDTO{
		Address:   site.Address,
		Latitude:  site.Point.Latitude(),
		Longitude: site.Point.Longitude(),
	}
}

func slotFromDomain(jobID uuid.UUID, slot *job.TruckCategory) (SlotDTO, error) {
	accepted, err := json.Marshal(slot.Accepted())
	if err != nil {
		return SlotDTO{}, err
	}
	rates, err := json.Marshal(slot.Rates())
	if err != nil {
		return SlotDTO{}, err
	}

	var preferredTruckID, preferredOwnerID *uuid.UUID
	if id := slot.PreferredTruckID(); id != nil {
		raw := id.Bytes()
		preferredTruckID = &raw
	}
	if id := slot.PreferredOwnerID(); id != nil {
		raw := id.Bytes()
		preferredOwnerID = &raw
	}

	return SlotDTO{
		ID:               slot.ID().Bytes(),
		JobID:            jobID,
		Accepted:         string(accepted),
		Rates:            string(rates),
		PreferredTruckID: preferredTruckID,
		PreferredOwnerID: preferredOwnerID,
		IsScheduled:      slot.IsScheduled(),
		IsActive:         slot.IsActive(),
	}, nil
}

func toDomain(dto JobDTO) (*job.Job, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	contractorID, err := kernel.UUIDFromBytes(dto.ContractorID[:])
	if err != nil {
		return nil, err
	}
	window, err := kernel.NewTimeWindow(dto.WindowStart, dto.WindowEnd)
	if err != nil {
		return nil, err
	}
	loadSite, err := siteToDomain(dto.LoadSite)
	if err != nil {
		return nil, err
	}
	dumpSite, err := siteToDomain(dto.DumpSite)
	if err != nil {
		return nil, err
	}

	slots := make([]*job.TruckCategory, 0, len(dto.Slots))
	for _, slotDto := range dto.Slots {
		slot, slotErr := slotToDomain(slotDto)
		if slotErr != nil {
			return nil, slotErr
		}
		slots = append(slots, slot)
	}

	return job.RestoreJob(id, contractorID, job.Status(dto.Status), window,
		loadSite, dumpSite, dto.PaymentDue, dto.OnHold, slots, dto.CreatedAt)
}

func siteToDomain(dto SiteDTO) (job.Site, error) {
	point, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return job.Site{}, err
	}
	return job.Site{Address: dto.Address, Point: point}, nil
}

func slotToDomain(dto SlotDTO) (*job.TruckCategory, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var accepted []job.TruckSpec
	if err = json.Unmarshal([]byte(dto.Accepted), &accepted); err != nil {
		return nil, err
	}
	var rates map[fleet.TruckType]job.Rate
	if err = json.Unmarshal([]byte(dto.Rates), &rates); err != nil {
		return nil, err
	}

	var preferredTruckID, preferredOwnerID *kernel.UUID
	if dto.PreferredTruckID != nil {
		truckID, truckErr := kernel.UUIDFromBytes((*dto.PreferredTruckID)[:])
		if truckErr != nil {
			return nil, truckErr
		}
		preferredTruckID = &truckID
	}
	if dto.PreferredOwnerID != nil {
		ownerID, ownerErr := kernel.UUIDFromBytes((*dto.PreferredOwnerID)[:])
		if ownerErr != nil {
			return nil, ownerErr
		}
		preferredOwnerID = &ownerID
	}

	return job.RestoreTruckCategory(id, accepted, rates,
		preferredTruckID, preferredOwnerID, dto.IsScheduled, dto.IsActive)
}
