package http

import (
	"time"

	"github.com/google/uuid"

	"hauling/internal/core/application/usecases/commands"
	"hauling/internal/core/application/usecases/queries"
	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
)

// Error is the uniform error body every endpoint returns on failure.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// GeoPoint is a WGS84 coordinate in a request or response body.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Site is a named job location: a street address plus its coordinate.
type Site struct {
	Address string   `json:"address"`
	Point   GeoPoint `json:"point"`
}

// TruckSpec is one accepted truck shape on a requirement slot.
type TruckSpec struct {
	Type     string   `json:"type"`
	Subtypes []string `json:"subtypes,omitempty"`
}

// Rate is one row of a slot's rate table, keyed by truck type.
type Rate struct {
	Price        float64 `json:"price"`
	CustomerRate float64 `json:"customerRate"`
	PartnerRate  float64 `json:"partnerRate"`
	Basis        string  `json:"basis"`
}

// NewSlot describes one requirement slot on a job being posted.
type NewSlot struct {
	Accepted         []TruckSpec     `json:"accepted"`
	Rates            map[string]Rate `json:"rates"`
	PreferredTruckID *string         `json:"preferredTruckId,omitempty"`
	PreferredOwnerID *string         `json:"preferredOwnerId,omitempty"`
}

// NewJob is the body of POST /api/v1/jobs.
type NewJob struct {
	ContractorID string    `json:"contractorId"`
	WindowStart  time.Time `json:"windowStart"`
	WindowEnd    time.Time `json:"windowEnd"`
	LoadSite     Site      `json:"loadSite"`
	DumpSite     Site      `json:"dumpSite"`
	PaymentDue   time.Time `json:"paymentDue"`
	Slots        []NewSlot `json:"slots"`
}

// JobCreated carries the server-assigned id of a newly posted job.
type JobCreated struct {
	ID uuid.UUID `json:"id"`
}

// TruckPair is one driver/truck pair in a scheduling offer.
type TruckPair struct {
	DriverID string `json:"driverId"`
	TruckID  string `json:"truckId"`
}

// ScheduleTrucks is the body of POST /api/v1/jobs/:jobID/schedules.
type ScheduleTrucks struct {
	OwnerID string      `json:"ownerId"`
	Pairs   []TruckPair `json:"pairs"`
}

// JobHold is the body of POST /api/v1/jobs/:jobID/hold.
type JobHold struct {
	OnHold bool `json:"onHold"`
}

// ClockOut is the body of POST /api/v1/assignations/:assignationID/clock-out.
// Actor is "driver", "owner" or "system"; Reason is required when an owner
// finishes someone else's assignation.
type ClockOut struct {
	Actor  string  `json:"actor"`
	Reason string  `json:"reason,omitempty"`
	Tons   float64 `json:"tons,omitempty"`
}

// NewSwitchRequest is the body of
// POST /api/v1/assignations/:assignationID/switch-requests.
type NewSwitchRequest struct {
	TargetJobID string `json:"targetJobId"`
}

// SwitchResponse is the body of
// POST /api/v1/switch-requests/:requestID/response.
type SwitchResponse struct {
	Accept bool `json:"accept"`
}

// VisibleSlot is one open requirement slot in the owner job feed.
type VisibleSlot struct {
	ID       uuid.UUID       `json:"id"`
	Accepted []TruckSpec     `json:"accepted"`
	Rates    map[string]Rate `json:"rates"`
}

// VisibleJob is one feed entry of GET /api/v1/owners/:ownerID/jobs.
type VisibleJob struct {
	ID          uuid.UUID     `json:"id"`
	WindowStart time.Time     `json:"windowStart"`
	WindowEnd   time.Time     `json:"windowEnd"`
	LoadSite    Site          `json:"loadSite"`
	DumpSite    Site          `json:"dumpSite"`
	PaymentDue  time.Time     `json:"paymentDue"`
	OpenSlots   []VisibleSlot `json:"openSlots"`
}

// ScheduleEntry is one booking row of GET /api/v1/owners/:ownerID/schedule.
type ScheduleEntry struct {
	ScheduledJobID uuid.UUID  `json:"scheduledJobId"`
	JobID          uuid.UUID  `json:"jobId"`
	AssignationID  uuid.UUID  `json:"assignationId"`
	DriverID       uuid.UUID  `json:"driverId"`
	TruckID        uuid.UUID  `json:"truckId"`
	TruckType      string     `json:"truckType"`
	RatePrice      float64    `json:"ratePrice"`
	RateBasis      string     `json:"rateBasis"`
	WindowStart    time.Time  `json:"windowStart"`
	WindowEnd      time.Time  `json:"windowEnd"`
	StartedAt      *time.Time `json:"startedAt,omitempty"`
	FinishedAt     *time.Time `json:"finishedAt,omitempty"`
	Loads          int        `json:"loads"`
	Tons           float64    `json:"tons"`
}

func siteFromBody(body Site) (job.Site, error) {
	point, err := kernel.NewGeoPoint(body.Point.Latitude, body.Point.Longitude)
	if err != nil {
		return job.Site{}, err
	}

	return job.Site{Address: body.Address, Point: point}, nil
}

func siteToBody(site job.Site) Site {
	return Site{
		Address: site.Address,
		Point: GeoPoint{
			Latitude:  site.Point.Latitude(),
			Longitude: site.Point.Longitude(),
		},
	}
}

func specsFromBody(body []TruckSpec) []job.TruckSpec {
	specs := make([]job.TruckSpec, len(body))
	for i, spec := range body {
		specs[i] = job.TruckSpec{
			Type:     fleet.TruckType(spec.Type),
			Subtypes: spec.Subtypes,
		}
	}

	return specs
}

func specsToBody(specs []job.TruckSpec) []TruckSpec {
	body := make([]TruckSpec, len(specs))
	for i, spec := range specs {
		body[i] = TruckSpec{
			Type:     string(spec.Type),
			Subtypes: spec.Subtypes,
		}
	}

	return body
}

func ratesFromBody(body map[string]Rate) map[fleet.TruckType]job.Rate {
	rates := make(map[fleet.TruckType]job.Rate, len(body))
	for truckType, rate := range body {
		rates[fleet.TruckType(truckType)] = job.Rate{
			Price:        rate.Price,
			CustomerRate: rate.CustomerRate,
			PartnerRate:  rate.PartnerRate,
			Basis:        job.PaymentBasis(rate.Basis),
		}
	}

	return rates
}

func ratesToBody(rates map[fleet.TruckType]job.Rate) map[string]Rate {
	body := make(map[string]Rate, len(rates))
	for truckType, rate := range rates {
		body[string(truckType)] = Rate{
			Price:        rate.Price,
			CustomerRate: rate.CustomerRate,
			PartnerRate:  rate.PartnerRate,
			Basis:        string(rate.Basis),
		}
	}

	return body
}

func slotsFromBody(body []NewSlot) ([]commands.SlotInput, error) {
	slots := make([]commands.SlotInput, len(body))
	for i, slot := range body {
		input := commands.SlotInput{
			Accepted: specsFromBody(slot.Accepted),
			Rates:    ratesFromBody(slot.Rates),
		}

		if slot.PreferredTruckID != nil {
			truckID, err := kernel.UUIDFromString(*slot.PreferredTruckID)
			if err != nil {
				return nil, err
			}
			input.PreferredTruckID = &truckID
		}
		if slot.PreferredOwnerID != nil {
			ownerID, err := kernel.UUIDFromString(*slot.PreferredOwnerID)
			if err != nil {
				return nil, err
			}
			input.PreferredOwnerID = &ownerID
		}

		slots[i] = input
	}

	return slots, nil
}

func visibleJobToBody(response queries.GetVisibleJobsQueryResponse) VisibleJob {
	slots := make([]VisibleSlot, len(response.OpenSlots))
	for i, slot := range response.OpenSlots {
		slots[i] = VisibleSlot{
			ID:       slot.ID.Bytes(),
			Accepted: specsToBody(slot.Accepted),
			Rates:    ratesToBody(slot.Rates),
		}
	}

	return VisibleJob{
		ID:          response.ID.Bytes(),
		WindowStart: response.Window.Start(),
		WindowEnd:   response.Window.End(),
		LoadSite:    siteToBody(response.LoadSite),
		DumpSite:    siteToBody(response.DumpSite),
		PaymentDue:  response.PaymentDue,
		OpenSlots:   slots,
	}
}

func scheduleEntryToBody(response queries.GetOwnerScheduleQueryResponse) ScheduleEntry {
	return ScheduleEntry{
		ScheduledJobID: response.ScheduledJobID.Bytes(),
		JobID:          response.JobID.Bytes(),
		AssignationID:  response.AssignationID.Bytes(),
		DriverID:       response.DriverID.Bytes(),
		TruckID:        response.TruckID.Bytes(),
		TruckType:      response.TruckType,
		RatePrice:      response.RatePrice,
		RateBasis:      response.RateBasis,
		WindowStart:    response.WindowStart,
		WindowEnd:      response.WindowEnd,
		StartedAt:      response.StartedAt,
		FinishedAt:     response.FinishedAt,
		Loads:          response.Loads,
		Tons:           response.Tons,
	}
}
