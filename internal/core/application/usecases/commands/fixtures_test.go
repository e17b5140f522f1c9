package commands_test

import (
	"testing"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/job"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/model/schedule"

	"github.com/stretchr/testify/require"
)

// Shared fixtures for the handler tests. The clock is frozen so window
// arithmetic stays deterministic.

var (
	frozenNow  = time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	hourlyRate = job.Rate{Price: 95, CustomerRate: 120, PartnerRate: 25, Basis: job.PayHourly}
)

func frozenClock() time.Time { return frozenNow }

func testPoint(t *testing.T) kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(40.7128, -74.006)
	require.NoError(t, err)
	return p
}

func windowAt(t *testing.T, start time.Time, d time.Duration) kernel.TimeWindow {
	t.Helper()
	w, err := kernel.NewTimeWindow(start, start.Add(d))
	require.NoError(t, err)
	return w
}

func newOpenSlot(t *testing.T, truckType fleet.TruckType) *job.TruckCategory {
	t.Helper()
	slot, err := job.NewTruckCategory(kernel.NewUUID(),
		[]job.TruckSpec{{Type: truckType}},
		map[fleet.TruckType]job.Rate{truckType: hourlyRate},
		nil, nil)
	require.NoError(t, err)
	return slot
}

func newJobAt(t *testing.T, window kernel.TimeWindow, slots ...*job.TruckCategory) *job.Job {
	t.Helper()
	site := job.Site{Address: "1 Quarry Rd", Point: testPoint(t)}
	j, err := job.NewJob(kernel.NewUUID(), kernel.NewUUID(), window, site, site,
		frozenNow.AddDate(0, 1, 0), slots, frozenNow.Add(-24*time.Hour))
	require.NoError(t, err)
	return j
}

func newTestJob(t *testing.T, slots ...*job.TruckCategory) *job.Job {
	t.Helper()
	return newJobAt(t, windowAt(t, frozenNow.Add(2*time.Hour), 8*time.Hour), slots...)
}

func newAssignationFor(t *testing.T, slot *job.TruckCategory, truckType fleet.TruckType) *schedule.Assignation {
	t.Helper()
	a, err := schedule.NewAssignation(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		slot.ID(), truckType, hourlyRate)
	require.NoError(t, err)
	return a
}

func newScheduleFor(t *testing.T, j *job.Job, assignations ...*schedule.Assignation) *schedule.ScheduledJob {
	t.Helper()
	s, err := schedule.NewScheduledJob(kernel.NewUUID(), j.ID(), kernel.NewUUID(), j.PaymentDue())
	require.NoError(t, err)
	for _, a := range assignations {
		require.NoError(t, s.AddAssignation(a))
	}
	return s
}

func ownerFleetPair(companyID kernel.UUID, truckType fleet.TruckType) (fleet.Driver, fleet.Truck) {
	driver := fleet.Driver{ID: kernel.NewUUID(), CompanyID: companyID, Name: "Driver"}
	truck := fleet.Truck{ID: kernel.NewUUID(), CompanyID: companyID, Type: truckType, Active: true}
	return driver, truck
}
