package services_test

import (
	"testing"
	"time"

	"hauling/internal/core/domain/model/fleet"
	"hauling/internal/core/domain/model/kernel"
	"hauling/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVisibilityPolicy_Delay(t *testing.T) {
	policy := services.NewVisibilityPolicy()

	tests := []struct {
		name       string
		tier       fleet.PriorityTier
		population fleet.TierPopulation
		want       time.Duration
	}{
		{"maximum sees everything immediately", fleet.TierMaximum, fleet.TierPopulation{High: 3, Medium: 5, Low: 9}, 0},
		{"maximum ignores population", fleet.TierMaximum, fleet.TierPopulation{}, 0},

		{"high waits 10 when high present", fleet.TierHigh, fleet.TierPopulation{High: 1}, 10 * time.Minute},
		{"medium waits 25 when high present", fleet.TierMedium, fleet.TierPopulation{High: 1, Medium: 4}, 25 * time.Minute},
		{"low waits 40 when high present", fleet.TierLow, fleet.TierPopulation{High: 1}, 40 * time.Minute},

		{"medium waits 10 when only medium present", fleet.TierMedium, fleet.TierPopulation{Medium: 2}, 10 * time.Minute},
		{"low waits 25 when only medium present", fleet.TierLow, fleet.TierPopulation{Medium: 2, Low: 7}, 25 * time.Minute},

		{"everyone waits 10 with neither tier populated", fleet.TierLow, fleet.TierPopulation{Low: 12}, 10 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Delay(tt.tier, tt.population))
		})
	}

	t.Run("delay never decreases as tier drops", func(t *testing.T) {
		populations := []fleet.TierPopulation{
			{High: 2, Medium: 3, Low: 4},
			{Medium: 3, Low: 4},
			{Low: 4},
			{},
		}
		order := []fleet.PriorityTier{fleet.TierMaximum, fleet.TierHigh, fleet.TierMedium, fleet.TierLow}
		for _, pop := range populations {
			prev := time.Duration(-1)
			for _, tier := range order {
				d := policy.Delay(tier, pop)
				assert.GreaterOrEqual(t, d, prev, "tier %s under %+v", tier, pop)
				prev = d
			}
		}
	})
}

func TestVisibilityPolicy_IsVisible(t *testing.T) {
	policy := services.NewVisibilityPolicy()
	created := time.Date(2024, 6, 10, 8, 0, 0, 0, time.UTC)

	newYork, err := kernel.NewGeoPoint(40.7128, -74.006)
	require.NoError(t, err)
	newark, err := kernel.NewGeoPoint(40.7357, -74.1724)
	require.NoError(t, err)
	philadelphia, err := kernel.NewGeoPoint(39.9526, -75.1652)
	require.NoError(t, err)

	slot := openSlot(t, "10-yard")
	j := jobWithSlots(t, slot) // load site at New York
	ownerID := kernel.NewUUID()

	owner := func(tier fleet.PriorityTier, base kernel.GeoPoint, radiusKm float64) fleet.OwnerProfile {
		return fleet.OwnerProfile{
			ID: ownerID, CompanyID: ownerID, Tier: tier, Verified: true,
			Base: base, JobRadiusKm: radiusKm,
		}
	}
	compatible := []fleet.Truck{{ID: kernel.NewUUID(), CompanyID: ownerID, Type: "10-yard", Active: true}}
	population := fleet.TierPopulation{High: 1, Medium: 1, Low: 1}

	t.Run("nearby maximum owner sees a fresh job", func(t *testing.T) {
		visible := policy.IsVisible(j, owner(fleet.TierMaximum, newark, 50), compatible,
			population, j.CreatedAt().Add(time.Second))
		assert.True(t, visible)
	})

	t.Run("low tier waits out the delay", func(t *testing.T) {
		lowOwner := owner(fleet.TierLow, newark, 50)
		assert.False(t, policy.IsVisible(j, lowOwner, compatible, population, j.CreatedAt().Add(39*time.Minute)))
		assert.True(t, policy.IsVisible(j, lowOwner, compatible, population, j.CreatedAt().Add(40*time.Minute)))
	})

	t.Run("load site outside job radius hides the job", func(t *testing.T) {
		farOwner := owner(fleet.TierMaximum, philadelphia, 50) // NYC is ~130km out
		assert.False(t, policy.IsVisible(j, farOwner, compatible, population, created.Add(time.Hour)))
	})

	t.Run("no compatible truck hides the job", func(t *testing.T) {
		wrongType := []fleet.Truck{{ID: kernel.NewUUID(), CompanyID: ownerID, Type: "super-dump", Active: true}}
		assert.False(t, policy.IsVisible(j, owner(fleet.TierMaximum, newark, 50), wrongType,
			population, created.Add(time.Hour)))
	})

	t.Run("inactive trucks do not count as compatible", func(t *testing.T) {
		inactive := []fleet.Truck{{ID: kernel.NewUUID(), CompanyID: ownerID, Type: "10-yard", Active: false}}
		assert.False(t, policy.IsVisible(j, owner(fleet.TierMaximum, newYork, 50), inactive,
			population, created.Add(time.Hour)))
	})

	t.Run("fully scheduled job disappears", func(t *testing.T) {
		consumedSlot := openSlot(t, "10-yard")
		scheduled := jobWithSlots(t, consumedSlot)
		require.NoError(t, scheduled.ScheduleSlot(consumedSlot.ID()))

		assert.False(t, policy.IsVisible(scheduled, owner(fleet.TierMaximum, newYork, 50), compatible,
			population, scheduled.CreatedAt().Add(time.Hour)))
	})
}
