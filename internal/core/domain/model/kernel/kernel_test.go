package kernel_test

import (
	"testing"
	"time"

	"hauling/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	t.Run("new_uuid_is_valid_and_unique", func(t *testing.T) {
		a := kernel.NewUUID()
		b := kernel.NewUUID()

		require.NoError(t, a.Validate())
		assert.False(t, a.IsEqual(b))
		assert.True(t, a.IsEqual(a))
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var id kernel.UUID
		require.Error(t, id.Validate())
	})

	t.Run("round_trips_through_string", func(t *testing.T) {
		id := kernel.NewUUID()
		parsed, err := kernel.UUIDFromString(id.String())
		require.NoError(t, err)
		assert.True(t, id.IsEqual(parsed))
	})

	t.Run("rejects_malformed_string", func(t *testing.T) {
		_, err := kernel.UUIDFromString("not-a-uuid")
		require.Error(t, err)
	})

	t.Run("rejects_nil_bytes", func(t *testing.T) {
		_, err := kernel.UUIDFromBytes(make([]byte, 16))
		require.Error(t, err)
	})
}

func TestTimeWindow(t *testing.T) {
	base := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

	t.Run("valid_window", func(t *testing.T) {
		w, err := kernel.NewTimeWindow(base, base.Add(4*time.Hour))
		require.NoError(t, err)
		require.NoError(t, w.Validate())
		assert.Equal(t, 4*time.Hour, w.Duration())
	})

	t.Run("end_must_be_after_start", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(base, base)
		require.Error(t, err)

		_, err = kernel.NewTimeWindow(base, base.Add(-time.Hour))
		require.Error(t, err)
	})

	t.Run("zero_bounds_are_required", func(t *testing.T) {
		_, err := kernel.NewTimeWindow(time.Time{}, base)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var w kernel.TimeWindow
		require.Error(t, w.Validate())
	})

	t.Run("overlap_detection", func(t *testing.T) {
		w, err := kernel.NewTimeWindow(base, base.Add(2*time.Hour))
		require.NoError(t, err)

		overlapping, err := kernel.NewTimeWindow(base.Add(time.Hour), base.Add(3*time.Hour))
		require.NoError(t, err)
		assert.True(t, w.Overlaps(overlapping))

		disjoint, err := kernel.NewTimeWindow(base.Add(3*time.Hour), base.Add(5*time.Hour))
		require.NoError(t, err)
		assert.False(t, w.Overlaps(disjoint))
	})

	t.Run("padding_turns_adjacent_windows_into_overlaps", func(t *testing.T) {
		// A 23:00-01:00 booking padded by one hour collides with 01:30-03:00.
		w, err := kernel.NewTimeWindow(base, base.Add(2*time.Hour))
		require.NoError(t, err)

		adjacent, err := kernel.NewTimeWindow(base.Add(150*time.Minute), base.Add(4*time.Hour))
		require.NoError(t, err)

		assert.False(t, w.Overlaps(adjacent))
		assert.True(t, w.Padded(time.Hour).Overlaps(adjacent))
	})
}

func TestGeoPoint(t *testing.T) {
	t.Run("valid_point", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.InDelta(t, 40.7128, p.Latitude(), 0.0001)
	})

	t.Run("rejects_out_of_range_coordinates", func(t *testing.T) {
		_, err := kernel.NewGeoPoint(91, 0)
		require.Error(t, err)

		_, err = kernel.NewGeoPoint(0, -181)
		require.Error(t, err)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p kernel.GeoPoint
		require.Error(t, p.Validate())
	})

	t.Run("distance_between_known_points", func(t *testing.T) {
		// New York to Philadelphia, roughly 130 km.
		nyc, err := kernel.NewGeoPoint(40.7128, -74.0060)
		require.NoError(t, err)
		phl, err := kernel.NewGeoPoint(39.9526, -75.1652)
		require.NoError(t, err)

		d := nyc.DistanceKm(phl)
		assert.InDelta(t, 130, d, 5)
		assert.InDelta(t, d, phl.DistanceKm(nyc), 0.001)
	})

	t.Run("distance_to_self_is_zero", func(t *testing.T) {
		p, err := kernel.NewGeoPoint(12.34, 56.78)
		require.NoError(t, err)
		assert.InDelta(t, 0, p.DistanceKm(p), 0.0001)
	})
}
