package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "northpole/pkg/domain-errors"
)

func TestDistanceDependsOnLatitudeOnly(t *testing.T) {
	longitudes := []float64{-180, -0.127758, 0, 13.4, 180}
	for _, lat := range []float64{-90, -45.5, 0, 51.507351, 89.999} {
		base, err := DistanceToNorthPoleKm(lat, 0)
		require.NoError(t, err)
		for _, lon := range longitudes {
			d, err := DistanceToNorthPoleKm(lat, lon)
			require.NoError(t, err)
			assert.Equal(t, base, d, "lat %f lon %f", lat, lon)
		}
	}
}

func TestDistanceAtNorthPoleIsZero(t *testing.T) {
	for _, lon := range []float64{-180, -1, 0, 42, 180} {
		d, err := DistanceToNorthPoleKm(90, lon)
		require.NoError(t, err)
		assert.Zero(t, d)
	}
}

func TestDistanceFromMidLatitude(t *testing.T) {
	// A quarter of the meridian: R * pi/4 ~ 5003.77 km.
	d, err := DistanceToNorthPoleKm(45, 0)
	require.NoError(t, err)
	assert.InDelta(t, 5003, d, 1)
}

func TestDistanceFromSouthPole(t *testing.T) {
	// Half the circumference: R * pi.
	d, err := DistanceToNorthPoleKm(-90, 0)
	require.NoError(t, err)
	assert.InDelta(t, 20015, d, 1)
}

func TestInvalidCoordinates(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{name: "latitude too high", lat: 90.1, lon: 0},
		{name: "latitude too low", lat: -91, lon: 0},
		{name: "longitude too high", lat: 0, lon: 180.1},
		{name: "longitude too low", lat: 0, lon: -181},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DistanceToNorthPoleKm(tt.lat, tt.lon)
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
		})
	}
}
