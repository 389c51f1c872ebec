// Package geo computes great-circle distances to the North Pole.
package geo

import (
	"math"

	dErrors "northpole/pkg/domain-errors"
)

// EarthRadiusKm is the Earth radius used by the Haversine formula.
const EarthRadiusKm = 6371

// DistanceToNorthPoleKm computes the Haversine distance from (lat, lon) to
// the North Pole (90, 0) in kilometers.
//
// Because cos(90°) is zero, the longitude term of the Haversine formula
// cancels and the distance depends on latitude alone. That property is part
// of the contract: two locations with equal latitude yield bit-identical
// distances regardless of longitude, and latitude 90 yields exactly zero.
func DistanceToNorthPoleKm(latitude, longitude float64) (float64, error) {
	if latitude < -90 || latitude > 90 {
		return 0, dErrors.New(dErrors.CodeInvalidInput,
			"latitude must be between -90 and 90 degrees")
	}
	if longitude < -180 || longitude > 180 {
		return 0, dErrors.New(dErrors.CodeInvalidInput,
			"longitude must be between -180 and 180 degrees")
	}

	latDistance := radians(90 - latitude)
	sinHalf := math.Sin(latDistance / 2)
	a := sinHalf * sinHalf
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c, nil
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
