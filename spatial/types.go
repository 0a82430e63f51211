// Copyright 2025 The Placenear Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"
	"math"
)

// EarthRadiusKm is the Earth's radius in kilometers used by the haversine
// formula. See https://en.wikipedia.org/wiki/Earth_radius.
const EarthRadiusKm = 6378.388

// MetersPerKilometer is the labeled conversion factor between the internal
// kilometer unit and meters. Distances are kilometers everywhere inside the
// library; meters appear only through HaversineMeters or this constant.
const MetersPerKilometer = 1000.0

const milesPerKilometer = 0.621371

// Point represents a geographical point with latitude and longitude.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String returns the WKT representation of the Point.
func (p Point) String() string {
	return fmt.Sprintf("POINT(%f %f)", p.Lng, p.Lat)
}

// HaversineKm calculates the great-circle distance to another point in
// kilometers. The result is deterministic and non-negative for valid
// coordinates; NaN or out-of-range input yields an undefined result, which
// is the caller's responsibility to avoid.
func (p Point) HaversineKm(other Point) float64 {
	dLat := (other.Lat - p.Lat) * math.Pi / 180
	dLng := (other.Lng - p.Lng) * math.Pi / 180
	lat1 := p.Lat * math.Pi / 180
	lat2 := other.Lat * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Asin(math.Sqrt(a))

	return EarthRadiusKm * c
}

// HaversineMeters is HaversineKm converted to meters.
func (p Point) HaversineMeters(other Point) float64 {
	return p.HaversineKm(other) * MetersPerKilometer
}

// KilometersToMiles converts kilometers to miles.
func KilometersToMiles(km float64) float64 {
	return km * milesPerKilometer
}

// MilesToKilometers converts miles to kilometers.
func MilesToKilometers(mi float64) float64 {
	return mi / milesPerKilometer
}
