// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

// Package places resolves free-text addresses to coordinates and ranks
// nearby points of interest by great-circle distance.
package places

import (
	"placenear/spatial"
)

// Location precision tags as reported by the Google Geocoding API.
const (
	LocationTypeRooftop           = "ROOFTOP"
	LocationTypeRangeInterpolated = "RANGE_INTERPOLATED"
	LocationTypeGeometricCenter   = "GEOMETRIC_CENTER"
	LocationTypeApproximate       = "APPROXIMATE"
)

// GeocodeResult is one candidate resolution of an address. Results are
// immutable once returned; the provider ranks them by relevance, best first.
type GeocodeResult struct {
	FormattedAddress string        `json:"formatted_address"`
	PlaceID          string        `json:"place_id"`
	Point            spatial.Point `json:"point"`
	// LocationType qualifies how exactly the point matches the true
	// location (rooftop-exact down to approximate).
	LocationType string `json:"location_type"`
	// Types are the provider's category tags, primary first.
	Types []string `json:"types"`
}

// Candidate is a point of interest returned by a nearby search.
type Candidate struct {
	Name  string        `json:"name"`
	Types []string      `json:"types"`
	Point spatial.Point `json:"point"`
}

// Ranked pairs a candidate with its distance from the query origin.
type Ranked struct {
	Candidate Candidate `json:"candidate"`
	// DistanceKm is the great-circle distance from the origin in
	// kilometers. Multiply by spatial.MetersPerKilometer for meters.
	DistanceKm float64 `json:"distance_km"`
}
