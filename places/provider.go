// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"

	"placenear/spatial"
)

// Geocoder resolves a free-text address to zero or more candidate results.
//
// An empty result slice with a nil error means the provider found nothing;
// callers must treat that distinctly from an error. Failures surface
// immediately as *ProviderError with no retries.
type Geocoder interface {
	Geocode(ctx context.Context, address string) ([]GeocodeResult, error)
}

// NearbyFinder enumerates points of interest around an origin.
//
// The radius is in meters and category is a single place type string, both
// per the Google Places Nearby Search contract. A provider status other
// than "OK" is treated as no results, not as a failure.
type NearbyFinder interface {
	FindNearby(ctx context.Context, origin spatial.Point, radiusMeters float64, category string) ([]Candidate, error)
}

// Provider is a full geocoding backend.
type Provider interface {
	Geocoder
	NearbyFinder
}
