// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"fmt"
	"sort"

	"placenear/spatial"
)

// RankByDistance scores each candidate with its haversine distance from the
// origin and returns the pairs sorted ascending. The sort is stable, so
// candidates at equal distance keep the provider's order.
//
// The origin must be the coordinate belonging to the same query result the
// candidates were fetched for; mixing coordinates from different geocode
// calls silently produces wrong rankings.
func RankByDistance(origin spatial.Point, candidates []Candidate) []Ranked {
	ranked := make([]Ranked, 0, len(candidates))

	for _, c := range candidates {
		ranked = append(ranked, Ranked{
			Candidate:  c,
			DistanceKm: origin.HaversineKm(c.Point),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	return ranked
}

// FindNearbyRanked fetches candidates around the origin and returns them
// ranked by distance, closest first. An empty result is not an error.
func FindNearbyRanked(ctx context.Context, finder NearbyFinder, origin spatial.Point, radiusMeters float64, category string) ([]Ranked, error) {
	candidates, err := finder.FindNearby(ctx, origin, radiusMeters, category)
	if err != nil {
		return nil, fmt.Errorf("finding places near %s: %w", origin, err)
	}

	return RankByDistance(origin, candidates), nil
}
