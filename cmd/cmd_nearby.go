// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"placenear/places"
	"placenear/spatial"
)

type nearbyOptions struct {
	// RadiusMeters is the search radius around the origin, in meters.
	RadiusMeters float64

	// Category restricts results to one place type (e.g. "park").
	Category string

	// Limit caps the number of printed results. Zero means all.
	Limit int

	// GeoJSON switches to an offline point layer instead of the Google
	// Places API.
	GeoJSON string
}

var nearbyOpts nearbyOptions

var nearbyCmd = &cobra.Command{
	Use:   "nearby <address | lat,lng>",
	Short: "List points of interest around a location, closest first",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		query := strings.Join(args, " ")

		var provider *places.GoogleProvider

		origin, ok := parsePoint(query)
		if !ok {
			// Not a coordinate pair: geocode it, best match wins. The
			// origin used for ranking is the coordinate of this very
			// result, never one from an earlier query.
			var err error

			provider, err = newProvider(ctx)
			if err != nil {
				return err
			}

			results, err := provider.Geocode(ctx, query)
			if err != nil {
				return err
			}

			if len(results) == 0 {
				return fmt.Errorf("no match for %q", query)
			}

			origin = results[0].Point

			fmt.Printf("origin: %s (%.6f,%.6f)\n", results[0].FormattedAddress, origin.Lat, origin.Lng)
		}

		finder, err := resolveFinder(ctx, provider)
		if err != nil {
			return err
		}

		ranked, err := places.FindNearbyRanked(ctx, finder, origin, nearbyOpts.RadiusMeters, nearbyOpts.Category)
		if err != nil {
			return err
		}

		if len(ranked) == 0 {
			fmt.Println("no places found")

			return nil
		}

		if nearbyOpts.Limit > 0 && len(ranked) > nearbyOpts.Limit {
			ranked = ranked[:nearbyOpts.Limit]
		}

		for i, r := range ranked {
			primary := ""
			if len(r.Candidate.Types) > 0 {
				primary = " [" + r.Candidate.Types[0] + "]"
			}

			fmt.Printf("%2d. %7.1f m  %s%s\n", i+1, r.DistanceKm*spatial.MetersPerKilometer, r.Candidate.Name, primary)
		}

		return nil
	},
}

// resolveFinder picks the offline layer when --geojson is set, otherwise the
// Google provider (reusing the one built for geocoding, if any).
func resolveFinder(ctx context.Context, provider *places.GoogleProvider) (places.NearbyFinder, error) {
	if nearbyOpts.GeoJSON != "" {
		return places.LoadGeoJSON(nearbyOpts.GeoJSON)
	}

	if provider != nil {
		return provider, nil
	}

	return newProvider(ctx)
}

func init() {
	rootCmd.AddCommand(nearbyCmd)
	nearbyCmd.Flags().Float64Var(
		&nearbyOpts.RadiusMeters,
		"radius",
		500,
		"search radius in meters",
	)
	nearbyCmd.Flags().StringVar(
		&nearbyOpts.Category,
		"type",
		"",
		"restrict results to one place type, e.g. \"park\"",
	)
	nearbyCmd.Flags().IntVar(
		&nearbyOpts.Limit,
		"limit",
		0,
		"maximum number of results to print (0 prints all)",
	)
	nearbyCmd.Flags().StringVar(
		&nearbyOpts.GeoJSON,
		"geojson",
		"",
		"use a local GeoJSON point layer instead of the Places API",
	)
}
