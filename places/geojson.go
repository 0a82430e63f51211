// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"placenear/spatial"
	"placenear/strutil"
)

// GeoJSONFinder is an offline NearbyFinder over a local GeoJSON layer of
// point features. Useful for fixed datasets (parks, radars, branches) and
// for working without provider credentials.
type GeoJSONFinder struct {
	candidates []Candidate
}

// LoadGeoJSON loads a GeoJSON FeatureCollection of points. Feature
// properties "name" and "types" map onto the candidate fields; non-point
// geometries are skipped.
func LoadGeoJSON(filepath string) (*GeoJSONFinder, error) {
	data, err := os.ReadFile(filepath) // #nosec G304 - filepath is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("reading geojson file: %w", err)
	}

	var geoJSON struct {
		Features []struct {
			Geometry struct {
				Type string `json:"type"`
				// Left raw: only Point carries a flat [lng, lat] pair,
				// other geometries nest arrays.
				Coordinates json.RawMessage `json:"coordinates"`
			} `json:"geometry"`
			Properties struct {
				Name  string   `json:"name"`
				Types []string `json:"types"`
			} `json:"properties"`
		} `json:"features"`
	}

	if err := json.Unmarshal(data, &geoJSON); err != nil {
		return nil, fmt.Errorf("parsing geojson: %w", err)
	}

	finder := &GeoJSONFinder{}

	for _, feature := range geoJSON.Features {
		if feature.Geometry.Type != "Point" {
			continue
		}

		var coordinates []float64
		if err := json.Unmarshal(feature.Geometry.Coordinates, &coordinates); err != nil {
			return nil, fmt.Errorf("parsing point coordinates for %q: %w", feature.Properties.Name, err)
		}

		if len(coordinates) < 2 {
			continue
		}

		finder.candidates = append(finder.candidates, Candidate{
			Name:  feature.Properties.Name,
			Types: feature.Properties.Types,
			Point: spatial.Point{
				// GeoJSON coordinate order is [lng, lat].
				Lng: coordinates[0],
				Lat: coordinates[1],
			},
		})
	}

	return finder, nil
}

// Len returns the number of loaded features.
func (f *GeoJSONFinder) Len() int {
	return len(f.candidates)
}

// FindNearby returns the features within radiusMeters of the origin, in
// file order. When category is non-empty only candidates carrying that
// type tag (accent- and case-insensitive) are returned.
func (f *GeoJSONFinder) FindNearby(_ context.Context, origin spatial.Point, radiusMeters float64, category string) ([]Candidate, error) {
	if radiusMeters <= 0 {
		return nil, &ProviderError{
			Kind:    ErrorKindInvalidRequest,
			Message: fmt.Sprintf("radius must be positive, got %v", radiusMeters),
		}
	}

	category = strutil.LowerASCIIFolding(category)

	matches := []Candidate{}

	for _, c := range f.candidates {
		if origin.HaversineMeters(c.Point) > radiusMeters {
			continue
		}

		if category != "" && !hasType(c.Types, category) {
			continue
		}

		matches = append(matches, c)
	}

	return matches, nil
}

func hasType(types []string, folded string) bool {
	for _, t := range types {
		if strutil.LowerASCIIFolding(t) == folded {
			return true
		}
	}

	return false
}
