// Copyright 2025 The Placenear Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"fmt"

	"github.com/uber/h3-go/v4"
)

// Cell returns the H3 cell containing the point at the given resolution.
func Cell(p Point, resolution int) (h3.Cell, error) {
	latLng := h3.NewLatLng(p.Lat, p.Lng)

	cell, err := h3.LatLngToCell(latLng, resolution)
	if err != nil {
		return 0, fmt.Errorf("converting %s to h3 cell at resolution %d: %w", p, resolution, err)
	}

	return cell, nil
}

// CellCenter returns the center point of an H3 cell.
func CellCenter(cell h3.Cell) (Point, error) {
	latLng, err := h3.CellToLatLng(cell)
	if err != nil {
		return Point{}, fmt.Errorf("converting h3 cell %s to lat/lng: %w", cell, err)
	}

	return Point{Lat: latLng.Lat, Lng: latLng.Lng}, nil
}
