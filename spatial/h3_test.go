// Copyright 2025 The Placenear Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"testing"
)

func TestCellRoundTrip(t *testing.T) {
	p := Point{Lat: 43.68910, Lng: 7.24114}

	for _, resolution := range []int{7, 9, 11} {
		cell, err := Cell(p, resolution)
		if err != nil {
			t.Fatalf("Cell(%s, %d): %v", p, resolution, err)
		}

		center, err := CellCenter(cell)
		if err != nil {
			t.Fatalf("CellCenter(%s): %v", cell, err)
		}

		// The cell center must sit within the cell's own scale. Resolution 7
		// cells are roughly 1.2 km across; finer resolutions shrink by ~2.6x
		// per step, so 2 km is a safe upper bound for all of them.
		if d := p.HaversineKm(center); d > 2 {
			t.Errorf("resolution %d center %s is %v km from origin", resolution, center, d)
		}
	}
}

func TestCellCenterReindexesToSameCell(t *testing.T) {
	p := Point{Lat: -34.9011, Lng: -56.1645}

	cell, err := Cell(p, 9)
	if err != nil {
		t.Fatal(err)
	}

	center, err := CellCenter(cell)
	if err != nil {
		t.Fatal(err)
	}

	again, err := Cell(center, 9)
	if err != nil {
		t.Fatal(err)
	}

	if again != cell {
		t.Errorf("cell center %s indexed to %s, want %s", center, again, cell)
	}
}
