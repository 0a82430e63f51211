// Copyright 2025 The Placenear Authors
//
// SPDX-License-Identifier: Apache-2.0
package spatial

import (
	"math"
	"testing"
)

// Reference points around Nice, France (Pasteur hospital area).
var (
	niceHospital = Point{Lat: 43.68910, Lng: 7.24114}
	nicePark     = Point{Lat: 43.68948, Lng: 7.24144}
)

func TestHaversineSamePointIsZero(t *testing.T) {
	points := []Point{
		niceHospital,
		{Lat: 0, Lng: 0},
		{Lat: -33.4489, Lng: -70.6693},
		{Lat: 89.9, Lng: 179.9},
	}

	for _, p := range points {
		if got := p.HaversineKm(p); got != 0 {
			t.Errorf("HaversineKm(%s, %s) = %v, want 0", p, p, got)
		}
	}
}

func TestHaversineSymmetry(t *testing.T) {
	pairs := []struct {
		a, b Point
	}{
		{niceHospital, nicePark},
		{Point{Lat: 48.8566, Lng: 2.3522}, Point{Lat: 51.5074, Lng: -0.1278}},
		{Point{Lat: -34.9011, Lng: -56.1645}, Point{Lat: 40.4168, Lng: -3.7038}},
	}

	for _, tt := range pairs {
		ab := tt.a.HaversineKm(tt.b)
		ba := tt.b.HaversineKm(tt.a)

		if ab != ba {
			t.Errorf("HaversineKm not symmetric: %v vs %v for %s / %s", ab, ba, tt.a, tt.b)
		}
	}
}

func TestHaversineTriangleInequality(t *testing.T) {
	triples := []struct {
		a, b, c Point
	}{
		{niceHospital, nicePark, Point{Lat: 43.69120, Lng: 7.24310}},
		{Point{Lat: 0, Lng: 0}, Point{Lat: 10, Lng: 10}, Point{Lat: -5, Lng: 20}},
		{Point{Lat: 48.8566, Lng: 2.3522}, Point{Lat: 51.5074, Lng: -0.1278}, Point{Lat: 52.5200, Lng: 13.4050}},
	}

	const tolerance = 1e-9

	for _, tt := range triples {
		ac := tt.a.HaversineKm(tt.c)
		detour := tt.a.HaversineKm(tt.b) + tt.b.HaversineKm(tt.c)

		if ac > detour+tolerance {
			t.Errorf("triangle inequality violated: d(a,c)=%v > d(a,b)+d(b,c)=%v", ac, detour)
		}
	}
}

func TestHaversineKnownDistances(t *testing.T) {
	tests := []struct {
		name       string
		a, b       Point
		wantMeters float64
		tolMeters  float64
	}{
		{
			name:       "exact match",
			a:          niceHospital,
			b:          niceHospital,
			wantMeters: 0,
			tolMeters:  0,
		},
		{
			name:       "hospital to nearby park",
			a:          niceHospital,
			b:          nicePark,
			wantMeters: 48.71,
			tolMeters:  1, // ±1 meter rounding tolerance
		},
		{
			name:       "paris to london",
			a:          Point{Lat: 48.8566, Lng: 2.3522},
			b:          Point{Lat: 51.5074, Lng: -0.1278},
			wantMeters: 343954.46,
			tolMeters:  10,
		},
		{
			name:       "one degree of longitude at the equator",
			a:          Point{Lat: 0, Lng: 0},
			b:          Point{Lat: 0, Lng: 1},
			wantMeters: 111323.87,
			tolMeters:  10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.HaversineMeters(tt.b)
			if math.Abs(got-tt.wantMeters) > tt.tolMeters {
				t.Errorf("HaversineMeters() = %v, want %v ±%v", got, tt.wantMeters, tt.tolMeters)
			}

			km := tt.a.HaversineKm(tt.b)
			if math.Abs(km*MetersPerKilometer-got) > 1e-9 {
				t.Errorf("meter conversion drifted: %v km vs %v m", km, got)
			}
		})
	}
}

func TestUnitConversions(t *testing.T) {
	if got := KilometersToMiles(100); math.Abs(got-62.1371) > 1e-9 {
		t.Errorf("KilometersToMiles(100) = %v, want 62.1371", got)
	}

	for _, km := range []float64{0, 1, 42.195, 6378.388} {
		back := MilesToKilometers(KilometersToMiles(km))
		if math.Abs(back-km) > 1e-9 {
			t.Errorf("round trip for %v km gave %v", km, back)
		}
	}
}

func TestPointString(t *testing.T) {
	p := Point{Lat: 43.68910, Lng: 7.24114}
	if got, want := p.String(), "POINT(7.241140 43.689100)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
