// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-cmp/cmp"

	"placenear/spatial"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) *GoogleProvider {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	provider, err := NewGoogleProvider(GoogleOptions{
		APIKey:  "test-key",
		BaseURL: srv.URL,
	})
	if err != nil {
		t.Fatal(err)
	}

	return provider
}

func TestNewGoogleProviderRequiresKey(t *testing.T) {
	if _, err := NewGoogleProvider(GoogleOptions{}); err == nil {
		t.Fatal("expected an error for empty API key")
	}
}

func TestGeocode(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Path, "/maps/api/geocode/json"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}

		if got, want := r.URL.Query().Get("address"), "30 Voie Romaine, Nice"; got != want {
			t.Errorf("address = %q, want %q", got, want)
		}

		if got, want := r.URL.Query().Get("key"), "test-key"; got != want {
			t.Errorf("key = %q, want %q", got, want)
		}

		fmt.Fprint(w, `{
			"status": "OK",
			"results": [
				{
					"formatted_address": "30 Voie Romaine, 06000 Nice, France",
					"place_id": "ChIJoWm3KDXQzRIRXz5nLK9DkF8",
					"geometry": {
						"location": {"lat": 43.68910, "lng": 7.24114},
						"location_type": "ROOFTOP"
					},
					"types": ["hospital", "health", "point_of_interest"]
				},
				{
					"formatted_address": "Voie Romaine, 06100 Nice, France",
					"place_id": "ChIJXxxxxxxQzRIRXz5nLK9DkF9",
					"geometry": {
						"location": {"lat": 43.69120, "lng": 7.24310},
						"location_type": "GEOMETRIC_CENTER"
					},
					"types": ["route"]
				}
			]
		}`)
	})

	// Extra whitespace collapses before the request is sent.
	results, err := provider.Geocode(context.Background(), "  30  Voie Romaine,  Nice ")
	if err != nil {
		t.Fatal(err)
	}

	expected := []GeocodeResult{
		{
			FormattedAddress: "30 Voie Romaine, 06000 Nice, France",
			PlaceID:          "ChIJoWm3KDXQzRIRXz5nLK9DkF8",
			Point:            spatial.Point{Lat: 43.68910, Lng: 7.24114},
			LocationType:     LocationTypeRooftop,
			Types:            []string{"hospital", "health", "point_of_interest"},
		},
		{
			FormattedAddress: "Voie Romaine, 06100 Nice, France",
			PlaceID:          "ChIJXxxxxxxQzRIRXz5nLK9DkF9",
			Point:            spatial.Point{Lat: 43.69120, Lng: 7.24310},
			LocationType:     LocationTypeGeometricCenter,
			Types:            []string{"route"},
		},
	}

	if diff := cmp.Diff(expected, results); diff != "" {
		t.Errorf("Geocode() mismatch (-want +got):\n%s", diff)
	}
}

func TestGeocodeZeroResultsIsNotAnError(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "ZERO_RESULTS", "results": []}`)
	})

	results, err := provider.Geocode(context.Background(), "nowhere at all")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(results) != 0 {
		t.Errorf("expected empty results, got %v", results)
	}
}

func TestGeocodeQuotaExceeded(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "OVER_QUERY_LIMIT", "results": [], "error_message": "You have exceeded your daily request quota"}`)
	})

	_, err := provider.Geocode(context.Background(), "Nice, France")
	if err == nil {
		t.Fatal("expected an error")
	}

	if !IsQuotaExceeded(err) {
		t.Errorf("expected a quota error, got %v", err)
	}
}

func TestGeocodeRequestDenied(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "REQUEST_DENIED", "results": [], "error_message": "The provided API key is invalid"}`)
	})

	_, err := provider.Geocode(context.Background(), "Nice, France")
	if err == nil {
		t.Fatal("expected an error")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
}

func TestGeocodeEmptyAddress(t *testing.T) {
	provider := newTestProvider(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request should be sent for an empty address")
	})

	_, err := provider.Geocode(context.Background(), "   ")
	if err == nil {
		t.Fatal("expected an error")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) || provErr.Kind != ErrorKindInvalidRequest {
		t.Errorf("expected an invalid-request error, got %v", err)
	}
}

func TestGeocodeHTTPErrors(t *testing.T) {
	tests := []struct {
		name       string
		statusCode int
		check      func(error) bool
	}{
		{"forbidden is quota", http.StatusForbidden, IsQuotaExceeded},
		{"too many requests is rate limit", http.StatusTooManyRequests, IsRateLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.statusCode)
			})

			_, err := provider.Geocode(context.Background(), "Nice, France")
			if err == nil {
				t.Fatal("expected an error")
			}

			if !tt.check(err) {
				t.Errorf("error not classified as expected: %v", err)
			}
		})
	}
}

func TestGeocodeMalformedResponse(t *testing.T) {
	provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, `{"status": "OK", "results": [`)
	})

	_, err := provider.Geocode(context.Background(), "Nice, France")
	if err == nil {
		t.Fatal("expected an error")
	}

	var provErr *ProviderError
	if !errors.As(err, &provErr) {
		t.Fatalf("expected *ProviderError, got %T", err)
	}
}

func TestFindNearby(t *testing.T) {
	origin := spatial.Point{Lat: 43.68910, Lng: 7.24114}

	provider := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		if got, want := r.URL.Path, "/maps/api/place/nearbysearch/json"; got != want {
			t.Errorf("path = %q, want %q", got, want)
		}

		q := r.URL.Query()
		if got, want := q.Get("location"), "43.6891,7.24114"; got != want {
			t.Errorf("location = %q, want %q", got, want)
		}

		if got, want := q.Get("radius"), "500"; got != want {
			t.Errorf("radius = %q, want %q", got, want)
		}

		if got, want := q.Get("type"), "park"; got != want {
			t.Errorf("type = %q, want %q", got, want)
		}

		fmt.Fprint(w, `{
			"status": "OK",
			"results": [
				{
					"name": "Jardin du Monastère",
					"geometry": {"location": {"lat": 43.68948, "lng": 7.24144}},
					"types": ["park", "point_of_interest"]
				},
				{
					"name": "Parc des Arènes de Cimiez",
					"geometry": {"location": {"lat": 43.69120, "lng": 7.24310}},
					"types": ["park"]
				}
			]
		}`)
	})

	candidates, err := provider.FindNearby(context.Background(), origin, 500, "park")
	if err != nil {
		t.Fatal(err)
	}

	expected := []Candidate{
		{
			Name:  "Jardin du Monastère",
			Types: []string{"park", "point_of_interest"},
			Point: spatial.Point{Lat: 43.68948, Lng: 7.24144},
		},
		{
			Name:  "Parc des Arènes de Cimiez",
			Types: []string{"park"},
			Point: spatial.Point{Lat: 43.69120, Lng: 7.24310},
		},
	}

	if diff := cmp.Diff(expected, candidates); diff != "" {
		t.Errorf("FindNearby() mismatch (-want +got):\n%s", diff)
	}
}

func TestFindNearbyNonOKStatusMeansNoResults(t *testing.T) {
	for _, status := range []string{"ZERO_RESULTS", "INVALID_REQUEST", "UNKNOWN_ERROR"} {
		t.Run(status, func(t *testing.T) {
			provider := newTestProvider(t, func(w http.ResponseWriter, _ *http.Request) {
				fmt.Fprintf(w, `{"status": %q, "results": []}`, status)
			})

			candidates, err := provider.FindNearby(context.Background(), spatial.Point{Lat: 43.68910, Lng: 7.24114}, 500, "park")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(candidates) != 0 {
				t.Errorf("expected empty results, got %v", candidates)
			}
		})
	}
}

func TestFindNearbyInvalidRadius(t *testing.T) {
	provider := newTestProvider(t, func(_ http.ResponseWriter, _ *http.Request) {
		t.Error("no request should be sent for an invalid radius")
	})

	for _, radius := range []float64{0, -100} {
		_, err := provider.FindNearby(context.Background(), spatial.Point{}, radius, "")
		if err == nil {
			t.Fatalf("expected an error for radius %v", radius)
		}
	}
}
