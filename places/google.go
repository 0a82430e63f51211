// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"os"
	"time"

	"placenear/spatial"
	"placenear/strutil"
	"placenear/utils/httputils"
)

const googleBaseURL = "https://maps.googleapis.com"

// GoogleOptions configuration for GoogleProvider.
type GoogleOptions struct {
	// APIKey is the Google Maps API key. Required.
	APIKey string

	// Region biases geocoding results towards a ccTLD region (e.g. "fr").
	Region string

	// Timeout bounds each request. Zero means 10 seconds.
	Timeout time.Duration

	// UserAgent is the User-Agent header to use in HTTP requests.
	UserAgent string

	// Enables light tracing of HTTP requests and responses to stderr.
	EnableHTTPTrace bool

	// Enables full HTTP body tracing.
	EnableHTTPBodyTrace bool

	// BaseURL overrides the Google Maps endpoint. Tests only.
	BaseURL string
}

// GoogleProvider implements Provider against the Google Maps Geocoding and
// Places Nearby Search APIs. Each call is a single blocking request; there
// are no retries, and failures surface immediately to the caller.
type GoogleProvider struct {
	apiKey     string
	region     string
	baseURL    string
	httpClient *http.Client
}

// NewGoogleProvider creates a Google Maps backed provider.
func NewGoogleProvider(opts GoogleOptions) (*GoogleProvider, error) {
	if opts.APIKey == "" {
		return nil, errors.New("google maps API key is empty")
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		baseURL = googleBaseURL
	}

	var transport http.RoundTripper = http.DefaultTransport

	if opts.UserAgent != "" {
		transport = &httputils.AppendRequestHeadersRoundTripper{
			Transport: transport,
			Headers:   map[string]string{"User-Agent": opts.UserAgent},
		}
	}

	if opts.EnableHTTPTrace || opts.EnableHTTPBodyTrace {
		transport = &httputils.LoggingRoundTripper{
			Transport: transport,
			Writer:    os.Stderr,
			DumpBody:  opts.EnableHTTPBodyTrace,
		}
	}

	return &GoogleProvider{
		apiKey:  opts.APIKey,
		region:  opts.Region,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
	}, nil
}

type googleGeocodeResponse struct {
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
		PlaceID          string `json:"place_id"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
			LocationType string `json:"location_type"` // ROOFTOP, RANGE_INTERPOLATED, GEOMETRIC_CENTER, APPROXIMATE
		} `json:"geometry"`
		Types []string `json:"types"`
	} `json:"results"`
	Status       string `json:"status"` // OK, ZERO_RESULTS, OVER_QUERY_LIMIT, ...
	ErrorMessage string `json:"error_message"`
}

// Geocode resolves an address through the Geocoding API. Results keep the
// provider's relevance order, best guess first. ZERO_RESULTS yields an
// empty slice and no error.
func (g *GoogleProvider) Geocode(ctx context.Context, address string) ([]GeocodeResult, error) {
	address = strutil.CollapseSpaces(address)
	if address == "" {
		return nil, &ProviderError{
			Kind:    ErrorKindInvalidRequest,
			Message: "address is empty",
		}
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("key", g.apiKey)

	if g.region != "" {
		params.Set("region", g.region)
	}

	var decoded googleGeocodeResponse
	if err := g.get(ctx, "/maps/api/geocode/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("geocoding %q: %w", address, err)
	}

	switch decoded.Status {
	case "OK":
	case "ZERO_RESULTS":
		return []GeocodeResult{}, nil
	default:
		return nil, fmt.Errorf("geocoding %q: %w", address, classifyGoogleStatus(decoded.Status, decoded.ErrorMessage))
	}

	results := make([]GeocodeResult, 0, len(decoded.Results))

	for _, r := range decoded.Results {
		results = append(results, GeocodeResult{
			FormattedAddress: r.FormattedAddress,
			PlaceID:          r.PlaceID,
			Point: spatial.Point{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
			LocationType: r.Geometry.LocationType,
			Types:        r.Types,
		})
	}

	return results, nil
}

type googleNearbyResponse struct {
	Results []struct {
		Name     string `json:"name"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		Types []string `json:"types"`
	} `json:"results"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

// FindNearby queries the Places Nearby Search API around the origin. The
// radius is in meters and category is a single place type (e.g. "park").
// Any status other than "OK" is treated as no results.
func (g *GoogleProvider) FindNearby(ctx context.Context, origin spatial.Point, radiusMeters float64, category string) ([]Candidate, error) {
	if radiusMeters <= 0 {
		return nil, &ProviderError{
			Kind:    ErrorKindInvalidRequest,
			Message: fmt.Sprintf("radius must be positive, got %v", radiusMeters),
		}
	}

	params := url.Values{}
	params.Set("location", strutil.FormatLatLng(origin.Lat, origin.Lng))
	params.Set("radius", strutil.FormatFloat(radiusMeters))
	params.Set("key", g.apiKey)

	if category != "" {
		params.Set("type", category)
	}

	var decoded googleNearbyResponse
	if err := g.get(ctx, "/maps/api/place/nearbysearch/json", params, &decoded); err != nil {
		return nil, fmt.Errorf("nearby search around %s: %w", origin, err)
	}

	if decoded.Status != "OK" {
		return []Candidate{}, nil
	}

	candidates := make([]Candidate, 0, len(decoded.Results))

	for _, r := range decoded.Results {
		candidates = append(candidates, Candidate{
			Name:  r.Name,
			Types: r.Types,
			Point: spatial.Point{
				Lat: r.Geometry.Location.Lat,
				Lng: r.Geometry.Location.Lng,
			},
		})
	}

	return candidates, nil
}

// get performs one blocking GET and decodes the JSON body into out.
func (g *GoogleProvider) get(ctx context.Context, path string, params url.Values, out any) error {
	reqURL := g.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			return &ProviderError{
				Kind:    ErrorKindTimeout,
				Message: "request timed out",
				Err:     err,
			}
		}

		return &ProviderError{
			Kind:    ErrorKindNetwork,
			Message: "request failed",
			Err:     err,
		}
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ClassifyHTTPStatus(resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &ProviderError{
			Kind:    ErrorKindUnknown,
			Message: "decoding response",
			Err:     err,
		}
	}

	return nil
}
