// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

// Package strutil provides text helpers shared by the geocoding components.
package strutil

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// LowerASCIIFolding normalizes a string by removing accents, lowercasing, and trimming spaces.
func LowerASCIIFolding(s string) string {
	s, _, _ = transform.String(
		transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		),
		strings.TrimSpace(strings.ToLower(s)),
	)

	return s
}

// CollapseSpaces collapses runs of whitespace into single spaces and trims
// the ends. Used to normalize free-text addresses before querying a
// provider.
func CollapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// FormatFloat renders a float in its shortest exact decimal form.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// FormatLatLng renders a coordinate pair in the "lat,lng" wire format used
// by the Google Maps APIs.
func FormatLatLng(lat, lng float64) string {
	return FormatFloat(lat) + "," + FormatFloat(lng)
}
