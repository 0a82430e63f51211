// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"placenear/places"
	"placenear/spatial"
)

type logWriter struct {
	writer io.Writer
}

func (w *logWriter) Write(bytes []byte) (int, error) {
	return fmt.Fprintf(w.writer, "%s %s", time.Now().Format("2006-01-02 15:04:05"), string(bytes))
}

func init() {
	log.SetFlags(0)
	log.SetOutput(&logWriter{writer: os.Stderr})
}

var rootCmd = &cobra.Command{
	Use:   "placenear",
	Short: "resolve addresses and rank nearby places by distance",
	Long: `
placenear resolves free-text addresses to geographic coordinates through the
Google Maps APIs, enumerates nearby points of interest within a radius, and
ranks them by great-circle distance.
`,
}

var Version = "dev"

type globalOptions struct {
	// KeyFile is a JSON file carrying the Google Maps API key.
	KeyFile string

	// Region biases geocoding results towards a ccTLD region (e.g. "fr").
	Region string

	// Timeout bounds each provider request.
	Timeout time.Duration

	// Enables light tracing of HTTP requests and responses
	HTTPTrace bool

	// Enables full HTTP body tracing
	HTTPBodyTrace bool
}

var globalOpts globalOptions

func Execute(version string) {
	Version = version

	// No .env file is the normal case outside development.
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&globalOpts.KeyFile,
		"key-file",
		"",
		"JSON keyfile with the Google Maps API key (defaults to $PLACENEAR_KEY_FILE, then $GOOGLE_MAPS_API_KEY)",
	)
	rootCmd.PersistentFlags().StringVar(
		&globalOpts.Region,
		"region",
		"",
		"ccTLD region bias for geocoding, e.g. \"fr\"",
	)
	rootCmd.PersistentFlags().DurationVar(
		&globalOpts.Timeout,
		"timeout",
		10*time.Second,
		"timeout per provider request",
	)
	rootCmd.PersistentFlags().BoolVar(
		&globalOpts.HTTPTrace,
		"http-trace",
		false,
		"trace HTTP requests and responses to stderr",
	)
	rootCmd.PersistentFlags().BoolVar(
		&globalOpts.HTTPBodyTrace,
		"http-body-trace",
		false,
		"include bodies in the HTTP trace",
	)
}

// newProvider builds the Google provider from the global options.
func newProvider(ctx context.Context) (*places.GoogleProvider, error) {
	key, err := places.APIKey(ctx, globalOpts.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("resolving API key: %w", err)
	}

	return places.NewGoogleProvider(places.GoogleOptions{
		APIKey:              key,
		Region:              globalOpts.Region,
		Timeout:             globalOpts.Timeout,
		UserAgent:           fmt.Sprintf("placenear/%s", Version),
		EnableHTTPTrace:     globalOpts.HTTPTrace,
		EnableHTTPBodyTrace: globalOpts.HTTPBodyTrace,
	})
}

// parsePoint parses a "lat,lng" argument.
func parsePoint(s string) (spatial.Point, bool) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return spatial.Point{}, false
	}

	lat, errLat := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	lng, errLng := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)

	if errLat != nil || errLng != nil || lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return spatial.Point{}, false
	}

	return spatial.Point{Lat: lat, Lng: lng}, true
}
