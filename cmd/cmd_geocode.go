// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var geocodeCmd = &cobra.Command{
	Use:   "geocode <address>",
	Short: "Resolve a free-text address to coordinates",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provider, err := newProvider(ctx)
		if err != nil {
			return err
		}

		address := strings.Join(args, " ")

		results, err := provider.Geocode(ctx, address)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Printf("no match for %q\n", address)

			return nil
		}

		for i, r := range results {
			fmt.Printf("%d. %s\n", i+1, r.FormattedAddress)
			fmt.Printf("   place_id: %s\n", r.PlaceID)
			fmt.Printf("   location: %.6f,%.6f (%s)\n", r.Point.Lat, r.Point.Lng, r.LocationType)

			if len(r.Types) > 0 {
				fmt.Printf("   types:    %s\n", strings.Join(r.Types, ", "))
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(geocodeCmd)
}
