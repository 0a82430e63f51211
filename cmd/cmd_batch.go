// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"bufio"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Geocode a list of addresses, one per line, to TSV",
	Long: `Reads one free-text address per line (blank lines and # comments are
skipped) and writes one tab-separated line per address with the best match:
address, formatted address, place id, latitude, longitude, location type.
Addresses without a match get NO_MATCH. Quota and transport errors abort the
run immediately.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		provider, err := newProvider(ctx)
		if err != nil {
			return err
		}

		addresses, err := readAddresses(args[0])
		if err != nil {
			return err
		}

		var bar *progressbar.ProgressBar
		if isatty.IsTerminal(os.Stderr.Fd()) {
			bar = progressbar.NewOptions(len(addresses),
				progressbar.OptionSetDescription("Geocoding"),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionClearOnFinish(),
			)
		}

		matched := 0

		// One blocking request per line; failures surface immediately.
		for _, address := range addresses {
			results, err := provider.Geocode(ctx, address)
			if err != nil {
				return fmt.Errorf("geocoding %q: %w", address, err)
			}

			if len(results) == 0 {
				fmt.Printf("%s\tNO_MATCH\t\t\t\t\n", address)
			} else {
				best := results[0]
				fmt.Printf("%s\t%s\t%s\t%.7f\t%.7f\t%s\n",
					address,
					best.FormattedAddress,
					best.PlaceID,
					best.Point.Lat,
					best.Point.Lng,
					best.LocationType,
				)
				matched++
			}

			if bar != nil {
				_ = bar.Add(1)
			}
		}

		log.Printf("geocoded %d/%d addresses", matched, len(addresses))

		return nil
	},
}

func readAddresses(path string) ([]string, error) {
	f, err := os.Open(path) // #nosec G304 - path is provided by the operator
	if err != nil {
		return nil, fmt.Errorf("opening address file: %w", err)
	}
	defer f.Close()

	var addresses []string

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		addresses = append(addresses, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading address file: %w", err)
	}

	return addresses, nil
}

func init() {
	rootCmd.AddCommand(batchCmd)
}
