// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"placenear/places"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the geocoding HTTP server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		provider, err := newProvider(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("placenear server listening on http://%s\n", serveAddr)

		return places.NewServer(provider).Run(serveAddr)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(
		&serveAddr,
		"addr",
		"localhost:8080",
		"listen address",
	)
}
