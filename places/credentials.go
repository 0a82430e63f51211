// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	apikeys "cloud.google.com/go/apikeys/apiv2"
	"cloud.google.com/go/apikeys/apiv2/apikeyspb"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/iterator"
)

// Environment variables consulted by APIKey.
const (
	// EnvKeyFile points at a JSON keyfile {"api_key": "..."}.
	EnvKeyFile = "PLACENEAR_KEY_FILE"
	// EnvAPIKey carries the key directly.
	EnvAPIKey = "GOOGLE_MAPS_API_KEY"
)

// adcKeyDisplayName is the display name of the API key resource looked up
// through Application Default Credentials.
const adcKeyDisplayName = "Placenear Geocoding Key"

// APIKey resolves the Google Maps API key. Resolution order: the explicit
// keyfile argument, the PLACENEAR_KEY_FILE keyfile, the GOOGLE_MAPS_API_KEY
// environment variable, and finally a lookup through Application Default
// Credentials.
func APIKey(ctx context.Context, keyfile string) (string, error) {
	if keyfile == "" {
		keyfile = os.Getenv(EnvKeyFile)
	}

	if keyfile != "" {
		key, err := readKeyFile(keyfile)
		if err != nil {
			return "", err
		}

		return key, nil
	}

	if key := os.Getenv(EnvAPIKey); key != "" {
		return key, nil
	}

	log.Printf("%s is not set. Attempting to retrieve via ADC...", EnvAPIKey)

	key, err := apiKeyFromADC(ctx)
	if err != nil {
		return "", fmt.Errorf("no keyfile, no %s, and ADC lookup failed: %w", EnvAPIKey, err)
	}

	return key, nil
}

func readKeyFile(keyfile string) (string, error) {
	data, err := os.ReadFile(keyfile) // #nosec G304 - keyfile is provided by the operator
	if err != nil {
		return "", fmt.Errorf("reading keyfile: %w", err)
	}

	var parsed struct {
		APIKey string `json:"api_key"`
	}

	if err := json.Unmarshal(data, &parsed); err != nil {
		return "", fmt.Errorf("parsing keyfile %s: %w", keyfile, err)
	}

	if parsed.APIKey == "" {
		return "", fmt.Errorf("keyfile %s has no api_key field", keyfile)
	}

	return parsed.APIKey, nil
}

func apiKeyFromADC(ctx context.Context) (string, error) {
	creds, err := google.FindDefaultCredentials(ctx, "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return "", fmt.Errorf("finding default credentials: %w", err)
	}

	projectID := creds.ProjectID
	if projectID == "" {
		return "", errors.New("no project ID found in default credentials")
	}

	client, err := apikeys.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("creating apikeys client: %w", err)
	}
	defer client.Close()

	req := &apikeyspb.ListKeysRequest{
		Parent: fmt.Sprintf("projects/%s/locations/global", projectID),
	}

	it := client.ListKeys(ctx, req)

	for {
		key, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}

		if err != nil {
			return "", fmt.Errorf("listing keys: %w", err)
		}

		if key.DisplayName != adcKeyDisplayName {
			continue
		}

		// ListKeys redacts the KeyString; GetKeyString retrieves the secret.
		getReq := &apikeyspb.GetKeyStringRequest{
			Name: key.Name,
		}

		resp, err := client.GetKeyString(ctx, getReq)
		if err != nil {
			return "", fmt.Errorf("getting key string: %w", err)
		}

		if resp.KeyString == "" {
			return "", fmt.Errorf("key %q found but its key string is empty", adcKeyDisplayName)
		}

		return resp.KeyString, nil
	}

	return "", fmt.Errorf("key with display name %q not found in project %s", adcKeyDisplayName, projectID)
}
