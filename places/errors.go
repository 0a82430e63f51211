// Copyright 2025 The Placenear Authors
// SPDX-License-Identifier: Apache-2.0

package places

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ProviderError represents a failure reported by a geocoding provider.
type ProviderError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

// ErrorKind classifies provider failures.
type ErrorKind int

const (
	// ErrorKindUnknown unclassified failure.
	ErrorKindUnknown ErrorKind = iota
	// ErrorKindRateLimit the provider throttled the request.
	ErrorKindRateLimit
	// ErrorKindQuotaExceeded the request budget is exhausted.
	ErrorKindQuotaExceeded
	// ErrorKindTimeout the request timed out.
	ErrorKindTimeout
	// ErrorKindNotFound the provider endpoint rejected the resource.
	ErrorKindNotFound
	// ErrorKindInvalidRequest the request was malformed.
	ErrorKindInvalidRequest
	// ErrorKindNetwork a transport-level failure.
	ErrorKindNetwork
)

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}

	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// hasKind reports whether any ProviderError in the unwrap chain carries the
// kind. errors.As alone stops at the outermost ProviderError, which may wrap
// a more specific one.
func hasKind(err error, kind ErrorKind) bool {
	for err != nil {
		var provErr *ProviderError
		if !errors.As(err, &provErr) {
			return false
		}

		if provErr.Kind == kind {
			return true
		}

		err = provErr.Unwrap()
	}

	return false
}

// IsRateLimit reports whether the error is a provider throttling response.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	if hasKind(err, ErrorKindRateLimit) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "rate limit") ||
		strings.Contains(errStr, "too many requests") ||
		strings.Contains(errStr, "429")
}

// IsQuotaExceeded reports whether the error means the request quota ran out.
func IsQuotaExceeded(err error) bool {
	if err == nil {
		return false
	}

	if hasKind(err, ErrorKindQuotaExceeded) {
		return true
	}

	// Common Google Maps wording.
	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "over_query_limit") ||
		strings.Contains(errStr, "quota exceeded")
}

// IsTimeout reports whether the error is a timeout.
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}

	if hasKind(err, ErrorKindTimeout) {
		return true
	}

	errStr := strings.ToLower(err.Error())

	return strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// ClassifyHTTPStatus maps an HTTP status code to a provider error.
func ClassifyHTTPStatus(statusCode int) *ProviderError {
	switch statusCode {
	case http.StatusTooManyRequests: // 429
		return &ProviderError{
			Kind:    ErrorKindRateLimit,
			Message: "rate limit reached",
		}
	case http.StatusForbidden: // 403
		return &ProviderError{
			Kind:    ErrorKindQuotaExceeded,
			Message: "quota exceeded or access denied",
		}
	case http.StatusBadRequest: // 400
		return &ProviderError{
			Kind:    ErrorKindInvalidRequest,
			Message: "invalid request",
		}
	case http.StatusNotFound: // 404
		return &ProviderError{
			Kind:    ErrorKindNotFound,
			Message: "resource not found",
		}
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return &ProviderError{
			Kind:    ErrorKindNetwork,
			Message: fmt.Sprintf("service unavailable (status %d)", statusCode),
		}
	default:
		return &ProviderError{
			Kind:    ErrorKindUnknown,
			Message: fmt.Sprintf("HTTP error %d", statusCode),
		}
	}
}

// classifyGoogleStatus maps a non-OK Google API status string to a provider
// error. ZERO_RESULTS is not an error and must be handled before calling.
func classifyGoogleStatus(status, errorMessage string) *ProviderError {
	message := "status " + status
	if errorMessage != "" {
		message = fmt.Sprintf("status %s: %s", status, errorMessage)
	}

	switch status {
	case "OVER_QUERY_LIMIT", "OVER_DAILY_LIMIT", "REQUEST_DENIED":
		// Google reports both exhausted budgets and key problems here;
		// same handling as an HTTP 403.
		return &ProviderError{
			Kind:    ErrorKindQuotaExceeded,
			Message: message,
		}
	case "INVALID_REQUEST":
		return &ProviderError{
			Kind:    ErrorKindInvalidRequest,
			Message: message,
		}
	default:
		return &ProviderError{
			Kind:    ErrorKindUnknown,
			Message: message,
		}
	}
}
