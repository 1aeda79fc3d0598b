// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError represents a structured error response from the management
// service. Callers can use errors.As to extract the structured
// information:
//
//	var apiErr *APIError
//	if errors.As(err, &apiErr) {
//	    if apiErr.StatusCode == http.StatusConflict { ... }
//	}
type APIError struct {
	// Message is the human-readable error description from the server
	// ("Invalid credentials", "Property not found", ...).
	Message string `json:"message"`
	// StatusCode is the HTTP status code of the response.
	StatusCode int `json:"-"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api: %d: %s", e.StatusCode, e.Message)
}

// IsUnauthorized reports whether err is a server rejection with
// status 401. The client has already dispatched the forced-logout
// hook by the time callers see such an error.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// ServerMessage returns the server-reported message from err, or the
// fallback when err carries no structured message. Screens use this to
// surface the server's wording in notices, matching what the API
// actually said rather than a generic failure line.
func ServerMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}
