// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package api is the HTTP client for the property-management service.
// One Client is bound to a single base origin; every authenticated
// request carries the session's bearer token, and any 401 response
// triggers the registered forced-logout hook exactly once per token
// lifetime before the error propagates to the caller.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
)

// maxResponseBytes caps how much of a response body is read. The
// largest legitimate payload is the capped payments collection; 16 MiB
// leaves generous headroom while bounding a misbehaving server.
const maxResponseBytes = 16 << 20

// ClientConfig holds configuration for creating a Client.
type ClientConfig struct {
	// BaseURL is the API origin including the path prefix
	// (e.g., "https://api.example.com/api").
	BaseURL string
	// HTTPClient is used for all requests. If nil, http.DefaultClient
	// is used.
	HTTPClient *http.Client
	// Logger is used for structured logging. If nil, slog.Default()
	// is used.
	Logger *slog.Logger
}

// Client talks to the management service. Safe for concurrent use:
// the token is swapped atomically and the unauthorized hook fires at
// most once per token lifetime even when several in-flight requests
// all come back 401.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger

	// token stores the current bearer token (string). Empty means
	// unauthenticated; requests then go out without an Authorization
	// header and the server decides what is public.
	token atomic.Value

	// onUnauthorized is invoked on the first 401 seen for the current
	// token. unauthorizedFired is reset by SetToken so a fresh login
	// re-arms the hook.
	onUnauthorized    atomic.Value // stores func()
	unauthorizedFired atomic.Bool
}

// NewClient creates a client bound to the given base origin.
func NewClient(config ClientConfig) (*Client, error) {
	if config.BaseURL == "" {
		return nil, fmt.Errorf("api: BaseURL is required")
	}
	if _, err := url.Parse(config.BaseURL); err != nil {
		return nil, fmt.Errorf("api: invalid BaseURL %q: %w", config.BaseURL, err)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	client := &Client{
		baseURL:    strings.TrimRight(config.BaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
	client.token.Store("")
	return client, nil
}

// SetToken installs the bearer token used on subsequent requests and
// re-arms the unauthorized hook for the new token lifetime. Pass the
// empty string to clear.
func (client *Client) SetToken(token string) {
	client.token.Store(token)
	client.unauthorizedFired.Store(false)
}

// Token returns the current bearer token ("" when unauthenticated).
func (client *Client) Token() string {
	token, _ := client.token.Load().(string)
	return token
}

// SetUnauthorizedHandler registers the hook invoked when the server
// rejects the current token with 401. The hook runs synchronously,
// before the originating request's error is returned, and at most once
// per token lifetime. The session store registers its forced-logout
// here so expiry is observed globally, no matter which screen's
// request tripped it.
func (client *Client) SetUnauthorizedHandler(handler func()) {
	client.onUnauthorized.Store(handler)
}

// doRequest performs an HTTP request against the service and returns
// the response body. On 2xx, returns the body. On 4xx/5xx, returns a
// *APIError. query may be nil for endpoints without query parameters.
func (client *Client) doRequest(ctx context.Context, method, path string, requestBody any, query url.Values) ([]byte, error) {
	requestURL := client.baseURL + path
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	var bodyReader io.Reader
	if requestBody != nil {
		encoded, err := json.Marshal(requestBody)
		if err != nil {
			return nil, fmt.Errorf("api: failed to encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, requestURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("api: failed to create request: %w", err)
	}

	if requestBody != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token := client.Token(); token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("api: request to %s %s failed: %w", method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("api: failed to read response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	if response.StatusCode == http.StatusUnauthorized {
		client.dispatchUnauthorized()
	}

	apiErr := &APIError{StatusCode: response.StatusCode}
	if jsonErr := json.Unmarshal(responseBody, apiErr); jsonErr != nil || apiErr.Message == "" {
		// Server returned a non-JSON or message-less error body. Keep
		// the raw text so the failure is still diagnosable.
		apiErr.Message = strings.TrimSpace(string(responseBody))
		if apiErr.Message == "" {
			apiErr.Message = http.StatusText(response.StatusCode)
		}
	}
	return nil, apiErr
}

// dispatchUnauthorized fires the forced-logout hook. The CompareAndSwap
// guarantees a single invocation even when multiple in-flight requests
// observe 401 for the same expired token.
func (client *Client) dispatchUnauthorized() {
	if !client.unauthorizedFired.CompareAndSwap(false, true) {
		return
	}
	handler, _ := client.onUnauthorized.Load().(func())
	if handler == nil {
		return
	}
	client.logger.Warn("server rejected token, forcing logout")
	handler()
}

// getJSON performs a GET and decodes the response into target.
func (client *Client) getJSON(ctx context.Context, path string, query url.Values, target any) error {
	body, err := client.doRequest(ctx, http.MethodGet, path, nil, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("api: failed to parse response from %s: %w", path, err)
	}
	return nil
}

// postJSON performs a POST and, when target is non-nil, decodes the
// response into it.
func (client *Client) postJSON(ctx context.Context, path string, requestBody, target any) error {
	body, err := client.doRequest(ctx, http.MethodPost, path, requestBody, nil)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("api: failed to parse response from %s: %w", path, err)
	}
	return nil
}

// putJSON performs a PUT and, when target is non-nil, decodes the
// response into it.
func (client *Client) putJSON(ctx context.Context, path string, requestBody, target any) error {
	body, err := client.doRequest(ctx, http.MethodPut, path, requestBody, nil)
	if err != nil {
		return err
	}
	if target == nil {
		return nil
	}
	if err := json.Unmarshal(body, target); err != nil {
		return fmt.Errorf("api: failed to parse response from %s: %w", path, err)
	}
	return nil
}

// delete performs a DELETE, discarding any response body.
func (client *Client) delete(ctx context.Context, path string) error {
	_, err := client.doRequest(ctx, http.MethodDelete, path, nil, nil)
	return err
}
