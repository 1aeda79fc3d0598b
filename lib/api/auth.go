// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// AuthResponse is the envelope returned by login.
type AuthResponse struct {
	Token string      `json:"token"`
	User  rental.User `json:"user"`
}

// userEnvelope wraps endpoints that return a single account.
type userEnvelope struct {
	User rental.User `json:"user"`
}

// usersEnvelope wraps the test-users listing.
type usersEnvelope struct {
	Users []TestUser `json:"users"`
}

// TestUser is a demo credential pair exposed by the service for
// evaluation installs. The login screen lists these so a reviewer can
// sign in without provisioning accounts.
type TestUser struct {
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     rental.Role `json:"role"`
	Name     string      `json:"name,omitempty"`
}

// Login exchanges credentials for a token and user profile. On success
// the token is installed on the client for subsequent requests; the
// caller (the session store) is responsible for persisting it.
func (client *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	request := map[string]string{"email": email, "password": password}
	var response AuthResponse
	if err := client.postJSON(ctx, "/auth/login", request, &response); err != nil {
		return nil, err
	}
	if response.Token == "" {
		return nil, fmt.Errorf("api: login response carried no token")
	}
	client.SetToken(response.Token)
	return &response, nil
}

// Logout notifies the server that the token should be invalidated.
// Best-effort: the session store clears local state regardless of the
// result.
func (client *Client) Logout(ctx context.Context) error {
	return client.postJSON(ctx, "/auth/logout", nil, nil)
}

// Me validates the current token and returns the account it belongs
// to. Used by session restore at startup.
func (client *Client) Me(ctx context.Context) (*rental.User, error) {
	var envelope userEnvelope
	if err := client.getJSON(ctx, "/auth/me", nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// UpdateProfile sends changed profile fields and returns the
// server-confirmed account record.
func (client *Client) UpdateProfile(ctx context.Context, fields map[string]any) (*rental.User, error) {
	var envelope userEnvelope
	if err := client.putJSON(ctx, "/auth/profile", fields, &envelope); err != nil {
		return nil, err
	}
	return &envelope.User, nil
}

// ChangePassword replaces the account password.
func (client *Client) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	request := map[string]string{
		"currentPassword": currentPassword,
		"newPassword":     newPassword,
	}
	return client.postJSON(ctx, "/auth/change-password", request, nil)
}

// TestUsers returns the demo credentials list, or an empty slice when
// the endpoint is unavailable (production installs disable it).
func (client *Client) TestUsers(ctx context.Context) ([]TestUser, error) {
	var envelope usersEnvelope
	if err := client.getJSON(ctx, "/auth/test-users", nil, &envelope); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}
	return envelope.Users, nil
}
