// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func newTestClient(t *testing.T, handler http.Handler) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuthorization string
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotAuthorization = request.Header.Get("Authorization")
		writer.Write([]byte(`{"properties":[]}`))
	}))

	client.SetToken("token-abc")
	if _, err := client.ListProperties(context.Background()); err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if gotAuthorization != "Bearer token-abc" {
		t.Errorf("Authorization = %q, want %q", gotAuthorization, "Bearer token-abc")
	}
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	var sawHeader bool
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		_, sawHeader = request.Header["Authorization"]
		writer.Write([]byte(`{"properties":[]}`))
	}))

	if _, err := client.ListProperties(context.Background()); err != nil {
		t.Fatalf("ListProperties: %v", err)
	}
	if sawHeader {
		t.Error("request carried an Authorization header with no token set")
	}
}

func TestUnauthorizedHookFiresOncePerToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"message":"Token expired"}`))
	}))

	var fired atomic.Int32
	client.SetUnauthorizedHandler(func() { fired.Add(1) })
	client.SetToken("stale")

	for range 3 {
		if _, err := client.ListProperties(context.Background()); !IsUnauthorized(err) {
			t.Fatalf("expected unauthorized error, got %v", err)
		}
	}
	if got := fired.Load(); got != 1 {
		t.Errorf("hook fired %d times for one token, want 1", got)
	}

	// A fresh token re-arms the hook.
	client.SetToken("fresh")
	if _, err := client.ListProperties(context.Background()); !IsUnauthorized(err) {
		t.Fatal("expected unauthorized error after new token")
	}
	if got := fired.Load(); got != 2 {
		t.Errorf("hook fired %d times across two tokens, want 2", got)
	}
}

func TestLoginInstallsToken(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path != "/auth/login" {
			t.Errorf("path = %q, want /auth/login", request.URL.Path)
		}
		writer.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Ada","email":"ada@example.com","role":"admin"}}`))
	}))

	response, err := client.Login(context.Background(), "ada@example.com", "secret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.User.Name != "Ada" || response.User.Role != "admin" {
		t.Errorf("unexpected user decoded: %+v", response.User)
	}
	if client.Token() != "tok-1" {
		t.Errorf("Token() = %q, want tok-1", client.Token())
	}
}

func TestErrorEnvelopeDecoded(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusConflict)
		writer.Write([]byte(`{"message":"Property has active leases"}`))
	}))

	err := client.DeleteProperty(context.Background(), "p1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusConflict {
		t.Errorf("StatusCode = %d, want 409", apiErr.StatusCode)
	}
	if apiErr.Message != "Property has active leases" {
		t.Errorf("Message = %q", apiErr.Message)
	}
	if got := ServerMessage(err, "fallback"); got != "Property has active leases" {
		t.Errorf("ServerMessage = %q", got)
	}
}

func TestNonJSONErrorBodyPreserved(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusBadGateway)
		writer.Write([]byte("upstream unavailable\n"))
	}))

	err := client.DeleteProperty(context.Background(), "p1")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Message != "upstream unavailable" {
		t.Errorf("Message = %q, want raw body text", apiErr.Message)
	}
}

func TestListPaymentsSendsLimit(t *testing.T) {
	var gotLimit string
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		gotLimit = request.URL.Query().Get("limit")
		writer.Write([]byte(`{"payments":[]}`))
	}))

	if _, err := client.ListPayments(context.Background(), 1000); err != nil {
		t.Fatalf("ListPayments: %v", err)
	}
	if gotLimit != "1000" {
		t.Errorf("limit query = %q, want 1000", gotLimit)
	}
}

func TestTestUsersNotFoundIsEmpty(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusNotFound)
		writer.Write([]byte(`{"message":"Not found"}`))
	}))

	users, err := client.TestUsers(context.Background())
	if err != nil {
		t.Fatalf("TestUsers: %v", err)
	}
	if len(users) != 0 {
		t.Errorf("got %d users, want none", len(users))
	}
}
