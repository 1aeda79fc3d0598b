// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/estatedeck/estatedeck/lib/api"
)

// newTestStore builds a store backed by a throwaway session file and a
// client pointed at the given handler. The request counter lets tests
// assert which flows touch the network.
func newTestStore(t *testing.T, handler http.Handler) (*Store, *api.Client, string, *atomic.Int32) {
	t.Helper()

	var requests atomic.Int32
	counting := http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		requests.Add(1)
		handler.ServeHTTP(writer, request)
	})
	server := httptest.NewServer(counting)
	t.Cleanup(server.Close)

	client, err := api.NewClient(api.ClientConfig{BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	sessionFile := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(client, sessionFile, nil)
	return store, client, sessionFile, &requests
}

// waitForEvent drains the subscription until an event of the wanted
// kind arrives. All store transitions complete before the triggering
// call returns, so the events are already buffered; the timeout only
// guards against a missing transition hanging the test.
func waitForEvent(t *testing.T, events <-chan Event, kind EventKind) Event {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Kind == kind {
				return event
			}
		case <-deadline:
			t.Fatalf("no %s event arrived", kind)
		}
	}
}

func writeSessionFile(t *testing.T, path, token, email string) {
	t.Helper()
	data, err := json.Marshal(map[string]string{"token": token, "email": email})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestRestoreWithoutTokenSkipsNetwork(t *testing.T) {
	store, _, _, requests := newTestStore(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		t.Error("unexpected network call")
	}))
	events := store.Subscribe()

	store.Restore(context.Background())

	waitForEvent(t, events, EventRestoreFailed)
	state := store.State()
	if state.Loading || state.Authenticated {
		t.Errorf("state after empty restore = %+v", state)
	}
	if requests.Load() != 0 {
		t.Errorf("restore made %d requests with no persisted token", requests.Load())
	}
}

func TestRestoreRejectedClearsPersistedToken(t *testing.T) {
	store, client, sessionFile, _ := newTestStore(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"message":"Token expired"}`))
	}))
	writeSessionFile(t, sessionFile, "stale-token", "ada@example.com")
	events := store.Subscribe()

	store.Restore(context.Background())

	waitForEvent(t, events, EventRestoreFailed)
	if store.State().Authenticated {
		t.Error("session authenticated after rejected restore")
	}
	if client.Token() != "" {
		t.Errorf("client token = %q after rejection, want cleared", client.Token())
	}
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Error("stale session file still on disk")
	}
}

func TestRestoreValidTokenAuthenticates(t *testing.T) {
	store, client, sessionFile, _ := newTestStore(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer good-token" {
			t.Errorf("Authorization = %q", request.Header.Get("Authorization"))
		}
		writer.Write([]byte(`{"user":{"_id":"u1","name":"Ada","email":"ada@example.com","role":"admin"}}`))
	}))
	writeSessionFile(t, sessionFile, "good-token", "ada@example.com")
	events := store.Subscribe()

	store.Restore(context.Background())

	event := waitForEvent(t, events, EventRestored)
	if !event.State.Authenticated || event.State.User == nil || event.State.User.Name != "Ada" {
		t.Errorf("restored state = %+v", event.State)
	}
	if client.Token() != "good-token" {
		t.Errorf("client token = %q", client.Token())
	}
}

func TestLoginPersistsTokenAndEmail(t *testing.T) {
	store, _, sessionFile, _ := newTestStore(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Ada","email":"ada@example.com","role":"admin"}}`))
	}))
	events := store.Subscribe()

	if err := store.Login(context.Background(), "ada@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}

	waitForEvent(t, events, EventLogin)
	data, err := os.ReadFile(sessionFile)
	if err != nil {
		t.Fatalf("session file not written: %v", err)
	}
	var persisted struct {
		Token string `json:"token"`
		Email string `json:"email"`
	}
	if err := json.Unmarshal(data, &persisted); err != nil {
		t.Fatal(err)
	}
	if persisted.Token != "tok-1" || persisted.Email != "ada@example.com" {
		t.Errorf("persisted = %+v", persisted)
	}
	if store.PersistedEmail() != "ada@example.com" {
		t.Errorf("PersistedEmail() = %q", store.PersistedEmail())
	}
}

func TestLoginFailureSurfacesServerMessage(t *testing.T) {
	store, _, _, _ := newTestStore(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	events := store.Subscribe()

	if err := store.Login(context.Background(), "ada@example.com", "wrong"); err == nil {
		t.Fatal("Login succeeded against a rejecting server")
	}

	event := waitForEvent(t, events, EventLoginFailed)
	if event.State.Authenticated {
		t.Error("session authenticated after failed login")
	}
	if event.State.Err != "Invalid credentials" {
		t.Errorf("State.Err = %q, want server message", event.State.Err)
	}
}

func TestForcedLogoutOnExpiredToken(t *testing.T) {
	store, client, sessionFile, _ := newTestStore(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/auth/login" {
			writer.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Ada","email":"ada@example.com","role":"admin"}}`))
			return
		}
		writer.WriteHeader(http.StatusUnauthorized)
		writer.Write([]byte(`{"message":"Token expired"}`))
	}))
	events := store.Subscribe()

	if err := store.Login(context.Background(), "ada@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	waitForEvent(t, events, EventLogin)

	// Any authenticated request hitting a 401 forces the logout.
	if _, err := client.Me(context.Background()); !api.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized error, got %v", err)
	}

	event := waitForEvent(t, events, EventExpired)
	if event.State.Authenticated || event.State.User != nil {
		t.Errorf("state after expiry = %+v", event.State)
	}
	if client.Token() != "" {
		t.Errorf("client token = %q after expiry", client.Token())
	}
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Error("session file survived forced logout")
	}
}

func TestLogoutClearsStateEvenWhenServerFails(t *testing.T) {
	store, client, sessionFile, _ := newTestStore(t, http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.URL.Path == "/auth/login" {
			writer.Write([]byte(`{"token":"tok-1","user":{"_id":"u1","name":"Ada","email":"ada@example.com","role":"admin"}}`))
			return
		}
		writer.WriteHeader(http.StatusInternalServerError)
		writer.Write([]byte(`{"message":"boom"}`))
	}))
	events := store.Subscribe()

	if err := store.Login(context.Background(), "ada@example.com", "secret"); err != nil {
		t.Fatalf("Login: %v", err)
	}
	waitForEvent(t, events, EventLogin)

	store.Logout(context.Background())

	event := waitForEvent(t, events, EventLogout)
	if event.State.Authenticated {
		t.Error("still authenticated after logout")
	}
	if client.Token() != "" {
		t.Errorf("client token = %q after logout", client.Token())
	}
	if _, err := os.Stat(sessionFile); !os.IsNotExist(err) {
		t.Error("session file survived logout")
	}
}
