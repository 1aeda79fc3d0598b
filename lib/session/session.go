// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package session is the process-wide authentication store. It owns
// the current user, the persisted bearer token, and the
// loading/authenticated flags, and broadcasts every state transition
// to subscribers so any screen observes a forced logout no matter
// which request tripped it.
//
// All mutation goes through the store's methods; screens never touch
// the token or the session file directly. The store registers itself
// as the API client's unauthorized handler, which closes the loop
// described in the API client's contract: a 401 anywhere clears the
// session exactly once, globally.
package session

import (
	"context"
	"log/slog"
	"sync"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// EventKind labels a state transition for subscribers.
type EventKind string

const (
	// EventLogin fires after a successful credential exchange.
	EventLogin EventKind = "login"
	// EventLoginFailed fires when a credential exchange is rejected;
	// the server's message is in State.Err.
	EventLoginFailed EventKind = "login_failed"
	// EventLogout fires after a user-initiated logout completes.
	EventLogout EventKind = "logout"
	// EventExpired fires when the server rejected the token (401)
	// and the session was force-cleared.
	EventExpired EventKind = "expired"
	// EventRestored fires when startup restore validated a persisted
	// token.
	EventRestored EventKind = "restored"
	// EventRestoreFailed fires when startup restore found no usable
	// session (no token, or the server rejected it).
	EventRestoreFailed EventKind = "restore_failed"
	// EventProfile fires after a server-confirmed profile update.
	EventProfile EventKind = "profile"
)

// Event is delivered to subscribers on every transition, carrying a
// snapshot of the post-transition state.
type Event struct {
	Kind  EventKind
	State State
}

// State is an immutable snapshot of the session.
type State struct {
	User          *rental.User
	Authenticated bool
	// Loading is true from construction until Restore completes.
	// The navigation guard renders a waiting view while set.
	Loading bool
	// Err holds the last auth failure message ("" when none), shown
	// inline on the login screen.
	Err string
}

// Store holds the session and serializes all transitions. Safe for
// concurrent use; Subscribe may be called from any goroutine.
type Store struct {
	client   *api.Client
	logger   *slog.Logger
	filePath string

	mutex       sync.RWMutex
	state       State
	subscribers []chan Event
}

// NewStore creates a session store bound to the API client. The store
// installs itself as the client's unauthorized handler. filePath is
// where the token persists; pass FilePath() outside tests.
func NewStore(client *api.Client, filePath string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	store := &Store{
		client:   client,
		logger:   logger,
		filePath: filePath,
		state:    State{Loading: true},
	}
	client.SetUnauthorizedHandler(store.handleUnauthorized)
	return store
}

// State returns a snapshot of the current session.
func (store *Store) State() State {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return store.state
}

// Subscribe returns a channel receiving an Event for every state
// transition. The channel is buffered; if a subscriber falls behind,
// events are dropped (the subscriber can always read State()).
func (store *Store) Subscribe() <-chan Event {
	store.mutex.Lock()
	defer store.mutex.Unlock()
	channel := make(chan Event, 16)
	store.subscribers = append(store.subscribers, channel)
	return channel
}

// transition replaces the state under lock and dispatches the event to
// all subscribers outside it.
func (store *Store) transition(kind EventKind, state State) {
	store.mutex.Lock()
	store.state = state
	subscribers := store.subscribers
	store.mutex.Unlock()

	event := Event{Kind: kind, State: state}
	for _, subscriber := range subscribers {
		select {
		case subscriber <- event:
		default:
			// Subscriber buffer full — drop. State() is authoritative.
		}
	}
}

// Restore runs once at startup. With a persisted token, it validates
// the token against the server: success populates the user and marks
// the session authenticated; rejection removes the token from disk and
// marks unauthenticated. With no persisted token it resolves
// immediately, without any network call.
func (store *Store) Restore(ctx context.Context) {
	persisted, err := loadFile(store.filePath)
	if err != nil {
		store.logger.Warn("unreadable session file", "error", err)
	}

	if persisted.Token == "" {
		store.transition(EventRestoreFailed, State{Loading: false})
		return
	}

	store.client.SetToken(persisted.Token)
	user, err := store.client.Me(ctx)
	if err != nil {
		store.logger.Info("persisted session rejected", "error", err)
		store.client.SetToken("")
		if removeErr := removeFile(store.filePath); removeErr != nil {
			store.logger.Warn("removing stale session file", "error", removeErr)
		}
		store.transition(EventRestoreFailed, State{Loading: false})
		return
	}

	store.transition(EventRestored, State{User: user, Authenticated: true})
}

// Login exchanges credentials for a token and user. On success the
// token is persisted and the session becomes authenticated. On failure
// the server's message lands in State.Err and the session stays
// unauthenticated.
func (store *Store) Login(ctx context.Context, email, password string) error {
	response, err := store.client.Login(ctx, email, password)
	if err != nil {
		message := api.ServerMessage(err, "Login failed")
		store.transition(EventLoginFailed, State{Err: message})
		return err
	}

	if saveErr := saveFile(store.filePath, fileState{Token: response.Token, Email: email}); saveErr != nil {
		// A failed save degrades to a non-persistent session; the
		// login itself succeeded.
		store.logger.Warn("persisting session", "error", saveErr)
	}

	user := response.User
	store.transition(EventLogin, State{User: &user, Authenticated: true})
	return nil
}

// Logout best-effort-notifies the server, then clears local state
// regardless of the network outcome.
func (store *Store) Logout(ctx context.Context) {
	if err := store.client.Logout(ctx); err != nil {
		store.logger.Info("logout call failed", "error", err)
	}
	store.clearLocal(EventLogout)
}

// handleUnauthorized is the API client's 401 hook: the server rejected
// the current token, so the session is cleared without a logout call
// (the token is already dead).
func (store *Store) handleUnauthorized() {
	store.clearLocal(EventExpired)
}

// clearLocal wipes the token from the client and disk and transitions
// to the unauthenticated state.
func (store *Store) clearLocal(kind EventKind) {
	store.client.SetToken("")
	if err := removeFile(store.filePath); err != nil {
		store.logger.Warn("removing session file", "error", err)
	}
	store.transition(kind, State{})
}

// UpdateProfile sends changed fields and merges the server-confirmed
// record into the session.
func (store *Store) UpdateProfile(ctx context.Context, fields map[string]any) error {
	user, err := store.client.UpdateProfile(ctx, fields)
	if err != nil {
		return err
	}

	store.mutex.Lock()
	state := store.state
	state.User = user
	store.mutex.Unlock()

	store.transition(EventProfile, state)
	return nil
}

// ChangePassword replaces the account password. The session and token
// are unaffected.
func (store *Store) ChangePassword(ctx context.Context, currentPassword, newPassword string) error {
	return store.client.ChangePassword(ctx, currentPassword, newPassword)
}

// PersistedEmail returns the email recorded at the last successful
// login, for pre-filling the login form. Empty when unknown.
func (store *Store) PersistedEmail() string {
	persisted, err := loadFile(store.filePath)
	if err != nil {
		return ""
	}
	return persisted.Email
}
