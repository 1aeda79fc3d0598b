// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/prefs"
	"github.com/estatedeck/estatedeck/lib/session"
)

// Deps bundles the long-lived collaborators every screen needs. Built
// once in main and threaded through the model tree.
type Deps struct {
	Client  *api.Client
	Session *session.Store
	Prefs   *prefs.Store
	Logger  *slog.Logger
}

// DashboardInvalidatedMsg signals that a mutation elsewhere (today:
// maintenance requests) changed data the dashboard aggregates over.
// The dashboard refetches the next time it is visible. Carrying this
// as a typed message keeps the producing screen ignorant of who
// consumes it.
type DashboardInvalidatedMsg struct{}

// sessionEventMsg wraps a session store Event for delivery through
// the bubbletea message loop.
type sessionEventMsg struct {
	event session.Event
}

// listenForSessionEvent returns a tea.Cmd that blocks until the next
// session transition, then delivers it as a sessionEventMsg.
func listenForSessionEvent(channel <-chan session.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-channel
		if !ok {
			return nil
		}
		return sessionEventMsg{event: event}
	}
}

// resourceFetchedMsg delivers a completed table fetch. The screen tag
// lets the top-level model route it to the right sub-model even if the
// user has navigated away in the meantime.
type resourceFetchedMsg struct {
	screen Screen
	data   resourceData
	err    error
}

// resourceMutatedMsg delivers the outcome of a create, update, or
// delete. On success the owning screen refetches; on failure it shows
// the server's message and leaves its state untouched.
type resourceMutatedMsg struct {
	screen Screen
	verb   string // "created", "updated", "deleted"
	err    error
}

// noticeFadeMsg clears a transient status-bar notice.
type noticeFadeMsg struct {
	screen Screen
}

// noticeFadeDelay is how long success and error notices stay visible.
const noticeFadeDelay = 3 * time.Second

// fadeNotice schedules a noticeFadeMsg for the given screen.
func fadeNotice(screen Screen) tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{screen: screen}
	})
}

// noticeText formats the failure or success line for a mutation
// outcome.
func noticeText(verb string, err error) (text string, isError bool) {
	if err != nil {
		return api.ServerMessage(err, "Request failed"), true
	}
	return "Record " + verb, false
}
