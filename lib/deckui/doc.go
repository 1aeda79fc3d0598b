// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package deckui is the bubbletea model tree for the estatedeck
// terminal console. The top-level Model owns the session guard and the
// sidebar navigation; each screen (dashboard, the six resource tables,
// reports, settings, profile) is its own sub-model that the top level
// routes messages to.
//
// Screens never talk to each other directly. Cross-screen effects
// travel as typed messages through the bubbletea loop: a maintenance
// mutation emits DashboardInvalidatedMsg, session transitions arrive
// as sessionEventMsg from the store subscription, and the guard reacts
// to those uniformly no matter which screen triggered them.
package deckui
