// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package prefs is the process-wide UI preference store: dark/light
// mode and the collapsed state of the navigation sidebar. Both persist
// across runs in a small JSON file. The dark default on first run
// comes from the terminal's reported background color, mirroring how
// a desktop app would honor the system color-scheme preference.
package prefs

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/muesli/termenv"
)

// State is a snapshot of the preferences.
type State struct {
	Dark             bool `json:"dark"`
	SidebarCollapsed bool `json:"sidebarCollapsed"`
}

// Store holds preferences and writes every change through to disk.
// Safe for concurrent use.
type Store struct {
	mutex    sync.RWMutex
	state    State
	filePath string
}

// FilePath returns the preferences file location. Checks the
// ESTATEDECK_PREFS_FILE environment variable first, then falls back to
// ~/.config/estatedeck/prefs.json.
func FilePath() string {
	if envPath := os.Getenv("ESTATEDECK_PREFS_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join("/tmp", "estatedeck-prefs.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "estatedeck", "prefs.json")
}

// Load reads the preferences file, seeding defaults on first run. The
// first-run dark default follows the terminal background so the UI
// doesn't flash-bang a dark terminal (or vice versa).
func Load(filePath string) *Store {
	store := &Store{filePath: filePath}

	data, err := os.ReadFile(filePath)
	if err != nil {
		store.state = State{Dark: termenv.HasDarkBackground()}
		return store
	}

	if err := json.Unmarshal(data, &store.state); err != nil {
		store.state = State{Dark: termenv.HasDarkBackground()}
	}
	return store
}

// State returns a snapshot of the preferences.
func (store *Store) State() State {
	store.mutex.RLock()
	defer store.mutex.RUnlock()
	return store.state
}

// ToggleDark flips dark mode and persists. Returns the new value.
func (store *Store) ToggleDark() bool {
	store.mutex.Lock()
	store.state.Dark = !store.state.Dark
	state := store.state
	store.mutex.Unlock()
	store.save(state)
	return state.Dark
}

// SetDark sets dark mode explicitly and persists.
func (store *Store) SetDark(dark bool) {
	store.mutex.Lock()
	store.state.Dark = dark
	state := store.state
	store.mutex.Unlock()
	store.save(state)
}

// ToggleSidebar flips the sidebar-collapsed flag and persists.
// Returns the new value.
func (store *Store) ToggleSidebar() bool {
	store.mutex.Lock()
	store.state.SidebarCollapsed = !store.state.SidebarCollapsed
	state := store.state
	store.mutex.Unlock()
	store.save(state)
	return state.SidebarCollapsed
}

// save writes the preferences file. Persistence failures are
// non-fatal: the in-memory state stays current for this run.
func (store *Store) save(state State) {
	if err := os.MkdirAll(filepath.Dir(store.filePath), 0o700); err != nil {
		return
	}
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return
	}
	_ = os.WriteFile(store.filePath, data, 0o600)
}

// Describe returns a short human-readable summary, used by the
// settings screen.
func (state State) Describe() string {
	mode := "light"
	if state.Dark {
		mode = "dark"
	}
	sidebar := "expanded"
	if state.SidebarCollapsed {
		sidebar = "collapsed"
	}
	return fmt.Sprintf("%s mode, sidebar %s", mode, sidebar)
}
