// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package prefs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestTogglesPersistAcrossLoads(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "prefs.json")

	store := Load(filePath)
	initial := store.State()

	dark := store.ToggleDark()
	if dark == initial.Dark {
		t.Error("ToggleDark did not flip the value")
	}
	collapsed := store.ToggleSidebar()
	if !collapsed {
		t.Error("ToggleSidebar from default should collapse")
	}

	reloaded := Load(filePath).State()
	if reloaded.Dark != dark {
		t.Errorf("reloaded Dark = %v, want %v", reloaded.Dark, dark)
	}
	if !reloaded.SidebarCollapsed {
		t.Error("reloaded SidebarCollapsed = false, want true")
	}
}

func TestSetDarkOverrides(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "prefs.json")

	store := Load(filePath)
	store.SetDark(true)
	if !store.State().Dark {
		t.Error("SetDark(true) not reflected")
	}
	store.SetDark(false)
	if Load(filePath).State().Dark {
		t.Error("SetDark(false) not persisted")
	}
}

func TestCorruptFileFallsBackToDefaults(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "prefs.json")
	if err := os.WriteFile(filePath, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}

	store := Load(filePath)
	// The sidebar default is expanded regardless of the terminal-derived
	// dark default.
	if store.State().SidebarCollapsed {
		t.Error("corrupt file produced a collapsed sidebar")
	}
}

func TestDescribe(t *testing.T) {
	state := State{Dark: true, SidebarCollapsed: false}
	if got := state.Describe(); got != "dark mode, sidebar expanded" {
		t.Errorf("Describe() = %q", got)
	}
}
