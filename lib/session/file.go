// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// fileState is the on-disk shape of the persisted session. Only the
// token is authoritative; the email is kept so the login screen can
// pre-fill the field after an expiry.
type fileState struct {
	Token string `json:"token"`
	Email string `json:"email,omitempty"`
}

// FilePath returns the path to the persisted session file. Checks the
// ESTATEDECK_SESSION_FILE environment variable first, then falls back
// to ~/.config/estatedeck/session.json.
func FilePath() string {
	if envPath := os.Getenv("ESTATEDECK_SESSION_FILE"); envPath != "" {
		return envPath
	}

	configDirectory := os.Getenv("XDG_CONFIG_HOME")
	if configDirectory == "" {
		homeDirectory, err := os.UserHomeDir()
		if err != nil {
			// Fallback — this should rarely happen.
			return filepath.Join("/tmp", "estatedeck-session.json")
		}
		configDirectory = filepath.Join(homeDirectory, ".config")
	}
	return filepath.Join(configDirectory, "estatedeck", "session.json")
}

// loadFile reads the persisted session. A missing file is not an
// error: it returns a zero state, meaning "never logged in here".
func loadFile(path string) (fileState, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fileState{}, nil
		}
		return fileState{}, fmt.Errorf("session: reading %s: %w", path, err)
	}

	var state fileState
	if err := json.Unmarshal(data, &state); err != nil {
		return fileState{}, fmt.Errorf("session: parsing %s: %w", path, err)
	}
	return state, nil
}

// saveFile writes the session file with owner-only permissions,
// creating the parent directory if needed.
func saveFile(path string, state fileState) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("session: creating directory for %s: %w", path, err)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("session: encoding session: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("session: writing %s: %w", path, err)
	}
	return nil
}

// removeFile deletes the session file. A missing file is fine.
func removeFile(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("session: removing %s: %w", path, err)
	}
	return nil
}
