// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Command estatedeck is the terminal admin console for the rental
// property management service.
//
// Usage:
//
//	estatedeck [--api-url URL] [--config FILE] [--log-output FILE]
//
// The console signs in against the management API, restores a
// persisted session when one exists, and presents the dashboard,
// resource screens, and reports behind a role-based navigation guard.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/config"
	"github.com/estatedeck/estatedeck/lib/deckui"
	"github.com/estatedeck/estatedeck/lib/prefs"
	"github.com/estatedeck/estatedeck/lib/session"
	"github.com/estatedeck/estatedeck/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "estatedeck: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	flags := pflag.NewFlagSet("estatedeck", pflag.ContinueOnError)
	apiURL := flags.String("api-url", "", "management API origin (overrides config)")
	configPath := flags.String("config", "", "path to YAML config file")
	logOutput := flags.String("log-output", "", "append JSON logs to this file")
	showHelp := flags.BoolP("help", "h", false, "show usage")

	// --version short-circuits before flag errors can get in the way,
	// so `estatedeck --version --bogus` still prints.
	for _, argument := range os.Args[1:] {
		if argument == "--version" {
			fmt.Println(version.Full())
			return nil
		}
	}

	if err := flags.Parse(os.Args[1:]); err != nil {
		return err
	}
	if *showHelp {
		printHelp(flags)
		return nil
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	// Logs go to the TUI status bar; stderr would tear the alt screen.
	// --log-output adds a JSON file for full records.
	tuiHandler := deckui.NewTUILogHandler(slog.LevelInfo)
	handlers := []slog.Handler{tuiHandler}
	if *logOutput != "" {
		fileHandler, closeLog, err := openFileLogHandler(*logOutput)
		if err != nil {
			return err
		}
		defer closeLog()
		handlers = append(handlers, fileHandler)
	}
	logger := slog.New(fanoutHandler(handlers))
	slog.SetDefault(logger)

	client, err := api.NewClient(api.ClientConfig{
		BaseURL: cfg.APIBaseURL,
		Logger:  logger.With("component", "api"),
	})
	if err != nil {
		return err
	}

	sessionFile := cfg.SessionFile
	if sessionFile == "" {
		sessionFile = session.FilePath()
	}
	store := session.NewStore(client, sessionFile, logger.With("component", "session"))

	prefsFile := cfg.PrefsFile
	if prefsFile == "" {
		prefsFile = prefs.FilePath()
	}
	preferences := prefs.Load(prefsFile)
	switch cfg.Theme {
	case "dark":
		preferences.SetDark(true)
	case "light":
		preferences.SetDark(false)
	}

	model := deckui.NewModel(&deckui.Deps{
		Client:  client,
		Session: store,
		Prefs:   preferences,
		Logger:  logger,
	})

	program := tea.NewProgram(model, tea.WithAltScreen())
	tuiHandler.SetProgram(program)

	// Restore runs concurrently with the program so the terminal shows
	// the waiting view immediately; the store broadcasts the outcome.
	go store.Restore(context.Background())

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func printHelp(flags *pflag.FlagSet) {
	fmt.Print(`estatedeck - terminal console for rental property management

Usage:
  estatedeck [flags]

Flags:
`)
	fmt.Print(flags.FlagUsages())
	fmt.Print(`
Environment:
  ESTATEDECK_CONFIG        config file path (--config wins)
  ESTATEDECK_SESSION_FILE  session token location
  ESTATEDECK_PREFS_FILE    UI preference location
`)
}
