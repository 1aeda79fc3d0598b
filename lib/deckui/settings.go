// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// themeChangedMsg tells the top-level model to re-theme every screen.
type themeChangedMsg struct {
	dark bool
}

// settingsModel is the admin-only preferences screen. The preferences
// it edits live in the prefs store, which persists them across runs;
// the theme change takes effect immediately via themeChangedMsg.
type settingsModel struct {
	deps  *Deps
	theme Theme

	width  int
	height int
	cursor int
}

const settingsEntryCount = 2 // dark mode, sidebar

func newSettingsModel(deps *Deps, theme Theme) settingsModel {
	return settingsModel{deps: deps, theme: theme}
}

func (model *settingsModel) setTheme(theme Theme) { model.theme = theme }

func (model *settingsModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

func (model *settingsModel) handleKey(message tea.KeyMsg) tea.Cmd {
	switch message.String() {
	case "k", "up":
		if model.cursor > 0 {
			model.cursor--
		}
	case "j", "down":
		if model.cursor < settingsEntryCount-1 {
			model.cursor++
		}
	case "enter", " ":
		switch model.cursor {
		case 0:
			dark := model.deps.Prefs.ToggleDark()
			return func() tea.Msg { return themeChangedMsg{dark: dark} }
		case 1:
			model.deps.Prefs.ToggleSidebar()
		}
	}
	return nil
}

func (model *settingsModel) View() string {
	theme := model.theme
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	state := model.deps.Prefs.State()

	entries := []struct {
		label string
		value string
	}{
		{"Dark mode", onOff(state.Dark)},
		{"Collapse sidebar", onOff(state.SidebarCollapsed)},
	}

	var builder strings.Builder
	builder.WriteString(headerStyle.Render("Settings") + "\n\n")
	for index, entry := range entries {
		marker := "  "
		if index == model.cursor {
			marker = "> "
		}
		builder.WriteString(marker + entry.label + ": " + entry.value + "\n")
	}
	builder.WriteString("\n" + faintStyle.Render(state.Describe()) + "\n")
	builder.WriteString("\n" + helpStyle.Render("↑/↓ move · Enter toggle"))
	return builder.String()
}

func onOff(value bool) string {
	if value {
		return "on"
	}
	return "off"
}
