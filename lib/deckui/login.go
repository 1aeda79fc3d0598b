// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/estatedeck/estatedeck/lib/api"
)

// testUsersMsg delivers the demo credentials list for the login
// screen. Absent on production installs.
type testUsersMsg struct {
	users []api.TestUser
}

// loginSubmittedMsg reports that the credential exchange finished.
// The session store broadcasts the actual outcome; this message just
// releases the submitting state.
type loginSubmittedMsg struct{}

// loginModel is the screen shown whenever the session is
// unauthenticated. It is the only public surface of the console: an
// authenticated user landing here is bounced to the dashboard by the
// top-level guard, and everything else bounces here.
type loginModel struct {
	deps  *Deps
	theme Theme

	width  int
	height int

	email      textinput.Model
	password   textinput.Model
	focusIndex int

	submitting bool
	testUsers  []api.TestUser
}

func newLoginModel(deps *Deps, theme Theme) loginModel {
	email := textinput.New()
	email.Placeholder = "email"
	email.Prompt = "  "
	email.SetValue(deps.Session.PersistedEmail())
	email.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "  "
	password.EchoMode = textinput.EchoPassword

	return loginModel{
		deps:     deps,
		theme:    theme,
		email:    email,
		password: password,
	}
}

func (model *loginModel) setTheme(theme Theme) { model.theme = theme }

func (model *loginModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

// init fetches the demo credential list.
func (model *loginModel) init() tea.Cmd {
	deps := model.deps
	return func() tea.Msg {
		users, err := deps.Client.TestUsers(context.Background())
		if err != nil {
			// Demo credentials are a convenience; a failure just
			// leaves the list empty.
			return testUsersMsg{}
		}
		return testUsersMsg{users: users}
	}
}

// reset clears the password and the submitting flag, for re-entry
// after a logout or expiry.
func (model *loginModel) reset() {
	model.password.SetValue("")
	model.submitting = false
	model.email.SetValue(model.deps.Session.PersistedEmail())
	model.focusField(0)
}

func (model *loginModel) focusField(index int) {
	model.focusIndex = index
	model.email.Blur()
	model.password.Blur()
	if index == 0 {
		model.email.Focus()
	} else {
		model.password.Focus()
	}
}

// handleKey processes login-screen input.
func (model *loginModel) handleKey(message tea.KeyMsg) tea.Cmd {
	if model.submitting {
		return nil
	}

	switch message.Type {
	case tea.KeyTab, tea.KeyDown:
		model.focusField((model.focusIndex + 1) % 2)
		return nil
	case tea.KeyShiftTab, tea.KeyUp:
		model.focusField((model.focusIndex + 1) % 2)
		return nil
	case tea.KeyEnter:
		if model.focusIndex == 0 {
			model.focusField(1)
			return nil
		}
		return model.submit()
	}

	// Number keys pick a demo credential when the email field is
	// empty, mirroring "click to fill" on the hosted login page.
	if message.Type == tea.KeyRunes && len(message.Runes) == 1 && model.email.Value() == "" {
		digit := int(message.Runes[0] - '1')
		if digit >= 0 && digit < len(model.testUsers) {
			model.email.SetValue(model.testUsers[digit].Email)
			model.password.SetValue(model.testUsers[digit].Password)
			model.focusField(1)
			return nil
		}
	}

	var cmd tea.Cmd
	if model.focusIndex == 0 {
		model.email, cmd = model.email.Update(message)
	} else {
		model.password, cmd = model.password.Update(message)
	}
	return cmd
}

// submit runs the credential exchange in the background. The session
// store broadcasts success or failure to the whole model tree.
func (model *loginModel) submit() tea.Cmd {
	email := strings.TrimSpace(model.email.Value())
	password := model.password.Value()
	if email == "" || password == "" {
		return nil
	}

	model.submitting = true
	deps := model.deps
	return func() tea.Msg {
		// Outcome arrives via the session subscription.
		_ = deps.Session.Login(context.Background(), email, password)
		return loginSubmittedMsg{}
	}
}

// View renders the centered login box.
func (model *loginModel) View() string {
	theme := model.theme
	titleStyle := lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	errStyle := lipgloss.NewStyle().Foreground(theme.NoticeError)

	var builder strings.Builder
	builder.WriteString(titleStyle.Render("estatedeck") + "\n")
	builder.WriteString(faintStyle.Render("rental property management") + "\n\n")
	builder.WriteString("Email\n" + model.email.View() + "\n\n")
	builder.WriteString("Password\n" + model.password.View() + "\n")

	if state := model.deps.Session.State(); state.Err != "" {
		builder.WriteString("\n" + errStyle.Render(state.Err) + "\n")
	}

	if model.submitting {
		builder.WriteString("\n" + faintStyle.Render("Signing in…") + "\n")
	} else {
		builder.WriteString("\n" + faintStyle.Render("Enter to sign in") + "\n")
	}

	if len(model.testUsers) > 0 {
		builder.WriteString("\n" + faintStyle.Render("Demo accounts:") + "\n")
		for index, user := range model.testUsers {
			builder.WriteString(faintStyle.Render(
				"  " + string(rune('1'+index)) + ". " + user.Email + " (" + string(user.Role) + ")\n"))
		}
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 3)

	return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, box.Render(builder.String()))
}
