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

// profileSavedMsg delivers the outcome of a profile update or
// password change.
type profileSavedMsg struct {
	what string // "profile" or "password"
	err  error
}

// profileModel lets the signed-in user edit their own name, email,
// and phone, and change their password. Profile saves go through the
// session store so the header and every screen see the confirmed
// record.
type profileModel struct {
	deps  *Deps
	theme Theme
	keys  KeyMap

	width  int
	height int

	form         *Form
	passwordMode bool

	notice        string
	noticeIsError bool
}

func newProfileModel(deps *Deps, theme Theme, keys KeyMap) profileModel {
	return profileModel{deps: deps, theme: theme, keys: keys}
}

func (model *profileModel) setTheme(theme Theme) { model.theme = theme }

func (model *profileModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

// activate rebuilds the form from the current session user, so stale
// edits from a previous visit don't linger.
func (model *profileModel) activate() tea.Cmd {
	model.buildProfileForm()
	return nil
}

func (model *profileModel) buildProfileForm() {
	user := model.deps.Session.State().User
	if user == nil {
		model.form = nil
		return
	}
	model.passwordMode = false
	model.form = NewForm("Profile", []FormField{
		TextField("name", "Name", user.Name, true),
		TextField("email", "Email", user.Email, true),
		TextField("phone", "Phone", user.Phone, false),
	})
}

func (model *profileModel) buildPasswordForm() {
	model.passwordMode = true
	currentField := TextField("currentPassword", "Current password", "", true)
	currentField.Input.EchoMode = textinput.EchoPassword
	newField := TextField("newPassword", "New password", "", true)
	newField.Input.EchoMode = textinput.EchoPassword
	model.form = NewForm("Change password", []FormField{currentField, newField})
}

func (model *profileModel) handleKey(message tea.KeyMsg) tea.Cmd {
	if model.form == nil {
		return nil
	}

	// 'p' outside a text field would be swallowed by the input, so the
	// password form toggle rides on a control chord.
	if message.String() == "ctrl+p" {
		if model.passwordMode {
			model.buildProfileForm()
		} else {
			model.buildPasswordForm()
		}
		return nil
	}

	action, cmd := model.form.Update(message, model.keys)
	switch action {
	case FormCancel:
		model.buildProfileForm()
		return nil
	case FormSubmit:
		if model.passwordMode {
			return model.submitPassword()
		}
		return model.submitProfile()
	}
	return cmd
}

func (model *profileModel) submitProfile() tea.Cmd {
	values := model.form.Values()
	deps := model.deps
	return func() tea.Msg {
		err := deps.Session.UpdateProfile(context.Background(), map[string]any{
			"name":  values["name"],
			"email": values["email"],
			"phone": values["phone"],
		})
		return profileSavedMsg{what: "profile", err: err}
	}
}

func (model *profileModel) submitPassword() tea.Cmd {
	values := model.form.Values()
	deps := model.deps
	return func() tea.Msg {
		err := deps.Session.ChangePassword(context.Background(), values["currentPassword"], values["newPassword"])
		return profileSavedMsg{what: "password", err: err}
	}
}

// handleSaved records the outcome and, on success, rebuilds the form
// from the confirmed record.
func (model *profileModel) handleSaved(message profileSavedMsg) tea.Cmd {
	if message.err != nil {
		model.notice = api.ServerMessage(message.err, "Save failed")
		model.noticeIsError = true
	} else {
		switch message.what {
		case "password":
			model.notice = "Password changed"
		default:
			model.notice = "Profile saved"
		}
		model.noticeIsError = false
		model.buildProfileForm()
	}
	return fadeNotice(ScreenProfile)
}

func (model *profileModel) clearNotice() {
	model.notice = ""
}

func (model *profileModel) View() string {
	theme := model.theme
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	if model.form == nil {
		return ""
	}

	formWidth := model.width - 4
	if formWidth > 60 {
		formWidth = 60
	}

	var builder strings.Builder
	builder.WriteString(model.form.View(theme, formWidth))
	builder.WriteString("\n" + helpStyle.Render("C-p switch profile/password"))

	if model.notice != "" {
		color := theme.NoticeSuccess
		if model.noticeIsError {
			color = theme.NoticeError
		}
		builder.WriteString("\n" + lipgloss.NewStyle().Foreground(color).Render(model.notice))
	}
	return builder.String()
}
