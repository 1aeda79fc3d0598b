// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// FieldKind distinguishes free-text fields from fixed-choice fields.
type FieldKind int

const (
	// FieldText is a single-line text input.
	FieldText FieldKind = iota
	// FieldSelect cycles through a fixed option list.
	FieldSelect
)

// SelectOption is one choice in a FieldSelect.
type SelectOption struct {
	Label string // Shown in the form.
	Value string // Sent to the server.
}

// FormField is one row of a Form.
type FormField struct {
	Key      string // Payload key this field feeds.
	Label    string
	Kind     FieldKind
	Required bool

	// FieldText state.
	Input textinput.Model

	// FieldSelect state.
	Options  []SelectOption
	Selected int
}

// TextField builds a text form field pre-filled with value.
func TextField(fieldKey, label, value string, required bool) FormField {
	input := textinput.New()
	input.SetValue(value)
	input.Prompt = ""
	input.CharLimit = 256
	return FormField{
		Key:      fieldKey,
		Label:    label,
		Kind:     FieldText,
		Required: required,
		Input:    input,
	}
}

// SelectField builds a fixed-choice form field. The option matching
// current is pre-selected; an unknown current value selects the first
// option.
func SelectField(fieldKey, label string, options []SelectOption, current string, required bool) FormField {
	selected := 0
	for index, option := range options {
		if option.Value == current {
			selected = index
			break
		}
	}
	return FormField{
		Key:      fieldKey,
		Label:    label,
		Kind:     FieldSelect,
		Required: required,
		Options:  options,
		Selected: selected,
	}
}

// FormAction is the outcome of routing a key event to a form.
type FormAction int

const (
	// FormContinue means the form consumed the event and stays open.
	FormContinue FormAction = iota
	// FormSubmit means the user asked to save and validation passed.
	FormSubmit
	// FormCancel means the user dismissed the form.
	FormCancel
)

// Form is a vertical field editor used by every resource screen for
// create and edit. The resource screen owns the lifecycle: it builds
// the field list (keyed by the record being edited), routes key events
// here while the form is open, and turns FormSubmit into a server
// mutation.
type Form struct {
	Title  string
	fields []FormField
	cursor int
	err    string
}

// NewForm creates a form with focus on the first field.
func NewForm(title string, fields []FormField) *Form {
	form := &Form{Title: title, fields: fields}
	form.focusField(0)
	return form
}

// focusField moves textinput focus to the field at index.
func (form *Form) focusField(index int) {
	if index < 0 || index >= len(form.fields) {
		return
	}
	for position := range form.fields {
		form.fields[position].Input.Blur()
	}
	form.cursor = index
	if form.fields[index].Kind == FieldText {
		form.fields[index].Input.Focus()
	}
}

// Update routes a key event to the form. Returns the resulting action
// and any command from the focused text input.
func (form *Form) Update(message tea.KeyMsg, keys KeyMap) (FormAction, tea.Cmd) {
	switch {
	case key.Matches(message, keys.FilterClear):
		return FormCancel, nil

	case key.Matches(message, keys.Submit):
		if err := form.Validate(); err != nil {
			form.err = err.Error()
			return FormContinue, nil
		}
		return FormSubmit, nil

	case message.Type == tea.KeyUp, message.Type == tea.KeyShiftTab:
		if form.cursor > 0 {
			form.focusField(form.cursor - 1)
		}
		return FormContinue, nil

	case message.Type == tea.KeyDown, message.Type == tea.KeyTab, message.Type == tea.KeyEnter:
		if message.Type == tea.KeyEnter && form.cursor == len(form.fields)-1 {
			// Enter on the last field submits, matching the muscle
			// memory of single-field dialogs.
			if err := form.Validate(); err != nil {
				form.err = err.Error()
				return FormContinue, nil
			}
			return FormSubmit, nil
		}
		if form.cursor < len(form.fields)-1 {
			form.focusField(form.cursor + 1)
		}
		return FormContinue, nil
	}

	if form.cursor >= len(form.fields) {
		return FormContinue, nil
	}

	field := &form.fields[form.cursor]
	switch field.Kind {
	case FieldSelect:
		switch message.Type {
		case tea.KeyLeft:
			field.Selected--
			if field.Selected < 0 {
				field.Selected = len(field.Options) - 1
			}
		case tea.KeyRight, tea.KeySpace:
			field.Selected++
			if field.Selected >= len(field.Options) {
				field.Selected = 0
			}
		}
		return FormContinue, nil

	case FieldText:
		var cmd tea.Cmd
		field.Input, cmd = field.Input.Update(message)
		form.err = ""
		return FormContinue, cmd
	}
	return FormContinue, nil
}

// Validate checks that every required field has a value.
func (form *Form) Validate() error {
	for _, field := range form.fields {
		if !field.Required {
			continue
		}
		if strings.TrimSpace(form.fieldValue(field)) == "" {
			return fmt.Errorf("%s is required", field.Label)
		}
	}
	return nil
}

// fieldValue extracts the current value of a field.
func (form *Form) fieldValue(field FormField) string {
	if field.Kind == FieldSelect {
		if field.Selected < 0 || field.Selected >= len(field.Options) {
			return ""
		}
		return field.Options[field.Selected].Value
	}
	return field.Input.Value()
}

// Values returns the current field values keyed by field key.
// Text values are whitespace-trimmed.
func (form *Form) Values() map[string]string {
	values := make(map[string]string, len(form.fields))
	for _, field := range form.fields {
		values[field.Key] = strings.TrimSpace(form.fieldValue(field))
	}
	return values
}

// View renders the form into a bordered box.
func (form *Form) View(theme Theme, width int) string {
	labelStyle := lipgloss.NewStyle().Foreground(theme.FaintText).Width(18)
	activeLabelStyle := lipgloss.NewStyle().Foreground(theme.AccentColor).Width(18).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	errStyle := lipgloss.NewStyle().Foreground(theme.NoticeError)
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	var builder strings.Builder
	builder.WriteString(titleStyle.Render(form.Title))
	builder.WriteString("\n\n")

	for index, field := range form.fields {
		label := labelStyle
		if index == form.cursor {
			label = activeLabelStyle
		}
		marker := "  "
		if index == form.cursor {
			marker = "> "
		}

		var value string
		switch field.Kind {
		case FieldSelect:
			value = form.renderSelect(theme, field, index == form.cursor)
		case FieldText:
			value = field.Input.View()
		}

		required := ""
		if field.Required {
			required = "*"
		}
		builder.WriteString(marker + label.Render(field.Label+required) + value + "\n")
	}

	if form.err != "" {
		builder.WriteString("\n" + errStyle.Render(form.err) + "\n")
	}
	builder.WriteString("\n" + helpStyle.Render("↑/↓ move · ←/→ choose · C-s save · Esc cancel"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.BorderColor).
		Padding(1, 2).
		Width(width)
	return boxStyle.Render(builder.String())
}

// renderSelect draws the option list for a select field, highlighting
// the chosen one.
func (form *Form) renderSelect(theme Theme, field FormField, focused bool) string {
	chosenStyle := lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(focused)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	parts := make([]string, 0, len(field.Options))
	for index, option := range field.Options {
		if index == field.Selected {
			parts = append(parts, chosenStyle.Render("["+option.Label+"]"))
		} else {
			parts = append(parts, faintStyle.Render(option.Label))
		}
	}
	return strings.Join(parts, " ")
}

// parseAmount converts a form value to a float64, tolerating an empty
// string (returns 0). Used by payload builders for money and area
// fields.
func parseAmount(value string) float64 {
	if value == "" {
		return 0
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return parsed
}

// parseCount converts a form value to an int, tolerating an empty
// string.
func parseCount(value string) int {
	if value == "" {
		return 0
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return parsed
}
