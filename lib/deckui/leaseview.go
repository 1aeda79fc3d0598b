// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/estatedeck/estatedeck/lib/leasedoc"
)

// leaseTextMsg delivers an extraction result. generation ties the
// result to the request that started it: if the user opened a
// different agreement while this one was in flight, the stale result
// is dropped instead of clobbering the newer document.
type leaseTextMsg struct {
	generation int
	result     leasedoc.Result
	err        error
}

// leaseViewModel is the full-screen agreement reader opened from the
// leases table. It shows the extracted text of the PDF with a toggle
// between the whole document and just the final page, where the
// signature blocks live.
type leaseViewModel struct {
	deps  *Deps
	theme Theme
	keys  KeyMap

	width  int
	height int

	url        string
	generation int
	loading    bool
	loadErr    string
	result     leasedoc.Result

	lastPageOnly bool
	viewport     viewport.Model
}

func newLeaseViewModel(deps *Deps, theme Theme, keys KeyMap) leaseViewModel {
	return leaseViewModel{
		deps:     deps,
		theme:    theme,
		keys:     keys,
		viewport: viewport.New(0, 0),
	}
}

func (model *leaseViewModel) setTheme(theme Theme) { model.theme = theme }

func (model *leaseViewModel) setSize(width, height int) {
	model.width = width
	model.height = height
	model.viewport.Width = width
	model.viewport.Height = height - 3
	if model.viewport.Height < 1 {
		model.viewport.Height = 1
	}
}

// open starts extraction for a new agreement URL, bumping the
// generation so any in-flight result for a previous document is
// ignored when it lands.
func (model *leaseViewModel) open(url string) tea.Cmd {
	model.url = url
	model.generation++
	model.loading = true
	model.loadErr = ""
	model.result = leasedoc.Result{}
	model.lastPageOnly = false
	model.viewport.GotoTop()

	generation := model.generation
	return func() tea.Msg {
		result, err := leasedoc.Extract(context.Background(), nil, url)
		return leaseTextMsg{generation: generation, result: result, err: err}
	}
}

// handleLoaded applies an extraction result, discarding stale ones.
func (model *leaseViewModel) handleLoaded(message leaseTextMsg) {
	if message.generation != model.generation {
		return
	}
	model.loading = false
	if message.err != nil {
		model.loadErr = "Could not load agreement: " + message.err.Error()
		return
	}
	model.result = message.result
	model.syncContent()
}

// syncContent pushes the selected text view into the viewport.
func (model *leaseViewModel) syncContent() {
	if model.lastPageOnly {
		model.viewport.SetContent(model.result.LastPageText)
	} else {
		model.viewport.SetContent(model.result.AllText)
	}
	model.viewport.GotoTop()
}

// handleKey processes viewer input. Returns done=true when the user
// closes the viewer.
func (model *leaseViewModel) handleKey(message tea.KeyMsg) (done bool, cmd tea.Cmd) {
	switch {
	case key.Matches(message, model.keys.FilterClear):
		return true, nil
	case key.Matches(message, model.keys.Up):
		model.viewport.LineUp(1)
	case key.Matches(message, model.keys.Down):
		model.viewport.LineDown(1)
	case key.Matches(message, model.keys.PageUp):
		model.viewport.HalfViewUp()
	case key.Matches(message, model.keys.PageDown):
		model.viewport.HalfViewDown()
	case key.Matches(message, model.keys.Home):
		model.viewport.GotoTop()
	case key.Matches(message, model.keys.End):
		model.viewport.GotoBottom()
	case message.String() == "l":
		model.lastPageOnly = !model.lastPageOnly
		model.syncContent()
	}
	return false, nil
}

// View renders the reader with a one-line header and help footer.
func (model *leaseViewModel) View() string {
	theme := model.theme
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)
	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)

	header := headerStyle.Render("Lease agreement")
	if model.lastPageOnly {
		header += faintStyle.Render("  (last page)")
	} else if model.result.PageCount > 0 {
		header += faintStyle.Render("  (" + pluralPages(model.result.PageCount) + ")")
	}

	var body string
	switch {
	case model.loading:
		body = faintStyle.Render("Extracting text…")
	case model.loadErr != "":
		body = lipgloss.NewStyle().Foreground(theme.NoticeError).Render(model.loadErr)
	default:
		body = model.viewport.View()
	}

	footer := helpStyle.Render("j/k scroll · l toggle last page · Esc close")
	return header + "\n" + body + "\n" + footer
}

func pluralPages(count int) string {
	if count == 1 {
		return "1 page"
	}
	return strconv.Itoa(count) + " pages"
}
