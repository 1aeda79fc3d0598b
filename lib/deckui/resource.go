// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/estatedeck/estatedeck/lib/api"
)

// resourceData is the result of a table fetch: the rendered rows plus
// the side data forms need. seeds maps row ID to the initial form
// values for editing that row; options holds named choice lists (for
// example the property list a tenant form offers).
type resourceData struct {
	rows    []tableRow
	seeds   map[string]map[string]string
	options map[string][]SelectOption
}

// resourceConfig is everything screen-specific about a resource table.
// The six CRUD screens differ only in this configuration; the state
// machine in resourceModel is shared.
type resourceConfig struct {
	screen  Screen
	columns []tableColumn

	// fetch loads the table and any auxiliary collections in one call.
	fetch func(ctx context.Context, deps *Deps) (resourceData, error)

	// buildForm constructs the create (editingID == "") or edit form.
	buildForm func(data resourceData, editingID string) *Form

	// buildPayload converts submitted form values into the request
	// body, applying the screen's coercions.
	buildPayload func(values map[string]string, editingID string, data resourceData) map[string]any

	create func(ctx context.Context, client *api.Client, payload map[string]any) error
	update func(ctx context.Context, client *api.Client, id string, payload map[string]any) error
	remove func(ctx context.Context, client *api.Client, id string) error

	// invalidatesDashboard marks screens whose mutations change what
	// the dashboard aggregates over.
	invalidatesDashboard bool

	// openRow, when set, handles the Open key on a row (the leases
	// screen uses it to launch the agreement viewer).
	openRow func(deps *Deps, data resourceData, id string) tea.Cmd
}

// resourceModel is the shared list/form/delete state machine behind
// every resource screen.
type resourceModel struct {
	deps   *Deps
	config resourceConfig
	theme  Theme
	keys   KeyMap

	width  int
	height int

	loading bool
	fetched bool
	loadErr string

	data    resourceData
	visible []tableRow

	cursor       int
	scrollOffset int

	filter    textinput.Model
	filtering bool

	form      *Form
	editingID string

	confirmDeleteID string
	mutating        bool

	notice        string
	noticeIsError bool
}

// newResourceModel creates the screen in its unfetched state; the
// first fetch fires when the screen becomes visible.
func newResourceModel(deps *Deps, config resourceConfig, theme Theme, keys KeyMap) resourceModel {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter"
	return resourceModel{
		deps:   deps,
		config: config,
		theme:  theme,
		keys:   keys,
		filter: filter,
	}
}

// setTheme is called when the user toggles dark/light mode.
func (model *resourceModel) setTheme(theme Theme) {
	model.theme = theme
}

// setSize records the content area available to this screen.
func (model *resourceModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

// activate is called when the screen becomes visible. Fires the
// initial fetch exactly once; later visits reuse the cached table
// (Refresh refetches on demand).
func (model *resourceModel) activate() tea.Cmd {
	if model.fetched || model.loading {
		return nil
	}
	return model.startFetch()
}

// startFetch marks the screen loading and returns the fetch command.
func (model *resourceModel) startFetch() tea.Cmd {
	model.loading = true
	model.loadErr = ""
	deps, config := model.deps, model.config
	return func() tea.Msg {
		data, err := config.fetch(context.Background(), deps)
		return resourceFetchedMsg{screen: config.screen, data: data, err: err}
	}
}

// handleFetched applies a completed fetch.
func (model *resourceModel) handleFetched(message resourceFetchedMsg) {
	model.loading = false
	model.fetched = true
	if message.err != nil {
		model.loadErr = api.ServerMessage(message.err, "Failed to load data")
		return
	}
	model.data = message.data
	model.applyFilter()
}

// handleMutated applies a completed create/update/delete. Success
// closes the form, announces the verb, and refetches so the table
// shows the server's view of the data. Failure shows the server's
// message and leaves the form (and the table) untouched so the user
// can correct and retry.
func (model *resourceModel) handleMutated(message resourceMutatedMsg) tea.Cmd {
	model.mutating = false
	text, isError := noticeText(message.verb, message.err)
	model.notice = text
	model.noticeIsError = isError

	commands := []tea.Cmd{fadeNotice(model.config.screen)}
	if message.err == nil {
		model.form = nil
		model.editingID = ""
		model.confirmDeleteID = ""
		commands = append(commands, model.startFetch())
		if model.config.invalidatesDashboard {
			commands = append(commands, func() tea.Msg { return DashboardInvalidatedMsg{} })
		}
	}
	return tea.Batch(commands...)
}

// handleKey routes a key event according to the current mode.
func (model *resourceModel) handleKey(message tea.KeyMsg) tea.Cmd {
	if model.form != nil {
		return model.handleFormKey(message)
	}
	if model.confirmDeleteID != "" {
		return model.handleConfirmKey(message)
	}
	if model.filtering {
		return model.handleFilterKey(message)
	}
	return model.handleListKey(message)
}

// handleFormKey routes input to the open form.
func (model *resourceModel) handleFormKey(message tea.KeyMsg) tea.Cmd {
	action, cmd := model.form.Update(message, model.keys)
	switch action {
	case FormCancel:
		model.form = nil
		model.editingID = ""
		return nil
	case FormSubmit:
		return model.submit()
	}
	return cmd
}

// handleConfirmKey processes the delete confirmation prompt.
func (model *resourceModel) handleConfirmKey(message tea.KeyMsg) tea.Cmd {
	switch message.String() {
	case "y", "Y":
		// A second confirmation while the delete is in flight must not
		// dispatch the request again.
		if model.mutating {
			return nil
		}
		model.mutating = true
		id := model.confirmDeleteID
		deps, config := model.deps, model.config
		return func() tea.Msg {
			err := config.remove(context.Background(), deps.Client, id)
			return resourceMutatedMsg{screen: config.screen, verb: "deleted", err: err}
		}
	case "n", "N", "esc":
		model.confirmDeleteID = ""
	}
	return nil
}

// handleFilterKey processes input while the filter bar has focus.
func (model *resourceModel) handleFilterKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Value() != "" {
			model.filter.SetValue("")
			model.applyFilter()
		} else {
			model.filtering = false
			model.filter.Blur()
		}
		return nil
	case message.Type == tea.KeyEnter:
		model.filtering = false
		model.filter.Blur()
		return nil
	}

	var cmd tea.Cmd
	model.filter, cmd = model.filter.Update(message)
	model.applyFilter()
	return cmd
}

// handleListKey processes navigation and actions in the table.
func (model *resourceModel) handleListKey(message tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(message, model.keys.Up):
		if model.cursor > 0 {
			model.cursor--
		}
	case key.Matches(message, model.keys.Down):
		if model.cursor < len(model.visible)-1 {
			model.cursor++
		}
	case key.Matches(message, model.keys.PageUp):
		model.cursor -= model.visibleHeight()
		if model.cursor < 0 {
			model.cursor = 0
		}
	case key.Matches(message, model.keys.PageDown):
		model.cursor += model.visibleHeight()
		if model.cursor >= len(model.visible) {
			model.cursor = len(model.visible) - 1
		}
		if model.cursor < 0 {
			model.cursor = 0
		}
	case key.Matches(message, model.keys.Home):
		model.cursor = 0
	case key.Matches(message, model.keys.End):
		if len(model.visible) > 0 {
			model.cursor = len(model.visible) - 1
		}

	case key.Matches(message, model.keys.FilterActivate):
		model.filtering = true
		return model.filter.Focus()

	case key.Matches(message, model.keys.FilterClear):
		if model.filter.Value() != "" {
			model.filter.SetValue("")
			model.applyFilter()
		}

	case key.Matches(message, model.keys.Refresh):
		return model.startFetch()

	case key.Matches(message, model.keys.New):
		if model.config.buildForm != nil {
			model.editingID = ""
			model.form = model.config.buildForm(model.data, "")
		}

	case key.Matches(message, model.keys.Edit):
		if row, ok := model.selectedRow(); ok && model.config.buildForm != nil {
			model.editingID = row.id
			model.form = model.config.buildForm(model.data, row.id)
		}

	case key.Matches(message, model.keys.Delete):
		if row, ok := model.selectedRow(); ok && model.config.remove != nil {
			model.confirmDeleteID = row.id
		}

	case key.Matches(message, model.keys.Open):
		if row, ok := model.selectedRow(); ok && model.config.openRow != nil {
			return model.config.openRow(model.deps, model.data, row.id)
		}
	}

	model.ensureCursorVisible()
	return nil
}

// submit validates nothing further (the form already did) and
// dispatches the create or update in a background command.
func (model *resourceModel) submit() tea.Cmd {
	// A repeated submit keystroke while the request is in flight would
	// otherwise create the record twice.
	if model.mutating {
		return nil
	}
	model.mutating = true
	values := model.form.Values()
	payload := model.config.buildPayload(values, model.editingID, model.data)

	deps, config := model.deps, model.config
	editingID := model.editingID

	if editingID == "" {
		return func() tea.Msg {
			err := config.create(context.Background(), deps.Client, payload)
			return resourceMutatedMsg{screen: config.screen, verb: "created", err: err}
		}
	}
	return func() tea.Msg {
		err := config.update(context.Background(), deps.Client, editingID, payload)
		return resourceMutatedMsg{screen: config.screen, verb: "updated", err: err}
	}
}

// selectedRow returns the row under the cursor.
func (model *resourceModel) selectedRow() (tableRow, bool) {
	if model.cursor < 0 || model.cursor >= len(model.visible) {
		return tableRow{}, false
	}
	return model.visible[model.cursor], true
}

// applyFilter recomputes the visible rows from the filter text. The
// match is a case-insensitive substring test against each row's
// search text, mirroring a search box over an already-loaded table.
func (model *resourceModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(model.filter.Value()))
	if query == "" {
		model.visible = model.data.rows
	} else {
		model.visible = nil
		for _, row := range model.data.rows {
			if strings.Contains(row.searchText, query) {
				model.visible = append(model.visible, row)
			}
		}
	}

	if model.cursor >= len(model.visible) {
		model.cursor = len(model.visible) - 1
	}
	if model.cursor < 0 {
		model.cursor = 0
	}
	model.ensureCursorVisible()
}

// visibleHeight is the number of table rows that fit in the content
// area after the header, filter bar, and notice line.
func (model *resourceModel) visibleHeight() int {
	height := model.height - 4
	if height < 1 {
		height = 1
	}
	return height
}

// ensureCursorVisible adjusts the scroll offset so the cursor row is
// on screen.
func (model *resourceModel) ensureCursorVisible() {
	visible := model.visibleHeight()
	if model.cursor < model.scrollOffset {
		model.scrollOffset = model.cursor
	}
	if model.cursor >= model.scrollOffset+visible {
		model.scrollOffset = model.cursor - visible + 1
	}
	if model.scrollOffset < 0 {
		model.scrollOffset = 0
	}
}

// View renders the screen: form overlay, delete prompt, or table.
func (model *resourceModel) View() string {
	if model.form != nil {
		formWidth := model.width - 4
		if formWidth > 76 {
			formWidth = 76
		}
		return model.form.View(model.theme, formWidth)
	}

	var builder strings.Builder

	// Filter bar.
	if model.filtering || model.filter.Value() != "" {
		builder.WriteString(model.filter.View())
	} else {
		helpStyle := lipgloss.NewStyle().Foreground(model.theme.HelpText)
		builder.WriteString(helpStyle.Render("/ filter · n new · e edit · x delete · r refresh"))
	}
	builder.WriteString("\n")

	switch {
	case model.loading:
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Loading…"))
	case model.loadErr != "":
		builder.WriteString(lipgloss.NewStyle().Foreground(model.theme.NoticeError).Render(model.loadErr))
	default:
		builder.WriteString(model.renderTable())
	}

	// Delete confirmation prompt.
	if model.confirmDeleteID != "" {
		promptStyle := lipgloss.NewStyle().Foreground(model.theme.NoticeError).Bold(true)
		builder.WriteString("\n" + promptStyle.Render("Delete this record? (y/n)"))
	}

	// Transient notice.
	if model.notice != "" {
		color := model.theme.NoticeSuccess
		if model.noticeIsError {
			color = model.theme.NoticeError
		}
		builder.WriteString("\n" + lipgloss.NewStyle().Foreground(color).Render(model.notice))
	}

	return builder.String()
}

// renderTable draws the header, the visible row window, and the
// scrollbar column.
func (model *resourceModel) renderTable() string {
	var lines []string
	lines = append(lines, renderTableHeader(model.theme, model.config.columns))

	if len(model.visible) == 0 {
		empty := lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("No records")
		return strings.Join(append(lines, empty), "\n")
	}

	visible := model.visibleHeight()
	end := model.scrollOffset + visible
	if end > len(model.visible) {
		end = len(model.visible)
	}

	var body []string
	for index := model.scrollOffset; index < end; index++ {
		body = append(body, renderTableRow(model.theme, model.config.columns, model.visible[index], index == model.cursor))
	}

	table := strings.Join(body, "\n")
	scrollbar := renderScrollbar(model.theme, end-model.scrollOffset, len(model.visible), visible, model.scrollOffset)
	if scrollbar != "" {
		table = lipgloss.JoinHorizontal(lipgloss.Top, table, " ", scrollbar)
	}

	lines = append(lines, table)
	return strings.Join(lines, "\n")
}
