// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
	"github.com/estatedeck/estatedeck/lib/session"
)

// Model is the top-level bubbletea model for the console. It owns the
// session guard (restoring / signed out / signed in), the sidebar
// navigation, and the routing of messages to the per-screen
// sub-models.
type Model struct {
	deps  *Deps
	theme Theme
	keys  KeyMap

	width  int
	height int
	ready  bool

	sessionEvents <-chan session.Event
	restoring     spinner.Model

	active     Screen
	viewerOpen bool

	statusLog      string
	statusLogLevel slog.Level

	login     loginModel
	dashboard dashboardModel
	reports   reportsModel
	settings  settingsModel
	profile   profileModel
	leaseView leaseViewModel
	resources map[Screen]*resourceModel
}

// NewModel builds the model tree. The initial theme follows the
// persisted preference; main may override it from configuration by
// setting the preference before calling this.
func NewModel(deps *Deps) Model {
	theme := ThemeForDark(deps.Prefs.State().Dark)
	keys := DefaultKeyMap

	restoring := spinner.New()
	restoring.Spinner = spinner.Dot
	restoring.Style = lipgloss.NewStyle().Foreground(theme.AccentColor)

	resources := make(map[Screen]*resourceModel)
	for _, config := range []resourceConfig{
		propertiesConfig(),
		clientsConfig(),
		tenantsConfig(),
		leasesConfig(),
		paymentsConfig(),
		maintenanceConfig(),
	} {
		screen := newResourceModel(deps, config, theme, keys)
		resources[config.screen] = &screen
	}

	return Model{
		deps:          deps,
		theme:         theme,
		keys:          keys,
		sessionEvents: deps.Session.Subscribe(),
		restoring:     restoring,
		active:        ScreenDashboard,
		login:         newLoginModel(deps, theme),
		dashboard:     newDashboardModel(deps, theme, keys),
		reports:       newReportsModel(deps, theme, keys),
		settings:      newSettingsModel(deps, theme),
		profile:       newProfileModel(deps, theme, keys),
		leaseView:     newLeaseViewModel(deps, theme, keys),
		resources:     resources,
	}
}

// Init implements tea.Model.
func (model Model) Init() tea.Cmd {
	return tea.Batch(
		listenForSessionEvent(model.sessionEvents),
		model.login.init(),
		model.restoring.Tick,
	)
}

// Update implements tea.Model.
func (model Model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.WindowSizeMsg:
		model.width = message.Width
		model.height = message.Height
		model.ready = true
		model.propagateSizes()
		return model, nil

	case spinner.TickMsg:
		if !model.deps.Session.State().Loading {
			return model, nil
		}
		var cmd tea.Cmd
		model.restoring, cmd = model.restoring.Update(message)
		return model, cmd

	case sessionEventMsg:
		return model.handleSessionEvent(message.event)

	case themeChangedMsg:
		model.applyTheme(ThemeForDark(message.dark))
		return model, nil

	case DashboardInvalidatedMsg:
		model.dashboard.invalidate()
		if model.active == ScreenDashboard {
			return model, model.dashboard.activate()
		}
		return model, nil

	case testUsersMsg:
		model.login.testUsers = message.users
		return model, nil

	case loginSubmittedMsg:
		model.login.submitting = false
		return model, nil

	case adminDashboardMsg:
		model.dashboard.handleAdminLoaded(message)
		return model, nil

	case tenantDashboardMsg:
		model.dashboard.handleTenantLoaded(message)
		return model, nil

	case reportsLoadedMsg:
		model.reports.handleLoaded(message)
		return model, nil

	case profileSavedMsg:
		return model, model.profile.handleSaved(message)

	case leaseOpenMsg:
		model.viewerOpen = true
		model.propagateSizes()
		return model, model.leaseView.open(message.url)

	case leaseTextMsg:
		model.leaseView.handleLoaded(message)
		return model, nil

	case resourceFetchedMsg:
		if resource, exists := model.resources[message.screen]; exists {
			resource.handleFetched(message)
		}
		return model, nil

	case resourceMutatedMsg:
		if resource, exists := model.resources[message.screen]; exists {
			return model, resource.handleMutated(message)
		}
		return model, nil

	case logRecordMsg:
		model.statusLog = message.summary
		model.statusLogLevel = message.level
		return model, tea.Tick(logRecordFadeDelay, func(time.Time) tea.Msg {
			return logRecordFadeMsg{}
		})

	case logRecordFadeMsg:
		model.statusLog = ""
		return model, nil

	case noticeFadeMsg:
		if message.screen == ScreenProfile {
			model.profile.clearNotice()
		} else if resource, exists := model.resources[message.screen]; exists {
			resource.notice = ""
		}
		return model, nil

	case tea.KeyMsg:
		return model.handleKey(message)
	}

	return model, nil
}

// handleSessionEvent reacts to store transitions: sign-in lands on
// the dashboard, any path out of the session lands on the login
// screen. The subscription is re-armed on every event.
func (model Model) handleSessionEvent(event session.Event) (tea.Model, tea.Cmd) {
	commands := []tea.Cmd{listenForSessionEvent(model.sessionEvents)}

	switch event.Kind {
	case session.EventLogin, session.EventRestored:
		model.active = ScreenDashboard
		model.viewerOpen = false
		if cmd := model.dashboard.activate(); cmd != nil {
			commands = append(commands, cmd)
		}

	case session.EventLogout, session.EventExpired, session.EventRestoreFailed:
		model.viewerOpen = false
		model.active = ScreenDashboard
		model.login.reset()

	case session.EventLoginFailed:
		model.login.submitting = false
	}

	return model, tea.Batch(commands...)
}

// textCapturing reports whether the active surface owns raw character
// input, in which case global single-letter shortcuts must not fire.
func (model *Model) textCapturing() bool {
	state := model.deps.Session.State()
	if state.Loading || !state.Authenticated {
		return true // Login screen is all text entry.
	}
	if model.viewerOpen {
		return false
	}
	switch model.active {
	case ScreenProfile:
		return true // Always a form.
	default:
		if resource, exists := model.resources[model.active]; exists {
			return resource.form != nil || resource.filtering
		}
	}
	return false
}

// handleKey routes keyboard input through the guard and the active
// surface.
func (model Model) handleKey(message tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits, regardless of focus.
	if message.Type == tea.KeyCtrlC {
		return model, tea.Quit
	}

	state := model.deps.Session.State()
	if state.Loading {
		return model, nil
	}

	if !state.Authenticated {
		return model, model.login.handleKey(message)
	}

	if model.viewerOpen {
		done, cmd := model.leaseView.handleKey(message)
		if done {
			model.viewerOpen = false
			model.propagateSizes()
		}
		return model, cmd
	}

	if !model.textCapturing() {
		switch {
		case key.Matches(message, model.keys.Quit):
			return model, tea.Quit

		case key.Matches(message, model.keys.NextScreen):
			return model.cycleScreen(1)

		case key.Matches(message, model.keys.PrevScreen):
			return model.cycleScreen(-1)

		case key.Matches(message, model.keys.ToggleSidebar):
			model.deps.Prefs.ToggleSidebar()
			model.propagateSizes()
			return model, nil

		case key.Matches(message, model.keys.ToggleTheme):
			dark := model.deps.Prefs.ToggleDark()
			model.applyTheme(ThemeForDark(dark))
			return model, nil
		}
	} else if model.active != ScreenProfile {
		// Screen cycling stays available while a filter is open (the
		// filter doesn't use Tab), but not inside forms.
		if resource, exists := model.resources[model.active]; exists && resource.form == nil {
			switch {
			case key.Matches(message, model.keys.NextScreen):
				return model.cycleScreen(1)
			case key.Matches(message, model.keys.PrevScreen):
				return model.cycleScreen(-1)
			}
		}
	}

	return model, model.routeScreenKey(message)
}

// routeScreenKey delivers a key event to the active screen.
func (model *Model) routeScreenKey(message tea.KeyMsg) tea.Cmd {
	switch model.active {
	case ScreenDashboard:
		return model.dashboard.handleKey(message)
	case ScreenReports:
		return model.reports.handleKey(message)
	case ScreenSettings:
		return model.settings.handleKey(message)
	case ScreenProfile:
		return model.profile.handleKey(message)
	default:
		if resource, exists := model.resources[model.active]; exists {
			return resource.handleKey(message)
		}
	}
	return nil
}

// cycleScreen moves to the next or previous accessible screen.
func (model Model) cycleScreen(direction int) (tea.Model, tea.Cmd) {
	user := model.deps.Session.State().User
	if user == nil {
		return model, nil
	}
	screens := AccessibleScreens(user.Role)
	if len(screens) == 0 {
		return model, nil
	}

	current := 0
	for index, screen := range screens {
		if screen == model.active {
			current = index
			break
		}
	}
	next := (current + direction + len(screens)) % len(screens)
	return model.switchScreen(screens[next])
}

// switchScreen activates a screen, refusing roles the guard rejects.
func (model Model) switchScreen(screen Screen) (tea.Model, tea.Cmd) {
	user := model.deps.Session.State().User
	if user == nil || !CanAccess(user.Role, screen) {
		return model, nil
	}
	model.active = screen
	model.viewerOpen = false
	return model, model.activateScreen(screen)
}

// activateScreen gives the newly visible screen a chance to fetch.
func (model *Model) activateScreen(screen Screen) tea.Cmd {
	switch screen {
	case ScreenDashboard:
		return model.dashboard.activate()
	case ScreenReports:
		return model.reports.activate()
	case ScreenProfile:
		return model.profile.activate()
	default:
		if resource, exists := model.resources[screen]; exists {
			return resource.activate()
		}
	}
	return nil
}

// applyTheme swaps the palette on every sub-model.
func (model *Model) applyTheme(theme Theme) {
	model.theme = theme
	model.restoring.Style = lipgloss.NewStyle().Foreground(theme.AccentColor)
	model.login.setTheme(theme)
	model.dashboard.setTheme(theme)
	model.reports.setTheme(theme)
	model.settings.setTheme(theme)
	model.profile.setTheme(theme)
	model.leaseView.setTheme(theme)
	for _, resource := range model.resources {
		resource.setTheme(theme)
	}
}

// propagateSizes recomputes the content area and pushes it to every
// sub-model.
func (model *Model) propagateSizes() {
	contentWidth := model.width
	contentHeight := model.height - 2 // Header and status bar.

	if !model.viewerOpen {
		sidebar := sidebarWidth
		if model.deps.Prefs.State().SidebarCollapsed {
			sidebar = sidebarCollapsedWidth
		}
		contentWidth -= sidebar + 2 // Border and padding.
	}
	if contentWidth < 10 {
		contentWidth = 10
	}
	if contentHeight < 3 {
		contentHeight = 3
	}

	model.login.setSize(model.width, model.height)
	model.dashboard.setSize(contentWidth, contentHeight)
	model.reports.setSize(contentWidth, contentHeight)
	model.settings.setSize(contentWidth, contentHeight)
	model.profile.setSize(contentWidth, contentHeight)
	model.leaseView.setSize(model.width, model.height-2)
	for _, resource := range model.resources {
		resource.setSize(contentWidth, contentHeight)
	}
}

// View implements tea.Model.
func (model Model) View() string {
	if !model.ready {
		return ""
	}

	state := model.deps.Session.State()
	if state.Loading {
		message := model.restoring.View() + " Restoring session…"
		return lipgloss.Place(model.width, model.height, lipgloss.Center, lipgloss.Center, message)
	}

	if !state.Authenticated {
		return model.login.View()
	}

	header := model.renderHeader(state.User)

	if model.viewerOpen {
		return header + "\n" + model.leaseView.View() + "\n" + model.renderStatusBar()
	}

	// Guard backstop: the sidebar never offers inaccessible screens,
	// but a role change mid-session could leave the cursor on one.
	var content string
	if !CanAccess(state.User.Role, model.active) {
		content = lipgloss.NewStyle().Foreground(model.theme.NoticeError).
			Render("You don't have access to this screen.")
	} else {
		content = model.activeView()
	}

	sidebar := renderSidebar(
		model.theme,
		state.User.Role,
		model.active,
		model.deps.Prefs.State().SidebarCollapsed,
		model.height-2,
	)

	contentBox := lipgloss.NewStyle().
		Padding(0, 1).
		Height(model.height - 2).
		Render(content)

	body := lipgloss.JoinHorizontal(lipgloss.Top, sidebar, contentBox)
	return header + "\n" + body + "\n" + model.renderStatusBar()
}

// renderStatusBar draws the bottom line: the latest background log
// message while one is visible, the keyboard summary otherwise.
func (model Model) renderStatusBar() string {
	theme := model.theme
	if model.statusLog != "" {
		color := theme.FaintText
		if model.statusLogLevel >= slog.LevelWarn {
			color = theme.NoticeError
		}
		return lipgloss.NewStyle().Foreground(color).
			Render(" " + model.statusLog)
	}
	return lipgloss.NewStyle().Foreground(theme.HelpText).
		Render(" Tab screens · / filter · n new · e edit · x delete · r refresh · b sidebar · q quit")
}

// activeView renders the current screen's content.
func (model Model) activeView() string {
	switch model.active {
	case ScreenDashboard:
		return model.dashboard.View()
	case ScreenReports:
		return model.reports.View()
	case ScreenSettings:
		return model.settings.View()
	case ScreenProfile:
		return model.profile.View()
	default:
		if resource, exists := model.resources[model.active]; exists {
			return resource.View()
		}
	}
	return ""
}

// renderHeader draws the one-line chrome: product, active screen, and
// the signed-in identity.
func (model Model) renderHeader(user *rental.User) string {
	theme := model.theme
	brandStyle := lipgloss.NewStyle().Foreground(theme.AccentColor).Bold(true)
	titleStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground)
	identityStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	left := brandStyle.Render(" estatedeck ") + titleStyle.Render("· "+model.active.Title())
	right := identityStyle.Render(user.Name + " (" + string(user.Role) + ") ")

	gap := model.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + strings.Repeat(" ", gap) + right
}
