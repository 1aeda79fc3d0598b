// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/sync/errgroup"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// adminDashboardMsg delivers the three admin fetches joined into one
// result. Any individual failure aborts the whole load; partial stat
// cards would be worse than an explicit error.
type adminDashboardMsg struct {
	stats    *api.DashboardStats
	events   []api.UpcomingEvent
	payments []rental.Payment
	requests []rental.MaintenanceRequest
	err      error
}

// tenantDashboardMsg delivers the tenant-scoped dashboard fetch.
type tenantDashboardMsg struct {
	dashboard *api.TenantDashboard
	err       error
}

// dashboardModel renders the landing screen. Admins and managers get
// the portfolio aggregate; tenants get their own lease and payment
// summary. The income and pending-payment cards are recomputed
// client-side from the full payments collection so they stay
// consistent with the reports screen, which derives them the same
// way.
type dashboardModel struct {
	deps  *Deps
	theme Theme
	keys  KeyMap

	width  int
	height int

	loading bool
	fetched bool
	stale   bool
	loadErr string

	// Admin/manager data.
	stats    *api.DashboardStats
	events   []api.UpcomingEvent
	requests []rental.MaintenanceRequest

	// Tenant data.
	tenantDashboard *api.TenantDashboard
}

func newDashboardModel(deps *Deps, theme Theme, keys KeyMap) dashboardModel {
	return dashboardModel{deps: deps, theme: theme, keys: keys}
}

func (model *dashboardModel) setTheme(theme Theme) { model.theme = theme }

func (model *dashboardModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

// activate fires the fetch when the dashboard becomes visible and the
// cached data is missing or has been invalidated by a mutation
// elsewhere.
func (model *dashboardModel) activate() tea.Cmd {
	if model.loading {
		return nil
	}
	if model.fetched && !model.stale {
		return nil
	}
	return model.startFetch()
}

// invalidate marks the cached dashboard stale. The refetch happens on
// the next activation rather than immediately, so mutations on other
// screens don't trigger background traffic for a screen nobody is
// looking at.
func (model *dashboardModel) invalidate() {
	model.stale = true
}

// startFetch dispatches the role-appropriate load.
func (model *dashboardModel) startFetch() tea.Cmd {
	state := model.deps.Session.State()
	if state.User == nil {
		return nil
	}

	model.loading = true
	model.loadErr = ""
	deps := model.deps

	if state.User.Role == rental.RoleTenant {
		userID := state.User.ID
		return func() tea.Msg {
			dashboard, err := deps.Client.GetTenantDashboard(context.Background(), userID)
			return tenantDashboardMsg{dashboard: dashboard, err: err}
		}
	}

	// The four datasets are independent, so they load concurrently and
	// join before render; the first failure cancels the rest.
	return func() tea.Msg {
		group, ctx := errgroup.WithContext(context.Background())

		var message adminDashboardMsg
		group.Go(func() error {
			stats, err := deps.Client.GetDashboardStats(ctx)
			message.stats = stats
			return err
		})
		group.Go(func() error {
			events, err := deps.Client.GetUpcomingEvents(ctx)
			message.events = events
			return err
		})
		group.Go(func() error {
			payments, err := deps.Client.ListPayments(ctx, paymentListLimit)
			message.payments = payments
			return err
		})
		group.Go(func() error {
			requests, err := deps.Client.ListMaintenance(ctx)
			message.requests = requests
			return err
		})

		if err := group.Wait(); err != nil {
			return adminDashboardMsg{err: err}
		}
		return message
	}
}

// handleAdminLoaded merges the client-side payment aggregates into the
// server stats.
func (model *dashboardModel) handleAdminLoaded(message adminDashboardMsg) {
	model.loading = false
	if message.err != nil {
		model.loadErr = api.ServerMessage(message.err, "Failed to load dashboard")
		return
	}
	model.fetched = true
	model.stale = false

	stats := *message.stats
	stats.AllTimeIncome = AllTimeIncome(message.payments)
	stats.PendingPaymentsCount, stats.PendingPaymentsAmount = PendingPayments(message.payments)

	model.stats = &stats
	model.events = message.events
	model.requests = message.requests
}

// handleTenantLoaded stores the tenant-scoped dashboard as-is.
func (model *dashboardModel) handleTenantLoaded(message tenantDashboardMsg) {
	model.loading = false
	if message.err != nil {
		model.loadErr = api.ServerMessage(message.err, "Failed to load dashboard")
		return
	}
	model.fetched = true
	model.stale = false
	model.tenantDashboard = message.dashboard
}

// handleKey supports a manual refresh; everything else on the
// dashboard is read-only.
func (model *dashboardModel) handleKey(message tea.KeyMsg) tea.Cmd {
	if key.Matches(message, model.keys.Refresh) {
		return model.startFetch()
	}
	return nil
}

// View renders the role-appropriate dashboard.
func (model *dashboardModel) View() string {
	switch {
	case model.loading:
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Loading dashboard…")
	case model.loadErr != "":
		return lipgloss.NewStyle().Foreground(model.theme.NoticeError).Render(model.loadErr)
	case model.tenantDashboard != nil:
		return model.viewTenant()
	case model.stats != nil:
		return model.viewAdmin()
	default:
		return ""
	}
}

// statCard renders one labeled figure in a bordered box.
func (model *dashboardModel) statCard(label, value string, accent lipgloss.Color) string {
	labelStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)
	valueStyle := lipgloss.NewStyle().Foreground(accent).Bold(true)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(model.theme.BorderColor).
		Padding(0, 2).
		Width(24)
	return box.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func (model *dashboardModel) viewAdmin() string {
	stats := model.stats
	theme := model.theme

	row1 := lipgloss.JoinHorizontal(lipgloss.Top,
		model.statCard("Properties", fmt.Sprintf("%d (%d occupied)", stats.Properties.Total, stats.Properties.Occupied), theme.AccentColor),
		model.statCard("Occupancy", fmt.Sprintf("%.0f%%", stats.Properties.OccupancyRate), theme.StatusCompleted),
		model.statCard("Tenants", fmt.Sprintf("%d (%d leases)", stats.Tenants.Total, stats.Tenants.ActiveLeases), theme.AccentColor),
	)
	row2 := lipgloss.JoinHorizontal(lipgloss.Top,
		model.statCard("All-time income", displayMoney(stats.AllTimeIncome), theme.StatusCompleted),
		model.statCard("Pending payments", fmt.Sprintf("%d · %s", stats.PendingPaymentsCount, displayMoney(stats.PendingPaymentsAmount)), theme.StatusPending),
		model.statCard("Open maintenance", fmt.Sprintf("%d (%d urgent)", stats.Maintenance.Pending, stats.Maintenance.Urgent), theme.StatusOverdue),
	)

	sections := []string{row1, row2}

	if section := model.viewMaintenanceBreakdown(); section != "" {
		sections = append(sections, section)
	}
	if section := model.viewUpcoming(); section != "" {
		sections = append(sections, section)
	}

	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)
	sections = append(sections, helpStyle.Render("r refresh"))

	return strings.Join(sections, "\n\n")
}

// viewMaintenanceBreakdown lists pending request counts per property.
func (model *dashboardModel) viewMaintenanceBreakdown() string {
	counts := PendingMaintenanceByProperty(model.requests)
	if len(counts) == 0 {
		return ""
	}

	titles := make(map[string]string)
	for _, request := range model.requests {
		if request.Property.Doc != nil {
			titles[request.Property.ID] = request.Property.Doc.Title
		}
	}

	propertyIDs := make([]string, 0, len(counts))
	for propertyID := range counts {
		propertyIDs = append(propertyIDs, propertyID)
	}
	sort.Strings(propertyIDs)

	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	lines := []string{headerStyle.Render("Pending maintenance by property")}
	for _, propertyID := range propertyIDs {
		title := titles[propertyID]
		if title == "" {
			title = propertyID
		}
		lines = append(lines, fmt.Sprintf("  %-30s %d", title, counts[propertyID]))
	}
	return strings.Join(lines, "\n")
}

// viewUpcoming lists the server's upcoming events.
func (model *dashboardModel) viewUpcoming() string {
	if len(model.events) == 0 {
		return ""
	}
	headerStyle := lipgloss.NewStyle().Foreground(model.theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(model.theme.FaintText)

	lines := []string{headerStyle.Render("Upcoming")}
	for _, event := range model.events {
		lines = append(lines, fmt.Sprintf("  %s  %-12s %s",
			faintStyle.Render(displayDate(event.Date)), event.Type, event.Title))
	}
	return strings.Join(lines, "\n")
}

func (model *dashboardModel) viewTenant() string {
	dashboard := model.tenantDashboard
	theme := model.theme

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		model.statCard("Total paid", displayMoney(dashboard.Summary.TotalPaid), theme.StatusCompleted),
		model.statCard("Pending", displayMoney(dashboard.Summary.PendingAmount), theme.StatusPending),
		model.statCard("Overdue", displayMoney(dashboard.Summary.OverdueAmount), theme.StatusOverdue),
	)

	sections := []string{cards}

	if lease := dashboard.CurrentLease; lease != nil {
		headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
		sections = append(sections, strings.Join([]string{
			headerStyle.Render("Current lease"),
			fmt.Sprintf("  %s — %s", displayDate(lease.Start()), displayDate(lease.End())),
			"  " + refTitle(lease.Property),
		}, "\n"))
	}

	if len(dashboard.Payments) > 0 {
		headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
		lines := []string{headerStyle.Render("Recent payments")}
		shown := dashboard.Payments
		if len(shown) > 5 {
			shown = shown[:5]
		}
		for _, payment := range shown {
			statusStyle := lipgloss.NewStyle().Foreground(theme.PaymentStatusColor(payment.Status))
			lines = append(lines, fmt.Sprintf("  %s  %-12s %s",
				displayDate(payment.DueDate), displayMoney(payment.Amount), statusStyle.Render(payment.Status)))
		}
		sections = append(sections, strings.Join(lines, "\n"))
	}

	helpStyle := lipgloss.NewStyle().Foreground(theme.HelpText)
	sections = append(sections, helpStyle.Render("r refresh"))

	return strings.Join(sections, "\n\n")
}
