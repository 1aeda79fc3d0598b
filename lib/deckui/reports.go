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

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// reportsLoadedMsg delivers the payments collection backing the
// income report.
type reportsLoadedMsg struct {
	payments []rental.Payment
	err      error
}

// reportsModel renders the income report. It derives every figure
// from the same full payments fetch and the same aggregation
// functions the dashboard uses, so the two screens can never
// disagree about what the portfolio earned.
type reportsModel struct {
	deps  *Deps
	theme Theme
	keys  KeyMap

	width  int
	height int

	loading  bool
	fetched  bool
	loadErr  string
	payments []rental.Payment
}

func newReportsModel(deps *Deps, theme Theme, keys KeyMap) reportsModel {
	return reportsModel{deps: deps, theme: theme, keys: keys}
}

func (model *reportsModel) setTheme(theme Theme) { model.theme = theme }

func (model *reportsModel) setSize(width, height int) {
	model.width = width
	model.height = height
}

func (model *reportsModel) activate() tea.Cmd {
	if model.fetched || model.loading {
		return nil
	}
	return model.startFetch()
}

func (model *reportsModel) startFetch() tea.Cmd {
	model.loading = true
	model.loadErr = ""
	deps := model.deps
	return func() tea.Msg {
		payments, err := deps.Client.ListPayments(context.Background(), paymentListLimit)
		return reportsLoadedMsg{payments: payments, err: err}
	}
}

func (model *reportsModel) handleLoaded(message reportsLoadedMsg) {
	model.loading = false
	if message.err != nil {
		model.loadErr = api.ServerMessage(message.err, "Failed to load report")
		return
	}
	model.fetched = true
	model.payments = message.payments
}

func (model *reportsModel) handleKey(message tea.KeyMsg) tea.Cmd {
	if key.Matches(message, model.keys.Refresh) {
		return model.startFetch()
	}
	return nil
}

func (model *reportsModel) View() string {
	switch {
	case model.loading:
		return lipgloss.NewStyle().Foreground(model.theme.FaintText).Render("Loading report…")
	case model.loadErr != "":
		return lipgloss.NewStyle().Foreground(model.theme.NoticeError).Render(model.loadErr)
	}

	theme := model.theme
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	faintStyle := lipgloss.NewStyle().Foreground(theme.FaintText)

	pendingCount, pendingAmount := PendingPayments(model.payments)

	var builder strings.Builder
	builder.WriteString(headerStyle.Render("Income report") + "\n\n")
	builder.WriteString(fmt.Sprintf("  All-time income:   %s\n", displayMoney(AllTimeIncome(model.payments))))
	builder.WriteString(fmt.Sprintf("  Pending payments:  %d totaling %s\n", pendingCount, displayMoney(pendingAmount)))
	builder.WriteString(fmt.Sprintf("  Payments on file:  %d\n", len(model.payments)))

	builder.WriteString("\n" + headerStyle.Render("By payment type") + "\n")
	for _, line := range breakdownLines(model.payments, func(payment rental.Payment) string { return payment.PaymentType }) {
		builder.WriteString("  " + line + "\n")
	}

	builder.WriteString("\n" + headerStyle.Render("By status") + "\n")
	for _, line := range breakdownLines(model.payments, func(payment rental.Payment) string { return payment.Status }) {
		builder.WriteString("  " + line + "\n")
	}

	builder.WriteString("\n" + faintStyle.Render("r refresh"))
	return builder.String()
}

// breakdownLines sums payment amounts by an arbitrary key and renders
// sorted "key: total (count)" lines.
func breakdownLines(payments []rental.Payment, keyOf func(rental.Payment) string) []string {
	totals := make(map[string]float64)
	counts := make(map[string]int)
	for _, payment := range payments {
		group := keyOf(payment)
		if group == "" {
			group = "unspecified"
		}
		totals[group] += payment.Amount
		counts[group]++
	}

	groups := make([]string, 0, len(totals))
	for group := range totals {
		groups = append(groups, group)
	}
	sort.Strings(groups)

	lines := make([]string, 0, len(groups))
	for _, group := range groups {
		lines = append(lines, fmt.Sprintf("%-18s %12s  (%d)", group, displayMoney(totals[group]), counts[group]))
	}
	return lines
}
