// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

const (
	sidebarWidth          = 16
	sidebarCollapsedWidth = 4
)

// renderSidebar draws the navigation column. Only screens the role
// can access appear, so the menu is itself the first layer of the
// access guard: a tenant never sees a Payments entry to select.
func renderSidebar(theme Theme, role rental.Role, active Screen, collapsed bool, height int) string {
	width := sidebarWidth
	if collapsed {
		width = sidebarCollapsedWidth
	}

	normalStyle := lipgloss.NewStyle().Foreground(theme.NormalText).Width(width)
	activeStyle := lipgloss.NewStyle().
		Background(theme.SidebarActiveBackground).
		Foreground(theme.SidebarActiveForeground).
		Bold(true).
		Width(width)

	var lines []string
	for _, screen := range AccessibleScreens(role) {
		label := screen.Title()
		if collapsed {
			label = label[:1]
		}
		label = " " + label

		if screen == active {
			lines = append(lines, activeStyle.Render(label))
		} else {
			lines = append(lines, normalStyle.Render(label))
		}
	}

	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}

	column := strings.Join(lines, "\n")
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(theme.BorderColor).
		Render(column)
}
