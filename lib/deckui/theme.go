// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// Theme defines the color palette for the console. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility.
//
// The fields cover both universal chrome (text, selection, borders)
// and the semantic categories that recur across screens: payment
// status, property status, and maintenance priority all want stable
// colors so a "pending" reads the same on the dashboard, the payments
// table, and the reports screen.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Selected row.
	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	// UI chrome.
	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	HelpText         lipgloss.Color
	AccentColor      lipgloss.Color

	// Sidebar.
	SidebarActiveBackground lipgloss.Color
	SidebarActiveForeground lipgloss.Color

	// Status bar notices.
	NoticeSuccess lipgloss.Color
	NoticeError   lipgloss.Color

	// Lifecycle colors shared by payments and maintenance.
	StatusCompleted lipgloss.Color
	StatusPending   lipgloss.Color
	StatusOverdue   lipgloss.Color
	StatusActive    lipgloss.Color
	StatusCancelled lipgloss.Color

	// Property availability colors.
	StatusAvailable   lipgloss.Color
	StatusOccupied    lipgloss.Color
	StatusMaintenance lipgloss.Color

	// Maintenance priority colors (low, medium, high, emergency).
	PriorityLow       lipgloss.Color
	PriorityMedium    lipgloss.Color
	PriorityHigh      lipgloss.Color
	PriorityEmergency lipgloss.Color

	// Overlay surfaces (forms, confirm prompts).
	OverlayForeground lipgloss.Color
	OverlayBackground lipgloss.Color
}

// PaymentStatusColor returns the color for a payment status. Unknown
// values return FaintText.
func (theme Theme) PaymentStatusColor(status string) lipgloss.Color {
	switch status {
	case rental.PaymentCompleted:
		return theme.StatusCompleted
	case rental.PaymentPending:
		return theme.StatusPending
	case rental.PaymentOverdue:
		return theme.StatusOverdue
	default:
		return theme.FaintText
	}
}

// PropertyStatusColor returns the color for a property availability
// status.
func (theme Theme) PropertyStatusColor(status string) lipgloss.Color {
	switch status {
	case rental.PropertyAvailable:
		return theme.StatusAvailable
	case rental.PropertyOccupied:
		return theme.StatusOccupied
	case rental.PropertyMaintenance:
		return theme.StatusMaintenance
	default:
		return theme.FaintText
	}
}

// MaintenanceStatusColor returns the color for a maintenance request
// status.
func (theme Theme) MaintenanceStatusColor(status string) lipgloss.Color {
	switch status {
	case rental.MaintenancePending:
		return theme.StatusPending
	case rental.MaintenanceInProgress:
		return theme.StatusActive
	case rental.MaintenanceCompleted:
		return theme.StatusCompleted
	case rental.MaintenanceCancelled, rental.MaintenanceOnHold:
		return theme.StatusCancelled
	default:
		return theme.FaintText
	}
}

// PriorityColor returns the color for a maintenance priority.
func (theme Theme) PriorityColor(priority string) lipgloss.Color {
	switch priority {
	case rental.PriorityLow:
		return theme.PriorityLow
	case rental.PriorityMedium:
		return theme.PriorityMedium
	case rental.PriorityHigh:
		return theme.PriorityHigh
	case rental.PriorityEmergency:
		return theme.PriorityEmergency
	default:
		return theme.FaintText
	}
}

// DarkTheme is the color scheme for dark-background terminals (the
// common case for development environments and tmux sessions).
var DarkTheme = Theme{
	NormalText: lipgloss.Color("252"),
	FaintText:  lipgloss.Color("245"),

	SelectedBackground: lipgloss.Color("236"),
	SelectedForeground: lipgloss.Color("255"),

	HeaderForeground: lipgloss.Color("255"),
	BorderColor:      lipgloss.Color("240"),
	HelpText:         lipgloss.Color("241"),
	AccentColor:      lipgloss.Color("75"), // blue

	SidebarActiveBackground: lipgloss.Color("24"),
	SidebarActiveForeground: lipgloss.Color("255"),

	NoticeSuccess: lipgloss.Color("114"), // green
	NoticeError:   lipgloss.Color("196"), // red

	StatusCompleted: lipgloss.Color("114"), // green
	StatusPending:   lipgloss.Color("220"), // yellow/amber
	StatusOverdue:   lipgloss.Color("196"), // red
	StatusActive:    lipgloss.Color("75"),  // blue
	StatusCancelled: lipgloss.Color("245"), // gray

	StatusAvailable:   lipgloss.Color("114"),
	StatusOccupied:    lipgloss.Color("75"),
	StatusMaintenance: lipgloss.Color("220"),

	PriorityLow:       lipgloss.Color("245"),
	PriorityMedium:    lipgloss.Color("75"),
	PriorityHigh:      lipgloss.Color("208"), // orange
	PriorityEmergency: lipgloss.Color("196"),

	OverlayForeground: lipgloss.Color("252"),
	OverlayBackground: lipgloss.Color("237"),
}

// LightTheme is the color scheme for light-background terminals. Same
// hue assignments as DarkTheme with the luminance flipped so text and
// chrome stay readable.
var LightTheme = Theme{
	NormalText: lipgloss.Color("235"),
	FaintText:  lipgloss.Color("243"),

	SelectedBackground: lipgloss.Color("253"),
	SelectedForeground: lipgloss.Color("232"),

	HeaderForeground: lipgloss.Color("232"),
	BorderColor:      lipgloss.Color("249"),
	HelpText:         lipgloss.Color("245"),
	AccentColor:      lipgloss.Color("26"), // blue

	SidebarActiveBackground: lipgloss.Color("153"),
	SidebarActiveForeground: lipgloss.Color("232"),

	NoticeSuccess: lipgloss.Color("28"), // green
	NoticeError:   lipgloss.Color("160"),

	StatusCompleted: lipgloss.Color("28"),
	StatusPending:   lipgloss.Color("130"), // amber, darkened for light backgrounds
	StatusOverdue:   lipgloss.Color("160"),
	StatusActive:    lipgloss.Color("26"),
	StatusCancelled: lipgloss.Color("243"),

	StatusAvailable:   lipgloss.Color("28"),
	StatusOccupied:    lipgloss.Color("26"),
	StatusMaintenance: lipgloss.Color("130"),

	PriorityLow:       lipgloss.Color("243"),
	PriorityMedium:    lipgloss.Color("26"),
	PriorityHigh:      lipgloss.Color("166"),
	PriorityEmergency: lipgloss.Color("160"),

	OverlayForeground: lipgloss.Color("235"),
	OverlayBackground: lipgloss.Color("254"),
}

// ThemeForDark returns the palette matching the dark flag.
func ThemeForDark(dark bool) Theme {
	if dark {
		return DarkTheme
	}
	return LightTheme
}
