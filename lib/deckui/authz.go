// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import "github.com/estatedeck/estatedeck/lib/schema/rental"

// Screen identifies one navigable view in the console.
type Screen int

const (
	ScreenDashboard Screen = iota
	ScreenProperties
	ScreenClients
	ScreenTenants
	ScreenLeases
	ScreenPayments
	ScreenMaintenance
	ScreenReports
	ScreenSettings
	ScreenProfile
)

// Title returns the human-readable screen name shown in the sidebar
// and the header.
func (screen Screen) Title() string {
	switch screen {
	case ScreenDashboard:
		return "Dashboard"
	case ScreenProperties:
		return "Properties"
	case ScreenClients:
		return "Clients"
	case ScreenTenants:
		return "Tenants"
	case ScreenLeases:
		return "Leases"
	case ScreenPayments:
		return "Payments"
	case ScreenMaintenance:
		return "Maintenance"
	case ScreenReports:
		return "Reports"
	case ScreenSettings:
		return "Settings"
	case ScreenProfile:
		return "Profile"
	default:
		return "Unknown"
	}
}

// screenOrder is the sidebar ordering; Tab/Shift-Tab cycle through it
// (skipping screens the current role cannot access).
var screenOrder = []Screen{
	ScreenDashboard,
	ScreenProperties,
	ScreenClients,
	ScreenTenants,
	ScreenLeases,
	ScreenPayments,
	ScreenMaintenance,
	ScreenReports,
	ScreenSettings,
	ScreenProfile,
}

// allowedRoles maps each screen to the roles that may open it. A
// missing entry means every authenticated role is allowed.
var allowedRoles = map[Screen][]rental.Role{
	ScreenProperties: {rental.RoleAdmin, rental.RolePropertyManager},
	ScreenClients:    {rental.RoleAdmin, rental.RolePropertyManager},
	ScreenTenants:    {rental.RoleAdmin, rental.RolePropertyManager},
	ScreenLeases:     {rental.RoleAdmin, rental.RolePropertyManager},
	ScreenPayments:   {rental.RoleAdmin, rental.RolePropertyManager},
	ScreenReports:    {rental.RoleAdmin, rental.RolePropertyManager},
	ScreenSettings:   {rental.RoleAdmin},
}

// CanAccess reports whether a user with the given role may open the
// screen. Screens with no role restriction admit everyone; a screen
// with a restriction admits only the listed roles.
func CanAccess(role rental.Role, screen Screen) bool {
	required, restricted := allowedRoles[screen]
	if !restricted {
		return true
	}
	for _, allowed := range required {
		if role == allowed {
			return true
		}
	}
	return false
}

// AccessibleScreens returns the sidebar entries for a role, in
// display order.
func AccessibleScreens(role rental.Role) []Screen {
	var screens []Screen
	for _, screen := range screenOrder {
		if CanAccess(role, screen) {
			screens = append(screens, screen)
		}
	}
	return screens
}
