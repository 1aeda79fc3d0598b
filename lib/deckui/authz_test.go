// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"testing"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

func TestCanAccessTenantDeniedManagementScreens(t *testing.T) {
	denied := []Screen{
		ScreenProperties, ScreenClients, ScreenTenants,
		ScreenLeases, ScreenPayments, ScreenReports, ScreenSettings,
	}
	for _, screen := range denied {
		if CanAccess(rental.RoleTenant, screen) {
			t.Errorf("tenant should not access %s", screen.Title())
		}
	}
}

func TestCanAccessTenantAllowedScreens(t *testing.T) {
	allowed := []Screen{ScreenDashboard, ScreenMaintenance, ScreenProfile}
	for _, screen := range allowed {
		if !CanAccess(rental.RoleTenant, screen) {
			t.Errorf("tenant should access %s", screen.Title())
		}
	}
}

func TestCanAccessSettingsAdminOnly(t *testing.T) {
	if !CanAccess(rental.RoleAdmin, ScreenSettings) {
		t.Error("admin should access settings")
	}
	if CanAccess(rental.RolePropertyManager, ScreenSettings) {
		t.Error("property manager should not access settings")
	}
}

func TestCanAccessPropertyManagerResourceScreens(t *testing.T) {
	for _, screen := range []Screen{ScreenProperties, ScreenClients, ScreenTenants, ScreenLeases, ScreenPayments, ScreenReports} {
		if !CanAccess(rental.RolePropertyManager, screen) {
			t.Errorf("property manager should access %s", screen.Title())
		}
	}
}

func TestAccessibleScreensOrderAndFiltering(t *testing.T) {
	screens := AccessibleScreens(rental.RoleTenant)
	want := []Screen{ScreenDashboard, ScreenMaintenance, ScreenProfile}
	if len(screens) != len(want) {
		t.Fatalf("got %d screens, want %d", len(screens), len(want))
	}
	for index, screen := range want {
		if screens[index] != screen {
			t.Errorf("screens[%d] = %s, want %s", index, screens[index].Title(), screen.Title())
		}
	}

	adminScreens := AccessibleScreens(rental.RoleAdmin)
	if len(adminScreens) != len(screenOrder) {
		t.Errorf("admin sees %d screens, want all %d", len(adminScreens), len(screenOrder))
	}
}
