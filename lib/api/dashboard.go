// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// PropertyStats is the server-computed property block of the admin
// dashboard stats.
type PropertyStats struct {
	Total         int     `json:"total"`
	Occupied      int     `json:"occupied"`
	Available     int     `json:"available"`
	OccupancyRate float64 `json:"occupancyRate"`
}

// TenantStats is the server-computed tenant block of the admin
// dashboard stats.
type TenantStats struct {
	Total        int `json:"total"`
	ActiveLeases int `json:"activeLeases"`
}

// MaintenanceStats is the server-computed maintenance block of the
// admin dashboard stats.
type MaintenanceStats struct {
	Pending int `json:"pending"`
	Urgent  int `json:"urgent"`
}

// DashboardStats is the admin/manager aggregate view. The AllTime*
// fields are not part of the server response: the dashboard screen
// recomputes them client-side from the full payments collection and
// merges them in, overriding whatever the server reported.
type DashboardStats struct {
	Properties  PropertyStats    `json:"properties"`
	Tenants     TenantStats      `json:"tenants"`
	Maintenance MaintenanceStats `json:"maintenance"`

	AllTimeIncome         float64 `json:"allTimeIncome,omitempty"`
	PendingPaymentsCount  int     `json:"pendingPaymentsCount,omitempty"`
	PendingPaymentsAmount float64 `json:"pendingPaymentsAmount,omitempty"`
}

// UpcomingEvent is one entry in the admin dashboard's upcoming list
// (lease expirations, scheduled maintenance, due payments).
type UpcomingEvent struct {
	Type     string `json:"type"`
	Title    string `json:"title"`
	Date     string `json:"date"`
	Property string `json:"property,omitempty"`
}

// TenantSummary holds the server-computed figures for the tenant
// dashboard. The client renders these as-is, with no recomputation.
type TenantSummary struct {
	TotalPaid     float64 `json:"totalPaid"`
	PendingAmount float64 `json:"pendingAmount"`
	OverdueAmount float64 `json:"overdueAmount"`
}

// TenantDashboard is the role-scoped dashboard for a tenant account.
type TenantDashboard struct {
	Summary      TenantSummary    `json:"summary"`
	CurrentLease *rental.Lease    `json:"currentLease,omitempty"`
	Payments     []rental.Payment `json:"payments,omitempty"`
}

// GetDashboardStats fetches the admin/manager aggregate stats.
func (client *Client) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := client.getJSON(ctx, "/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// GetUpcomingEvents fetches the admin dashboard's upcoming events.
func (client *Client) GetUpcomingEvents(ctx context.Context) ([]UpcomingEvent, error) {
	var events []UpcomingEvent
	if err := client.getJSON(ctx, "/dashboard/upcoming-events", nil, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// GetTenantDashboard fetches the dashboard scoped to one tenant
// identity.
func (client *Client) GetTenantDashboard(ctx context.Context, tenantUserID string) (*TenantDashboard, error) {
	var dashboard TenantDashboard
	if err := client.getJSON(ctx, "/dashboard/tenant/"+url.PathEscape(tenantUserID), nil, &dashboard); err != nil {
		return nil, err
	}
	return &dashboard, nil
}
