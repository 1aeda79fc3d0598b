// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// Collection envelopes. Every list endpoint wraps its records in an
// object keyed by the collection name.
type (
	propertiesEnvelope struct {
		Properties []rental.Property `json:"properties"`
	}
	clientsEnvelope struct {
		Clients []rental.Client `json:"clients"`
	}
	tenantsEnvelope struct {
		Tenants []rental.Tenant `json:"tenants"`
	}
	leasesEnvelope struct {
		Leases []rental.Lease `json:"leases"`
	}
	paymentsEnvelope struct {
		Payments []rental.Payment `json:"payments"`
	}
	maintenanceEnvelope struct {
		MaintenanceRequests []rental.MaintenanceRequest `json:"maintenanceRequests"`
	}
)

// ListProperties fetches the full properties collection.
func (client *Client) ListProperties(ctx context.Context) ([]rental.Property, error) {
	var envelope propertiesEnvelope
	if err := client.getJSON(ctx, "/properties", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Properties, nil
}

// GetProperty fetches a single property by ID (the edit screen loads
// the record fresh rather than trusting the cached list row).
func (client *Client) GetProperty(ctx context.Context, id string) (*rental.Property, error) {
	var envelope struct {
		Property rental.Property `json:"property"`
	}
	if err := client.getJSON(ctx, "/properties/"+url.PathEscape(id), nil, &envelope); err != nil {
		return nil, err
	}
	return &envelope.Property, nil
}

// CreateProperty creates a property record.
func (client *Client) CreateProperty(ctx context.Context, payload map[string]any) error {
	return client.postJSON(ctx, "/properties", payload, nil)
}

// UpdateProperty replaces the mutable fields of a property.
func (client *Client) UpdateProperty(ctx context.Context, id string, payload map[string]any) error {
	return client.putJSON(ctx, "/properties/"+url.PathEscape(id), payload, nil)
}

// DeleteProperty removes a property.
func (client *Client) DeleteProperty(ctx context.Context, id string) error {
	return client.delete(ctx, "/properties/"+url.PathEscape(id))
}

// ListClients fetches the full clients collection.
func (client *Client) ListClients(ctx context.Context) ([]rental.Client, error) {
	var envelope clientsEnvelope
	if err := client.getJSON(ctx, "/clients", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Clients, nil
}

// CreateClient creates a client record.
func (client *Client) CreateClient(ctx context.Context, payload map[string]any) error {
	return client.postJSON(ctx, "/clients", payload, nil)
}

// UpdateClient replaces the mutable fields of a client record.
func (client *Client) UpdateClient(ctx context.Context, id string, payload map[string]any) error {
	return client.putJSON(ctx, "/clients/"+url.PathEscape(id), payload, nil)
}

// DeleteClient removes a client record.
func (client *Client) DeleteClient(ctx context.Context, id string) error {
	return client.delete(ctx, "/clients/"+url.PathEscape(id))
}

// ListTenants fetches the full tenants collection. Property and lease
// references come back populated.
func (client *Client) ListTenants(ctx context.Context) ([]rental.Tenant, error) {
	var envelope tenantsEnvelope
	if err := client.getJSON(ctx, "/tenants", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Tenants, nil
}

// CreateTenant creates a tenant account.
func (client *Client) CreateTenant(ctx context.Context, payload map[string]any) error {
	return client.postJSON(ctx, "/tenants", payload, nil)
}

// UpdateTenant replaces the mutable fields of a tenant account.
func (client *Client) UpdateTenant(ctx context.Context, id string, payload map[string]any) error {
	return client.putJSON(ctx, "/tenants/"+url.PathEscape(id), payload, nil)
}

// DeleteTenant removes a tenant account.
func (client *Client) DeleteTenant(ctx context.Context, id string) error {
	return client.delete(ctx, "/tenants/"+url.PathEscape(id))
}

// ListLeases fetches the full leases collection.
func (client *Client) ListLeases(ctx context.Context) ([]rental.Lease, error) {
	var envelope leasesEnvelope
	if err := client.getJSON(ctx, "/leases", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Leases, nil
}

// CreateLease creates a lease.
func (client *Client) CreateLease(ctx context.Context, payload map[string]any) error {
	return client.postJSON(ctx, "/leases", payload, nil)
}

// UpdateLease replaces the mutable fields of a lease.
func (client *Client) UpdateLease(ctx context.Context, id string, payload map[string]any) error {
	return client.putJSON(ctx, "/leases/"+url.PathEscape(id), payload, nil)
}

// DeleteLease removes a lease.
func (client *Client) DeleteLease(ctx context.Context, id string) error {
	return client.delete(ctx, "/leases/"+url.PathEscape(id))
}

// ListPayments fetches payments. A limit of 0 fetches the server's
// default page; the dashboard and reports pass a large cap to get the
// entire collection in one call.
func (client *Client) ListPayments(ctx context.Context, limit int) ([]rental.Payment, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"limit": []string{strconv.Itoa(limit)}}
	}
	var envelope paymentsEnvelope
	if err := client.getJSON(ctx, "/payments", query, &envelope); err != nil {
		return nil, err
	}
	return envelope.Payments, nil
}

// CreatePayment creates a payment record.
func (client *Client) CreatePayment(ctx context.Context, payload map[string]any) error {
	return client.postJSON(ctx, "/payments", payload, nil)
}

// UpdatePayment replaces the mutable fields of a payment.
func (client *Client) UpdatePayment(ctx context.Context, id string, payload map[string]any) error {
	return client.putJSON(ctx, "/payments/"+url.PathEscape(id), payload, nil)
}

// DeletePayment removes a payment record.
func (client *Client) DeletePayment(ctx context.Context, id string) error {
	return client.delete(ctx, "/payments/"+url.PathEscape(id))
}

// ListMaintenance fetches the full maintenance-request collection.
func (client *Client) ListMaintenance(ctx context.Context) ([]rental.MaintenanceRequest, error) {
	var envelope maintenanceEnvelope
	if err := client.getJSON(ctx, "/maintenance", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.MaintenanceRequests, nil
}

// CreateMaintenance submits a maintenance request.
func (client *Client) CreateMaintenance(ctx context.Context, payload map[string]any) error {
	return client.postJSON(ctx, "/maintenance", payload, nil)
}

// UpdateMaintenance replaces the mutable fields of a maintenance
// request.
func (client *Client) UpdateMaintenance(ctx context.Context, id string, payload map[string]any) error {
	return client.putJSON(ctx, "/maintenance/"+url.PathEscape(id), payload, nil)
}

// DeleteMaintenance removes a maintenance request.
func (client *Client) DeleteMaintenance(ctx context.Context, id string) error {
	return client.delete(ctx, "/maintenance/"+url.PathEscape(id))
}
