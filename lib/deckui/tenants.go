// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"crypto/rand"
	"encoding/hex"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// tenantsConfig builds the tenants screen configuration.
func tenantsConfig() resourceConfig {
	return resourceConfig{
		screen: ScreenTenants,
		columns: []tableColumn{
			{title: "Name", width: 20},
			{title: "Email", width: 24},
			{title: "Property", width: 20},
			{title: "Lease start", width: 12},
			{title: "Lease end", width: 12},
			{title: "Phone", width: 14},
		},
		fetch:        fetchTenants,
		buildForm:    buildTenantForm,
		buildPayload: tenantPayload,
		create: func(ctx context.Context, client *api.Client, payload map[string]any) error {
			return client.CreateTenant(ctx, payload)
		},
		update: func(ctx context.Context, client *api.Client, id string, payload map[string]any) error {
			return client.UpdateTenant(ctx, id, payload)
		},
		remove: func(ctx context.Context, client *api.Client, id string) error {
			return client.DeleteTenant(ctx, id)
		},
	}
}

func fetchTenants(ctx context.Context, deps *Deps) (resourceData, error) {
	tenants, err := deps.Client.ListTenants(ctx)
	if err != nil {
		return resourceData{}, err
	}
	properties, err := deps.Client.ListProperties(ctx)
	if err != nil {
		return resourceData{}, err
	}

	data := resourceData{
		seeds:   make(map[string]map[string]string, len(tenants)),
		options: map[string][]SelectOption{"propertyId": propertyOptions(properties, true)},
	}
	for _, tenant := range tenants {
		start, end := tenantLeaseDates(tenant)
		data.rows = append(data.rows, tableRow{
			id: tenant.ID,
			cells: []string{
				tenant.Name,
				tenant.Email,
				refTitle(tenant.PropertyID),
				displayOrDash(displayDate(start)),
				displayOrDash(displayDate(end)),
				displayOrDash(tenant.Phone),
			},
			searchText: searchText(tenant.Name, tenant.Email, tenant.Phone, refTitle(tenant.PropertyID)),
		})
		data.seeds[tenant.ID] = map[string]string{
			"name":       tenant.Name,
			"email":      tenant.Email,
			"phone":      tenant.Phone,
			"propertyId": tenant.PropertyID.ID,
			"leaseStart": displayDate(start),
			"leaseEnd":   displayDate(end),
			"notes":      tenant.Notes,
		}
	}
	return data, nil
}

// tenantLeaseDates pulls the lease date range off the tenant's
// populated lease reference. Tenant records don't store the dates
// themselves; the list endpoint populates leaseId with the lease
// document, and the table and edit form read the range from there.
func tenantLeaseDates(tenant rental.Tenant) (start, end string) {
	if tenant.LeaseID.Doc == nil {
		return "", ""
	}
	return tenant.LeaseID.Doc.Start(), tenant.LeaseID.Doc.End()
}

func buildTenantForm(data resourceData, editingID string) *Form {
	seed := data.seeds[editingID]
	value := func(fieldKey string) string { return seed[fieldKey] }

	title := "New tenant"
	if editingID != "" {
		title = "Edit tenant"
	}

	return NewForm(title, []FormField{
		TextField("name", "Name", value("name"), true),
		TextField("email", "Email", value("email"), true),
		TextField("phone", "Phone", value("phone"), false),
		SelectField("propertyId", "Property", data.options["propertyId"], value("propertyId"), false),
		TextField("leaseStart", "Lease start", value("leaseStart"), false),
		TextField("leaseEnd", "Lease end", value("leaseEnd"), false),
		TextField("notes", "Notes", value("notes"), false),
	})
}

// tenantPayload builds the tenant request body. The role rides along
// on every write so the server never reclassifies the account.
// Creation additionally provisions the login: the initial password is
// randomly generated (the server emails it to the tenant); updates
// never touch it. An unassigned property is omitted, not sent empty.
func tenantPayload(values map[string]string, editingID string, data resourceData) map[string]any {
	payload := map[string]any{
		"name":       values["name"],
		"email":      values["email"],
		"phone":      values["phone"],
		"leaseStart": values["leaseStart"],
		"leaseEnd":   values["leaseEnd"],
		"notes":      values["notes"],
		"role":       string(rental.RoleTenant),
	}
	if values["propertyId"] != "" {
		payload["propertyId"] = values["propertyId"]
	}
	if editingID == "" {
		payload["password"] = randomPassword()
	}
	return payload
}

// randomPassword generates the initial credential for a new tenant
// account.
func randomPassword() string {
	buffer := make([]byte, 8)
	if _, err := rand.Read(buffer); err != nil {
		// crypto/rand read failures are effectively fatal platform
		// problems; fall back to a fixed marker the admin will notice.
		return "changeme-now"
	}
	return hex.EncodeToString(buffer)
}
