// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

var maintenanceCategoryOptions = []SelectOption{
	{Label: "Plumbing", Value: rental.CategoryPlumbing},
	{Label: "Electrical", Value: rental.CategoryElectrical},
	{Label: "HVAC", Value: rental.CategoryHVAC},
	{Label: "Appliance", Value: rental.CategoryAppliance},
	{Label: "Structural", Value: rental.CategoryStructural},
	{Label: "Cosmetic", Value: rental.CategoryCosmetic},
	{Label: "Security", Value: rental.CategorySecurity},
	{Label: "Other", Value: rental.CategoryOther},
}

var maintenancePriorityOptions = []SelectOption{
	{Label: "Low", Value: rental.PriorityLow},
	{Label: "Medium", Value: rental.PriorityMedium},
	{Label: "High", Value: rental.PriorityHigh},
	{Label: "Emergency", Value: rental.PriorityEmergency},
}

var maintenanceStatusOptions = []SelectOption{
	{Label: "Pending", Value: rental.MaintenancePending},
	{Label: "In progress", Value: rental.MaintenanceInProgress},
	{Label: "Completed", Value: rental.MaintenanceCompleted},
	{Label: "On hold", Value: rental.MaintenanceOnHold},
	{Label: "Cancelled", Value: rental.MaintenanceCancelled},
}

// maintenanceConfig builds the maintenance screen configuration. This
// is the one resource screen every role can open: tenants file
// requests against their own unit, managers triage the full queue.
// Mutations here feed the dashboard's per-property pending counts, so
// the config flags dashboard invalidation.
func maintenanceConfig() resourceConfig {
	return resourceConfig{
		screen: ScreenMaintenance,
		columns: []tableColumn{
			{title: "Title", width: 24},
			{title: "Property", width: 20},
			{title: "Category", width: 11},
			{title: "Priority", width: 10},
			{title: "Status", width: 12},
			{title: "Requested by", width: 16},
		},
		fetch:        fetchMaintenance,
		buildForm:    buildMaintenanceForm,
		buildPayload: maintenancePayload,
		create: func(ctx context.Context, client *api.Client, payload map[string]any) error {
			return client.CreateMaintenance(ctx, payload)
		},
		update: func(ctx context.Context, client *api.Client, id string, payload map[string]any) error {
			return client.UpdateMaintenance(ctx, id, payload)
		},
		remove: func(ctx context.Context, client *api.Client, id string) error {
			return client.DeleteMaintenance(ctx, id)
		},
		invalidatesDashboard: true,
	}
}

func fetchMaintenance(ctx context.Context, deps *Deps) (resourceData, error) {
	requests, err := deps.Client.ListMaintenance(ctx)
	if err != nil {
		return resourceData{}, err
	}

	// Managers choose from the full property list; tenants can only
	// file against their own unit, so the property endpoint (which
	// their role can't list) is never called for them.
	var options []SelectOption
	state := deps.Session.State()
	if state.User != nil && state.User.Role == rental.RoleTenant {
		if state.User.PropertyID != "" {
			options = []SelectOption{{Label: "My unit", Value: state.User.PropertyID}}
		}
	} else {
		properties, err := deps.Client.ListProperties(ctx)
		if err != nil {
			return resourceData{}, err
		}
		options = propertyOptions(properties, true)
	}

	data := resourceData{
		seeds:   make(map[string]map[string]string, len(requests)),
		options: map[string][]SelectOption{"property": options},
	}
	for _, request := range requests {
		requestedBy := "-"
		if request.RequestedBy.Doc != nil {
			requestedBy = request.RequestedBy.Doc.Name
		}
		data.rows = append(data.rows, tableRow{
			id: request.ID,
			cells: []string{
				request.Title,
				refTitle(request.Property),
				request.Category,
				request.Priority,
				request.Status,
				requestedBy,
			},
			searchText: searchText(request.Title, request.Description, refTitle(request.Property), request.Category, request.Priority, request.Status),
		})
		data.seeds[request.ID] = map[string]string{
			"title":       request.Title,
			"description": request.Description,
			"category":    request.Category,
			"priority":    request.Priority,
			"status":      request.Status,
			"property":    request.Property.ID,
		}
	}
	return data, nil
}

func buildMaintenanceForm(data resourceData, editingID string) *Form {
	seed := data.seeds[editingID]
	value := func(fieldKey string) string { return seed[fieldKey] }

	title := "New maintenance request"
	if editingID != "" {
		title = "Edit maintenance request"
	}

	return NewForm(title, []FormField{
		TextField("title", "Title", value("title"), true),
		TextField("description", "Description", value("description"), true),
		SelectField("property", "Property", data.options["property"], value("property"), false),
		SelectField("category", "Category", maintenanceCategoryOptions, value("category"), true),
		SelectField("priority", "Priority", maintenancePriorityOptions, value("priority"), true),
		SelectField("status", "Status", maintenanceStatusOptions, value("status"), true),
	})
}

// maintenancePayload builds the maintenance request body. An
// unassigned property is omitted.
func maintenancePayload(values map[string]string, editingID string, data resourceData) map[string]any {
	payload := map[string]any{
		"title":       values["title"],
		"description": values["description"],
		"category":    values["category"],
		"priority":    values["priority"],
		"status":      values["status"],
	}
	if values["property"] != "" {
		payload["property"] = values["property"]
	}
	return payload
}
