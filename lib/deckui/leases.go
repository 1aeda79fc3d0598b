// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/estatedeck/estatedeck/lib/api"
)

// defaultLeaseTerms is the boilerplate inserted when a lease is
// created without explicit terms.
const defaultLeaseTerms = "Standard lease terms"

// leaseOpenMsg asks the top-level model to open the agreement viewer
// for a lease document URL.
type leaseOpenMsg struct {
	url string
}

// leasesConfig builds the leases screen configuration.
func leasesConfig() resourceConfig {
	return resourceConfig{
		screen: ScreenLeases,
		columns: []tableColumn{
			{title: "Tenant", width: 20},
			{title: "Property", width: 22},
			{title: "Start", width: 12},
			{title: "End", width: 12},
			{title: "Agreement", width: 10},
		},
		fetch:        fetchLeases,
		buildForm:    buildLeaseForm,
		buildPayload: leasePayload,
		create: func(ctx context.Context, client *api.Client, payload map[string]any) error {
			return client.CreateLease(ctx, payload)
		},
		update: func(ctx context.Context, client *api.Client, id string, payload map[string]any) error {
			return client.UpdateLease(ctx, id, payload)
		},
		remove: func(ctx context.Context, client *api.Client, id string) error {
			return client.DeleteLease(ctx, id)
		},
		openRow: openLeaseAgreement,
	}
}

func fetchLeases(ctx context.Context, deps *Deps) (resourceData, error) {
	leases, err := deps.Client.ListLeases(ctx)
	if err != nil {
		return resourceData{}, err
	}
	tenants, err := deps.Client.ListTenants(ctx)
	if err != nil {
		return resourceData{}, err
	}
	properties, err := deps.Client.ListProperties(ctx)
	if err != nil {
		return resourceData{}, err
	}

	data := resourceData{
		seeds: make(map[string]map[string]string, len(leases)),
		options: map[string][]SelectOption{
			"tenant":   tenantOptions(tenants, false),
			"property": propertyOptions(properties, false),
		},
	}
	for _, lease := range leases {
		agreement := "-"
		if lease.AgreementPdfURL != "" {
			agreement = "pdf"
		}
		data.rows = append(data.rows, tableRow{
			id: lease.ID,
			cells: []string{
				refTenantName(lease.Tenant),
				refTitle(lease.Property),
				displayOrDash(displayDate(lease.Start())),
				displayOrDash(displayDate(lease.End())),
				agreement,
			},
			searchText: searchText(refTenantName(lease.Tenant), refTitle(lease.Property)),
		})
		data.seeds[lease.ID] = map[string]string{
			"tenant":          lease.Tenant.ID,
			"property":        lease.Property.ID,
			"leaseStart":      displayDate(lease.Start()),
			"leaseEnd":        displayDate(lease.End()),
			"leaseTerms":      lease.LeaseTerms,
			"agreementPdfUrl": lease.AgreementPdfURL,
		}
	}
	return data, nil
}

func buildLeaseForm(data resourceData, editingID string) *Form {
	seed := data.seeds[editingID]
	value := func(fieldKey string) string { return seed[fieldKey] }

	title := "New lease"
	if editingID != "" {
		title = "Edit lease"
	}

	return NewForm(title, []FormField{
		SelectField("tenant", "Tenant", data.options["tenant"], value("tenant"), true),
		SelectField("property", "Property", data.options["property"], value("property"), true),
		TextField("leaseStart", "Start date", value("leaseStart"), true),
		TextField("leaseEnd", "End date", value("leaseEnd"), true),
		TextField("leaseTerms", "Terms", value("leaseTerms"), false),
		TextField("agreementPdfUrl", "Agreement URL", value("agreementPdfUrl"), false),
	})
}

// leasePayload builds the lease request body. The form's date fields
// map to the canonical startDate/endDate keys, and empty terms get
// the standard boilerplate.
func leasePayload(values map[string]string, editingID string, data resourceData) map[string]any {
	terms := values["leaseTerms"]
	if terms == "" {
		terms = defaultLeaseTerms
	}
	return map[string]any{
		"tenant":          values["tenant"],
		"property":        values["property"],
		"startDate":       values["leaseStart"],
		"endDate":         values["leaseEnd"],
		"leaseTerms":      terms,
		"agreementPdfUrl": values["agreementPdfUrl"],
	}
}

// openLeaseAgreement handles the Open key on a lease row: if the
// lease has an agreement document, ask the top level to show it.
func openLeaseAgreement(deps *Deps, data resourceData, id string) tea.Cmd {
	seed := data.seeds[id]
	if seed == nil || seed["agreementPdfUrl"] == "" {
		return nil
	}
	url := seed["agreementPdfUrl"]
	return func() tea.Msg {
		return leaseOpenMsg{url: url}
	}
}
