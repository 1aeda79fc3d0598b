// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"strconv"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

var transactionTypeOptions = []SelectOption{
	{Label: "Rent", Value: rental.TransactionRent},
	{Label: "Buy", Value: rental.TransactionBuy},
}

// clientsConfig builds the clients screen configuration.
func clientsConfig() resourceConfig {
	return resourceConfig{
		screen: ScreenClients,
		columns: []tableColumn{
			{title: "Name", width: 20},
			{title: "Email", width: 24},
			{title: "Phone", width: 14},
			{title: "Type", width: 6},
			{title: "Budget", width: 12},
			{title: "Property", width: 20},
		},
		fetch:        fetchClients,
		buildForm:    buildClientForm,
		buildPayload: clientPayload,
		create: func(ctx context.Context, client *api.Client, payload map[string]any) error {
			return client.CreateClient(ctx, payload)
		},
		update: func(ctx context.Context, client *api.Client, id string, payload map[string]any) error {
			return client.UpdateClient(ctx, id, payload)
		},
		remove: func(ctx context.Context, client *api.Client, id string) error {
			return client.DeleteClient(ctx, id)
		},
	}
}

func fetchClients(ctx context.Context, deps *Deps) (resourceData, error) {
	clients, err := deps.Client.ListClients(ctx)
	if err != nil {
		return resourceData{}, err
	}
	properties, err := deps.Client.ListProperties(ctx)
	if err != nil {
		return resourceData{}, err
	}

	data := resourceData{
		seeds:   make(map[string]map[string]string, len(clients)),
		options: map[string][]SelectOption{"property": propertyOptions(properties, true)},
	}
	for _, record := range clients {
		data.rows = append(data.rows, tableRow{
			id: record.ID,
			cells: []string{
				record.ClientName,
				record.Email,
				displayOrDash(record.Phone),
				record.TransactionType,
				displayMoney(record.Budget),
				refTitle(record.Property),
			},
			searchText: searchText(record.ClientName, record.Email, record.Phone, record.TransactionType),
		})
		data.seeds[record.ID] = map[string]string{
			"clientName":      record.ClientName,
			"email":           record.Email,
			"phone":           record.Phone,
			"property":        record.Property.ID,
			"transactionType": record.TransactionType,
			"budget":          strconv.FormatFloat(record.Budget, 'f', -1, 64),
			"moveInDate":      displayDate(record.MoveInDate),
			"leaseDuration":   strconv.Itoa(record.LeaseDuration),
			"notes":           record.Notes,
		}
	}
	return data, nil
}

func buildClientForm(data resourceData, editingID string) *Form {
	seed := data.seeds[editingID]
	value := func(fieldKey string) string { return seed[fieldKey] }

	title := "New client"
	if editingID != "" {
		title = "Edit client"
	}

	return NewForm(title, []FormField{
		TextField("clientName", "Name", value("clientName"), true),
		TextField("email", "Email", value("email"), true),
		TextField("phone", "Phone", value("phone"), false),
		SelectField("property", "Property", data.options["property"], value("property"), false),
		SelectField("transactionType", "Transaction", transactionTypeOptions, value("transactionType"), true),
		TextField("budget", "Budget", value("budget"), false),
		TextField("moveInDate", "Move-in date", value("moveInDate"), false),
		TextField("leaseDuration", "Lease months", value("leaseDuration"), false),
		TextField("notes", "Notes", value("notes"), false),
	})
}

// clientPayload builds the client request body. An unassigned property
// is omitted rather than sent as an empty string, which the server
// would reject as a malformed object ID.
func clientPayload(values map[string]string, editingID string, data resourceData) map[string]any {
	payload := map[string]any{
		"clientName":      values["clientName"],
		"email":           values["email"],
		"phone":           values["phone"],
		"transactionType": values["transactionType"],
		"budget":          parseAmount(values["budget"]),
		"moveInDate":      values["moveInDate"],
		"leaseDuration":   parseCount(values["leaseDuration"]),
		"notes":           values["notes"],
	}
	if values["property"] != "" {
		payload["property"] = values["property"]
	}
	return payload
}
