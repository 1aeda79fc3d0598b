// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"context"
	"strconv"

	"github.com/estatedeck/estatedeck/lib/api"
	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// paymentListLimit caps how many payments the table fetches. The
// server pages by default; the console wants the whole collection so
// client-side filtering and the aggregates see everything.
const paymentListLimit = 10000

var paymentTypeOptions = []SelectOption{
	{Label: "Rent", Value: rental.PaymentRent},
	{Label: "Security deposit", Value: rental.PaymentSecurityDeposit},
	{Label: "Late fee", Value: rental.PaymentLateFee},
	{Label: "Pet deposit", Value: rental.PaymentPetDeposit},
	{Label: "Utility", Value: rental.PaymentUtility},
	{Label: "Maintenance", Value: rental.PaymentMaintenanceFee},
	{Label: "Other", Value: rental.PaymentOther},
}

// paymentMethodOptions uses the short labels managers type on paper
// ledgers; coercePaymentMethod maps them to the wire values.
var paymentMethodOptions = []SelectOption{
	{Label: "Manual", Value: "manual"},
	{Label: "Bank", Value: "bank"},
	{Label: "Card", Value: "card"},
	{Label: "Check", Value: rental.MethodCheck},
	{Label: "Online", Value: rental.MethodOnline},
	{Label: "Other", Value: rental.MethodOther},
}

var paymentStatusOptions = []SelectOption{
	{Label: "Pending", Value: rental.PaymentPending},
	{Label: "Completed", Value: rental.PaymentCompleted},
	{Label: "Overdue", Value: rental.PaymentOverdue},
}

// paymentsConfig builds the payments screen configuration.
func paymentsConfig() resourceConfig {
	return resourceConfig{
		screen: ScreenPayments,
		columns: []tableColumn{
			{title: "Tenant", width: 18},
			{title: "Property", width: 20},
			{title: "Amount", width: 12},
			{title: "Due", width: 12},
			{title: "Type", width: 14},
			{title: "Method", width: 13},
			{title: "Status", width: 10},
		},
		fetch:        fetchPayments,
		buildForm:    buildPaymentForm,
		buildPayload: paymentPayload,
		create: func(ctx context.Context, client *api.Client, payload map[string]any) error {
			return client.CreatePayment(ctx, payload)
		},
		update: func(ctx context.Context, client *api.Client, id string, payload map[string]any) error {
			return client.UpdatePayment(ctx, id, payload)
		},
		remove: func(ctx context.Context, client *api.Client, id string) error {
			return client.DeletePayment(ctx, id)
		},
	}
}

func fetchPayments(ctx context.Context, deps *Deps) (resourceData, error) {
	payments, err := deps.Client.ListPayments(ctx, paymentListLimit)
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
		seeds: make(map[string]map[string]string, len(payments)),
		options: map[string][]SelectOption{
			"tenant":   tenantOptions(tenants, true),
			"property": propertyOptions(properties, true),
		},
	}
	for _, payment := range payments {
		data.rows = append(data.rows, tableRow{
			id: payment.ID,
			cells: []string{
				refTenantName(payment.Tenant),
				refTitle(payment.Property),
				displayMoney(payment.Amount),
				displayOrDash(displayDate(payment.DueDate)),
				payment.PaymentType,
				payment.PaymentMethod,
				payment.Status,
			},
			searchText: searchText(refTenantName(payment.Tenant), refTitle(payment.Property), payment.PaymentType, payment.Status, payment.Description),
		})
		data.seeds[payment.ID] = map[string]string{
			"tenant":        payment.Tenant.ID,
			"property":      payment.Property.ID,
			"amount":        strconv.FormatFloat(payment.Amount, 'f', -1, 64),
			"date":          displayDate(payment.DueDate),
			"paymentType":   payment.PaymentType,
			"paymentMethod": payment.PaymentMethod,
			"status":        payment.Status,
			"description":   payment.Description,
		}
	}
	return data, nil
}

func buildPaymentForm(data resourceData, editingID string) *Form {
	seed := data.seeds[editingID]
	value := func(fieldKey string) string { return seed[fieldKey] }

	title := "New payment"
	if editingID != "" {
		title = "Edit payment"
	}

	return NewForm(title, []FormField{
		SelectField("tenant", "Tenant", data.options["tenant"], value("tenant"), false),
		SelectField("property", "Property", data.options["property"], value("property"), false),
		TextField("amount", "Amount", value("amount"), true),
		TextField("date", "Due date", value("date"), true),
		SelectField("paymentType", "Type", paymentTypeOptions, value("paymentType"), true),
		SelectField("paymentMethod", "Method", paymentMethodOptions, value("paymentMethod"), true),
		SelectField("status", "Status", paymentStatusOptions, value("status"), true),
		TextField("description", "Description", value("description"), false),
	})
}

// coercePaymentMethod maps the ledger shorthand the form offers to
// the values the server validates against. Canonical values pass
// through; anything unrecognized records as cash.
func coercePaymentMethod(method string) string {
	switch method {
	case "manual":
		return rental.MethodCash
	case "bank":
		return rental.MethodBankTransfer
	case "card":
		return rental.MethodCreditCard
	case rental.MethodCash, rental.MethodCheck, rental.MethodBankTransfer,
		rental.MethodCreditCard, rental.MethodOnline, rental.MethodOther:
		return method
	default:
		return rental.MethodCash
	}
}

// paymentPayload builds the payment request body. The form's "date"
// field is the due date on the wire, and the method shorthand is
// coerced to its canonical value. Unassigned references are omitted.
func paymentPayload(values map[string]string, editingID string, data resourceData) map[string]any {
	payload := map[string]any{
		"amount":        parseAmount(values["amount"]),
		"dueDate":       values["date"],
		"paymentType":   values["paymentType"],
		"paymentMethod": coercePaymentMethod(values["paymentMethod"]),
		"status":        values["status"],
		"description":   values["description"],
	}
	if values["tenant"] != "" {
		payload["tenant"] = values["tenant"]
	}
	if values["property"] != "" {
		payload["property"] = values["property"]
	}
	return payload
}
