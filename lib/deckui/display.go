// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"fmt"
	"strings"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

// displayDate trims an ISO timestamp to its date part for table cells.
func displayDate(value string) string {
	if len(value) >= 10 {
		return value[:10]
	}
	return value
}

// displayMoney formats an amount for table cells and stat cards.
func displayMoney(amount float64) string {
	return fmt.Sprintf("$%.2f", amount)
}

// displayOrDash substitutes a dash for empty cells.
func displayOrDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}

// searchText lowercases and joins the filterable fields of a row.
func searchText(fields ...string) string {
	return strings.ToLower(strings.Join(fields, " "))
}

// propertyOptions builds the select list for property reference
// fields. includeNone prepends an unassigned choice with an empty
// value, which payload builders strip.
func propertyOptions(properties []rental.Property, includeNone bool) []SelectOption {
	var options []SelectOption
	if includeNone {
		options = append(options, SelectOption{Label: "(none)", Value: ""})
	}
	for _, property := range properties {
		options = append(options, SelectOption{Label: property.Title, Value: property.ID})
	}
	return options
}

// tenantOptions builds the select list for tenant reference fields.
func tenantOptions(tenants []rental.Tenant, includeNone bool) []SelectOption {
	var options []SelectOption
	if includeNone {
		options = append(options, SelectOption{Label: "(none)", Value: ""})
	}
	for _, tenant := range tenants {
		options = append(options, SelectOption{Label: tenant.Name, Value: tenant.ID})
	}
	return options
}

// refTitle resolves a property reference to its title for display,
// falling back to the bare ID when the reference came back
// unpopulated.
func refTitle(ref rental.Ref[rental.Property]) string {
	if ref.Doc != nil {
		return ref.Doc.Title
	}
	return displayOrDash(ref.ID)
}

// refTenantName resolves a tenant reference to its name for display.
func refTenantName(ref rental.Ref[rental.Tenant]) string {
	if ref.Doc != nil {
		return ref.Doc.Name
	}
	return displayOrDash(ref.ID)
}
