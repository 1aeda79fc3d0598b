// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import "github.com/estatedeck/estatedeck/lib/schema/rental"

// AllTimeIncome sums the amount of every payment on record. Payments
// are included regardless of status: a pending or overdue invoice
// counts toward the figure the moment it is issued. The reports screen
// and the dashboard stat card both use this, so they always agree.
func AllTimeIncome(payments []rental.Payment) float64 {
	var total float64
	for _, payment := range payments {
		total += payment.Amount
	}
	return total
}

// PendingPayments returns the count and summed amount of payments
// whose status is exactly "pending". Overdue payments are not
// pending: they have their own card.
func PendingPayments(payments []rental.Payment) (count int, amount float64) {
	for _, payment := range payments {
		if payment.Status == rental.PaymentPending {
			count++
			amount += payment.Amount
		}
	}
	return count, amount
}

// PendingMaintenanceByProperty counts open maintenance requests per
// property ID. Only requests still in "pending" contribute; anything
// in progress is already being handled and completed or cancelled
// requests are resolved. Requests without a property reference are
// skipped.
func PendingMaintenanceByProperty(requests []rental.MaintenanceRequest) map[string]int {
	counts := make(map[string]int)
	for _, request := range requests {
		if request.Status != rental.MaintenancePending {
			continue
		}
		propertyID := request.Property.ID
		if propertyID == "" {
			continue
		}
		counts[propertyID]++
	}
	return counts
}

// OccupiedProperties counts properties whose status is "occupied".
func OccupiedProperties(properties []rental.Property) int {
	occupied := 0
	for _, property := range properties {
		if property.Status == rental.PropertyOccupied {
			occupied++
		}
	}
	return occupied
}
