// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"testing"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

func TestAllTimeIncomeIncludesEveryStatus(t *testing.T) {
	payments := []rental.Payment{
		{Amount: 100, Status: rental.PaymentCompleted},
		{Amount: 50, Status: rental.PaymentPending},
		{Amount: 25, Status: rental.PaymentOverdue},
	}

	if got := AllTimeIncome(payments); got != 175 {
		t.Errorf("AllTimeIncome = %v, want 175", got)
	}
}

func TestAllTimeIncomeEmpty(t *testing.T) {
	if got := AllTimeIncome(nil); got != 0 {
		t.Errorf("AllTimeIncome(nil) = %v, want 0", got)
	}
}

func TestPendingPayments(t *testing.T) {
	payments := []rental.Payment{
		{Amount: 100, Status: rental.PaymentCompleted},
		{Amount: 50, Status: rental.PaymentPending},
		{Amount: 25, Status: rental.PaymentPending},
		{Amount: 40, Status: rental.PaymentOverdue},
	}

	count, amount := PendingPayments(payments)
	if count != 2 {
		t.Errorf("pending count = %d, want 2", count)
	}
	if amount != 75 {
		t.Errorf("pending amount = %v, want 75", amount)
	}
}

func TestPendingMaintenanceByProperty(t *testing.T) {
	requests := []rental.MaintenanceRequest{
		{Status: rental.MaintenancePending, Property: rental.Ref[rental.Property]{ID: "prop-a"}},
		{Status: rental.MaintenanceInProgress, Property: rental.Ref[rental.Property]{ID: "prop-a"}},
		{Status: rental.MaintenancePending, Property: rental.Ref[rental.Property]{ID: "prop-b"}},
		{Status: rental.MaintenanceCompleted, Property: rental.Ref[rental.Property]{ID: "prop-b"}},
		{Status: rental.MaintenancePending}, // No property reference.
	}

	counts := PendingMaintenanceByProperty(requests)
	if len(counts) != 2 {
		t.Fatalf("got %d properties, want 2: %v", len(counts), counts)
	}
	if counts["prop-a"] != 1 {
		t.Errorf("prop-a = %d, want 1", counts["prop-a"])
	}
	if counts["prop-b"] != 1 {
		t.Errorf("prop-b = %d, want 1", counts["prop-b"])
	}
}

func TestOccupiedProperties(t *testing.T) {
	properties := []rental.Property{
		{Status: rental.PropertyOccupied},
		{Status: rental.PropertyAvailable},
		{Status: rental.PropertyOccupied},
		{Status: rental.PropertyMaintenance},
	}
	if got := OccupiedProperties(properties); got != 2 {
		t.Errorf("OccupiedProperties = %d, want 2", got)
	}
}
