// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"testing"

	"github.com/estatedeck/estatedeck/lib/schema/rental"
)

func TestCoercePaymentMethod(t *testing.T) {
	cases := map[string]string{
		"manual":        rental.MethodCash,
		"bank":          rental.MethodBankTransfer,
		"card":          rental.MethodCreditCard,
		"check":         rental.MethodCheck,
		"online":        rental.MethodOnline,
		"other":         rental.MethodOther,
		"bank_transfer": rental.MethodBankTransfer,
		"credit_card":   rental.MethodCreditCard,
		"cash":          rental.MethodCash,
		"venmo":         rental.MethodCash, // Unrecognized values record as cash.
		"":              rental.MethodCash,
	}
	for input, want := range cases {
		if got := coercePaymentMethod(input); got != want {
			t.Errorf("coercePaymentMethod(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestPaymentPayloadDateBecomesDueDate(t *testing.T) {
	payload := paymentPayload(map[string]string{
		"amount":        "1200.50",
		"date":          "2026-09-01",
		"paymentType":   "rent",
		"paymentMethod": "bank",
		"status":        "pending",
	}, "", resourceData{})

	if payload["dueDate"] != "2026-09-01" {
		t.Errorf("dueDate = %v, want 2026-09-01", payload["dueDate"])
	}
	if _, present := payload["date"]; present {
		t.Error("payload should not carry the form's date key")
	}
	if payload["amount"] != 1200.50 {
		t.Errorf("amount = %v, want 1200.50", payload["amount"])
	}
	if payload["paymentMethod"] != rental.MethodBankTransfer {
		t.Errorf("paymentMethod = %v, want bank_transfer", payload["paymentMethod"])
	}
	if _, present := payload["tenant"]; present {
		t.Error("empty tenant reference should be omitted")
	}
}

func TestPropertyPayloadStripsInapplicablePrice(t *testing.T) {
	rentValues := map[string]string{
		"title": "Unit 4B", "type": rental.ListingRent,
		"rentAmount": "1500", "salePrice": "250000",
	}
	payload := propertyPayload(rentValues, "", resourceData{})
	if payload["rentAmount"] != 1500.0 {
		t.Errorf("rentAmount = %v, want 1500", payload["rentAmount"])
	}
	if _, present := payload["salePrice"]; present {
		t.Error("rental listing should not carry salePrice")
	}

	saleValues := map[string]string{
		"title": "Unit 4B", "type": rental.ListingSell,
		"rentAmount": "1500", "salePrice": "250000",
	}
	payload = propertyPayload(saleValues, "", resourceData{})
	if payload["salePrice"] != 250000.0 {
		t.Errorf("salePrice = %v, want 250000", payload["salePrice"])
	}
	if _, present := payload["rentAmount"]; present {
		t.Error("sale listing should not carry rentAmount")
	}
}

func TestPropertyPayloadNestedAddress(t *testing.T) {
	payload := propertyPayload(map[string]string{
		"street": "12 Elm St", "city": "Springfield", "state": "IL",
		"zipCode": "62704", "country": "USA", "type": rental.ListingRent,
	}, "", resourceData{})

	address, ok := payload["address"].(map[string]any)
	if !ok {
		t.Fatalf("address is %T, want map", payload["address"])
	}
	if address["city"] != "Springfield" || address["zipCode"] != "62704" {
		t.Errorf("address = %v", address)
	}
}

func TestTenantPayloadCreateProvisionsAccount(t *testing.T) {
	payload := tenantPayload(map[string]string{
		"name": "Ana", "email": "ana@example.com", "propertyId": "",
	}, "", resourceData{})

	if payload["role"] != "tenant" {
		t.Errorf("role = %v, want tenant", payload["role"])
	}
	password, ok := payload["password"].(string)
	if !ok || len(password) < 8 {
		t.Errorf("password = %v, want a generated string of at least 8 chars", payload["password"])
	}
	if _, present := payload["propertyId"]; present {
		t.Error("empty propertyId should be omitted")
	}
}

func TestTenantPayloadUpdateKeepsCredentials(t *testing.T) {
	payload := tenantPayload(map[string]string{
		"name": "Ana", "email": "ana@example.com", "propertyId": "prop-1",
	}, "tenant-1", resourceData{})

	if _, present := payload["password"]; present {
		t.Error("update must not rotate the password")
	}
	if payload["role"] != "tenant" {
		t.Errorf("role = %v, want tenant on every write", payload["role"])
	}
	if payload["propertyId"] != "prop-1" {
		t.Errorf("propertyId = %v, want prop-1", payload["propertyId"])
	}
}

func TestLeasePayloadDefaultsAndKeyMapping(t *testing.T) {
	payload := leasePayload(map[string]string{
		"tenant": "t1", "property": "p1",
		"leaseStart": "2026-01-01", "leaseEnd": "2026-12-31",
		"leaseTerms": "",
	}, "", resourceData{})

	if payload["startDate"] != "2026-01-01" || payload["endDate"] != "2026-12-31" {
		t.Errorf("dates = %v / %v", payload["startDate"], payload["endDate"])
	}
	if _, present := payload["leaseStart"]; present {
		t.Error("payload should not carry the form's leaseStart key")
	}
	if payload["leaseTerms"] != defaultLeaseTerms {
		t.Errorf("leaseTerms = %v, want default boilerplate", payload["leaseTerms"])
	}
}

func TestClientPayloadOmitsEmptyProperty(t *testing.T) {
	payload := clientPayload(map[string]string{
		"clientName": "Sam", "email": "sam@example.com",
		"transactionType": "rent", "budget": "900", "property": "",
	}, "", resourceData{})

	if _, present := payload["property"]; present {
		t.Error("empty property reference should be omitted")
	}
	if payload["budget"] != 900.0 {
		t.Errorf("budget = %v, want 900", payload["budget"])
	}
}

func TestTenantLeaseDatesFromPopulatedLease(t *testing.T) {
	tenant := rental.Tenant{
		LeaseID: rental.Ref[rental.Lease]{
			ID: "lease-1",
			Doc: &rental.Lease{
				ID:         "lease-1",
				LeaseStart: "2026-02-01T00:00:00Z",
				EndDate:    "2027-01-31T00:00:00Z",
			},
		},
	}
	start, end := tenantLeaseDates(tenant)
	if start != "2026-02-01T00:00:00Z" {
		t.Errorf("start = %q", start)
	}
	if end != "2027-01-31T00:00:00Z" {
		t.Errorf("end = %q", end)
	}

	start, end = tenantLeaseDates(rental.Tenant{LeaseID: rental.Ref[rental.Lease]{ID: "lease-2"}})
	if start != "" || end != "" {
		t.Errorf("unpopulated lease should yield empty dates, got %q / %q", start, end)
	}
}

func TestFormValidateRequiredFields(t *testing.T) {
	form := NewForm("Test", []FormField{
		TextField("title", "Title", "", true),
		TextField("notes", "Notes", "", false),
	})
	if err := form.Validate(); err == nil {
		t.Error("expected validation error for empty required field")
	}

	form = NewForm("Test", []FormField{
		TextField("title", "Title", "Roof leak", true),
	})
	if err := form.Validate(); err != nil {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestFormValuesTrimWhitespace(t *testing.T) {
	form := NewForm("Test", []FormField{
		TextField("title", "Title", "  padded  ", true),
	})
	if got := form.Values()["title"]; got != "padded" {
		t.Errorf("title = %q, want %q", got, "padded")
	}
}
