// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package leasedoc

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestJoinPages(t *testing.T) {
	allText, lastPageText := JoinPages([]string{
		"RESIDENTIAL LEASE AGREEMENT\n",
		"Section 2. Rent is due on the first.",
		"  Signatures:\nLandlord ____ Tenant ____\n",
	})

	if want := "RESIDENTIAL LEASE AGREEMENT\n\n\nSection 2. Rent is due on the first.\n\n  Signatures:\nLandlord ____ Tenant ____"; allText != want {
		t.Errorf("allText = %q, want %q", allText, want)
	}
	if want := "Signatures:\nLandlord ____ Tenant ____"; lastPageText != want {
		t.Errorf("lastPageText = %q, want %q", lastPageText, want)
	}
}

func TestJoinPagesSinglePage(t *testing.T) {
	allText, lastPageText := JoinPages([]string{" only page "})
	if allText != "only page" || lastPageText != "only page" {
		t.Errorf("got (%q, %q), want both %q", allText, lastPageText, "only page")
	}
}

func TestJoinPagesEmpty(t *testing.T) {
	allText, lastPageText := JoinPages(nil)
	if allText != "" || lastPageText != "" {
		t.Errorf("got (%q, %q), want empty strings", allText, lastPageText)
	}
}

func TestExtractEmptyURL(t *testing.T) {
	_, err := Extract(context.Background(), nil, "")
	if err == nil {
		t.Fatal("expected error for empty URL")
	}
}

func TestExtractHTTPFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.NotFound(writer, request)
	}))
	defer server.Close()

	_, err := Extract(context.Background(), server.Client(), server.URL+"/missing.pdf")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !strings.Contains(err.Error(), "status 404") {
		t.Errorf("error = %v, want mention of status 404", err)
	}
}

func TestExtractMalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		writer.Header().Set("Content-Type", "application/pdf")
		writer.Write([]byte("this is not a pdf"))
	}))
	defer server.Close()

	_, err := Extract(context.Background(), server.Client(), server.URL+"/lease.pdf")
	if err == nil {
		t.Fatal("expected error for malformed document")
	}
}
