// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

// Package leasedoc extracts the text of a lease agreement PDF. The
// viewer shows the whole agreement and, separately, the final page
// (where signature blocks and rider clauses live).
package leasedoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ledongthuc/pdf"
)

// maxDocumentBytes bounds how large a fetched agreement may be.
// Agreements are a handful of pages; 32 MiB is already generous.
const maxDocumentBytes = 32 << 20

// pageSeparator joins consecutive pages in the full-text output.
const pageSeparator = "\n\n"

// Result holds the extracted text of an agreement.
type Result struct {
	// AllText is every page's text in page order, joined by a blank
	// line, with surrounding whitespace trimmed.
	AllText string
	// LastPageText is the final page's text alone, trimmed.
	LastPageText string
	// PageCount is the number of pages in the document.
	PageCount int
}

// Extract fetches the document at documentURL and extracts its text
// page by page. httpClient may be nil, in which case
// http.DefaultClient is used. Any failure (unreachable URL, non-2xx
// response, malformed document) returns an error and no partial text.
func Extract(ctx context.Context, httpClient *http.Client, documentURL string) (Result, error) {
	if documentURL == "" {
		return Result{}, fmt.Errorf("leasedoc: empty document URL")
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, documentURL, nil)
	if err != nil {
		return Result{}, fmt.Errorf("leasedoc: building request: %w", err)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return Result{}, fmt.Errorf("leasedoc: fetching %s: %w", documentURL, err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return Result{}, fmt.Errorf("leasedoc: fetching %s: status %d", documentURL, response.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(response.Body, maxDocumentBytes))
	if err != nil {
		return Result{}, fmt.Errorf("leasedoc: reading document body: %w", err)
	}

	return extractFromBytes(data)
}

// extractFromBytes parses a PDF held in memory and walks its pages in
// order.
func extractFromBytes(data []byte) (Result, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Result{}, fmt.Errorf("leasedoc: parsing document: %w", err)
	}

	pageCount := reader.NumPage()
	pages := make([]string, 0, pageCount)
	for pageNumber := 1; pageNumber <= pageCount; pageNumber++ {
		page := reader.Page(pageNumber)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return Result{}, fmt.Errorf("leasedoc: extracting page %d: %w", pageNumber, err)
		}
		pages = append(pages, text)
	}

	allText, lastPageText := JoinPages(pages)
	return Result{
		AllText:      allText,
		LastPageText: lastPageText,
		PageCount:    pageCount,
	}, nil
}

// JoinPages combines per-page text into the two outputs the viewer
// renders: the full agreement (pages joined in order) and the final
// page alone. Both are whitespace-trimmed. Empty input yields two
// empty strings.
func JoinPages(pages []string) (allText, lastPageText string) {
	if len(pages) == 0 {
		return "", ""
	}
	allText = strings.TrimSpace(strings.Join(pages, pageSeparator))
	lastPageText = strings.TrimSpace(pages[len(pages)-1])
	return allText, lastPageText
}
