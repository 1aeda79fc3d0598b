// Copyright 2026 The Estatedeck Authors
// SPDX-License-Identifier: Apache-2.0

package deckui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// tableColumn describes one column of a resource table.
type tableColumn struct {
	title string
	width int
}

// tableRow is one rendered row. Cells may carry lipgloss styling;
// width math uses ansi.StringWidth so styled cells align correctly.
type tableRow struct {
	id         string
	cells      []string
	searchText string // Lowercased concatenation of filterable fields.
}

// padCell truncates or pads a cell to the column width, measuring
// visible width so ANSI styling doesn't skew alignment.
func padCell(cell string, width int) string {
	visible := ansi.StringWidth(cell)
	if visible > width {
		return ansi.Truncate(cell, width-1, "…")
	}
	return cell + strings.Repeat(" ", width-visible)
}

// renderTableHeader draws the column title line.
func renderTableHeader(theme Theme, columns []tableColumn) string {
	headerStyle := lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true)
	parts := make([]string, len(columns))
	for index, column := range columns {
		parts[index] = padCell(column.title, column.width)
	}
	return headerStyle.Render(strings.Join(parts, "  "))
}

// renderTableRow draws one data row, applying the selection background
// when selected.
func renderTableRow(theme Theme, columns []tableColumn, row tableRow, selected bool) string {
	parts := make([]string, len(columns))
	for index, column := range columns {
		cell := ""
		if index < len(row.cells) {
			cell = row.cells[index]
		}
		parts[index] = padCell(cell, column.width)
	}
	line := strings.Join(parts, "  ")

	if selected {
		return lipgloss.NewStyle().
			Background(theme.SelectedBackground).
			Foreground(theme.SelectedForeground).
			Render(line)
	}
	return line
}

// renderScrollbar produces a single-column scrollbar of the given
// height. The thumb indicates the visible region within the total
// content; when everything fits, the thumb spans the full height.
func renderScrollbar(theme Theme, height, totalRows, visibleRows, scrollOffset int) string {
	if height <= 0 {
		return ""
	}

	trackStyle := lipgloss.NewStyle().Foreground(theme.BorderColor)
	thumbStyle := lipgloss.NewStyle().Foreground(theme.AccentColor)

	lines := make([]string, height)

	if totalRows <= visibleRows || totalRows <= 0 {
		for index := range lines {
			lines[index] = thumbStyle.Render("┃")
		}
		return strings.Join(lines, "\n")
	}

	thumbSize := height * visibleRows / totalRows
	if thumbSize < 1 {
		thumbSize = 1
	}

	scrollableRange := totalRows - visibleRows
	trackRange := height - thumbSize
	thumbOffset := 0
	if scrollableRange > 0 && trackRange > 0 {
		thumbOffset = scrollOffset * trackRange / scrollableRange
	}
	if thumbOffset+thumbSize > height {
		thumbOffset = height - thumbSize
	}

	for index := range lines {
		if index >= thumbOffset && index < thumbOffset+thumbSize {
			lines[index] = thumbStyle.Render("┃")
		} else {
			lines[index] = trackStyle.Render("│")
		}
	}

	return strings.Join(lines, "\n")
}
