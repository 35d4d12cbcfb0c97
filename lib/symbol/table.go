// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package symbol

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Table is an ordered, immutable catalog of display symbols. Selection
// algorithms in lib/derive depend on its fixed length, so a Table is
// never mutated after construction.
type Table struct {
	symbols  []string
	maxWidth int
}

// NewTable builds a table from the given display symbols. The list
// must contain at least one symbol and no empty strings; violations
// are configuration errors surfaced before any prompt session begins.
func NewTable(symbols []string) (*Table, error) {
	if len(symbols) == 0 {
		return nil, fmt.Errorf("symbol: table must contain at least one symbol")
	}

	maxWidth := 0
	for index, entry := range symbols {
		if entry == "" {
			return nil, fmt.Errorf("symbol: table entry %d is empty", index)
		}
		if width := ansi.StringWidth(entry); width > maxWidth {
			maxWidth = width
		}
	}

	// Private copy so the caller cannot mutate the table afterwards.
	owned := make([]string, len(symbols))
	copy(owned, symbols)

	return &Table{symbols: owned, maxWidth: maxWidth}, nil
}

// Len returns the number of symbols in the table.
func (t *Table) Len() int { return len(t.symbols) }

// Symbol returns the symbol at the given index. The returned string
// references the table's storage; it is shared, not a copy. Panics on
// an out-of-range index — derivation indices are always reduced modulo
// Len before lookup.
func (t *Table) Symbol(index int) string { return t.symbols[index] }

// MaxWidth returns the display width (terminal cells) of the widest
// symbol. Fixed-width display contexts pad every symbol to this width.
func (t *Table) MaxWidth() int { return t.maxWidth }

// Pad center-pads a symbol with spaces to MaxWidth display cells. A
// symbol already at or above that width is returned unchanged, which
// makes Pad idempotent. Padding allocates a new string; the unpadded
// input remains a reference into the table.
func (t *Table) Pad(entry string) string {
	width := ansi.StringWidth(entry)
	if width >= t.maxWidth {
		return entry
	}

	total := t.maxWidth - width
	left := total / 2
	right := total - left
	return strings.Repeat(" ", left) + entry + strings.Repeat(" ", right)
}
