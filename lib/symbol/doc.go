// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package symbol provides the ordered, immutable catalogs of display
// symbols used for visual secret confirmation.
//
// A [Table] is built once — from the built-in [Default] pictographic
// set, the built-in plain-text [Fallback] set, or a user-supplied list
// via [NewTable] — and never mutated afterwards; the selection
// algorithm in lib/derive depends on its fixed length. [Table.Pad]
// center-pads a symbol with spaces to the table's widest display
// width, measured in terminal cells (emoji count as two), for
// fixed-width rows on plain-text tables.
//
// Depends on github.com/charmbracelet/x/ansi for display-width
// measurement. No Sigil-internal dependencies.
package symbol
