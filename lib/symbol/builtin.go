// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package symbol

// Built-in symbol catalogs. Both are process-wide read-only constants
// constructed once at init; sessions share them freely.
//
// The default set uses pictographic symbols chosen to be visually
// distinct at a glance and renderable without variation selectors.
// The fallback set uses short plain-ASCII words for terminals without
// emoji support; its entries vary in length, so fixed-width contexts
// pad them (see Table.Pad).

var defaultSymbols = []string{
	"🐶", "🐱", "🦊", "🐼", "🦁", "🐸", "🐙", "🦋",
	"🌵", "🌲", "🍀", "🌻", "🌙", "⭐", "⚡", "🔥",
	"🌈", "🍎", "🍋", "🍉", "🍇", "🍄", "🥕", "🧀",
	"🎩", "🎈", "🎲", "🚀", "⚓", "🔑", "🔔", "💎",
}

var fallbackSymbols = []string{
	"ace", "bell", "cactus", "dove", "ember", "fox", "grape", "harp",
	"iris", "jade", "kite", "lark", "maple", "nova", "oak", "pearl",
	"quill", "rune", "star", "tulip", "urn", "vine", "wren", "yarn",
	"zephyr", "anchor", "comet", "drum", "flint", "gem", "helm", "sail",
}

var (
	defaultTable  *Table
	fallbackTable *Table
)

func init() {
	var err error
	if defaultTable, err = NewTable(defaultSymbols); err != nil {
		panic("symbol: invalid built-in default table: " + err.Error())
	}
	if fallbackTable, err = NewTable(fallbackSymbols); err != nil {
		panic("symbol: invalid built-in fallback table: " + err.Error())
	}
}

// Default returns the built-in pictographic table, shared across
// sessions.
func Default() *Table { return defaultTable }

// Fallback returns the built-in plain-text table for terminals that
// cannot render the default set. Shared across sessions.
func Fallback() *Table { return fallbackTable }
