// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package tui provides the lipgloss theme and prebuilt styles for the
// Sigil prompt.
//
// The palette lives in [Theme]; [NewStyles] turns it into the style
// set lib/prompt renders with. Colors are ANSI 256 codes throughout
// for compatibility with the old terminals a pinentry is likely to
// meet.
//
// Depends on github.com/charmbracelet/lipgloss. No Sigil-internal
// dependencies.
package tui
