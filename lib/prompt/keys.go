// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the capture prompt. The set is
// deliberately small: the prompt is a modal dialog, not a full
// application, and every printable key is secret input.
type KeyMap struct {
	// Confirm advances the two-stage confirmation: the first press
	// reveals the derived symbols, the second submits.
	Confirm key.Binding

	// Abort cancels the prompt without releasing the secret.
	Abort key.Binding

	// Backspace deletes the last codepoint.
	Backspace key.Binding

	// ClearAll empties the input.
	ClearAll key.Binding

	// Yes and No answer a confirmation dialog.
	Yes key.Binding
	No  key.Binding
}

// DefaultKeyMap is the built-in binding set.
var DefaultKeyMap = KeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "confirm"),
	),
	Abort: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc", "cancel"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace", "ctrl+h"),
		key.WithHelp("⌫", "delete"),
	),
	ClearAll: key.NewBinding(
		key.WithKeys("ctrl+u"),
		key.WithHelp("C-u", "clear"),
	),
	Yes: key.NewBinding(
		key.WithKeys("y", "Y", "enter"),
		key.WithHelp("y", "yes"),
	),
	No: key.NewBinding(
		key.WithKeys("n", "N", "esc", "ctrl+c"),
		key.WithHelp("n", "no"),
	),
}
