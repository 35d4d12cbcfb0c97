// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the color palette for the prompt. All colors use
// lipgloss ANSI 256-color codes for broad terminal compatibility —
// the prompt may appear on consoles far older than the ones running
// full-screen tools.
type Theme struct {
	// Text colors.
	NormalText lipgloss.Color
	FaintText  lipgloss.Color

	// Title and description chrome.
	TitleForeground lipgloss.Color
	BorderColor     lipgloss.Color

	// Masked input row.
	MaskForeground lipgloss.Color

	// Symbol row accents. Decoy symbols render faint so the eye
	// learns that only the bright row is worth reading; the real row
	// renders in VerifyForeground once the user asks to verify.
	DecoyForeground  lipgloss.Color
	VerifyForeground lipgloss.Color

	// Error notices (wire-protocol SETERROR text, retry messages).
	ErrorForeground lipgloss.Color

	// Help line at the bottom of the prompt.
	HelpText lipgloss.Color
}

// DefaultTheme is the built-in palette.
var DefaultTheme = Theme{
	NormalText:       lipgloss.Color("252"),
	FaintText:        lipgloss.Color("243"),
	TitleForeground:  lipgloss.Color("81"),
	BorderColor:      lipgloss.Color("238"),
	MaskForeground:   lipgloss.Color("250"),
	DecoyForeground:  lipgloss.Color("243"),
	VerifyForeground: lipgloss.Color("114"),
	ErrorForeground:  lipgloss.Color("203"),
	HelpText:         lipgloss.Color("240"),
}

// Styles are the prebuilt lipgloss styles for the prompt view.
type Styles struct {
	Title       lipgloss.Style
	Description lipgloss.Style
	Mask        lipgloss.Style
	DecoyRow    lipgloss.Style
	VerifyRow   lipgloss.Style
	Error       lipgloss.Style
	Help        lipgloss.Style
	Frame       lipgloss.Style
}

// NewStyles builds the style set for a theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Title:       lipgloss.NewStyle().Bold(true).Foreground(theme.TitleForeground),
		Description: lipgloss.NewStyle().Foreground(theme.NormalText),
		Mask:        lipgloss.NewStyle().Foreground(theme.MaskForeground),
		DecoyRow:    lipgloss.NewStyle().Foreground(theme.DecoyForeground),
		VerifyRow:   lipgloss.NewStyle().Bold(true).Foreground(theme.VerifyForeground),
		Error:       lipgloss.NewStyle().Foreground(theme.ErrorForeground),
		Help:        lipgloss.NewStyle().Foreground(theme.HelpText),
		Frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.BorderColor).
			Padding(0, 1),
	}
}
