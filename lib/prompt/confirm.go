// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sigilhq/sigil/lib/tui"
)

// ConfirmModel is a yes/no (or acknowledge-only) dialog. It carries
// no secret and no entry session.
type ConfirmModel struct {
	keys   KeyMap
	styles tui.Styles
	texts  Texts

	// oneButton suppresses the "no" answer: the dialog can only be
	// acknowledged or cancelled, matching MESSAGE and one-button
	// CONFIRM semantics.
	oneButton bool

	answered  bool
	answer    bool
	cancelled bool
}

// NewConfirmModel builds a confirmation dialog.
func NewConfirmModel(texts Texts, styles tui.Styles, oneButton bool) *ConfirmModel {
	return &ConfirmModel{
		keys:      DefaultKeyMap,
		styles:    styles,
		texts:     texts,
		oneButton: oneButton,
	}
}

// Result reports the user's choice: answered+answer for yes/no,
// cancelled for an abort.
func (m *ConfirmModel) Result() (answered, answer, cancelled bool) {
	return m.answered, m.answer, m.cancelled
}

func (m *ConfirmModel) Init() tea.Cmd { return nil }

func (m *ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.answered || m.cancelled {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Yes):
		m.answered = true
		m.answer = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.No):
		if m.oneButton {
			m.cancelled = true
		} else if keyMsg.Type == tea.KeyEsc || keyMsg.Type == tea.KeyCtrlC {
			m.cancelled = true
		} else {
			m.answered = true
		}
		return m, tea.Quit
	}
	return m, nil
}

func (m *ConfirmModel) View() string {
	if m.answered || m.cancelled {
		return ""
	}

	var lines []string
	if m.texts.Title != "" {
		lines = append(lines, m.styles.Title.Render(m.texts.Title))
	}
	if m.texts.Description != "" {
		lines = append(lines, m.styles.Description.Render(m.texts.Description))
	}
	if m.texts.Error != "" {
		lines = append(lines, m.styles.Error.Render(m.texts.Error))
	}
	lines = append(lines, "", m.styles.Help.Render(m.helpLine()))

	return m.styles.Frame.Render(strings.Join(lines, "\n")) + "\n"
}

func (m *ConfirmModel) helpLine() string {
	ok := m.texts.OKLabel
	if ok == "" {
		ok = "OK"
	}
	if m.oneButton {
		return "enter " + ok
	}
	cancel := m.texts.CancelLabel
	if cancel == "" {
		cancel = "cancel"
	}
	return "y/enter " + ok + " · n " + cancel + " · esc abort"
}
