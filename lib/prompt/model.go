// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sigilhq/sigil/lib/derive"
	"github.com/sigilhq/sigil/lib/entry"
	"github.com/sigilhq/sigil/lib/symbol"
	"github.com/sigilhq/sigil/lib/tui"
)

// maskGlyph is one masked input cell. One glyph per codepoint, never
// per byte — the mask must not leak encoding width.
const maskGlyph = "●"

// decoyRefreshInterval is how often the decoy row re-rolls while the
// user is typing. Input events also re-roll it, so this only matters
// during pauses; it keeps the row visibly alive without flicker.
const decoyRefreshInterval = 2 * time.Second

// decoyTickMsg drives the idle decoy re-roll.
type decoyTickMsg struct{}

// Texts carries the per-interaction strings, usually translated from
// a wire request. Zero values fall back to built-in labels.
type Texts struct {
	Title       string
	Description string
	Prompt      string
	Error       string
	OKLabel     string
	CancelLabel string
}

// Model is the bubbletea model for one secret capture. It owns an
// entry session for the lifetime of the program run; the caller
// collects the result with Confirmed and must call Close afterwards
// on every path.
type Model struct {
	session *entry.Session
	table   *symbol.Table
	count   int

	keys   KeyMap
	styles tui.Styles
	texts  Texts

	// row is the cached symbol display. Recomputed on input and on
	// the idle tick, never per frame — a pure View must not re-roll
	// the decoys.
	row derive.Sequence

	confirmed bool
	aborted   bool
	secret    []byte
}

// NewModel builds a capture model around a started session.
func NewModel(session *entry.Session, table *symbol.Table, count int, texts Texts, styles tui.Styles) *Model {
	model := &Model{
		session: session,
		table:   table,
		count:   count,
		keys:    DefaultKeyMap,
		styles:  styles,
		texts:   texts,
	}
	model.row = session.DisplaySymbols(table, count)
	return model
}

// Confirmed returns the borrowed secret view when the capture
// completed. The view is valid until Close.
func (m *Model) Confirmed() ([]byte, bool) {
	return m.secret, m.confirmed
}

// Aborted reports whether the user cancelled.
func (m *Model) Aborted() bool { return m.aborted }

// Close wipes the underlying session. Idempotent; call on every path.
func (m *Model) Close() {
	m.secret = nil
	m.session.End()
}

func decoyTick() tea.Cmd {
	return tea.Tick(decoyRefreshInterval, func(time.Time) tea.Msg {
		return decoyTickMsg{}
	})
}

func (m *Model) Init() tea.Cmd {
	return decoyTick()
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case decoyTickMsg:
		if m.confirmed || m.aborted {
			return m, nil
		}
		// Only the decoy row animates; the verify row is stable by
		// construction and must not appear to change.
		if m.session.State() == entry.Typing {
			m.row = m.session.DisplaySymbols(m.table, m.count)
		}
		return m, decoyTick()

	case tea.KeyMsg:
		if m.confirmed || m.aborted {
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Abort):
		return m.feed(entry.Abort())
	case key.Matches(msg, m.keys.Confirm):
		return m.feed(entry.Enter())
	case key.Matches(msg, m.keys.Backspace):
		return m.feed(entry.Backspace())
	case key.Matches(msg, m.keys.ClearAll):
		return m.feed(entry.ClearAll())
	}

	if msg.Type == tea.KeyRunes || msg.Type == tea.KeySpace {
		var model tea.Model = m
		var command tea.Cmd
		for _, r := range msg.Runes {
			model, command = m.feed(entry.Char(r))
			if command != nil {
				return model, command
			}
		}
		return model, command
	}

	// Unbound control keys are ignored, not typed.
	return m, nil
}

// feed routes one event through the session and updates the cached
// display.
func (m *Model) feed(event entry.Event) (tea.Model, tea.Cmd) {
	outcome, err := m.session.Handle(event)
	if err != nil {
		m.aborted = true
		return m, tea.Quit
	}

	switch outcome.Kind {
	case entry.Confirmed:
		m.confirmed = true
		m.secret = outcome.Secret
		return m, tea.Quit
	case entry.Aborted:
		m.aborted = true
		return m, tea.Quit
	}

	m.row = m.session.DisplaySymbols(m.table, m.count)
	return m, nil
}

func (m *Model) View() string {
	if m.confirmed || m.aborted {
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
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	promptText := m.texts.Prompt
	if promptText == "" {
		promptText = "Passphrase:"
	}
	mask := strings.Repeat(maskGlyph, m.session.Len())
	lines = append(lines, promptText+" "+m.styles.Mask.Render(mask))

	rowStyle := m.styles.DecoyRow
	if m.session.State() != entry.Typing {
		rowStyle = m.styles.VerifyRow
	}
	lines = append(lines, rowStyle.Render(strings.Join(m.row.Symbols, " ")))

	lines = append(lines, "", m.styles.Help.Render(m.helpLine()))

	return m.styles.Frame.Render(strings.Join(lines, "\n")) + "\n"
}

// helpLine explains the next step for the current stage.
func (m *Model) helpLine() string {
	cancel := m.texts.CancelLabel
	if cancel == "" {
		cancel = "cancel"
	}
	if m.session.State() == entry.Verifying {
		confirm := m.texts.OKLabel
		if confirm == "" {
			confirm = "submit"
		}
		return "check your symbols · enter " + confirm + " · esc " + cancel
	}
	return "enter verify · C-u clear · esc " + cancel
}
