// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package prompt

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sigilhq/sigil/lib/assuan"
	"github.com/sigilhq/sigil/lib/derive"
	"github.com/sigilhq/sigil/lib/entry"
	"github.com/sigilhq/sigil/lib/symbol"
	"github.com/sigilhq/sigil/lib/tui"
)

// Terminal runs the interactive prompts on a terminal and implements
// [assuan.Prompter]. The wire protocol runs on stdin/stdout, so the
// UI must be given the controlling terminal explicitly.
type Terminal struct {
	// Input and Output are the terminal, conventionally /dev/tty.
	Input  io.Reader
	Output io.Writer

	// Table, Padded, and Count shape the symbol display.
	Table  *symbol.Table
	Padded bool
	Count  int

	// Decoys is the randomness source for decoy derivation.
	Decoys derive.Source

	// Styles is the rendering palette. Zero value renders unstyled;
	// use tui.NewStyles for the normal look.
	Styles tui.Styles

	// Logger may be nil. Secret content and real derived symbols are
	// never logged, at any level.
	Logger *slog.Logger
}

func (t *Terminal) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return t.Logger
}

func texts(request assuan.Request) Texts {
	return Texts{
		Title:       request.Title,
		Description: request.Description,
		Prompt:      request.Prompt,
		Error:       request.Error,
		OKLabel:     request.OKLabel,
		CancelLabel: request.CancelLabel,
	}
}

// GetPIN captures a secret with two-stage symbol confirmation and
// returns a transfer copy. The caller owns the copy and is expected
// to zero it after use; everything else is wiped before returning.
func (t *Terminal) GetPIN(request assuan.Request) ([]byte, error) {
	session, err := entry.Begin(entry.Options{Decoys: t.Decoys, Pad: t.Padded})
	if err != nil {
		return nil, fmt.Errorf("prompt: starting session: %w", err)
	}

	model := NewModel(session, t.Table, t.Count, texts(request), t.Styles)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithInput(t.Input), tea.WithOutput(t.Output))
	final, err := program.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt: running capture ui: %w", err)
	}

	finished, ok := final.(*Model)
	if !ok {
		return nil, fmt.Errorf("prompt: unexpected final model %T", final)
	}

	if view, confirmed := finished.Confirmed(); confirmed {
		t.logger().Debug("capture confirmed", "codepoints", session.Len())
		return bytes.Clone(view), nil
	}

	t.logger().Debug("capture aborted")
	return nil, assuan.ErrCancelled
}

// Confirm shows a yes/no dialog (acknowledge-only when oneButton).
func (t *Terminal) Confirm(request assuan.Request, oneButton bool) error {
	model := NewConfirmModel(texts(request), t.Styles, oneButton)

	program := tea.NewProgram(model, tea.WithInput(t.Input), tea.WithOutput(t.Output))
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("prompt: running confirm ui: %w", err)
	}

	finished, ok := final.(*ConfirmModel)
	if !ok {
		return fmt.Errorf("prompt: unexpected final model %T", final)
	}

	answered, answer, cancelled := finished.Result()
	switch {
	case cancelled:
		return assuan.ErrCancelled
	case answered && !answer:
		return assuan.ErrNotConfirmed
	case answered:
		return nil
	default:
		return assuan.ErrCancelled
	}
}

// Message shows a notice the user can only acknowledge.
func (t *Terminal) Message(request assuan.Request) error {
	err := t.Confirm(request, true)
	if errors.Is(err, assuan.ErrCancelled) || errors.Is(err, assuan.ErrNotConfirmed) {
		// Dismissing a notice is not a failure.
		return nil
	}
	return err
}
