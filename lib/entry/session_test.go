// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package entry

import (
	"errors"
	"testing"

	"github.com/sigilhq/sigil/lib/derive"
	"github.com/sigilhq/sigil/lib/symbol"
)

func beginSession(t *testing.T) *Session {
	t.Helper()
	session, err := Begin(Options{Decoys: derive.NewFixedSource(1, 2, 3, 4, 5, 6, 7, 8)})
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	t.Cleanup(session.End)
	return session
}

func handle(t *testing.T, session *Session, events ...Event) Outcome {
	t.Helper()
	var outcome Outcome
	for _, event := range events {
		var err error
		outcome, err = session.Handle(event)
		if err != nil {
			t.Fatalf("Handle(%v) failed: %v", event, err)
		}
	}
	return outcome
}

func TestBegin_RequiresDecoySource(t *testing.T) {
	if _, err := Begin(Options{}); err == nil {
		t.Fatal("expected error for missing decoy source")
	}
}

func TestSession_InitialState(t *testing.T) {
	session := beginSession(t)
	if session.State() != Typing {
		t.Errorf("expected initial state Typing, got %v", session.State())
	}
	if session.Len() != 0 {
		t.Errorf("expected empty secret, got %d runes", session.Len())
	}
}

func TestSession_TypeEnterBackspace_EndsTypingEmpty(t *testing.T) {
	session := beginSession(t)

	handle(t, session, Char('a'), Enter(), Backspace())

	if session.State() != Typing {
		t.Errorf("expected state Typing, got %v", session.State())
	}
	if session.Len() != 0 {
		t.Errorf("expected empty buffer, got %d runes", session.Len())
	}
}

func TestSession_TypeEnterEnter_Submits(t *testing.T) {
	session := beginSession(t)

	outcome := handle(t, session, Char('a'), Enter(), Enter())

	if session.State() != Submitted {
		t.Errorf("expected state Submitted, got %v", session.State())
	}
	if outcome.Kind != Confirmed {
		t.Fatalf("expected Confirmed outcome, got %v", outcome.Kind)
	}
	if string(outcome.Secret) != "a" {
		t.Errorf("expected secret %q, got %q", "a", outcome.Secret)
	}
}

func TestSession_EditDuringVerifying_RollsBackThenApplies(t *testing.T) {
	tests := []struct {
		name          string
		edit          Event
		expectedRunes int
	}{
		{"char", Char('b'), 2},
		{"backspace", Backspace(), 0},
		{"clear", ClearAll(), 0},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			session := beginSession(t)
			handle(t, session, Char('a'), Enter())
			if session.State() != Verifying {
				t.Fatalf("expected Verifying, got %v", session.State())
			}

			handle(t, session, test.edit)

			if session.State() != Typing {
				t.Errorf("expected rollback to Typing, got %v", session.State())
			}
			if session.Len() != test.expectedRunes {
				t.Errorf("expected %d runes after edit, got %d", test.expectedRunes, session.Len())
			}
		})
	}
}

func TestSession_SubmittedIsInert(t *testing.T) {
	session := beginSession(t)
	handle(t, session, Char('a'), Enter(), Enter())

	for _, event := range []Event{Char('x'), Backspace(), ClearAll(), Enter(), Abort()} {
		outcome := handle(t, session, event)
		if outcome.Kind != Continue {
			t.Errorf("event %v in Submitted: expected Continue, got %v", event, outcome.Kind)
		}
	}
	if session.State() != Submitted {
		t.Errorf("expected Submitted to be terminal, got %v", session.State())
	}
}

func TestSession_AbortWipesAndEnds(t *testing.T) {
	session := beginSession(t)
	handle(t, session, Char('s'), Char('e'), Char('c'))

	outcome := handle(t, session, Abort())
	if outcome.Kind != Aborted {
		t.Fatalf("expected Aborted, got %v", outcome.Kind)
	}

	// The buffer is gone; further events report the ended session.
	if _, err := session.Handle(Char('x')); !errors.Is(err, ErrEnded) {
		t.Errorf("expected ErrEnded after abort, got %v", err)
	}
}

func TestSession_AbortFromVerifying(t *testing.T) {
	session := beginSession(t)
	handle(t, session, Char('a'), Enter())

	outcome := handle(t, session, Abort())
	if outcome.Kind != Aborted {
		t.Fatalf("expected Aborted from Verifying, got %v", outcome.Kind)
	}
}

func TestSession_InvalidCodepointDropped(t *testing.T) {
	session := beginSession(t)

	// Control characters and invalid runes are backend artifacts.
	handle(t, session, Char(0x07), Char(0xD800), Char(0x7f), Char('a'))

	if session.Len() != 1 {
		t.Errorf("expected 1 rune after dropping invalid input, got %d", session.Len())
	}
}

func TestSession_MultiByteSecret(t *testing.T) {
	session := beginSession(t)

	outcome := handle(t, session, Char('p'), Char('ä'), Char('ß'), Enter(), Enter())
	if string(outcome.Secret) != "päß" {
		t.Errorf("expected %q, got %q", "päß", outcome.Secret)
	}
}

func TestSession_DisplayModeFollowsState(t *testing.T) {
	table := symbol.Fallback()
	session := beginSession(t)
	handle(t, session, Char('a'))

	// Typing: decoy mode draws from the source, so consecutive queries
	// differ (the fixed source cycles through distinct values).
	first := session.DisplaySymbols(table, 4)
	second := session.DisplaySymbols(table, 4)
	if first.Equal(second) {
		t.Error("expected changing decoy rows while Typing")
	}

	// Verifying: the real row is stable across queries.
	handle(t, session, Enter())
	real1 := session.DisplaySymbols(table, 4)
	real2 := session.DisplaySymbols(table, 4)
	if !real1.Equal(real2) {
		t.Error("expected stable real row while Verifying")
	}

	// And it matches an independent real derivation of the same secret.
	deriver := &derive.Deriver{}
	expected, err := deriver.Derive([]byte("a"), 4, table, derive.Real)
	if err != nil {
		t.Fatalf("Derive failed: %v", err)
	}
	if !real1.Equal(expected) {
		t.Errorf("verifying row %v does not match real derivation %v", real1.Symbols, expected.Symbols)
	}
}

func TestSession_DisplaySymbolsIsPure(t *testing.T) {
	session := beginSession(t)
	handle(t, session, Char('a'), Enter())

	before := session.State()
	session.DisplaySymbols(symbol.Default(), 4)
	if session.State() != before {
		t.Error("DisplaySymbols changed session state")
	}
	if session.Len() != 1 {
		t.Error("DisplaySymbols changed buffer content")
	}
}

func TestSession_DisplaySymbols_PlaceholderAfterEnd(t *testing.T) {
	session := beginSession(t)
	session.End()

	sequence := session.DisplaySymbols(symbol.Fallback(), 3)
	if len(sequence.Symbols) != 3 {
		t.Fatalf("expected 3 placeholder symbols, got %d", len(sequence.Symbols))
	}
	for _, entry := range sequence.Symbols {
		if entry != "?" {
			t.Errorf("expected placeholder %q, got %q", "?", entry)
		}
	}
}

func TestSession_PaddedDisplay(t *testing.T) {
	session, err := Begin(Options{Decoys: derive.NewFixedSource(9), Pad: true})
	if err != nil {
		t.Fatalf("Begin failed: %v", err)
	}
	defer session.End()

	sequence := session.DisplaySymbols(symbol.Fallback(), 3)
	if !sequence.Padded {
		t.Error("expected padded sequence for fallback display")
	}
}

func TestSession_EndIsIdempotent(t *testing.T) {
	session := beginSession(t)
	session.End()
	session.End()

	if _, err := session.Handle(Enter()); !errors.Is(err, ErrEnded) {
		t.Errorf("expected ErrEnded, got %v", err)
	}
}
