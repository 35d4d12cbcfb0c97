// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package entry

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/sigilhq/sigil/lib/derive"
	"github.com/sigilhq/sigil/lib/secret"
	"github.com/sigilhq/sigil/lib/symbol"
)

// State is the authoritative entry state for one prompt session.
type State int

const (
	// Typing is the initial state: the user is editing the secret and
	// the display shows decoy symbols.
	Typing State = iota

	// Verifying is entered by the first Enter: the display shows the
	// real derived symbols so the user can check them. Any edit rolls
	// back to Typing — the confirmation must be re-requested after a
	// change.
	Verifying

	// Submitted is terminal: the secret has been confirmed and becomes
	// readable by the caller exactly once. No event mutates the
	// session afterwards.
	Submitted
)

func (s State) String() string {
	switch s {
	case Typing:
		return "typing"
	case Verifying:
		return "verifying"
	case Submitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// EventKind identifies one input event from the backend.
type EventKind int

const (
	// EventChar appends one codepoint to the secret.
	EventChar EventKind = iota
	// EventBackspace deletes the last codepoint.
	EventBackspace
	// EventClearAll empties the secret.
	EventClearAll
	// EventEnter advances Typing to Verifying, Verifying to Submitted.
	EventEnter
	// EventAbort ends the session without releasing the secret.
	EventAbort
)

// Event is a single decoded input event. The backend (terminal or
// display protocol) decodes raw input into these; the session never
// sees escape sequences or key codes.
type Event struct {
	Kind EventKind

	// Rune carries the codepoint for EventChar; unused otherwise.
	Rune rune
}

// Char, Backspace, ClearAll, Enter, and Abort build events.
func Char(r rune) Event { return Event{Kind: EventChar, Rune: r} }
func Backspace() Event  { return Event{Kind: EventBackspace} }
func ClearAll() Event   { return Event{Kind: EventClearAll} }
func Enter() Event      { return Event{Kind: EventEnter} }
func Abort() Event      { return Event{Kind: EventAbort} }

// OutcomeKind classifies the result of handling one event.
type OutcomeKind int

const (
	// Continue means the session goes on; feed the next event.
	Continue OutcomeKind = iota
	// Confirmed means the user completed the two-stage confirmation.
	// The secret view in the outcome is valid until End.
	Confirmed
	// Aborted means the session ended without releasing the secret.
	// The buffer has already been wiped.
	Aborted
)

// Outcome is the result of one Handle call.
type Outcome struct {
	Kind OutcomeKind

	// Secret is the borrowed view of the finished secret, set only
	// when Kind is Confirmed. It points into wiped-on-End memory:
	// read it, hand it to the caller, never retain it past End.
	Secret []byte
}

// ErrEnded is returned by Handle after End has been called.
var ErrEnded = errors.New("entry: session has ended")

// placeholder is the masking fallback shown when a symbol row cannot
// be derived. The session is never aborted merely because visual
// feedback failed.
const placeholder = "?"

// Session owns the secure buffer and entry state for one prompt
// interaction. It is driven by exactly one event source and is not
// safe for concurrent use.
type Session struct {
	buffer   *secret.Buffer
	deriver  *derive.Deriver
	state    State
	released bool
	ended    bool
}

// Options configures a session.
type Options struct {
	// Decoys is the randomness source for decoy derivation. Required.
	Decoys derive.Source

	// Pad passes display symbols through the table's fixed-width
	// padding. Set when the plain-text fallback table is active.
	Pad bool
}

// Begin starts a prompt session. Configuration problems (no decoy
// source) and buffer allocation failures surface here, before any
// secret has been typed.
func Begin(options Options) (*Session, error) {
	if options.Decoys == nil {
		return nil, fmt.Errorf("entry: decoy source is required")
	}

	buffer, err := secret.New()
	if err != nil {
		return nil, fmt.Errorf("entry: allocating secret buffer: %w", err)
	}

	return &Session{
		buffer:  buffer,
		deriver: &derive.Deriver{Source: options.Decoys, Pad: options.Pad},
	}, nil
}

// State returns the current entry state.
func (s *Session) State() State { return s.state }

// Len returns the secret length in codepoints, for sizing the masked
// display row.
func (s *Session) Len() int {
	if s.ended {
		return 0
	}
	return s.buffer.RuneCount()
}

// Handle feeds one input event through the state machine and applies
// its edit to the secure buffer. Invalid codepoints are dropped and
// the session continues. Returns ErrEnded after End.
func (s *Session) Handle(event Event) (Outcome, error) {
	if s.ended {
		return Outcome{}, ErrEnded
	}

	// Submitted is terminal: every further event is a no-op for this
	// machine; the surrounding application is expected to tear the
	// session down.
	if s.state == Submitted {
		return Outcome{Kind: Continue}, nil
	}

	switch event.Kind {
	case EventAbort:
		s.wipe()
		return Outcome{Kind: Aborted}, nil

	case EventEnter:
		if s.state == Typing {
			s.state = Verifying
			return Outcome{Kind: Continue}, nil
		}
		// Verifying: the second acknowledgment completes the protocol.
		s.state = Submitted
		s.released = true
		return Outcome{Kind: Confirmed, Secret: s.buffer.Bytes()}, nil

	case EventChar:
		s.rollbackOnEdit()
		if !validCodepoint(event.Rune) {
			// Malformed input from the backend: drop this one event.
			return Outcome{Kind: Continue}, nil
		}
		var encoded [utf8.UTFMax]byte
		size := utf8.EncodeRune(encoded[:], event.Rune)
		err := s.buffer.Append(encoded[:size])
		secret.Zero(encoded[:size])
		if err != nil {
			return Outcome{Kind: Continue}, err
		}
		return Outcome{Kind: Continue}, nil

	case EventBackspace:
		s.rollbackOnEdit()
		s.buffer.DeleteLastRune()
		return Outcome{Kind: Continue}, nil

	case EventClearAll:
		s.rollbackOnEdit()
		s.buffer.Reset()
		return Outcome{Kind: Continue}, nil

	default:
		return Outcome{Kind: Continue}, fmt.Errorf("entry: unknown event kind %d", event.Kind)
	}
}

// rollbackOnEdit enforces the central invariant: any edit during
// Verifying invalidates the confirmation and returns to Typing before
// the edit applies.
func (s *Session) rollbackOnEdit() {
	if s.state == Verifying {
		s.state = Typing
	}
}

// validCodepoint reports whether a rune may enter the secret. Control
// characters and invalid encodings are backend decoding artifacts,
// never intentional secret content.
func validCodepoint(r rune) bool {
	if !utf8.ValidRune(r) || r == utf8.RuneError {
		return false
	}
	if r < 0x20 || r == 0x7f {
		return false
	}
	return true
}

// DisplaySymbols derives the current symbol row: decoys while Typing,
// the real secret-derived row in Verifying and Submitted. This is a
// pure query — it never changes state — and is recomputed on every
// call because the secret and the active mode may have changed. If
// derivation fails, a placeholder row of the requested count is
// returned instead; visual feedback failure never aborts a session.
func (s *Session) DisplaySymbols(table *symbol.Table, count int) derive.Sequence {
	if s.ended {
		return s.placeholderRow(table, count)
	}

	mode := derive.Real
	if s.state == Typing {
		mode = derive.Decoy
	}

	sequence, err := s.deriver.Derive(s.buffer.Bytes(), count, table, mode)
	if err != nil {
		return s.placeholderRow(table, count)
	}
	return sequence
}

// placeholderRow builds the masking fallback display.
func (s *Session) placeholderRow(table *symbol.Table, count int) derive.Sequence {
	entry := placeholder
	if s.deriver.Pad {
		entry = table.Pad(entry)
	}
	symbols := make([]string, count)
	for index := range symbols {
		symbols[index] = entry
	}
	return derive.Sequence{Symbols: symbols, Padded: s.deriver.Pad}
}

// End wipes and releases the secure buffer. Always callable, on every
// exit path — success, cancellation, or error — and idempotent.
func (s *Session) End() {
	s.wipe()
}

func (s *Session) wipe() {
	if s.ended {
		return
	}
	s.ended = true
	s.buffer.Close()
}
