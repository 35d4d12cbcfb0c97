// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package entry implements the two-stage confirmation state machine
// that governs one prompt session.
//
// A [Session] moves Typing → Verifying → Submitted. The first Enter
// asks to see the real derived symbols; the second confirms them and
// releases the secret to the caller exactly once. Any edit while
// Verifying rolls back to Typing before it applies, so the user must
// re-confirm after every change. Abort ends the session from any
// non-terminal state with the buffer already wiped; Submitted is
// terminal and inert.
//
// The session exclusively owns its secure buffer (lib/secret) and is
// the sole mutator: one event source drives [Session.Handle]
// synchronously, so no locking beyond the buffer's own is needed.
// [Session.DisplaySymbols] is the only place the display mode is
// decided — decoys while Typing, real symbols once the user has
// explicitly asked to verify — and substitutes a placeholder row when
// derivation fails rather than aborting. [Session.End] always wipes,
// on every exit path.
//
// Depends on lib/secret, lib/derive, and lib/symbol.
package entry
