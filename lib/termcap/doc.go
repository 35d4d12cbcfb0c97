// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package termcap decides whether the attached terminal can render
// the pictographic symbol set or must fall back to plain text.
//
// [EmojiCapable] combines the termenv color profile with TERM and
// locale heuristics; [Detect] applies it to the current process. The
// result feeds config.ResolveTable, which picks the active table and
// the padding behavior. An explicit symbol set in the configuration
// bypasses detection entirely.
//
// Depends on github.com/muesli/termenv. No Sigil-internal
// dependencies.
package termcap
