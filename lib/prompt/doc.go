// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package prompt renders the interactive capture dialogs with
// bubbletea.
//
// [Model] is the secret capture view: a masked input row (one glyph
// per codepoint), the symbol row below it (animated decoys while
// typing, the stable derived row once the user asks to verify), and a
// stage-appropriate help line. [ConfirmModel] is the plain yes/no and
// notice dialog. [Terminal] wraps both into an [assuan.Prompter],
// running the programs on an explicitly supplied terminal so the wire
// protocol keeps stdin/stdout to itself.
//
// Rendering discipline: View is pure. The decoy row is re-rolled on
// input events and on an idle tick, never inside View, so repaints
// triggered by the runtime do not visibly change the display.
//
// Depends on lib/entry for the state machine, lib/tui for styling,
// and lib/assuan for the prompter contract.
package prompt
