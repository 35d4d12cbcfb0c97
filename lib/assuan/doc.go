// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package assuan implements the pinentry side of the Assuan protocol
// that gpg-agent uses to drive an external PIN entry program.
//
// [Server] reads commands from a reader (conventionally stdin) and
// writes responses to a writer (stdout); the actual user interaction
// is delegated to a [Prompter], so the wire layer knows nothing about
// terminals or rendering. SET commands accumulate into a [Request];
// GETPIN, CONFIRM, and MESSAGE hand the request to the prompter and
// translate its outcome into OK, D data lines, or ERR lines with
// gpg-error codes carrying the pinentry source identifier.
//
// Secret handling: the confirmed PIN crosses this layer exactly once,
// as a transfer copy that is percent-escaped onto the D line and
// zeroed immediately. Command names are logged at debug level;
// argument values and data lines never appear in logs.
//
// Depends on lib/secret for wiping. Protocol references: the Assuan
// manual's pinentry chapter and the behavior of the stock pinentry
// programs.
package assuan
