// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package derive turns secret bytes into short, human-checkable symbol
// rows without ever revealing the secret itself.
//
// The real row is deterministic: [Hash] computes 64-bit FNV-1a over
// the secret (empty secret hashes to 0 by rule), [Primes] generates
// one distinct prime per display position starting at table length +
// 1, and position i shows table[(hash mod prime_i) mod len]. Varying
// only the modulus prime across positions spreads the selections even
// though a single hash feeds them all. The decoy row replaces the
// secret hash with a fresh value from an injectable [Source] on every
// call, so the symbols shown while typing carry no information about
// the secret beyond its length.
//
// [Deriver.Derive] returns a [Sequence] of exactly the requested
// count. Sequences are ephemeral — recomputed on every render, never
// cached. When Pad is set (plain-text fallback tables), the symbols
// are freshly allocated uniform-width strings; otherwise they are
// direct references into the table.
//
// Depends on github.com/zeebo/blake3 for the time-seeded decoy stream
// and on lib/clock and lib/symbol.
package derive
