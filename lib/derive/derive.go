// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package derive

import (
	"fmt"

	"github.com/sigilhq/sigil/lib/symbol"
)

// Mode selects which hash feeds the symbol selection.
type Mode int

const (
	// Real derives deterministically from the secret bytes. Identical
	// secrets always produce the identical sequence for a given table
	// and count.
	Real Mode = iota

	// Decoy draws a fresh hash from the randomness source on every
	// call. Decoys are computed independently of the secret's content
	// so nothing shown while typing can be used to infer it.
	Decoy
)

// Sequence is one derived symbol row. It is ephemeral: recomputed on
// every display request and never cached, because the secret and the
// active mode may have changed since the last render.
type Sequence struct {
	// Symbols in display order, exactly the requested count.
	Symbols []string

	// Padded is true when the symbols were passed through Table.Pad
	// and are therefore freshly allocated uniform-width strings rather
	// than references into the table.
	Padded bool
}

// Deriver maps secret bytes to symbol rows. The zero value derives
// real sequences; Source must be set before requesting decoys.
type Deriver struct {
	// Source provides the decoy hash stream. Production wires
	// NewTimeSource; tests wire a FixedSource.
	Source Source

	// Pad passes every derived symbol through the table's Pad
	// transform for fixed-width display contexts (the plain-text
	// fallback table). When false, symbols are returned as direct
	// references into the table.
	Pad bool
}

// Indices computes the per-position table indices for a hash: count
// distinct ascending primes >= tableLen+1 are generated, and position
// i selects (hash mod prime_i) mod tableLen. Reusing one hash across
// positions with only the modulus prime varying spreads selections
// even when the hash is small; this is a visual-diversity choice, not
// a cryptographic one, and the exact formula is load-bearing.
func Indices(hash uint64, count, tableLen int) ([]int, error) {
	if count < 0 {
		return nil, fmt.Errorf("derive: negative count %d", count)
	}
	if tableLen < 1 {
		return nil, fmt.Errorf("derive: table length %d", tableLen)
	}

	primes, err := Primes(count, uint64(tableLen)+1)
	if err != nil {
		return nil, err
	}

	indices := make([]int, count)
	for position, prime := range primes {
		indices[position] = int((hash % prime) % uint64(tableLen))
	}
	return indices, nil
}

// Derive produces a symbol row of exactly count symbols for the given
// secret, table, and mode. In Real mode the row is a pure function of
// the secret bytes; in Decoy mode the row changes on every call. An
// error from the prime scan is returned for the caller to recover
// from with a placeholder display — the session itself is never
// aborted over a failed render.
func (d *Deriver) Derive(secret []byte, count int, table *symbol.Table, mode Mode) (Sequence, error) {
	var hash uint64
	switch mode {
	case Real:
		hash = Hash(secret)
	case Decoy:
		if d.Source == nil {
			return Sequence{}, fmt.Errorf("derive: no decoy source configured")
		}
		hash = d.Source.Uint64()
	default:
		return Sequence{}, fmt.Errorf("derive: unknown mode %d", mode)
	}

	indices, err := Indices(hash, count, table.Len())
	if err != nil {
		return Sequence{}, err
	}

	symbols := make([]string, count)
	for position, index := range indices {
		if d.Pad {
			symbols[position] = table.Pad(table.Symbol(index))
		} else {
			symbols[position] = table.Symbol(index)
		}
	}
	return Sequence{Symbols: symbols, Padded: d.Pad}, nil
}

// Equal reports whether two sequences display identically.
func (s Sequence) Equal(other Sequence) bool {
	if len(s.Symbols) != len(other.Symbols) {
		return false
	}
	for index := range s.Symbols {
		if s.Symbols[index] != other.Symbols[index] {
			return false
		}
	}
	return true
}
