// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package derive

import (
	"encoding/binary"
	"sync"

	"github.com/zeebo/blake3"

	"github.com/sigilhq/sigil/lib/clock"
)

// Source provides the 64-bit hash stream for decoy derivation. Decoys
// must change on every call so the row shown while typing can never be
// mistaken for (or replayed into) the real one.
type Source interface {
	Uint64() uint64
}

// TimeSource derives decoy hashes by hashing the current time together
// with a call counter through BLAKE3. Seeding from the injected clock
// keeps the production behavior "fresh value every keystroke" while
// letting tests pin the time component; the counter guarantees
// distinct values even for calls within one clock reading.
type TimeSource struct {
	mu      sync.Mutex
	clock   clock.Clock
	counter uint64
}

// NewTimeSource returns a Source seeded from the given clock.
func NewTimeSource(c clock.Clock) *TimeSource {
	return &TimeSource{clock: c}
}

// Uint64 returns the next decoy hash. Safe for concurrent use.
func (s *TimeSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.counter++

	var seed [16]byte
	binary.BigEndian.PutUint64(seed[:8], uint64(s.clock.Now().UnixNano()))
	binary.BigEndian.PutUint64(seed[8:], s.counter)

	digest := blake3.Sum256(seed[:])
	return binary.BigEndian.Uint64(digest[:8])
}

// FixedSource cycles through a fixed list of values. For tests that
// need the decoy path without nondeterminism.
type FixedSource struct {
	mu     sync.Mutex
	values []uint64
	next   int
}

// NewFixedSource returns a Source that yields the given values in
// order, wrapping around at the end. Panics if values is empty.
func NewFixedSource(values ...uint64) *FixedSource {
	if len(values) == 0 {
		panic("derive: FixedSource needs at least one value")
	}
	return &FixedSource{values: values}
}

// Uint64 returns the next fixed value.
func (s *FixedSource) Uint64() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	value := s.values[s.next]
	s.next = (s.next + 1) % len(s.values)
	return value
}
