// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock provides an injectable time abstraction for testability.
//
// Production code accepts a Clock interface parameter instead of
// calling time.Now, time.After, time.NewTicker, or time.Sleep directly.
// In production, Real() provides the standard library behavior. In
// tests, Fake() provides a deterministic clock that advances only when
// Advance is called.
//
// Within Sigil the clock has two consumers: the decoy symbol stream in
// lib/derive is seeded from Now (tests pin the seed with SetNow), and
// the prompt in lib/prompt paces its decoy refresh with NewTicker
// (tests fire ticks with Advance).
//
// # Wiring Pattern
//
// Add a Clock field to structs that use time:
//
//	type Prompt struct {
//	    clock clock.Clock
//	    // ...
//	}
//
// In production:
//
//	p := &Prompt{clock: clock.Real()}
//
// In tests:
//
//	c := clock.Fake(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
//	p := &Prompt{clock: c}
//	c.WaitForTimers(1)         // wait for the ticker to register
//	c.Advance(time.Second)     // fire the tick deterministically
package clock
