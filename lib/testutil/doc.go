// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package testutil provides shared test helpers for Sigil packages.
//
// [RequireReceive], [RequireSend], and [RequireClosed] encapsulate the
// timeout safety valve pattern (select with time.After fallback) so
// that individual tests do not need direct time.After calls. Tests of
// time-driven code run against lib/clock fakes; these helpers are the
// only sanctioned use of real wall-clock timeouts, and they exist to
// turn a hung test into a failure rather than a stuck CI job.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
//
// This package has no Sigil-internal dependencies.
package testutil
