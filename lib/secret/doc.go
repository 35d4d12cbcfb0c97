// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package secret provides a memory-safe growable buffer for a secret
// while it is being typed.
//
// [Buffer] allocates memory outside the Go heap via mmap(MAP_ANONYMOUS),
// locks it into physical RAM via mlock (preventing swap), and marks it
// excluded from core dumps via madvise(MADV_DONTDUMP). Every operation
// that removes content — [Buffer.DeleteLastRune], [Buffer.Reset],
// [Buffer.Close], and the grow path inside [Buffer.Append] — zeroes
// the bytes it abandons before releasing them. Because the memory
// lives outside the Go heap, the garbage collector cannot copy or
// relocate it, so no stale copy of the secret survives a grow.
//
// Access is via [Buffer.Bytes], a borrowed view into the locked region
// valid only until the next mutating call. There is deliberately no
// String method: converting the secret to an immutable heap string
// would put a copy beyond the wipe guarantees. Callers that must hand
// the bytes to an I/O boundary copy them explicitly and pass the copy
// through [Zero] afterwards.
//
// Depends on golang.org/x/sys/unix. No Sigil-internal dependencies.
// Owned exclusively by the entry session; see lib/entry.
package secret
