// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package secret

import (
	"fmt"
	"sync"
	"unicode/utf8"

	"golang.org/x/sys/unix"
)

// minimumCapacity is the initial allocation for an empty buffer. The
// kernel rounds mmap lengths up to a page anyway, so anything below
// one page costs the same; 256 bytes covers nearly every passphrase
// without a grow.
const minimumCapacity = 256

// Buffer holds a secret being typed, in memory that is locked against
// swapping, excluded from core dumps, and zeroed whenever content is
// removed. The backing memory is allocated via mmap outside the Go
// heap, so the garbage collector never copies or relocates it.
//
// A Buffer must not be copied after creation. Use Close to release the
// memory when the secret is no longer needed. After Close, any access
// to the buffer's contents will panic. Close is idempotent.
type Buffer struct {
	mu     sync.Mutex
	data   []byte
	length int
	closed bool
}

// New allocates an empty secret buffer. The backing region is:
//   - Locked into physical RAM (mlock), preventing swap
//   - Excluded from core dumps (MADV_DONTDUMP)
//   - Outside the Go heap, invisible to the garbage collector
//
// The caller must call Close when the secret is no longer needed.
func New() (*Buffer, error) {
	data, err := mapRegion(minimumCapacity)
	if err != nil {
		return nil, err
	}
	return &Buffer{data: data}, nil
}

// mapRegion allocates a locked, dump-excluded anonymous mapping of the
// given size.
func mapRegion(size int) ([]byte, error) {
	data, err := unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_PRIVATE|unix.MAP_ANONYMOUS)
	if err != nil {
		return nil, fmt.Errorf("secret: mmap failed: %w", err)
	}

	if err := unix.Mlock(data); err != nil {
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: mlock failed: %w", err)
	}

	if err := unix.Madvise(data, unix.MADV_DONTDUMP); err != nil {
		// MADV_DONTDUMP may not be supported on all kernels.
		unix.Munlock(data)
		unix.Munmap(data)
		return nil, fmt.Errorf("secret: madvise(MADV_DONTDUMP) failed: %w", err)
	}

	return data, nil
}

// unmapRegion zeroes a mapping and releases it. The wipe happens
// before munlock so the bytes never exist in unlockable memory.
func unmapRegion(data []byte) error {
	Zero(data)

	var firstError error
	if err := unix.Munlock(data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munlock failed: %w", err)
	}
	if err := unix.Munmap(data); err != nil && firstError == nil {
		firstError = fmt.Errorf("secret: munmap failed: %w", err)
	}
	return firstError
}

// Zero overwrites every byte of the slice. Used on transfer copies and
// scratch slices that briefly held secret material.
func Zero(data []byte) {
	for index := range data {
		data[index] = 0
	}
}

// Append copies source onto the end of the buffer, growing the backing
// region as needed. On allocation failure the existing content is left
// untouched and the error is returned. The source slice is not zeroed;
// callers that own a transient copy should pass it through Zero after
// appending.
func (b *Buffer) Append(source []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: append to closed buffer")
	}
	if len(source) == 0 {
		return nil
	}

	needed := b.length + len(source)
	if needed > len(b.data) {
		if err := b.growLocked(needed); err != nil {
			return err
		}
	}

	copy(b.data[b.length:], source)
	b.length = needed
	return nil
}

// growLocked replaces the backing region with a larger one. The old
// region is wiped before it is unmapped, so the secret never survives
// in an abandoned mapping. Must be called with b.mu held.
func (b *Buffer) growLocked(needed int) error {
	capacity := len(b.data) * 2
	for capacity < needed {
		capacity *= 2
	}

	data, err := mapRegion(capacity)
	if err != nil {
		return err
	}

	copy(data, b.data[:b.length])
	if err := unmapRegion(b.data); err != nil {
		// The new region already holds the secret; the old one has
		// been zeroed even if unmapping failed.
		b.data = data
		return err
	}
	b.data = data
	return nil
}

// DeleteLastRune removes the last complete UTF-8 character from the
// buffer and zeroes its bytes. A trailing byte that does not form a
// valid encoding is removed on its own, so repeated deletion always
// reaches empty. No-op on an empty buffer.
func (b *Buffer) DeleteLastRune() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: delete from closed buffer")
	}
	if b.length == 0 {
		return
	}

	_, size := utf8.DecodeLastRune(b.data[:b.length])
	if size == 0 {
		size = 1
	}
	Zero(b.data[b.length-size : b.length])
	b.length -= size
}

// Reset logically empties the buffer, zeroing all previously used
// bytes. The backing capacity is retained for reuse within the same
// session.
func (b *Buffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: reset of closed buffer")
	}
	Zero(b.data[:b.length])
	b.length = 0
}

// Bytes returns the current content. The returned slice points
// directly into the locked region — it is valid only until the next
// mutating call and must never be retained or logged. Panics if the
// buffer has been closed.
func (b *Buffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return b.data[:b.length]
}

// Len returns the number of bytes currently stored.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.length
}

// RuneCount returns the number of complete UTF-8 characters currently
// stored. Display layers size the masked row from this, never from the
// raw bytes.
func (b *Buffer) RuneCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		panic("secret: read from closed buffer")
	}
	return utf8.RuneCount(b.data[:b.length])
}

// Close zeroes the buffer contents (used bytes and spare capacity),
// unlocks and unmaps the memory. After Close, any access to the
// buffer's contents will panic. Close is idempotent.
func (b *Buffer) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	err := unmapRegion(b.data)
	b.data = nil
	b.length = 0
	return err
}
