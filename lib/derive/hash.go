// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package derive

// FNV-1a 64-bit parameters.
const (
	fnvOffsetBasis uint64 = 14695981039346656037
	fnvPrime       uint64 = 1099511628211
)

// Hash returns the 64-bit FNV-1a hash of the secret bytes with
// wrapping arithmetic. An empty secret hashes to 0 by explicit rule,
// not by running the algorithm over zero bytes — the real-mode symbol
// row for an empty secret is therefore a fixed, documented sequence
// for a given table and count.
//
// The exact formula is load-bearing: users learn the symbol rows of
// their passphrases, so the mapping must reproduce bit for bit across
// versions.
func Hash(secret []byte) uint64 {
	if len(secret) == 0 {
		return 0
	}

	hash := fnvOffsetBasis
	for _, b := range secret {
		hash ^= uint64(b)
		hash *= fnvPrime
	}
	return hash
}
