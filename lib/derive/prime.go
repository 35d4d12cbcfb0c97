// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package derive

import "fmt"

// smallPrimes is the pre-filter used before trial division. A
// candidate equal to one of these is prime; a candidate divisible by
// one of them is not.
var smallPrimes = [...]uint64{2, 3, 5, 7, 11, 13, 17, 19, 23}

// maxScanSteps bounds the linear prime scan. Prime gaps below 2^64
// are far smaller than this; the bound exists so a logic error
// degrades into the placeholder display instead of a spin.
const maxScanSteps = 1 << 16

// isPrime reports whether candidate is prime, using the small-prime
// pre-filter followed by trial division by odd divisors up to the
// integer square root.
func isPrime(candidate uint64) bool {
	if candidate < 2 {
		return false
	}
	for _, prime := range smallPrimes {
		if candidate == prime {
			return true
		}
		if candidate%prime == 0 {
			return false
		}
	}
	for divisor := uint64(29); divisor*divisor <= candidate; divisor += 2 {
		if candidate%divisor == 0 {
			return false
		}
	}
	return true
}

// Primes returns count distinct ascending primes, each >= floor,
// found by linear scan. The value 2 is handled specially; after the
// first candidate is forced odd the scan advances by 2.
func Primes(count int, floor uint64) ([]uint64, error) {
	primes := make([]uint64, 0, count)

	candidate := floor
	if candidate < 2 {
		candidate = 2
	}
	if candidate == 2 {
		if count > 0 {
			primes = append(primes, 2)
		}
		candidate = 3
	} else if candidate%2 == 0 {
		candidate++
	}

	steps := 0
	for len(primes) < count {
		if steps++; steps > maxScanSteps {
			return nil, fmt.Errorf("derive: prime scan exhausted after %d steps (floor %d, want %d)", maxScanSteps, floor, count)
		}
		if isPrime(candidate) {
			primes = append(primes, candidate)
		}
		candidate += 2
	}
	return primes, nil
}
