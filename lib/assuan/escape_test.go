// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package assuan

import "testing"

func TestEscape_ReservedBytes(t *testing.T) {
	got := Escape([]byte("a%b\rc\nd"))
	want := "a%25b%0Dc%0Ad"
	if got != want {
		t.Fatalf("Escape: got %q, want %q", got, want)
	}
}

func TestEscape_PassesOtherBytesThrough(t *testing.T) {
	input := []byte("pässwörd 😀")
	if got := Escape(input); got != string(input) {
		t.Fatalf("Escape altered unreserved bytes: got %q", got)
	}
}

func TestUnescape_RoundTrip(t *testing.T) {
	inputs := []string{"", "plain", "100%", "line\r\nbreak", "%%%", "tab\there"}
	for _, input := range inputs {
		got, err := Unescape(Escape([]byte(input)))
		if err != nil {
			t.Fatalf("Unescape(%q): %v", input, err)
		}
		if got != input {
			t.Fatalf("round trip of %q: got %q", input, got)
		}
	}
}

func TestUnescape_AcceptsArbitraryHex(t *testing.T) {
	// Clients may escape any byte, not just the three Escape produces.
	got, err := Unescape("%41%62%63%20%2f")
	if err != nil {
		t.Fatalf("Unescape: %v", err)
	}
	if got != "Abc /" {
		t.Fatalf("got %q, want %q", got, "Abc /")
	}
}

func TestUnescape_MalformedEscapes(t *testing.T) {
	for _, input := range []string{"%", "%2", "trailing%", "%zz", "%2x"} {
		if _, err := Unescape(input); err == nil {
			t.Fatalf("Unescape(%q): expected error", input)
		}
	}
}
