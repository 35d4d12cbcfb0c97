// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package assuan

import (
	"fmt"
	"strings"
)

// Escape percent-escapes data for a D (data) line. The protocol
// requires escaping the three bytes that would break line framing or
// escaping itself: '%', CR, and LF.
func Escape(data []byte) string {
	var builder strings.Builder
	builder.Grow(len(data))
	for _, b := range data {
		switch b {
		case '%':
			builder.WriteString("%25")
		case '\r':
			builder.WriteString("%0D")
		case '\n':
			builder.WriteString("%0A")
		default:
			builder.WriteByte(b)
		}
	}
	return builder.String()
}

// Unescape reverses percent-escaping in a received argument. Any
// two-digit hex sequence is accepted, not just the three the escape
// side produces — clients escape more aggressively. A dangling or
// malformed escape is an error.
func Unescape(text string) (string, error) {
	var builder strings.Builder
	builder.Grow(len(text))
	for index := 0; index < len(text); index++ {
		b := text[index]
		if b != '%' {
			builder.WriteByte(b)
			continue
		}
		if index+2 >= len(text) {
			return "", fmt.Errorf("assuan: dangling escape in %q", text)
		}
		high, okHigh := hexValue(text[index+1])
		low, okLow := hexValue(text[index+2])
		if !okHigh || !okLow {
			return "", fmt.Errorf("assuan: malformed escape in %q", text)
		}
		builder.WriteByte(high<<4 | low)
		index += 2
	}
	return builder.String(), nil
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	default:
		return 0, false
	}
}
