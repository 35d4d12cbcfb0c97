// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package termcap

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// EmojiCapable reports whether a terminal with the given termenv
// profile and environment can plausibly render the pictographic
// symbol set. lookup resolves environment variables; pass nil for
// os.Getenv.
//
// The heuristics are deliberately conservative: a wrong "no" costs a
// slightly plainer confirmation row, a wrong "yes" costs unreadable
// tofu boxes in the one place the user must read carefully.
func EmojiCapable(profile termenv.Profile, lookup func(string) string) bool {
	if lookup == nil {
		lookup = os.Getenv
	}

	// A terminal that cannot even do ANSI color will not do emoji.
	if profile == termenv.Ascii {
		return false
	}

	// The Linux console and dumb terminals have no pictographic glyphs
	// regardless of locale.
	switch lookup("TERM") {
	case "dumb", "linux":
		return false
	}

	return utf8Locale(lookup)
}

// utf8Locale reports whether the effective locale is UTF-8, checking
// LC_ALL, LC_CTYPE, and LANG in POSIX precedence order.
func utf8Locale(lookup func(string) string) bool {
	for _, variable := range []string{"LC_ALL", "LC_CTYPE", "LANG"} {
		value := lookup(variable)
		if value == "" {
			continue
		}
		normalized := strings.ToLower(strings.ReplaceAll(value, "-", ""))
		return strings.Contains(normalized, "utf8")
	}
	return false
}

// Detect probes the current process: the termenv profile of stdout
// plus the process environment.
func Detect() bool {
	return EmojiCapable(termenv.ColorProfile(), os.Getenv)
}
