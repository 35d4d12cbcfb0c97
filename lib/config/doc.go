// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// Package config provides YAML configuration loading for the Sigil
// prompt binaries.
//
// Configuration is loaded from a single file specified by either the
// SIGIL_CONFIG environment variable (via [Load]) or a --config flag
// (via [LoadFile]). With neither, [Default] applies: a pinentry must
// come up with zero configuration. There is no file discovery and no
// environment-variable override of individual values.
//
// Configuration errors are fatal before a session begins: a malformed
// file, an invalid symbol count, or an empty custom table is surfaced
// to the caller before any secret has been typed, never during entry.
//
// Custom symbol tables may be supplied inline in the YAML or as a
// separate JSONC file ([LoadSymbolFile]) so the list can carry
// comments. [Config.ResolveTable] turns the configuration plus the
// terminal's emoji capability into the active table and the padding
// decision.
//
// Depends on gopkg.in/yaml.v3, github.com/tidwall/jsonc, and
// lib/symbol.
package config
