// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sigilhq/sigil/lib/symbol"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing %s: %v", name, err)
	}
	return path
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Symbols.Count != 4 {
		t.Errorf("expected default count 4, got %d", cfg.Symbols.Count)
	}
	if cfg.Symbols.Set != SetAuto {
		t.Errorf("expected default set auto, got %q", cfg.Symbols.Set)
	}
}

func TestLoad_NoEnvUsesDefaults(t *testing.T) {
	t.Setenv("SIGIL_CONFIG", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Prompt != "Passphrase:" {
		t.Errorf("expected default prompt, got %q", cfg.Prompt)
	}
}

func TestLoad_EnvPointsAtMissingFile(t *testing.T) {
	t.Setenv("SIGIL_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing configured file")
	}
}

func TestLoadFile_OverridesDefaults(t *testing.T) {
	path := writeFile(t, "sigil.yaml", `
prompt: "PIN:"
symbols:
  count: 6
  set: text
`)

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if cfg.Prompt != "PIN:" {
		t.Errorf("expected prompt %q, got %q", "PIN:", cfg.Prompt)
	}
	if cfg.Symbols.Count != 6 {
		t.Errorf("expected count 6, got %d", cfg.Symbols.Count)
	}
	if cfg.Symbols.Set != SetText {
		t.Errorf("expected set text, got %q", cfg.Symbols.Set)
	}
}

func TestLoadFile_RejectsMalformedYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "symbols: [unclosed")
	if _, err := LoadFile(path); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestValidate_CountBounds(t *testing.T) {
	for _, count := range []int{0, -1, maxSymbolCount + 1} {
		cfg := Default()
		cfg.Symbols.Count = count
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for count %d", count)
		}
	}
}

func TestValidate_UnknownSet(t *testing.T) {
	cfg := Default()
	cfg.Symbols.Set = "emoji-plus"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown set")
	}
}

func TestValidate_CustomWithoutSource(t *testing.T) {
	cfg := Default()
	cfg.Symbols.Set = SetCustom
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for custom set without a table source")
	}
	if !strings.Contains(err.Error(), "custom") {
		t.Errorf("unexpected error text: %v", err)
	}
}

func TestValidate_ReportsAllViolations(t *testing.T) {
	cfg := Default()
	cfg.Symbols.Count = 0
	cfg.Symbols.Set = "nope"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected errors")
	}
	text := err.Error()
	if !strings.Contains(text, "count") || !strings.Contains(text, "set") {
		t.Errorf("expected all violations reported, got: %v", err)
	}
}

func TestResolveTable_Auto(t *testing.T) {
	cfg := Default()

	table, padded, err := cfg.ResolveTable(true)
	if err != nil {
		t.Fatalf("ResolveTable failed: %v", err)
	}
	if table != symbol.Default() || padded {
		t.Error("expected unpadded default table for a capable terminal")
	}

	table, padded, err = cfg.ResolveTable(false)
	if err != nil {
		t.Fatalf("ResolveTable failed: %v", err)
	}
	if table != symbol.Fallback() || !padded {
		t.Error("expected padded fallback table for an incapable terminal")
	}
}

func TestResolveTable_ForcedText_IgnoresCapability(t *testing.T) {
	cfg := Default()
	cfg.Symbols.Set = SetText

	table, padded, err := cfg.ResolveTable(true)
	if err != nil {
		t.Fatalf("ResolveTable failed: %v", err)
	}
	if table != symbol.Fallback() || !padded {
		t.Error("expected fallback table regardless of capability")
	}
}

func TestResolveTable_CustomInline(t *testing.T) {
	cfg := Default()
	cfg.Symbols.Set = SetCustom
	cfg.Symbols.Custom = []string{"ab", "cd", "ef"}

	table, padded, err := cfg.ResolveTable(true)
	if err != nil {
		t.Fatalf("ResolveTable failed: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("expected 3 symbols, got %d", table.Len())
	}
	if padded {
		t.Error("uniform-width custom table should not be padded")
	}
}

func TestResolveTable_CustomVaryingWidthIsPadded(t *testing.T) {
	cfg := Default()
	cfg.Symbols.Set = SetCustom
	cfg.Symbols.Custom = []string{"ox", "zephyr"}

	_, padded, err := cfg.ResolveTable(true)
	if err != nil {
		t.Fatalf("ResolveTable failed: %v", err)
	}
	if !padded {
		t.Error("varying-width custom table should be padded")
	}
}

func TestResolveTable_CustomEmptyEntryRejected(t *testing.T) {
	cfg := Default()
	cfg.Symbols.Set = SetCustom
	cfg.Symbols.Custom = []string{"ok", ""}

	if _, _, err := cfg.ResolveTable(true); err == nil {
		t.Fatal("expected error for empty table entry")
	}
}

func TestLoadSymbolFile_BareArray(t *testing.T) {
	path := writeFile(t, "symbols.jsonc", `
// annotated symbol list
[
  "alpha",
  "beta",  // trailing comma below is fine
  "gamma",
]
`)

	list, err := LoadSymbolFile(path)
	if err != nil {
		t.Fatalf("LoadSymbolFile failed: %v", err)
	}
	if len(list) != 3 || list[0] != "alpha" || list[2] != "gamma" {
		t.Errorf("unexpected list: %v", list)
	}
}

func TestLoadSymbolFile_ObjectForm(t *testing.T) {
	path := writeFile(t, "symbols.jsonc", `{ "symbols": ["x", "y"] }`)

	list, err := LoadSymbolFile(path)
	if err != nil {
		t.Fatalf("LoadSymbolFile failed: %v", err)
	}
	if len(list) != 2 || list[1] != "y" {
		t.Errorf("unexpected list: %v", list)
	}
}

func TestResolveTable_CustomFromFile(t *testing.T) {
	path := writeFile(t, "symbols.jsonc", `["one", "two", "three"]`)

	cfg := Default()
	cfg.Symbols.Set = SetCustom
	cfg.Symbols.CustomFile = path

	table, _, err := cfg.ResolveTable(false)
	if err != nil {
		t.Fatalf("ResolveTable failed: %v", err)
	}
	if table.Len() != 3 {
		t.Errorf("expected 3 symbols from file, got %d", table.Len())
	}
}
