// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/sigilhq/sigil/lib/symbol"
)

// SymbolSet selects which symbol table the prompt uses.
type SymbolSet string

const (
	// SetAuto picks the built-in default table when the terminal can
	// render it, the plain-text fallback otherwise.
	SetAuto SymbolSet = "auto"
	// SetDefault forces the built-in pictographic table.
	SetDefault SymbolSet = "default"
	// SetText forces the built-in plain-text fallback table.
	SetText SymbolSet = "text"
	// SetCustom uses a caller-supplied table from Custom or CustomFile.
	SetCustom SymbolSet = "custom"
)

// Config is the prompt configuration, loaded from a single YAML file.
// Everything has a working default: a pinentry must come up with zero
// configuration.
type Config struct {
	// Prompt is the text shown before the masked input row.
	Prompt string `yaml:"prompt"`

	// Description is the explanatory line above the prompt. Callers
	// speaking the wire protocol (SETDESC) override it per request.
	Description string `yaml:"description"`

	// Symbols configures the confirmation row.
	Symbols SymbolsConfig `yaml:"symbols"`
}

// SymbolsConfig configures the derived symbol row.
type SymbolsConfig struct {
	// Count is how many symbols the confirmation row shows.
	Count int `yaml:"count"`

	// Set selects the table: auto, default, text, or custom.
	Set SymbolSet `yaml:"set"`

	// Custom is an inline symbol list for Set "custom".
	Custom []string `yaml:"custom,omitempty"`

	// CustomFile is a path to a JSONC file holding a symbol list for
	// Set "custom". Ignored when Custom is non-empty.
	CustomFile string `yaml:"custom_file,omitempty"`
}

// Default returns the zero-configuration behavior: four symbols from
// the auto-detected table.
func Default() *Config {
	return &Config{
		Prompt: "Passphrase:",
		Symbols: SymbolsConfig{
			Count: 4,
			Set:   SetAuto,
		},
	}
}

// Load loads configuration from the SIGIL_CONFIG environment variable
// if set, and returns the defaults otherwise. A set-but-unloadable
// path is an error: a misconfigured prompt must fail before any secret
// is typed, not silently fall back.
func Load() (*Config, error) {
	path := os.Getenv("SIGIL_CONFIG")
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific YAML file path and
// validates it.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %s: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// maxSymbolCount bounds the confirmation row. Beyond this the row no
// longer fits a prompt line and stops being checkable at a glance.
const maxSymbolCount = 16

// Validate checks the configuration for errors. All violations are
// reported together.
func (c *Config) Validate() error {
	var errs []error

	if c.Symbols.Count < 1 || c.Symbols.Count > maxSymbolCount {
		errs = append(errs, fmt.Errorf("symbols.count must be between 1 and %d, got %d", maxSymbolCount, c.Symbols.Count))
	}

	switch c.Symbols.Set {
	case SetAuto, SetDefault, SetText:
	case SetCustom:
		if len(c.Symbols.Custom) == 0 && c.Symbols.CustomFile == "" {
			errs = append(errs, fmt.Errorf("symbols.set is custom but neither symbols.custom nor symbols.custom_file is set"))
		}
	default:
		errs = append(errs, fmt.Errorf("symbols.set must be one of auto, default, text, custom; got %q", c.Symbols.Set))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// ResolveTable builds the active symbol table. emojiCapable comes from
// terminal probing (lib/termcap) or an explicit override. The second
// return value reports whether fixed-width padding applies: always for
// the plain-text fallback, and for custom tables whose entries vary in
// display width.
func (c *Config) ResolveTable(emojiCapable bool) (*symbol.Table, bool, error) {
	set := c.Symbols.Set
	if set == SetAuto {
		if emojiCapable {
			set = SetDefault
		} else {
			set = SetText
		}
	}

	switch set {
	case SetDefault:
		return symbol.Default(), false, nil

	case SetText:
		return symbol.Fallback(), true, nil

	case SetCustom:
		entries := c.Symbols.Custom
		if len(entries) == 0 {
			loaded, err := LoadSymbolFile(c.Symbols.CustomFile)
			if err != nil {
				return nil, false, err
			}
			entries = loaded
		}
		table, err := symbol.NewTable(entries)
		if err != nil {
			return nil, false, fmt.Errorf("config: custom symbol table: %w", err)
		}
		return table, !uniformWidth(table), nil

	default:
		return nil, false, fmt.Errorf("config: unresolvable symbol set %q", set)
	}
}

// uniformWidth reports whether every table entry already has the
// table's maximum display width.
func uniformWidth(table *symbol.Table) bool {
	for index := 0; index < table.Len(); index++ {
		if table.Pad(table.Symbol(index)) != table.Symbol(index) {
			return false
		}
	}
	return true
}

// LoadSymbolFile reads a custom symbol list from a JSONC file: JSON
// extended with // line comments, /* block comments */, and trailing
// commas, so the list can be annotated in place. The document is
// either a bare array of strings or an object with a "symbols" array.
func LoadSymbolFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading symbol file %s: %w", path, err)
	}

	stripped := jsonc.ToJSON(data)

	var list []string
	if err := json.Unmarshal(stripped, &list); err == nil {
		return list, nil
	}

	var document struct {
		Symbols []string `json:"symbols"`
	}
	if err := json.Unmarshal(stripped, &document); err != nil {
		return nil, fmt.Errorf("config: parsing symbol file %s: %w", path, err)
	}
	return document.Symbols, nil
}
