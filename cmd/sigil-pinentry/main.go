// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// sigil-pinentry is a pinentry replacement for gpg-agent. It speaks
// the Assuan protocol on stdin/stdout and runs the capture dialog on
// the controlling terminal, showing derived confirmation symbols
// instead of the usual blind retype: decoy symbols animate while the
// passphrase is edited, the real derived row appears on the first
// enter, and a second enter submits.
//
// Configure it in gpg-agent.conf:
//
//	pinentry-program /usr/local/bin/sigil-pinentry
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/pflag"

	"github.com/sigilhq/sigil/lib/assuan"
	"github.com/sigilhq/sigil/lib/clock"
	"github.com/sigilhq/sigil/lib/config"
	"github.com/sigilhq/sigil/lib/derive"
	"github.com/sigilhq/sigil/lib/prompt"
	"github.com/sigilhq/sigil/lib/termcap"
	"github.com/sigilhq/sigil/lib/tui"
	"github.com/sigilhq/sigil/lib/version"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var configPath string
	var ttyPath string
	var logPath string
	var debug bool

	flagSet := pflag.NewFlagSet("sigil-pinentry", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML configuration (default: $SIGIL_CONFIG, else built-ins)")
	flagSet.StringVar(&ttyPath, "tty", "/dev/tty", "terminal device for the capture dialog")
	flagSet.StringVar(&logPath, "log-output", "", "write log records to this file (stdin/stdout carry the protocol)")
	flagSet.BoolVar(&debug, "debug", false, "log at debug level")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("sigil-pinentry")
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}

	logger, closeLog, err := newLogger(logPath, debug)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	table, padded, err := cfg.ResolveTable(termcap.Detect())
	if err != nil {
		return err
	}

	// The protocol owns stdin/stdout, so the dialog gets the terminal
	// directly. Opening it up front fails fast when there is no tty
	// at all, before gpg-agent has committed to this pinentry.
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("opening terminal %s: %w", ttyPath, err)
	}
	defer tty.Close()

	prompter := &prompt.Terminal{
		Input:  tty,
		Output: tty,
		Table:  table,
		Padded: padded,
		Count:  cfg.Symbols.Count,
		Decoys: derive.NewTimeSource(clock.Real()),
		Styles: tui.NewStyles(tui.DefaultTheme),
		Logger: logger,
	}

	server := assuan.New(os.Stdin, os.Stdout, prompter, version.Version, logger)
	return server.Run()
}

// loadConfig prefers the --config flag over the SIGIL_CONFIG
// environment variable.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// newLogger builds the process logger. Stdout carries the protocol
// and stderr is often swallowed by gpg-agent, so file logging is the
// useful mode; without --log-output records are discarded.
func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.DiscardHandler), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: level}))
	return logger, func() { file.Close() }, nil
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `sigil-pinentry — pinentry with symbol confirmation for gpg-agent.

Speaks the Assuan pinentry protocol on stdin/stdout and shows the
capture dialog on the controlling terminal. Instead of blind retyping,
the passphrase is confirmed by checking a short row of symbols derived
from what was typed.

Usage:
  sigil-pinentry [flags]

Flags:
%s`, flagSet.FlagUsages())
}
