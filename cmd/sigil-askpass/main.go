// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

// sigil-askpass is a one-shot askpass program (SSH_ASKPASS,
// GIT_ASKPASS, sudo -A). It shows the symbol-confirmation capture
// dialog on the controlling terminal and writes the confirmed secret
// to stdout, followed by a newline.
//
// The prompt text is the first argument, per the askpass convention.
// With --confirm the dialog becomes a yes/no question answered by the
// exit status; with --message it is a notice to acknowledge.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/sigilhq/sigil/lib/assuan"
	"github.com/sigilhq/sigil/lib/clock"
	"github.com/sigilhq/sigil/lib/config"
	"github.com/sigilhq/sigil/lib/derive"
	"github.com/sigilhq/sigil/lib/prompt"
	"github.com/sigilhq/sigil/lib/secret"
	"github.com/sigilhq/sigil/lib/termcap"
	"github.com/sigilhq/sigil/lib/tui"
	"github.com/sigilhq/sigil/lib/version"
)

// exitCancelled is the conventional askpass exit status for "the user
// said no" — ssh and sudo treat any non-zero status as a refusal.
const exitCancelled = 1

func main() {
	status, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(status)
}

func run() (int, error) {
	var configPath string
	var ttyPath string
	var confirm bool
	var message bool
	var plain bool

	flagSet := pflag.NewFlagSet("sigil-askpass", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "path to YAML configuration (default: $SIGIL_CONFIG, else built-ins)")
	flagSet.StringVar(&ttyPath, "tty", "/dev/tty", "terminal device for the dialog")
	flagSet.BoolVar(&confirm, "confirm", false, "ask a yes/no question; answer via exit status")
	flagSet.BoolVar(&message, "message", false, "show a notice to acknowledge; no output")
	flagSet.BoolVar(&plain, "plain", false, "skip the symbol dialog and read the secret with echo off")
	flagSet.BoolP("help", "h", false, "show help")

	if len(os.Args) > 1 && os.Args[1] == "--version" {
		version.Print("sigil-askpass")
		return 0, nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return 0, nil
		}
		return 1, err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return 0, nil
	}

	promptText := strings.Join(flagSet.Args(), " ")

	cfg, err := loadConfig(configPath)
	if err != nil {
		return 1, err
	}
	if promptText == "" {
		promptText = cfg.Prompt
	}

	if plain {
		return runPlain(promptText, ttyPath)
	}

	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		// No controlling terminal: nothing interactive can run. The
		// caller invoked an askpass precisely because it has no
		// terminal of its own, so this is a hard failure.
		return 1, fmt.Errorf("opening terminal %s: %w", ttyPath, err)
	}
	defer tty.Close()

	table, padded, err := cfg.ResolveTable(termcap.Detect())
	if err != nil {
		return 1, err
	}

	terminal := &prompt.Terminal{
		Input:  tty,
		Output: tty,
		Table:  table,
		Padded: padded,
		Count:  cfg.Symbols.Count,
		Decoys: derive.NewTimeSource(clock.Real()),
		Styles: tui.NewStyles(tui.DefaultTheme),
		Logger: slog.New(slog.DiscardHandler),
	}

	request := assuan.Request{
		Description: cfg.Description,
		Prompt:      promptText,
	}

	switch {
	case message:
		request.Description = promptText
		request.Prompt = ""
		return 0, terminal.Message(request)

	case confirm:
		request.Description = promptText
		request.Prompt = ""
		err := terminal.Confirm(request, false)
		switch {
		case err == nil:
			return 0, nil
		case errorIsRefusal(err):
			return exitCancelled, nil
		default:
			return 1, err
		}

	default:
		pin, err := terminal.GetPIN(request)
		if errorIsRefusal(err) {
			return exitCancelled, nil
		}
		if err != nil {
			return 1, err
		}
		return 0, emit(pin)
	}
}

// runPlain is the degraded path for terminals that cannot host the
// dialog: echo-off line input with no symbol confirmation.
func runPlain(promptText, ttyPath string) (int, error) {
	tty, err := os.OpenFile(ttyPath, os.O_RDWR, 0)
	if err != nil {
		return 1, fmt.Errorf("opening terminal %s: %w", ttyPath, err)
	}
	defer tty.Close()

	descriptor := int(tty.Fd())
	if !term.IsTerminal(descriptor) {
		return 1, fmt.Errorf("%s is not a terminal", ttyPath)
	}

	fmt.Fprintf(tty, "%s ", promptText)
	pin, err := term.ReadPassword(descriptor)
	fmt.Fprintln(tty)
	if err != nil {
		return 1, fmt.Errorf("reading secret: %w", err)
	}
	return 0, emit(pin)
}

// emit writes the transfer copy to stdout and wipes it.
func emit(pin []byte) error {
	writer := bufio.NewWriter(os.Stdout)
	_, err := writer.Write(pin)
	secret.Zero(pin)
	if err == nil {
		err = writer.WriteByte('\n')
	}
	if err == nil {
		err = writer.Flush()
	}
	if err != nil {
		return fmt.Errorf("writing secret to stdout: %w", err)
	}
	return nil
}

func errorIsRefusal(err error) bool {
	return errors.Is(err, assuan.ErrCancelled) || errors.Is(err, assuan.ErrNotConfirmed)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `sigil-askpass — askpass with symbol confirmation.

Captures a secret on the controlling terminal and writes it to stdout.
The confirmation step shows a short row of symbols derived from the
typed secret instead of asking for a blind retype.

Usage:
  sigil-askpass [flags] [prompt text]

Flags:
%s`, flagSet.FlagUsages())
}
