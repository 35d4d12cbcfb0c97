// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package assuan

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sigilhq/sigil/lib/secret"
)

// gpg-error codes with the pinentry source identifier in the high
// byte, as gpg-agent expects them on ERR lines.
const (
	errorSourcePinentry = 5 << 24

	// ErrorCodeCancelled is GPG_ERR_CANCELED from this source.
	ErrorCodeCancelled = errorSourcePinentry | 99

	// ErrorCodeNotConfirmed is GPG_ERR_NOT_CONFIRMED.
	ErrorCodeNotConfirmed = errorSourcePinentry | 114

	// ErrorCodeUnknownCommand is GPG_ERR_ASS_UNKNOWN_CMD.
	ErrorCodeUnknownCommand = errorSourcePinentry | 275
)

// maxLineLength is the protocol's line limit, including the
// terminating newline.
const maxLineLength = 1000

// Sentinel errors a Prompter returns to describe the user's choice.
var (
	// ErrCancelled means the user aborted the interaction.
	ErrCancelled = errors.New("assuan: cancelled by user")

	// ErrNotConfirmed means the user answered no to a CONFIRM.
	ErrNotConfirmed = errors.New("assuan: not confirmed")
)

// Request carries the per-interaction texts a client configures with
// SET commands before GETPIN, CONFIRM, or MESSAGE.
type Request struct {
	// Description is the explanatory text (SETDESC).
	Description string

	// Prompt is the text before the input row (SETPROMPT).
	Prompt string

	// Title is the window or frame title (SETTITLE).
	Title string

	// Error is a one-shot notice from a previous failed attempt
	// (SETERROR); cleared after each GETPIN.
	Error string

	// OKLabel and CancelLabel override the button/help texts
	// (SETOK, SETCANCEL).
	OKLabel     string
	CancelLabel string

	// Repeat asks for re-entry confirmation (SETREPEAT). Sigil's
	// symbol verification already forces a deliberate second
	// acknowledgment, so the flag is accepted and subsumed.
	Repeat bool
}

// Prompter performs the actual user interaction for the three
// interactive commands. The wire server knows nothing about terminals
// or rendering.
//
// GetPIN returns a transfer copy of the confirmed secret; the server
// escapes it onto the D line and zeroes the copy immediately. Return
// ErrCancelled when the user aborts. Confirm returns ErrNotConfirmed
// for a "no" and ErrCancelled for an abort.
type Prompter interface {
	GetPIN(request Request) ([]byte, error)
	Confirm(request Request, oneButton bool) error
	Message(request Request) error
}

// Server speaks the pinentry side of the Assuan protocol on a
// reader/writer pair (conventionally stdin/stdout, with the UI on the
// tty). One Server handles one client connection.
type Server struct {
	reader   *bufio.Reader
	writer   *bufio.Writer
	prompter Prompter
	logger   *slog.Logger
	version  string

	request Request
	options map[string]string
}

// New builds a Server. logger may be nil for silence; command names
// are logged at debug level, argument values and data lines never.
func New(r io.Reader, w io.Writer, prompter Prompter, version string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		reader:   bufio.NewReaderSize(r, maxLineLength),
		writer:   bufio.NewWriter(w),
		prompter: prompter,
		logger:   logger,
		version:  version,
		options:  make(map[string]string),
	}
}

// Run serves the connection until BYE or EOF. The greeting is sent
// first, then commands are processed one line at a time, strictly in
// order — the protocol is synchronous.
func (s *Server) Run() error {
	if err := s.respond("OK Pleased to meet you"); err != nil {
		return err
	}

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("assuan: reading command: %w", err)
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		command, arguments, _ := strings.Cut(line, " ")
		command = strings.ToUpper(command)
		s.logger.Debug("assuan command", "command", command)

		done, err := s.dispatch(command, arguments)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

// dispatch handles one command. The returned bool means the
// connection is finished.
func (s *Server) dispatch(command, arguments string) (bool, error) {
	switch command {
	case "BYE":
		return true, s.respond("OK closing connection")

	case "RESET":
		s.request = Request{}
		return false, s.respond("OK")

	case "NOP", "END":
		return false, s.respond("OK")

	case "OPTION":
		name, value, _ := strings.Cut(arguments, "=")
		s.options[strings.TrimSpace(name)] = value
		return false, s.respond("OK")

	case "SETDESC":
		return false, s.setText(&s.request.Description, arguments)
	case "SETPROMPT":
		return false, s.setText(&s.request.Prompt, arguments)
	case "SETTITLE":
		return false, s.setText(&s.request.Title, arguments)
	case "SETERROR":
		return false, s.setText(&s.request.Error, arguments)
	case "SETOK":
		return false, s.setText(&s.request.OKLabel, arguments)
	case "SETCANCEL", "SETNOTOK":
		return false, s.setText(&s.request.CancelLabel, arguments)

	case "SETREPEAT":
		s.request.Repeat = true
		return false, s.respond("OK")

	case "SETQUALITYBAR", "SETQUALITYBAR_TT", "SETTIMEOUT", "SETKEYINFO":
		// Accepted for client compatibility; no behavior attached.
		return false, s.respond("OK")

	case "GETPIN":
		return false, s.getPIN()

	case "CONFIRM":
		oneButton := strings.Contains(arguments, "--one-button")
		return false, s.confirm(oneButton)

	case "MESSAGE":
		return false, s.message()

	case "GETINFO":
		return false, s.getInfo(arguments)

	default:
		return false, s.respondError(ErrorCodeUnknownCommand, "Unknown IPC command")
	}
}

// setText stores an unescaped SET argument and acknowledges.
func (s *Server) setText(target *string, arguments string) error {
	text, err := Unescape(arguments)
	if err != nil {
		return s.respondError(ErrorCodeUnknownCommand, "Invalid escaping")
	}
	*target = text
	return s.respond("OK")
}

// getPIN runs the interactive capture and transfers the secret on a
// D line. The transfer copy is zeroed before the OK is flushed; the
// SETERROR notice is one-shot and cleared regardless of outcome.
func (s *Server) getPIN() error {
	pin, err := s.prompter.GetPIN(s.request)
	s.request.Error = ""
	s.request.Repeat = false

	switch {
	case errors.Is(err, ErrCancelled):
		return s.respondError(ErrorCodeCancelled, "Operation cancelled")
	case err != nil:
		s.logger.Error("pin capture failed", "error", err)
		return s.respondError(ErrorCodeCancelled, "Operation cancelled")
	}

	escaped := Escape(pin)
	secret.Zero(pin)
	err = s.respond("D " + escaped)
	if err == nil {
		err = s.respond("OK")
	}
	return err
}

func (s *Server) confirm(oneButton bool) error {
	err := s.prompter.Confirm(s.request, oneButton)
	s.request.Error = ""

	switch {
	case err == nil:
		return s.respond("OK")
	case errors.Is(err, ErrNotConfirmed):
		return s.respondError(ErrorCodeNotConfirmed, "Not confirmed")
	case errors.Is(err, ErrCancelled):
		return s.respondError(ErrorCodeCancelled, "Operation cancelled")
	default:
		s.logger.Error("confirm failed", "error", err)
		return s.respondError(ErrorCodeCancelled, "Operation cancelled")
	}
}

func (s *Server) message() error {
	if err := s.prompter.Message(s.request); err != nil {
		s.logger.Error("message display failed", "error", err)
	}
	// MESSAGE always acknowledges; there is nothing to cancel.
	return s.respond("OK")
}

func (s *Server) getInfo(arguments string) error {
	var data string
	switch strings.TrimSpace(arguments) {
	case "version":
		data = s.version
	case "pid":
		data = fmt.Sprintf("%d", os.Getpid())
	case "flavor":
		data = "sigil"
	case "ttyinfo":
		data = fmt.Sprintf("%s %s %s", s.options["ttyname"], s.options["ttytype"], s.options["lc-ctype"])
	default:
		return s.respondError(ErrorCodeUnknownCommand, "Unknown GETINFO item")
	}

	if err := s.respond("D " + data); err != nil {
		return err
	}
	return s.respond("OK")
}

// respond writes one response line and flushes. The protocol is
// synchronous, so every line is flushed immediately.
func (s *Server) respond(line string) error {
	if _, err := s.writer.WriteString(line + "\n"); err != nil {
		return fmt.Errorf("assuan: writing response: %w", err)
	}
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("assuan: flushing response: %w", err)
	}
	return nil
}

func (s *Server) respondError(code int, description string) error {
	return s.respond(fmt.Sprintf("ERR %d %s <Pinentry>", code, description))
}
