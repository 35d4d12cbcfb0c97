// Copyright 2026 The Sigil Authors
// SPDX-License-Identifier: Apache-2.0

package assuan

import (
	"bytes"
	"strings"
	"testing"
)

// scriptedPrompter records the requests it receives and answers from
// canned results, in order.
type scriptedPrompter struct {
	pins        [][]byte
	pinErrors   []error
	confirmErrs []error

	getPINCalls  []Request
	confirmCalls []Request
	messageCalls []Request
}

func (p *scriptedPrompter) GetPIN(request Request) ([]byte, error) {
	p.getPINCalls = append(p.getPINCalls, request)
	index := len(p.getPINCalls) - 1
	var pin []byte
	var err error
	if index < len(p.pins) {
		pin = p.pins[index]
	}
	if index < len(p.pinErrors) {
		err = p.pinErrors[index]
	}
	return pin, err
}

func (p *scriptedPrompter) Confirm(request Request, oneButton bool) error {
	p.confirmCalls = append(p.confirmCalls, request)
	index := len(p.confirmCalls) - 1
	if index < len(p.confirmErrs) {
		return p.confirmErrs[index]
	}
	return nil
}

func (p *scriptedPrompter) Message(request Request) error {
	p.messageCalls = append(p.messageCalls, request)
	return nil
}

// serve runs one scripted client session and returns the response
// lines the server wrote.
func serve(t *testing.T, prompter Prompter, commands ...string) []string {
	t.Helper()
	input := strings.Join(commands, "\n") + "\n"
	var output bytes.Buffer
	server := New(strings.NewReader(input), &output, prompter, "1.0.0-test", nil)
	if err := server.Run(); err != nil {
		t.Fatalf("Run: %v", err)
	}
	return strings.Split(strings.TrimRight(output.String(), "\n"), "\n")
}

func TestServer_GreetingAndBye(t *testing.T) {
	lines := serve(t, &scriptedPrompter{}, "BYE")
	if lines[0] != "OK Pleased to meet you" {
		t.Fatalf("greeting: got %q", lines[0])
	}
	if lines[1] != "OK closing connection" {
		t.Fatalf("BYE response: got %q", lines[1])
	}
}

func TestServer_GetPIN_TransfersSecret(t *testing.T) {
	prompter := &scriptedPrompter{pins: [][]byte{[]byte("hunter2\n")}}
	lines := serve(t, prompter,
		"SETDESC Enter%20the%20passphrase",
		"SETPROMPT Passphrase:",
		"GETPIN",
		"BYE")

	// greeting, two SET OKs, then the D line and its OK.
	if lines[3] != "D hunter2%0A" {
		t.Fatalf("D line: got %q", lines[3])
	}
	if lines[4] != "OK" {
		t.Fatalf("after D: got %q", lines[4])
	}
	if len(prompter.getPINCalls) != 1 {
		t.Fatalf("GetPIN calls: got %d", len(prompter.getPINCalls))
	}
	request := prompter.getPINCalls[0]
	if request.Description != "Enter the passphrase" {
		t.Fatalf("description not unescaped: got %q", request.Description)
	}
	if request.Prompt != "Passphrase:" {
		t.Fatalf("prompt: got %q", request.Prompt)
	}
}

func TestServer_GetPIN_ZeroesTransferCopy(t *testing.T) {
	pin := []byte("sekrit")
	prompter := &scriptedPrompter{pins: [][]byte{pin}}
	serve(t, prompter, "GETPIN", "BYE")

	for _, b := range pin {
		if b != 0 {
			t.Fatal("transfer copy not zeroed after GETPIN")
		}
	}
}

func TestServer_GetPIN_Cancelled(t *testing.T) {
	prompter := &scriptedPrompter{pinErrors: []error{ErrCancelled}}
	lines := serve(t, prompter, "GETPIN", "BYE")
	if lines[1] != "ERR 83886179 Operation cancelled <Pinentry>" {
		t.Fatalf("cancel response: got %q", lines[1])
	}
}

func TestServer_SetError_IsOneShot(t *testing.T) {
	prompter := &scriptedPrompter{
		pins:      [][]byte{nil, []byte("x")},
		pinErrors: []error{ErrCancelled, nil},
	}
	serve(t, prompter,
		"SETERROR Bad%20passphrase",
		"GETPIN",
		"GETPIN",
		"BYE")

	if got := prompter.getPINCalls[0].Error; got != "Bad passphrase" {
		t.Fatalf("first attempt error text: got %q", got)
	}
	if got := prompter.getPINCalls[1].Error; got != "" {
		t.Fatalf("error text should clear after GETPIN: got %q", got)
	}
}

func TestServer_Confirm(t *testing.T) {
	prompter := &scriptedPrompter{confirmErrs: []error{nil, ErrNotConfirmed, ErrCancelled}}
	lines := serve(t, prompter, "CONFIRM", "CONFIRM", "CONFIRM --one-button", "BYE")

	if lines[1] != "OK" {
		t.Fatalf("confirmed: got %q", lines[1])
	}
	if lines[2] != "ERR 83886194 Not confirmed <Pinentry>" {
		t.Fatalf("not confirmed: got %q", lines[2])
	}
	if lines[3] != "ERR 83886179 Operation cancelled <Pinentry>" {
		t.Fatalf("cancelled: got %q", lines[3])
	}
}

func TestServer_Message_AlwaysOK(t *testing.T) {
	prompter := &scriptedPrompter{}
	lines := serve(t, prompter, "SETDESC notice", "MESSAGE", "BYE")
	if lines[2] != "OK" {
		t.Fatalf("MESSAGE: got %q", lines[2])
	}
	if len(prompter.messageCalls) != 1 {
		t.Fatalf("Message calls: got %d", len(prompter.messageCalls))
	}
}

func TestServer_UnknownCommand(t *testing.T) {
	lines := serve(t, &scriptedPrompter{}, "FROB", "BYE")
	if lines[1] != "ERR 83886355 Unknown IPC command <Pinentry>" {
		t.Fatalf("unknown command: got %q", lines[1])
	}
}

func TestServer_Reset_ClearsRequest(t *testing.T) {
	prompter := &scriptedPrompter{pins: [][]byte{[]byte("x")}}
	serve(t, prompter,
		"SETDESC something",
		"SETREPEAT",
		"RESET",
		"GETPIN",
		"BYE")

	request := prompter.getPINCalls[0]
	if request.Description != "" || request.Repeat {
		t.Fatalf("RESET did not clear request: %+v", request)
	}
}

func TestServer_GetInfo(t *testing.T) {
	lines := serve(t, &scriptedPrompter{},
		"OPTION ttyname=/dev/pts/3",
		"GETINFO version",
		"GETINFO flavor",
		"BYE")

	if lines[2] != "D 1.0.0-test" {
		t.Fatalf("version: got %q", lines[2])
	}
	if lines[4] != "D sigil" {
		t.Fatalf("flavor: got %q", lines[4])
	}
}

func TestServer_IgnoresCommentsAndBlankLines(t *testing.T) {
	lines := serve(t, &scriptedPrompter{}, "# a comment", "", "NOP", "BYE")
	if len(lines) != 3 {
		t.Fatalf("expected greeting, NOP OK, BYE OK; got %v", lines)
	}
}

func TestServer_EOFEndsSession(t *testing.T) {
	var output bytes.Buffer
	server := New(strings.NewReader("NOP\n"), &output, &scriptedPrompter{}, "v", nil)
	if err := server.Run(); err != nil {
		t.Fatalf("Run at EOF: %v", err)
	}
}
