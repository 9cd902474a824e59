package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// prompter reads answers from the command's input. Secrets are read without
// echo when the input is a terminal and as plain lines otherwise, so that
// passphrases can be piped in scripts and tests.
type prompter struct {
	in     io.Reader
	reader *bufio.Reader
	out    io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: in, reader: bufio.NewReader(in), out: out}
}

// Secret prints label and reads a line without echo.
func (p *prompter) Secret(label string) (string, error) {
	fmt.Fprint(p.out, label)
	if f, ok := p.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(p.out) // New line after hidden input
		if err != nil {
			return "", fmt.Errorf("read %s: %w", strings.TrimSuffix(strings.ToLower(label), ": "), err)
		}
		return string(b), nil
	}
	return p.readLine()
}

// NewPassphrase asks for a passphrase twice and fails if the answers differ.
func (p *prompter) NewPassphrase() (string, error) {
	first, err := p.Secret("New passphrase: ")
	if err != nil {
		return "", err
	}
	second, err := p.Secret("Confirm passphrase: ")
	if err != nil {
		return "", err
	}
	if first != second {
		return "", usageErrorf("passphrases do not match")
	}
	return first, nil
}

func (p *prompter) readLine() (string, error) {
	line, err := p.reader.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			return "", usageErrorf("unexpected end of input")
		}
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
