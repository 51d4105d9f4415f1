package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// readSecret prompts for a value without echo when stdin is a terminal,
// and reads one line otherwise.
func readSecret(prompt string, errOut io.Writer) (string, error) {
	fmt.Fprint(errOut, prompt)
	if isatty.IsTerminal(os.Stdin.Fd()) {
		secret, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(errOut)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", strings.TrimSpace(strings.TrimSuffix(prompt, ": ")), err)
		}
		return string(secret), nil
	}
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// secretFlag returns the flag value, or prompts when it was not given.
func secretFlag(value, prompt string, errOut io.Writer) (string, error) {
	if value != "" {
		return value, nil
	}
	return readSecret(prompt, errOut)
}
