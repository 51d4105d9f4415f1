// Package challenge implements the device credential check used before money moves.
package challenge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/SscSPs/komunity_app/internal/apperrors"
	"github.com/SscSPs/komunity_app/internal/core/ports"
	"github.com/mattn/go-isatty"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/term"
)

// PasscodeChallenger asks for the device passcode on the controlling terminal
// and checks it against a bcrypt hash.
type PasscodeChallenger struct {
	hash         []byte
	in           *os.File
	out          io.Writer
	readPasscode func() ([]byte, error)
	isTerminal   func() bool
}

// Option configures a PasscodeChallenger.
type Option func(*PasscodeChallenger)

// WithTerminal reads from in and prompts on out.
func WithTerminal(in *os.File, out io.Writer) Option {
	return func(c *PasscodeChallenger) {
		c.in = in
		c.out = out
	}
}

// WithPasscodeReader replaces the terminal read, e.g. in tests.
func WithPasscodeReader(read func() ([]byte, error)) Option {
	return func(c *PasscodeChallenger) {
		c.readPasscode = read
		c.isTerminal = func() bool { return true }
	}
}

// NewPasscodeChallenger creates a challenger for the given bcrypt hash.
// An empty hash means no passcode is set up and the challenger is unavailable.
func NewPasscodeChallenger(hash string, opts ...Option) *PasscodeChallenger {
	c := &PasscodeChallenger{
		hash: []byte(strings.TrimSpace(hash)),
		in:   os.Stdin,
		out:  os.Stderr,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.readPasscode == nil {
		c.readPasscode = func() ([]byte, error) { return term.ReadPassword(int(c.in.Fd())) }
	}
	if c.isTerminal == nil {
		c.isTerminal = func() bool {
			fd := c.in.Fd()
			return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
		}
	}
	return c
}

var _ ports.Challenger = (*PasscodeChallenger)(nil)

func (c *PasscodeChallenger) IsAvailable(_ context.Context) bool {
	return len(c.hash) > 0 && c.isTerminal()
}

type readResult struct {
	passcode []byte
	err      error
}

func (c *PasscodeChallenger) Challenge(ctx context.Context, reason string) error {
	if !c.IsAvailable(ctx) {
		return fmt.Errorf("%w: no device passcode available", apperrors.ErrChallengeFailed)
	}
	fmt.Fprintf(c.out, "%s\nPasscode (leave empty to cancel): ", reason)

	// The read cannot be interrupted, so a cancelled context abandons it.
	done := make(chan readResult, 1)
	go func() {
		passcode, err := c.readPasscode()
		done <- readResult{passcode: passcode, err: err}
	}()

	var res readResult
	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		return fmt.Errorf("%w: %w", apperrors.ErrChallengeCancelled, ctx.Err())
	case res = <-done:
	}
	fmt.Fprintln(c.out)

	if res.err != nil {
		if errors.Is(res.err, io.EOF) {
			return apperrors.ErrChallengeCancelled
		}
		return fmt.Errorf("%w: reading passcode: %w", apperrors.ErrChallengeFailed, res.err)
	}
	passcode := strings.TrimSpace(string(res.passcode))
	if passcode == "" {
		return apperrors.ErrChallengeCancelled
	}
	if err := bcrypt.CompareHashAndPassword(c.hash, []byte(passcode)); err != nil {
		return fmt.Errorf("%w: incorrect passcode", apperrors.ErrChallengeFailed)
	}
	return nil
}
