// Package cliutil provides the terminal-facing helpers shared by the
// command tree: hidden password prompts, password generation, strength
// estimation, and a ProgressReporter that renders to stderr.
package cliutil

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/Picocrypt/zxcvbn-go"
)

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordEmpty    = errors.New("password cannot be empty")
)

func isTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// readPasswordSecure reads a password from stdin without echo when stdin is
// a terminal, falling back to a buffered newline-terminated read when it is
// piped.
func readPasswordSecure(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		reader := bufio.NewReader(os.Stdin)
		pw, err := reader.ReadString('\n')
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return strings.TrimRight(pw, "\r\n"), nil
	}

	pw, err := term.ReadPassword(fd)
	fmt.Fprintln(os.Stderr)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(pw), nil
}

// ReadPasswordInteractive prompts for a password, and when confirm is true
// (the encryption path) prompts a second time and requires the two to
// match.
func ReadPasswordInteractive(confirm bool) (string, error) {
	password, err := readPasswordSecure("Password: ")
	if err != nil {
		return "", err
	}
	if password == "" {
		return "", ErrPasswordEmpty
	}

	if confirm {
		confirmed, err := readPasswordSecure("Confirm password: ")
		if err != nil {
			return "", err
		}
		if password != confirmed {
			return "", ErrPasswordMismatch
		}
	}

	return password, nil
}

// ReadPasswordFromStdin reads one newline-terminated password from stdin,
// for the non-interactive (-P / piped) flag path.
func ReadPasswordFromStdin() (string, error) {
	reader := bufio.NewReader(os.Stdin)
	pw, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("reading password from stdin: %w", err)
	}
	return strings.TrimRight(pw, "\r\n"), nil
}

// StrengthScore returns zxcvbn's 0-4 password strength estimate.
func StrengthScore(password string) int {
	if password == "" {
		return 0
	}
	return zxcvbn.PasswordStrength(password, nil).Score
}
