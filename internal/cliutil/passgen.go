package cliutil

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// PassgenOptions configures GeneratePassword. At least one character class
// must be enabled, and Length must be positive, or GeneratePassword returns
// an empty string.
type PassgenOptions struct {
	Length  int
	Upper   bool
	Lower   bool
	Numbers bool
	Symbols bool
}

// GeneratePassword produces a password of the requested length drawn
// uniformly from the enabled character classes, using crypto/rand for
// every character selection.
func GeneratePassword(opts PassgenOptions) (string, error) {
	chars := ""
	if opts.Upper {
		chars += "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	}
	if opts.Lower {
		chars += "abcdefghijklmnopqrstuvwxyz"
	}
	if opts.Numbers {
		chars += "1234567890"
	}
	if opts.Symbols {
		chars += "-=_+!@#$^&()?<>"
	}

	if len(chars) == 0 || opts.Length <= 0 {
		return "", nil
	}

	out := make([]byte, opts.Length)
	for i := range out {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(len(chars))))
		if err != nil {
			return "", fmt.Errorf("crypto/rand: %w", err)
		}
		out[i] = chars[j.Int64()]
	}
	return string(out), nil
}
