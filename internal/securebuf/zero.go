// Package securebuf implements the scoped sensitive-buffer tracking and
// process-wide memory budget described for the Secure Buffer Manager: every
// buffer holding a password, derived key, plaintext, or envelope must be
// allocated through here so it is guaranteed to be zeroized on release.
package securebuf

import (
	"crypto/subtle"
	"hash"
)

// SecureZero overwrites b with zeros in a way the compiler cannot optimize
// away, using a constant-time copy from a zero slice.
//
// Due to Go's garbage collector, this cannot guarantee a sensitive value
// never existed elsewhere in memory (e.g. in a reallocation during append),
// but it collapses the window during which the current backing array holds
// live key material.
func SecureZero(b []byte) {
	if len(b) == 0 {
		return
	}
	zeros := make([]byte, len(b))
	subtle.ConstantTimeCopy(1, b, zeros)
}

// SecureZeroMultiple zeros each of the given slices.
func SecureZeroMultiple(slices ...[]byte) {
	for _, s := range slices {
		SecureZero(s)
	}
}

// SecureZeroHash resets a hash.Hash so partial digest state doesn't linger.
func SecureZeroHash(h hash.Hash) {
	if h != nil {
		h.Reset()
	}
}
