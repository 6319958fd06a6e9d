// Package cryptoengine implements the envelope's cryptographic core:
// password-based key derivation, AES-256-GCM authenticated encryption, the
// fixed-layout envelope framing, and the metadata codec. This is
// format-critical code — the wire layout and KDF parameters below are
// pinned by the envelope format and MUST NOT change under an existing
// version byte, or artifacts already in the wild become undecryptable.
package cryptoengine

import (
	"crypto/sha256"

	"golang.org/x/crypto/pbkdf2"

	"encimg/internal/classify"
)

// kdfParams describes the PBKDF2 parameters used for one envelope version.
// A future version MUST introduce a new entry rather than mutate an
// existing one (spec §4.1: "Future versions MUST pick different parameters
// behind the same version byte").
type kdfParams struct {
	iterations int
	keySize    int
}

// paramsByVersion is the version-indexed KDF parameter table. Version 1 is
// SHA-256-based PBKDF2 with 100,000 iterations and a 32-byte (256-bit) key.
var paramsByVersion = map[byte]kdfParams{
	1: {iterations: 100_000, keySize: 32},
}

// DeriveKey derives a symmetric key from password and salt using the
// PBKDF2-HMAC-SHA256 parameters registered for version. It returns
// ErrUnknownVersion if version has no registered parameters.
func DeriveKey(password, salt []byte, version byte) ([]byte, error) {
	params, ok := paramsByVersion[version]
	if !ok {
		return nil, classify.ErrUnknownVersion
	}
	return pbkdf2.Key(password, salt, params.iterations, params.keySize, sha256.New), nil
}
