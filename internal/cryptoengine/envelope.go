package cryptoengine

import (
	"fmt"

	"encimg/internal/classify"
)

// Wire-format constants. Changing any of these breaks bit-exact
// compatibility with every other implementation of this format (spec §1c).
const (
	MagicString = "ENCIMG"
	Version1    = byte(0x01)

	SaltSize  = 16
	NonceSize = 12
	TagSize   = 16 // AES-GCM authentication tag, appended to ciphertext

	magicOffset = 0
	magicSize   = 6
	versionSize = 1
	headerSize  = magicSize + versionSize + SaltSize + NonceSize // 35

	// MinEnvelopeSize is the structural floor checked before any parsing:
	// header fields (35 bytes) plus at least one ciphertext byte (spec §3).
	// An envelope at exactly this size still fails AEAD authentication
	// (the tag alone is 16 bytes), surfacing as INVALID_PASSWORD rather
	// than CORRUPTED_IMAGE — this check only guards against inputs too
	// short to even contain the fixed fields.
	MinEnvelopeSize = headerSize + 1 // 36
)

// magic is the 6-byte ASCII prefix identifying an envelope.
var magic = []byte(MagicString)

// buildEnvelope concatenates magic || version || salt || nonce ||
// ciphertextWithTag into a single wire-format envelope.
func buildEnvelope(version byte, salt, nonce, ciphertext []byte) []byte {
	out := make([]byte, 0, headerSize+len(ciphertext))
	out = append(out, magic...)
	out = append(out, version)
	out = append(out, salt...)
	out = append(out, nonce...)
	out = append(out, ciphertext...)
	return out
}

// parsedEnvelope is the result of splitting a wire-format envelope into its
// fixed fields without copying the ciphertext.
type parsedEnvelope struct {
	version    byte
	salt       []byte
	nonce      []byte
	ciphertext []byte // includes the trailing AEAD tag
}

// parseEnvelope validates and splits env into its fields. A length below
// the documented minimum (36 bytes per spec §3: header plus at least one
// ciphertext byte) is CORRUPTED_IMAGE; a mismatched magic or unknown version is
// UNRECOGNIZED_FORMAT, and both checks happen before any key derivation.
func parseEnvelope(env []byte) (*parsedEnvelope, error) {
	if len(env) < MinEnvelopeSize {
		return nil, fmt.Errorf("envelope is %d bytes, need at least %d: %w", len(env), MinEnvelopeSize, classify.ErrEnvelopeTooShort)
	}

	if string(env[magicOffset:magicOffset+magicSize]) != MagicString {
		return nil, fmt.Errorf("bad magic: %w", classify.ErrUnrecognizedMagic)
	}

	version := env[magicSize]
	if _, ok := paramsByVersion[version]; !ok {
		return nil, fmt.Errorf("version 0x%02x: %w", version, classify.ErrUnknownVersion)
	}

	p := &parsedEnvelope{version: version}
	off := magicSize + versionSize
	p.salt = env[off : off+SaltSize]
	off += SaltSize
	p.nonce = env[off : off+NonceSize]
	off += NonceSize
	p.ciphertext = env[off:]
	return p, nil
}
