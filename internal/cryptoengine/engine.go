package cryptoengine

import (
	"crypto/rand"
	"fmt"

	"encimg/internal/classify"
	"encimg/internal/securebuf"
)

// Encrypt derives a fresh salt and nonce, builds the plaintext block from
// metadata and plaintext, seals it with AES-256-GCM, and frames the result
// as a v1 envelope. plaintext and password may both be empty. The derived
// key is zeroized before Encrypt returns, on every exit path.
func Encrypt(plaintext []byte, password string, meta FileMetadata) ([]byte, error) {
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, classify.NewCryptoError("rand-salt", err)
	}
	nonce := make([]byte, NonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return nil, classify.NewCryptoError("rand-nonce", err)
	}

	key, err := DeriveKey([]byte(password), salt, Version1)
	if err != nil {
		return nil, err
	}
	defer securebuf.SecureZero(key)

	block, err := buildPlaintextBlock(meta, plaintext)
	if err != nil {
		return nil, err
	}
	defer securebuf.SecureZero(block)

	ciphertext, err := seal(key, nonce, block)
	if err != nil {
		return nil, err
	}

	return buildEnvelope(Version1, salt, nonce, ciphertext), nil
}

// Decrypt validates the envelope header, re-derives the key for the
// envelope's version, authenticates and decrypts the payload, and splits
// the recovered plaintext block into metadata and file bytes. A tag
// mismatch always surfaces as classify.ErrInvalidPassword, never
// distinguished from tampering (spec §7).
func Decrypt(envelope []byte, password string) ([]byte, FileMetadata, error) {
	p, err := parseEnvelope(envelope)
	if err != nil {
		return nil, FileMetadata{}, err
	}

	key, err := DeriveKey([]byte(password), p.salt, p.version)
	if err != nil {
		return nil, FileMetadata{}, err
	}
	defer securebuf.SecureZero(key)

	block, err := open(key, p.nonce, p.ciphertext)
	if err != nil {
		return nil, FileMetadata{}, err
	}
	defer securebuf.SecureZero(block)

	meta, data, err := splitPlaintextBlock(block)
	if err != nil {
		return nil, FileMetadata{}, err
	}

	// data aliases block's backing array; it must be copied out before
	// block is zeroized so the caller gets live plaintext bytes.
	out := make([]byte, len(data))
	copy(out, data)

	return out, meta, nil
}

// EnvelopeVersion reports the version byte of a well-formed envelope
// header without performing any key derivation or decryption, for callers
// that want to branch on version before committing to a password prompt.
func EnvelopeVersion(envelope []byte) (byte, error) {
	p, err := parseEnvelope(envelope)
	if err != nil {
		return 0, err
	}
	return p.version, nil
}

// String implements fmt.Stringer for FileMetadata, useful for logging
// without ever including file content.
func (m FileMetadata) String() string {
	return fmt.Sprintf("%s (%s)", m.Filename, m.MimeType)
}
