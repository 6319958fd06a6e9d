package cryptoengine

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"encimg/internal/classify"
)

// seal encrypts plaintext with AES-256-GCM under key and nonce, with no
// associated data (spec §4.1 AEAD contract). The returned slice is
// ciphertext with the 16-byte tag appended, matching the envelope layout.
func seal(key, nonce, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, classify.NewCryptoError("aead-seal", err)
	}
	if len(nonce) != gcm.NonceSize() {
		return nil, classify.NewCryptoError("aead-seal", fmt.Errorf("nonce is %d bytes, want %d", len(nonce), gcm.NonceSize()))
	}
	return gcm.Seal(nil, nonce, plaintext, nil), nil
}

// open decrypts ciphertext (which includes the trailing tag) with
// AES-256-GCM under key and nonce. A tag mismatch is reported as
// classify.ErrInvalidPassword, indistinguishable by design from tampering
// or a wrong password (spec §4.1/§7).
func open(key, nonce, ciphertext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, classify.NewCryptoError("aead-open", err)
	}
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("aead open: %w", classify.ErrInvalidPassword)
	}
	return plaintext, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
