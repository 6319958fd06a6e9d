// Package classify maps the raw failures produced by cryptoengine,
// imagecodec, archive, validate, and securebuf into the closed error
// taxonomy consumed by callers (CLI or library). It never classifies by
// matching raw error text — only by walking the error chain with
// errors.Is/errors.As against the sentinel and typed errors below.
package classify

import (
	"errors"
	"fmt"
)

// Sentinel errors for conditions with no extra context to carry.
var (
	ErrCancelled         = errors.New("operation cancelled")
	ErrInvalidPassword   = errors.New("authentication failed")
	ErrUnrecognizedMagic = errors.New("unrecognized envelope magic")
	ErrUnknownVersion    = errors.New("unsupported envelope version")
	ErrEnvelopeTooShort  = errors.New("envelope shorter than minimum size")
	ErrEmptyPassword     = errors.New("password is empty")
	ErrNotPNG            = errors.New("input is not a PNG image")
	ErrArchiveCorrupt    = errors.New("archive header is corrupt")
)

// CryptoError wraps a low-level failure in random generation, metadata
// encoding, AEAD sealing/opening, PNG encoding, or Base64 decoding.
type CryptoError struct {
	Op  string // e.g. "rand-salt", "rand-nonce", "metadata-encode", "aead-seal", "aead-open", "png-encode", "base64-decode"
	Err error
}

func (e *CryptoError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("crypto %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("crypto %s failed", e.Op)
}

func (e *CryptoError) Unwrap() error { return e.Err }

// NewCryptoError creates a CryptoError.
func NewCryptoError(op string, err error) *CryptoError {
	return &CryptoError{Op: op, Err: err}
}

// ValidationError represents a rejected input, carrying the field that
// failed so the classifier can attach the right canonical code.
type ValidationError struct {
	Field string
	Code  Code
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s: %s", e.Field, e.Msg)
}

// NewValidationError creates a ValidationError pre-tagged with its code.
func NewValidationError(field string, code Code, msg string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Msg: msg}
}

// MetadataError represents a failure to parse the JSON metadata prefix of a
// decrypted plaintext block.
type MetadataError struct {
	Err error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("invalid metadata: %v", e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// ArchiveError represents a failure to parse or slice a multi-file archive.
type ArchiveError struct {
	Reason string
	Err    error
}

func (e *ArchiveError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("archive: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("archive: %s", e.Reason)
}

func (e *ArchiveError) Unwrap() error { return e.Err }

// MemoryError represents a denied reservation or an over-budget image
// allocation plan.
type MemoryError struct {
	Requested int64
	Budget    int64
	Err       error
}

func (e *MemoryError) Error() string {
	return fmt.Sprintf("memory limit: requested %d, budget %d", e.Requested, e.Budget)
}

func (e *MemoryError) Unwrap() error { return e.Err }
