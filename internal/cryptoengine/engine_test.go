package cryptoengine

import (
	"bytes"
	"errors"
	"testing"

	"encimg/internal/classify"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	meta := FileMetadata{Filename: "encrypted_text.txt", MimeType: "text/plain", Timestamp: 1700000000000}
	env, err := Encrypt([]byte("hello"), "pw", meta)
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}

	if !bytes.Equal(env[:6], []byte(MagicString)) {
		t.Fatalf("envelope does not start with magic: %x", env[:7])
	}
	if env[6] != Version1 {
		t.Fatalf("version byte = %x; want %x", env[6], Version1)
	}

	plain, gotMeta, err := Decrypt(env, "pw")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(plain) != "hello" {
		t.Errorf("plaintext = %q; want %q", plain, "hello")
	}
	if gotMeta != meta {
		t.Errorf("metadata = %+v; want %+v", gotMeta, meta)
	}
}

func TestWrongPasswordFailsInvalidPassword(t *testing.T) {
	env, err := Encrypt([]byte("secret"), "a", FileMetadata{})
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	_, _, err = Decrypt(env, "b")
	if !errors.Is(err, classify.ErrInvalidPassword) {
		t.Fatalf("Decrypt with wrong password: got %v, want ErrInvalidPassword", err)
	}
}

func TestEmptyPlaintextRoundTrips(t *testing.T) {
	env, err := Encrypt(nil, "pw", FileMetadata{Filename: "empty"})
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	plain, _, err := Decrypt(env, "pw")
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if len(plain) != 0 {
		t.Errorf("plaintext = %v; want empty", plain)
	}
}

func TestIdenticalPlaintextProducesDistinctEnvelopes(t *testing.T) {
	meta := FileMetadata{Filename: "a"}
	env1, err := Encrypt([]byte("same bytes"), "pw", meta)
	if err != nil {
		t.Fatal(err)
	}
	env2, err := Encrypt([]byte("same bytes"), "pw", meta)
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(env1, env2) {
		t.Error("two encryptions of identical input produced identical envelopes")
	}
}

func TestBitFlipFailsInvalidPassword(t *testing.T) {
	env, err := Encrypt([]byte("data"), "pw", FileMetadata{})
	if err != nil {
		t.Fatal(err)
	}
	flipped := bytes.Clone(env)
	flipped[len(flipped)-1] ^= 0xFF

	_, _, err = Decrypt(flipped, "pw")
	if !errors.Is(err, classify.ErrInvalidPassword) {
		t.Fatalf("bit-flipped envelope: got %v, want ErrInvalidPassword", err)
	}
}

func TestBadMagicFailsBeforeKeyDerivation(t *testing.T) {
	env, err := Encrypt([]byte("data"), "pw", FileMetadata{})
	if err != nil {
		t.Fatal(err)
	}
	env[0] = 'X'

	_, _, err = Decrypt(env, "pw")
	if !errors.Is(err, classify.ErrUnrecognizedMagic) {
		t.Fatalf("bad magic: got %v, want ErrUnrecognizedMagic", err)
	}
}

func TestTooShortEnvelopeFailsCorrupted(t *testing.T) {
	_, _, err := Decrypt(make([]byte, 10), "pw")
	if !errors.Is(err, classify.ErrEnvelopeTooShort) {
		t.Fatalf("short envelope: got %v, want ErrEnvelopeTooShort", err)
	}
}

func TestUnknownVersionRejected(t *testing.T) {
	env, err := Encrypt([]byte("data"), "pw", FileMetadata{})
	if err != nil {
		t.Fatal(err)
	}
	env[6] = 0x02

	_, _, err = Decrypt(env, "pw")
	if !errors.Is(err, classify.ErrUnknownVersion) {
		t.Fatalf("unknown version: got %v, want ErrUnknownVersion", err)
	}
}

func TestImageBytesRoundTrip(t *testing.T) {
	// Scenario 3 from spec §8: an 8-byte PNG magic sequence as the payload.
	payload := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}
	env, err := Encrypt(payload, "pw", FileMetadata{Filename: "x.png", MimeType: "image/png"})
	if err != nil {
		t.Fatal(err)
	}
	got, _, err := Decrypt(env, "pw")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("got %x; want %x", got, payload)
	}
}
