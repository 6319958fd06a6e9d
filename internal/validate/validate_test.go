package validate

import (
	"testing"

	"encimg/internal/classify"
	"encimg/internal/cryptoengine"
	"encimg/internal/securebuf"
)

func TestFileForEncryption(t *testing.T) {
	if r := FileForEncryption(nil); r.Valid {
		t.Error("nil file should be invalid")
	}
	if r := FileForEncryption(&FileInput{Size: SingleFileCap + 1}); r.Valid || r.Code != classify.FileTooLarge {
		t.Errorf("oversized file: got %+v", r)
	}
	if r := FileForEncryption(&FileInput{Size: 100}); !r.Valid {
		t.Errorf("small file should be valid: %+v", r)
	}
}

func TestMultiFileTotal(t *testing.T) {
	if r := MultiFileTotal(MultiFileCap); !r.Valid {
		t.Errorf("exactly at cap should be valid: %+v", r)
	}
	if r := MultiFileTotal(MultiFileCap + 1); r.Valid {
		t.Error("one byte over cap should be invalid")
	}
}

func TestImageForDecryption(t *testing.T) {
	good := &FileInput{Name: "x.png", Mime: "image/png", Size: 10}
	if r := ImageForDecryption(good); !r.Valid {
		t.Errorf("valid png rejected: %+v", r)
	}
	bad := &FileInput{Name: "x.jpg", Mime: "image/jpeg", Size: 10}
	if r := ImageForDecryption(bad); r.Valid || r.Code != classify.InvalidImageFormat {
		t.Errorf("jpeg should be rejected: %+v", r)
	}
}

func TestPassword(t *testing.T) {
	if r := Password(""); r.Valid || r.Code != classify.EmptyPassword {
		t.Errorf("empty password should be invalid: %+v", r)
	}
	if r := Password("   "); r.Valid {
		t.Error("whitespace-only password should be invalid")
	}
	if r := Password("pw"); !r.Valid {
		t.Errorf("non-empty password should be valid: %+v", r)
	}
}

func TestBase64(t *testing.T) {
	if r := Base64("aGVsbG8="); !r.Valid {
		t.Errorf("valid base64 rejected: %+v", r)
	}
	if r := Base64("abc"); r.Valid {
		t.Error("length not a multiple of 4 should be invalid")
	}
	if r := Base64("abc!"); r.Valid {
		t.Error("illegal character should be invalid")
	}
}

func TestEnvelopeHeader(t *testing.T) {
	env, err := cryptoengine.Encrypt([]byte("x"), "pw", cryptoengine.FileMetadata{})
	if err != nil {
		t.Fatal(err)
	}
	if r := EnvelopeHeader(env); !r.Valid {
		t.Errorf("valid envelope rejected: %+v", r)
	}
	if r := EnvelopeHeader(make([]byte, 10)); r.Valid || r.Code != classify.CorruptedImage {
		t.Errorf("short envelope should be CORRUPTED_IMAGE: %+v", r)
	}
	tampered := append([]byte(nil), env...)
	tampered[0] = 'X'
	if r := EnvelopeHeader(tampered); r.Valid || r.Code != classify.UnrecognizedFormat {
		t.Errorf("bad magic should be UNRECOGNIZED_FORMAT: %+v", r)
	}
}

func TestMemory(t *testing.T) {
	if r := Memory(1000, securebuf.DefaultBudget); !r.Valid {
		t.Errorf("small request should be valid: %+v", r)
	}
	if r := Memory(securebuf.DefaultBudget, securebuf.DefaultBudget); r.Valid {
		t.Error("request at full budget with 2.5x multiplier should be invalid")
	}
}
