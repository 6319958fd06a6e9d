// Package validate implements the centralized policy layer consulted by
// the pipeline before any expensive work: file-size, password, image
// format, Base64 shape, and envelope-header sanity checks.
package validate

import (
	"regexp"
	"strings"

	"encimg/internal/classify"
	"encimg/internal/cryptoengine"
	"encimg/internal/util"
)

// SingleFileCap is the size limit for a single file or text input.
const SingleFileCap = 1 * util.GiB

// MultiFileCap is the aggregate size limit for a multi-file bundle before
// encryption (spec §4.6): when N > 1 the pipeline enforces this instead of
// SingleFileCap.
const MultiFileCap = 150 * util.MiB

// MemoryBudgetMultiplier is the factor applied to a requested operation
// size when checking it against the process memory budget: intermediate
// buffers (plaintext, Base64, PNG pixels) coexist during one operation.
const MemoryBudgetMultiplier = 2.5

var base64Pattern = regexp.MustCompile(`^[A-Za-z0-9+/]*={0,2}$`)

// Result is the outcome of a validation check.
type Result struct {
	Valid   bool
	Code    classify.Code
	Message string
}

func ok() Result { return Result{Valid: true} }

func fail(code classify.Code, msg string) Result {
	return Result{Valid: false, Code: code, Message: msg}
}

// FileInput describes the minimal shape of a file candidate for
// encryption or decryption, independent of how the caller obtained it.
type FileInput struct {
	Name string
	Mime string
	Size int64
}

// FileForEncryption checks that f is present and within the single-file
// size cap.
func FileForEncryption(f *FileInput) Result {
	if f == nil {
		return fail(classify.FileTooLarge, "no file provided")
	}
	if f.Size > SingleFileCap {
		return fail(classify.FileTooLarge, "file exceeds the 1 GiB size limit")
	}
	return ok()
}

// MultiFileTotal checks the aggregate size of a multi-file bundle against
// MultiFileCap.
func MultiFileTotal(totalSize int64) Result {
	if totalSize > MultiFileCap {
		return fail(classify.FileTooLarge, "combined file size exceeds the 150 MiB multi-file limit")
	}
	return ok()
}

// ImageForDecryption checks that f is a PNG-named, PNG-mimed file within
// the single-file size cap.
func ImageForDecryption(f *FileInput) Result {
	if f == nil {
		return fail(classify.InvalidImageFormat, "no image provided")
	}
	if f.Mime != "image/png" || !strings.HasSuffix(strings.ToLower(f.Name), ".png") {
		return fail(classify.InvalidImageFormat, "decryption from an image requires a PNG file")
	}
	if f.Size > SingleFileCap {
		return fail(classify.FileTooLarge, "image exceeds the 1 GiB size limit")
	}
	return ok()
}

// Password checks that p is non-empty once surrounding whitespace is
// trimmed.
func Password(p string) Result {
	if strings.TrimSpace(p) == "" {
		return fail(classify.EmptyPassword, "a password is required")
	}
	return ok()
}

// Base64 checks that s is shaped like Base64: only the standard alphabet
// and padding characters, with a length that is a multiple of 4.
func Base64(s string) Result {
	if len(s)%4 != 0 {
		return fail(classify.CorruptedImage, "base64 length is not a multiple of 4")
	}
	if !base64Pattern.MatchString(s) {
		return fail(classify.CorruptedImage, "input contains characters outside the base64 alphabet")
	}
	return ok()
}

// EnvelopeHeader checks the structural shape of an envelope before any key
// derivation: minimum length, magic bytes, and a recognized version byte.
func EnvelopeHeader(b []byte) Result {
	if len(b) < cryptoengine.MinEnvelopeSize {
		return fail(classify.CorruptedImage, "envelope is shorter than the minimum valid size")
	}
	if string(b[:6]) != cryptoengine.MagicString {
		return fail(classify.UnrecognizedFormat, "envelope magic does not match")
	}
	if _, err := cryptoengine.EnvelopeVersion(b); err != nil {
		return fail(classify.UnrecognizedFormat, "envelope version is not recognized")
	}
	return ok()
}

// Memory checks a requested operation size against the process memory
// budget, applying MemoryBudgetMultiplier to account for coexisting
// intermediate buffers.
func Memory(size int64, budget int64) Result {
	if float64(size)*MemoryBudgetMultiplier > float64(budget) {
		return fail(classify.MemoryLimit, "operation would exceed the available memory budget")
	}
	return ok()
}
