package classify

import "errors"

// Code is one of the closed set of canonical error codes surfaced to
// callers. The set is deliberately small: every failure anywhere in the
// pipeline maps onto one of these, never a raw internal message.
type Code string

const (
	InvalidPassword    Code = "INVALID_PASSWORD"
	UnrecognizedFormat Code = "UNRECOGNIZED_FORMAT"
	CorruptedImage     Code = "CORRUPTED_IMAGE"
	FileTooLarge       Code = "FILE_TOO_LARGE"
	MemoryLimit        Code = "MEMORY_LIMIT"
	InvalidImageFormat Code = "INVALID_IMAGE_FORMAT"
	EmptyPassword      Code = "EMPTY_PASSWORD"
	InvalidMetadata    Code = "INVALID_METADATA"
	ArchiveCorrupt     Code = "ARCHIVE_CORRUPT"
	ProcessingError    Code = "PROCESSING_ERROR"
)

// Severity indicates how serious a failure is for UI presentation and for
// deciding whether to trigger CleanupAll before propagation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Recovery carries ordered hints a UI can show the user to help them
// recover from a failure.
type Recovery struct {
	CanRecover bool
	Strategy   string
	Hints      []string
}

// Classification is the canonical, closed-taxonomy shape every failure is
// reduced to before it reaches a caller.
type Classification struct {
	Code        Code
	Severity    Severity
	UserMessage string
	Recovery    Recovery
}

// table maps each canonical code to its fixed severity, user message, and
// recovery hints. Populated once; Classify only has to pick the code.
var table = map[Code]Classification{
	InvalidPassword: {
		Code: InvalidPassword, Severity: SeverityMedium,
		UserMessage: "The password is incorrect, or the file is corrupted.",
		Recovery: Recovery{CanRecover: true, Strategy: "retry_password", Hints: []string{
			"Check for Caps Lock.",
			"Try pasting the password instead of typing it.",
		}},
	},
	UnrecognizedFormat: {
		Code: UnrecognizedFormat, Severity: SeverityHigh,
		UserMessage: "This does not look like an encimg artifact.",
		Recovery: Recovery{CanRecover: false, Strategy: "none", Hints: []string{
			"Confirm the file was produced by this tool.",
		}},
	},
	CorruptedImage: {
		Code: CorruptedImage, Severity: SeverityHigh,
		UserMessage: "The image or Base64 data is damaged and cannot be read.",
		Recovery: Recovery{CanRecover: false, Strategy: "none", Hints: []string{
			"Re-export the image or Base64 text and try again.",
		}},
	},
	FileTooLarge: {
		Code: FileTooLarge, Severity: SeverityMedium,
		UserMessage: "The input exceeds the supported size limit.",
		Recovery: Recovery{CanRecover: true, Strategy: "split_input", Hints: []string{
			"Encrypt files individually instead of as one bundle.",
		}},
	},
	MemoryLimit: {
		Code: MemoryLimit, Severity: SeverityCritical,
		UserMessage: "The operation would exceed the available memory budget.",
		Recovery: Recovery{CanRecover: true, Strategy: "reduce_size", Hints: []string{
			"Try a smaller input or close other operations.",
		}},
	},
	InvalidImageFormat: {
		Code: InvalidImageFormat, Severity: SeverityMedium,
		UserMessage: "Decryption from an image requires a PNG file.",
		Recovery: Recovery{CanRecover: true, Strategy: "reselect_file", Hints: []string{
			"Choose the original .png artifact, not a re-saved copy.",
		}},
	},
	EmptyPassword: {
		Code: EmptyPassword, Severity: SeverityLow,
		UserMessage: "A password is required.",
		Recovery: Recovery{CanRecover: true, Strategy: "enter_password", Hints: []string{
			"Enter a non-empty password.",
		}},
	},
	InvalidMetadata: {
		Code: InvalidMetadata, Severity: SeverityHigh,
		UserMessage: "The decrypted metadata could not be parsed.",
		Recovery: Recovery{CanRecover: false, Strategy: "none", Hints: []string{
			"The artifact may have been produced by an incompatible version.",
		}},
	},
	ArchiveCorrupt: {
		Code: ArchiveCorrupt, Severity: SeverityHigh,
		UserMessage: "The multi-file archive inside this artifact is damaged.",
		Recovery: Recovery{CanRecover: false, Strategy: "none", Hints: []string{
			"Re-create the archive and encrypt it again.",
		}},
	},
	ProcessingError: {
		Code: ProcessingError, Severity: SeverityHigh,
		UserMessage: "Something went wrong while processing the operation.",
		Recovery: Recovery{CanRecover: false, Strategy: "none", Hints: []string{
			"Try again; if this persists, the input may be unsupported.",
		}},
	},
}

// Classify reduces any error into its canonical Classification. Unmatched
// errors fall back to ProcessingError with the original message sanitized
// by Scrub.
func Classify(err error) Classification {
	if err == nil {
		return table[ProcessingError]
	}

	switch {
	case errors.Is(err, ErrCancelled):
		c := table[ProcessingError]
		c.Code = ProcessingError
		c.UserMessage = "The operation was cancelled."
		c.Severity = SeverityLow
		return c
	case errors.Is(err, ErrInvalidPassword):
		return table[InvalidPassword]
	case errors.Is(err, ErrUnrecognizedMagic), errors.Is(err, ErrUnknownVersion):
		return table[UnrecognizedFormat]
	case errors.Is(err, ErrEnvelopeTooShort), errors.Is(err, ErrNotPNG):
		return classifyCorruptedOrFormat(err)
	case errors.Is(err, ErrEmptyPassword):
		return table[EmptyPassword]
	case errors.Is(err, ErrArchiveCorrupt):
		return table[ArchiveCorrupt]
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		if c, ok := table[ve.Code]; ok {
			c.UserMessage = Scrub(ve.Msg)
			return c
		}
	}

	var me *MetadataError
	if errors.As(err, &me) {
		return table[InvalidMetadata]
	}

	var ae *ArchiveError
	if errors.As(err, &ae) {
		return table[ArchiveCorrupt]
	}

	var mem *MemoryError
	if errors.As(err, &mem) {
		return table[MemoryLimit]
	}

	c := table[ProcessingError]
	c.UserMessage = Scrub(err.Error())
	return c
}

// classifyCorruptedOrFormat distinguishes a too-short envelope (always
// CORRUPTED_IMAGE, spec §8) from a non-PNG image input (INVALID_IMAGE_FORMAT).
func classifyCorruptedOrFormat(err error) Classification {
	if errors.Is(err, ErrNotPNG) {
		return table[InvalidImageFormat]
	}
	return table[CorruptedImage]
}
