package cryptoengine

import (
	"bytes"
	"encoding/json"
	"fmt"

	"encimg/internal/classify"
)

// delimiter is the literal two-byte separator between the JSON metadata
// prefix and the raw file bytes of a plaintext block. This is a byte-level
// scan, never a Unicode-aware operation (spec §9): JSON escapes any literal
// '|' inside a string, so this exact two-byte sequence cannot appear inside
// a well-formed JSON metadata prefix.
var delimiter = []byte{0x7C, 0x7C} // "||"

// FileMetadata describes the file carried inside one encrypted envelope.
type FileMetadata struct {
	Filename  string `json:"filename"`
	MimeType  string `json:"mimeType"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

// buildPlaintextBlock serializes metadata as UTF-8 JSON, appends the
// delimiter, then the raw file bytes: utf8(json(metadata)) || "||" || data.
func buildPlaintextBlock(meta FileMetadata, data []byte) ([]byte, error) {
	encoded, err := json.Marshal(meta)
	if err != nil {
		return nil, classify.NewCryptoError("metadata-encode", err)
	}
	block := make([]byte, 0, len(encoded)+len(delimiter)+len(data))
	block = append(block, encoded...)
	block = append(block, delimiter...)
	block = append(block, data...)
	return block, nil
}

// splitPlaintextBlock scans for the first occurrence of the delimiter,
// parses the left side strictly as JSON metadata, and returns the right
// side unmodified and unsplit — a subslice of block, not a copy, so no
// second allocation of the (potentially large) binary payload is made.
func splitPlaintextBlock(block []byte) (FileMetadata, []byte, error) {
	idx := bytes.Index(block, delimiter)
	if idx < 0 {
		return FileMetadata{}, nil, &classify.MetadataError{Err: fmt.Errorf("delimiter not found in plaintext block")}
	}

	var meta FileMetadata
	if err := json.Unmarshal(block[:idx], &meta); err != nil {
		return FileMetadata{}, nil, &classify.MetadataError{Err: err}
	}

	return meta, block[idx+len(delimiter):], nil
}
