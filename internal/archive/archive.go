// Package archive implements the multi-file container format that lets
// several files share one envelope: a JSON header describing each entry,
// followed by the entries themselves, separated by a literal marker.
// Entries are sliced by their declared size, never by re-scanning for the
// separator, since a file's own bytes may legitimately contain it.
package archive

import (
	"bytes"
	"encoding/json"
	"fmt"

	"encimg/internal/classify"
	"encimg/internal/cryptoengine"
)

// Separator is the literal ASCII marker between the header and each entry,
// and between consecutive entries.
const Separator = "---FILE-SEPARATOR---"

var sep = []byte(Separator)

// Entry is one file going into, or recovered from, an archive.
type Entry struct {
	Name     string
	MimeType string
	Data     []byte
}

// entryHeader is one element of the header JSON's "entries" array.
type entryHeader struct {
	Name     string `json:"name"`
	Size     int    `json:"size"`
	MimeType string `json:"mimeType"`
	Offset   int    `json:"offset"`
}

// header is the full JSON header prefixed to a packed archive.
type header struct {
	FileCount int           `json:"fileCount"`
	CreatedAt int64         `json:"createdAt"`
	Entries   []entryHeader `json:"entries"`
}

// Pack concatenates files into a single archive byte stream and returns
// metadata describing the archive for the enclosing envelope: mimeType
// "application/x-file-archive" and a filename ending in ".farc".
//
// Offsets are defined relative to the encoded header's own length, which
// in turn depends on the offsets it carries (their decimal digit widths).
// This is resolved by iterating to a fixed point: recompute offsets from
// the latest header length until the header's encoded length stops
// changing, which converges in at most a few passes since offsets only
// grow, never shrink, across iterations.
func Pack(files []Entry, createdAtMillis int64) ([]byte, cryptoengine.FileMetadata, error) {
	hdr := header{
		FileCount: len(files),
		CreatedAt: createdAtMillis,
		Entries:   make([]entryHeader, len(files)),
	}
	for i, f := range files {
		hdr.Entries[i] = entryHeader{Name: f.Name, Size: len(f.Data), MimeType: f.MimeType}
	}

	encoded, err := json.Marshal(hdr)
	if err != nil {
		return nil, cryptoengine.FileMetadata{}, &classify.ArchiveError{Reason: "header-encode", Err: err}
	}

	const maxPasses = 5
	for pass := 0; pass < maxPasses; pass++ {
		headerLen := len(encoded)
		offset := headerLen + len(sep)
		for i, f := range files {
			hdr.Entries[i].Offset = offset
			offset += len(f.Data) + len(sep)
		}

		next, err := json.Marshal(hdr)
		if err != nil {
			return nil, cryptoengine.FileMetadata{}, &classify.ArchiveError{Reason: "header-encode", Err: err}
		}
		if len(next) == len(encoded) {
			encoded = next
			break
		}
		encoded = next
	}

	totalSize := len(encoded) + len(sep)
	for _, f := range files {
		totalSize += len(f.Data) + len(sep)
	}

	out := make([]byte, 0, totalSize)
	out = append(out, encoded...)
	out = append(out, sep...)
	for _, f := range files {
		out = append(out, f.Data...)
		out = append(out, sep...)
	}

	meta := cryptoengine.FileMetadata{
		Filename:  fmt.Sprintf("archive_%d.farc", createdAtMillis),
		MimeType:  "application/x-file-archive",
		Timestamp: createdAtMillis,
	}
	return out, meta, nil
}

// Unpack parses an archive produced by Pack: it locates the first
// Separator, parses everything before it as the JSON header, then slices
// each entry by its declared size rather than re-scanning for Separator.
func Unpack(data []byte) ([]Entry, error) {
	idx := bytes.Index(data, sep)
	if idx < 0 {
		return nil, &classify.ArchiveError{Reason: "no separator found"}
	}

	var hdr header
	if err := json.Unmarshal(data[:idx], &hdr); err != nil {
		return nil, &classify.ArchiveError{Reason: "header parse", Err: err}
	}

	entries := make([]Entry, len(hdr.Entries))
	for i, eh := range hdr.Entries {
		start := eh.Offset
		end := start + eh.Size
		if start < 0 || end > len(data) || start > end {
			return nil, &classify.ArchiveError{Reason: fmt.Sprintf("entry %d offset out of range", i)}
		}
		entries[i] = Entry{Name: eh.Name, MimeType: eh.MimeType, Data: data[start:end]}
	}

	return entries, nil
}

// LooksLikeArchive reports whether the first 4 KiB of data contain both the
// "fileCount" header key and Separator, a cheap pre-check before a full
// Unpack attempt.
func LooksLikeArchive(data []byte) bool {
	probe := data
	if len(probe) > 4096 {
		probe = probe[:4096]
	}
	return bytes.Contains(probe, []byte(`"fileCount"`)) && bytes.Contains(probe, sep)
}
