package classify

import "regexp"

// base64Shaped matches runs that look like Base64-encoded data: 24+
// characters from the standard alphabet, optionally padded.
var base64Shaped = regexp.MustCompile(`[A-Za-z0-9+/]{24,}={0,2}`)

// hexShaped matches runs that look like hex-encoded key or digest material.
var hexShaped = regexp.MustCompile(`[0-9A-Fa-f]{24,}`)

// Scrub removes Base64-shaped and hex-shaped substrings from a message
// before it is surfaced to a caller, so a wrapped low-level error can never
// leak key bytes, ciphertext, or password material embedded in a message
// (spec §4.7's closing requirement).
func Scrub(msg string) string {
	msg = base64Shaped.ReplaceAllString(msg, "[redacted]")
	msg = hexShaped.ReplaceAllString(msg, "[redacted]")
	return msg
}
