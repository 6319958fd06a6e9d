package util

import (
	"fmt"
	"time"
)

// sizeUnit pairs a byte threshold with the suffix ByteSize renders at that
// threshold.
type sizeUnit struct {
	threshold int64
	suffix    string
}

var sizeUnits = []sizeUnit{
	{TiB, "TiB"},
	{GiB, "GiB"},
	{MiB, "MiB"},
	{KiB, "KiB"},
}

// ByteSize renders a byte count as a human-readable KiB/MiB/GiB/TiB figure,
// used wherever a file, archive, or envelope size is reported back to a
// caller.
func ByteSize(n int64) string {
	for _, u := range sizeUnits {
		if n >= u.threshold {
			return fmt.Sprintf("%.2f %s", float64(n)/float64(u.threshold), u.suffix)
		}
	}
	return fmt.Sprintf("%d B", n)
}

// Duration renders a second count as "HH:MM:SS". Negative input floors to
// zero rather than wrapping.
func Duration(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	d := time.Duration(seconds) * time.Second
	hours := d / time.Hour
	d -= hours * time.Hour
	minutes := d / time.Minute
	d -= minutes * time.Minute
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, d/time.Second)
}

// ExpansionRatio reports how large an artifact grew relative to the source
// bytes it was produced from, e.g. plaintext versus its Base64-wrapped,
// PNG-rendered envelope. A non-positive sourceSize reports zero rather than
// dividing by it.
func ExpansionRatio(sourceSize, artifactSize int64) float64 {
	if sourceSize <= 0 {
		return 0
	}
	return float64(artifactSize) / float64(sourceSize)
}

// FormatRatio renders an expansion ratio as "1.37x".
func FormatRatio(ratio float64) string {
	return fmt.Sprintf("%.2fx", ratio)
}
