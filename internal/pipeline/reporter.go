// Package pipeline composes the crypto engine, image codec, archive, and
// validation components into the four user-level operations, enforcing
// phase ordering, memory reservation, and guaranteed buffer cleanup on
// every exit path.
package pipeline

// Phase identifies which stage of an operation a progress callback refers
// to.
type Phase string

const (
	PhaseValidating    Phase = "validating"
	PhaseArchiving     Phase = "archiving"
	PhaseEncrypting    Phase = "encrypting"
	PhaseBase64Encode  Phase = "base64_encoding"
	PhaseRendering     Phase = "rendering"
	PhaseDecoding      Phase = "decoding"
	PhaseDecrypting    Phase = "decrypting"
	PhaseUnarchiving   Phase = "unarchiving"
)

// ProgressReporter receives progress callbacks during an operation. percent
// runs 0-100 within each phase and is monotonically non-decreasing; a
// reporter MUST NOT be assumed to see every intermediate value, but will
// always see 0 on entering a phase and 100 on leaving it. A panic from
// OnProgress never aborts the operation it is reporting on; IsCancelled is
// called without such a guard.
type ProgressReporter interface {
	OnProgress(phase Phase, percent int)
	IsCancelled() bool
}

// NoopReporter discards all progress callbacks and never cancels. It is
// the default used when a caller passes a nil reporter.
type NoopReporter struct{}

func (NoopReporter) OnProgress(Phase, int) {}
func (NoopReporter) IsCancelled() bool     { return false }

// report invokes r.OnProgress, recovering from any panic inside the
// callback so a misbehaving reporter cannot abort the operation it is
// observing (spec §4.6: "Progress-callback exceptions MUST NOT affect the
// main operation").
func report(r ProgressReporter, phase Phase, percent int) {
	defer func() { _ = recover() }()
	r.OnProgress(phase, percent)
}

func orDefault(r ProgressReporter) ProgressReporter {
	if r == nil {
		return NoopReporter{}
	}
	return r
}
