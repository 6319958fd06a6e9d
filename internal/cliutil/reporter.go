package cliutil

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"encimg/internal/pipeline"
	"encimg/internal/util"
)

// Reporter implements pipeline.ProgressReporter for terminal output: a
// single overwritten progress line per phase, cleared and restarted on
// every phase transition.
type Reporter struct {
	mu        sync.Mutex
	quiet     bool
	cancelled atomic.Bool
	lastPhase pipeline.Phase
	lastLine  int
	started   time.Time
}

// NewReporter creates a terminal Reporter. If quiet is true, progress
// lines, the Finish summary, and success messages are suppressed; errors
// are still printed.
func NewReporter(quiet bool) *Reporter {
	return &Reporter{quiet: quiet, started: time.Now()}
}

// OnProgress implements pipeline.ProgressReporter.
func (r *Reporter) OnProgress(phase pipeline.Phase, percent int) {
	if r.quiet {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if phase != r.lastPhase && r.lastLine > 0 {
		fmt.Fprintln(os.Stderr)
		r.lastLine = 0
	}
	r.lastPhase = phase

	barWidth := 30
	filled := percent * barWidth / 100
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	line := fmt.Sprintf("\r[%s] %3d%% | %s", bar, percent, phase)

	if len(line) < r.lastLine {
		line += strings.Repeat(" ", r.lastLine-len(line))
	}
	r.lastLine = len(line)
	fmt.Fprint(os.Stderr, line)
}

// IsCancelled implements pipeline.ProgressReporter.
func (r *Reporter) IsCancelled() bool {
	return r.cancelled.Load()
}

// Cancel marks the operation as cancelled; checked on the next
// IsCancelled poll by the pipeline.
func (r *Reporter) Cancel() {
	r.cancelled.Store(true)
}

// Finish moves the terminal past the progress line and reports the total
// elapsed time.
func (r *Reporter) Finish() {
	if r.quiet {
		return
	}
	fmt.Fprintln(os.Stderr)
	fmt.Fprintf(os.Stderr, "Completed in %s\n", util.Duration(int(time.Since(r.started).Seconds())))
}

// PrintError prints an error message, first moving past any in-progress
// progress line.
func (r *Reporter) PrintError(format string, args ...any) {
	r.mu.Lock()
	if r.lastLine > 0 {
		fmt.Fprintln(os.Stderr)
		r.lastLine = 0
	}
	r.mu.Unlock()
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}

// PrintSuccess prints a success message unless the reporter is quiet.
func (r *Reporter) PrintSuccess(format string, args ...any) {
	if r.quiet {
		return
	}
	fmt.Fprintf(os.Stderr, format+"\n", args...)
}
