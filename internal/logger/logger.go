// Package logger provides verbose logging for personarank.
// When verbose mode is enabled via the --verbose flag, messages are
// printed to stderr so users can follow extraction, embedding and
// scoring as a run progresses.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

var (
	mu      sync.RWMutex
	verbose bool
	output  io.Writer = os.Stderr

	// now is replaced in tests.
	now = time.Now
)

// SetVerbose enables or disables verbose logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for verbose logs.
// Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
}

// emit writes one formatted line when verbose mode is on.
// Holding the write lock keeps lines from concurrent workers whole.
func emit(prefix, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if verbose {
		fmt.Fprintf(output, prefix+format+"\n", args...)
	}
}

// Debug prints a message if verbose mode is enabled.
func Debug(format string, args ...any) {
	emit("[DEBUG] ", format, args...)
}

// Info prints an informational message if verbose mode is enabled.
func Info(format string, args ...any) {
	emit("[INFO] ", format, args...)
}

// Warn prints a warning message if verbose mode is enabled.
func Warn(format string, args ...any) {
	emit("[WARN] ", format, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	emit("\n", "=== %s ===", name)
}

// Stage prints a section header and returns a function that reports how
// long the stage took. Typical use:
//
//	done := logger.Stage("Chunk Extraction")
//	...
//	done()
func Stage(name string) func() {
	Section(name)
	start := now()
	return func() {
		Info("%s finished in %s", name, now().Sub(start).Round(time.Millisecond))
	}
}

// Progress reports completion of item out of total for a stage.
func Progress(stage string, done, total int) {
	emit("[DEBUG] ", "%s %d/%d", stage, done, total)
}
