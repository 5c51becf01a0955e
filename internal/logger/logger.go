// Package logger provides leveled diagnostics for the modelcheck CLI.
// Debug and Info lines are emitted only when verbose mode is enabled via
// the --verbose flag; Warn lines are always emitted, since they record
// degraded behaviour (missing embeddings, cache write failures) the user
// should see regardless of verbosity.
package logger

import (
	"fmt"
	"io"
	"os"
	"sync"
)

type level string

const (
	levelDebug level = "DEBUG"
	levelInfo  level = "INFO"
	levelWarn  level = "WARN"
)

var state = struct {
	mu      sync.RWMutex
	verbose bool
	out     io.Writer
}{out: os.Stderr}

// SetVerbose enables or disables debug and info output.
func SetVerbose(v bool) {
	state.mu.Lock()
	state.verbose = v
	state.mu.Unlock()
}

// IsVerbose reports whether verbose mode is enabled.
func IsVerbose() bool {
	state.mu.RLock()
	defer state.mu.RUnlock()
	return state.verbose
}

// SetOutput redirects log output. Defaults to os.Stderr.
func SetOutput(w io.Writer) {
	state.mu.Lock()
	state.out = w
	state.mu.Unlock()
}

func emit(lvl level, gated bool, format string, args ...any) {
	state.mu.RLock()
	defer state.mu.RUnlock()
	if gated && !state.verbose {
		return
	}
	fmt.Fprintf(state.out, "["+string(lvl)+"] "+format+"\n", args...)
}

// Debug records pipeline detail. Verbose mode only.
func Debug(format string, args ...any) {
	emit(levelDebug, true, format, args...)
}

// Info records a completed operation. Verbose mode only.
func Info(format string, args ...any) {
	emit(levelInfo, true, format, args...)
}

// Warn records degraded behaviour. Always emitted.
func Warn(format string, args ...any) {
	emit(levelWarn, false, format, args...)
}
