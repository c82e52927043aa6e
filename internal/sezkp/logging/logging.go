// Package logging provides the structured, leveled logging the streaming
// façade and the fold driver attach diagnostics to. A zero-value Logger is
// zerolog.Nop(), so library use without an injected logger stays silent —
// the same optional-diagnostics posture the corpus's own zerolog users
// follow (a caller opts in by calling New, not by the library defaulting
// to noisy output).
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Nop is the silent logger every package in this module defaults to.
var Nop = zerolog.Nop()

// New builds a console-writer zerolog.Logger at level, for callers (CLIs,
// tests) that want human-readable diagnostics instead of the default
// silence. Passing io.Discard-backed w is equivalent to Nop but keeps the
// caller's level filtering.
func New(w io.Writer, level zerolog.Level) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: "15:04:05"}).
		Level(level).
		With().Timestamp().Logger()
}

// BlockEvent attaches a block's index and tape count to event, so a reader
// can correlate a log line with the σ_k it was emitted for. The fold
// driver's and façade's own block log lines do not call it and carry only
// block_id.
func BlockEvent(event *zerolog.Event, blockID uint32, tau int) *zerolog.Event {
	return event.Uint32("block_id", blockID).Int("tau", tau)
}

// FoldSpanEvent attaches the fields a fold-merge log line carries: the
// half-open interval of block indices the merge spans.
func FoldSpanEvent(event *zerolog.Event, lo, hi uint32) *zerolog.Event {
	return event.Uint32("span_lo", lo).Uint32("span_hi", hi)
}
