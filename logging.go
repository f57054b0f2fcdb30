package headlessterm

import (
	"io"
	"log/slog"
)

// defaultLogger is used when a Terminal is constructed without WithLogger.
// It discards everything, so an embedder pays nothing for diagnostics
// unless they opt in. Library code logs at warn level only, for malformed
// input the dispatcher chooses to ignore rather than fail on (see ERROR
// HANDLING in doc.go).
var defaultLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// WithLogger sets the structured logger used for warn-level diagnostics
// about malformed or unsupported escape sequences. Defaults to a discard
// logger if not set.
func WithLogger(l *slog.Logger) Option {
	return func(t *Terminal) {
		t.logger = l
	}
}
