package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger on Stderr, keeping Stdout for diagrams
// and status lines.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a text logger on w.
// It standardizes common keys (e.g., "error" -> "err").
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == "error" {
				a.Key = "err"
			}
			return a
		},
	}))
}

// NewNop returns a no-op logger.
func NewNop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ForDebug returns a debug-level logger when debug is set and a no-op one otherwise.
func ForDebug(debug bool) *slog.Logger {
	if debug {
		return New(slog.LevelDebug)
	}
	return NewNop()
}
