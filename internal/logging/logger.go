// Package logging builds the CLI's structured logger.
package logging

import (
	"io"
	"log/slog"
)

// New returns a text logger writing to w at level. The "error" key is
// renamed to "err" so records look the same whichever key callers use.
func New(w io.Writer, level slog.Level) *slog.Logger {
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

// NewNop returns a logger that drops everything.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Level maps the CLI's verbosity to a level: warnings only by default,
// everything with verbose.
func Level(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
