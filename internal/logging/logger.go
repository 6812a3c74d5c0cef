package logging

import (
	"io"
	"log/slog"
	"os"
)

// New creates the application logger at the given level. Output goes to
// Stderr so Stdout stays clean for transports that own it, like the MCP
// stdio server.
func New(level slog.Level) *slog.Logger {
	return NewWithWriter(os.Stderr, level)
}

// NewWithWriter creates a logger writing text records to w. Attribute keys
// are normalized through rewriteAttr.
func NewWithWriter(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: rewriteAttr,
	}))
}

// NewNop returns a logger that discards every record.
func NewNop() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// rewriteAttr standardizes common keys ("error" -> "err").
func rewriteAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}
