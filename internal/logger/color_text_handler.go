package logger

import (
	"context"
	"io"
	"log/slog"
)

// ColorTextHandler wraps slog.TextHandler and prefixes the message with an
// ANSI-colored level tag.
type ColorTextHandler struct {
	*slog.TextHandler
}

func NewColorTextHandler(w io.Writer, opts *slog.HandlerOptions) *ColorTextHandler {
	return &ColorTextHandler{TextHandler: slog.NewTextHandler(w, opts)}
}

// Handle implements slog.Handler.
func (h *ColorTextHandler) Handle(ctx context.Context, r slog.Record) error {
	var code string
	switch r.Level {
	case slog.LevelDebug:
		code = "\033[36m" // cyan
	case slog.LevelInfo:
		code = "\033[32m" // green
	case slog.LevelWarn:
		code = "\033[33m" // yellow
	case slog.LevelError:
		code = "\033[31m" // red
	default:
		code = "\033[0m"
	}
	r.Message = code + r.Level.String() + "\033[0m  " + r.Message
	return h.TextHandler.Handle(ctx, r)
}
