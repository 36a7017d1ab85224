package logging

import (
	"io"
	"log/slog"
)

// NewLogger creates the root JSON logger for a process
func NewLogger(w io.Writer, level slog.Level, attrs ...slog.Attr) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(NewTraceLogHandler(handler.WithAttrs(attrs)))
}
