package logger

import (
	"io"
	"log/slog"
	"os"
)

// SetupPrettySlog returns a human readable debug logger for local runs.
func SetupPrettySlog() *slog.Logger {
	return NewText(os.Stdout, slog.LevelDebug)
}

func NewText(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level == slog.LevelDebug,
	}))
}

// Discard is handy in tests where log output is noise.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}
