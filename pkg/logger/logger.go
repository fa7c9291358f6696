package logger

import (
	"io"
	"log/slog"
	"os"
)

var Log = slog.New(slog.NewJSONHandler(io.Discard, nil))

func Init() {
	InitWriter(os.Stdout)
}

// InitWriter sends JSON logs to w. The terminal UI points this at a file so
// log lines don't tear the screen.
func InitWriter(w io.Writer) {
	// JSON handler for production-ready logging
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	Log = slog.New(handler)
}
