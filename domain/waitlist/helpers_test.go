package waitlist

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/akeren/commit-waitlist/internal/log"
)

func quietLogger() *log.Logger {
	return log.NewLoggerWithWriter(io.Discard, slog.LevelError)
}

func capturingLogger() (*log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewLoggerWithWriter(&buf, slog.LevelDebug), &buf
}
