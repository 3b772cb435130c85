package log

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New builds the server logger writing human-readable console output to w.
// Unknown level strings fall back to info.
func New(w io.Writer, level string) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	output := zerolog.ConsoleWriter{
		Out:        w,
		TimeFormat: time.RFC3339,
	}

	logger := zerolog.New(output).
		Level(lvl).
		With().
		Timestamp().
		Str("service", "chat-relay").
		Logger()
	return &logger
}
