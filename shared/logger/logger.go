package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New creates a JSON logger writing to stdout with the service name attached to every entry.
// An unknown level falls back to info.
func New(service, level string) *zerolog.Logger {
	return NewWithWriter(os.Stdout, service, level)
}

// NewWithWriter creates a logger like New but writes to w.
func NewWithWriter(w io.Writer, service, level string) *zerolog.Logger {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Str("service", service).
		Logger()

	return &logger
}
