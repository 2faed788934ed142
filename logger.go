package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// loggerContextKey is the context key for the logger instance.
type loggerContextKey struct{}

// newLogger creates a human readable logger writing into w with the named level.
// Unknown level means "info". Timestamps are shown in loc, nil means local time.
func newLogger(w io.Writer, level string, loc *time.Location) zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:          w,
		TimeFormat:   time.RFC3339,
		TimeLocation: loc,
		NoColor:      w != os.Stdout && w != os.Stderr,
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger()
}

// withLogger adds the logger to the context.
func withLogger(ctx context.Context, log zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerContextKey{}, log)
}

// loggerFromContext retrieves the logger from the context or returns a disabled one.
func loggerFromContext(ctx context.Context) zerolog.Logger {
	if log, ok := ctx.Value(loggerContextKey{}).(zerolog.Logger); ok {
		return log
	}
	return zerolog.Nop()
}
