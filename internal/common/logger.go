package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
)

// ParseLevel converts a level name to an slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid log level: %s", level)
	}
}

// SetupLogger configures the global logger with appropriate settings.
// A nil writer logs to stderr.
func SetupLogger(w io.Writer, level slog.Level, format string) error {
	if w == nil {
		w = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch format {
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	case "console", "text", "":
		handler = slog.NewTextHandler(w, opts)
	default:
		return fmt.Errorf("invalid log format: %s", format)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

// Diagnostics receives faults that are logged but never shown to the operator.
type Diagnostics interface {
	Fault(component, operation string, err error)
}

// SlogDiagnostics writes faults to an slog logger.
type SlogDiagnostics struct {
	Logger *slog.Logger
}

// Fault implements Diagnostics.
func (d SlogDiagnostics) Fault(component, operation string, err error) {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	attrs := []slog.Attr{
		slog.String("component", component),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	}
	var t *TransportError
	if errors.As(err, &t) && t.RequestID != "" {
		attrs = append(attrs, slog.String("request_id", t.RequestID))
	}

	logger.LogAttrs(context.Background(), slog.LevelError, "operation fault", attrs...)
}
