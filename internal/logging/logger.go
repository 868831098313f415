package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger with simulation field names.
type Logger struct {
	*slog.Logger
}

// New creates a Logger with the given handler.
// If handler is nil, uses a text handler to stderr at info level.
func New(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewText creates a Logger that writes human-readable text to w.
func NewText(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSON creates a Logger that writes JSON lines to w.
func NewJSON(w io.Writer, level slog.Level) *Logger {
	return New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Noop creates a Logger that discards all output.
func Noop() *Logger {
	return New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000),
	}))
}

// FromFlags builds a Logger from the --log-format and --log-level values.
func FromFlags(w io.Writer, format, level string) (*Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	switch strings.ToLower(format) {
	case "text", "":
		return NewText(w, lvl), nil
	case "json":
		return NewJSON(w, lvl), nil
	default:
		return nil, fmt.Errorf("unknown log format %q (want text or json)", format)
	}
}

// WithRun tags every record with the run identifier.
func (l *Logger) WithRun(id string) *Logger {
	return &Logger{Logger: l.Logger.With("run", id)}
}

// WithModel tags every record with the model name and state dimension.
func (l *Logger) WithModel(model string, dim int) *Logger {
	return &Logger{Logger: l.Logger.With("model", model, "dimension", dim)}
}

// LogRunStart logs the start of a fixed-step run.
func (l *Logger) LogRunStart(ctx context.Context, dt, duration float64, steps int) {
	l.InfoContext(ctx, "run started",
		"dt", dt,
		"duration", duration,
		"steps", steps,
	)
}

// LogRunEnd logs the outcome of a run.
func (l *Logger) LogRunEnd(ctx context.Context, steps int, t float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "run stopped",
			"steps", steps,
			"t", t,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "run completed",
			"steps", steps,
			"t", t,
		)
	}
}

// LogStepFailure logs a step that could not be taken.
func (l *Logger) LogStepFailure(ctx context.Context, step int, t float64, err error) {
	l.ErrorContext(ctx, "step failed",
		"step", step,
		"t", t,
		"error", err,
	)
}
