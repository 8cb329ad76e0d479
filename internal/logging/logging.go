package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/thoreinstein/nmlk/internal/errors"
)

// Format specifies the output format for log messages.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
)

// LevelTrace is below Debug and logs individual file operations.
const LevelTrace = slog.Level(-8)

// Log file rotation limits.
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 28
)

// Config holds the configuration for creating a new logger.
type Config struct {
	// Level sets the minimum log level. Messages below this level are discarded.
	Level slog.Level
	// Format specifies the output format (text or JSON).
	Format Format
	// Output is where log messages are written. Defaults to os.Stderr if nil.
	Output io.Writer
}

// New creates a logger with the given configuration.
func New(cfg Config) *slog.Logger {
	return slog.New(newHandler(cfg))
}

func newHandler(cfg Config) slog.Handler {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	opts := &slog.HandlerOptions{Level: cfg.Level, ReplaceAttr: redact}
	if cfg.Format == FormatJSON {
		return slog.NewJSONHandler(output, opts)
	}
	return NewHandler(output, opts)
}

// Options describes the logger assembled by Setup.
type Options struct {
	Verbosity int
	Quiet     bool
	Format    Format
	Output    io.Writer
	// File, when set, receives JSON logs through a rotating writer.
	File string
}

// Setup builds the CLI logger: the console handler plus, when File is set,
// a JSON file handler. The returned closer releases the log file.
func Setup(opts Options) (*slog.Logger, io.Closer, error) {
	switch opts.Format {
	case "", FormatText, FormatJSON:
	default:
		return nil, nil, errors.Newf("unknown log format %q (valid: text, json)", opts.Format)
	}

	level := LevelFromVerbosity(opts.Verbosity)
	if opts.Quiet {
		level = slog.LevelError
	}

	console := newHandler(Config{Level: level, Format: opts.Format, Output: opts.Output})
	if opts.File == "" {
		return slog.New(console), nopCloser{}, nil
	}

	w := NewFileWriter(opts.File)
	// The file always records at least info so a quiet run still leaves a trail.
	fileLevel := min(level, slog.LevelInfo)
	file := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: fileLevel, ReplaceAttr: redact})

	return slog.New(tee{console, file}), w, nil
}

// NewFileWriter returns a size-rotated writer for path.
func NewFileWriter(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    maxLogSizeMB,
		MaxBackups: maxLogBackups,
		MaxAge:     maxLogAgeDays,
	}
}

// LevelFromVerbosity maps the count of -v flags to a level.
// 0 is Warn, 1 is Info, 2 is Debug and 3 or more is Trace.
func LevelFromVerbosity(v int) slog.Level {
	switch {
	case v <= 0:
		return slog.LevelWarn
	case v == 1:
		return slog.LevelInfo
	case v == 2:
		return slog.LevelDebug
	default:
		return LevelTrace
	}
}

// NewDiscard creates a logger that discards all output.
func NewDiscard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying logger.
func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, logger)
}

// FromContext returns the logger stored in ctx, or slog.Default.
func FromContext(ctx context.Context) *slog.Logger {
	if ctx != nil {
		if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok && l != nil {
			return l
		}
	}
	return slog.Default()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// testWriter adapts testing.T to io.Writer for use with slog handlers.
type testWriter struct {
	t testing.TB
}

func (w *testWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	msg := string(p)
	if len(msg) > 0 && msg[len(msg)-1] == '\n' {
		msg = msg[:len(msg)-1]
	}
	w.t.Log(msg)
	return len(p), nil
}

// ForTest creates a Debug-level logger that writes to the test's log output.
func ForTest(t testing.TB) *slog.Logger {
	t.Helper()
	return New(Config{
		Level:  slog.LevelDebug,
		Format: FormatText,
		Output: &testWriter{t: t},
	})
}
