package logger

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/ekisa-team/speeddial/internal/env"
	"github.com/ekisa-team/speeddial/internal/xfs"
)

const (
	defaultLogFile    = "logs/speeddial.log"
	defaultMaxSizeMB  = 10
	defaultMaxBackups = 5
	defaultMaxAgeDays = 28
)

type options struct {
	level     *slog.LevelVar
	console   io.Writer
	logFile   string
	logToFile bool
}

// Option configures the logger.
type Option func(*options)

// WithLogToFile enables or disables the rotating log file.
func WithLogToFile(enabled bool) Option {
	return func(o *options) {
		o.logToFile = enabled
	}
}

// WithLogFile sets the rotating log file path. A leading ~ is expanded.
func WithLogFile(path string) Option {
	return func(o *options) {
		o.logFile = path
	}
}

// WithLevel shares a level variable with the logger so the level can be
// changed at runtime.
func WithLevel(level *slog.LevelVar) Option {
	return func(o *options) {
		o.level = level
	}
}

// WithConsole replaces the console writer (stderr by default).
func WithConsole(w io.Writer) Option {
	return func(o *options) {
		o.console = w
	}
}

// New builds the application logger. Development uses a colored console
// handler, production and test write JSON. When file logging is enabled,
// records are also written as JSON to a rotating file.
func New(environment env.Environment, opts ...Option) *slog.Logger {
	o := options{
		console: os.Stderr,
		logFile: defaultLogFile,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.level == nil {
		o.level = new(slog.LevelVar)
		if !environment.IsProduction() {
			o.level.Set(slog.LevelDebug)
		}
	}

	var console slog.Handler
	if environment == env.Development {
		console = tint.NewHandler(o.console, &tint.Options{
			Level:      o.level,
			TimeFormat: time.Kitchen,
		})
	} else {
		console = slog.NewJSONHandler(o.console, &slog.HandlerOptions{Level: o.level})
	}

	if !o.logToFile {
		return slog.New(console)
	}

	path := xfs.ExpandTilde(o.logFile)
	if err := xfs.EnsureParentDir(path); err != nil {
		logger := slog.New(console)
		logger.Warn("Failed to create log directory, logging to console only", "path", path, "error", err)
		return logger
	}

	file := slog.NewJSONHandler(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    defaultMaxSizeMB,
		MaxBackups: defaultMaxBackups,
		MaxAge:     defaultMaxAgeDays,
		Compress:   true,
	}, &slog.HandlerOptions{Level: o.level})

	return slog.New(fanout{console, file})
}

// ParseLevel parses a level name such as "debug" or "warn".
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo, errors.Join(errors.New("invalid log level"), err)
	}

	return level, nil
}

// fanout sends every record to all handlers.
type fanout []slog.Handler

func (f fanout) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range f {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (f fanout) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range f {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (f fanout) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (f fanout) WithGroup(name string) slog.Handler {
	out := make(fanout, len(f))
	for i, h := range f {
		out[i] = h.WithGroup(name)
	}
	return out
}
