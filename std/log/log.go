package log

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"sync/atomic"
)

// Logger wraps a slog.Logger with the package's own Level type so callers
// can compare against LevelTrace..LevelFatal without importing log/slog.
type Logger struct {
	inner *slog.Logger
	level *atomic.Int64
}

var (
	defaultOnce sync.Once
	defaultLog  *Logger
)

// Default returns the process-wide logger, creating it on first use with
// LevelInfo and a text handler writing to stderr.
func Default() *Logger {
	defaultOnce.Do(func() {
		defaultLog = newLogger(LevelInfo, os.Stderr)
	})
	return defaultLog
}

func newLogger(level Level, w *os.File) *Logger {
	lvl := &atomic.Int64{}
	lvl.Store(int64(level))
	// The handler passes everything; l.level, which SetLevel adjusts, is
	// the only filter.
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.Level(LevelTrace),
	})
	return &Logger{inner: slog.New(h), level: lvl}
}

// SetLevel adjusts the minimum level the default logger emits.
func SetLevel(level Level) {
	d := Default()
	d.level.Store(int64(level))
}

// Level returns the default logger's current minimum level.
func (l *Logger) Level() Level {
	return Level(l.level.Load())
}

// who identifies the module or object emitting the log line. If it
// implements fmt.Stringer that is used, otherwise %v.
func moduleName(who any) string {
	if who == nil {
		return ""
	}
	if s, ok := who.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("%v", who)
}

func (l *Logger) log(level Level, who any, msg string, kv ...any) {
	if level < l.Level() {
		return
	}
	args := make([]any, 0, len(kv)+2)
	if m := moduleName(who); m != "" {
		args = append(args, "module", m)
	}
	args = append(args, kv...)
	l.inner.Log(context.Background(), slog.Level(level), msg, args...)
}

func Trace(who any, msg string, kv ...any) { Default().log(LevelTrace, who, msg, kv...) }
func Debug(who any, msg string, kv ...any) { Default().log(LevelDebug, who, msg, kv...) }
func Info(who any, msg string, kv ...any)  { Default().log(LevelInfo, who, msg, kv...) }
func Warn(who any, msg string, kv ...any)  { Default().log(LevelWarn, who, msg, kv...) }
func Error(who any, msg string, kv ...any) { Default().log(LevelError, who, msg, kv...) }

// Fatal logs at LevelFatal and terminates the process, matching the
// convention that fatal errors are unrecoverable configuration
// or startup failures, not protocol-runtime errors.
func Fatal(who any, msg string, kv ...any) {
	Default().log(LevelFatal, who, msg, kv...)
	os.Exit(1)
}
