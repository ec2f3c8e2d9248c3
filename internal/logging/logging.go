package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

var (
	level    = new(slog.LevelVar)
	disabled atomic.Bool
	logger   atomic.Pointer[slog.Logger]
)

func init() {
	SetOutput(os.Stderr)
}

// SetOutput replaces the log destination. Colors are used only when w is a
// terminal.
func SetOutput(w io.Writer) {
	h := tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    !isTerminal(w),
	})
	logger.Store(slog.New(h))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetLevel parses "debug", "info", "warn" or "error" and applies it.
func SetLevel(s string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return fmt.Errorf("invalid log level %q", s)
	}
	level.Set(l)
	return nil
}

// Disable turns off all logging
func Disable() {
	disabled.Store(true)
}

// Enable turns logging back on
func Enable() {
	disabled.Store(false)
}

// Logger returns the underlying structured logger.
func Logger() *slog.Logger {
	return logger.Load()
}

// Info logs an info message with optional key/value pairs
func Info(msg string, args ...any) {
	if !disabled.Load() {
		Logger().Info(msg, args...)
	}
}

// Warn logs a warning
func Warn(msg string, args ...any) {
	if !disabled.Load() {
		Logger().Warn(msg, args...)
	}
}

// Error logs an error message
func Error(msg string, args ...any) {
	if !disabled.Load() {
		Logger().Error(msg, args...)
	}
}

// Debug logs a debug message, dropped unless the level is debug
func Debug(msg string, args ...any) {
	if !disabled.Load() {
		Logger().Debug(msg, args...)
	}
}
