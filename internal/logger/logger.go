// Package logger builds the slog loggers used by the desktop hooks.
//
// stdout belongs to the host process (the bar or the terminal), so logs never
// go there. Interactive runs log to stderr in colour; runs spawned by a host
// write JSON lines to a rotated file:
//
//	<logDir>/deskhooks.log
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "deskhooks.log"

// New returns a logger for the current process. When stderr is a terminal the
// logger writes coloured text there; otherwise it writes JSON to <logDir>/deskhooks.log.
func New(logDir string, level slog.Level) (*slog.Logger, error) {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return NewConsoleLogger(os.Stderr, level), nil
	}
	return NewFileLogger(logDir, level)
}

// NewConsoleLogger creates a tint-formatted slog.Logger writing to w.
func NewConsoleLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
	}))
}

// NewFileLogger creates a JSON slog.Logger that writes to <logDir>/deskhooks.log.
// The directory is created if it does not exist and the file is rotated by size.
func NewFileLogger(logDir string, level slog.Level) (*slog.Logger, error) {
	if err := os.MkdirAll(logDir, 0750); err != nil {
		return nil, fmt.Errorf("creating log directory %q: %w", logDir, err)
	}

	w := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, logFileName),
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		MaxAge:     28,
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), nil
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
