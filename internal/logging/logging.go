// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dotse/slug"
	slogmulti "github.com/samber/slog-multi"
)

type Level string

const (
	Debug Level = "debug"
	Info  Level = "info"
	Warn  Level = "warn"
	Error Level = "error"
)

// ParseLevel maps a config string to a Level; unknown strings map to Info.
func ParseLevel(s string) Level {
	switch l := Level(strings.ToLower(strings.TrimSpace(s))); l {
	case Debug, Info, Warn, Error:
		return l
	default:
		return Info
	}
}

// ToSlogLevel maps our levels to the equivalent slog level.
func ToSlogLevel(level Level) slog.Level {
	switch level {
	case Debug:
		return slog.LevelDebug
	case Info:
		return slog.LevelInfo
	case Warn:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

// NewLogger builds a logger writing to every w in outputs.
func NewLogger(level Level, outputs ...io.Writer) *slog.Logger {
	opts := slug.HandlerOptions{
		HandlerOptions: slog.HandlerOptions{
			Level: ToSlogLevel(level),
		},
	}
	handlers := make([]slog.Handler, 0, len(outputs))
	for _, w := range outputs {
		handlers = append(handlers, slug.NewHandler(opts, w))
	}
	return slog.New(slogmulti.Fanout(handlers...))
}

// MustCreateLogger installs the default logger. Logs go to stderr, so they do
// not interleave with the dashboard on stdout, and also to logPath when set.
//
// Returns a cleanup function which should be called on program shutdown.
//
// Panics on failure to open the log file for writing.
func MustCreateLogger(level Level, logPath string) func() {
	closer := func() {}
	outputs := []io.Writer{os.Stderr}

	if logPath != "" {
		logFile, errLogFile := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if errLogFile != nil {
			panic(fmt.Sprintf("Failed to open logfile: %v", errLogFile))
		}
		closer = func() {
			if errClose := logFile.Close(); errClose != nil {
				panic(fmt.Sprintf("Failed to close log file: %v", errClose))
			}
		}
		outputs = append(outputs, logFile)
	}

	slog.SetDefault(NewLogger(level, outputs...))
	return closer
}

// Closer closes c and logs any error.
func Closer(c io.Closer) {
	if errClose := c.Close(); errClose != nil {
		slog.Error("Failed to close", slog.String("error", errClose.Error()))
	}
}
