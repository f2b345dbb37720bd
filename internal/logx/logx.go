// Package logx holds the pslog helpers shared by the toolkit packages.
package logx

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"pkt.systems/pslog"
)

// Discard returns a logger that drops everything below error level into
// io.Discard. Packages use it when the caller supplied no logger.
func Discard() pslog.Logger {
	return pslog.NewWithOptions(io.Discard, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: pslog.ErrorLevel,
	})
}

// Or returns log, or a discarding logger when log is nil.
func Or(log pslog.Logger) pslog.Logger {
	if log == nil {
		return Discard()
	}
	return log
}

// Ctx returns the logger bound to ctx.
func Ctx(ctx context.Context) pslog.Logger {
	return pslog.Ctx(ctx)
}

// WithPane annotates the logger with a pane title when it has one.
func WithPane(log pslog.Logger, title string) pslog.Logger {
	if title != "" {
		log = log.With("pane", title)
	}
	return log
}

// OpenFile opens path for appending, creating parent directories. The TUI owns
// the terminal, so log output goes to a file instead of stderr.
func OpenFile(path string) (*os.File, error) {
	if path == "" {
		return nil, fmt.Errorf("log file path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

// New builds the structured file logger used by the binary.
func New(w io.Writer, debug bool) pslog.Logger {
	level := pslog.InfoLevel
	if debug {
		level = pslog.DebugLevel
	}
	return pslog.NewWithOptions(w, pslog.Options{
		Mode:     pslog.ModeStructured,
		NoColor:  true,
		MinLevel: level,
	})
}
