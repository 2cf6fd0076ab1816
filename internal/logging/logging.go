// Package logging builds the slog loggers used by the noteboard binaries.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// New returns a text logger at the given level. When path is set, output goes
// to a size-capped file there instead of fallback. The returned closer must be
// called on shutdown.
func New(level, path string, fallback io.Writer) (*slog.Logger, io.Closer, error) {
	writer := fallback
	closer := io.Closer(nopCloser{})
	if path != "" {
		file, err := openCappedFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		writer = file
		closer = file
	}
	if writer == nil {
		writer = os.Stderr
	}

	logger := slog.New(slog.NewTextHandler(writer, &slog.HandlerOptions{
		Level: ParseLevel(level),
	}))
	return logger, closer, nil
}

// ParseLevel maps a config level name to a slog level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
