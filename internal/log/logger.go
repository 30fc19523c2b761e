package log

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// New builds a zerolog logger at the given level (debug, info, warn, error),
// writing a console-formatted stream to stdout and, when path is non-empty,
// additionally to that file.
func New(level, path string) (*zerolog.Logger, error) {
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lvl := parseLevel(level)
	console := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}

	var w io.Writer = console
	if path != "" {
		f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, err
		}
		w = zerolog.MultiLevelWriter(console, f)
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	return &logger, nil
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
