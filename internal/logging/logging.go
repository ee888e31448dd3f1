// Package logging configures the global zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/rs/zerolog/pkgerrors"
	"golang.org/x/term"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger initialization.
type Options struct {
	// Level is one of debug, info, warn, error. Unknown values mean info.
	Level string
	// File enables rotated file output at the given path.
	File string
}

// Init configures the global logger: rotated file output when a path is
// given, plus a pretty console writer when stderr is a terminal.
func Init(opts Options) error {
	var writers []io.Writer

	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}
		writers = append(writers, &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    1,
			MaxBackups: 2,
		})
	}

	if term.IsTerminal(int(os.Stderr.Fd())) {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stderr})
	} else if len(writers) == 0 {
		writers = append(writers, os.Stderr)
	}

	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.SetGlobalLevel(ParseLevel(opts.Level))
	log.Logger = log.Output(io.MultiWriter(writers...)).With().Timestamp().Caller().Logger()

	return nil
}

// ParseLevel maps a config level name to a zerolog level.
func ParseLevel(s string) zerolog.Level {
	switch s {
	case "debug":
		return zerolog.DebugLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
