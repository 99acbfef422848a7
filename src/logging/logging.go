// Package logging creates the logger used throughout the program. The logger
// is passed explicitly to everything which needs it.
package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// ErrUnknownLevel is returned for log levels which zerolog does not know.
var ErrUnknownLevel = errors.New("unknown log level")

// Options holds the logger configuration.
type Options struct {
	// Level is the minimum level which is logged: trace, debug, info, warn
	// or error.
	Level string

	// Verbose is a shortcut for the debug level. An explicit Level wins.
	Verbose bool

	// Output is where the logs are written. Terminals get human-readable
	// output, everything else gets JSON lines.
	Output io.Writer
}

// New returns a logger configured with opts.
func New(opts Options) (zerolog.Logger, error) {
	level, err := parseLevel(opts)
	if err != nil {
		return zerolog.Nop(), err
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if isTerminal(out) {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: time.Kitchen,
			NoColor:    os.Getenv("NO_COLOR") != "",
		}
	}

	logger := zerolog.New(out).
		Level(level).
		With().
		Timestamp().
		Logger()

	if level <= zerolog.DebugLevel {
		logger = logger.With().Caller().Logger()
	}

	return logger, nil
}

func parseLevel(opts Options) (zerolog.Level, error) {
	if opts.Level == "" {
		if opts.Verbose {
			return zerolog.DebugLevel, nil
		}
		return zerolog.InfoLevel, nil
	}

	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %q", ErrUnknownLevel, opts.Level)
	}

	return level, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
