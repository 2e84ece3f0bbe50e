// Package logging builds the zerolog loggers used by the pngmin command.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
)

// Level maps a -v count to a log level: warnings by default, info from 1, debug
// from 3.
func Level(verbosity int) zerolog.Level {
	switch {
	case verbosity >= 3:
		return zerolog.DebugLevel
	case verbosity >= 1:
		return zerolog.InfoLevel
	default:
		return zerolog.WarnLevel
	}
}

// New returns a logger writing to w at the level for verbosity.
//
// Output is JSON when jsonOutput is set, and a console format otherwise; colors are
// used only when w is a terminal.
func New(w io.Writer, verbosity int, jsonOutput bool) zerolog.Logger {
	out := w
	if !jsonOutput {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !isTerminal(w),
			TimeFormat: time.TimeOnly,
		}
	}

	return zerolog.New(out).Level(Level(verbosity)).With().Timestamp().Logger()
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
