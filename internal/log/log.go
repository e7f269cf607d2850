// Package log configures structured logging for the housing CLI using log/slog.
package log

import (
	"io"
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
)

// Setup configures the default slog logger based on verbosity flags.
//
//   - quiet mode:   only WARN and ERROR messages
//   - normal mode:  INFO and above
//   - verbose mode: DEBUG and above
//
// Output is written to stderr through a tint console handler.
func Setup(verbose, quiet, noColor bool) {
	slog.SetDefault(New(os.Stderr, verbose, quiet, noColor))
}

// New builds a logger writing to w with the same level rules as Setup.
func New(w io.Writer, verbose, quiet, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      Level(verbose, quiet),
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
}

// Level maps the verbosity flags to a slog level. Quiet wins over verbose.
func Level(verbose, quiet bool) slog.Level {
	switch {
	case quiet:
		return slog.LevelWarn
	case verbose:
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}
