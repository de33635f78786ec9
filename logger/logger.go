// Package logger configures the process-wide structured logger shared by
// bigfield components.
//
// The default logger writes through a zerolog console writer. Test binaries
// get a no-op logger so log lines cannot leak into example output, unless
// the debug build tag re-enables them. The BIGFIELD_LOG environment variable
// selects the level ("debug", "info", "warn", ...).
package logger

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zkfield/bigfield/debug"
)

var logger zerolog.Logger

func init() {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: "15:04:05"}
	logger = zerolog.New(output).With().Timestamp().Logger()

	if lvl, err := zerolog.ParseLevel(os.Getenv("BIGFIELD_LOG")); err == nil && lvl != zerolog.NoLevel {
		logger = logger.Level(lvl)
	}
	if !debug.Debug && strings.HasSuffix(os.Args[0], ".test") {
		logger = zerolog.Nop()
	}
}

// Logger returns the process-wide logger.
func Logger() zerolog.Logger {
	return logger
}

// With returns a child of the process-wide logger tagged with a component
// name.
func With(component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// Set replaces the process-wide logger; zerolog.Nop() silences it.
func Set(l zerolog.Logger) {
	logger = l
}

// SetOutput redirects the process-wide logger.
func SetOutput(w io.Writer) {
	logger = logger.Output(w)
}

// Disable silences the process-wide logger.
func Disable() {
	logger = zerolog.Nop()
}
