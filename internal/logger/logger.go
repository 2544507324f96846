package logger

import (
	"io"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger writing to w when debug is set, and a
// disabled logger otherwise. Diagnostics never go to stdout.
func New(debug bool, w io.Writer) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	output := zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339, NoColor: true}
	return zerolog.New(output).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}
