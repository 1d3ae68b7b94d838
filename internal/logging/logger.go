package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// New builds the process logger. Output goes to stderr so the CSV table on
// stdout stays machine readable. Format is "console" for human runs or
// "json" for pipelines.
func New(level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}

	var out io.Writer
	switch format {
	case "console":
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	case "json":
		out = os.Stderr
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q: must be json or console", format)
	}

	return zerolog.New(out).With().Timestamp().Logger().Level(lvl), nil
}
