package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Setup configures the global zerolog logger. format is "console" (the
// default, human-readable) or "json". An unknown level is reported and info
// is used instead.
func Setup(level, format string) error {
	return setup(os.Stdout, level, format)
}

func setup(out io.Writer, level, format string) error {
	// Timestamp format
	zerolog.TimeFieldFormat = time.RFC3339

	var w io.Writer = out
	switch strings.ToLower(format) {
	case "", "console":
		w = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = out
			cw.TimeFormat = time.RFC3339
		})
	case "json":
	default:
		return fmt.Errorf("unknown log format %q", format)
	}

	log.Logger = zerolog.New(w).With().Timestamp().Logger()
	// Contexts without a request logger fall back to the global one.
	zerolog.DefaultContextLogger = &log.Logger

	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		if err != nil {
			return fmt.Errorf("unknown log level %q: %w", level, err)
		}
		return nil
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}
