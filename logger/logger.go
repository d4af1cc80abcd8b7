package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	zlog "github.com/rs/zerolog/log"
)

// Options configures the root logger.
type Options struct {
	Level  string
	Format string // json or console
	Output io.Writer
}

// New builds the root logger and installs it as the zerolog global.
func New(opts Options) zerolog.Logger {
	var out io.Writer = opts.Output
	if out == nil {
		out = os.Stdout
	}
	if strings.EqualFold(opts.Format, "console") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	zerolog.TimeFieldFormat = time.RFC3339Nano

	l := zerolog.New(out).
		With().
		Timestamp().
		Str("service", "quotedesk").
		Logger().
		Level(ParseLevel(opts.Level))

	zlog.Logger = l
	zerolog.DefaultContextLogger = &l
	return l
}

func ParseLevel(value string) zerolog.Level {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" {
		return zerolog.InfoLevel
	}
	if lvl, err := zerolog.ParseLevel(value); err == nil {
		return lvl
	}
	return zerolog.InfoLevel
}
