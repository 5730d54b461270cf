// Package logging builds the zerolog loggers used by the CLI and the server.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config defines logging behavior
type Config struct {
	Level        string `json:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format       string `json:"format" yaml:"format" validate:"omitempty,oneof=json pretty"`
	TimeFormat   string `json:"time_format" yaml:"time_format"`
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"`
}

// New creates a logger writing to w. An unknown level falls back to info.
func New(config Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(config.Level)
	if err != nil || config.Level == "" {
		level = zerolog.InfoLevel
	}

	timeFormat := config.TimeFormat
	if timeFormat == "" {
		timeFormat = time.RFC3339
	}

	output := w
	if config.Format == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        w,
			TimeFormat: timeFormat,
			NoColor:    w != os.Stdout && w != os.Stderr,
		}
	}

	ctx := zerolog.New(output).Level(level).With().Timestamp()
	if config.ReportCaller {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Init replaces the global logger with one built from config, writing to stderr
func Init(config Config) zerolog.Logger {
	if config.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = config.TimeFormat
	}
	log.Logger = New(config, os.Stderr)
	return log.Logger
}

// Ctx returns the logger stored in ctx, or the global logger
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}

// WithContext stores logger in ctx
func WithContext(ctx context.Context, logger zerolog.Logger) context.Context {
	return logger.WithContext(ctx)
}
