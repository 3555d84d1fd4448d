// Package logger configures the process-wide zerolog logger.
package logger

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is the global logger; Init replaces it
var Logger = log.Logger

// Config controls logger behaviour
type Config struct {
	Level        string `json:"level" yaml:"level"`                 // debug, info, warn, error
	Format       string `json:"format" yaml:"format"`               // json or pretty
	TimeFormat   string `json:"time_format" yaml:"time_format"`     // defaults to RFC3339
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"` // include file:line
}

// Init configures the global logger, writing to stdout
func Init(cfg Config) {
	InitWithWriter(cfg, os.Stdout)
}

// InitWithWriter configures the global logger with an explicit output
func InitWithWriter(cfg Config, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	output := out
	if cfg.Format == "pretty" {
		output = zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat}
	}

	ctxLogger := zerolog.New(output).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		ctxLogger = ctxLogger.Caller()
	}

	Logger = ctxLogger.Logger()
	log.Logger = Logger
}

// Debug starts a debug-level event
func Debug() *zerolog.Event {
	return Logger.Debug()
}

// Info starts an info-level event
func Info() *zerolog.Event {
	return Logger.Info()
}

// Warn starts a warn-level event
func Warn() *zerolog.Event {
	return Logger.Warn()
}

// Error starts an error-level event
func Error() *zerolog.Event {
	return Logger.Error()
}

// Ctx returns the logger stored in ctx, or a disabled logger
func Ctx(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}

// WithContext attaches the global logger to ctx
func WithContext(ctx context.Context) context.Context {
	return Logger.WithContext(ctx)
}
