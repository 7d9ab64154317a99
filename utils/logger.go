package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger provides leveled logging throughout the application.
type Logger struct {
	zl zerolog.Logger
}

// LogOptions selects the level, format and destination of a Logger.
type LogOptions struct {
	Level  string // debug, info, warn, error
	Format string // console or json
	Output io.Writer
}

// NewLogger creates a console Logger at info level writing to stdout.
func NewLogger() *Logger {
	return NewLoggerWithOptions(LogOptions{Level: "info", Format: "console", Output: os.Stdout})
}

// NewLoggerWithOptions creates a Logger from explicit options.
func NewLoggerWithOptions(opts LogOptions) *Logger {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	if !strings.EqualFold(opts.Format, "json") {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.DateTime}
	}
	zl := zerolog.New(out).Level(parseLevel(opts.Level)).With().Timestamp().Logger()
	return &Logger{zl: zl}
}

// With returns a child Logger that adds key=value to every line.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{zl: l.zl.With().Str(key, value).Logger()}
}

func (l *Logger) Info(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

func (l *Logger) Warn(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

func (l *Logger) Error(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

func (l *Logger) Debug(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}
