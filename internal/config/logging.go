package config

import (
	"io"
	"log/slog"

	"git.home.luguber.info/inful/docsitecfg/internal/foundation"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = foundation.NewNormalizer(map[string]LogLevel{
	"debug":   LogLevelDebug,
	"info":    LogLevelInfo,
	"warn":    LogLevelWarn,
	"warning": LogLevelWarn,
	"error":   LogLevelError,
}, LogLevelInfo)

// ParseLogLevel case-folds raw and reports whether it names a level.
func ParseLogLevel(raw string) (LogLevel, bool) {
	return logLevels.Lookup(raw)
}

// SlogLevel maps the level onto slog.
func (l LogLevel) SlogLevel() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = foundation.NewNormalizer(map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}, LogFormatText)

// ParseLogFormat case-folds raw and reports whether it names a format.
func ParseLogFormat(raw string) (LogFormat, bool) {
	return logFormats.Lookup(raw)
}

// NewLogger builds the slog logger described by the logging config.
// verbose forces debug level.
func NewLogger(cfg LoggingConfig, verbose bool, w io.Writer) *slog.Logger {
	level := cfg.Level.SlogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == LogFormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
