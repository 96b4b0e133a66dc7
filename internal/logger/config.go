package logger

import (
	"log/slog"
	"strings"
)

// Config is the client's logging setup. The zero value logs text at info
// level to the console only.
type Config struct {
	Level     slog.Level
	JSON      bool
	AddSource bool
	// Attrs are attached to every record
	Attrs []slog.Attr
	// Dir receives one file per session; empty means console only
	Dir string
	// Retention is how many earlier session files stay in Dir
	Retention int
}

// NewConfig parses the LOG_LEVEL and LOG_FORMAT settings. Unknown values fall
// back to info and text.
func NewConfig(level, format string) Config {
	return Config{
		Level:     ParseLevel(level),
		JSON:      strings.EqualFold(format, LogFormatJSON),
		Retention: DefaultRetention,
	}
}

// WithIdentity tags every record with the service, version and environment
func (c Config) WithIdentity(service, version, environment string) Config {
	c.Attrs = append(append([]slog.Attr(nil), c.Attrs...),
		slog.String(AttrKeyService, service),
		slog.String(AttrKeyVersion, version),
		slog.String(AttrKeyEnvironment, environment),
	)
	return c
}

// WithSessionDir also writes each session to a new file in dir, keeping the
// newest retention earlier files. A negative retention keeps the default.
func (c Config) WithSessionDir(dir string, retention int) Config {
	c.Dir = dir
	if retention >= 0 {
		c.Retention = retention
	}
	return c
}

// ParseLevel maps a level name to slog.Level, defaulting to info
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn, LogLevelWarning:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
