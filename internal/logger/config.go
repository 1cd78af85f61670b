package logger

import (
	"strings"

	"github.com/rs/zerolog"
)

// LoggerConfig is the resolved form of config.LogConfig used to build a logger
type LoggerConfig struct {
	Level      zerolog.Level
	Format     LogFormat
	FilePath   string
	MaxSizeMB  int
	MaxBackups int
	// CaptureID groups file output of one run under captures/<id>.
	CaptureID string
}

// FileEnabled reports whether log lines are also written to a rotating file
func (c LoggerConfig) FileEnabled() bool {
	return c.FilePath != ""
}

// LogFormat selects how log lines are rendered
type LogFormat int

const (
	FormatConsole LogFormat = iota
	FormatJSON
	FormatText
)

// ParseLogFormat maps a config value onto a LogFormat, defaulting to console
func ParseLogFormat(s string) LogFormat {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "text":
		return FormatText
	default:
		return FormatConsole
	}
}

func (lf LogFormat) String() string {
	switch lf {
	case FormatJSON:
		return "json"
	case FormatText:
		return "text"
	default:
		return "console"
	}
}

// DefaultLoggerConfig returns an info level console logger without file output
func DefaultLoggerConfig() LoggerConfig {
	return LoggerConfig{
		Level:      zerolog.InfoLevel,
		Format:     FormatConsole,
		MaxSizeMB:  100,
		MaxBackups: 3,
	}
}
