package logger

import (
	"io"

	"github.com/aleister1102/pagecapture/internal/config"

	"github.com/rs/zerolog"
)

// Logger represents the main logger with configuration
type Logger struct {
	zerolog zerolog.Logger
	config  LoggerConfig
}

// GetZerolog returns the underlying zerolog instance
func (l *Logger) GetZerolog() *zerolog.Logger {
	return &l.zerolog
}

// Config returns the resolved logger configuration
func (l *Logger) Config() LoggerConfig {
	return l.config
}

// NewWithCaptureID creates the run logger. Console output goes to console and
// file output, when configured, is grouped under the capture ID.
func NewWithCaptureID(cfg config.LogConfig, captureID string, console io.Writer) (zerolog.Logger, error) {
	logger, err := NewLoggerBuilder().
		WithConfig(cfg).
		WithCaptureID(captureID).
		WithConsoleOutput(console).
		Build()
	if err != nil {
		return zerolog.Logger{}, err
	}
	return *logger.GetZerolog(), nil
}
