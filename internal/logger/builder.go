package logger

import (
	"io"
	stdlog "log"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/rs/zerolog"
)

// LoggerBuilder provides fluent interface for building loggers
type LoggerBuilder struct {
	config    LoggerConfig
	factory   *WriterFactory
	converter *ConfigConverter
	configErr error
}

// NewLoggerBuilder creates a new logger builder
func NewLoggerBuilder() *LoggerBuilder {
	return &LoggerBuilder{
		config:    DefaultLoggerConfig(),
		factory:   NewWriterFactory(),
		converter: NewConfigConverter(),
	}
}

// WithConfig sets the logger configuration
func (lb *LoggerBuilder) WithConfig(cfg config.LogConfig) *LoggerBuilder {
	lb.config, lb.configErr = lb.converter.ConvertConfig(cfg)
	return lb
}

// WithCaptureID sets the capture ID used to organize log files per run
func (lb *LoggerBuilder) WithCaptureID(captureID string) *LoggerBuilder {
	lb.config.CaptureID = captureID
	return lb
}

// WithConsoleOutput redirects console output, mainly for tests
func (lb *LoggerBuilder) WithConsoleOutput(w io.Writer) *LoggerBuilder {
	lb.factory.console = w
	return lb
}

// Build creates the logger instance. Console output is always on; a
// rotating file is added when a log file is configured.
func (lb *LoggerBuilder) Build() (*Logger, error) {
	if lb.config.MaxSizeMB <= 0 {
		return nil, errorwrapper.NewValidationError("max_size_mb", lb.config.MaxSizeMB, "max size must be positive")
	}

	writers := []io.Writer{lb.factory.CreateConsoleWriter(lb.config.Format)}
	if lb.config.FileEnabled() {
		writers = append(writers, lb.factory.CreateFileWriter(lb.config))
	}

	zctx := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lb.config.Level).
		With().
		Timestamp()
	if lb.config.CaptureID != "" {
		zctx = zctx.Str("capture_id", lb.config.CaptureID)
	}
	zerologInstance := zctx.Logger()

	zerolog.SetGlobalLevel(lb.config.Level)
	stdlog.SetOutput(zerologInstance)
	stdlog.SetFlags(0)

	if lb.configErr != nil {
		zerologInstance.Warn().Err(lb.configErr).Msg("Falling back to default log level")
	}

	return &Logger{
		zerolog: zerologInstance,
		config:  lb.config,
	}, nil
}
