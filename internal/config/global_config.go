package config

import (
	"encoding/json"
	"path/filepath"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/common/filemanager"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// maxConfigFileSize bounds how much of a config file is read
const maxConfigFileSize = 10 * 1024 * 1024

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	LogConfig             LogConfig             `json:"log_config,omitempty" yaml:"log_config,omitempty"`
	CaptureConfig         CaptureConfig         `json:"capture_config,omitempty" yaml:"capture_config,omitempty"`
	ExtractorConfig       ExtractorConfig       `json:"extractor_config,omitempty" yaml:"extractor_config,omitempty"`
	HTTPClientConfig      HTTPClientConfig      `json:"http_client_config,omitempty" yaml:"http_client_config,omitempty"`
	HeadlessBrowserConfig HeadlessBrowserConfig `json:"headless_browser_config,omitempty" yaml:"headless_browser_config,omitempty"`
	ProgressConfig        ProgressConfig        `json:"progress_config,omitempty" yaml:"progress_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		LogConfig:             NewDefaultLogConfig(),
		CaptureConfig:         NewDefaultCaptureConfig(),
		ExtractorConfig:       NewDefaultExtractorConfig(),
		HTTPClientConfig:      NewDefaultHTTPClientConfig(),
		HeadlessBrowserConfig: NewDefaultHeadlessBrowserConfig(),
		ProgressConfig:        NewDefaultProgressConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// YAML is used for .yaml and .yml files, JSON otherwise. Missing sections keep their defaults.
func LoadGlobalConfig(providedPath string, logger zerolog.Logger) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	if providedPath != "" && !fileExists(providedPath) {
		return nil, errorwrapper.NewValidationError("config_file", providedPath, "config file does not exist")
	}

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		logger.Debug().Msg("No config file found, using defaults")
		return cfg, nil
	}

	fileManager := filemanager.NewFileManager(logger)
	opts := filemanager.DefaultFileReadOptions()
	opts.MaxSize = maxConfigFileSize

	data, err := fileManager.ReadFile(filePath, opts)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to load config file content")
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	logger.Debug().Str("path", filePath).Msg("Configuration loaded")
	return cfg, nil
}

// parseConfigContent parses the config content based on file extension
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	if isYAMLFile(filepath.Ext(filePath)) {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return errorwrapper.NewError("failed to unmarshal YAML from '%s': %w", filePath, err)
		}
		return nil
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return errorwrapper.NewError("failed to unmarshal JSON from '%s': %w", filePath, err)
	}
	return nil
}

func isYAMLFile(ext string) bool {
	return ext == ".yaml" || ext == ".yml"
}
