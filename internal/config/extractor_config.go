package config

// ExtractorConfig defines configuration for resource extraction
type ExtractorConfig struct {
	// CustomAttributes are scanned for url() tokens after the inline style rule.
	CustomAttributes []string `json:"custom_attributes,omitempty" yaml:"custom_attributes,omitempty" validate:"dive,required"`
	// RewriteRelative also rewrites relative references to their local paths.
	RewriteRelative bool `json:"rewrite_relative" yaml:"rewrite_relative"`
}

// NewDefaultExtractorConfig creates default extractor configuration
func NewDefaultExtractorConfig() ExtractorConfig {
	return ExtractorConfig{
		CustomAttributes: []string{DefaultCustomAttribute},
		RewriteRelative:  false,
	}
}
