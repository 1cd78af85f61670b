package config

import "time"

// HeadlessBrowserConfig configures the Chromium instance used for rendered snapshots
type HeadlessBrowserConfig struct {
	ChromePath          string   `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`
	UserDataDir         string   `json:"user_data_dir,omitempty" yaml:"user_data_dir,omitempty"`
	WindowWidth         int      `json:"window_width,omitempty" yaml:"window_width,omitempty" validate:"omitempty,min=100"`
	WindowHeight        int      `json:"window_height,omitempty" yaml:"window_height,omitempty" validate:"omitempty,min=100"`
	PageLoadTimeoutSecs int      `json:"page_load_timeout_secs,omitempty" yaml:"page_load_timeout_secs,omitempty" validate:"omitempty,min=1"`
	WaitAfterLoadMs     int      `json:"wait_after_load_ms,omitempty" yaml:"wait_after_load_ms,omitempty" validate:"omitempty,min=0"`
	IgnoreHTTPSErrors   bool     `json:"ignore_https_errors" yaml:"ignore_https_errors"`
	BrowserArgs         []string `json:"browser_args,omitempty" yaml:"browser_args,omitempty"`
}

// NewDefaultHeadlessBrowserConfig creates default headless browser configuration
func NewDefaultHeadlessBrowserConfig() HeadlessBrowserConfig {
	return HeadlessBrowserConfig{
		WindowWidth:         DefaultWindowWidth,
		WindowHeight:        DefaultWindowHeight,
		PageLoadTimeoutSecs: DefaultPageLoadTimeoutSecs,
		WaitAfterLoadMs:     DefaultWaitAfterLoadMs,
		IgnoreHTTPSErrors:   false,
		BrowserArgs:         []string{},
	}
}

// GetPageLoadTimeout returns the page load timeout as time.Duration
func (hc *HeadlessBrowserConfig) GetPageLoadTimeout() time.Duration {
	return time.Duration(hc.PageLoadTimeoutSecs) * time.Second
}
