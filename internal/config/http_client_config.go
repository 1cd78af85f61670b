package config

import "time"

// HTTPClientConfig defines how assets and linked pages are fetched
type HTTPClientConfig struct {
	TimeoutSecs        int               `json:"timeout_secs,omitempty" yaml:"timeout_secs,omitempty" validate:"min=1"`
	UserAgent          string            `json:"user_agent,omitempty" yaml:"user_agent,omitempty"`
	InsecureSkipVerify bool              `json:"insecure_skip_verify" yaml:"insecure_skip_verify"`
	FollowRedirects    bool              `json:"follow_redirects" yaml:"follow_redirects"`
	MaxRedirects       int               `json:"max_redirects,omitempty" yaml:"max_redirects,omitempty" validate:"min=0"`
	MaxContentLengthMB int               `json:"max_content_length_mb,omitempty" yaml:"max_content_length_mb,omitempty" validate:"min=0"`
	EnableHTTP2        bool              `json:"enable_http2" yaml:"enable_http2"`
	Proxy              string            `json:"proxy,omitempty" yaml:"proxy,omitempty" validate:"omitempty,url"`
	CustomHeaders      map[string]string `json:"custom_headers,omitempty" yaml:"custom_headers,omitempty"`
}

// NewDefaultHTTPClientConfig creates default HTTP client configuration
func NewDefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		TimeoutSecs:        DefaultHTTPTimeoutSecs,
		UserAgent:          DefaultUserAgent,
		InsecureSkipVerify: false,
		FollowRedirects:    true,
		MaxRedirects:       DefaultHTTPMaxRedirects,
		MaxContentLengthMB: DefaultMaxContentLengthMB,
		EnableHTTP2:        true,
		CustomHeaders:      map[string]string{},
	}
}

// GetTimeoutDuration returns the request timeout as time.Duration
func (hc *HTTPClientConfig) GetTimeoutDuration() time.Duration {
	return time.Duration(hc.TimeoutSecs) * time.Second
}
