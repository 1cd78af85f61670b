package httpclient

import (
	"time"

	"github.com/aleister1102/pagecapture/internal/config"
)

// HTTPClientConfig holds transport level settings for HTTPClient
type HTTPClientConfig struct {
	Timeout               time.Duration
	UserAgent             string
	InsecureSkipVerify    bool
	FollowRedirects       bool
	MaxRedirects          int
	MaxContentSize        int64
	EnableHTTP2           bool
	Proxy                 string
	CustomHeaders         map[string]string
	MaxIdleConns          int
	MaxIdleConnsPerHost   int
	IdleConnTimeout       time.Duration
	TLSHandshakeTimeout   time.Duration
	ExpectContinueTimeout time.Duration
	DialTimeout           time.Duration
	KeepAlive             time.Duration
}

// DefaultHTTPClientConfig returns settings suited to sequential asset downloads
func DefaultHTTPClientConfig() HTTPClientConfig {
	return HTTPClientConfig{
		Timeout:               time.Duration(config.DefaultHTTPTimeoutSecs) * time.Second,
		UserAgent:             config.DefaultUserAgent,
		FollowRedirects:       true,
		MaxRedirects:          config.DefaultHTTPMaxRedirects,
		MaxContentSize:        int64(config.DefaultMaxContentLengthMB) * 1024 * 1024,
		EnableHTTP2:           true,
		CustomHeaders:         map[string]string{},
		MaxIdleConns:          20,
		MaxIdleConnsPerHost:   4,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
		DialTimeout:           10 * time.Second,
		KeepAlive:             30 * time.Second,
	}
}

// FromConfig maps the file configuration onto client settings
func FromConfig(cfg config.HTTPClientConfig) HTTPClientConfig {
	c := DefaultHTTPClientConfig()
	if cfg.TimeoutSecs > 0 {
		c.Timeout = cfg.GetTimeoutDuration()
	}
	if cfg.UserAgent != "" {
		c.UserAgent = cfg.UserAgent
	}
	c.InsecureSkipVerify = cfg.InsecureSkipVerify
	c.FollowRedirects = cfg.FollowRedirects
	c.MaxRedirects = cfg.MaxRedirects
	c.MaxContentSize = int64(cfg.MaxContentLengthMB) * 1024 * 1024
	c.EnableHTTP2 = cfg.EnableHTTP2
	c.Proxy = cfg.Proxy
	for k, v := range cfg.CustomHeaders {
		c.CustomHeaders[k] = v
	}
	return c
}
