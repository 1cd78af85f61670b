package snapshot

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog"
)

// HeadlessSource renders pages in a Chromium instance launched on first use
type HeadlessSource struct {
	config    config.HeadlessBrowserConfig
	userAgent string
	logger    zerolog.Logger

	mutex    sync.Mutex
	launcher *launcher.Launcher
	browser  *rod.Browser
}

// NewHeadlessSource creates a new headless source
func NewHeadlessSource(cfg config.HeadlessBrowserConfig, userAgent string, logger zerolog.Logger) *HeadlessSource {
	return &HeadlessSource{
		config:    cfg,
		userAgent: userAgent,
		logger:    logger.With().Str("component", "HeadlessSource").Logger(),
	}
}

// buildLauncher applies the configured binary, profile and flags
func (hs *HeadlessSource) buildLauncher() *launcher.Launcher {
	l := launcher.New()

	if hs.config.ChromePath != "" {
		l = l.Bin(hs.config.ChromePath)
	}
	if hs.config.UserDataDir != "" {
		l = l.UserDataDir(hs.config.UserDataDir)
	}

	l = l.
		Set("no-sandbox").
		Set("disable-dev-shm-usage").
		Set("disable-gpu").
		Set("no-first-run").
		Set("disable-default-apps").
		Set("disable-sync")

	if hs.config.IgnoreHTTPSErrors {
		l = l.Set("ignore-certificate-errors")
	}

	for _, arg := range hs.config.BrowserArgs {
		name, value, hasValue := strings.Cut(strings.TrimLeft(arg, "-"), "=")
		if name == "" {
			continue
		}
		if hasValue {
			l = l.Set(flags.Flag(name), value)
		} else {
			l = l.Set(flags.Flag(name))
		}
	}

	return l
}

// start launches and connects the browser once
func (hs *HeadlessSource) start() (*rod.Browser, error) {
	hs.mutex.Lock()
	defer hs.mutex.Unlock()

	if hs.browser != nil {
		return hs.browser, nil
	}

	l := hs.buildLauncher()
	controlURL, err := l.Launch()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to launch browser")
	}

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, errorwrapper.WrapError(err, "failed to connect browser")
	}

	hs.launcher = l
	hs.browser = browser
	hs.logger.Info().Msg("Headless browser started")
	return browser, nil
}

// Snapshot navigates to target and returns the DOM serialized after load
func (hs *HeadlessSource) Snapshot(ctx context.Context, target string) (*models.DocumentSnapshot, error) {
	browser, err := hs.start()
	if err != nil {
		return nil, models.NewExtractionFailure(target, err)
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, hs.config.GetPageLoadTimeout())
	defer cancel()

	page, err := browser.Context(timeoutCtx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, models.NewExtractionFailure(target, errorwrapper.WrapError(err, "failed to create page"))
	}
	defer func() {
		if closeErr := page.Close(); closeErr != nil {
			hs.logger.Debug().Err(closeErr).Msg("Failed to close page")
		}
	}()

	if hs.config.WindowWidth > 0 && hs.config.WindowHeight > 0 {
		if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
			Width:  hs.config.WindowWidth,
			Height: hs.config.WindowHeight,
		}); err != nil {
			hs.logger.Warn().Err(err).Msg("Failed to set viewport")
		}
	}

	if hs.userAgent != "" {
		if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: hs.userAgent}); err != nil {
			hs.logger.Warn().Err(err).Msg("Failed to set user agent")
		}
	}

	if err := page.Navigate(target); err != nil {
		return nil, models.NewExtractionFailure(target, errorwrapper.WrapError(err, "failed to navigate"))
	}
	if err := page.WaitLoad(); err != nil {
		return nil, models.NewExtractionFailure(target, errorwrapper.WrapError(err, "page load timeout"))
	}

	if hs.config.WaitAfterLoadMs > 0 {
		select {
		case <-time.After(time.Duration(hs.config.WaitAfterLoadMs) * time.Millisecond):
		case <-timeoutCtx.Done():
			return nil, models.NewExtractionFailure(target, timeoutCtx.Err())
		}
	}

	markup, err := page.HTML()
	if err != nil {
		return nil, models.NewExtractionFailure(target, errorwrapper.WrapError(err, "failed to read page HTML"))
	}

	snapshot := &models.DocumentSnapshot{URL: target, HTML: markup}
	if info, err := page.Info(); err == nil {
		snapshot.Title = info.Title
		if info.URL != "" {
			snapshot.URL = info.URL
		}
	}

	hs.logger.Debug().Str("url", snapshot.URL).Int("size", len(markup)).Msg("Rendered snapshot taken")
	return snapshot, nil
}

// Close shuts the browser down and removes the launcher's temporary profile
func (hs *HeadlessSource) Close() error {
	hs.mutex.Lock()
	defer hs.mutex.Unlock()

	var err error
	if hs.browser != nil {
		err = hs.browser.Close()
		hs.browser = nil
	}
	if hs.launcher != nil {
		hs.launcher.Cleanup()
		hs.launcher = nil
	}
	return err
}
