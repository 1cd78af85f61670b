package snapshot

import (
	"context"
	"net/http"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/gocolly/colly/v2"
	"github.com/rs/zerolog"
)

// StaticSource fetches the page markup without rendering it
type StaticSource struct {
	config    config.HTTPClientConfig
	transport http.RoundTripper
	logger    zerolog.Logger
}

// NewStaticSource creates a new static source. A nil transport uses colly's default.
func NewStaticSource(cfg config.HTTPClientConfig, transport http.RoundTripper, logger zerolog.Logger) *StaticSource {
	return &StaticSource{
		config:    cfg,
		transport: transport,
		logger:    logger.With().Str("component", "StaticSource").Logger(),
	}
}

// createCollector creates a synchronous collector bound to ctx
func (ss *StaticSource) createCollector(ctx context.Context) *colly.Collector {
	options := []colly.CollectorOption{
		colly.StdlibContext(ctx),
		colly.IgnoreRobotsTxt(),
		colly.AllowURLRevisit(),
	}
	if ss.config.UserAgent != "" {
		options = append(options, colly.UserAgent(ss.config.UserAgent))
	}
	if ss.config.MaxContentLengthMB > 0 {
		options = append(options, colly.MaxBodySize(ss.config.MaxContentLengthMB*1024*1024))
	}
	if len(ss.config.CustomHeaders) > 0 {
		options = append(options, colly.Headers(ss.config.CustomHeaders))
	}

	collector := colly.NewCollector(options...)
	if ss.config.TimeoutSecs > 0 {
		collector.SetRequestTimeout(ss.config.GetTimeoutDuration())
	}
	if ss.transport != nil {
		collector.WithTransport(ss.transport)
	}
	return collector
}

// Snapshot fetches target and returns its markup as served
func (ss *StaticSource) Snapshot(ctx context.Context, target string) (*models.DocumentSnapshot, error) {
	collector := ss.createCollector(ctx)

	var snapshot *models.DocumentSnapshot
	var fetchErr error

	collector.OnResponse(func(r *colly.Response) {
		snapshot = &models.DocumentSnapshot{
			URL:  r.Request.URL.String(),
			HTML: string(r.Body),
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 {
			fetchErr = errorwrapper.NewHTTPErrorWithURL(r.StatusCode, err.Error(), target)
			return
		}
		fetchErr = errorwrapper.NewNetworkError(target, "static fetch failed", err)
	})

	if err := collector.Visit(target); err != nil && fetchErr == nil {
		fetchErr = err
	}
	if fetchErr != nil {
		ss.logger.Debug().Err(fetchErr).Str("url", target).Msg("Static snapshot failed")
		return nil, models.NewExtractionFailure(target, fetchErr)
	}
	if snapshot == nil {
		return nil, models.NewExtractionFailure(target, errorwrapper.NewError("no response received for %s", target))
	}

	ss.logger.Debug().Str("url", snapshot.URL).Int("size", len(snapshot.HTML)).Msg("Static snapshot taken")
	return snapshot, nil
}

// Close is a no-op; collectors are created per snapshot
func (ss *StaticSource) Close() error {
	return nil
}
