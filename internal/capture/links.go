package capture

import (
	"context"

	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/aleister1102/pagecapture/internal/progress"
)

// LinksResult summarises an extract-only run
type LinksResult struct {
	Target     string
	PageURL    string
	Extraction *models.ExtractionResult
	Links      models.CategorizedLinks
	LinksPath  string
	Downloaded int
	Skipped    int
}

// ExtractLinks snapshots target and writes the categorized descriptor lists.
// With download set every HTTPS descriptor is also stored at its local path;
// failures are logged and no manifest is written.
func (s *Service) ExtractLinks(ctx context.Context, target string, download bool) (*LinksResult, error) {
	snap, err := s.takeSnapshot(ctx, target)
	if err != nil {
		return nil, err
	}

	result, err := s.extract(snap)
	if err != nil {
		return nil, err
	}

	links := &LinksResult{
		Target:     target,
		PageURL:    snap.URL,
		Extraction: result,
		Links:      result.Categorized(),
	}

	links.LinksPath, err = s.writeJSON(ctx, s.config.LinksFileName, links.Links)
	if err != nil {
		s.progress.Finish(progress.ProgressStatusError, err.Error())
		return nil, err
	}
	s.logger.Info().Str("path", links.LinksPath).Msg("Extracted links written")

	if !download {
		s.progress.Finish(progress.ProgressStatusComplete, "links extracted")
		return links, nil
	}

	s.progress.Begin(int64(len(result.Descriptors)), "downloading links")
	written := make(map[string]string, len(result.Descriptors))
	for _, d := range result.Descriptors {
		outcome := s.downloadLink(ctx, d, written)
		if outcome == progress.OutcomeDownloaded {
			links.Downloaded++
		} else {
			links.Skipped++
		}
		s.progress.Advance(outcome, d.ResolvedURL)
	}

	if ctx.Err() != nil {
		s.progress.Finish(progress.ProgressStatusCancelled, ReasonCancelled)
	} else {
		s.progress.Finish(progress.ProgressStatusComplete, "links downloaded")
	}
	s.logger.Info().Int("downloaded", links.Downloaded).Int("skipped", links.Skipped).Msg("Link download finished")
	return links, nil
}

func (s *Service) downloadLink(ctx context.Context, d models.ResourceDescriptor, written map[string]string) progress.Outcome {
	log := s.logger.With().Str("url", d.ResolvedURL).Logger()

	if ctx.Err() != nil {
		log.Debug().Msg(ReasonCancelled)
		return progress.OutcomeSkipped
	}
	if scheme := schemeOf(d.ResolvedURL); scheme != "https" {
		log.Info().Msg((&models.TransportSkipError{URL: d.ResolvedURL, Scheme: scheme}).Error())
		return progress.OutcomeSkipped
	}
	if owner, taken := written[d.LocalPath]; taken && owner != d.ResolvedURL {
		log.Warn().Str("path", d.LocalPath).Msg(ReasonPathCollision)
		return progress.OutcomeSkipped
	}

	data, err := s.fetcher.Fetch(ctx, d.ResolvedURL)
	if err == nil {
		_, err = s.sink.Write(ctx, d.LocalPath, data)
	}
	if err != nil {
		log.Warn().Err(&models.DownloadError{URL: d.ResolvedURL, LocalPath: d.LocalPath, Err: err}).Msg("Download failed")
		return progress.OutcomeFailed
	}

	written[d.LocalPath] = d.ResolvedURL
	return progress.OutcomeDownloaded
}
