package capture

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/dom"
	"github.com/aleister1102/pagecapture/internal/extractor"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/aleister1102/pagecapture/internal/progress"
	"github.com/aleister1102/pagecapture/internal/snapshot"
	"github.com/rs/zerolog"
)

// Fetcher retrieves the bytes behind an absolute URL
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Sink stores bytes at a slash separated path relative to the output root
type Sink interface {
	Write(ctx context.Context, relPath string, data []byte) (string, error)
}

// Skip reasons recorded in the manifest besides transport and download errors.
const (
	ReasonUnsupportedKind     = "unsupported resource kind"
	ReasonPathCollision       = "local path collision"
	ReasonCancelled           = "capture cancelled"
	ReasonLinkedPagesDisabled = "linked pages disabled"
)

// Dependencies are the collaborators a Service drives
type Dependencies struct {
	Source    snapshot.Source
	Extractor *extractor.Extractor
	Fetcher   Fetcher
	Sink      Sink
	// Progress is optional; nil discards progress events.
	Progress progress.Reporter
}

// Service runs capture, link extraction and source saving for single pages
type Service struct {
	config    config.CaptureConfig
	source    snapshot.Source
	extractor *extractor.Extractor
	fetcher   Fetcher
	sink      Sink
	progress  progress.Reporter
	logger    zerolog.Logger
}

// NewService creates a new capture service
func NewService(cfg config.CaptureConfig, deps Dependencies, logger zerolog.Logger) (*Service, error) {
	switch {
	case deps.Source == nil:
		return nil, errorwrapper.NewValidationError("source", nil, "snapshot source is required")
	case deps.Extractor == nil:
		return nil, errorwrapper.NewValidationError("extractor", nil, "extractor is required")
	case deps.Fetcher == nil:
		return nil, errorwrapper.NewValidationError("fetcher", nil, "fetcher is required")
	case deps.Sink == nil:
		return nil, errorwrapper.NewValidationError("sink", nil, "sink is required")
	}

	reporter := deps.Progress
	if reporter == nil {
		reporter = progress.NopReporter{}
	}

	return &Service{
		config:    cfg,
		source:    deps.Source,
		extractor: deps.Extractor,
		fetcher:   deps.Fetcher,
		sink:      deps.Sink,
		progress:  reporter,
		logger:    logger.With().Str("component", "CaptureService").Logger(),
	}, nil
}

// Close releases the snapshot source
func (s *Service) Close() error {
	return s.source.Close()
}

// takeSnapshot obtains the document and reports failures to the status display
func (s *Service) takeSnapshot(ctx context.Context, target string) (*models.DocumentSnapshot, error) {
	s.progress.SetStage("taking snapshot")

	snap, err := s.source.Snapshot(ctx, target)
	if err != nil {
		if !errors.Is(err, models.ErrExtractionFailed) {
			err = models.NewExtractionFailure(target, err)
		}
		s.progress.Finish(progress.ProgressStatusError, err.Error())
		s.logger.Error().Err(err).Str("target", target).Msg("Failed to take snapshot")
		return nil, err
	}
	return snap, nil
}

// extract runs the extractor and reports failures to the status display
func (s *Service) extract(snap *models.DocumentSnapshot) (*models.ExtractionResult, error) {
	result, err := s.extractor.Extract(snap)
	if err != nil {
		return nil, s.extractFailed(snap, err)
	}
	s.extracted(snap, result)
	return result, nil
}

// extractPage parses snap and collects its descriptors, leaving the markup
// untouched until the capture knows which targets it will store.
func (s *Service) extractPage(snap *models.DocumentSnapshot) (*dom.Document, *models.ExtractionResult, error) {
	doc, err := s.extractor.Parse(snap)
	if err != nil {
		return nil, nil, s.extractFailed(snap, err)
	}
	result := s.extractor.ExtractDocument(doc)
	s.extracted(snap, result)
	return doc, result, nil
}

func (s *Service) extractFailed(snap *models.DocumentSnapshot, err error) error {
	s.progress.Finish(progress.ProgressStatusError, err.Error())
	s.logger.Error().Err(err).Str("target", snap.URL).Msg("Failed to extract resources")
	return err
}

func (s *Service) extracted(snap *models.DocumentSnapshot, result *models.ExtractionResult) {
	s.logger.Info().
		Str("url", snap.URL).
		Int("descriptors", len(result.Descriptors)).
		Msg("Resources extracted")
}

// writeJSON stores v as two-space indented JSON. It ignores ctx cancellation
// so reports are still written for cancelled runs.
func (s *Service) writeJSON(ctx context.Context, relPath string, v any) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to encode "+relPath)
	}
	fullPath, err := s.sink.Write(context.WithoutCancel(ctx), relPath, data)
	if err != nil {
		return "", errorwrapper.WrapError(err, "failed to write "+relPath)
	}
	return fullPath, nil
}
