package main

import (
	"github.com/aleister1102/pagecapture/internal/capture"
	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/common/filemanager"
	"github.com/aleister1102/pagecapture/internal/extractor"
	"github.com/aleister1102/pagecapture/internal/httpclient"
	"github.com/aleister1102/pagecapture/internal/progress"
	"github.com/aleister1102/pagecapture/internal/snapshot"

	"github.com/rs/zerolog"
)

// application wires one capture service and its progress display for a single command
type application struct {
	service *capture.Service
	display *progress.ProgressDisplayManager
	logger  zerolog.Logger
}

func newApplication(state *rootState, progressType progress.ProgressType) (*application, error) {
	cfg := state.cfg
	log := state.logger

	client, err := httpclient.NewHTTPClientBuilder(log).
		WithConfig(cfg.HTTPClientConfig).
		Build()
	if err != nil {
		return nil, errorwrapper.WrapError(err, "could not create HTTP client")
	}

	source, err := snapshot.New(snapshot.OptionsFromConfig(cfg, client.Transport()), log)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "could not create snapshot source")
	}

	sink, err := filemanager.NewDiskSink(cfg.CaptureConfig.OutputDir, log)
	if err != nil {
		_ = source.Close()
		return nil, errorwrapper.WrapError(err, "could not prepare output directory")
	}

	display := progress.NewProgressDisplayManager(progressType, log, progress.DisplayConfigFromConfig(cfg.ProgressConfig))

	service, err := capture.NewService(cfg.CaptureConfig, capture.Dependencies{
		Source:    source,
		Extractor: extractor.NewExtractor(cfg.ExtractorConfig, log),
		Fetcher:   client,
		Sink:      sink,
		Progress:  display,
	}, log)
	if err != nil {
		_ = source.Close()
		return nil, err
	}

	display.Start()
	return &application{service: service, display: display, logger: log}, nil
}

// Close stops the display and releases the browser, if one was launched
func (a *application) Close() {
	a.display.Stop()
	if err := a.service.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to close snapshot source")
	}
}
