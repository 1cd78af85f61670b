package snapshot

import (
	"context"
	"net/http"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/rs/zerolog"
)

// Source obtains the rendered document for a target URL
type Source interface {
	Snapshot(ctx context.Context, target string) (*models.DocumentSnapshot, error)
	Close() error
}

// Options carries the settings every source may need
type Options struct {
	Mode       string
	SourceFile string
	Headless   config.HeadlessBrowserConfig
	HTTP       config.HTTPClientConfig
	// Transport is shared with the asset client so static snapshots honour the same TLS and proxy settings.
	Transport http.RoundTripper
}

// OptionsFromConfig builds source options from the global configuration
func OptionsFromConfig(cfg *config.GlobalConfig, transport http.RoundTripper) Options {
	return Options{
		Mode:       cfg.CaptureConfig.SnapshotMode,
		SourceFile: cfg.CaptureConfig.SourceFile,
		Headless:   cfg.HeadlessBrowserConfig,
		HTTP:       cfg.HTTPClientConfig,
		Transport:  transport,
	}
}

// New creates the source selected by opts.Mode
func New(opts Options, logger zerolog.Logger) (Source, error) {
	switch opts.Mode {
	case config.SnapshotModeHeadless, "":
		return NewHeadlessSource(opts.Headless, opts.HTTP.UserAgent, logger), nil
	case config.SnapshotModeStatic:
		return NewStaticSource(opts.HTTP, opts.Transport, logger), nil
	case config.SnapshotModeFile:
		if opts.SourceFile == "" {
			return nil, errorwrapper.NewValidationError("source_file", opts.SourceFile, "file mode requires a source file")
		}
		return NewFileSource(opts.SourceFile, logger), nil
	default:
		return nil, errorwrapper.NewValidationError("snapshot_mode", opts.Mode, "unknown snapshot mode")
	}
}
