package capture

import (
	"context"
	"net/url"
	"path"

	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"github.com/aleister1102/pagecapture/internal/extractor"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/aleister1102/pagecapture/internal/progress"
)

// CaptureResult summarises a full page capture
type CaptureResult struct {
	Target       string
	PageURL      string
	Title        string
	Extraction   *models.ExtractionResult
	Manifest     *models.Manifest
	IndexPath    string
	ManifestPath string
	Cancelled    bool
}

// CaptureFull snapshots target, writes the rewritten page and downloads every
// descriptor in order. The manifest is written even when ctx is cancelled
// part way; it is not written when no snapshot could be taken.
func (s *Service) CaptureFull(ctx context.Context, target string) (*CaptureResult, error) {
	snap, err := s.takeSnapshot(ctx, target)
	if err != nil {
		return nil, err
	}

	doc, result, err := s.extractPage(snap)
	if err != nil {
		return nil, err
	}

	r := newRun(s, snap.URL, result)

	result.Markup, _, err = s.extractor.RewriteDocument(doc, r.catalog, "")
	if err != nil {
		err = models.NewExtractionFailure(snap.URL, err)
		s.progress.Finish(progress.ProgressStatusError, err.Error())
		return nil, err
	}

	indexPath, err := s.sink.Write(ctx, s.config.IndexFileName, []byte(result.Markup))
	if err != nil {
		s.progress.Finish(progress.ProgressStatusError, err.Error())
		return nil, errorwrapper.WrapError(err, "failed to write captured page")
	}
	r.manifest.RecordPage(snap.URL, s.config.IndexFileName)
	r.written[s.config.IndexFileName] = r.pageURL

	s.progress.Begin(int64(len(result.Descriptors)), "downloading resources")
	for _, d := range result.Descriptors {
		outcome := r.handle(ctx, d, itemOptions{followLinks: true, scanStylesheets: s.config.ScanStylesheets})
		s.progress.Advance(outcome, d.ResolvedURL)
	}

	capture := &CaptureResult{
		Target:     target,
		PageURL:    snap.URL,
		Title:      snap.Title,
		Extraction: result,
		Manifest:   r.manifest,
		IndexPath:  indexPath,
		Cancelled:  ctx.Err() != nil,
	}

	capture.ManifestPath, err = s.writeJSON(ctx, s.config.ManifestFileName, r.manifest)
	if err != nil {
		s.progress.Finish(progress.ProgressStatusError, err.Error())
		return capture, err
	}

	downloaded, skipped := r.manifest.Counts()
	if capture.Cancelled {
		s.progress.Finish(progress.ProgressStatusCancelled, ReasonCancelled)
		s.logger.Warn().Int("downloaded", downloaded).Int("skipped", skipped).Msg("Capture cancelled, partial manifest written")
	} else {
		s.progress.Finish(progress.ProgressStatusComplete, "capture finished")
		s.logger.Info().Int("downloaded", downloaded).Int("skipped", skipped).Int("urls", r.handled.Len()).Str("manifest", capture.ManifestPath).Msg("Capture finished")
	}

	return capture, nil
}

type itemOptions struct {
	followLinks     bool
	scanStylesheets bool
}

// run holds the state of one capture: what was handled, written and where.
type run struct {
	service  *Service
	manifest *models.Manifest
	// pageURL is the canonical URL of the captured page.
	pageURL string
	// handled holds every URL already processed in this run.
	handled *extractor.URLSet
	// written maps local paths to the URL stored there.
	written map[string]string
	// catalog maps URLs to the descriptor markup should point at. Only
	// targets the run will store are listed; the first entry wins.
	catalog map[string]models.ResourceDescriptor
}

func newRun(s *Service, pageURL string, root *models.ExtractionResult) *run {
	r := &run{
		service:  s,
		manifest: models.NewManifest(),
		handled:  extractor.NewURLSet(),
		written:  make(map[string]string),
		catalog:  make(map[string]models.ResourceDescriptor, len(root.Descriptors)+2),
	}

	aliases := pageAliases(pageURL)
	r.pageURL = aliases[0]
	page := models.ResourceDescriptor{
		SourceTag:    models.SourceTagAnchor,
		ResourceKind: models.ResourceKindHTML,
		ResolvedURL:  r.pageURL,
		LocalPath:    s.config.IndexFileName,
		FileName:     s.config.IndexFileName,
	}
	for _, alias := range aliases {
		r.catalog[alias] = page
		r.handled.Add(alias)
	}

	for _, d := range root.Descriptors {
		r.claim(d)
	}
	return r
}

// pageAliases lists the forms a reference to the page itself resolves to,
// canonical form first. A root page answers to both "" and "/" paths.
func pageAliases(pageURL string) []string {
	u, err := extractor.ResolveReference(pageURL, pageURL)
	if err != nil {
		return []string{pageURL}
	}
	aliases := []string{u.String()}
	if u.Path == "" || u.Path == "/" {
		root := *u
		root.RawPath = ""
		if u.Path == "" {
			root.Path = "/"
		} else {
			root.Path = ""
		}
		aliases = append(aliases, root.String())
	}
	if u.String() != pageURL {
		aliases = append(aliases, pageURL)
	}
	return aliases
}

// stored reports whether the run will try to write d. Targets it will never
// write stay out of the catalog so markup keeps pointing at the original.
func (r *run) stored(d models.ResourceDescriptor) bool {
	cfg := r.service.config
	switch {
	case schemeOf(d.ResolvedURL) != "https":
		return false
	case d.IsLinkedPage():
		return cfg.FollowLinkedPages
	case d.ResourceKind == models.ResourceKindUnknown:
		return cfg.DownloadUnknown
	}
	return true
}

// claim returns the local path d must use. A URL keeps the first path
// assigned to it in this run so every page points at the same file.
func (r *run) claim(d models.ResourceDescriptor) string {
	if known, ok := r.catalog[d.ResolvedURL]; ok {
		return known.LocalPath
	}
	if r.stored(d) {
		r.catalog[d.ResolvedURL] = d
	}
	return d.LocalPath
}

// handle processes one descriptor and records its outcome in the manifest.
func (r *run) handle(ctx context.Context, d models.ResourceDescriptor, opts itemOptions) progress.Outcome {
	s := r.service

	if !r.handled.Add(d.ResolvedURL) {
		s.logger.Debug().Str("url", d.ResolvedURL).Msg("Already handled in this capture")
		// The first handling already left a manifest entry for this URL.
		if known, ok := r.catalog[d.ResolvedURL]; ok && r.written[known.LocalPath] == known.ResolvedURL {
			return progress.OutcomeDownloaded
		}
		return progress.OutcomeSkipped
	}

	if ctx.Err() != nil {
		r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, ReasonCancelled)
		return progress.OutcomeSkipped
	}

	if scheme := schemeOf(d.ResolvedURL); scheme != "https" {
		skip := &models.TransportSkipError{URL: d.ResolvedURL, Scheme: scheme}
		r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, skip.Error())
		s.logger.Debug().Str("url", d.ResolvedURL).Msg("Skipping non-secure resource")
		return progress.OutcomeSkipped
	}

	if d.IsLinkedPage() {
		if !opts.followLinks || !s.config.FollowLinkedPages {
			r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, ReasonLinkedPagesDisabled)
			return progress.OutcomeSkipped
		}
		return r.captureLinkedPage(ctx, d)
	}

	if d.ResourceKind == models.ResourceKindUnknown && !s.config.DownloadUnknown {
		r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, ReasonUnsupportedKind)
		return progress.OutcomeSkipped
	}

	if owner, taken := r.written[d.LocalPath]; taken && owner != d.ResolvedURL {
		r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, ReasonPathCollision)
		s.logger.Warn().Str("url", d.ResolvedURL).Str("path", d.LocalPath).Str("owner", owner).Msg("Local path already written")
		return progress.OutcomeSkipped
	}

	data, err := s.fetcher.Fetch(ctx, d.ResolvedURL)
	if err != nil {
		return r.recordFailure(ctx, d, err)
	}

	if opts.scanStylesheets && d.ResourceKind == models.ResourceKindStylesheet {
		data = r.localizeStylesheet(ctx, d, data)
	}

	if _, err := s.sink.Write(ctx, d.LocalPath, data); err != nil {
		return r.recordFailure(ctx, d, err)
	}

	r.written[d.LocalPath] = d.ResolvedURL
	r.manifest.RecordSuccess(d.ResourceKind, d.ResolvedURL, d.LocalPath)
	return progress.OutcomeDownloaded
}

// recordFailure turns a fetch or write error into a skip entry.
func (r *run) recordFailure(ctx context.Context, d models.ResourceDescriptor, err error) progress.Outcome {
	if ctx.Err() != nil {
		r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, ReasonCancelled)
		return progress.OutcomeSkipped
	}

	downloadErr := &models.DownloadError{URL: d.ResolvedURL, LocalPath: d.LocalPath, Err: err}
	r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, downloadErr.Error())
	r.service.logger.Warn().Err(err).Str("url", d.ResolvedURL).Msg("Download failed")
	return progress.OutcomeFailed
}

// captureLinkedPage stores one linked page, rewritten against its own
// directory, then downloads its assets. Its anchors are not followed.
func (r *run) captureLinkedPage(ctx context.Context, d models.ResourceDescriptor) progress.Outcome {
	s := r.service

	if owner, taken := r.written[d.LocalPath]; taken && owner != d.ResolvedURL {
		r.manifest.RecordSkip(d.ResourceKind, d.ResolvedURL, ReasonPathCollision)
		return progress.OutcomeSkipped
	}

	data, err := s.fetcher.Fetch(ctx, d.ResolvedURL)
	if err != nil {
		return r.recordFailure(ctx, d, err)
	}

	doc, err := s.extractor.Parse(&models.DocumentSnapshot{URL: d.ResolvedURL, HTML: string(data)})
	if err != nil {
		return r.recordFailure(ctx, d, err)
	}
	linked := s.extractor.ExtractDocument(doc)

	assets := make([]models.ResourceDescriptor, 0, len(linked.Descriptors))
	for _, ld := range linked.Descriptors {
		if ld.SourceTag == models.SourceTagAnchor {
			continue
		}
		ld.LocalPath = r.claim(ld)
		if !r.handled.Contains(ld.ResolvedURL) {
			assets = append(assets, ld)
		}
	}

	markup, _, err := s.extractor.RewriteDocument(doc, r.catalog, path.Dir(d.LocalPath))
	if err != nil {
		return r.recordFailure(ctx, d, err)
	}
	if _, err := s.sink.Write(ctx, d.LocalPath, []byte(markup)); err != nil {
		return r.recordFailure(ctx, d, err)
	}
	r.written[d.LocalPath] = d.ResolvedURL
	r.manifest.RecordSuccess(d.ResourceKind, d.ResolvedURL, d.LocalPath)

	s.logger.Debug().Str("url", d.ResolvedURL).Int("assets", len(assets)).Msg("Linked page captured")

	s.progress.AddTotal(int64(len(assets)))
	for _, asset := range assets {
		outcome := r.handle(ctx, asset, itemOptions{followLinks: false, scanStylesheets: s.config.ScanStylesheets})
		s.progress.Advance(outcome, asset.ResolvedURL)
	}

	return progress.OutcomeDownloaded
}

func schemeOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Scheme
}
