package capture

import (
	"context"
	"path"

	"github.com/aleister1102/pagecapture/internal/dom"
	"github.com/aleister1102/pagecapture/internal/extractor"
	"github.com/aleister1102/pagecapture/internal/models"
)

var stylesheetRule = extractor.Rule{Tag: models.SourceTagStylesheetURL, Directory: models.DirectoryImages}

// localizeStylesheet downloads the url() targets of a stylesheet into the
// images directory and points the stylesheet at the local copies. Targets
// that are not stored locally keep their original reference.
func (r *run) localizeStylesheet(ctx context.Context, sheet models.ResourceDescriptor, data []byte) []byte {
	s := r.service
	sheetDir := path.Dir(sheet.LocalPath)

	updated, n := dom.ReplaceURLs(string(data), func(inner string) (string, bool) {
		d, err := extractor.Describe(stylesheetRule, models.DocumentReference{
			Tag:   models.SourceTagStylesheetURL,
			Value: inner,
			Base:  sheet.ResolvedURL,
		})
		if err != nil {
			return "", false
		}

		if !r.handled.Contains(d.ResolvedURL) {
			d.LocalPath = r.claim(d)
			s.progress.AddTotal(1)
			outcome := r.handle(ctx, d, itemOptions{})
			s.progress.Advance(outcome, d.ResolvedURL)
		}

		target, ok := r.catalog[d.ResolvedURL]
		if !ok || r.written[target.LocalPath] != target.ResolvedURL {
			return "", false
		}
		return extractor.RelativePath(sheetDir, target.LocalPath), true
	})

	if n > 0 {
		s.logger.Debug().Str("stylesheet", sheet.ResolvedURL).Int("rewritten", n).Msg("Stylesheet references localized")
	}
	return []byte(updated)
}
