package extractor

import (
	"path"
	"path/filepath"

	"github.com/aleister1102/pagecapture/internal/dom"
	"github.com/aleister1102/pagecapture/internal/models"
)

// RewriteDocument points references in doc at their local copies and returns
// the rendered markup with the number of values changed. targets maps
// resolved URLs to descriptors whose LocalPath is slash separated under the
// output root; pageDir is the directory of the page being rewritten, empty
// for the root page. Anchors are only rewritten to HTML targets.
func (e *Extractor) RewriteDocument(doc *dom.Document, targets map[string]models.ResourceDescriptor, pageDir string) (string, int, error) {
	produced := make(map[string]struct{}, len(targets))
	for _, t := range targets {
		produced[RelativePath(pageDir, t.LocalPath)] = struct{}{}
	}

	changed := doc.Walk(func(ref models.DocumentReference) (string, bool) {
		if _, ok := produced[ref.Value]; ok {
			return "", false
		}
		if !e.config.RewriteRelative && !isAbsoluteReference(ref.Value) {
			return "", false
		}

		resolved, err := ResolveReference(ref.Base, ref.Value)
		if err != nil {
			return "", false
		}
		target, ok := targets[resolved.String()]
		if !ok {
			return "", false
		}
		if ref.Tag == models.SourceTagAnchor && target.ResourceKind != models.ResourceKindHTML {
			return "", false
		}
		return RelativePath(pageDir, target.LocalPath), true
	})

	markup, err := doc.HTML()
	if err != nil {
		return "", changed, err
	}
	return markup, changed, nil
}

// RelativePath expresses target, a path under the output root, relative to dir.
func RelativePath(dir, target string) string {
	dir = path.Clean("/" + dir)
	if dir == "/" {
		return target
	}
	rel, err := filepath.Rel(filepath.FromSlash(dir), filepath.FromSlash("/"+target))
	if err != nil {
		return target
	}
	return filepath.ToSlash(rel)
}
