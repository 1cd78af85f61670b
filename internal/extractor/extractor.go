package extractor

import (
	"errors"
	"strings"

	"github.com/aleister1102/pagecapture/internal/config"
	"github.com/aleister1102/pagecapture/internal/dom"
	"github.com/aleister1102/pagecapture/internal/models"
	"github.com/rs/zerolog"
)

var errEmptySnapshot = errors.New("snapshot contains no markup")

// Extractor turns document references into de-duplicated, path-assigned descriptors
type Extractor struct {
	config config.ExtractorConfig
	logger zerolog.Logger
	rules  []Rule
}

// NewExtractor creates a new extractor
func NewExtractor(cfg config.ExtractorConfig, logger zerolog.Logger) *Extractor {
	return &Extractor{
		config: cfg,
		logger: logger.With().Str("component", "Extractor").Logger(),
		rules:  DefaultRules,
	}
}

// Parse reads a snapshot into a document using the configured custom attributes.
func (e *Extractor) Parse(snapshot *models.DocumentSnapshot) (*dom.Document, error) {
	if snapshot == nil || strings.TrimSpace(snapshot.HTML) == "" {
		target := ""
		if snapshot != nil {
			target = snapshot.URL
		}
		return nil, models.NewExtractionFailure(target, errEmptySnapshot)
	}

	doc, err := dom.Parse(snapshot.HTML, snapshot.URL, e.config.CustomAttributes)
	if err != nil {
		return nil, models.NewExtractionFailure(snapshot.URL, err)
	}
	return doc, nil
}

// Extract runs one extraction pass over the snapshot and rewrites its markup
// so previously external references point at their local paths.
func (e *Extractor) Extract(snapshot *models.DocumentSnapshot) (*models.ExtractionResult, error) {
	doc, err := e.Parse(snapshot)
	if err != nil {
		return nil, err
	}

	result := e.ExtractDocument(doc)

	markup, _, err := e.RewriteDocument(doc, result.Targets, "")
	if err != nil {
		return nil, models.NewExtractionFailure(snapshot.URL, err)
	}
	result.Markup = markup

	e.logger.Debug().
		Str("url", snapshot.URL).
		Int("descriptors", len(result.Descriptors)).
		Msg("Extraction pass completed")

	return result, nil
}

// ExtractDocument collects descriptors from doc without modifying it.
func (e *Extractor) ExtractDocument(doc *dom.Document) *models.ExtractionResult {
	result := e.ExtractReferences(doc.References(), NewURLSet())
	result.BaseURL = doc.BaseURL().String()
	return result
}

// ExtractReferences applies every rule in order to refs. The seen set is
// shared by all rules, so the first rule to claim a URL wins.
func (e *Extractor) ExtractReferences(refs []models.DocumentReference, seen *URLSet) *models.ExtractionResult {
	result := models.NewExtractionResult("")
	if len(refs) > 0 {
		result.BaseURL = refs[0].Base
	}

	byTag := make(map[models.SourceTag][]models.DocumentReference, len(e.rules))
	for _, ref := range refs {
		byTag[ref.Tag] = append(byTag[ref.Tag], ref)
	}

	for _, rule := range e.rules {
		e.applyRule(rule, byTag[rule.Tag], seen, result)
	}
	return result
}

func (e *Extractor) applyRule(rule Rule, refs []models.DocumentReference, seen *URLSet, result *models.ExtractionResult) {
	for _, ref := range refs {
		descriptor, err := Describe(rule, ref)
		if err != nil {
			e.logger.Debug().Err(err).Str("tag", string(ref.Tag)).Msg("Dropping unresolvable reference")
			continue
		}
		if !seen.Add(descriptor.ResolvedURL) {
			continue
		}
		result.Add(descriptor)
	}
}

// Describe resolves a single reference and assigns its kind and local path.
func Describe(rule Rule, ref models.DocumentReference) (models.ResourceDescriptor, error) {
	resolved, err := ResolveReference(ref.Base, ref.Value)
	if err != nil {
		return models.ResourceDescriptor{}, err
	}

	kind := Classify(SanitizeFilename(baseName(resolved)))

	var fileName, localPath string
	if rule.Tag == models.SourceTagAnchor {
		fileName = fileNameFor(resolved, defaultAnchorName)
		localPath = anchorLocalPath(resolved, fileName)
	} else {
		fileName = fileNameFor(resolved, defaultFileName)
		localPath = localPathFor(rule.Directory, fileName)
	}

	return models.ResourceDescriptor{
		SourceTag:         rule.Tag,
		ResourceKind:      kind,
		OriginalReference: ref.Value,
		ResolvedURL:       resolved.String(),
		LocalPath:         localPath,
		FileName:          fileName,
	}, nil
}
