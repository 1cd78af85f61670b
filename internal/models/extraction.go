package models

// ExtractionResult is the output of one extraction pass over a document.
type ExtractionResult struct {
	// Descriptors are de-duplicated by resolved URL and kept in discovery order.
	Descriptors []ResourceDescriptor `json:"descriptors"`
	Markup      string               `json:"-"`
	BaseURL     string               `json:"baseUrl"`
	// Targets maps every resolved URL kept in the pass to its descriptor.
	Targets map[string]ResourceDescriptor `json:"-"`
}

// NewExtractionResult creates an empty result for the given base URL.
func NewExtractionResult(baseURL string) *ExtractionResult {
	return &ExtractionResult{
		Descriptors: []ResourceDescriptor{},
		BaseURL:     baseURL,
		Targets:     make(map[string]ResourceDescriptor),
	}
}

// Add appends a descriptor and indexes it by resolved URL.
func (r *ExtractionResult) Add(d ResourceDescriptor) {
	r.Descriptors = append(r.Descriptors, d)
	r.Targets[d.ResolvedURL] = d
}

// BySourceTag returns descriptors produced by the given mechanism, in order.
func (r *ExtractionResult) BySourceTag(tag SourceTag) []ResourceDescriptor {
	out := []ResourceDescriptor{}
	for _, d := range r.Descriptors {
		if d.SourceTag == tag {
			out = append(out, d)
		}
	}
	return out
}

// CategorizedLinks is the extraction-only report written to ani/extracted_links.json.
type CategorizedLinks struct {
	CSSLinks               []ResourceDescriptor `json:"cssLinks"`
	ScriptLinks            []ResourceDescriptor `json:"scriptLinks"`
	ImgLinks               []ResourceDescriptor `json:"imgLinks"`
	HTMLLinks              []ResourceDescriptor `json:"htmlLinks"`
	InlineBackgroundImages []ResourceDescriptor `json:"inlineBackgroundImages"`
	CustomAttributeFiles   []ResourceDescriptor `json:"customAttributeFiles"`
	FilesToDownload        []ResourceDescriptor `json:"filesToDownload"`
}

// Categorized splits the descriptors by the rule that produced them.
func (r *ExtractionResult) Categorized() CategorizedLinks {
	files := make([]ResourceDescriptor, len(r.Descriptors))
	copy(files, r.Descriptors)

	return CategorizedLinks{
		CSSLinks:               r.BySourceTag(SourceTagLink),
		ScriptLinks:            r.BySourceTag(SourceTagScript),
		ImgLinks:               r.BySourceTag(SourceTagImg),
		HTMLLinks:              r.BySourceTag(SourceTagAnchor),
		InlineBackgroundImages: r.BySourceTag(SourceTagStyleInline),
		CustomAttributeFiles:   r.BySourceTag(SourceTagCustomAttr),
		FilesToDownload:        files,
	}
}
