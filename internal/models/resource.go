package models

// SourceTag identifies the reference mechanism that produced a descriptor.
type SourceTag string

const (
	SourceTagLink        SourceTag = "LINK"
	SourceTagScript      SourceTag = "SCRIPT"
	SourceTagImg         SourceTag = "IMG"
	SourceTagAnchor      SourceTag = "ANCHOR"
	SourceTagStyleInline SourceTag = "STYLE_INLINE"
	SourceTagCustomAttr  SourceTag = "CUSTOM_ATTR"
	// SourceTagStylesheetURL marks url() references found inside a downloaded stylesheet.
	SourceTagStylesheetURL SourceTag = "STYLESHEET_URL"
)

// ResourceKind is the resource type derived from the resolved path's extension.
type ResourceKind string

const (
	ResourceKindStylesheet ResourceKind = "STYLESHEET"
	ResourceKindScript     ResourceKind = "SCRIPT"
	ResourceKindImage      ResourceKind = "IMAGE"
	ResourceKindHTML       ResourceKind = "HTML"
	ResourceKindUnknown    ResourceKind = "UNKNOWN"
)

// ResourceDescriptor is one discovered, classified and path-assigned reference.
type ResourceDescriptor struct {
	SourceTag         SourceTag    `json:"sourceTag"`
	ResourceKind      ResourceKind `json:"resourceKind"`
	OriginalReference string       `json:"originalReference"`
	ResolvedURL       string       `json:"resolvedUrl"`
	LocalPath         string       `json:"localPath"`
	FileName          string       `json:"fileName"`
}

// IsLinkedPage reports whether the descriptor is an anchor to an HTML page.
func (d ResourceDescriptor) IsLinkedPage() bool {
	return d.SourceTag == SourceTagAnchor && d.ResourceKind == ResourceKindHTML
}

// DocumentReference is a single raw reference found in a document by the host adapter.
// For STYLE_INLINE and CUSTOM_ATTR references Value holds the inner url() argument.
type DocumentReference struct {
	Tag       SourceTag `json:"tag"`
	Element   string    `json:"element"`
	Attribute string    `json:"attribute"`
	Value     string    `json:"value"`
	Base      string    `json:"base"`
}

// DocumentSnapshot is the rendered document handed over by a snapshot source.
type DocumentSnapshot struct {
	URL   string `json:"url"`
	HTML  string `json:"html"`
	Title string `json:"title,omitempty"`
}
