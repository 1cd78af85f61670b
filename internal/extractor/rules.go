package extractor

import "github.com/aleister1102/pagecapture/internal/models"

// Rule binds a reference mechanism to the directory its files are stored in.
// An empty Directory means the local path mirrors the URL path.
type Rule struct {
	Tag       models.SourceTag
	Directory string
}

// DefaultRules run in discovery order. Earlier rules win de-duplication.
var DefaultRules = []Rule{
	{Tag: models.SourceTagLink, Directory: models.DirectoryCSS},
	{Tag: models.SourceTagScript, Directory: models.DirectoryJS},
	{Tag: models.SourceTagImg, Directory: models.DirectoryImages},
	{Tag: models.SourceTagAnchor, Directory: ""},
	{Tag: models.SourceTagStyleInline, Directory: models.DirectoryImages},
	{Tag: models.SourceTagCustomAttr, Directory: models.DirectoryImages},
}
