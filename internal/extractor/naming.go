package extractor

import (
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/aleister1102/pagecapture/internal/models"
)

const (
	defaultFileName   = "default_file"
	defaultAnchorName = "default.html"
)

var illegalFilenameChars = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1F]`)

// SanitizeFilename replaces characters that are illegal in file names with '_'.
func SanitizeFilename(name string) string {
	return illegalFilenameChars.ReplaceAllString(name, "_")
}

// Classify derives the resource kind from a file name's extension.
func Classify(fileName string) models.ResourceKind {
	switch strings.ToLower(strings.TrimPrefix(path.Ext(fileName), ".")) {
	case "css":
		return models.ResourceKindStylesheet
	case "js":
		return models.ResourceKindScript
	case "jpg", "jpeg", "png", "gif", "bmp":
		return models.ResourceKindImage
	case "html", "htm":
		return models.ResourceKindHTML
	default:
		return models.ResourceKindUnknown
	}
}

// baseName returns the last path segment of a resolved URL, unsanitized.
func baseName(u *url.URL) string {
	p := u.Path
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// fileNameFor returns the sanitized file name for u, or fallback when the path has none.
func fileNameFor(u *url.URL, fallback string) string {
	name := SanitizeFilename(baseName(u))
	if name == "" {
		return fallback
	}
	return name
}

// anchorLocalPath mirrors the URL path, sanitizing every segment.
func anchorLocalPath(u *url.URL, fileName string) string {
	segments := strings.Split(strings.TrimPrefix(u.Path, "/"), "/")
	dirs := segments[:len(segments)-1]

	parts := make([]string, 0, len(segments))
	for _, seg := range dirs {
		if seg == "" {
			continue
		}
		seg = SanitizeFilename(seg)
		if seg == "." || seg == ".." {
			seg = "_"
		}
		parts = append(parts, seg)
	}
	if fileName == "." || fileName == ".." {
		fileName = "_"
	}
	return strings.Join(append(parts, fileName), "/")
}

// localPathFor joins a rule directory and file name into a slash separated path.
func localPathFor(directory, fileName string) string {
	if fileName == "." || fileName == ".." {
		fileName = "_"
	}
	if directory == "" {
		return fileName
	}
	return directory + "/" + fileName
}
