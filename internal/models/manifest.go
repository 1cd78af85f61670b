package models

import (
	"path"
	"sync"
)

// DownloadStatusSuccess is the status recorded for every downloaded entry.
const DownloadStatusSuccess = "success"

// Manifest directory keys pre-seeded in every report.
const (
	DirectoryHTML   = "html"
	DirectoryCSS    = "assets/css"
	DirectoryJS     = "assets/js"
	DirectoryImages = "assets/images"
)

// DownloadedEntry records a file written during a capture run.
type DownloadedEntry struct {
	Type     ResourceKind `json:"type"`
	URL      string       `json:"url,omitempty"`
	Filename string       `json:"filename"`
	Status   string       `json:"status"`
}

// SkippedEntry records a descriptor that was not written and why.
type SkippedEntry struct {
	Type   ResourceKind `json:"type"`
	URL    string       `json:"url"`
	Reason string       `json:"reason"`
}

// Manifest is the end-of-run record of every download attempt.
type Manifest struct {
	mu          sync.Mutex
	Downloaded  []DownloadedEntry   `json:"downloaded"`
	Skipped     []SkippedEntry      `json:"skipped"`
	Directories map[string][]string `json:"directories"`
}

// NewManifest creates an empty manifest with the default directory keys.
func NewManifest() *Manifest {
	return &Manifest{
		Downloaded: []DownloadedEntry{},
		Skipped:    []SkippedEntry{},
		Directories: map[string][]string{
			DirectoryHTML:   {},
			DirectoryCSS:    {},
			DirectoryJS:     {},
			DirectoryImages: {},
		},
	}
}

// RecordPage records an HTML page written from captured markup.
func (m *Manifest) RecordPage(url, filename string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Downloaded = append(m.Downloaded, DownloadedEntry{
		Type:     ResourceKindHTML,
		URL:      url,
		Filename: filename,
		Status:   DownloadStatusSuccess,
	})
	m.Directories[DirectoryHTML] = append(m.Directories[DirectoryHTML], filename)
}

// RecordSuccess records a downloaded asset under its parent directory.
func (m *Manifest) RecordSuccess(kind ResourceKind, url, filename string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Downloaded = append(m.Downloaded, DownloadedEntry{
		Type:     kind,
		URL:      url,
		Filename: filename,
		Status:   DownloadStatusSuccess,
	})

	dir := path.Dir(filename)
	if kind == ResourceKindHTML {
		dir = DirectoryHTML
	}
	m.Directories[dir] = append(m.Directories[dir], filename)
}

// RecordSkip records a descriptor that was skipped or failed.
func (m *Manifest) RecordSkip(kind ResourceKind, url, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Skipped = append(m.Skipped, SkippedEntry{
		Type:   kind,
		URL:    url,
		Reason: reason,
	})
}

// Counts returns the number of downloaded and skipped entries.
func (m *Manifest) Counts() (downloaded, skipped int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Downloaded), len(m.Skipped)
}
