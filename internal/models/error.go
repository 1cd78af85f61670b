package models

import (
	"errors"
	"fmt"
)

// ErrExtractionFailed is matched by every ExtractionFailure via errors.Is.
var ErrExtractionFailed = errors.New("extraction failed")

// ResolutionError is raised when a single reference cannot be resolved to an absolute URL.
type ResolutionError struct {
	Raw  string
	Base string
	Err  error
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve reference '%s' against '%s': %v", e.Raw, e.Base, e.Err)
}

func (e *ResolutionError) Unwrap() error {
	return e.Err
}

// TransportSkipError marks a resource that is not delivered over HTTPS.
type TransportSkipError struct {
	URL    string
	Scheme string
}

func (e *TransportSkipError) Error() string {
	return fmt.Sprintf("non-secure transport: %s", e.Scheme)
}

// DownloadError wraps a fetch or write failure for one file.
type DownloadError struct {
	URL       string
	LocalPath string
	Err       error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download of '%s' to '%s' failed: %v", e.URL, e.LocalPath, e.Err)
}

func (e *DownloadError) Unwrap() error {
	return e.Err
}

// ExtractionFailure means the document snapshot could not be obtained or read.
type ExtractionFailure struct {
	Target string
	Err    error
}

func (e *ExtractionFailure) Error() string {
	return fmt.Sprintf("extraction failed for '%s': %v", e.Target, e.Err)
}

func (e *ExtractionFailure) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match ErrExtractionFailed.
func (e *ExtractionFailure) Is(target error) bool {
	return target == ErrExtractionFailed
}

// NewExtractionFailure creates an ExtractionFailure for a target.
func NewExtractionFailure(target string, err error) *ExtractionFailure {
	return &ExtractionFailure{Target: target, Err: err}
}
