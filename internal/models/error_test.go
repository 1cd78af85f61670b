package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrors_UnwrapAndMatch(t *testing.T) {
	cause := errors.New("boom")

	resolution := &ResolutionError{Raw: "::", Base: "https://example.com/", Err: cause}
	assert.ErrorIs(t, resolution, cause)
	assert.Contains(t, resolution.Error(), "::")

	download := &DownloadError{URL: "https://example.com/a.png", LocalPath: "assets/images/a.png", Err: cause}
	assert.ErrorIs(t, download, cause)
	assert.Contains(t, download.Error(), "assets/images/a.png")

	skip := &TransportSkipError{URL: "http://example.com/a.png", Scheme: "http"}
	assert.Equal(t, "non-secure transport: http", skip.Error())

	failure := NewExtractionFailure("https://example.com/", cause)
	assert.ErrorIs(t, failure, ErrExtractionFailed)
	assert.ErrorIs(t, failure, cause)

	var target *ExtractionFailure
	wrapped := errors.Join(errors.New("outer"), failure)
	assert.True(t, errors.As(wrapped, &target))
	assert.Equal(t, "https://example.com/", target.Target)
}
