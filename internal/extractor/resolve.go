package extractor

import (
	"errors"
	"net/url"
	"strings"

	"github.com/aleister1102/pagecapture/internal/models"
)

var errNotAddressable = errors.New("reference does not resolve to a network address")

// ResolveReference resolves raw against base and strips the fragment.
// References without a host, such as data: or mailto:, are rejected.
func ResolveReference(base, raw string) (*url.URL, error) {
	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, &models.ResolutionError{Raw: raw, Base: base, Err: err}
	}

	ref, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, &models.ResolutionError{Raw: raw, Base: base, Err: err}
	}

	resolved := baseURL.ResolveReference(ref)
	if !resolved.IsAbs() || resolved.Host == "" {
		return nil, &models.ResolutionError{Raw: raw, Base: base, Err: errNotAddressable}
	}

	resolved.Fragment = ""
	resolved.RawFragment = ""
	return resolved, nil
}

// isAbsoluteReference reports whether an authored value carries its own origin.
func isAbsoluteReference(raw string) bool {
	if strings.HasPrefix(raw, "//") {
		return true
	}
	u, err := url.Parse(raw)
	return err == nil && u.IsAbs()
}
