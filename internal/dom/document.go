package dom

import (
	"bytes"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/pagecapture/internal/common/errorwrapper"
	"golang.org/x/net/html"
)

// Document is a parsed page that yields plain references and accepts rewrites.
type Document struct {
	doc              *goquery.Document
	pageURL          *url.URL
	baseURL          *url.URL
	customAttributes []string
}

// Parse reads markup for the page at pageURL. A <base href> in the markup
// overrides pageURL as the base for resolving references.
func Parse(markup string, pageURL string, customAttributes []string) (*Document, error) {
	page, err := url.Parse(strings.TrimSpace(pageURL))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse page URL")
	}
	if !page.IsAbs() || page.Host == "" {
		return nil, errorwrapper.NewValidationError("page_url", pageURL, "page URL must be absolute")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse HTML content")
	}

	d := &Document{
		doc:              doc,
		pageURL:          page,
		baseURL:          page,
		customAttributes: customAttributes,
	}

	if href, ok := doc.Find("base[href]").First().Attr("href"); ok {
		if base, err := page.Parse(strings.TrimSpace(href)); err == nil && base.Host != "" {
			d.baseURL = base
		}
	}

	return d, nil
}

// PageURL returns the URL the document was captured from
func (d *Document) PageURL() *url.URL {
	return d.pageURL
}

// BaseURL returns the URL references are resolved against
func (d *Document) BaseURL() *url.URL {
	return d.baseURL
}

// Title returns the document title, if any
func (d *Document) Title() string {
	return strings.TrimSpace(d.doc.Find("title").First().Text())
}

// HTML renders the current state of the document tree.
func (d *Document) HTML() (string, error) {
	var buf bytes.Buffer
	for _, node := range d.doc.Nodes {
		if err := html.Render(&buf, node); err != nil {
			return "", errorwrapper.WrapError(err, "failed to render document")
		}
	}
	return buf.String(), nil
}
