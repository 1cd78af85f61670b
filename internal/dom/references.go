package dom

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/aleister1102/pagecapture/internal/models"
)

// Visitor is called once per reference in discovery order. Returning true
// replaces the reference's value with the returned string.
type Visitor func(ref models.DocumentReference) (string, bool)

type attributeRule struct {
	tag       models.SourceTag
	selector  string
	attribute string
	accept    func(s *goquery.Selection) bool
}

// attributeRules lists the whole-attribute rules in discovery order.
var attributeRules = []attributeRule{
	{tag: models.SourceTagLink, selector: "link[href]", attribute: "href", accept: isStylesheet},
	{tag: models.SourceTagScript, selector: "script[src]", attribute: "src"},
	{tag: models.SourceTagImg, selector: "img[src]", attribute: "src"},
	{tag: models.SourceTagAnchor, selector: "a[href]", attribute: "href"},
}

func isStylesheet(s *goquery.Selection) bool {
	for _, rel := range strings.Fields(strings.ToLower(s.AttrOr("rel", ""))) {
		if rel == "stylesheet" {
			return true
		}
	}
	return false
}

// References returns every reference in the document: stylesheets, scripts,
// images, anchors, inline background images, then custom attributes.
func (d *Document) References() []models.DocumentReference {
	refs := []models.DocumentReference{}
	d.Walk(func(ref models.DocumentReference) (string, bool) {
		refs = append(refs, ref)
		return "", false
	})
	return refs
}

// Walk visits references in the same order as References and applies the
// replacements returned by v. It returns the number of values replaced.
func (d *Document) Walk(v Visitor) int {
	replaced := 0
	base := d.baseURL.String()

	newRef := func(tag models.SourceTag, s *goquery.Selection, attr, value string) models.DocumentReference {
		return models.DocumentReference{
			Tag:       tag,
			Element:   goquery.NodeName(s),
			Attribute: attr,
			Value:     value,
			Base:      base,
		}
	}

	for _, rule := range attributeRules {
		d.doc.Find(rule.selector).Each(func(_ int, s *goquery.Selection) {
			if rule.accept != nil && !rule.accept(s) {
				return
			}
			raw := strings.TrimSpace(s.AttrOr(rule.attribute, ""))
			if raw == "" {
				return
			}
			if replacement, ok := v(newRef(rule.tag, s, rule.attribute, raw)); ok && replacement != raw {
				s.SetAttr(rule.attribute, replacement)
				replaced++
			}
		})
	}

	d.doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style := s.AttrOr("style", "")
		updated, n := ReplaceStyleURLs(style, func(inner string) (string, bool) {
			return v(newRef(models.SourceTagStyleInline, s, "style", inner))
		})
		if n > 0 && updated != style {
			s.SetAttr("style", updated)
			replaced += n
		}
	})

	for _, name := range d.customAttributes {
		d.doc.Find("*").Each(func(_ int, s *goquery.Selection) {
			value, ok := s.Attr(name)
			if !ok {
				return
			}
			updated, n := ReplaceURLs(value, func(inner string) (string, bool) {
				return v(newRef(models.SourceTagCustomAttr, s, name, inner))
			})
			if n > 0 && updated != value {
				s.SetAttr(name, updated)
				replaced += n
			}
		})
	}

	return replaced
}
