package dom

import (
	"regexp"
	"strings"

	"github.com/gorilla/css/scanner"
)

// uriPattern splits a url() token into its quote and inner reference.
var uriPattern = regexp.MustCompile(`^url\(\s*(['"]?)(.*?)(['"]?)\s*\)$`)

// urlFunction matches the url( opener in any letter case.
var urlFunction = regexp.MustCompile(`(?i)url\(`)

// backgroundProperties are the declarations whose url() tokens count as inline background images.
var backgroundProperties = map[string]bool{
	"background-image": true,
	"background":       true,
}

// URLReplacer receives the inner value of a url() token and returns its replacement.
type URLReplacer func(inner string) (replacement string, replace bool)

// ReplaceStyleURLs rewrites url() references inside background declarations.
func ReplaceStyleURLs(style string, fn URLReplacer) (string, int) {
	return replace(style, true, fn)
}

// ReplaceURLs rewrites every url() reference in value, such as a stylesheet body.
func ReplaceURLs(value string, fn URLReplacer) (string, int) {
	return replace(value, false, fn)
}

// replace walks the CSS tokens of input and hands each qualifying url() token to fn.
// Input that fails to tokenize is kept verbatim from the failure point on.
func replace(input string, backgroundOnly bool, fn URLReplacer) (string, int) {
	if !urlFunction.MatchString(input) {
		return input, 0
	}

	var out strings.Builder
	out.Grow(len(input))

	// The tokenizer only knows lower case url(. Folding keeps every offset,
	// so output is copied from input.
	s := scanner.New(urlFunction.ReplaceAllLiteralString(input, "url("))
	consumed := 0
	replaced := 0
	property := ""
	pendingIdent := ""

	for {
		token := s.Next()
		if token.Type == scanner.TokenEOF {
			break
		}
		if token.Type == scanner.TokenError {
			out.WriteString(input[consumed:])
			break
		}
		start := consumed
		consumed += len(token.Value)
		original := input[start:consumed]

		switch token.Type {
		case scanner.TokenS, scanner.TokenComment:
		case scanner.TokenIdent:
			pendingIdent = token.Value
		case scanner.TokenChar:
			switch token.Value {
			case ":":
				if property == "" && pendingIdent != "" {
					property = strings.ToLower(pendingIdent)
				}
			case ";", "{", "}":
				property = ""
			}
			pendingIdent = ""
		case scanner.TokenURI:
			pendingIdent = ""
			if backgroundOnly && !backgroundProperties[property] {
				break
			}
			quote, inner, ok := splitURI(token.Value)
			if !ok {
				break
			}
			if replacement, doReplace := fn(inner); doReplace {
				out.WriteString(original[:len("url(")] + quote + replacement + quote + ")")
				replaced++
				continue
			}
		default:
			pendingIdent = ""
		}

		out.WriteString(original)
	}

	if replaced == 0 {
		return input, 0
	}
	return out.String(), replaced
}

// splitURI extracts the reference of a url() token. Empty references are rejected.
func splitURI(token string) (quote, inner string, ok bool) {
	m := uriPattern.FindStringSubmatch(token)
	if m == nil || m[1] != m[3] {
		return "", "", false
	}
	inner = strings.TrimSpace(m[2])
	if inner == "" {
		return "", "", false
	}
	return m[1], inner, true
}
