package search

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict policy removes every tag, leaving text content only
var stripPolicy = bluemonday.StrictPolicy()

// stripTags removes markup from provider-supplied text. Naver wraps matched
// keywords in <b> tags and escapes entities in titles.
func stripTags(s string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy.Sanitize(s)))
}
