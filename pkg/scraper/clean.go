package scraper

import (
	"regexp"
	"strings"
)

var (
	spaceRe   = regexp.MustCompile(`[^\S\n]+`) // whitespace runs except newlines
	newlineRe = regexp.MustCompile(`\n+`)
)

// entityReplacer decodes the handful of HTML entities that survive in feed
// titles and article text after parsing
var entityReplacer = strings.NewReplacer(
	"&quot;", `"`,
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&nbsp;", " ",
	"&#39;", "'",
	"&apos;", "'",
)

// cleanText decodes common HTML entities, collapses whitespace runs to a
// single space and newline runs to a single newline, and trims the result
func cleanText(text string) string {
	text = entityReplacer.Replace(text)
	text = spaceRe.ReplaceAllString(text, " ")
	text = newlineRe.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
