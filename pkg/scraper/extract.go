package scraper

import (
	"bytes"
	"log"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/markusmobius/go-trafilatura"
)

// contentSelectors are tried in order, each group covering known layouts of
// major Korean portals before falling back to generic containers
var contentSelectors = []string{
	// naver news, media_end_summary subtitle first
	".media_end_summary.subtitle, #dic_area, .go_trans._article_content, ._article_content",
	// daum news
	".news_view .article_view, .news_article .article_view",
	// generic article containers
	"article, .article, .news-article, .post-content, .entry-content",
	".content, .main-content, .article-content, .news-content",
	// last resort containers
	"main, #main, .main, #content, .post, .story",
}

// noiseSelectors are stripped from matched containers before taking text.
// end_photo_org is the naver photo caption wrapper.
const noiseSelectors = "script, style, .ad, .advertisement, .related, .comment, .end_photo_org"

// titleSelectors match headline elements across Korean news sites
const titleSelectors = "h1, .headline, .title, .news-headline, .article-headline"

// extractTitle returns the first non-empty headline match, then the document
// title's first segment, then a literal fallback
func extractTitle(doc *goquery.Document) string {
	if title := strings.TrimSpace(doc.Find(titleSelectors).First().Text()); title != "" {
		return title
	}

	// site titles look like "headline | publisher" or "headline - publisher"
	docTitle := strings.ReplaceAll(doc.Find("title").Text(), " - ", " | ")
	if first := strings.TrimSpace(strings.Split(docTitle, " | ")[0]); first != "" {
		return first
	}

	return "No title found"
}

// extractContent tries each selector group in order and returns the first
// acceptable body text, empty string when nothing qualifies
func (s *Scraper) extractContent(doc *goquery.Document) string {
	for _, selector := range contentSelectors {
		elements := doc.Find(selector)
		if elements.Length() == 0 {
			continue
		}

		elements.Find(noiseSelectors).Remove()

		// take the single matched element with the longest text
		var content string
		elements.Each(func(_ int, el *goquery.Selection) {
			if text := el.Text(); len(text) > len(content) {
				content = text
			}
		})

		if cleaned := cleanText(content); utf8.RuneCountInString(cleaned) > s.cfg.MinTextLength {
			return cleaned
		}
	}

	// fallback: concatenate all paragraphs, excluding photo captions
	doc.Find("p .end_photo_org").Remove()
	var paragraphs []string
	doc.Find("p").Each(func(_ int, el *goquery.Selection) {
		paragraphs = append(paragraphs, el.Text())
	})

	if cleaned := cleanText(strings.Join(paragraphs, "\n")); utf8.RuneCountInString(cleaned) > s.cfg.MinTextLength {
		return cleaned
	}
	return ""
}

// fallbackExtract runs trafilatura over the raw page as a last resort for
// layouts none of the known selectors cover
func (s *Scraper) fallbackExtract(rawHTML []byte, urlStr string) string {
	opts := trafilatura.Options{
		EnableFallback:  true,
		ExcludeComments: true,
	}
	if parsed, err := url.Parse(urlStr); err == nil {
		opts.OriginalURL = parsed
	}

	result, err := trafilatura.Extract(bytes.NewReader(rawHTML), opts)
	if err != nil || result == nil {
		log.Printf("[DEBUG] trafilatura fallback produced nothing for %s", urlStr)
		return ""
	}

	if cleaned := cleanText(result.ContentText); utf8.RuneCountInString(cleaned) > s.cfg.MinTextLength {
		return cleaned
	}
	return ""
}
