// Package scraper extracts article text from Korean news pages. Extraction is
// best-effort: unsupported page structures produce a failed result, not an error.
package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	"github.com/econoscope/econoscope/pkg/domain"
)

// Config holds scraper settings
type Config struct {
	Timeout       time.Duration // per-request timeout
	MaxRedirects  int           // redirect limit
	MaxRetries    int           // extra attempts in ScrapeWithRetry
	MinTextLength int           // minimum accepted body length in runes
	UserAgent     string        // overrides the default Chrome identity
	UseFallback   bool          // run trafilatura when selectors find nothing
}

// Scraper fetches article pages and extracts plain-text content
type Scraper struct {
	cfg    Config
	client *http.Client
}

// New creates a scraper with the given configuration, filling in defaults
// for zero values
func New(cfg Config) *Scraper {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRedirects == 0 {
		cfg.MaxRedirects = 5
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 2
	}
	if cfg.MinTextLength == 0 {
		cfg.MinTextLength = 100
	}

	maxRedirects := cfg.MaxRedirects
	return &Scraper{
		cfg: cfg,
		client: &http.Client{
			Timeout: cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
	}
}

// Scrape fetches the URL and extracts title, body and metadata. All failures,
// transport or extraction, are reported in the result with Success=false.
func (s *Scraper) Scrape(ctx context.Context, urlStr string) domain.ScrapedArticle {
	log.Printf("[DEBUG] scraping article: %s", urlStr)

	rawHTML, err := s.fetch(ctx, urlStr)
	if err != nil {
		log.Printf("[WARN] scraping failed for %s: %v", urlStr, err)
		return domain.ScrapedArticle{Title: "Scraping failed", Error: err.Error()}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(rawHTML))
	if err != nil {
		log.Printf("[WARN] parse failed for %s: %v", urlStr, err)
		return domain.ScrapedArticle{Title: "Scraping failed", Error: err.Error()}
	}

	title := extractTitle(doc)
	content := s.extractContent(doc)

	if content == "" && s.cfg.UseFallback {
		content = s.fallbackExtract(rawHTML, urlStr)
	}

	if content == "" {
		return domain.ScrapedArticle{
			Title: title,
			Error: "could not extract article content",
		}
	}

	return domain.ScrapedArticle{
		Title:         cleanText(title),
		Content:       content,
		PublishedDate: firstText(doc, "time, .date, .publish-date, .article-date"),
		Author:        firstText(doc, ".author, .byline, .writer"),
		Success:       true,
	}
}

// ScrapeWithRetry invokes Scrape up to maxRetries+1 times, returning the first
// success immediately. Waits between attempts grow linearly: 1s, 2s, ...
func (s *Scraper) ScrapeWithRetry(ctx context.Context, urlStr string) domain.ScrapedArticle {
	for i := 0; i <= s.cfg.MaxRetries; i++ {
		result := s.Scrape(ctx, urlStr)
		if result.Success || i == s.cfg.MaxRetries {
			return result
		}

		wait := time.Duration(i+1) * time.Second
		log.Printf("[DEBUG] retrying %s in %v, attempt %d failed: %s", urlStr, wait, i+1, result.Error)
		select {
		case <-ctx.Done():
			return domain.ScrapedArticle{Title: "Scraping failed", Error: ctx.Err().Error()}
		case <-time.After(wait):
		}
	}

	// not reachable with MaxRetries >= 0, kept as a guard
	return domain.ScrapedArticle{Title: "Scraping failed", Error: "max retries exceeded"}
}

// fetch retrieves the page and returns its body decoded to UTF-8. Korean news
// sites still serve EUC-KR now and then, so the body goes through charset
// detection before parsing.
func (s *Scraper) fetch(ctx context.Context, urlStr string) ([]byte, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("parse URL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid URL: %s", urlStr)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	addBrowserHeaders(req, s.cfg.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch URL %s: %w", urlStr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status code %d for URL %s", resp.StatusCode, urlStr)
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("detect charset for %s: %w", urlStr, err)
	}

	body, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", urlStr, err)
	}
	return body, nil
}

// firstText returns the trimmed text of the first element matching the
// selector, empty when nothing matches
func firstText(doc *goquery.Document, selector string) string {
	return cleanText(doc.Find(selector).First().Text())
}
