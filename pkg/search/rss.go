package search

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/econoscope/econoscope/pkg/config"
	"github.com/econoscope/econoscope/pkg/domain"
)

// google news keyword search feed, Korean locale
const googleNewsRSS = "https://news.google.com/rss/search"

// RSSClient searches news via keyword RSS feeds, a credential-free
// alternative to the Naver API
type RSSClient struct {
	parser     *gofeed.Parser
	maxDisplay int
	timeout    time.Duration
	baseURL    string
}

// NewRSS creates an RSS search client
func NewRSS(cfg config.SearchConfig) *RSSClient {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxDisplay := cfg.MaxDisplay
	if maxDisplay == 0 {
		maxDisplay = 100
	}

	return &RSSClient{
		parser:     gofeed.NewParser(),
		maxDisplay: maxDisplay,
		timeout:    timeout,
		baseURL:    googleNewsRSS,
	}
}

// Search fetches and parses the keyword feed, returning up to display articles
func (c *RSSClient) Search(ctx context.Context, keyword string, display int) ([]domain.Article, error) {
	if keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	if display <= 0 {
		display = 10
	}
	if display > c.maxDisplay {
		display = c.maxDisplay
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := url.Values{}
	params.Set("q", keyword)
	params.Set("hl", "ko")
	params.Set("gl", "KR")
	params.Set("ceid", "KR:ko")

	feed, err := c.parser.ParseURLWithContext(c.baseURL+"?"+params.Encode(), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse news feed for %q: %w", keyword, err)
	}

	items := feed.Items
	if len(items) > display {
		items = items[:display]
	}

	articles := make([]domain.Article, len(items))
	for i, item := range items {
		articles[i] = domain.Article{
			Title:       stripTags(item.Title),
			Description: stripTags(item.Description),
			Link:        item.Link,
			PubDate:     item.Published,
		}
	}
	return articles, nil
}
