// Package search finds news articles for a keyword. The primary provider is
// the Naver news open API; an RSS-based provider covers setups without Naver
// credentials.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/econoscope/econoscope/pkg/config"
	"github.com/econoscope/econoscope/pkg/domain"
)

const naverAPIURL = "https://openapi.naver.com/v1/search/news.json"

// NaverClient queries the Naver news search open API
type NaverClient struct {
	clientID     string
	clientSecret string
	maxDisplay   int
	baseURL      string
	client       *http.Client
}

// naverResponse is the Naver API response shape
type naverResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Link        string `json:"link"`
		PubDate     string `json:"pubDate"`
	} `json:"items"`
}

// NewNaver creates a Naver search client. Missing credentials are a
// configuration error surfaced here, not silently tolerated.
func NewNaver(cfg config.SearchConfig) (*NaverClient, error) {
	if cfg.ClientID == "" || cfg.ClientSecret == "" {
		return nil, fmt.Errorf("naver API credentials not configured")
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	maxDisplay := cfg.MaxDisplay
	if maxDisplay == 0 {
		maxDisplay = 100
	}

	return &NaverClient{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		maxDisplay:   maxDisplay,
		baseURL:      naverAPIURL,
		client:       &http.Client{Timeout: timeout},
	}, nil
}

// Search returns up to display articles matching the keyword, sorted by
// relevance. Titles and descriptions come back with markup which is stripped.
func (c *NaverClient) Search(ctx context.Context, keyword string, display int) ([]domain.Article, error) {
	if keyword == "" {
		return nil, fmt.Errorf("keyword is required")
	}
	if display <= 0 {
		display = 10
	}
	if display > c.maxDisplay {
		display = c.maxDisplay
	}

	params := url.Values{}
	params.Set("query", keyword)
	params.Set("display", strconv.Itoa(display))
	params.Set("sort", "sim")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("X-Naver-Client-Id", c.clientID)
	req.Header.Set("X-Naver-Client-Secret", c.clientSecret)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("naver search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("naver search returned status %d", resp.StatusCode)
	}

	var data naverResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode naver response: %w", err)
	}

	articles := make([]domain.Article, len(data.Items))
	for i, item := range data.Items {
		articles[i] = domain.Article{
			Title:       stripTags(item.Title),
			Description: stripTags(item.Description),
			Link:        item.Link,
			PubDate:     item.PubDate,
		}
	}
	return articles, nil
}
