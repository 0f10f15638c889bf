package server

import "github.com/econoscope/econoscope/pkg/domain"

// articleRequest is the caller-supplied article shape for batch curation
type articleRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Link        string `json:"link"`
	PubDate     string `json:"pubDate"`
}

// toArticles converts request articles to domain articles
func toArticles(reqs []articleRequest) []domain.Article {
	articles := make([]domain.Article, len(reqs))
	for i, r := range reqs {
		articles[i] = domain.Article{
			Title:       r.Title,
			Description: r.Description,
			Link:        r.Link,
			PubDate:     r.PubDate,
		}
	}
	return articles
}
