// Package curator orchestrates article enrichment: cache-first curation
// scoring, translation, summarization and formatting. Per-article failures
// degrade to neutral defaults and never abort a batch.
package curator

import (
	"context"
	"errors"
	"log"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/econoscope/econoscope/pkg/cache"
	"github.com/econoscope/econoscope/pkg/domain"
	"github.com/econoscope/econoscope/pkg/llm"
)

// ErrNotConfigured indicates AI features are disabled because no language
// model credentials were provided
var ErrNotConfigured = errors.New("ai features not configured")

// korean user-facing reason shown when curation cannot run at all
const curationUnavailable = "큐레이션 사용 불가"

// LLM is the language-model surface the curator consumes
type LLM interface {
	Curate(ctx context.Context, title, description string) (domain.CurationResult, error)
	Translate(ctx context.Context, text string) (string, error)
	Summarize(ctx context.Context, title, description, content string) (string, error)
	Format(ctx context.Context, text string) (string, error)
}

// Curator enriches articles, consulting the response cache before every paid
// model call
type Curator struct {
	llm        LLM // nil means AI features are disabled
	cache      *cache.Cache
	maxWorkers int
}

// Params holds curator dependencies
type Params struct {
	LLM        LLM // leave nil to construct a disabled curator
	Cache      *cache.Cache
	MaxWorkers int
}

// New creates a curator. With a nil LLM the curator runs disabled: batch
// curation yields defaults and single operations return ErrNotConfigured.
func New(p Params) *Curator {
	if p.MaxWorkers <= 0 {
		p.MaxWorkers = 5
	}
	if p.Cache == nil {
		p.Cache = cache.New(nil)
	}
	return &Curator{llm: p.LLM, cache: p.Cache, maxWorkers: p.MaxWorkers}
}

// Enabled reports whether the language model is configured
func (c *Curator) Enabled() bool {
	return c.llm != nil
}

// BatchResult is the outcome of curating a batch of articles
type BatchResult struct {
	Articles     []domain.Article
	AverageScore float64
}

// CurateBatch enriches every article concurrently and returns them sorted by
// importance score descending; ties keep their original relative order. The
// result always contains exactly the input articles.
func (c *Curator) CurateBatch(ctx context.Context, articles []domain.Article) BatchResult {
	if len(articles) == 0 {
		return BatchResult{Articles: []domain.Article{}}
	}

	curated := make([]domain.Article, len(articles))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.maxWorkers)
	for i, article := range articles {
		g.Go(func() error {
			curated[i] = c.curateOne(gctx, article)
			return nil
		})
	}
	_ = g.Wait() // workers never return errors, they degrade to defaults

	var sum float64
	for i := range curated {
		sum += curated[i].ImportanceScore
	}

	sort.SliceStable(curated, func(i, j int) bool {
		return curated[i].ImportanceScore > curated[j].ImportanceScore
	})

	return BatchResult{Articles: curated, AverageScore: sum / float64(len(curated))}
}

// curateOne enriches a single article, cache first, model second, defaults on
// any failure
func (c *Curator) curateOne(ctx context.Context, article domain.Article) domain.Article {
	if c.llm == nil {
		result := domain.DefaultCuration(curationUnavailable)
		result.Apply(&article)
		return article
	}

	key := article.SemanticKey()
	if cached, ok := c.cache.GetCuration(ctx, key); ok {
		log.Printf("[DEBUG] using cached curation for: %s", article.Title)
		cached.Apply(&article)
		return article
	}

	log.Printf("[DEBUG] calling model for curation: %s", article.Title)
	result, err := c.llm.Curate(ctx, article.Title, article.Description)
	if err != nil {
		log.Printf("[WARN] curation failed for %q: %v", article.Title, err)
		result = domain.DefaultCuration("Curation analysis failed")
		result.Apply(&article)
		return article
	}

	c.cache.SetCuration(ctx, key, result)
	result.Apply(&article)
	return article
}

// Translate returns the English translation of the text, cached when possible
func (c *Curator) Translate(ctx context.Context, text string) (string, error) {
	if c.llm == nil {
		return "", ErrNotConfigured
	}

	if cached, ok := c.cache.GetTranslation(ctx, text); ok {
		log.Printf("[DEBUG] using cached translation")
		return cached, nil
	}

	translation, err := c.llm.Translate(ctx, text)
	if err != nil {
		return "", err
	}
	c.cache.SetTranslation(ctx, text, translation)
	return translation, nil
}

// Summarize returns a Korean summary, preferring full article content over
// title+description when available
func (c *Curator) Summarize(ctx context.Context, title, description, content string) (string, error) {
	if c.llm == nil {
		return "", ErrNotConfigured
	}

	key := llm.SemanticSummaryKey(title, description, content)
	if cached, ok := c.cache.GetSummary(ctx, key); ok {
		log.Printf("[DEBUG] using cached summary")
		return cached, nil
	}

	summary, err := c.llm.Summarize(ctx, title, description, content)
	if err != nil {
		return "", err
	}
	c.cache.SetSummary(ctx, key, summary)
	return summary, nil
}

// Format returns the article text reformatted into readable paragraphs
func (c *Curator) Format(ctx context.Context, text string) (string, error) {
	if c.llm == nil {
		return "", ErrNotConfigured
	}

	if cached, ok := c.cache.GetFormatting(ctx, text); ok {
		log.Printf("[DEBUG] using cached formatting")
		return cached, nil
	}

	formatted, err := c.llm.Format(ctx, text)
	if err != nil {
		return "", err
	}
	c.cache.SetFormatting(ctx, text, formatted)
	return formatted, nil
}
