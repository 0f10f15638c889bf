// Package cache stores derived AI outputs keyed by a digest of the semantic
// input text, eliminating duplicate calls to the paid language model. The
// cache is a pure accelerator: every operation degrades to a miss or no-op on
// any backing store failure and never surfaces errors to callers.
package cache

import (
	"context"
	"crypto/md5" //nolint:gosec // md5 is used as a cache digest, not for security
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"

	"github.com/econoscope/econoscope/pkg/domain"
)

// Kind identifies the derivation a cache entry holds. Curation and formatting
// use distinct kinds so entries with related keys can never shadow each other.
type Kind string

// cache entry kinds
const (
	KindTranslation Kind = "translation"
	KindSummary     Kind = "summary"
	KindCuration    Kind = "curation"
	KindFormatting  Kind = "formatting"
)

// Backing is the keyed record store the cache writes through to
type Backing interface {
	Upsert(ctx context.Context, key string, kind Kind, data []byte) error
	Get(ctx context.Context, key string, kind Kind) ([]byte, error)
}

// Cache provides typed, best-effort access to cached AI responses.
// A Cache constructed without a backing store reports every lookup as a miss.
type Cache struct {
	store Backing
}

// New creates a cache over the given backing store. A nil store yields a
// disabled cache where every operation is a no-op.
func New(store Backing) *Cache {
	return &Cache{store: store}
}

// Enabled reports whether a backing store is configured
func (c *Cache) Enabled() bool {
	return c.store != nil
}

// digest derives the storage key from the semantic text. MD5 keeps the key
// length-independent of the input and collision-resistant enough for caching.
func digest(semanticKey string) string {
	sum := md5.Sum([]byte(semanticKey)) //nolint:gosec // cache key, not a security boundary
	return hex.EncodeToString(sum[:])
}

// payload shapes stored per kind, each pairs the original text with the
// derived value

type translationPayload struct {
	Original    string `json:"original"`
	Translation string `json:"translation"`
}

type summaryPayload struct {
	Original string `json:"original"`
	Summary  string `json:"summary"`
}

type curationPayload struct {
	Original string                `json:"original"`
	Curation domain.CurationResult `json:"curation"`
}

type formattingPayload struct {
	Original  string `json:"original"`
	Formatted string `json:"formatted"`
}

// set marshals and writes a payload, logging and swallowing failures
func (c *Cache) set(ctx context.Context, kind Kind, semanticKey string, payload interface{}) {
	if c.store == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[WARN] failed to marshal %s cache payload: %v", kind, err)
		return
	}

	if err := c.store.Upsert(ctx, digest(semanticKey), kind, data); err != nil {
		log.Printf("[WARN] failed to cache %s entry: %v", kind, err)
	}
}

// get reads and unmarshals a payload, reporting misses and store errors alike
// as not-found
func (c *Cache) get(ctx context.Context, kind Kind, semanticKey string, out interface{}) bool {
	if c.store == nil {
		return false
	}

	data, err := c.store.Get(ctx, digest(semanticKey), kind)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			log.Printf("[WARN] cache lookup for %s failed: %v", kind, err)
		}
		return false
	}

	if err := json.Unmarshal(data, out); err != nil {
		log.Printf("[WARN] failed to unmarshal %s cache payload: %v", kind, err)
		return false
	}
	return true
}

// SetTranslation caches a translation of the original text
func (c *Cache) SetTranslation(ctx context.Context, originalText, translation string) {
	c.set(ctx, KindTranslation, originalText, translationPayload{Original: originalText, Translation: translation})
}

// GetTranslation returns the cached translation, ok=false on miss
func (c *Cache) GetTranslation(ctx context.Context, originalText string) (translation string, ok bool) {
	var p translationPayload
	if !c.get(ctx, KindTranslation, originalText, &p) {
		return "", false
	}
	return p.Translation, true
}

// SetSummary caches a summary of the original text
func (c *Cache) SetSummary(ctx context.Context, originalText, summary string) {
	c.set(ctx, KindSummary, originalText, summaryPayload{Original: originalText, Summary: summary})
}

// GetSummary returns the cached summary, ok=false on miss
func (c *Cache) GetSummary(ctx context.Context, originalText string) (summary string, ok bool) {
	var p summaryPayload
	if !c.get(ctx, KindSummary, originalText, &p) {
		return "", false
	}
	return p.Summary, true
}

// SetCuration caches a curation result for the original text
func (c *Cache) SetCuration(ctx context.Context, originalText string, curation domain.CurationResult) {
	c.set(ctx, KindCuration, originalText, curationPayload{Original: originalText, Curation: curation})
}

// GetCuration returns the cached curation result, ok=false on miss
func (c *Cache) GetCuration(ctx context.Context, originalText string) (curation domain.CurationResult, ok bool) {
	var p curationPayload
	if !c.get(ctx, KindCuration, originalText, &p) {
		return domain.CurationResult{}, false
	}
	return p.Curation, true
}

// SetFormatting caches reformatted text for the original text
func (c *Cache) SetFormatting(ctx context.Context, originalText, formatted string) {
	c.set(ctx, KindFormatting, originalText, formattingPayload{Original: originalText, Formatted: formatted})
}

// GetFormatting returns the cached reformatted text, ok=false on miss
func (c *Cache) GetFormatting(ctx context.Context, originalText string) (formatted string, ok bool) {
	var p formattingPayload
	if !c.get(ctx, KindFormatting, originalText, &p) {
		return "", false
	}
	return p.Formatted, true
}
