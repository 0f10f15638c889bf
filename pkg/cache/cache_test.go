package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/econoscope/econoscope/pkg/domain"
)

func setupTestCache(t *testing.T) *Cache {
	t.Helper()
	store, err := NewStore(context.Background(), StoreConfig{
		DSN: fmt.Sprintf("file:%s/cache.db?mode=rwc", t.TempDir()),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return New(store)
}

func TestCache_TranslationRoundTrip(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	original := "원달러 환율이 1,400원을 돌파했다"
	_, ok := c.GetTranslation(ctx, original)
	assert.False(t, ok, "unwritten key must be a miss")

	c.SetTranslation(ctx, original, "The won-dollar exchange rate broke through 1,400 won")

	got, ok := c.GetTranslation(ctx, original)
	require.True(t, ok)
	assert.Equal(t, "The won-dollar exchange rate broke through 1,400 won", got)
}

func TestCache_SummaryRoundTrip(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	c.SetSummary(ctx, "금리 인상 기사 본문", "한국은행이 금리를 올렸다.")
	got, ok := c.GetSummary(ctx, "금리 인상 기사 본문")
	require.True(t, ok)
	assert.Equal(t, "한국은행이 금리를 올렸다.", got)
}

func TestCache_CurationRoundTrip(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	curation := domain.CurationResult{
		Score:    8.5,
		Reason:   "rate decision moves markets",
		Category: domain.CategoryMonetary,
		Urgency:  domain.UrgencyHigh,
		Topics:   []string{"interest_rates", "bok"},
	}
	c.SetCuration(ctx, "기준금리 결정 임박", curation)

	got, ok := c.GetCuration(ctx, "기준금리 결정 임박")
	require.True(t, ok)
	assert.Equal(t, curation, got)
}

func TestCache_FormattingRoundTrip(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	c.SetFormatting(ctx, "붙어있는 본문", "문단이\n\n나뉜 본문")
	got, ok := c.GetFormatting(ctx, "붙어있는 본문")
	require.True(t, ok)
	assert.Equal(t, "문단이\n\n나뉜 본문", got)
}

func TestCache_KindsDoNotShadowEachOther(t *testing.T) {
	// curation and formatting results under the same semantic key must stay
	// separate entries
	c := setupTestCache(t)
	ctx := context.Background()

	key := "같은 키 텍스트"
	c.SetCuration(ctx, key, domain.DefaultCuration("baseline"))
	c.SetFormatting(ctx, key, "정리된 텍스트")

	curation, ok := c.GetCuration(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "baseline", curation.Reason)

	formatted, ok := c.GetFormatting(ctx, key)
	require.True(t, ok)
	assert.Equal(t, "정리된 텍스트", formatted)
}

func TestCache_Overwrite(t *testing.T) {
	c := setupTestCache(t)
	ctx := context.Background()

	c.SetTranslation(ctx, "텍스트", "first")
	c.SetTranslation(ctx, "텍스트", "second")

	got, ok := c.GetTranslation(ctx, "텍스트")
	require.True(t, ok)
	assert.Equal(t, "second", got, "last write wins")
}

func TestCache_Disabled(t *testing.T) {
	c := New(nil)
	ctx := context.Background()

	assert.False(t, c.Enabled())

	// no-ops all the way down, nothing panics and everything misses
	c.SetTranslation(ctx, "텍스트", "translation")
	_, ok := c.GetTranslation(ctx, "텍스트")
	assert.False(t, ok)

	c.SetCuration(ctx, "텍스트", domain.DefaultCuration("x"))
	_, ok = c.GetCuration(ctx, "텍스트")
	assert.False(t, ok)
}

func TestCache_StoreErrorDegradesToMiss(t *testing.T) {
	store, err := NewStore(context.Background(), StoreConfig{
		DSN: fmt.Sprintf("file:%s/cache.db?mode=rwc", t.TempDir()),
	})
	require.NoError(t, err)
	c := New(store)
	ctx := context.Background()

	c.SetSummary(ctx, "텍스트", "summary")

	// closed store: get degrades to miss, set is swallowed
	require.NoError(t, store.Close())
	_, ok := c.GetSummary(ctx, "텍스트")
	assert.False(t, ok)
	assert.NotPanics(t, func() { c.SetSummary(ctx, "텍스트", "other") })
}

func TestDigest_Deterministic(t *testing.T) {
	assert.Equal(t, digest("환율"), digest("환율"))
	assert.NotEqual(t, digest("환율"), digest("금리"))

	// md5 hex digest of a known input
	assert.Equal(t, "9e107d9d372bb6826bd81d3542a419d6", digest("The quick brown fox jumps over the lazy dog"))
}

func TestDigest_NonCollision(t *testing.T) {
	// many distinct inputs must produce distinct digests
	seen := make(map[string]string, 10000)
	for i := 0; i < 10000; i++ {
		key := fmt.Sprintf("기사 제목 %d 그리고 설명 %d", i, i*31)
		d := digest(key)
		if prev, collides := seen[d]; collides {
			t.Fatalf("digest collision between %q and %q", prev, key)
		}
		seen[d] = key
	}
}

func TestStore_GetMissingReturnsErrNotFound(t *testing.T) {
	store, err := NewStore(context.Background(), StoreConfig{
		DSN: fmt.Sprintf("file:%s/cache.db?mode=rwc", t.TempDir()),
	})
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Get(context.Background(), "deadbeef", KindSummary)
	assert.ErrorIs(t, err, ErrNotFound)
}
