package embcache

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/askshelf/askshelf/internal/db"
	"github.com/askshelf/askshelf/internal/domain"
	"go.uber.org/zap"
)

func TestEmbed_CacheMiss(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{0.1, 0.2},
		PromptTokens: 3,
		TotalTokens:  3,
	}}
	ce, ms := newTestCachedEmbedder(t, inner)
	ctx := context.Background()

	var storedKey string
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		storedKey = key
		if len(value) != 8 {
			t.Errorf("expected 8 cache bytes, got %d", len(value))
		}
		return nil
	}

	res, err := ce.Embed(ctx, "data structures")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.TotalTokens != 3 {
		t.Errorf("miss must report real token usage, got %d", res.TotalTokens)
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}
	if !strings.HasPrefix(storedKey, "askshelf:emb_cache:") {
		t.Errorf("unexpected cache key: %s", storedKey)
	}
}

func TestEmbed_CacheHit(t *testing.T) {
	inner := &mockEmbedder{}
	ce, ms := newTestCachedEmbedder(t, inner)
	ctx := context.Background()

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return vectorToCacheBytes([]float32{0.5, 0.25}), nil
	}

	res, err := ce.Embed(ctx, "data structures")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 0 {
		t.Errorf("hit must not call inner, got %d calls", inner.calls)
	}
	if res.TotalTokens != 0 {
		t.Errorf("hit must report zero token usage, got %d", res.TotalTokens)
	}
	if len(res.Embedding) != 2 || res.Embedding[0] != 0.5 {
		t.Errorf("unexpected cached vector: %v", res.Embedding)
	}
}

func TestEmbed_CorruptCacheFallsThrough(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ce, ms := newTestCachedEmbedder(t, inner)
	ctx := context.Background()

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return []byte("abc"), nil
	}

	res, err := ce.Embed(ctx, "x y z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("corrupt entry must fall through to inner, got %d calls", inner.calls)
	}
	if len(res.Embedding) != 1 {
		t.Errorf("unexpected vector: %v", res.Embedding)
	}
}

func TestEmbed_InnerError(t *testing.T) {
	innerErr := errors.New("provider down")
	inner := &mockEmbedder{err: innerErr}
	ce, _ := newTestCachedEmbedder(t, inner)

	_, err := ce.Embed(context.Background(), "q")
	if !errors.Is(err, innerErr) {
		t.Fatalf("expected inner error, got %v", err)
	}
}

func TestEmbed_StoreWriteFailureIsNonFatal(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1, 2}}}
	ce, ms := newTestCachedEmbedder(t, inner)

	ms.setFn = func(_ context.Context, _ string, _ []byte) error {
		return errors.New("write refused")
	}

	res, err := ce.Embed(context.Background(), "q")
	if err != nil {
		t.Fatalf("cache write failure must not fail the embed: %v", err)
	}
	if len(res.Embedding) != 2 {
		t.Errorf("unexpected vector: %v", res.Embedding)
	}
}

func TestEmbed_TTLApplied(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{Embedding: []float32{1}}}
	ms := &mockKVStore{}
	ce := New(inner, ms, "askshelf:", 24*time.Hour, nil, zap.NewNop())

	var gotTTL time.Duration
	ms.setWithTTLFn = func(_ context.Context, _ string, _ []byte, ttl time.Duration) error {
		gotTTL = ttl
		return nil
	}

	if _, err := ce.Embed(context.Background(), "q"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotTTL != 24*time.Hour {
		t.Errorf("expected 24h TTL, got %v", gotTTL)
	}
}

func TestBatchEmbed_PartialHits(t *testing.T) {
	inner := &mockEmbedder{result: domain.EmbeddingResult{
		Embedding:    []float32{9},
		PromptTokens: 2,
		TotalTokens:  2,
	}}
	ce, ms := newTestCachedEmbedder(t, inner)
	ctx := context.Background()

	cached := map[string][]byte{}
	hitKey := ce.cacheKey("cached text")
	cached[hitKey] = vectorToCacheBytes([]float32{5})

	ms.getFn = func(_ context.Context, key string) ([]byte, error) {
		if data, ok := cached[key]; ok {
			return data, nil
		}
		return nil, db.ErrKeyNotFound
	}

	var writes int
	ms.setFn = func(_ context.Context, key string, value []byte) error {
		writes++
		cached[key] = value
		return nil
	}

	res, err := ce.BatchEmbed(ctx, []string{"miss one", "cached text", "miss two"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Embeddings) != 3 {
		t.Fatalf("expected 3 embeddings, got %d", len(res.Embeddings))
	}
	if res.Embeddings[1][0] != 5 {
		t.Errorf("cached slot must keep cache value, got %v", res.Embeddings[1])
	}
	if res.Embeddings[0][0] != 9 || res.Embeddings[2][0] != 9 {
		t.Errorf("miss slots must come from inner, got %v", res.Embeddings)
	}
	if inner.batchCalls != 1 {
		t.Errorf("expected 1 batch call for the misses, got %d", inner.batchCalls)
	}
	if res.TotalTokens != 4 {
		t.Errorf("token usage must cover only the misses, got %d", res.TotalTokens)
	}
	if writes != 2 {
		t.Errorf("expected 2 cache writes, got %d", writes)
	}
}

func TestBatchEmbed_AllHits(t *testing.T) {
	inner := &mockEmbedder{}
	ce, ms := newTestCachedEmbedder(t, inner)

	ms.getFn = func(_ context.Context, _ string) ([]byte, error) {
		return vectorToCacheBytes([]float32{1}), nil
	}

	res, err := ce.BatchEmbed(context.Background(), []string{"a b c", "d e f"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.batchCalls != 0 || inner.calls != 0 {
		t.Errorf("all-hit batch must not call inner")
	}
	if res.TotalTokens != 0 {
		t.Errorf("all-hit batch must report zero tokens, got %d", res.TotalTokens)
	}
}

func TestBatchEmbed_MisalignedInner(t *testing.T) {
	inner := &mockEmbedder{batchResult: domain.BatchEmbeddingResult{
		Embeddings: [][]float32{{1}},
	}}
	ce, _ := newTestCachedEmbedder(t, inner)

	_, err := ce.BatchEmbed(context.Background(), []string{"one two", "three four"})
	if err == nil {
		t.Fatal("expected error on misaligned inner result")
	}
}
