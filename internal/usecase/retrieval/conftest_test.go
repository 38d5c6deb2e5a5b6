package retrieval

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
	"github.com/askshelf/askshelf/internal/lexicon"
)

type mockCatalog struct {
	allFn     func(ctx context.Context) ([]item.Item, error)
	searchFn  func(ctx context.Context, query string, limit int) ([]item.Item, error)
	allCalls  int
	lexCalls  int
	lastQuery string
}

func (m *mockCatalog) All(ctx context.Context) ([]item.Item, error) {
	m.allCalls++
	if m.allFn != nil {
		return m.allFn(ctx)
	}
	return nil, nil
}

func (m *mockCatalog) LexicalSearch(ctx context.Context, query string, limit int) ([]item.Item, error) {
	m.lexCalls++
	m.lastQuery = query
	if m.searchFn != nil {
		return m.searchFn(ctx, query, limit)
	}
	return nil, nil
}

type mockEmbedder struct {
	result domain.EmbeddingResult
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) (domain.EmbeddingResult, error) {
	m.calls++
	return m.result, m.err
}

func testItem(t *testing.T, id, title, author string) item.Item {
	t.Helper()
	it, err := item.New(id, title, author, 1, true, "A1", 0)
	if err != nil {
		t.Fatalf("item.New: %v", err)
	}
	return it
}

func newTestService(t *testing.T, catalog *mockCatalog, embed *mockEmbedder, titles ...string) *Service {
	t.Helper()
	items := make([]item.Item, 0, len(titles))
	for i, title := range titles {
		items = append(items, testItem(t, string(rune('a'+i)), title, ""))
	}
	holder := lexicon.NewHolder(lexicon.Build(items))
	return New(catalog, embed, holder, MaxFuser{}, Params{
		Model:      "test-model",
		Dimensions: 3,
	}, zap.NewNop())
}
